package pagination_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/reelread/internal/utils/pagination"
)

func TestCursor_EncodeDecode(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 123456000, time.UTC)
	token, err := pagination.Encode(pagination.At(at, 42, ""))
	require.NoError(t, err)

	c, err := pagination.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), c.ID)
	assert.True(t, at.Equal(c.UpdatedAt()), "microseconds survive the round trip")
	assert.False(t, c.IsZero())
}

func TestCursor_EmptyAndInvalid(t *testing.T) {
	c, err := pagination.Decode("")
	require.NoError(t, err)
	assert.True(t, c.IsZero())

	_, err = pagination.Decode("%%%")
	assert.ErrorIs(t, err, pagination.ErrInvalidToken)

	_, err = pagination.Decode("bm90LWpzb24=") // "not-json"
	assert.ErrorIs(t, err, pagination.ErrInvalidToken)
}
