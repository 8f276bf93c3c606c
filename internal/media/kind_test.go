package media_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/reelread/internal/media"
)

func TestParseKind(t *testing.T) {
	for in, want := range map[string]media.Kind{
		"movie": media.Movie, "Movies": media.Movie, " book ": media.Book, "BOOKS": media.Book,
	} {
		got, err := media.ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := media.ParseKind("podcast")
	assert.ErrorIs(t, err, media.ErrUnknownKind)
}

func TestDistinguishedName(t *testing.T) {
	assert.Equal(t, "Watched", media.Movie.DistinguishedName())
	assert.Equal(t, "Read", media.Book.DistinguishedName())
}

func TestNewRef(t *testing.T) {
	ref, err := media.NewRef("book", 7)
	require.NoError(t, err)
	assert.Equal(t, "book:7", ref.String())

	_, err = media.NewRef("movie", 0)
	assert.ErrorIs(t, err, media.ErrMissingID)
}
