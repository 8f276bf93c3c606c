package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oggyb/reelread/internal/collection"
)

func TestToggle_AddExistingIsNoop(t *testing.T) {
	list := []uint64{1, 2, 3}
	out, changed := collection.Toggle(list, 2, true)
	assert.False(t, changed)
	assert.Equal(t, []uint64{1, 2, 3}, out)
}

func TestToggle_Append(t *testing.T) {
	list := []uint64{1, 2}
	out, changed := collection.Toggle(list, 9, true)
	assert.True(t, changed)
	assert.Equal(t, []uint64{1, 2, 9}, out)
	assert.Equal(t, []uint64{1, 2}, list, "input must not be mutated")
}

func TestToggle_Remove(t *testing.T) {
	out, changed := collection.Toggle([]uint64{4, 5, 4}, 4, false)
	assert.True(t, changed)
	assert.Equal(t, []uint64{5}, out)

	out, changed = collection.Toggle(nil, 4, false)
	assert.False(t, changed)
	assert.Empty(t, out)
}
