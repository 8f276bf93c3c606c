package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/reelread/internal/media"
	"github.com/oggyb/reelread/internal/repository"
	"github.com/oggyb/reelread/internal/testutil"
)

func TestEnsureDistinguished_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCollectionRepository(testutil.NewDB(t))

	first, created, err := repo.EnsureDistinguished(ctx, "u1", media.Movie)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Watched", first.Name)
	assert.True(t, first.Distinguished)

	again, created, err := repo.EnsureDistinguished(ctx, "u1", media.Movie)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	books, _, err := repo.EnsureDistinguished(ctx, "u1", media.Book)
	require.NoError(t, err)
	assert.Equal(t, "Read", books.Name)
	assert.NotEqual(t, first.ID, books.ID)
}

func TestEnsureDistinguished_IgnoresSameNamedCollection(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCollectionRepository(testutil.NewDB(t))

	impostor, err := repo.Create(ctx, "u1", "Watched", media.Movie)
	require.NoError(t, err)

	watched, created, err := repo.EnsureDistinguished(ctx, "u1", media.Movie)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, impostor.ID, watched.ID)

	list, err := repo.ListFor(ctx, "u1", media.Movie)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, watched.ID, list[0].ID, "distinguished collection sorts first")
}

func TestReplaceList_VersionCheck(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCollectionRepository(testutil.NewDB(t))

	c, err := repo.Create(ctx, "u1", "Favourites", media.Book)
	require.NoError(t, err)
	stale := *c

	ok, err := repo.ReplaceList(ctx, c, []uint64{7, 8})
	require.NoError(t, err)
	assert.True(t, ok)

	// a second writer still holding version 1 must lose
	ok, err = repo.ReplaceList(ctx, &stale, []uint64{9})
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{7, 8}, got.BookList)
	assert.Empty(t, got.MovieList)
	assert.Equal(t, uint64(2), got.Version)
}
