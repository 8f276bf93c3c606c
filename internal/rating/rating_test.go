package rating_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/reelread/internal/logger"
	"github.com/oggyb/reelread/internal/media"
	"github.com/oggyb/reelread/internal/rating"
)

func ptr(v int) *int { return &v }

func TestAggregate_SkipsNull(t *testing.T) {
	res := rating.Aggregate([]*int{ptr(4), ptr(5), nil, ptr(3)})

	assert.Equal(t, int64(3), res.Count)
	require.NotNil(t, res.Avg)
	assert.Equal(t, 4.0, *res.Avg)
}

func TestAggregate_Empty(t *testing.T) {
	res := rating.Aggregate(nil)
	assert.Equal(t, int64(0), res.Count)
	assert.Nil(t, res.Avg)

	res = rating.Aggregate([]*int{nil, nil})
	assert.Equal(t, int64(0), res.Count)
	assert.Nil(t, res.Avg)
}

func TestAggregate_RoundsToOneDecimal(t *testing.T) {
	// 14 / 3 = 4.666...
	res := rating.Aggregate([]*int{ptr(5), ptr(5), ptr(4)})
	require.NotNil(t, res.Avg)
	assert.Equal(t, 4.7, *res.Avg)

	// 7 / 3 = 2.333...
	res = rating.Aggregate([]*int{ptr(1), ptr(3), ptr(3)})
	require.NotNil(t, res.Avg)
	assert.Equal(t, 2.3, *res.Avg)
}

type fakeStore struct {
	ratings   []*int
	loadErr   error
	writes    int
	lastCount int64
	lastAvg   *float64
}

func (f *fakeStore) Ratings(context.Context, media.Ref) ([]*int, error) {
	return f.ratings, f.loadErr
}

func (f *fakeStore) UpdateAggregate(_ context.Context, _ media.Ref, count int64, avg *float64) error {
	f.writes++
	f.lastCount, f.lastAvg = count, avg
	return nil
}

func TestRecalculate_WritesAggregate(t *testing.T) {
	store := &fakeStore{ratings: []*int{ptr(2), ptr(4)}}
	rc := rating.NewRecalculator(store, logger.Discard())

	res, err := rc.Recalculate(context.Background(), media.Ref{Kind: media.Movie, ID: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, store.writes)
	assert.Equal(t, int64(2), store.lastCount)
	require.NotNil(t, store.lastAvg)
	assert.Equal(t, 3.0, *store.lastAvg)
	assert.Equal(t, res.Count, store.lastCount)
}

func TestRecalculate_LoadErrorSkipsWrite(t *testing.T) {
	store := &fakeStore{loadErr: errors.New("boom")}
	rc := rating.NewRecalculator(store, logger.Discard())

	_, err := rc.Recalculate(context.Background(), media.Ref{Kind: media.Book, ID: 9})
	assert.ErrorContains(t, err, "book:9")
	assert.Equal(t, 0, store.writes)
}
