package recaps_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	"github.com/oggyb/reelread/internal/app"
	"github.com/oggyb/reelread/internal/auth"
	"github.com/oggyb/reelread/internal/cache"
	"github.com/oggyb/reelread/internal/config"
	"github.com/oggyb/reelread/internal/db"
	"github.com/oggyb/reelread/internal/logger"
	pb "github.com/oggyb/reelread/internal/proto/recappb"
	"github.com/oggyb/reelread/internal/service/recaps"
	"github.com/oggyb/reelread/internal/testutil"
)

const (
	alice = "11111111-1111-4111-8111-111111111111"
	bob   = "22222222-2222-4222-8222-222222222222"
	carol = "33333333-3333-4333-8333-333333333333"
)

var now = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc    *recaps.Service
	db     *gorm.DB
	cache  *cache.RedisCache
	movies []db.Movie
	books  []db.Book
}

func setupService(t *testing.T) fixture {
	t.Helper()
	gdb := testutil.NewDB(t)
	rc, _ := testutil.NewCache(t)

	require.NoError(t, gdb.Create(&[]db.Profile{
		{ID: alice, Username: "alice"},
		{ID: bob, Username: "bob"},
		{ID: carol, Username: "carol"},
	}).Error)
	movies := []db.Movie{
		{Title: "Arrival", ReleaseYear: 2016},
		{Title: "Heat", ReleaseYear: 1995},
		{Title: "Parasite", ReleaseYear: 2019},
		{Title: "Paddington 2", ReleaseYear: 2017},
	}
	require.NoError(t, gdb.Create(&movies).Error)
	books := []db.Book{
		{Title: "Piranesi", PublishedYear: 2020},
		{Title: "Middlemarch", PublishedYear: 1871},
	}
	require.NoError(t, gdb.Create(&books).Error)

	cfg := &config.Config{}
	cfg.Recap.CacheTTL = time.Hour
	appCtx := app.New(cfg, gdb, rc, logger.Discard())
	svc := recaps.NewRecapService(appCtx, recaps.WithClock(func() time.Time { return now }))
	return fixture{svc: svc, db: gdb, cache: rc, movies: movies, books: books}
}

func (f fixture) reviewMovie(t *testing.T, idx int, rating *int, body string, at time.Time) db.Review {
	t.Helper()
	return f.reviewMovieAs(t, alice, idx, rating, body, at)
}

func (f fixture) reviewMovieAs(t *testing.T, userID string, idx int, rating *int, body string, at time.Time) db.Review {
	t.Helper()
	rv := db.Review{UserID: userID, MovieID: &f.movies[idx].ID, Rating: rating, Body: body, CreatedAt: at, UpdatedAt: at}
	require.NoError(t, f.db.Create(&rv).Error)
	return rv
}

func (f fixture) reviewBook(t *testing.T, idx int, rating *int, at time.Time) db.Review {
	t.Helper()
	rv := db.Review{UserID: alice, BookID: &f.books[idx].ID, Rating: rating, CreatedAt: at, UpdatedAt: at}
	require.NoError(t, f.db.Create(&rv).Error)
	return rv
}

func as(userID string) context.Context {
	return auth.WithUserID(context.Background(), userID)
}

func feb(day int) time.Time {
	return time.Date(2026, time.February, day, 10, 0, 0, 0, time.UTC)
}

func TestGetMonthlyRecap_PreviousMonthWithTies(t *testing.T) {
	f := setupService(t)

	f.reviewMovie(t, 0, testutil.Ptr(3), "", feb(1))
	f.reviewMovie(t, 1, testutil.Ptr(5), "", feb(2))
	f.reviewMovie(t, 2, testutil.Ptr(5), "", feb(3))
	latest := f.reviewMovie(t, 3, testutil.Ptr(4), "cozy", feb(20))

	resp, err := f.svc.GetMonthlyRecap(as(alice), &pb.GetMonthlyRecapRequest{Kind: "movie"})
	require.NoError(t, err)
	assert.Equal(t, int32(2026), resp.Year)
	assert.Equal(t, int32(2), resp.Month)
	require.Len(t, resp.Recaps, 1)

	movies := resp.Recaps[0]
	assert.Equal(t, "movie", movies.Kind)
	assert.Equal(t, int32(4), movies.Total)
	assert.Equal(t, int32(5), movies.MaxRating)
	require.Len(t, movies.Top, 2, "exactly the two 5-rated ids")
	assert.Equal(t, f.movies[1].ID, movies.Top[0].MediaID)
	assert.Equal(t, "Heat", movies.Top[0].Title)
	assert.Equal(t, f.movies[2].ID, movies.Top[1].MediaID)
	require.Len(t, movies.Reviews, 4, "all four own reviews, empty ones included")
	assert.Equal(t, latest.ID, movies.Reviews[0].ID, "newest first")
	assert.Equal(t, "alice", movies.Reviews[0].Username)
	assert.Equal(t, "cozy", movies.Reviews[0].Body)
	assert.True(t, movies.Reviews[0].Own)
}

func TestGetMonthlyRecap_ReviewsVisibility(t *testing.T) {
	f := setupService(t)

	own := f.reviewMovie(t, 0, testutil.Ptr(4), "", feb(1))
	bobs := f.reviewMovieAs(t, bob, 0, testutil.Ptr(5), "a masterpiece", feb(5))
	f.reviewMovieAs(t, carol, 0, testutil.Ptr(2), "   ", feb(6))
	// only media alice reviewed that month show up
	f.reviewMovieAs(t, bob, 1, nil, "never seen by alice's recap", feb(7))

	resp, err := f.svc.GetMonthlyRecap(as(alice), &pb.GetMonthlyRecapRequest{Kind: "movie"})
	require.NoError(t, err)
	require.Len(t, resp.Recaps, 1)

	reviews := resp.Recaps[0].Reviews
	require.Len(t, reviews, 2, "carol's blank review is hidden")
	assert.Equal(t, own.ID, reviews[0].ID, "own empty review first")
	assert.True(t, reviews[0].Own)
	assert.Equal(t, "alice", reviews[0].Username)
	assert.Equal(t, bobs.ID, reviews[1].ID)
	assert.Equal(t, "bob", reviews[1].Username)
	assert.False(t, reviews[1].Own)
}

func TestGetMonthlyRecap_UsernameFreshOnCacheHit(t *testing.T) {
	f := setupService(t)
	f.reviewMovie(t, 0, testutil.Ptr(3), "", feb(1))
	f.reviewMovieAs(t, bob, 0, testutil.Ptr(4), "solid", feb(2))

	first, err := f.svc.GetMonthlyRecap(as(alice), &pb.GetMonthlyRecapRequest{Kind: "movie"})
	require.NoError(t, err)
	require.Len(t, first.Recaps[0].Reviews, 2)
	assert.Equal(t, "alice", first.Recaps[0].Reviews[0].Username)

	require.NoError(t, f.db.Model(&db.Profile{}).Where("id = ?", alice).Update("username", "alice_b").Error)
	require.NoError(t, f.db.Model(&db.Profile{}).Where("id = ?", bob).Update("username", "bobby").Error)

	second, err := f.svc.GetMonthlyRecap(as(alice), &pb.GetMonthlyRecapRequest{Kind: "movie"})
	require.NoError(t, err)
	require.Len(t, second.Recaps[0].Reviews, 2)
	assert.Equal(t, "alice_b", second.Recaps[0].Reviews[0].Username)
	assert.Equal(t, "bobby", second.Recaps[0].Reviews[1].Username)
}

func TestGetMonthlyRecap_AllKindsAndWindow(t *testing.T) {
	f := setupService(t)

	f.reviewMovie(t, 0, testutil.Ptr(2), "", feb(28))
	f.reviewBook(t, 0, nil, feb(10))
	// March is outside the default window
	f.reviewBook(t, 1, testutil.Ptr(5), time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))

	resp, err := f.svc.GetMonthlyRecap(as(alice), &pb.GetMonthlyRecapRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Recaps, 2)

	byKind := map[string]*pb.Recap{}
	for _, r := range resp.Recaps {
		byKind[r.Kind] = r
	}
	assert.Equal(t, int32(1), byKind["movie"].Total)
	assert.Equal(t, int32(1), byKind["book"].Total)
	assert.Zero(t, byKind["book"].MaxRating, "unrated reviews never set the max")
	assert.Empty(t, byKind["book"].Top)

	march, err := f.svc.GetMonthlyRecap(as(alice), &pb.GetMonthlyRecapRequest{Kind: "book", Year: 2026, Month: 3})
	require.NoError(t, err)
	require.Len(t, march.Recaps, 1)
	assert.Equal(t, int32(1), march.Recaps[0].Total)
	assert.Equal(t, int32(5), march.Recaps[0].MaxRating)
	assert.Equal(t, "Middlemarch", march.Recaps[0].Top[0].Title)
}

func TestGetMonthlyRecap_CachedUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	f := setupService(t)
	f.reviewMovie(t, 0, testutil.Ptr(3), "", feb(1))

	first, err := f.svc.GetMonthlyRecap(as(alice), &pb.GetMonthlyRecapRequest{Kind: "movie"})
	require.NoError(t, err)
	require.Equal(t, int32(1), first.Recaps[0].Total)

	// written behind the service's back: the cached recap is still served
	f.reviewMovie(t, 1, testutil.Ptr(5), "", feb(2))
	cached, err := f.svc.GetMonthlyRecap(as(alice), &pb.GetMonthlyRecapRequest{Kind: "movie"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), cached.Recaps[0].Total)

	require.NoError(t, f.cache.InvalidateRecaps(ctx, alice))
	fresh, err := f.svc.GetMonthlyRecap(as(alice), &pb.GetMonthlyRecapRequest{Kind: "movie"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), fresh.Recaps[0].Total)
	assert.Equal(t, int32(5), fresh.Recaps[0].MaxRating)
}

func TestGetMonthlyRecap_BadInput(t *testing.T) {
	f := setupService(t)

	_, err := f.svc.GetMonthlyRecap(as(alice), &pb.GetMonthlyRecapRequest{Kind: "game"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = f.svc.GetMonthlyRecap(as(alice), &pb.GetMonthlyRecapRequest{Year: 2026, Month: 13})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = f.svc.GetMonthlyRecap(context.Background(), &pb.GetMonthlyRecapRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestGetMonthlyRecap_ReadFailureFailsWholeCall(t *testing.T) {
	f := setupService(t)
	f.reviewMovie(t, 0, testutil.Ptr(3), "", feb(1))

	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = f.svc.GetMonthlyRecap(as(alice), &pb.GetMonthlyRecapRequest{})
	assert.Error(t, err)
}
