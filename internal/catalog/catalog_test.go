package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/reelread/internal/catalog"
	"github.com/oggyb/reelread/internal/db"
	"github.com/oggyb/reelread/internal/logger"
	"github.com/oggyb/reelread/internal/repository"
	"github.com/oggyb/reelread/internal/testutil"
)

const popularPage1 = `{"page":1,"total_pages":2,"results":[
  {"id":949,"title":"Heat","overview":"A group of robbers.","release_date":"1995-12-15","poster_path":"/heat.jpg","genre_ids":[28,80,1]},
  {"id":0,"title":"broken"}
]}`

const popularPage2 = `{"page":2,"total_pages":2,"results":[
  {"id":603,"title":"The Matrix","release_date":"1999-03-30","genre_ids":[878]}
]}`

const volumes = `{"totalItems":1,"items":[
  {"id":"abc123","volumeInfo":{"title":"Dune","subtitle":"Deluxe Edition","authors":["Frank Herbert"],
   "publishedDate":"1965","categories":["Fiction"],"imageLinks":{"thumbnail":"http://books.google.com/dune.jpg"}}}
]}`

func newTMDBServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/3/movie/popular" || r.URL.Query().Get("api_key") != "k" {
			http.Error(w, "bad request", http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("page") == "2" {
			_, _ = w.Write([]byte(popularPage2))
			return
		}
		_, _ = w.Write([]byte(popularPage1))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTMDBClient_PopularMovies(t *testing.T) {
	srv := newTMDBServer(t)
	c := catalog.NewTMDBClient(srv.URL+"/", "k")

	movies, total, err := c.PopularMovies(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, movies, 1, "rows without id are skipped")

	m := movies[0]
	assert.Equal(t, "Heat", m.Title)
	assert.Equal(t, 1995, m.ReleaseYear)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/heat.jpg", m.PosterURL)
	assert.Equal(t, []string{"Action", "Crime"}, m.Genres)
	require.NotNil(t, m.ExternalID)
	assert.Equal(t, "tmdb:949", *m.ExternalID)
}

func TestTMDBClient_ErrorStatus(t *testing.T) {
	srv := newTMDBServer(t)
	c := catalog.NewTMDBClient(srv.URL, "wrong")

	_, _, err := c.PopularMovies(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestBooksClient_SearchBooks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/books/v1/volumes", r.URL.Path)
		assert.Equal(t, "dune", r.URL.Query().Get("q"))
		assert.Equal(t, "40", r.URL.Query().Get("maxResults"))
		_, _ = w.Write([]byte(volumes))
	}))
	t.Cleanup(srv.Close)

	books, total, err := catalog.NewBooksClient(srv.URL, "").SearchBooks(context.Background(), "dune", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, books, 1)

	b := books[0]
	assert.Equal(t, "Dune: Deluxe Edition", b.Title)
	assert.Equal(t, []string{"Frank Herbert"}, b.Authors)
	assert.Equal(t, 1965, b.PublishedYear)
	assert.Equal(t, "https://books.google.com/dune.jpg", b.CoverURL)
	assert.Equal(t, "gbooks:abc123", *b.ExternalID)
}

func TestImporter_UpsertsByExternalID(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)
	srv := newTMDBServer(t)

	imp := catalog.NewImporter(
		repository.NewMediaRepository(gdb),
		catalog.NewTMDBClient(srv.URL, "k"),
		nil,
		logger.Discard(),
		catalog.WithRate(time.Millisecond),
	)

	n, err := imp.ImportMovies(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "stops after the last page")

	// second run refreshes instead of duplicating
	_, err = imp.ImportMovies(ctx, 5)
	require.NoError(t, err)

	var count int64
	require.NoError(t, gdb.Model(&db.Movie{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	_, err = imp.ImportBooks(ctx, "dune", 1)
	assert.Error(t, err, "books client not configured")
}
