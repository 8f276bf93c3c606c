package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/oggyb/reelread/internal/db"
)

// Store is the write side the importer needs; MediaRepository implements it.
type Store interface {
	UpsertMovie(ctx context.Context, m *db.Movie) error
	UpsertBook(ctx context.Context, b *db.Book) error
}

// Importer pages through a source and upserts every item by ExternalID.
// Requests to the remote API are throttled.
type Importer struct {
	store   Store
	tmdb    *TMDBClient
	books   *BooksClient
	limiter *rate.Limiter
	logger  *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithRate overrides the default of 4 requests per second.
func WithRate(every time.Duration) Option {
	return func(i *Importer) { i.limiter = rate.NewLimiter(rate.Every(every), 1) }
}

func NewImporter(store Store, tmdb *TMDBClient, books *BooksClient, logger *slog.Logger, opts ...Option) *Importer {
	i := &Importer{
		store:   store,
		tmdb:    tmdb,
		books:   books,
		limiter: rate.NewLimiter(rate.Every(250*time.Millisecond), 1),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// ImportMovies upserts up to pages pages of popular movies. It stops early
// when TMDB has no more pages. Returns the number of rows written.
func (i *Importer) ImportMovies(ctx context.Context, pages int) (int, error) {
	if i.tmdb == nil {
		return 0, fmt.Errorf("tmdb client not configured")
	}
	written := 0
	for page := 1; page <= pages; page++ {
		if err := i.limiter.Wait(ctx); err != nil {
			return written, err
		}
		movies, total, err := i.tmdb.PopularMovies(ctx, page)
		if err != nil {
			return written, err
		}
		for k := range movies {
			if err := i.store.UpsertMovie(ctx, &movies[k]); err != nil {
				return written, fmt.Errorf("upsert movie %q: %w", movies[k].Title, err)
			}
			written++
		}
		i.logger.Info("movies page imported", "page", page, "rows", len(movies), "total_pages", total)
		if page >= total {
			break
		}
	}
	return written, nil
}

// ImportBooks upserts up to pages pages of volumes matching query.
func (i *Importer) ImportBooks(ctx context.Context, query string, pages int) (int, error) {
	if i.books == nil {
		return 0, fmt.Errorf("books client not configured")
	}
	written := 0
	for page := 0; page < pages; page++ {
		if err := i.limiter.Wait(ctx); err != nil {
			return written, err
		}
		start := page * BooksPageSize
		books, total, err := i.books.SearchBooks(ctx, query, start)
		if err != nil {
			return written, err
		}
		for k := range books {
			if err := i.store.UpsertBook(ctx, &books[k]); err != nil {
				return written, fmt.Errorf("upsert book %q: %w", books[k].Title, err)
			}
			written++
		}
		i.logger.Info("books page imported", "query", query, "start", start, "rows", len(books), "total", total)
		if len(books) == 0 || start+BooksPageSize >= total {
			break
		}
	}
	return written, nil
}
