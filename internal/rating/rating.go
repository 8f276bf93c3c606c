// Package rating keeps the cached avg_rating / rating_count fields of a
// movie or book in step with its reviews.
package rating

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/oggyb/reelread/internal/media"
)

// Result is the aggregate written back onto a media row.
// Avg is nil when no review carries a rating.
type Result struct {
	Count int64
	Avg   *float64
}

// Aggregate counts non-null ratings and averages them, rounded to one decimal.
func Aggregate(ratings []*int) Result {
	var (
		count int64
		sum   int64
	)
	for _, r := range ratings {
		if r == nil {
			continue
		}
		count++
		sum += int64(*r)
	}
	if count == 0 {
		return Result{}
	}
	avg := math.Round(float64(sum)/float64(count)*10) / 10
	return Result{Count: count, Avg: &avg}
}

// Store is the persistence needed for a recompute.
type Store interface {
	Ratings(ctx context.Context, ref media.Ref) ([]*int, error)
	UpdateAggregate(ctx context.Context, ref media.Ref, count int64, avg *float64) error
}

// Recalculator recomputes and persists aggregates for one media item.
type Recalculator struct {
	store  Store
	logger *slog.Logger
}

func NewRecalculator(store Store, logger *slog.Logger) *Recalculator {
	return &Recalculator{store: store, logger: logger}
}

// Recalculate reads every rating for ref and writes the aggregate back.
// It is not transactional with the review write that triggered it.
func (r *Recalculator) Recalculate(ctx context.Context, ref media.Ref) (Result, error) {
	ratings, err := r.store.Ratings(ctx, ref)
	if err != nil {
		return Result{}, fmt.Errorf("load ratings for %s: %w", ref, err)
	}

	res := Aggregate(ratings)
	if err := r.store.UpdateAggregate(ctx, ref, res.Count, res.Avg); err != nil {
		return Result{}, fmt.Errorf("update aggregate for %s: %w", ref, err)
	}

	r.logger.Debug("rating aggregate updated", "media", ref.String(), "count", res.Count, "avg", res.Avg)
	return res, nil
}
