package collections

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oggyb/reelread/internal/collection"
	"github.com/oggyb/reelread/internal/db"
	"github.com/oggyb/reelread/internal/media"
	"github.com/oggyb/reelread/internal/metrics"
	"github.com/oggyb/reelread/internal/repository"
)

// Membership applies membership toggles with optimistic concurrency.
type Membership struct {
	repo   *repository.CollectionRepository
	logger *slog.Logger
}

func NewMembership(repo *repository.CollectionRepository, logger *slog.Logger) *Membership {
	return &Membership{repo: repo, logger: logger}
}

// Set makes ref.ID present (want=true) or absent in c.
//
// Behavior:
//   - A collection that already has the desired membership is not rewritten.
//   - The rewrite is conditional on c.Version. When another writer got there
//     first the row is re-read and the toggle re-applied, up to
//     collection.MaxAttempts times, then collection.ErrConflict.
//   - On success c holds the stored list and version.
func (m *Membership) Set(ctx context.Context, c *db.Collection, ref media.Ref, want bool) (bool, error) {
	if media.Kind(c.Kind) != ref.Kind {
		return false, collection.ErrKindMismatch
	}

	for attempt := 1; attempt <= collection.MaxAttempts; attempt++ {
		next, changed := collection.Toggle(c.List(), ref.ID, want)
		if !changed {
			return false, nil
		}

		ok, err := m.repo.ReplaceList(ctx, c, next)
		if err != nil {
			return false, fmt.Errorf("rewrite collection %d: %w", c.ID, err)
		}
		if ok {
			c.SetList(next)
			c.Version++
			return true, nil
		}

		metrics.CollectionConflicts.WithLabelValues("retried").Inc()
		m.logger.Debug("collection changed concurrently, retrying", "collection", c.ID, "attempt", attempt)

		fresh, err := m.repo.Get(ctx, c.ID)
		if err != nil {
			return false, err
		}
		*c = *fresh
	}

	metrics.CollectionConflicts.WithLabelValues("exhausted").Inc()
	return false, collection.ErrConflict
}

// AddToDistinguished puts ref into the user's Watched/Read collection,
// creating that collection on first use.
func (m *Membership) AddToDistinguished(ctx context.Context, userID string, ref media.Ref) (bool, error) {
	c, _, err := m.repo.EnsureDistinguished(ctx, userID, ref.Kind)
	if err != nil {
		return false, err
	}
	return m.Set(ctx, c, ref, true)
}
