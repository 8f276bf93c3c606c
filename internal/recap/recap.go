// Package recap reduces a user's reviews for one calendar month into the
// per-kind summary shown on the recap screen.
package recap

import (
	"time"

	"github.com/oggyb/reelread/internal/media"
)

// Row is the slice of a review the reduction needs.
type Row struct {
	Ref    media.Ref
	Rating *int
}

// Summary is the recap for one media kind.
type Summary struct {
	Kind  media.Kind
	Total int
	// MaxRating is zero when no review in the window carries a rating.
	MaxRating int
	// TopMediaIDs holds every media id rated MaxRating, first-seen order.
	TopMediaIDs []uint64
	// MediaIDs holds every media id reviewed in the window, first-seen order.
	MediaIDs []uint64
}

// Window returns the previous calendar month relative to now, in UTC, as [start, end).
func Window(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return thisMonth.AddDate(0, -1, 0), thisMonth
}

// MonthWindow returns [first day of month, first day of next month) in UTC.
func MonthWindow(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// Compute reduces rows of the given kind in a single pass. Rows of another
// kind are ignored. A strictly greater rating restarts the tie set with that
// media id; an equal rating joins it.
func Compute(rows []Row, kind media.Kind) Summary {
	s := Summary{Kind: kind}
	seen := make(map[uint64]struct{})
	reviewed := make(map[uint64]struct{})

	for i := range rows {
		row := rows[i]
		if row.Ref.Kind != kind {
			continue
		}
		s.Total++

		if _, dup := reviewed[row.Ref.ID]; !dup {
			reviewed[row.Ref.ID] = struct{}{}
			s.MediaIDs = append(s.MediaIDs, row.Ref.ID)
		}

		if row.Rating == nil {
			continue
		}
		switch r := *row.Rating; {
		case r > s.MaxRating:
			s.MaxRating = r
			s.TopMediaIDs = []uint64{row.Ref.ID}
			clear(seen)
			seen[row.Ref.ID] = struct{}{}
		case r == s.MaxRating:
			if _, dup := seen[row.Ref.ID]; !dup {
				s.TopMediaIDs = append(s.TopMediaIDs, row.Ref.ID)
				seen[row.Ref.ID] = struct{}{}
			}
		}
	}
	return s
}
