package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/reelread/internal/db"
	"github.com/oggyb/reelread/internal/media"
	"github.com/oggyb/reelread/internal/utils/pagination"
)

// ReviewRepository provides data access methods for the Review model.
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new repository bound to the given DB connection.
func NewReviewRepository(database *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: database}
}

// refColumn is the review column pointing at media of the given kind.
func refColumn(kind media.Kind) string {
	if kind == media.Book {
		return "book_id"
	}
	return "movie_id"
}

// RefOf returns the media a review points at.
func RefOf(rv *db.Review) media.Ref {
	if rv.BookID != nil {
		return media.Ref{Kind: media.Book, ID: *rv.BookID}
	}
	if rv.MovieID != nil {
		return media.Ref{Kind: media.Movie, ID: *rv.MovieID}
	}
	return media.Ref{}
}

// Upsert creates or updates the user's review of ref.
//
// Behavior:
//   - One review per (user, media): an existing row is updated in place,
//     including clearing the rating when rating is nil.
//   - Returns the stored row and whether it was created.
func (r *ReviewRepository) Upsert(
	ctx context.Context,
	userID string,
	ref media.Ref,
	rating *int,
	body string,
) (*db.Review, bool, error) {
	existing, err := r.GetByUserAndMedia(ctx, userID, ref)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rv := db.Review{UserID: userID, Rating: rating, Body: body}
		id := ref.ID
		if ref.Kind == media.Book {
			rv.BookID = &id
		} else {
			rv.MovieID = &id
		}
		if err := r.db.WithContext(ctx).Create(&rv).Error; err != nil {
			return nil, false, err
		}
		return &rv, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	err = r.db.WithContext(ctx).
		Model(existing).
		Updates(map[string]any{"rating": rating, "body": body}).Error
	if err != nil {
		return nil, false, err
	}
	updated, err := r.Get(ctx, existing.ID)
	return updated, false, err
}

// Get loads a review by id.
func (r *ReviewRepository) Get(ctx context.Context, id uint64) (*db.Review, error) {
	var rv db.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

// GetByUserAndMedia loads the user's review of ref, gorm.ErrRecordNotFound if none.
func (r *ReviewRepository) GetByUserAndMedia(ctx context.Context, userID string, ref media.Ref) (*db.Review, error) {
	var rv db.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND "+refColumn(ref.Kind)+" = ?", userID, ref.ID).
		First(&rv).Error
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// Delete removes a review by id.
func (r *ReviewRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&db.Review{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Ratings returns the rating column of every review of ref, NULLs included.
func (r *ReviewRepository) Ratings(ctx context.Context, ref media.Ref) ([]*int, error) {
	var rows []db.Review
	err := r.db.WithContext(ctx).
		Select("id", "rating").
		Where(refColumn(ref.Kind)+" = ?", ref.ID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*int, 0, len(rows))
	for _, rv := range rows {
		out = append(out, rv.Rating)
	}
	return out, nil
}

// ListForMedia returns reviews of ref with non-blank text written by anyone
// except excludeUserID.
//
// Behavior:
//   - Ordered by updated_at DESC, id DESC.
//   - Supports cursor-based pagination via paginationToken.
func (r *ReviewRepository) ListForMedia(
	ctx context.Context,
	ref media.Ref,
	excludeUserID string,
	paginationToken *string,
	limit int,
) ([]db.Review, *string, error) {
	cursor, err := pagination.Decode(pagination.Deref(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Where(refColumn(ref.Kind)+" = ?", ref.ID).
		Where("TRIM(body) <> ''").
		Order("updated_at DESC, id DESC").
		Limit(limit + 1)
	if excludeUserID != "" {
		query = query.Where("user_id <> ?", excludeUserID)
	}

	// apply cursor
	if !cursor.IsZero() {
		ts := cursor.UpdatedAt()
		query = query.Where("(updated_at < ? OR (updated_at = ? AND id < ?))", ts, ts, cursor.ID)
	}

	var reviews []db.Review
	if err := query.Find(&reviews).Error; err != nil {
		return nil, nil, err
	}

	// pagination: build next cursor if needed
	var nextToken *string
	if len(reviews) > limit {
		last := reviews[limit-1]
		token, _ := pagination.Encode(pagination.At(last.UpdatedAt, last.ID, ""))
		nextToken = &token
		reviews = reviews[:limit]
	}
	return reviews, nextToken, nil
}

// ListForUserBetween returns the user's reviews updated in [start, end), oldest first.
func (r *ReviewRepository) ListForUserBetween(
	ctx context.Context,
	userID string,
	start, end time.Time,
) ([]db.Review, error) {
	var reviews []db.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND updated_at >= ? AND updated_at < ?", userID, start, end).
		Order("updated_at ASC, id ASC").
		Find(&reviews).Error
	return reviews, err
}

// ListForMediaBetween returns every review of the given media ids updated in
// [start, end), newest first.
func (r *ReviewRepository) ListForMediaBetween(
	ctx context.Context,
	kind media.Kind,
	ids []uint64,
	start, end time.Time,
) ([]db.Review, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var reviews []db.Review
	err := r.db.WithContext(ctx).
		Where(refColumn(kind)+" IN ?", ids).
		Where("updated_at >= ? AND updated_at < ?", start, end).
		Order("updated_at DESC, id DESC").
		Find(&reviews).Error
	return reviews, err
}
