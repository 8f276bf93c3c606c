package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/reelread/internal/db"
	"github.com/oggyb/reelread/internal/media"
)

// MediaRepository covers the movies and books tables.
type MediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(database *gorm.DB) *MediaRepository {
	return &MediaRepository{db: database}
}

func modelFor(kind media.Kind) any {
	if kind == media.Book {
		return &db.Book{}
	}
	return &db.Movie{}
}

// Exists reports whether ref points at a stored row.
func (r *MediaRepository) Exists(ctx context.Context, ref media.Ref) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(modelFor(ref.Kind)).Where("id = ?", ref.ID).Count(&count).Error
	return count > 0, err
}

func (r *MediaRepository) GetMovie(ctx context.Context, id uint64) (*db.Movie, error) {
	var m db.Movie
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MediaRepository) GetBook(ctx context.Context, id uint64) (*db.Book, error) {
	var b db.Book
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// Titles maps ids of the given kind to their titles. Unknown ids are absent.
func (r *MediaRepository) Titles(ctx context.Context, kind media.Kind, ids []uint64) (map[uint64]string, error) {
	out := make(map[uint64]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []struct {
		ID    uint64
		Title string
	}
	err := r.db.WithContext(ctx).
		Model(modelFor(kind)).
		Select("id", "title").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.Title
	}
	return out, nil
}

// UpdateAggregate overwrites avg_rating and rating_count. A nil avg stores NULL.
func (r *MediaRepository) UpdateAggregate(ctx context.Context, ref media.Ref, count int64, avg *float64) error {
	res := r.db.WithContext(ctx).
		Model(modelFor(ref.Kind)).
		Where("id = ?", ref.ID).
		Updates(map[string]any{"avg_rating": avg, "rating_count": count})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SearchMovies does a case-insensitive substring match on title.
func (r *MediaRepository) SearchMovies(ctx context.Context, q string, limit int) ([]db.Movie, error) {
	var out []db.Movie
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ?", likePattern(q)).
		Order("rating_count DESC, title ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// SearchBooks does a case-insensitive substring match on title.
func (r *MediaRepository) SearchBooks(ctx context.Context, q string, limit int) ([]db.Book, error) {
	var out []db.Book
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ?", likePattern(q)).
		Order("rating_count DESC, title ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UpsertMovie inserts or refreshes catalog fields keyed by ExternalID.
// Derived rating fields are never touched.
func (r *MediaRepository) UpsertMovie(ctx context.Context, m *db.Movie) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "overview", "release_year", "poster_url", "genres", "updated_at"}),
		}).
		Create(m).Error
}

// UpsertBook inserts or refreshes catalog fields keyed by ExternalID.
func (r *MediaRepository) UpsertBook(ctx context.Context, b *db.Book) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "authors", "description", "published_year", "cover_url", "genres", "updated_at"}),
		}).
		Create(b).Error
}

func likePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}
