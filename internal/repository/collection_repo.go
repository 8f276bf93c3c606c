package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/reelread/internal/db"
	"github.com/oggyb/reelread/internal/media"
)

// CollectionRepository provides data access methods for the Collection model.
type CollectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(database *gorm.DB) *CollectionRepository {
	return &CollectionRepository{db: database}
}

// ListFor returns the user's collections of one kind, the distinguished one
// first, then most recently updated.
func (r *CollectionRepository) ListFor(ctx context.Context, userID string, kind media.Kind) ([]db.Collection, error) {
	var out []db.Collection
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND kind = ?", userID, string(kind)).
		Order("distinguished DESC, updated_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *CollectionRepository) Get(ctx context.Context, id uint64) (*db.Collection, error) {
	var c db.Collection
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a regular (non-distinguished) collection.
func (r *CollectionRepository) Create(ctx context.Context, userID, name string, kind media.Kind) (*db.Collection, error) {
	c := db.Collection{
		UserID:  userID,
		Name:    name,
		Kind:    string(kind),
		Version: 1,
	}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CollectionRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&db.Collection{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func distinguishedKey(userID string, kind media.Kind) string {
	return fmt.Sprintf("%s:%s", userID, kind)
}

// EnsureDistinguished returns the user's Watched/Read collection for kind,
// creating it on first use. Concurrent callers converge on one row through
// the unique distinguished_key.
func (r *CollectionRepository) EnsureDistinguished(ctx context.Context, userID string, kind media.Kind) (*db.Collection, bool, error) {
	key := distinguishedKey(userID, kind)

	var existing db.Collection
	err := r.db.WithContext(ctx).Where("distinguished_key = ?", key).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	c := db.Collection{
		UserID:           userID,
		Name:             kind.DistinguishedName(),
		Kind:             string(kind),
		Distinguished:    true,
		DistinguishedKey: &key,
		Version:          1,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "distinguished_key"}}, DoNothing: true}).
		Create(&c)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 {
		return &c, true, nil
	}

	// lost the race, read the winner
	if err := r.db.WithContext(ctx).Where("distinguished_key = ?", key).First(&existing).Error; err != nil {
		return nil, false, err
	}
	return &existing, false, nil
}

// ReplaceList rewrites the list column matching c.Kind if c.Version is still
// current, bumping version and updated_at. Returns false when the row changed
// (or vanished) since c was read.
func (r *CollectionRepository) ReplaceList(ctx context.Context, c *db.Collection, list []uint64) (bool, error) {
	next := db.Collection{Version: c.Version + 1}
	column := "movie_list"
	if media.Kind(c.Kind) == media.Book {
		column = "book_list"
		next.BookList = list
	} else {
		next.MovieList = list
	}

	res := r.db.WithContext(ctx).
		Model(&db.Collection{ID: c.ID}).
		Where("version = ?", c.Version).
		Select(column, "version", "updated_at").
		Updates(&next)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
