package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/reelread/internal/db"
	"github.com/oggyb/reelread/internal/utils/pagination"
)

// FriendshipRepository provides data access methods for the Friendship model.
// A row is a request from requester to addressee; accepted rows are friends.
type FriendshipRepository struct {
	db *gorm.DB
}

// NewFriendshipRepository creates a new repository bound to the given DB connection.
func NewFriendshipRepository(database *gorm.DB) *FriendshipRepository {
	return &FriendshipRepository{db: database}
}

// Friend is one entry of a friends list.
type Friend struct {
	FriendID  string
	UpdatedAt time.Time
}

// CreateRequest inserts a pending request from requester to addressee.
//
// Behavior:
//   - If the (requester, addressee) pair exists the row is left untouched.
//   - Returns true when a new row was inserted.
func (r *FriendshipRepository) CreateRequest(ctx context.Context, requesterID, addresseeID string) (bool, error) {
	f := db.Friendship{RequesterID: requesterID, AddresseeID: addresseeID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "requester_id"}, {Name: "addressee_id"}},
			DoNothing: true,
		}).
		Create(&f)
	return res.RowsAffected == 1, res.Error
}

// Get returns the request row from requester to addressee.
func (r *FriendshipRepository) Get(ctx context.Context, requesterID, addresseeID string) (*db.Friendship, error) {
	var f db.Friendship
	err := r.db.WithContext(ctx).
		Where("requester_id = ? AND addressee_id = ?", requesterID, addresseeID).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// AreFriends checks whether an accepted request exists in either direction.
func (r *FriendshipRepository) AreFriends(ctx context.Context, a, b string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Friendship{}).
		Where("accepted = ?", true).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)", a, b, b, a).
		Count(&count).Error
	return count > 0, err
}

// Accept marks the pending request from requester to addressee as accepted
// and bumps the denormalized friends_count of both profiles, in one transaction.
// Returns gorm.ErrRecordNotFound if there is no pending request.
func (r *FriendshipRepository) Accept(ctx context.Context, requesterID, addresseeID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db.Friendship{}).
			Where("requester_id = ? AND addressee_id = ? AND accepted = ?", requesterID, addresseeID, false).
			Update("accepted", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&db.Profile{}).
			Where("id IN ?", []string{requesterID, addresseeID}).
			Update("friends_count", gorm.Expr("friends_count + 1")).Error
	})
}

// ListFriends returns the user's accepted friends.
//
// Behavior:
//   - Both directions of an accepted request count.
//   - Ordered by updated_at DESC (acceptance time), friend id DESC.
//   - Supports cursor-based pagination.
func (r *FriendshipRepository) ListFriends(
	ctx context.Context,
	userID string,
	paginationToken *string,
	limit int,
) ([]Friend, *string, error) {
	cursor, err := pagination.Decode(pagination.Deref(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	sub := r.db.
		Model(&db.Friendship{}).
		Select("CASE WHEN requester_id = ? THEN addressee_id ELSE requester_id END AS friend_id, updated_at", userID).
		Where("accepted = ?", true).
		Where("requester_id = ? OR addressee_id = ?", userID, userID)

	query := r.db.WithContext(ctx).
		Table("(?) AS f", sub).
		Order("f.updated_at DESC, f.friend_id DESC").
		Limit(limit + 1)

	// apply cursor
	if !cursor.IsZero() {
		ts := cursor.UpdatedAt()
		query = query.Where("(f.updated_at < ? OR (f.updated_at = ? AND f.friend_id < ?))", ts, ts, cursor.Key)
	}

	var friends []Friend
	if err := query.Scan(&friends).Error; err != nil {
		return nil, nil, err
	}

	var nextToken *string
	if len(friends) > limit {
		last := friends[limit-1]
		token, _ := pagination.Encode(pagination.At(last.UpdatedAt, 0, last.FriendID))
		nextToken = &token
		friends = friends[:limit]
	}
	return friends, nextToken, nil
}

// CountFriends returns how many accepted friendships involve the user.
// Used as the DB fallback for the cached counter.
func (r *FriendshipRepository) CountFriends(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Friendship{}).
		Where("accepted = ?", true).
		Where("requester_id = ? OR addressee_id = ?", userID, userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// IsNotFound is a small helper for callers that only import repository.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
