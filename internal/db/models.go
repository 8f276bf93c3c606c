package db

import (
	"time"
)

// Profile mirrors an authenticated user. ID is the auth provider subject (uuid).
type Profile struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Username     string    `gorm:"uniqueIndex;size:64;not null"`
	AvatarURL    string    `gorm:"size:512"`
	FriendsCount int64     `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Movie row. AvgRating/RatingCount are derived from reviews and rewritten
// after every review mutation.
type Movie struct {
	ID          uint64   `gorm:"primaryKey;autoIncrement"`
	ExternalID  *string  `gorm:"uniqueIndex;size:64"`
	Title       string   `gorm:"size:255;not null;index"`
	Overview    string   `gorm:"type:text"`
	ReleaseYear int      `gorm:"not null"`
	PosterURL   string   `gorm:"size:512"`
	Genres      []string `gorm:"type:text;serializer:json"`
	AvgRating   *float64
	RatingCount int64     `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// Book row, same derived fields as Movie.
type Book struct {
	ID            uint64   `gorm:"primaryKey;autoIncrement"`
	ExternalID    *string  `gorm:"uniqueIndex;size:64"`
	Title         string   `gorm:"size:255;not null;index"`
	Authors       []string `gorm:"type:text;serializer:json"`
	Description   string   `gorm:"type:text"`
	PublishedYear int      `gorm:"not null"`
	CoverURL      string   `gorm:"size:512"`
	Genres        []string `gorm:"type:text;serializer:json"`
	AvgRating     *float64
	RatingCount   int64     `gorm:"not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// Review of exactly one movie or one book by one user.
//
// Indexes:
//   - idx_review_user_movie / idx_review_user_book: one review per (user, media).
//     NULLs do not collide, so the column of the other kind stays free.
//   - idx_review_user_updated(user_id, updated_at): recap window scans.
type Review struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_review_user_movie,priority:1;uniqueIndex:idx_review_user_book,priority:1;index:idx_review_user_updated,priority:1"`
	MovieID   *uint64   `gorm:"uniqueIndex:idx_review_user_movie,priority:2;index:idx_review_movie"`
	BookID    *uint64   `gorm:"uniqueIndex:idx_review_user_book,priority:2;index:idx_review_book"`
	Rating    *int      `gorm:"check:chk_review_rating,rating IS NULL OR (rating BETWEEN 1 AND 5)"`
	Body      string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;index:idx_review_user_updated,priority:2"`
}

// Collection is a named, ordered list of movie or book ids owned by a user.
//
// Only the list matching Kind is populated. Version is bumped on every list
// rewrite and checked by the conditional update. DistinguishedKey is set to
// "<user>:<kind>" on the auto-created Watched/Read collection and NULL
// elsewhere, so the unique index allows exactly one per user and kind.
type Collection struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement"`
	UserID           string    `gorm:"size:36;not null;index:idx_collection_user_kind,priority:1"`
	Name             string    `gorm:"size:100;not null"`
	Kind             string    `gorm:"size:8;not null;index:idx_collection_user_kind,priority:2"`
	MovieList        []uint64  `gorm:"type:text;serializer:json"`
	BookList         []uint64  `gorm:"type:text;serializer:json"`
	Distinguished    bool      `gorm:"not null"`
	DistinguishedKey *string   `gorm:"uniqueIndex;size:48"`
	Version          uint64    `gorm:"not null"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

// List returns the id list matching Kind.
func (c *Collection) List() []uint64 {
	if c.Kind == "book" {
		return c.BookList
	}
	return c.MovieList
}

// SetList stores list in the column matching Kind.
func (c *Collection) SetList(list []uint64) {
	if c.Kind == "book" {
		c.BookList = list
	} else {
		c.MovieList = list
	}
}

// Friendship is a directed request; Accepted marks both users as friends.
// Composite PK: (RequesterID, AddresseeID).
type Friendship struct {
	RequesterID string    `gorm:"primaryKey;size:36"`
	AddresseeID string    `gorm:"primaryKey;size:36;index"`
	Accepted    bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// DeviceToken is a push token registered by a user's device.
type DeviceToken struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"size:36;not null;index"`
	Token     string    `gorm:"uniqueIndex;size:255;not null"`
	Platform  string    `gorm:"size:16"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Notification rows are the trigger for push fan-out.
type Notification struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"size:36;not null;index"`
	Kind      string    `gorm:"size:32;not null"`
	Title     string    `gorm:"size:255;not null"`
	Body      string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Models lists every table for AutoMigrate.
func Models() []any {
	return []any{
		&Profile{}, &Movie{}, &Book{}, &Review{}, &Collection{},
		&Friendship{}, &DeviceToken{}, &Notification{},
	}
}
