// Package commonpb holds messages shared by several services.
package commonpb

// MediaRef identifies one movie or book. Kind is "movie" or "book".
type MediaRef struct {
	Kind string `json:"kind" validate:"required,oneof=movie book"`
	ID   uint64 `json:"id" validate:"required"`
}

func (x *MediaRef) GetKind() string {
	if x != nil {
		return x.Kind
	}
	return ""
}

func (x *MediaRef) GetID() uint64 {
	if x != nil {
		return x.ID
	}
	return 0
}

// Review as listed on a detail or recap screen.
type Review struct {
	ID          uint64    `json:"id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Media       *MediaRef `json:"media,omitempty"`
	Rating      *int32    `json:"rating,omitempty"`
	Body        string    `json:"body"`
	Own         bool      `json:"own"`
	UpdatedUnix int64     `json:"updated_unix"`
}

// MediaItem is the common shape of a movie or a book.
type MediaItem struct {
	Kind        string   `json:"kind"`
	ID          uint64   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Authors     []string `json:"authors,omitempty"`
	Year        int32    `json:"year,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	AvgRating   *float64 `json:"avg_rating,omitempty"`
	RatingCount int64    `json:"rating_count"`
}

// Profile of a user as shown to others.
type Profile struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	FriendsCount int64  `json:"friends_count"`
}
