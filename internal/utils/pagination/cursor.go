package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// ErrInvalidToken is returned for tokens that do not decode to a Cursor.
var ErrInvalidToken = errors.New("invalid pagination token")

// Cursor is the opaque pagination state we encode/decode.
// UpdatedMicros plus a tiebreaker establish a stable cursor:
// ID for numeric keys, Key for string keys (user ids).
// Timestamps are stored with microsecond precision, so the cursor keeps
// microseconds too; a coarser cursor would skip rows sharing its unit.
type Cursor struct {
	ID            uint64 `json:"id,omitempty"`
	Key           string `json:"key,omitempty"`
	UpdatedMicros int64  `json:"updated_us,omitempty"`
}

// At builds the cursor pointing after a row updated at updatedAt.
func At(updatedAt time.Time, id uint64, key string) Cursor {
	return Cursor{ID: id, Key: key, UpdatedMicros: updatedAt.UnixMicro()}
}

// UpdatedAt returns the cursor timestamp in UTC.
func (c Cursor) UpdatedAt() time.Time {
	return time.UnixMicro(c.UpdatedMicros).UTC()
}

// IsZero reports whether the cursor points at the first page.
func (c Cursor) IsZero() bool {
	return c.UpdatedMicros == 0 && c.ID == 0 && c.Key == ""
}

// Encode converts a Cursor into a Base64 string.
func Encode(c Cursor) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// Decode parses a Base64 string into a Cursor.
// Empty token → empty cursor (first page).
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, nil
	}

	b, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidToken
	}

	var c Cursor
	if err := json.Unmarshal(b, &c); err != nil {
		return Cursor{}, ErrInvalidToken
	}
	return c, nil
}

// Deref safely dereferences an optional page token.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
