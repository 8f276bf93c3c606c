package review

import (
	"strings"
	"time"
)

// Entry is a review as shown in a list, username already resolved.
type Entry struct {
	ID        uint64
	UserID    string
	Username  string
	Rating    *int
	Body      string
	UpdatedAt time.Time
}

// HasText reports whether the review carries non-blank text.
func (e Entry) HasText() bool { return strings.TrimSpace(e.Body) != "" }

// Visible filters a review list for viewerID: other users' reviews only show
// when they have text, the viewer's own reviews always show and come first.
// Relative order is otherwise preserved.
func Visible(entries []Entry, viewerID string) []Entry {
	own := make([]Entry, 0, 1)
	rest := make([]Entry, 0, len(entries))
	for _, e := range entries {
		switch {
		case viewerID != "" && e.UserID == viewerID:
			own = append(own, e)
		case e.HasText():
			rest = append(rest, e)
		}
	}
	return append(own, rest...)
}
