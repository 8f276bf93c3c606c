package media

import (
	"errors"
	"fmt"
	"strings"
)

// Kind discriminates the two media tables.
type Kind string

const (
	Movie Kind = "movie"
	Book  Kind = "book"
)

var ErrUnknownKind = errors.New("unknown media kind")

// ErrMissingID is returned for a reference without a media id.
var ErrMissingID = errors.New("media id must be set")

// Kinds lists every supported kind in display order.
var Kinds = []Kind{Movie, Book}

// ParseKind accepts "movie"/"movies" and "book"/"books", case-insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies":
		return Movie, nil
	case "book", "books":
		return Book, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// DistinguishedName is the name of the auto-created collection for the kind.
func (k Kind) DistinguishedName() string {
	if k == Book {
		return "Read"
	}
	return "Watched"
}

func (k Kind) String() string { return string(k) }

// Ref points at exactly one movie or book.
type Ref struct {
	Kind Kind
	ID   uint64
}

func (r Ref) String() string { return fmt.Sprintf("%s:%d", r.Kind, r.ID) }

// NewRef validates kind and id.
func NewRef(kind string, id uint64) (Ref, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return Ref{}, err
	}
	if id == 0 {
		return Ref{}, ErrMissingID
	}
	return Ref{Kind: k, ID: id}, nil
}
