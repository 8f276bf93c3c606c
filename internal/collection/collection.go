// Package collection holds the membership rules for user collections.
package collection

import (
	"errors"
	"slices"
)

var (
	// ErrConflict is returned when a collection kept changing under a
	// membership update until the retry budget ran out.
	ErrConflict = errors.New("collection was modified concurrently")
	// ErrDistinguished guards the auto-created Watched/Read collections.
	ErrDistinguished = errors.New("the Watched/Read collection cannot be deleted")
	// ErrKindMismatch is returned when a media id is toggled in a collection of the other kind.
	ErrKindMismatch = errors.New("collection kind does not match media kind")
)

// MaxAttempts bounds the re-read and re-apply loop of a conditional update.
const MaxAttempts = 3

// Toggle returns list with id present (want=true) or absent (want=false).
// changed is false when list already has the desired membership, in which
// case list is returned as is. Appends keep order; removal drops every copy.
func Toggle(list []uint64, id uint64, want bool) ([]uint64, bool) {
	has := slices.Contains(list, id)
	switch {
	case want && !has:
		out := make([]uint64, len(list), len(list)+1)
		copy(out, list)
		return append(out, id), true
	case !want && has:
		out := make([]uint64, 0, len(list))
		for _, v := range list {
			if v != id {
				out = append(out, v)
			}
		}
		return out, true
	}
	return list, false
}
