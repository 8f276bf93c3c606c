// Package convert maps between db rows and wire messages.
package convert

import (
	"github.com/oggyb/reelread/internal/db"
	"github.com/oggyb/reelread/internal/media"
	"github.com/oggyb/reelread/internal/proto/collectionpb"
	"github.com/oggyb/reelread/internal/proto/commonpb"
	"github.com/oggyb/reelread/internal/repository"
	"github.com/oggyb/reelread/internal/review"
)

// Ref validates a wire media reference.
func Ref(m *commonpb.MediaRef) (media.Ref, error) {
	if m == nil {
		return media.Ref{}, media.ErrMissingID
	}
	return media.NewRef(m.GetKind(), m.GetID())
}

func RefPB(ref media.Ref) *commonpb.MediaRef {
	return &commonpb.MediaRef{Kind: string(ref.Kind), ID: ref.ID}
}

// RatingIn converts the optional wire rating.
func RatingIn(r *int32) *int {
	if r == nil {
		return nil
	}
	v := int(*r)
	return &v
}

func RatingOut(r *int) *int32 {
	if r == nil {
		return nil
	}
	v := int32(*r)
	return &v
}

// Review converts one row; own marks the acting user's review.
func Review(rv *db.Review, username string, own bool) *commonpb.Review {
	return &commonpb.Review{
		ID:          rv.ID,
		UserID:      rv.UserID,
		Username:    username,
		Media:       RefPB(repository.RefOf(rv)),
		Rating:      RatingOut(rv.Rating),
		Body:        rv.Body,
		Own:         own,
		UpdatedUnix: rv.UpdatedAt.UnixMilli(),
	}
}

// Visible applies the review visibility rule for viewerID and converts the
// survivors. names maps user id to username.
func Visible(rows []db.Review, names map[string]string, viewerID string) []*commonpb.Review {
	byID := make(map[uint64]*db.Review, len(rows))
	entries := make([]review.Entry, 0, len(rows))
	for i := range rows {
		rv := &rows[i]
		byID[rv.ID] = rv
		entries = append(entries, review.Entry{
			ID:        rv.ID,
			UserID:    rv.UserID,
			Username:  names[rv.UserID],
			Rating:    rv.Rating,
			Body:      rv.Body,
			UpdatedAt: rv.UpdatedAt,
		})
	}

	visible := review.Visible(entries, viewerID)
	out := make([]*commonpb.Review, 0, len(visible))
	for _, e := range visible {
		out = append(out, Review(byID[e.ID], e.Username, e.UserID == viewerID))
	}
	return out
}

// UserIDs lists the authors of rows.
func UserIDs(rows []db.Review) []string {
	ids := make([]string, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].UserID)
	}
	return ids
}

func Movie(m *db.Movie) *commonpb.MediaItem {
	return &commonpb.MediaItem{
		Kind:        string(media.Movie),
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Overview,
		Year:        int32(m.ReleaseYear),
		ImageURL:    m.PosterURL,
		Genres:      m.Genres,
		AvgRating:   m.AvgRating,
		RatingCount: m.RatingCount,
	}
}

func Book(b *db.Book) *commonpb.MediaItem {
	return &commonpb.MediaItem{
		Kind:        string(media.Book),
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Authors:     b.Authors,
		Year:        int32(b.PublishedYear),
		ImageURL:    b.CoverURL,
		Genres:      b.Genres,
		AvgRating:   b.AvgRating,
		RatingCount: b.RatingCount,
	}
}

func Collection(c *db.Collection) *collectionpb.Collection {
	ids := c.List()
	if ids == nil {
		ids = []uint64{}
	}
	return &collectionpb.Collection{
		ID:            c.ID,
		Name:          c.Name,
		Kind:          c.Kind,
		MediaIDs:      ids,
		Distinguished: c.Distinguished,
		Version:       c.Version,
		UpdatedUnix:   c.UpdatedAt.UnixMilli(),
	}
}

func Profile(p *db.Profile) *commonpb.Profile {
	return &commonpb.Profile{
		ID:           p.ID,
		Username:     p.Username,
		AvatarURL:    p.AvatarURL,
		FriendsCount: p.FriendsCount,
	}
}
