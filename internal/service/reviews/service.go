package reviews

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/oggyb/reelread/internal/app"
	"github.com/oggyb/reelread/internal/auth"
	"github.com/oggyb/reelread/internal/db"
	svcErr "github.com/oggyb/reelread/internal/errors"
	"github.com/oggyb/reelread/internal/media"
	"github.com/oggyb/reelread/internal/metrics"
	"github.com/oggyb/reelread/internal/proto/commonpb"
	pb "github.com/oggyb/reelread/internal/proto/reviewpb"
	"github.com/oggyb/reelread/internal/rating"
	"github.com/oggyb/reelread/internal/repository"
	"github.com/oggyb/reelread/internal/service/collections"
	"github.com/oggyb/reelread/internal/service/convert"
	"github.com/oggyb/reelread/internal/validation"
)

// DefaultPageSize is used when a list request leaves page_size unset.
const DefaultPageSize = 20

// Recalculator recomputes a media item's aggregate rating fields.
type Recalculator interface {
	Recalculate(ctx context.Context, ref media.Ref) (rating.Result, error)
}

// ratingStore reads ratings from reviews and writes aggregates onto media rows.
type ratingStore struct {
	reviews *repository.ReviewRepository
	media   *repository.MediaRepository
}

func (s ratingStore) Ratings(ctx context.Context, ref media.Ref) ([]*int, error) {
	return s.reviews.Ratings(ctx, ref)
}

func (s ratingStore) UpdateAggregate(ctx context.Context, ref media.Ref, count int64, avg *float64) error {
	return s.media.UpdateAggregate(ctx, ref, count, avg)
}

// Service implements the Review gRPC API.
// Every mutation recomputes the owning media's aggregates exactly once and
// drops the author's cached recaps.
type Service struct {
	appCtx     *app.AppContext
	reviewRepo *repository.ReviewRepository
	mediaRepo  *repository.MediaRepository
	profiles   *repository.ProfileRepository
	membership *collections.Membership
	recalc     Recalculator

	pb.UnimplementedReviewServiceServer
}

// Option customizes a Service.
type Option func(*Service)

// WithRecalculator replaces the rating recalculator.
func WithRecalculator(r Recalculator) Option {
	return func(s *Service) { s.recalc = r }
}

// NewReviewService creates a new Review service with dependencies from AppContext.
func NewReviewService(appCtx *app.AppContext, opts ...Option) *Service {
	reviewRepo := repository.NewReviewRepository(appCtx.DB)
	mediaRepo := repository.NewMediaRepository(appCtx.DB)
	s := &Service{
		appCtx:     appCtx,
		reviewRepo: reviewRepo,
		mediaRepo:  mediaRepo,
		profiles:   repository.NewProfileRepository(appCtx.DB),
		membership: collections.NewMembership(repository.NewCollectionRepository(appCtx.DB), appCtx.Logger),
		recalc:     rating.NewRecalculator(ratingStore{reviews: reviewRepo, media: mediaRepo}, appCtx.Logger),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// afterWrite runs the follow-ups of a review mutation. None of them fail
// the request: the review write already happened.
func (s *Service) afterWrite(ctx context.Context, userID string, ref media.Ref) {
	if _, err := s.recalc.Recalculate(ctx, ref); err != nil {
		metrics.RatingRecomputeFailures.WithLabelValues(string(ref.Kind)).Inc()
		s.appCtx.Logger.Error("rating recompute failed", "media", ref.String(), "err", err)
	}
	if err := s.appCtx.RedisCache.InvalidateRecaps(ctx, userID); err != nil {
		s.appCtx.Logger.Warn("recap cache invalidation failed", "user", userID, "err", err)
	}
}

// PutReview creates or updates the acting user's review of one media item.
//
// Behavior:
//   - rating is optional (1-5), body at most 2000 chars.
//   - The media must exist.
//   - Recomputes avg_rating/rating_count and drops cached recaps.
//   - Adds the media to the user's Watched/Read collection.
func (s *Service) PutReview(ctx context.Context, req *pb.PutReviewRequest) (*pb.PutReviewResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	ref, err := convert.Ref(req.GetMedia())
	if err != nil {
		return nil, svcErr.Map(err)
	}

	s.appCtx.Logger.Debug("PutReview called", "user", userID, "media", ref.String())

	if ok, err := s.mediaRepo.Exists(ctx, ref); err != nil {
		return nil, svcErr.Map(err)
	} else if !ok {
		return nil, svcErr.NotFound(ref.String() + " not found")
	}

	rv, created, err := s.reviewRepo.Upsert(ctx, userID, ref, convert.RatingIn(req.Rating), req.Body)
	if err != nil {
		s.appCtx.Logger.Error("review upsert failed", "user", userID, "media", ref.String(), "err", err)
		return nil, svcErr.Map(err)
	}

	s.afterWrite(ctx, userID, ref)

	if _, err := s.membership.AddToDistinguished(ctx, userID, ref); err != nil {
		s.appCtx.Logger.Warn("add to distinguished collection failed", "user", userID, "media", ref.String(), "err", err)
	}

	username := ""
	if names, err := s.profiles.Usernames(ctx, []string{userID}); err == nil {
		username = names[userID]
	}
	return &pb.PutReviewResponse{Review: convert.Review(rv, username, true), Created: created}, nil
}

// DeleteReview removes one of the acting user's reviews.
//
// Behavior:
//   - Only the owner may delete (PermissionDenied otherwise).
//   - Recomputes the owning media's aggregates exactly once.
func (s *Service) DeleteReview(ctx context.Context, req *pb.DeleteReviewRequest) (*pb.DeleteReviewResponse, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	rv, err := s.reviewRepo.Get(ctx, req.GetReviewID())
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if rv.UserID != userID {
		return nil, svcErr.PermissionDenied("only the author can delete a review")
	}

	if err := s.reviewRepo.Delete(ctx, rv.ID); err != nil {
		s.appCtx.Logger.Error("review delete failed", "review", rv.ID, "err", err)
		return nil, svcErr.Map(err)
	}

	s.afterWrite(ctx, userID, repository.RefOf(rv))
	return &pb.DeleteReviewResponse{}, nil
}

// ListMediaReviews lists the reviews shown on a media detail screen.
//
// Behavior:
//   - Other users' reviews appear only with non-empty text.
//   - The acting user's review always appears, first, on the first page.
//   - The rest is ordered updated_at DESC, id DESC, cursor-paginated.
func (s *Service) ListMediaReviews(ctx context.Context, req *pb.ListMediaReviewsRequest) (*pb.ListMediaReviewsResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	ref, err := convert.Ref(req.GetMedia())
	if err != nil {
		return nil, svcErr.Map(err)
	}

	limit := int(req.PageSize)
	if limit <= 0 {
		limit = DefaultPageSize
	}

	var rows []db.Review
	if req.GetPaginationToken() == "" {
		own, err := s.reviewRepo.GetByUserAndMedia(ctx, userID, ref)
		switch {
		case err == nil:
			rows = append(rows, *own)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, svcErr.Map(err)
		}
	}

	others, nextToken, err := s.reviewRepo.ListForMedia(ctx, ref, userID, req.PaginationToken, limit)
	if err != nil {
		s.appCtx.Logger.Error("ListForMedia failed", "media", ref.String(), "err", err)
		return nil, svcErr.Map(err)
	}
	rows = append(rows, others...)

	out, err := s.resolve(ctx, rows, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	s.appCtx.Logger.Debug("ListMediaReviews result", "media", ref.String(), "count", len(out), "next_token", nextToken != nil)
	return &pb.ListMediaReviewsResponse{Reviews: out, NextPaginationToken: nextToken}, nil
}

// resolve applies the visibility rule and fills in usernames.
func (s *Service) resolve(ctx context.Context, rows []db.Review, viewerID string) ([]*commonpb.Review, error) {
	names, err := s.profiles.Usernames(ctx, convert.UserIDs(rows))
	if err != nil {
		return nil, err
	}
	return convert.Visible(rows, names, viewerID), nil
}
