package recaps

import (
	"context"
	"errors"
	"time"

	"github.com/oggyb/reelread/internal/app"
	"github.com/oggyb/reelread/internal/auth"
	"github.com/oggyb/reelread/internal/cache"
	svcErr "github.com/oggyb/reelread/internal/errors"
	"github.com/oggyb/reelread/internal/media"
	"github.com/oggyb/reelread/internal/metrics"
	"github.com/oggyb/reelread/internal/proto/commonpb"
	pb "github.com/oggyb/reelread/internal/proto/recappb"
	"github.com/oggyb/reelread/internal/recap"
	"github.com/oggyb/reelread/internal/repository"
	"github.com/oggyb/reelread/internal/service/convert"
)

const defaultCacheTTL = 6 * time.Hour

// Service implements the Recap gRPC API.
type Service struct {
	appCtx     *app.AppContext
	reviewRepo *repository.ReviewRepository
	mediaRepo  *repository.MediaRepository
	profiles   *repository.ProfileRepository
	now        func() time.Time

	pb.UnimplementedRecapServiceServer
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now, which picks the default month.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewRecapService creates a new Recap service with dependencies from AppContext.
func NewRecapService(appCtx *app.AppContext, opts ...Option) *Service {
	s := &Service{
		appCtx:     appCtx,
		reviewRepo: repository.NewReviewRepository(appCtx.DB),
		mediaRepo:  repository.NewMediaRepository(appCtx.DB),
		profiles:   repository.NewProfileRepository(appCtx.DB),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) cacheTTL() time.Duration {
	if ttl := s.appCtx.Config.Recap.CacheTTL; ttl > 0 {
		return ttl
	}
	return defaultCacheTTL
}

// cachedRecap is what the cache holds for one kind. Reviews are left out so
// other users' edits and renames show up without invalidation.
type cachedRecap struct {
	Recap    *pb.Recap `json:"recap"`
	MediaIDs []uint64  `json:"media_ids"`
}

// GetMonthlyRecap summarizes the acting user's reviews of one calendar month.
//
// Behavior:
//   - year/month default to the previous calendar month (UTC).
//   - kind selects one media kind; empty means all kinds.
//   - Per kind: total reviews, max rating, every media id tied at the max
//     (with titles), and the visible reviews of the media reviewed that month
//     with usernames resolved and the user's own first.
//   - The summary is cached per user, kind and month until the user's next
//     review write. Reviews and usernames are always read fresh.
//   - Any read failure fails the whole call.
func (s *Service) GetMonthlyRecap(ctx context.Context, req *pb.GetMonthlyRecapRequest) (*pb.GetMonthlyRecapResponse, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	kinds := media.Kinds
	if req.GetKind() != "" {
		k, err := media.ParseKind(req.GetKind())
		if err != nil {
			return nil, svcErr.Map(err)
		}
		kinds = []media.Kind{k}
	}

	start, end := recap.Window(s.now())
	if req.Year != 0 || req.Month != 0 {
		if req.Year < 1900 || req.Month < 1 || req.Month > 12 {
			return nil, svcErr.InvalidArgument("year and month must both be set, month in 1..12")
		}
		start, end = recap.MonthWindow(int(req.Year), time.Month(req.Month))
	}

	s.appCtx.Logger.Debug("GetMonthlyRecap called", "user", userID, "month", start.Format("2006-01"), "kinds", len(kinds))

	version, err := s.appCtx.RedisCache.RecapVersion(ctx, userID)
	cacheable := err == nil
	if err != nil {
		s.appCtx.Logger.Warn("recap cache unavailable", "user", userID, "err", err)
	}

	resp := &pb.GetMonthlyRecapResponse{Year: int32(start.Year()), Month: int32(start.Month())}
	var rows []recap.Row
	loaded := false
	for _, kind := range kinds {
		key := s.appCtx.RedisCache.KeyForRecap(userID, string(kind), start.Year(), start.Month(), version)

		var entry cachedRecap
		hit := false
		if cacheable {
			err := s.appCtx.RedisCache.GetJSON(ctx, key, &entry)
			if err != nil && !errors.Is(err, cache.ErrMiss) {
				s.appCtx.Logger.Warn("recap cache read failed", "key", key, "err", err)
			}
			hit = err == nil && entry.Recap != nil
			if hit {
				metrics.RecapCache.WithLabelValues("hit").Inc()
			} else {
				metrics.RecapCache.WithLabelValues("miss").Inc()
			}
		}

		if !hit {
			if !loaded {
				rows, err = s.loadRows(ctx, userID, start, end)
				if err != nil {
					s.appCtx.Logger.Error("recap rows load failed", "user", userID, "err", err)
					return nil, svcErr.Map(err)
				}
				loaded = true
			}

			sum := recap.Compute(rows, kind)
			out, err := s.summarize(ctx, sum)
			if err != nil {
				return nil, svcErr.Map(err)
			}
			entry = cachedRecap{Recap: out, MediaIDs: sum.MediaIDs}
			if cacheable {
				if err := s.appCtx.RedisCache.SetJSON(ctx, key, entry, s.cacheTTL()); err != nil {
					s.appCtx.Logger.Warn("recap cache write failed", "key", key, "err", err)
				}
			}
		}

		reviews, err := s.reviews(ctx, userID, kind, entry.MediaIDs, start, end)
		if err != nil {
			s.appCtx.Logger.Error("recap reviews load failed", "user", userID, "kind", kind, "err", err)
			return nil, svcErr.Map(err)
		}
		out := *entry.Recap
		out.Reviews = reviews
		resp.Recaps = append(resp.Recaps, &out)
	}
	return resp, nil
}

func (s *Service) loadRows(ctx context.Context, userID string, start, end time.Time) ([]recap.Row, error) {
	reviews, err := s.reviewRepo.ListForUserBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	rows := make([]recap.Row, 0, len(reviews))
	for i := range reviews {
		rv := &reviews[i]
		rows = append(rows, recap.Row{Ref: repository.RefOf(rv), Rating: rv.Rating})
	}
	return rows, nil
}

// summarize decorates a summary with media titles.
func (s *Service) summarize(ctx context.Context, sum recap.Summary) (*pb.Recap, error) {
	out := &pb.Recap{
		Kind:      string(sum.Kind),
		Total:     int32(sum.Total),
		MaxRating: int32(sum.MaxRating),
		Top:       make([]*pb.TopMedia, 0, len(sum.TopMediaIDs)),
	}

	titles, err := s.mediaRepo.Titles(ctx, sum.Kind, sum.TopMediaIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range sum.TopMediaIDs {
		out.Top = append(out.Top, &pb.TopMedia{MediaID: id, Title: titles[id]})
	}
	return out, nil
}

// reviews loads the window's reviews of mediaIDs and applies the visibility rule.
func (s *Service) reviews(
	ctx context.Context,
	userID string,
	kind media.Kind,
	mediaIDs []uint64,
	start, end time.Time,
) ([]*commonpb.Review, error) {
	rows, err := s.reviewRepo.ListForMediaBetween(ctx, kind, mediaIDs, start, end)
	if err != nil {
		return nil, err
	}
	names, err := s.profiles.Usernames(ctx, convert.UserIDs(rows))
	if err != nil {
		return nil, err
	}
	return convert.Visible(rows, names, userID), nil
}
