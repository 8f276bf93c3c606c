package library

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/oggyb/reelread/internal/app"
	"github.com/oggyb/reelread/internal/auth"
	svcErr "github.com/oggyb/reelread/internal/errors"
	"github.com/oggyb/reelread/internal/media"
	"github.com/oggyb/reelread/internal/proto/commonpb"
	pb "github.com/oggyb/reelread/internal/proto/librarypb"
	"github.com/oggyb/reelread/internal/proto/reviewpb"
	"github.com/oggyb/reelread/internal/repository"
	"github.com/oggyb/reelread/internal/service/convert"
	"github.com/oggyb/reelread/internal/service/reviews"
	"github.com/oggyb/reelread/internal/validation"
)

const defaultSearchLimit = 20

// Service implements the Library gRPC API: media detail and search.
type Service struct {
	appCtx    *app.AppContext
	mediaRepo *repository.MediaRepository
	reviews   *reviews.Service

	pb.UnimplementedLibraryServiceServer
}

// NewLibraryService creates a new Library service with dependencies from AppContext.
func NewLibraryService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:    appCtx,
		mediaRepo: repository.NewMediaRepository(appCtx.DB),
		reviews:   reviews.NewReviewService(appCtx),
	}
}

// GetMedia returns the detail screen of one movie or book.
//
// Behavior:
//   - The media row and the first page of its review list load in parallel;
//     either failing fails the call.
//   - OwnReview is the acting user's review, also first in Reviews.
func (s *Service) GetMedia(ctx context.Context, req *pb.GetMediaRequest) (*pb.GetMediaResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	if _, err := auth.UserID(ctx); err != nil {
		return nil, svcErr.Map(err)
	}
	ref, err := convert.Ref(req.GetMedia())
	if err != nil {
		return nil, svcErr.Map(err)
	}

	var (
		item *commonpb.MediaItem
		list *reviewpb.ListMediaReviewsResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		item, err = s.load(gctx, ref)
		return err
	})
	g.Go(func() error {
		var err error
		list, err = s.reviews.ListMediaReviews(gctx, &reviewpb.ListMediaReviewsRequest{Media: req.GetMedia()})
		return err
	})
	if err := g.Wait(); err != nil {
		s.appCtx.Logger.Error("GetMedia failed", "media", ref.String(), "err", err)
		return nil, svcErr.Map(err)
	}

	resp := &pb.GetMediaResponse{
		Item:                item,
		Reviews:             list.Reviews,
		NextPaginationToken: list.NextPaginationToken,
	}
	if len(list.Reviews) > 0 && list.Reviews[0].Own {
		resp.OwnReview = list.Reviews[0]
	}
	return resp, nil
}

func (s *Service) load(ctx context.Context, ref media.Ref) (*commonpb.MediaItem, error) {
	if ref.Kind == media.Book {
		b, err := s.mediaRepo.GetBook(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return convert.Book(b), nil
	}
	m, err := s.mediaRepo.GetMovie(ctx, ref.ID)
	if err != nil {
		return nil, err
	}
	return convert.Movie(m), nil
}

// SearchMedia does a case-insensitive title search within one kind,
// most-rated first.
func (s *Service) SearchMedia(ctx context.Context, req *pb.SearchMediaRequest) (*pb.SearchMediaResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	if _, err := auth.UserID(ctx); err != nil {
		return nil, svcErr.Map(err)
	}

	limit := int(req.Limit)
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	resp := &pb.SearchMediaResponse{Items: []*commonpb.MediaItem{}}
	switch media.Kind(req.Kind) {
	case media.Book:
		rows, err := s.mediaRepo.SearchBooks(ctx, req.Query, limit)
		if err != nil {
			return nil, svcErr.Map(err)
		}
		for i := range rows {
			resp.Items = append(resp.Items, convert.Book(&rows[i]))
		}
	default:
		rows, err := s.mediaRepo.SearchMovies(ctx, req.Query, limit)
		if err != nil {
			return nil, svcErr.Map(err)
		}
		for i := range rows {
			resp.Items = append(resp.Items, convert.Movie(&rows[i]))
		}
	}
	return resp, nil
}
