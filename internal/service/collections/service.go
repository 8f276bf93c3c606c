package collections

import (
	"context"
	"slices"

	"github.com/oggyb/reelread/internal/app"
	"github.com/oggyb/reelread/internal/auth"
	"github.com/oggyb/reelread/internal/collection"
	"github.com/oggyb/reelread/internal/db"
	svcErr "github.com/oggyb/reelread/internal/errors"
	"github.com/oggyb/reelread/internal/media"
	pb "github.com/oggyb/reelread/internal/proto/collectionpb"
	"github.com/oggyb/reelread/internal/repository"
	"github.com/oggyb/reelread/internal/service/convert"
	"github.com/oggyb/reelread/internal/validation"
)

// Service implements the Collection gRPC API on top of CollectionRepository.
// Every call acts on the authenticated user's own collections.
type Service struct {
	appCtx     *app.AppContext
	repo       *repository.CollectionRepository
	mediaRepo  *repository.MediaRepository
	membership *Membership

	pb.UnimplementedCollectionServiceServer
}

// NewCollectionService creates a new Collection service with dependencies from AppContext.
func NewCollectionService(appCtx *app.AppContext) *Service {
	repo := repository.NewCollectionRepository(appCtx.DB)
	return &Service{
		appCtx:     appCtx,
		repo:       repo,
		mediaRepo:  repository.NewMediaRepository(appCtx.DB),
		membership: NewMembership(repo, appCtx.Logger),
	}
}

// listWithDistinguished lazily creates the Watched/Read collection and
// returns every collection of kind, distinguished first.
func (s *Service) listWithDistinguished(ctx context.Context, userID string, kind media.Kind) ([]db.Collection, error) {
	if _, created, err := s.repo.EnsureDistinguished(ctx, userID, kind); err != nil {
		return nil, err
	} else if created {
		s.appCtx.Logger.Info("distinguished collection created", "user", userID, "kind", kind)
	}
	return s.repo.ListFor(ctx, userID, kind)
}

// ListCollections returns the user's collections of one kind.
//
// Behavior:
//   - Creates the Watched/Read collection on first visit.
//   - Distinguished collection first, then most recently updated.
func (s *Service) ListCollections(ctx context.Context, req *pb.ListCollectionsRequest) (*pb.ListCollectionsResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	kind, err := media.ParseKind(req.GetKind())
	if err != nil {
		return nil, svcErr.Map(err)
	}

	rows, err := s.listWithDistinguished(ctx, userID, kind)
	if err != nil {
		s.appCtx.Logger.Error("ListCollections failed", "user", userID, "err", err)
		return nil, svcErr.Map(err)
	}

	resp := &pb.ListCollectionsResponse{Collections: make([]*pb.Collection, 0, len(rows))}
	for i := range rows {
		resp.Collections = append(resp.Collections, convert.Collection(&rows[i]))
	}
	return resp, nil
}

// CreateCollection adds an empty, regular collection.
func (s *Service) CreateCollection(ctx context.Context, req *pb.CreateCollectionRequest) (*pb.CreateCollectionResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	c, err := s.repo.Create(ctx, userID, req.Name, media.Kind(req.Kind))
	if err != nil {
		s.appCtx.Logger.Error("CreateCollection failed", "user", userID, "err", err)
		return nil, svcErr.Map(err)
	}
	return &pb.CreateCollectionResponse{Collection: convert.Collection(c)}, nil
}

// DeleteCollection removes one of the user's collections.
// The Watched/Read collection cannot be deleted.
func (s *Service) DeleteCollection(ctx context.Context, req *pb.DeleteCollectionRequest) (*pb.DeleteCollectionResponse, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	c, err := s.repo.Get(ctx, req.GetCollectionID())
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if c.UserID != userID {
		// same answer as a missing row, ids of other users' collections stay opaque
		return nil, svcErr.NotFound("collection not found")
	}
	if c.Distinguished {
		return nil, svcErr.Map(collection.ErrDistinguished)
	}

	if err := s.repo.Delete(ctx, c.ID); err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.DeleteCollectionResponse{}, nil
}

// SyncMembership makes the media belong to exactly the checked collections
// among the user's collections of its kind.
//
// Behavior:
//   - Only collections whose membership differs are rewritten.
//   - Each rewrite is an optimistic-concurrency update (see Membership.Set).
//   - Checked ids that are not the user's collections of that kind are rejected.
//   - Returns the ids of rewritten collections and the resulting state.
func (s *Service) SyncMembership(ctx context.Context, req *pb.SyncMembershipRequest) (*pb.SyncMembershipResponse, error) {
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
	if ok, err := s.mediaRepo.Exists(ctx, ref); err != nil {
		return nil, svcErr.Map(err)
	} else if !ok {
		return nil, svcErr.NotFound(ref.String() + " not found")
	}

	rows, err := s.listWithDistinguished(ctx, userID, ref.Kind)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	owned := make(map[uint64]struct{}, len(rows))
	for _, c := range rows {
		owned[c.ID] = struct{}{}
	}
	for _, id := range req.CheckedCollectionIDs {
		if _, ok := owned[id]; !ok {
			return nil, svcErr.InvalidArgument("checked_collection_ids must be your collections of the same kind")
		}
	}

	resp := &pb.SyncMembershipResponse{Changed: []uint64{}}
	for i := range rows {
		c := &rows[i]
		want := slices.Contains(req.CheckedCollectionIDs, c.ID)
		changed, err := s.membership.Set(ctx, c, ref, want)
		if err != nil {
			s.appCtx.Logger.Error("SyncMembership failed", "user", userID, "collection", c.ID, "err", err)
			return nil, svcErr.Map(err)
		}
		if changed {
			resp.Changed = append(resp.Changed, c.ID)
		}
		resp.Collections = append(resp.Collections, convert.Collection(c))
	}

	s.appCtx.Logger.Debug("SyncMembership result", "user", userID, "media", ref.String(), "changed", len(resp.Changed))
	return resp, nil
}

// GetMembership returns the user's collections of the media's kind and the
// ids of those already containing it, the initial state of the picker.
func (s *Service) GetMembership(ctx context.Context, req *pb.GetMembershipRequest) (*pb.GetMembershipResponse, error) {
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

	rows, err := s.listWithDistinguished(ctx, userID, ref.Kind)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &pb.GetMembershipResponse{CheckedCollectionIDs: []uint64{}}
	for i := range rows {
		c := &rows[i]
		if slices.Contains(c.List(), ref.ID) {
			resp.CheckedCollectionIDs = append(resp.CheckedCollectionIDs, c.ID)
		}
		resp.Collections = append(resp.Collections, convert.Collection(c))
	}
	return resp, nil
}
