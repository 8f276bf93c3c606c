package social

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/oggyb/reelread/internal/app"
	"github.com/oggyb/reelread/internal/auth"
	"github.com/oggyb/reelread/internal/db"
	svcErr "github.com/oggyb/reelread/internal/errors"
	pb "github.com/oggyb/reelread/internal/proto/socialpb"
	"github.com/oggyb/reelread/internal/push"
	"github.com/oggyb/reelread/internal/repository"
	"github.com/oggyb/reelread/internal/service/convert"
	"github.com/oggyb/reelread/internal/validation"
)

const friendsPageSize = 20

// Service implements the Social gRPC API.
// It contains the business logic on top of repository and cache layers.
type Service struct {
	appCtx      *app.AppContext
	profiles    *repository.ProfileRepository
	friendships *repository.FriendshipRepository

	pb.UnimplementedSocialServiceServer
}

// NewSocialService creates a new Social service with dependencies from AppContext.
func NewSocialService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:      appCtx,
		profiles:    repository.NewProfileRepository(appCtx.DB),
		friendships: repository.NewFriendshipRepository(appCtx.DB),
	}
}

// GetProfile returns a profile; an empty user_id reads the caller's own.
// For another user's profile it also reports whether the two are friends.
func (s *Service) GetProfile(ctx context.Context, req *pb.GetProfileRequest) (*pb.GetProfileResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	target := req.GetUserID()
	if target == "" {
		target = userID
	}

	p, err := s.profiles.Get(ctx, target)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	resp := &pb.GetProfileResponse{Profile: convert.Profile(p)}
	if target != userID {
		resp.IsFriend, err = s.friendships.AreFriends(ctx, userID, target)
		if err != nil {
			s.appCtx.Logger.Error("AreFriends failed", "user", userID, "target", target, "err", err)
			return nil, svcErr.Map(err)
		}
	}
	return resp, nil
}

// UpsertProfile creates the caller's profile on first sign-in or updates
// username and avatar url. An empty avatar url keeps the current avatar.
func (s *Service) UpsertProfile(ctx context.Context, req *pb.UpsertProfileRequest) (*pb.UpsertProfileResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	p, err := s.profiles.Upsert(ctx, userID, req.Username, req.AvatarURL)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, svcErr.AlreadyExists("username is taken")
		}
		s.appCtx.Logger.Error("UpsertProfile failed", "user", userID, "err", err)
		return nil, svcErr.Map(err)
	}
	return &pb.UpsertProfileResponse{Profile: convert.Profile(p)}, nil
}

// SendFriendRequest asks another user to become friends.
//
// Behavior:
//   - Repeated requests are no-ops (Created=false).
//   - When the other user already asked the caller, the request is accepted instead.
//   - A new request notifies the addressee.
func (s *Service) SendFriendRequest(ctx context.Context, req *pb.SendFriendRequestRequest) (*pb.SendFriendRequestResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if req.UserID == userID {
		return nil, svcErr.InvalidArgument("cannot befriend yourself")
	}

	target, err := s.profiles.Get(ctx, req.UserID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	// the other side already asked: treat this as acceptance
	if reverse, err := s.friendships.Get(ctx, target.ID, userID); err == nil {
		if !reverse.Accepted {
			if err := s.accept(ctx, target.ID, userID); err != nil {
				return nil, svcErr.Map(err)
			}
		}
		return &pb.SendFriendRequestResponse{Created: false}, nil
	} else if !repository.IsNotFound(err) {
		return nil, svcErr.Map(err)
	}

	created, err := s.friendships.CreateRequest(ctx, userID, target.ID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if created {
		s.notify(ctx, &db.Notification{
			UserID: target.ID,
			Kind:   push.KindFriendRequest,
			Title:  "New friend request",
			Body:   s.username(ctx, userID) + " wants to be friends",
		})
	}
	return &pb.SendFriendRequestResponse{Created: created}, nil
}

// AcceptFriendRequest accepts the pending request sent by user_id.
func (s *Service) AcceptFriendRequest(ctx context.Context, req *pb.AcceptFriendRequestRequest) (*pb.AcceptFriendRequestResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	if err := s.accept(ctx, req.UserID, userID); err != nil {
		if repository.IsNotFound(err) {
			return nil, svcErr.NotFound("no pending friend request from this user")
		}
		return nil, svcErr.Map(err)
	}
	return &pb.AcceptFriendRequestResponse{}, nil
}

// accept marks the request accepted, refreshes both cached counters and
// notifies the requester.
func (s *Service) accept(ctx context.Context, requesterID, addresseeID string) error {
	if err := s.friendships.Accept(ctx, requesterID, addresseeID); err != nil {
		return err
	}
	for _, id := range []string{requesterID, addresseeID} {
		if err := s.refreshFriendsCount(ctx, id); err != nil {
			s.appCtx.Logger.Warn("friends count cache refresh failed", "user", id, "err", err)
		}
	}
	s.notify(ctx, &db.Notification{
		UserID: requesterID,
		Kind:   push.KindFriendAccepted,
		Title:  "Friend request accepted",
		Body:   s.username(ctx, addresseeID) + " accepted your friend request",
	})
	return nil
}

func (s *Service) refreshFriendsCount(ctx context.Context, userID string) error {
	count, err := s.friendships.CountFriends(ctx, userID)
	if err != nil {
		return err
	}
	return s.appCtx.RedisCache.UpdateFriendsCount(ctx, userID, count)
}

// ListFriends returns the caller's friends, most recent first, paginated.
func (s *Service) ListFriends(ctx context.Context, req *pb.ListFriendsRequest) (*pb.ListFriendsResponse, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	friends, nextToken, err := s.friendships.ListFriends(ctx, userID, req.PaginationToken, friendsPageSize)
	if err != nil {
		s.appCtx.Logger.Error("ListFriends failed", "user", userID, "err", err)
		return nil, svcErr.Map(err)
	}

	ids := make([]string, 0, len(friends))
	for _, f := range friends {
		ids = append(ids, f.FriendID)
	}
	names, err := s.profiles.Usernames(ctx, ids)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &pb.ListFriendsResponse{Friends: make([]*pb.Friend, 0, len(friends)), NextPaginationToken: nextToken}
	for _, f := range friends {
		resp.Friends = append(resp.Friends, &pb.Friend{
			UserID:    f.FriendID,
			Username:  names[f.FriendID],
			SinceUnix: f.UpdatedAt.UnixMilli(),
		})
	}
	return resp, nil
}

// CountFriends returns how many friends a user has.
// Cache-first strategy:
//  1. Attempts to read from Redis (friends:count:userID).
//  2. On a miss or cache error, falls back to DB via repository.CountFriends.
//  3. On DB fetch, updates Redis with a 1h TTL.
func (s *Service) CountFriends(ctx context.Context, req *pb.CountFriendsRequest) (*pb.CountFriendsResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	target := req.UserID
	if target == "" {
		target = userID
	}

	// try cache first
	if n, ok, err := s.appCtx.RedisCache.GetFriendsCount(ctx, target); err == nil && ok {
		return &pb.CountFriendsResponse{Count: n}, nil
	}

	// fallback: DB
	count, err := s.friendships.CountFriends(ctx, target)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	_ = s.appCtx.RedisCache.UpdateFriendsCount(ctx, target, count)

	return &pb.CountFriendsResponse{Count: count}, nil
}

// RegisterDeviceToken stores the caller's push token.
func (s *Service) RegisterDeviceToken(ctx context.Context, req *pb.RegisterDeviceTokenRequest) (*pb.RegisterDeviceTokenResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	if _, err := s.profiles.RegisterDeviceToken(ctx, userID, req.Token, req.Platform); err != nil {
		s.appCtx.Logger.Error("RegisterDeviceToken failed", "user", userID, "err", err)
		return nil, svcErr.Map(err)
	}
	return &pb.RegisterDeviceTokenResponse{}, nil
}

// AvatarUploadURL returns a presigned PUT for a new avatar image. The
// client uploads there, then stores PublicURL through UpsertProfile.
func (s *Service) AvatarUploadURL(ctx context.Context, req *pb.AvatarUploadURLRequest) (*pb.AvatarUploadURLResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if s.appCtx.Avatars == nil {
		return nil, svcErr.Map(errors.New("avatar storage is not configured"))
	}

	up, err := s.appCtx.Avatars.PresignUpload(ctx, userID, req.ContentType)
	if err != nil {
		s.appCtx.Logger.Error("AvatarUploadURL failed", "user", userID, "err", err)
		return nil, svcErr.Map(err)
	}
	return &pb.AvatarUploadURLResponse{
		UploadURL:     up.UploadURL,
		PublicURL:     up.PublicURL,
		ExpiresAtUnix: up.ExpiresAt.Unix(),
	}, nil
}

// notify records and pushes a notification. Failures never reach the caller.
func (s *Service) notify(ctx context.Context, n *db.Notification) {
	if s.appCtx.Push == nil {
		if err := s.profiles.CreateNotification(ctx, n); err != nil {
			s.appCtx.Logger.Warn("notification insert failed", "user", n.UserID, "err", err)
		}
		return
	}
	if err := s.appCtx.Push.Notify(ctx, n); err != nil {
		s.appCtx.Logger.Warn("notification failed", "user", n.UserID, "kind", n.Kind, "err", err)
	}
}

func (s *Service) username(ctx context.Context, userID string) string {
	names, err := s.profiles.Usernames(ctx, []string{userID})
	if err != nil || names[userID] == "" {
		return "Someone"
	}
	return names[userID]
}
