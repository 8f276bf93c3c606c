package social_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	"github.com/oggyb/reelread/internal/app"
	"github.com/oggyb/reelread/internal/auth"
	"github.com/oggyb/reelread/internal/cache"
	"github.com/oggyb/reelread/internal/config"
	"github.com/oggyb/reelread/internal/db"
	"github.com/oggyb/reelread/internal/logger"
	pb "github.com/oggyb/reelread/internal/proto/socialpb"
	"github.com/oggyb/reelread/internal/push"
	"github.com/oggyb/reelread/internal/repository"
	"github.com/oggyb/reelread/internal/service/social"
	"github.com/oggyb/reelread/internal/storage"
	"github.com/oggyb/reelread/internal/testutil"
)

const (
	alice = "11111111-1111-4111-8111-111111111111"
	bob   = "22222222-2222-4222-8222-222222222222"
	carol = "33333333-3333-4333-8333-333333333333"
)

type fixture struct {
	svc    *social.Service
	db     *gorm.DB
	cache  *cache.RedisCache
	mr     *miniredis.Miniredis
	pushes *atomic.Int32
}

// setupService seeds three profiles and points push delivery at a local
// endpoint that counts batches.
func setupService(t *testing.T) fixture {
	t.Helper()
	gdb := testutil.NewDB(t)
	rc, mr := testutil.NewCache(t)

	require.NoError(t, gdb.Create(&[]db.Profile{
		{ID: alice, Username: "alice"},
		{ID: bob, Username: "bob"},
		{ID: carol, Username: "carol"},
	}).Error)

	pushes := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pushes.Add(1)
		_, _ = w.Write([]byte(`{"data":[{"status":"ok"}]}`))
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Push.Endpoint = srv.URL
	cfg.Storage.Endpoint = "localhost:9000"
	cfg.Storage.AccessKey = "minioadmin"
	cfg.Storage.SecretKey = "minioadmin"
	cfg.Storage.Bucket = "avatars"
	cfg.Storage.Region = "us-east-1"

	avatars, err := storage.NewAvatars(cfg)
	require.NoError(t, err)
	dispatcher := push.NewDispatcher(cfg, repository.NewProfileRepository(gdb), logger.Discard())

	appCtx := app.New(cfg, gdb, rc, logger.Discard(), app.WithPush(dispatcher), app.WithAvatars(avatars))
	return fixture{svc: social.NewSocialService(appCtx), db: gdb, cache: rc, mr: mr, pushes: pushes}
}

func as(userID string) context.Context {
	return auth.WithUserID(context.Background(), userID)
}

func TestProfile_GetAndUpsert(t *testing.T) {
	f := setupService(t)

	own, err := f.svc.GetProfile(as(alice), &pb.GetProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "alice", own.Profile.Username)

	other, err := f.svc.GetProfile(as(alice), &pb.GetProfileRequest{UserID: bob})
	require.NoError(t, err)
	assert.Equal(t, "bob", other.Profile.Username)

	up, err := f.svc.UpsertProfile(as(alice), &pb.UpsertProfileRequest{Username: "alice_r", AvatarURL: "https://cdn.example.com/a.png"})
	require.NoError(t, err)
	assert.Equal(t, "alice_r", up.Profile.Username)
	assert.Equal(t, "https://cdn.example.com/a.png", up.Profile.AvatarURL)

	renamed, err := f.svc.UpsertProfile(as(alice), &pb.UpsertProfileRequest{Username: "alice_2"})
	require.NoError(t, err)
	assert.Equal(t, "alice_2", renamed.Profile.Username)
	assert.Equal(t, "https://cdn.example.com/a.png", renamed.Profile.AvatarURL, "avatar kept on rename")

	_, err = f.svc.UpsertProfile(as(alice), &pb.UpsertProfileRequest{Username: "bob"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	_, err = f.svc.GetProfile(as(alice), &pb.GetProfileRequest{UserID: "not-a-uuid"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGetProfile_IsFriend(t *testing.T) {
	f := setupService(t)

	before, err := f.svc.GetProfile(as(alice), &pb.GetProfileRequest{UserID: bob})
	require.NoError(t, err)
	assert.False(t, before.IsFriend)

	_, err = f.svc.SendFriendRequest(as(alice), &pb.SendFriendRequestRequest{UserID: bob})
	require.NoError(t, err)
	pending, err := f.svc.GetProfile(as(bob), &pb.GetProfileRequest{UserID: alice})
	require.NoError(t, err)
	assert.False(t, pending.IsFriend, "a pending request is not a friendship")

	_, err = f.svc.AcceptFriendRequest(as(bob), &pb.AcceptFriendRequestRequest{UserID: alice})
	require.NoError(t, err)

	fromAlice, err := f.svc.GetProfile(as(alice), &pb.GetProfileRequest{UserID: bob})
	require.NoError(t, err)
	assert.True(t, fromAlice.IsFriend)
	fromBob, err := f.svc.GetProfile(as(bob), &pb.GetProfileRequest{UserID: alice})
	require.NoError(t, err)
	assert.True(t, fromBob.IsFriend)

	own, err := f.svc.GetProfile(as(alice), &pb.GetProfileRequest{})
	require.NoError(t, err)
	assert.False(t, own.IsFriend)
}

func TestFriendRequest_AcceptFlow(t *testing.T) {
	f := setupService(t)

	_, err := f.svc.RegisterDeviceToken(as(bob), &pb.RegisterDeviceTokenRequest{Token: "ExponentPushToken[bob]", Platform: "ios"})
	require.NoError(t, err)
	_, err = f.svc.RegisterDeviceToken(as(alice), &pb.RegisterDeviceTokenRequest{Token: "ExponentPushToken[alice]", Platform: "android"})
	require.NoError(t, err)

	sent, err := f.svc.SendFriendRequest(as(alice), &pb.SendFriendRequestRequest{UserID: bob})
	require.NoError(t, err)
	assert.True(t, sent.Created)
	assert.Equal(t, int32(1), f.pushes.Load(), "bob is notified")

	again, err := f.svc.SendFriendRequest(as(alice), &pb.SendFriendRequestRequest{UserID: bob})
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, int32(1), f.pushes.Load())

	_, err = f.svc.AcceptFriendRequest(as(bob), &pb.AcceptFriendRequestRequest{UserID: alice})
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.pushes.Load(), "alice is notified")

	var notifications int64
	require.NoError(t, f.db.Model(&db.Notification{}).Count(&notifications).Error)
	assert.Equal(t, int64(2), notifications)

	list, err := f.svc.ListFriends(as(alice), &pb.ListFriendsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Friends, 1)
	assert.Equal(t, bob, list.Friends[0].UserID)
	assert.Equal(t, "bob", list.Friends[0].Username)

	var p db.Profile
	require.NoError(t, f.db.First(&p, "id = ?", bob).Error)
	assert.Equal(t, int64(1), p.FriendsCount)

	_, err = f.svc.AcceptFriendRequest(as(bob), &pb.AcceptFriendRequestRequest{UserID: alice})
	assert.Equal(t, codes.NotFound, status.Code(err), "already accepted")
}

func TestSendFriendRequest_ReverseRequestAccepts(t *testing.T) {
	f := setupService(t)

	_, err := f.svc.SendFriendRequest(as(alice), &pb.SendFriendRequestRequest{UserID: carol})
	require.NoError(t, err)

	resp, err := f.svc.SendFriendRequest(as(carol), &pb.SendFriendRequestRequest{UserID: alice})
	require.NoError(t, err)
	assert.False(t, resp.Created)

	count, err := f.svc.CountFriends(as(carol), &pb.CountFriendsRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Count)
}

func TestSendFriendRequest_Invalid(t *testing.T) {
	f := setupService(t)

	_, err := f.svc.SendFriendRequest(as(alice), &pb.SendFriendRequestRequest{UserID: alice})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = f.svc.SendFriendRequest(as(alice), &pb.SendFriendRequestRequest{UserID: "44444444-4444-4444-8444-444444444444"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestCountFriends_CacheFirst(t *testing.T) {
	ctx := context.Background()
	f := setupService(t)

	// First call → DB, then cached
	resp1, err := f.svc.CountFriends(as(alice), &pb.CountFriendsRequest{})
	require.NoError(t, err)
	assert.Zero(t, resp1.Count)

	n, ok, err := f.cache.GetFriendsCount(ctx, alice)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Zero(t, n)

	// Second call → cache, even if the DB says otherwise
	require.NoError(t, f.cache.UpdateFriendsCount(ctx, alice, 7))
	resp2, err := f.svc.CountFriends(as(alice), &pb.CountFriendsRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp2.Count)

	// cache down → DB
	f.mr.Close()
	resp3, err := f.svc.CountFriends(as(alice), &pb.CountFriendsRequest{})
	require.NoError(t, err)
	assert.Zero(t, resp3.Count)
}

func TestAvatarUploadURL(t *testing.T) {
	f := setupService(t)

	resp, err := f.svc.AvatarUploadURL(as(alice), &pb.AvatarUploadURLRequest{ContentType: "image/png"})
	require.NoError(t, err)
	assert.Contains(t, resp.UploadURL, "X-Amz-Signature")
	assert.Contains(t, resp.PublicURL, "/avatars/"+alice+"/")
	assert.NotZero(t, resp.ExpiresAtUnix)

	_, err = f.svc.AvatarUploadURL(as(alice), &pb.AvatarUploadURLRequest{ContentType: "image/gif"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestAvatarUploadURL_NoStorage(t *testing.T) {
	gdb := testutil.NewDB(t)
	rc, _ := testutil.NewCache(t)
	require.NoError(t, gdb.Create(&db.Profile{ID: alice, Username: "alice"}).Error)

	svc := social.NewSocialService(app.New(nil, gdb, rc, logger.Discard()))
	_, err := svc.AvatarUploadURL(as(alice), &pb.AvatarUploadURLRequest{ContentType: "image/jpeg"})
	assert.Equal(t, codes.Internal, status.Code(err))

	// without a dispatcher the notification row is still written
	require.NoError(t, gdb.Create(&db.Profile{ID: bob, Username: "bob"}).Error)
	_, err = svc.SendFriendRequest(as(alice), &pb.SendFriendRequestRequest{UserID: bob})
	require.NoError(t, err)

	var n db.Notification
	require.NoError(t, gdb.First(&n, "user_id = ?", bob).Error)
	assert.Equal(t, push.KindFriendRequest, n.Kind)
	assert.Equal(t, "alice wants to be friends", n.Body)
}

func TestUnauthenticated(t *testing.T) {
	f := setupService(t)
	_, err := f.svc.ListFriends(context.Background(), &pb.ListFriendsRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
