package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/oggyb/reelread/internal/auth"
)

const userID = "0b6c43a4-5d53-4e0c-9a53-0f4f7e9d2a11"

func newVerifier(t *testing.T) *auth.Verifier {
	t.Helper()
	v, err := auth.NewVerifier("test-secret", "reelread-test")
	require.NoError(t, err)
	return v
}

func TestNewVerifier_RequiresSecret(t *testing.T) {
	_, err := auth.NewVerifier("", "")
	assert.Error(t, err)
}

func TestVerify_RoundTrip(t *testing.T) {
	v := newVerifier(t)
	token, err := v.Sign(userID, time.Minute)
	require.NoError(t, err)

	sub, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, sub)
}

func TestVerify_Rejects(t *testing.T) {
	v := newVerifier(t)

	expired, err := v.Sign(userID, -time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(expired)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	other, err := auth.NewVerifier("other-secret", "reelread-test")
	require.NoError(t, err)
	forged, err := other.Sign(userID, time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(forged)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	wrongIssuer, err := auth.NewVerifier("test-secret", "someone-else")
	require.NoError(t, err)
	token, err := wrongIssuer.Sign(userID, time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestUserID_Missing(t *testing.T) {
	_, err := auth.UserID(context.Background())
	assert.ErrorIs(t, err, auth.ErrNoIdentity)

	id, err := auth.UserID(auth.WithUserID(context.Background(), userID))
	require.NoError(t, err)
	assert.Equal(t, userID, id)
}

func TestUnaryServerInterceptor(t *testing.T) {
	v := newVerifier(t)
	intercept := auth.UnaryServerInterceptor(v)
	info := &grpc.UnaryServerInfo{FullMethod: "/reelread.ReviewService/PutReview"}

	var seen string
	handler := func(ctx context.Context, req any) (any, error) {
		seen, _ = auth.UserID(ctx)
		return "ok", nil
	}

	t.Run("missing token", func(t *testing.T) {
		_, err := intercept(context.Background(), nil, info, handler)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := v.Sign(userID, time.Minute)
		require.NoError(t, err)
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))

		resp, err := intercept(ctx, nil, info, handler)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp)
		assert.Equal(t, userID, seen)
	})

	t.Run("health is exempt", func(t *testing.T) {
		health := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}
		_, err := intercept(context.Background(), nil, health, handler)
		assert.NoError(t, err)
	})
}
