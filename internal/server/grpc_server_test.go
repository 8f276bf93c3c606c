package server_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/oggyb/reelread/internal/app"
	"github.com/oggyb/reelread/internal/auth"
	"github.com/oggyb/reelread/internal/db"
	"github.com/oggyb/reelread/internal/logger"
	"github.com/oggyb/reelread/internal/proto/collectionpb"
	"github.com/oggyb/reelread/internal/proto/commonpb"
	"github.com/oggyb/reelread/internal/proto/librarypb"
	"github.com/oggyb/reelread/internal/proto/recappb"
	"github.com/oggyb/reelread/internal/proto/reviewpb"
	"github.com/oggyb/reelread/internal/proto/socialpb"
	"github.com/oggyb/reelread/internal/server"
	"github.com/oggyb/reelread/internal/service/collections"
	"github.com/oggyb/reelread/internal/service/library"
	"github.com/oggyb/reelread/internal/service/recaps"
	"github.com/oggyb/reelread/internal/service/reviews"
	"github.com/oggyb/reelread/internal/service/social"
	"github.com/oggyb/reelread/internal/testutil"
)

const userID = "11111111-1111-4111-8111-111111111111"

// startServer runs the full server over an in-memory listener and returns
// a client connection plus a valid token for userID.
func startServer(t *testing.T) (*grpc.ClientConn, string, db.Movie) {
	t.Helper()
	gdb := testutil.NewDB(t)
	rc, _ := testutil.NewCache(t)

	require.NoError(t, gdb.Create(&db.Profile{ID: userID, Username: "alice"}).Error)
	movie := db.Movie{Title: "Heat", ReleaseYear: 1995}
	require.NoError(t, gdb.Create(&movie).Error)

	verifier, err := auth.NewVerifier("test-secret", "")
	require.NoError(t, err)
	token, err := verifier.Sign(userID, time.Hour)
	require.NoError(t, err)

	appCtx := app.New(nil, gdb, rc, logger.Discard())
	srv := server.NewGRPCServer(verifier, logger.Discard(),
		reviews.NewRegistrar(appCtx),
		recaps.NewRegistrar(appCtx),
		collections.NewRegistrar(appCtx),
		library.NewRegistrar(appCtx),
		social.NewRegistrar(appCtx),
	)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn, token, movie
}

func withToken(token string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+token)
}

func TestNewGRPCServer_RegisteredServices(t *testing.T) {
	gdb := testutil.NewDB(t)
	rc, _ := testutil.NewCache(t)
	verifier, err := auth.NewVerifier("test-secret", "")
	require.NoError(t, err)

	appCtx := app.New(nil, gdb, rc, logger.Discard())
	srv := server.NewGRPCServer(verifier, logger.Discard(),
		reviews.NewRegistrar(appCtx),
		recaps.NewRegistrar(appCtx),
		collections.NewRegistrar(appCtx),
		library.NewRegistrar(appCtx),
		social.NewRegistrar(appCtx),
	)
	t.Cleanup(srv.Stop)

	methods := map[string][]string{}
	for name, info := range srv.GetServiceInfo() {
		for _, m := range info.Methods {
			methods[name] = append(methods[name], m.Name)
		}
	}

	assert.ElementsMatch(t, []string{
		reviewpb.ServiceName,
		recappb.ServiceName,
		collectionpb.ServiceName,
		librarypb.ServiceName,
		socialpb.ServiceName,
		healthpb.Health_ServiceDesc.ServiceName,
	}, keys(methods), "no reflection service is exposed")
	assert.ElementsMatch(t, []string{"PutReview", "DeleteReview", "ListMediaReviews"}, methods[reviewpb.ServiceName])
	assert.ElementsMatch(t, []string{"GetMonthlyRecap"}, methods[recappb.ServiceName])
	assert.Len(t, methods[collectionpb.ServiceName], 5)
	assert.Len(t, methods[socialpb.ServiceName], 8)
}

func keys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestHealth_NoTokenNeeded(t *testing.T) {
	conn, _, _ := startServer(t)

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}

func TestMissingToken_Unauthenticated(t *testing.T) {
	conn, _, movie := startServer(t)

	_, err := reviewpb.NewReviewServiceClient(conn).ListMediaReviews(context.Background(), &reviewpb.ListMediaReviewsRequest{
		Media: &commonpb.MediaRef{Kind: "movie", ID: movie.ID},
	})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = reviewpb.NewReviewServiceClient(conn).ListMediaReviews(withToken("garbage"), &reviewpb.ListMediaReviewsRequest{
		Media: &commonpb.MediaRef{Kind: "movie", ID: movie.ID},
	})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestReviewFlow_EndToEnd(t *testing.T) {
	conn, token, movie := startServer(t)
	ctx := withToken(token)
	ref := &commonpb.MediaRef{Kind: "movie", ID: movie.ID}

	rating := int32(4)
	put, err := reviewpb.NewReviewServiceClient(conn).PutReview(ctx, &reviewpb.PutReviewRequest{Media: ref, Rating: &rating})
	require.NoError(t, err)
	assert.True(t, put.Review.Own)

	list, err := reviewpb.NewReviewServiceClient(conn).ListMediaReviews(ctx, &reviewpb.ListMediaReviewsRequest{Media: ref})
	require.NoError(t, err)
	require.Len(t, list.Reviews, 1, "own empty-bodied review is listed")
	assert.Equal(t, "alice", list.Reviews[0].Username)

	// the reviewed movie lands in the distinguished collection
	mem, err := collectionpb.NewCollectionServiceClient(conn).GetMembership(ctx, &collectionpb.GetMembershipRequest{Media: ref})
	require.NoError(t, err)
	require.Len(t, mem.Collections, 1)
	assert.True(t, mem.Collections[0].Distinguished)
	assert.Equal(t, []uint64{mem.Collections[0].ID}, mem.CheckedCollectionIDs)

	_, err = recappb.NewRecapServiceClient(conn).GetMonthlyRecap(ctx, &recappb.GetMonthlyRecapRequest{Kind: "movie"})
	require.NoError(t, err)

	bad := int32(9)
	_, err = reviewpb.NewReviewServiceClient(conn).PutReview(ctx, &reviewpb.PutReviewRequest{Media: ref, Rating: &bad})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Contains(t, status.Convert(err).Message(), "rating must be at most 5")
}
