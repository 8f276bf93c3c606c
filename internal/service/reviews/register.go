package reviews

import (
	"google.golang.org/grpc"

	"github.com/oggyb/reelread/internal/app"
	pb "github.com/oggyb/reelread/internal/proto/reviewpb"
)

// Registrar ties the Review service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the Review service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the Review service implementation to the gRPC server
func (r *Registrar) Register(s *grpc.Server) {
	pb.RegisterReviewServiceServer(s, NewReviewService(r.appCtx))
}
