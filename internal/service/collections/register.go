package collections

import (
	"google.golang.org/grpc"

	"github.com/oggyb/reelread/internal/app"
	pb "github.com/oggyb/reelread/internal/proto/collectionpb"
)

// Registrar ties the Collection service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the Collection service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the Collection service implementation to the gRPC server
func (r *Registrar) Register(s *grpc.Server) {
	pb.RegisterCollectionServiceServer(s, NewCollectionService(r.appCtx))
}
