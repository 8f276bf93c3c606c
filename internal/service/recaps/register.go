package recaps

import (
	"google.golang.org/grpc"

	"github.com/oggyb/reelread/internal/app"
	pb "github.com/oggyb/reelread/internal/proto/recappb"
)

// Registrar ties the Recap service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the Recap service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the Recap service implementation to the gRPC server
func (r *Registrar) Register(s *grpc.Server) {
	pb.RegisterRecapServiceServer(s, NewRecapService(r.appCtx))
}
