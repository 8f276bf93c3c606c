package social

import (
	"google.golang.org/grpc"

	"github.com/oggyb/reelread/internal/app"
	pb "github.com/oggyb/reelread/internal/proto/socialpb"
)

// Registrar ties the Social service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the Social service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the Social service implementation to the gRPC server
func (r *Registrar) Register(s *grpc.Server) {
	pb.RegisterSocialServiceServer(s, NewSocialService(r.appCtx))
}
