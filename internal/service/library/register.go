package library

import (
	"google.golang.org/grpc"

	"github.com/oggyb/reelread/internal/app"
	pb "github.com/oggyb/reelread/internal/proto/librarypb"
)

// Registrar ties the Library service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the Library service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the Library service implementation to the gRPC server
func (r *Registrar) Register(s *grpc.Server) {
	pb.RegisterLibraryServiceServer(s, NewLibraryService(r.appCtx))
}
