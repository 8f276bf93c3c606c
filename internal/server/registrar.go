package server

import "google.golang.org/grpc"

// Registrar attaches one service to the gRPC server. Every package under
// internal/service provides one built from the shared AppContext.
type Registrar interface {
	Register(s *grpc.Server)
}
