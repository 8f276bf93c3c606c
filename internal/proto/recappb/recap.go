// Package recappb defines the RecapService messages and descriptor.
package recappb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oggyb/reelread/internal/proto/commonpb"
	"github.com/oggyb/reelread/internal/proto/rpc"
)

const ServiceName = "reelread.RecapService"

// GetMonthlyRecapRequest selects one month. Year and Month zero mean the
// previous calendar month. An empty Kind returns every kind.
type GetMonthlyRecapRequest struct {
	Kind  string `json:"kind,omitempty"`
	Year  int32  `json:"year,omitempty"`
	Month int32  `json:"month,omitempty"`
}

func (x *GetMonthlyRecapRequest) GetKind() string {
	if x != nil {
		return x.Kind
	}
	return ""
}

type TopMedia struct {
	MediaID uint64 `json:"media_id"`
	Title   string `json:"title"`
}

// Recap is one kind's summary. Reviews lists every visible review of the
// media the user reviewed that month, the user's own first.
type Recap struct {
	Kind      string             `json:"kind"`
	Total     int32              `json:"total"`
	MaxRating int32              `json:"max_rating"`
	Top       []*TopMedia        `json:"top"`
	Reviews   []*commonpb.Review `json:"reviews"`
}

type GetMonthlyRecapResponse struct {
	Year   int32    `json:"year"`
	Month  int32    `json:"month"`
	Recaps []*Recap `json:"recaps"`
}

type RecapServiceServer interface {
	GetMonthlyRecap(context.Context, *GetMonthlyRecapRequest) (*GetMonthlyRecapResponse, error)
	mustEmbedUnimplementedRecapServiceServer()
}

type UnimplementedRecapServiceServer struct{}

func (UnimplementedRecapServiceServer) GetMonthlyRecap(context.Context, *GetMonthlyRecapRequest) (*GetMonthlyRecapResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMonthlyRecap not implemented")
}
func (UnimplementedRecapServiceServer) mustEmbedUnimplementedRecapServiceServer() {}

const (
	RecapService_GetMonthlyRecap_FullMethodName = "/" + ServiceName + "/GetMonthlyRecap"
)

// RecapServiceClient is the client API for RecapService.
type RecapServiceClient interface {
	GetMonthlyRecap(ctx context.Context, in *GetMonthlyRecapRequest, opts ...grpc.CallOption) (*GetMonthlyRecapResponse, error)
}

type recapServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewRecapServiceClient(cc grpc.ClientConnInterface) RecapServiceClient {
	return &recapServiceClient{cc}
}

func (c *recapServiceClient) GetMonthlyRecap(ctx context.Context, in *GetMonthlyRecapRequest, opts ...grpc.CallOption) (*GetMonthlyRecapResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(rpc.CodecName)}, opts...)
	out := new(GetMonthlyRecapResponse)
	err := c.cc.Invoke(ctx, RecapService_GetMonthlyRecap_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterRecapServiceServer(s grpc.ServiceRegistrar, srv RecapServiceServer) {
	s.RegisterService(&RecapService_ServiceDesc, srv)
}

func _RecapService_GetMonthlyRecap_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetMonthlyRecapRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RecapServiceServer).GetMonthlyRecap(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: RecapService_GetMonthlyRecap_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RecapServiceServer).GetMonthlyRecap(ctx, req.(*GetMonthlyRecapRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// RecapService_ServiceDesc is the grpc.ServiceDesc for RecapService.
var RecapService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RecapServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetMonthlyRecap",
			Handler:    _RecapService_GetMonthlyRecap_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "reelread/recap",
}
