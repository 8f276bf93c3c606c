// Package librarypb defines the LibraryService messages and descriptor.
package librarypb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oggyb/reelread/internal/proto/commonpb"
	"github.com/oggyb/reelread/internal/proto/rpc"
)

const ServiceName = "reelread.LibraryService"

type GetMediaRequest struct {
	Media *commonpb.MediaRef `json:"media" validate:"required"`
}

func (x *GetMediaRequest) GetMedia() *commonpb.MediaRef {
	if x != nil {
		return x.Media
	}
	return nil
}

// GetMediaResponse is the detail screen: the item, the first page of its
// visible reviews, and the acting user's own review if any.
type GetMediaResponse struct {
	Item                *commonpb.MediaItem `json:"item"`
	Reviews             []*commonpb.Review  `json:"reviews"`
	OwnReview           *commonpb.Review    `json:"own_review,omitempty"`
	NextPaginationToken *string             `json:"next_pagination_token,omitempty"`
}

type SearchMediaRequest struct {
	Kind  string `json:"kind" validate:"required,oneof=movie book"`
	Query string `json:"query" validate:"required,max=200"`
	Limit int32  `json:"limit,omitempty" validate:"omitempty,min=1,max=50"`
}

type SearchMediaResponse struct {
	Items []*commonpb.MediaItem `json:"items"`
}

type LibraryServiceServer interface {
	GetMedia(context.Context, *GetMediaRequest) (*GetMediaResponse, error)
	SearchMedia(context.Context, *SearchMediaRequest) (*SearchMediaResponse, error)
	mustEmbedUnimplementedLibraryServiceServer()
}

type UnimplementedLibraryServiceServer struct{}

func (UnimplementedLibraryServiceServer) GetMedia(context.Context, *GetMediaRequest) (*GetMediaResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMedia not implemented")
}
func (UnimplementedLibraryServiceServer) SearchMedia(context.Context, *SearchMediaRequest) (*SearchMediaResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SearchMedia not implemented")
}
func (UnimplementedLibraryServiceServer) mustEmbedUnimplementedLibraryServiceServer() {}

const (
	LibraryService_GetMedia_FullMethodName = "/" + ServiceName + "/GetMedia"
	LibraryService_SearchMedia_FullMethodName = "/" + ServiceName + "/SearchMedia"
)

// LibraryServiceClient is the client API for LibraryService.
type LibraryServiceClient interface {
	GetMedia(ctx context.Context, in *GetMediaRequest, opts ...grpc.CallOption) (*GetMediaResponse, error)
	SearchMedia(ctx context.Context, in *SearchMediaRequest, opts ...grpc.CallOption) (*SearchMediaResponse, error)
}

type libraryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLibraryServiceClient(cc grpc.ClientConnInterface) LibraryServiceClient {
	return &libraryServiceClient{cc}
}

func (c *libraryServiceClient) GetMedia(ctx context.Context, in *GetMediaRequest, opts ...grpc.CallOption) (*GetMediaResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(rpc.CodecName)}, opts...)
	out := new(GetMediaResponse)
	err := c.cc.Invoke(ctx, LibraryService_GetMedia_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *libraryServiceClient) SearchMedia(ctx context.Context, in *SearchMediaRequest, opts ...grpc.CallOption) (*SearchMediaResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(rpc.CodecName)}, opts...)
	out := new(SearchMediaResponse)
	err := c.cc.Invoke(ctx, LibraryService_SearchMedia_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterLibraryServiceServer(s grpc.ServiceRegistrar, srv LibraryServiceServer) {
	s.RegisterService(&LibraryService_ServiceDesc, srv)
}

func _LibraryService_GetMedia_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetMediaRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LibraryServiceServer).GetMedia(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: LibraryService_GetMedia_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LibraryServiceServer).GetMedia(ctx, req.(*GetMediaRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _LibraryService_SearchMedia_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SearchMediaRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LibraryServiceServer).SearchMedia(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: LibraryService_SearchMedia_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LibraryServiceServer).SearchMedia(ctx, req.(*SearchMediaRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// LibraryService_ServiceDesc is the grpc.ServiceDesc for LibraryService.
var LibraryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LibraryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetMedia",
			Handler:    _LibraryService_GetMedia_Handler,
		},
		{
			MethodName: "SearchMedia",
			Handler:    _LibraryService_SearchMedia_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "reelread/library",
}
