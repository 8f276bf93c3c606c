// Package reviewpb defines the ReviewService messages and descriptor.
package reviewpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oggyb/reelread/internal/proto/commonpb"
	"github.com/oggyb/reelread/internal/proto/rpc"
)

const ServiceName = "reelread.ReviewService"

type PutReviewRequest struct {
	Media  *commonpb.MediaRef `json:"media" validate:"required"`
	Rating *int32             `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Body   string             `json:"body" validate:"max=2000"`
}

func (x *PutReviewRequest) GetMedia() *commonpb.MediaRef {
	if x != nil {
		return x.Media
	}
	return nil
}

type PutReviewResponse struct {
	Review  *commonpb.Review `json:"review"`
	Created bool             `json:"created"`
}

type DeleteReviewRequest struct {
	ReviewID uint64 `json:"review_id"`
}

func (x *DeleteReviewRequest) GetReviewID() uint64 {
	if x != nil {
		return x.ReviewID
	}
	return 0
}

type DeleteReviewResponse struct{}

type ListMediaReviewsRequest struct {
	Media           *commonpb.MediaRef `json:"media" validate:"required"`
	PaginationToken *string            `json:"pagination_token,omitempty"`
	PageSize        int32              `json:"page_size,omitempty" validate:"omitempty,min=1,max=50"`
}

func (x *ListMediaReviewsRequest) GetMedia() *commonpb.MediaRef {
	if x != nil {
		return x.Media
	}
	return nil
}

func (x *ListMediaReviewsRequest) GetPaginationToken() string {
	if x != nil && x.PaginationToken != nil {
		return *x.PaginationToken
	}
	return ""
}

type ListMediaReviewsResponse struct {
	Reviews             []*commonpb.Review `json:"reviews"`
	NextPaginationToken *string            `json:"next_pagination_token,omitempty"`
}

func (x *ListMediaReviewsResponse) GetNextPaginationToken() string {
	if x != nil && x.NextPaginationToken != nil {
		return *x.NextPaginationToken
	}
	return ""
}

// ReviewServiceServer is the server API for ReviewService.
type ReviewServiceServer interface {
	PutReview(context.Context, *PutReviewRequest) (*PutReviewResponse, error)
	DeleteReview(context.Context, *DeleteReviewRequest) (*DeleteReviewResponse, error)
	ListMediaReviews(context.Context, *ListMediaReviewsRequest) (*ListMediaReviewsResponse, error)
	mustEmbedUnimplementedReviewServiceServer()
}

// UnimplementedReviewServiceServer must be embedded for forward compatibility.
type UnimplementedReviewServiceServer struct{}

func (UnimplementedReviewServiceServer) PutReview(context.Context, *PutReviewRequest) (*PutReviewResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PutReview not implemented")
}
func (UnimplementedReviewServiceServer) DeleteReview(context.Context, *DeleteReviewRequest) (*DeleteReviewResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteReview not implemented")
}
func (UnimplementedReviewServiceServer) ListMediaReviews(context.Context, *ListMediaReviewsRequest) (*ListMediaReviewsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMediaReviews not implemented")
}
func (UnimplementedReviewServiceServer) mustEmbedUnimplementedReviewServiceServer() {}

const (
	ReviewService_PutReview_FullMethodName = "/" + ServiceName + "/PutReview"
	ReviewService_DeleteReview_FullMethodName = "/" + ServiceName + "/DeleteReview"
	ReviewService_ListMediaReviews_FullMethodName = "/" + ServiceName + "/ListMediaReviews"
)

// ReviewServiceClient is the client API for ReviewService.
type ReviewServiceClient interface {
	PutReview(ctx context.Context, in *PutReviewRequest, opts ...grpc.CallOption) (*PutReviewResponse, error)
	DeleteReview(ctx context.Context, in *DeleteReviewRequest, opts ...grpc.CallOption) (*DeleteReviewResponse, error)
	ListMediaReviews(ctx context.Context, in *ListMediaReviewsRequest, opts ...grpc.CallOption) (*ListMediaReviewsResponse, error)
}

type reviewServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewReviewServiceClient(cc grpc.ClientConnInterface) ReviewServiceClient {
	return &reviewServiceClient{cc}
}

func (c *reviewServiceClient) PutReview(ctx context.Context, in *PutReviewRequest, opts ...grpc.CallOption) (*PutReviewResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(rpc.CodecName)}, opts...)
	out := new(PutReviewResponse)
	err := c.cc.Invoke(ctx, ReviewService_PutReview_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reviewServiceClient) DeleteReview(ctx context.Context, in *DeleteReviewRequest, opts ...grpc.CallOption) (*DeleteReviewResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(rpc.CodecName)}, opts...)
	out := new(DeleteReviewResponse)
	err := c.cc.Invoke(ctx, ReviewService_DeleteReview_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reviewServiceClient) ListMediaReviews(ctx context.Context, in *ListMediaReviewsRequest, opts ...grpc.CallOption) (*ListMediaReviewsResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(rpc.CodecName)}, opts...)
	out := new(ListMediaReviewsResponse)
	err := c.cc.Invoke(ctx, ReviewService_ListMediaReviews_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterReviewServiceServer(s grpc.ServiceRegistrar, srv ReviewServiceServer) {
	s.RegisterService(&ReviewService_ServiceDesc, srv)
}

func _ReviewService_PutReview_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PutReviewRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReviewServiceServer).PutReview(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ReviewService_PutReview_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ReviewServiceServer).PutReview(ctx, req.(*PutReviewRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ReviewService_DeleteReview_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DeleteReviewRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReviewServiceServer).DeleteReview(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ReviewService_DeleteReview_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ReviewServiceServer).DeleteReview(ctx, req.(*DeleteReviewRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ReviewService_ListMediaReviews_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListMediaReviewsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReviewServiceServer).ListMediaReviews(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ReviewService_ListMediaReviews_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ReviewServiceServer).ListMediaReviews(ctx, req.(*ListMediaReviewsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ReviewService_ServiceDesc is the grpc.ServiceDesc for ReviewService.
var ReviewService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ReviewServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "PutReview",
			Handler:    _ReviewService_PutReview_Handler,
		},
		{
			MethodName: "DeleteReview",
			Handler:    _ReviewService_DeleteReview_Handler,
		},
		{
			MethodName: "ListMediaReviews",
			Handler:    _ReviewService_ListMediaReviews_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "reelread/review",
}
