// Package collectionpb defines the CollectionService messages and descriptor.
package collectionpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oggyb/reelread/internal/proto/commonpb"
	"github.com/oggyb/reelread/internal/proto/rpc"
)

const ServiceName = "reelread.CollectionService"

type Collection struct {
	ID            uint64   `json:"id"`
	Name          string   `json:"name"`
	Kind          string   `json:"kind"`
	MediaIDs      []uint64 `json:"media_ids"`
	Distinguished bool     `json:"distinguished"`
	Version       uint64   `json:"version"`
	UpdatedUnix   int64    `json:"updated_unix"`
}

type ListCollectionsRequest struct {
	Kind string `json:"kind" validate:"required,oneof=movie book"`
}

func (x *ListCollectionsRequest) GetKind() string {
	if x != nil {
		return x.Kind
	}
	return ""
}

type ListCollectionsResponse struct {
	Collections []*Collection `json:"collections"`
}

type CreateCollectionRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Kind string `json:"kind" validate:"required,oneof=movie book"`
}

type CreateCollectionResponse struct {
	Collection *Collection `json:"collection"`
}

type DeleteCollectionRequest struct {
	CollectionID uint64 `json:"collection_id"`
}

func (x *DeleteCollectionRequest) GetCollectionID() uint64 {
	if x != nil {
		return x.CollectionID
	}
	return 0
}

type DeleteCollectionResponse struct{}

// SyncMembershipRequest carries the desired state: Media belongs to exactly
// the collections listed in CheckedCollectionIDs among the user's collections
// of its kind.
type SyncMembershipRequest struct {
	Media                *commonpb.MediaRef `json:"media" validate:"required"`
	CheckedCollectionIDs []uint64           `json:"checked_collection_ids"`
}

func (x *SyncMembershipRequest) GetMedia() *commonpb.MediaRef {
	if x != nil {
		return x.Media
	}
	return nil
}

type SyncMembershipResponse struct {
	Changed     []uint64      `json:"changed"`
	Collections []*Collection `json:"collections"`
}

type GetMembershipRequest struct {
	Media *commonpb.MediaRef `json:"media" validate:"required"`
}

func (x *GetMembershipRequest) GetMedia() *commonpb.MediaRef {
	if x != nil {
		return x.Media
	}
	return nil
}

type GetMembershipResponse struct {
	Collections          []*Collection `json:"collections"`
	CheckedCollectionIDs []uint64      `json:"checked_collection_ids"`
}

type CollectionServiceServer interface {
	ListCollections(context.Context, *ListCollectionsRequest) (*ListCollectionsResponse, error)
	CreateCollection(context.Context, *CreateCollectionRequest) (*CreateCollectionResponse, error)
	DeleteCollection(context.Context, *DeleteCollectionRequest) (*DeleteCollectionResponse, error)
	SyncMembership(context.Context, *SyncMembershipRequest) (*SyncMembershipResponse, error)
	GetMembership(context.Context, *GetMembershipRequest) (*GetMembershipResponse, error)
	mustEmbedUnimplementedCollectionServiceServer()
}

type UnimplementedCollectionServiceServer struct{}

func (UnimplementedCollectionServiceServer) ListCollections(context.Context, *ListCollectionsRequest) (*ListCollectionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListCollections not implemented")
}
func (UnimplementedCollectionServiceServer) CreateCollection(context.Context, *CreateCollectionRequest) (*CreateCollectionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateCollection not implemented")
}
func (UnimplementedCollectionServiceServer) DeleteCollection(context.Context, *DeleteCollectionRequest) (*DeleteCollectionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteCollection not implemented")
}
func (UnimplementedCollectionServiceServer) SyncMembership(context.Context, *SyncMembershipRequest) (*SyncMembershipResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SyncMembership not implemented")
}
func (UnimplementedCollectionServiceServer) GetMembership(context.Context, *GetMembershipRequest) (*GetMembershipResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMembership not implemented")
}
func (UnimplementedCollectionServiceServer) mustEmbedUnimplementedCollectionServiceServer() {}

const (
	CollectionService_ListCollections_FullMethodName = "/" + ServiceName + "/ListCollections"
	CollectionService_CreateCollection_FullMethodName = "/" + ServiceName + "/CreateCollection"
	CollectionService_DeleteCollection_FullMethodName = "/" + ServiceName + "/DeleteCollection"
	CollectionService_SyncMembership_FullMethodName = "/" + ServiceName + "/SyncMembership"
	CollectionService_GetMembership_FullMethodName = "/" + ServiceName + "/GetMembership"
)

// CollectionServiceClient is the client API for CollectionService.
type CollectionServiceClient interface {
	ListCollections(ctx context.Context, in *ListCollectionsRequest, opts ...grpc.CallOption) (*ListCollectionsResponse, error)
	CreateCollection(ctx context.Context, in *CreateCollectionRequest, opts ...grpc.CallOption) (*CreateCollectionResponse, error)
	DeleteCollection(ctx context.Context, in *DeleteCollectionRequest, opts ...grpc.CallOption) (*DeleteCollectionResponse, error)
	SyncMembership(ctx context.Context, in *SyncMembershipRequest, opts ...grpc.CallOption) (*SyncMembershipResponse, error)
	GetMembership(ctx context.Context, in *GetMembershipRequest, opts ...grpc.CallOption) (*GetMembershipResponse, error)
}

type collectionServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCollectionServiceClient(cc grpc.ClientConnInterface) CollectionServiceClient {
	return &collectionServiceClient{cc}
}

func (c *collectionServiceClient) ListCollections(ctx context.Context, in *ListCollectionsRequest, opts ...grpc.CallOption) (*ListCollectionsResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(rpc.CodecName)}, opts...)
	out := new(ListCollectionsResponse)
	err := c.cc.Invoke(ctx, CollectionService_ListCollections_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *collectionServiceClient) CreateCollection(ctx context.Context, in *CreateCollectionRequest, opts ...grpc.CallOption) (*CreateCollectionResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(rpc.CodecName)}, opts...)
	out := new(CreateCollectionResponse)
	err := c.cc.Invoke(ctx, CollectionService_CreateCollection_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *collectionServiceClient) DeleteCollection(ctx context.Context, in *DeleteCollectionRequest, opts ...grpc.CallOption) (*DeleteCollectionResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(rpc.CodecName)}, opts...)
	out := new(DeleteCollectionResponse)
	err := c.cc.Invoke(ctx, CollectionService_DeleteCollection_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *collectionServiceClient) SyncMembership(ctx context.Context, in *SyncMembershipRequest, opts ...grpc.CallOption) (*SyncMembershipResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(rpc.CodecName)}, opts...)
	out := new(SyncMembershipResponse)
	err := c.cc.Invoke(ctx, CollectionService_SyncMembership_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *collectionServiceClient) GetMembership(ctx context.Context, in *GetMembershipRequest, opts ...grpc.CallOption) (*GetMembershipResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(rpc.CodecName)}, opts...)
	out := new(GetMembershipResponse)
	err := c.cc.Invoke(ctx, CollectionService_GetMembership_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterCollectionServiceServer(s grpc.ServiceRegistrar, srv CollectionServiceServer) {
	s.RegisterService(&CollectionService_ServiceDesc, srv)
}

func _CollectionService_ListCollections_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListCollectionsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CollectionServiceServer).ListCollections(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CollectionService_ListCollections_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CollectionServiceServer).ListCollections(ctx, req.(*ListCollectionsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _CollectionService_CreateCollection_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateCollectionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CollectionServiceServer).CreateCollection(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CollectionService_CreateCollection_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CollectionServiceServer).CreateCollection(ctx, req.(*CreateCollectionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _CollectionService_DeleteCollection_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DeleteCollectionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CollectionServiceServer).DeleteCollection(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CollectionService_DeleteCollection_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CollectionServiceServer).DeleteCollection(ctx, req.(*DeleteCollectionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _CollectionService_SyncMembership_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SyncMembershipRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CollectionServiceServer).SyncMembership(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CollectionService_SyncMembership_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CollectionServiceServer).SyncMembership(ctx, req.(*SyncMembershipRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _CollectionService_GetMembership_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetMembershipRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CollectionServiceServer).GetMembership(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CollectionService_GetMembership_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CollectionServiceServer).GetMembership(ctx, req.(*GetMembershipRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// CollectionService_ServiceDesc is the grpc.ServiceDesc for CollectionService.
var CollectionService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CollectionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListCollections",
			Handler:    _CollectionService_ListCollections_Handler,
		},
		{
			MethodName: "CreateCollection",
			Handler:    _CollectionService_CreateCollection_Handler,
		},
		{
			MethodName: "DeleteCollection",
			Handler:    _CollectionService_DeleteCollection_Handler,
		},
		{
			MethodName: "SyncMembership",
			Handler:    _CollectionService_SyncMembership_Handler,
		},
		{
			MethodName: "GetMembership",
			Handler:    _CollectionService_GetMembership_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "reelread/collection",
}
