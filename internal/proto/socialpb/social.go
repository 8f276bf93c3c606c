// Package socialpb defines the SocialService messages and descriptor:
// profiles, friends, device tokens and avatar uploads.
package socialpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oggyb/reelread/internal/proto/commonpb"
	"github.com/oggyb/reelread/internal/proto/rpc"
)

const ServiceName = "reelread.SocialService"

// GetProfileRequest with an empty UserID reads the acting user's profile.
type GetProfileRequest struct {
	UserID string `json:"user_id,omitempty" validate:"omitempty,uuid"`
}

func (x *GetProfileRequest) GetUserID() string {
	if x != nil {
		return x.UserID
	}
	return ""
}

// GetProfileResponse carries IsFriend only when another user's profile is read.
type GetProfileResponse struct {
	Profile  *commonpb.Profile `json:"profile"`
	IsFriend bool              `json:"is_friend,omitempty"`
}

type UpsertProfileRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=64"`
	AvatarURL string `json:"avatar_url,omitempty" validate:"omitempty,url,max=512"`
}

type UpsertProfileResponse struct {
	Profile *commonpb.Profile `json:"profile"`
}

type SendFriendRequestRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

type SendFriendRequestResponse struct {
	Created bool `json:"created"`
}

type AcceptFriendRequestRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

type AcceptFriendRequestResponse struct{}

type ListFriendsRequest struct {
	PaginationToken *string `json:"pagination_token,omitempty"`
}

func (x *ListFriendsRequest) GetPaginationToken() string {
	if x != nil && x.PaginationToken != nil {
		return *x.PaginationToken
	}
	return ""
}

type Friend struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	SinceUnix int64  `json:"since_unix"`
}

type ListFriendsResponse struct {
	Friends             []*Friend `json:"friends"`
	NextPaginationToken *string   `json:"next_pagination_token,omitempty"`
}

func (x *ListFriendsResponse) GetNextPaginationToken() string {
	if x != nil && x.NextPaginationToken != nil {
		return *x.NextPaginationToken
	}
	return ""
}

type CountFriendsRequest struct {
	UserID string `json:"user_id,omitempty" validate:"omitempty,uuid"`
}

type CountFriendsResponse struct {
	Count int64 `json:"count"`
}

type RegisterDeviceTokenRequest struct {
	Token    string `json:"token" validate:"required,max=255"`
	Platform string `json:"platform" validate:"omitempty,oneof=ios android web"`
}

type RegisterDeviceTokenResponse struct{}

type AvatarUploadURLRequest struct {
	ContentType string `json:"content_type" validate:"required,oneof=image/jpeg image/png image/webp"`
}

type AvatarUploadURLResponse struct {
	UploadURL     string `json:"upload_url"`
	PublicURL     string `json:"public_url"`
	ExpiresAtUnix int64  `json:"expires_at_unix"`
}

type SocialServiceServer interface {
	GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error)
	UpsertProfile(context.Context, *UpsertProfileRequest) (*UpsertProfileResponse, error)
	SendFriendRequest(context.Context, *SendFriendRequestRequest) (*SendFriendRequestResponse, error)
	AcceptFriendRequest(context.Context, *AcceptFriendRequestRequest) (*AcceptFriendRequestResponse, error)
	ListFriends(context.Context, *ListFriendsRequest) (*ListFriendsResponse, error)
	CountFriends(context.Context, *CountFriendsRequest) (*CountFriendsResponse, error)
	RegisterDeviceToken(context.Context, *RegisterDeviceTokenRequest) (*RegisterDeviceTokenResponse, error)
	AvatarUploadURL(context.Context, *AvatarUploadURLRequest) (*AvatarUploadURLResponse, error)
	mustEmbedUnimplementedSocialServiceServer()
}

type UnimplementedSocialServiceServer struct{}

func (UnimplementedSocialServiceServer) GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedSocialServiceServer) UpsertProfile(context.Context, *UpsertProfileRequest) (*UpsertProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpsertProfile not implemented")
}
func (UnimplementedSocialServiceServer) SendFriendRequest(context.Context, *SendFriendRequestRequest) (*SendFriendRequestResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SendFriendRequest not implemented")
}
func (UnimplementedSocialServiceServer) AcceptFriendRequest(context.Context, *AcceptFriendRequestRequest) (*AcceptFriendRequestResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AcceptFriendRequest not implemented")
}
func (UnimplementedSocialServiceServer) ListFriends(context.Context, *ListFriendsRequest) (*ListFriendsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListFriends not implemented")
}
func (UnimplementedSocialServiceServer) CountFriends(context.Context, *CountFriendsRequest) (*CountFriendsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CountFriends not implemented")
}
func (UnimplementedSocialServiceServer) RegisterDeviceToken(context.Context, *RegisterDeviceTokenRequest) (*RegisterDeviceTokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterDeviceToken not implemented")
}
func (UnimplementedSocialServiceServer) AvatarUploadURL(context.Context, *AvatarUploadURLRequest) (*AvatarUploadURLResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AvatarUploadURL not implemented")
}
func (UnimplementedSocialServiceServer) mustEmbedUnimplementedSocialServiceServer() {}

const (
	SocialService_GetProfile_FullMethodName = "/" + ServiceName + "/GetProfile"
	SocialService_UpsertProfile_FullMethodName = "/" + ServiceName + "/UpsertProfile"
	SocialService_SendFriendRequest_FullMethodName = "/" + ServiceName + "/SendFriendRequest"
	SocialService_AcceptFriendRequest_FullMethodName = "/" + ServiceName + "/AcceptFriendRequest"
	SocialService_ListFriends_FullMethodName = "/" + ServiceName + "/ListFriends"
	SocialService_CountFriends_FullMethodName = "/" + ServiceName + "/CountFriends"
	SocialService_RegisterDeviceToken_FullMethodName = "/" + ServiceName + "/RegisterDeviceToken"
	SocialService_AvatarUploadURL_FullMethodName = "/" + ServiceName + "/AvatarUploadURL"
)

// SocialServiceClient is the client API for SocialService.
type SocialServiceClient interface {
	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error)
	UpsertProfile(ctx context.Context, in *UpsertProfileRequest, opts ...grpc.CallOption) (*UpsertProfileResponse, error)
	SendFriendRequest(ctx context.Context, in *SendFriendRequestRequest, opts ...grpc.CallOption) (*SendFriendRequestResponse, error)
	AcceptFriendRequest(ctx context.Context, in *AcceptFriendRequestRequest, opts ...grpc.CallOption) (*AcceptFriendRequestResponse, error)
	ListFriends(ctx context.Context, in *ListFriendsRequest, opts ...grpc.CallOption) (*ListFriendsResponse, error)
	CountFriends(ctx context.Context, in *CountFriendsRequest, opts ...grpc.CallOption) (*CountFriendsResponse, error)
	RegisterDeviceToken(ctx context.Context, in *RegisterDeviceTokenRequest, opts ...grpc.CallOption) (*RegisterDeviceTokenResponse, error)
	AvatarUploadURL(ctx context.Context, in *AvatarUploadURLRequest, opts ...grpc.CallOption) (*AvatarUploadURLResponse, error)
}

type socialServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSocialServiceClient(cc grpc.ClientConnInterface) SocialServiceClient {
	return &socialServiceClient{cc}
}

func (c *socialServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(rpc.CodecName)}, opts...)
	out := new(GetProfileResponse)
	err := c.cc.Invoke(ctx, SocialService_GetProfile_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *socialServiceClient) UpsertProfile(ctx context.Context, in *UpsertProfileRequest, opts ...grpc.CallOption) (*UpsertProfileResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(rpc.CodecName)}, opts...)
	out := new(UpsertProfileResponse)
	err := c.cc.Invoke(ctx, SocialService_UpsertProfile_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *socialServiceClient) SendFriendRequest(ctx context.Context, in *SendFriendRequestRequest, opts ...grpc.CallOption) (*SendFriendRequestResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(rpc.CodecName)}, opts...)
	out := new(SendFriendRequestResponse)
	err := c.cc.Invoke(ctx, SocialService_SendFriendRequest_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *socialServiceClient) AcceptFriendRequest(ctx context.Context, in *AcceptFriendRequestRequest, opts ...grpc.CallOption) (*AcceptFriendRequestResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(rpc.CodecName)}, opts...)
	out := new(AcceptFriendRequestResponse)
	err := c.cc.Invoke(ctx, SocialService_AcceptFriendRequest_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *socialServiceClient) ListFriends(ctx context.Context, in *ListFriendsRequest, opts ...grpc.CallOption) (*ListFriendsResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(rpc.CodecName)}, opts...)
	out := new(ListFriendsResponse)
	err := c.cc.Invoke(ctx, SocialService_ListFriends_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *socialServiceClient) CountFriends(ctx context.Context, in *CountFriendsRequest, opts ...grpc.CallOption) (*CountFriendsResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(rpc.CodecName)}, opts...)
	out := new(CountFriendsResponse)
	err := c.cc.Invoke(ctx, SocialService_CountFriends_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *socialServiceClient) RegisterDeviceToken(ctx context.Context, in *RegisterDeviceTokenRequest, opts ...grpc.CallOption) (*RegisterDeviceTokenResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(rpc.CodecName)}, opts...)
	out := new(RegisterDeviceTokenResponse)
	err := c.cc.Invoke(ctx, SocialService_RegisterDeviceToken_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *socialServiceClient) AvatarUploadURL(ctx context.Context, in *AvatarUploadURLRequest, opts ...grpc.CallOption) (*AvatarUploadURLResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(rpc.CodecName)}, opts...)
	out := new(AvatarUploadURLResponse)
	err := c.cc.Invoke(ctx, SocialService_AvatarUploadURL_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterSocialServiceServer(s grpc.ServiceRegistrar, srv SocialServiceServer) {
	s.RegisterService(&SocialService_ServiceDesc, srv)
}

func _SocialService_GetProfile_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetProfileRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SocialServiceServer).GetProfile(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SocialService_GetProfile_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SocialServiceServer).GetProfile(ctx, req.(*GetProfileRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SocialService_UpsertProfile_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(UpsertProfileRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SocialServiceServer).UpsertProfile(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SocialService_UpsertProfile_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SocialServiceServer).UpsertProfile(ctx, req.(*UpsertProfileRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SocialService_SendFriendRequest_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SendFriendRequestRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SocialServiceServer).SendFriendRequest(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SocialService_SendFriendRequest_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SocialServiceServer).SendFriendRequest(ctx, req.(*SendFriendRequestRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SocialService_AcceptFriendRequest_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AcceptFriendRequestRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SocialServiceServer).AcceptFriendRequest(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SocialService_AcceptFriendRequest_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SocialServiceServer).AcceptFriendRequest(ctx, req.(*AcceptFriendRequestRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SocialService_ListFriends_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListFriendsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SocialServiceServer).ListFriends(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SocialService_ListFriends_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SocialServiceServer).ListFriends(ctx, req.(*ListFriendsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SocialService_CountFriends_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CountFriendsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SocialServiceServer).CountFriends(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SocialService_CountFriends_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SocialServiceServer).CountFriends(ctx, req.(*CountFriendsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SocialService_RegisterDeviceToken_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RegisterDeviceTokenRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SocialServiceServer).RegisterDeviceToken(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SocialService_RegisterDeviceToken_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SocialServiceServer).RegisterDeviceToken(ctx, req.(*RegisterDeviceTokenRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SocialService_AvatarUploadURL_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AvatarUploadURLRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SocialServiceServer).AvatarUploadURL(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SocialService_AvatarUploadURL_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SocialServiceServer).AvatarUploadURL(ctx, req.(*AvatarUploadURLRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// SocialService_ServiceDesc is the grpc.ServiceDesc for SocialService.
var SocialService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SocialServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetProfile",
			Handler:    _SocialService_GetProfile_Handler,
		},
		{
			MethodName: "UpsertProfile",
			Handler:    _SocialService_UpsertProfile_Handler,
		},
		{
			MethodName: "SendFriendRequest",
			Handler:    _SocialService_SendFriendRequest_Handler,
		},
		{
			MethodName: "AcceptFriendRequest",
			Handler:    _SocialService_AcceptFriendRequest_Handler,
		},
		{
			MethodName: "ListFriends",
			Handler:    _SocialService_ListFriends_Handler,
		},
		{
			MethodName: "CountFriends",
			Handler:    _SocialService_CountFriends_Handler,
		},
		{
			MethodName: "RegisterDeviceToken",
			Handler:    _SocialService_RegisterDeviceToken_Handler,
		},
		{
			MethodName: "AvatarUploadURL",
			Handler:    _SocialService_AvatarUploadURL_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "reelread/social",
}
