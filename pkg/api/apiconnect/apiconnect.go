// Package apiconnect wires the api messages to Connect handlers and
// clients. It follows the layout of protoc-gen-connect-go output with a JSON
// codec in place of protobuf.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	api "github.com/mmynk/lostfound/pkg/api"
)

// This is a compile-time assertion to ensure that this file and the connect
// package are compatible.
const _ = connect.IsAtLeastVersion1_13_0

// Fully-qualified service names.
const (
	AuthServiceName         = "lostfound.v1.AuthService"
	ProfileServiceName      = "lostfound.v1.ProfileService"
	ItemServiceName         = "lostfound.v1.ItemService"
	ClaimServiceName        = "lostfound.v1.ClaimService"
	ChatServiceName         = "lostfound.v1.ChatService"
	NotificationServiceName = "lostfound.v1.NotificationService"
	RewardServiceName       = "lostfound.v1.RewardService"
	BackupServiceName       = "lostfound.v1.BackupService"
	RealtimeServiceName     = "lostfound.v1.RealtimeService"
)

// Procedure names. They are the HTTP paths the handlers are mounted on.
const (
	AuthServiceRegisterProcedure                  = "/lostfound.v1.AuthService/Register"
	AuthServiceLoginProcedure                     = "/lostfound.v1.AuthService/Login"
	AuthServiceLogoutProcedure                    = "/lostfound.v1.AuthService/Logout"
	AuthServiceGetCurrentUserProcedure            = "/lostfound.v1.AuthService/GetCurrentUser"
	AuthServiceListTenantsProcedure               = "/lostfound.v1.AuthService/ListTenants"
	ProfileServiceGetProfileProcedure             = "/lostfound.v1.ProfileService/GetProfile"
	ProfileServiceUpdateProfileProcedure          = "/lostfound.v1.ProfileService/UpdateProfile"
	ProfileServiceGetPreferencesProcedure         = "/lostfound.v1.ProfileService/GetPreferences"
	ProfileServiceUpdatePreferencesProcedure      = "/lostfound.v1.ProfileService/UpdatePreferences"
	ProfileServiceUploadAvatarProcedure           = "/lostfound.v1.ProfileService/UploadAvatar"
	ProfileServiceDeleteAccountProcedure          = "/lostfound.v1.ProfileService/DeleteAccount"
	ItemServiceCreateItemProcedure                = "/lostfound.v1.ItemService/CreateItem"
	ItemServiceUpdateItemProcedure                = "/lostfound.v1.ItemService/UpdateItem"
	ItemServiceGetItemProcedure                   = "/lostfound.v1.ItemService/GetItem"
	ItemServiceListItemsProcedure                 = "/lostfound.v1.ItemService/ListItems"
	ItemServiceSearchItemsProcedure               = "/lostfound.v1.ItemService/SearchItems"
	ItemServiceSearchByImageProcedure             = "/lostfound.v1.ItemService/SearchByImage"
	ItemServiceEnhanceDescriptionProcedure        = "/lostfound.v1.ItemService/EnhanceDescription"
	ItemServiceFindMatchesProcedure               = "/lostfound.v1.ItemService/FindMatches"
	ItemServiceModerateItemProcedure              = "/lostfound.v1.ItemService/ModerateItem"
	ClaimServiceCreateClaimProcedure              = "/lostfound.v1.ClaimService/CreateClaim"
	ClaimServiceListClaimsProcedure               = "/lostfound.v1.ClaimService/ListClaims"
	ClaimServiceResolveClaimProcedure             = "/lostfound.v1.ClaimService/ResolveClaim"
	ChatServiceStartConversationProcedure         = "/lostfound.v1.ChatService/StartConversation"
	ChatServiceListConversationsProcedure         = "/lostfound.v1.ChatService/ListConversations"
	ChatServiceSendMessageProcedure               = "/lostfound.v1.ChatService/SendMessage"
	ChatServiceListMessagesProcedure              = "/lostfound.v1.ChatService/ListMessages"
	NotificationServiceListNotificationsProcedure = "/lostfound.v1.NotificationService/ListNotifications"
	NotificationServiceMarkReadProcedure          = "/lostfound.v1.NotificationService/MarkRead"
	NotificationServiceUnreadCountProcedure       = "/lostfound.v1.NotificationService/UnreadCount"
	RewardServiceGetDashboardProcedure            = "/lostfound.v1.RewardService/GetDashboard"
	RewardServiceGetLeaderboardProcedure          = "/lostfound.v1.RewardService/GetLeaderboard"
	RewardServiceListBadgesProcedure              = "/lostfound.v1.RewardService/ListBadges"
	RewardServiceSendThanksProcedure              = "/lostfound.v1.RewardService/SendThanks"
	RewardServiceListThanksProcedure              = "/lostfound.v1.RewardService/ListThanks"
	BackupServiceCreateBackupProcedure            = "/lostfound.v1.BackupService/CreateBackup"
	BackupServiceListBackupsProcedure             = "/lostfound.v1.BackupService/ListBackups"
	RealtimeServiceSubscribeProcedure             = "/lostfound.v1.RealtimeService/Subscribe"
)

// handlerOptions puts the JSON codec first so callers can still override it.
func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
}

// routes dispatches a service's requests by procedure path.
type routes map[string]http.Handler

func (r routes) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if h, ok := r[req.URL.Path]; ok {
		h.ServeHTTP(w, req)
		return
	}
	http.NotFound(w, req)
}

// AuthServiceClient is a client for the lostfound.v1.AuthService service.
type AuthServiceClient interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	Logout(context.Context, *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error)
	ListTenants(context.Context, *connect.Request[api.ListTenantsRequest]) (*connect.Response[api.ListTenantsResponse], error)
}

// NewAuthServiceClient constructs a client for the lostfound.v1.AuthService service.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &authServiceClient{
		register: connect.NewClient[api.RegisterRequest, api.RegisterResponse](
			httpClient,
			baseURL+AuthServiceRegisterProcedure,
			opts...,
		),
		login: connect.NewClient[api.LoginRequest, api.LoginResponse](
			httpClient,
			baseURL+AuthServiceLoginProcedure,
			opts...,
		),
		logout: connect.NewClient[api.LogoutRequest, api.LogoutResponse](
			httpClient,
			baseURL+AuthServiceLogoutProcedure,
			opts...,
		),
		getCurrentUser: connect.NewClient[api.GetCurrentUserRequest, api.GetCurrentUserResponse](
			httpClient,
			baseURL+AuthServiceGetCurrentUserProcedure,
			opts...,
		),
		listTenants: connect.NewClient[api.ListTenantsRequest, api.ListTenantsResponse](
			httpClient,
			baseURL+AuthServiceListTenantsProcedure,
			opts...,
		),
	}
}

// authServiceClient implements AuthServiceClient.
type authServiceClient struct {
	register       *connect.Client[api.RegisterRequest, api.RegisterResponse]
	login          *connect.Client[api.LoginRequest, api.LoginResponse]
	logout         *connect.Client[api.LogoutRequest, api.LogoutResponse]
	getCurrentUser *connect.Client[api.GetCurrentUserRequest, api.GetCurrentUserResponse]
	listTenants    *connect.Client[api.ListTenantsRequest, api.ListTenantsResponse]
}

// Register calls lostfound.v1.AuthService.Register.
func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

// Login calls lostfound.v1.AuthService.Login.
func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

// Logout calls lostfound.v1.AuthService.Logout.
func (c *authServiceClient) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	return c.logout.CallUnary(ctx, req)
}

// GetCurrentUser calls lostfound.v1.AuthService.GetCurrentUser.
func (c *authServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

// ListTenants calls lostfound.v1.AuthService.ListTenants.
func (c *authServiceClient) ListTenants(ctx context.Context, req *connect.Request[api.ListTenantsRequest]) (*connect.Response[api.ListTenantsResponse], error) {
	return c.listTenants.CallUnary(ctx, req)
}

// AuthServiceHandler authenticates users.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	Logout(context.Context, *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error)
	ListTenants(context.Context, *connect.Request[api.ListTenantsRequest]) (*connect.Response[api.ListTenantsResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + AuthServiceName + "/", routes{
		AuthServiceRegisterProcedure: connect.NewUnaryHandler(
			AuthServiceRegisterProcedure,
			svc.Register,
			opts...,
		),
		AuthServiceLoginProcedure: connect.NewUnaryHandler(
			AuthServiceLoginProcedure,
			svc.Login,
			opts...,
		),
		AuthServiceLogoutProcedure: connect.NewUnaryHandler(
			AuthServiceLogoutProcedure,
			svc.Logout,
			opts...,
		),
		AuthServiceGetCurrentUserProcedure: connect.NewUnaryHandler(
			AuthServiceGetCurrentUserProcedure,
			svc.GetCurrentUser,
			opts...,
		),
		AuthServiceListTenantsProcedure: connect.NewUnaryHandler(
			AuthServiceListTenantsProcedure,
			svc.ListTenants,
			opts...,
		),
	}
}

// UnimplementedAuthServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedAuthServiceHandler struct{}

func (UnimplementedAuthServiceHandler) Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.AuthService.Register is not implemented"))
}

func (UnimplementedAuthServiceHandler) Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.AuthService.Login is not implemented"))
}

func (UnimplementedAuthServiceHandler) Logout(context.Context, *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.AuthService.Logout is not implemented"))
}

func (UnimplementedAuthServiceHandler) GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.AuthService.GetCurrentUser is not implemented"))
}

func (UnimplementedAuthServiceHandler) ListTenants(context.Context, *connect.Request[api.ListTenantsRequest]) (*connect.Response[api.ListTenantsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.AuthService.ListTenants is not implemented"))
}

// ProfileServiceClient is a client for the lostfound.v1.ProfileService service.
type ProfileServiceClient interface {
	GetProfile(context.Context, *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error)
	UpdateProfile(context.Context, *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error)
	GetPreferences(context.Context, *connect.Request[api.GetPreferencesRequest]) (*connect.Response[api.GetPreferencesResponse], error)
	UpdatePreferences(context.Context, *connect.Request[api.UpdatePreferencesRequest]) (*connect.Response[api.UpdatePreferencesResponse], error)
	UploadAvatar(context.Context, *connect.Request[api.UploadAvatarRequest]) (*connect.Response[api.UploadAvatarResponse], error)
	DeleteAccount(context.Context, *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error)
}

// NewProfileServiceClient constructs a client for the lostfound.v1.ProfileService service.
func NewProfileServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ProfileServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &profileServiceClient{
		getProfile: connect.NewClient[api.GetProfileRequest, api.GetProfileResponse](
			httpClient,
			baseURL+ProfileServiceGetProfileProcedure,
			opts...,
		),
		updateProfile: connect.NewClient[api.UpdateProfileRequest, api.UpdateProfileResponse](
			httpClient,
			baseURL+ProfileServiceUpdateProfileProcedure,
			opts...,
		),
		getPreferences: connect.NewClient[api.GetPreferencesRequest, api.GetPreferencesResponse](
			httpClient,
			baseURL+ProfileServiceGetPreferencesProcedure,
			opts...,
		),
		updatePreferences: connect.NewClient[api.UpdatePreferencesRequest, api.UpdatePreferencesResponse](
			httpClient,
			baseURL+ProfileServiceUpdatePreferencesProcedure,
			opts...,
		),
		uploadAvatar: connect.NewClient[api.UploadAvatarRequest, api.UploadAvatarResponse](
			httpClient,
			baseURL+ProfileServiceUploadAvatarProcedure,
			opts...,
		),
		deleteAccount: connect.NewClient[api.DeleteAccountRequest, api.DeleteAccountResponse](
			httpClient,
			baseURL+ProfileServiceDeleteAccountProcedure,
			opts...,
		),
	}
}

// profileServiceClient implements ProfileServiceClient.
type profileServiceClient struct {
	getProfile        *connect.Client[api.GetProfileRequest, api.GetProfileResponse]
	updateProfile     *connect.Client[api.UpdateProfileRequest, api.UpdateProfileResponse]
	getPreferences    *connect.Client[api.GetPreferencesRequest, api.GetPreferencesResponse]
	updatePreferences *connect.Client[api.UpdatePreferencesRequest, api.UpdatePreferencesResponse]
	uploadAvatar      *connect.Client[api.UploadAvatarRequest, api.UploadAvatarResponse]
	deleteAccount     *connect.Client[api.DeleteAccountRequest, api.DeleteAccountResponse]
}

// GetProfile calls lostfound.v1.ProfileService.GetProfile.
func (c *profileServiceClient) GetProfile(ctx context.Context, req *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	return c.getProfile.CallUnary(ctx, req)
}

// UpdateProfile calls lostfound.v1.ProfileService.UpdateProfile.
func (c *profileServiceClient) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	return c.updateProfile.CallUnary(ctx, req)
}

// GetPreferences calls lostfound.v1.ProfileService.GetPreferences.
func (c *profileServiceClient) GetPreferences(ctx context.Context, req *connect.Request[api.GetPreferencesRequest]) (*connect.Response[api.GetPreferencesResponse], error) {
	return c.getPreferences.CallUnary(ctx, req)
}

// UpdatePreferences calls lostfound.v1.ProfileService.UpdatePreferences.
func (c *profileServiceClient) UpdatePreferences(ctx context.Context, req *connect.Request[api.UpdatePreferencesRequest]) (*connect.Response[api.UpdatePreferencesResponse], error) {
	return c.updatePreferences.CallUnary(ctx, req)
}

// UploadAvatar calls lostfound.v1.ProfileService.UploadAvatar.
func (c *profileServiceClient) UploadAvatar(ctx context.Context, req *connect.Request[api.UploadAvatarRequest]) (*connect.Response[api.UploadAvatarResponse], error) {
	return c.uploadAvatar.CallUnary(ctx, req)
}

// DeleteAccount calls lostfound.v1.ProfileService.DeleteAccount.
func (c *profileServiceClient) DeleteAccount(ctx context.Context, req *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error) {
	return c.deleteAccount.CallUnary(ctx, req)
}

// ProfileServiceHandler manages the caller's profile, preferences and account.
type ProfileServiceHandler interface {
	GetProfile(context.Context, *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error)
	UpdateProfile(context.Context, *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error)
	GetPreferences(context.Context, *connect.Request[api.GetPreferencesRequest]) (*connect.Response[api.GetPreferencesResponse], error)
	UpdatePreferences(context.Context, *connect.Request[api.UpdatePreferencesRequest]) (*connect.Response[api.UpdatePreferencesResponse], error)
	UploadAvatar(context.Context, *connect.Request[api.UploadAvatarRequest]) (*connect.Response[api.UploadAvatarResponse], error)
	DeleteAccount(context.Context, *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error)
}

// NewProfileServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewProfileServiceHandler(svc ProfileServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ProfileServiceName + "/", routes{
		ProfileServiceGetProfileProcedure: connect.NewUnaryHandler(
			ProfileServiceGetProfileProcedure,
			svc.GetProfile,
			opts...,
		),
		ProfileServiceUpdateProfileProcedure: connect.NewUnaryHandler(
			ProfileServiceUpdateProfileProcedure,
			svc.UpdateProfile,
			opts...,
		),
		ProfileServiceGetPreferencesProcedure: connect.NewUnaryHandler(
			ProfileServiceGetPreferencesProcedure,
			svc.GetPreferences,
			opts...,
		),
		ProfileServiceUpdatePreferencesProcedure: connect.NewUnaryHandler(
			ProfileServiceUpdatePreferencesProcedure,
			svc.UpdatePreferences,
			opts...,
		),
		ProfileServiceUploadAvatarProcedure: connect.NewUnaryHandler(
			ProfileServiceUploadAvatarProcedure,
			svc.UploadAvatar,
			opts...,
		),
		ProfileServiceDeleteAccountProcedure: connect.NewUnaryHandler(
			ProfileServiceDeleteAccountProcedure,
			svc.DeleteAccount,
			opts...,
		),
	}
}

// UnimplementedProfileServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedProfileServiceHandler struct{}

func (UnimplementedProfileServiceHandler) GetProfile(context.Context, *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ProfileService.GetProfile is not implemented"))
}

func (UnimplementedProfileServiceHandler) UpdateProfile(context.Context, *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ProfileService.UpdateProfile is not implemented"))
}

func (UnimplementedProfileServiceHandler) GetPreferences(context.Context, *connect.Request[api.GetPreferencesRequest]) (*connect.Response[api.GetPreferencesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ProfileService.GetPreferences is not implemented"))
}

func (UnimplementedProfileServiceHandler) UpdatePreferences(context.Context, *connect.Request[api.UpdatePreferencesRequest]) (*connect.Response[api.UpdatePreferencesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ProfileService.UpdatePreferences is not implemented"))
}

func (UnimplementedProfileServiceHandler) UploadAvatar(context.Context, *connect.Request[api.UploadAvatarRequest]) (*connect.Response[api.UploadAvatarResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ProfileService.UploadAvatar is not implemented"))
}

func (UnimplementedProfileServiceHandler) DeleteAccount(context.Context, *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ProfileService.DeleteAccount is not implemented"))
}

// ItemServiceClient is a client for the lostfound.v1.ItemService service.
type ItemServiceClient interface {
	CreateItem(context.Context, *connect.Request[api.CreateItemRequest]) (*connect.Response[api.CreateItemResponse], error)
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error)
	GetItem(context.Context, *connect.Request[api.GetItemRequest]) (*connect.Response[api.GetItemResponse], error)
	ListItems(context.Context, *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error)
	SearchItems(context.Context, *connect.Request[api.SearchItemsRequest]) (*connect.Response[api.SearchItemsResponse], error)
	SearchByImage(context.Context, *connect.Request[api.SearchByImageRequest]) (*connect.Response[api.SearchByImageResponse], error)
	EnhanceDescription(context.Context, *connect.Request[api.EnhanceDescriptionRequest]) (*connect.Response[api.EnhanceDescriptionResponse], error)
	FindMatches(context.Context, *connect.Request[api.FindMatchesRequest]) (*connect.Response[api.FindMatchesResponse], error)
	ModerateItem(context.Context, *connect.Request[api.ModerateItemRequest]) (*connect.Response[api.ModerateItemResponse], error)
}

// NewItemServiceClient constructs a client for the lostfound.v1.ItemService service.
func NewItemServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ItemServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &itemServiceClient{
		createItem: connect.NewClient[api.CreateItemRequest, api.CreateItemResponse](
			httpClient,
			baseURL+ItemServiceCreateItemProcedure,
			opts...,
		),
		updateItem: connect.NewClient[api.UpdateItemRequest, api.UpdateItemResponse](
			httpClient,
			baseURL+ItemServiceUpdateItemProcedure,
			opts...,
		),
		getItem: connect.NewClient[api.GetItemRequest, api.GetItemResponse](
			httpClient,
			baseURL+ItemServiceGetItemProcedure,
			opts...,
		),
		listItems: connect.NewClient[api.ListItemsRequest, api.ListItemsResponse](
			httpClient,
			baseURL+ItemServiceListItemsProcedure,
			opts...,
		),
		searchItems: connect.NewClient[api.SearchItemsRequest, api.SearchItemsResponse](
			httpClient,
			baseURL+ItemServiceSearchItemsProcedure,
			opts...,
		),
		searchByImage: connect.NewClient[api.SearchByImageRequest, api.SearchByImageResponse](
			httpClient,
			baseURL+ItemServiceSearchByImageProcedure,
			opts...,
		),
		enhanceDescription: connect.NewClient[api.EnhanceDescriptionRequest, api.EnhanceDescriptionResponse](
			httpClient,
			baseURL+ItemServiceEnhanceDescriptionProcedure,
			opts...,
		),
		findMatches: connect.NewClient[api.FindMatchesRequest, api.FindMatchesResponse](
			httpClient,
			baseURL+ItemServiceFindMatchesProcedure,
			opts...,
		),
		moderateItem: connect.NewClient[api.ModerateItemRequest, api.ModerateItemResponse](
			httpClient,
			baseURL+ItemServiceModerateItemProcedure,
			opts...,
		),
	}
}

// itemServiceClient implements ItemServiceClient.
type itemServiceClient struct {
	createItem         *connect.Client[api.CreateItemRequest, api.CreateItemResponse]
	updateItem         *connect.Client[api.UpdateItemRequest, api.UpdateItemResponse]
	getItem            *connect.Client[api.GetItemRequest, api.GetItemResponse]
	listItems          *connect.Client[api.ListItemsRequest, api.ListItemsResponse]
	searchItems        *connect.Client[api.SearchItemsRequest, api.SearchItemsResponse]
	searchByImage      *connect.Client[api.SearchByImageRequest, api.SearchByImageResponse]
	enhanceDescription *connect.Client[api.EnhanceDescriptionRequest, api.EnhanceDescriptionResponse]
	findMatches        *connect.Client[api.FindMatchesRequest, api.FindMatchesResponse]
	moderateItem       *connect.Client[api.ModerateItemRequest, api.ModerateItemResponse]
}

// CreateItem calls lostfound.v1.ItemService.CreateItem.
func (c *itemServiceClient) CreateItem(ctx context.Context, req *connect.Request[api.CreateItemRequest]) (*connect.Response[api.CreateItemResponse], error) {
	return c.createItem.CallUnary(ctx, req)
}

// UpdateItem calls lostfound.v1.ItemService.UpdateItem.
func (c *itemServiceClient) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	return c.updateItem.CallUnary(ctx, req)
}

// GetItem calls lostfound.v1.ItemService.GetItem.
func (c *itemServiceClient) GetItem(ctx context.Context, req *connect.Request[api.GetItemRequest]) (*connect.Response[api.GetItemResponse], error) {
	return c.getItem.CallUnary(ctx, req)
}

// ListItems calls lostfound.v1.ItemService.ListItems.
func (c *itemServiceClient) ListItems(ctx context.Context, req *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error) {
	return c.listItems.CallUnary(ctx, req)
}

// SearchItems calls lostfound.v1.ItemService.SearchItems.
func (c *itemServiceClient) SearchItems(ctx context.Context, req *connect.Request[api.SearchItemsRequest]) (*connect.Response[api.SearchItemsResponse], error) {
	return c.searchItems.CallUnary(ctx, req)
}

// SearchByImage calls lostfound.v1.ItemService.SearchByImage.
func (c *itemServiceClient) SearchByImage(ctx context.Context, req *connect.Request[api.SearchByImageRequest]) (*connect.Response[api.SearchByImageResponse], error) {
	return c.searchByImage.CallUnary(ctx, req)
}

// EnhanceDescription calls lostfound.v1.ItemService.EnhanceDescription.
func (c *itemServiceClient) EnhanceDescription(ctx context.Context, req *connect.Request[api.EnhanceDescriptionRequest]) (*connect.Response[api.EnhanceDescriptionResponse], error) {
	return c.enhanceDescription.CallUnary(ctx, req)
}

// FindMatches calls lostfound.v1.ItemService.FindMatches.
func (c *itemServiceClient) FindMatches(ctx context.Context, req *connect.Request[api.FindMatchesRequest]) (*connect.Response[api.FindMatchesResponse], error) {
	return c.findMatches.CallUnary(ctx, req)
}

// ModerateItem calls lostfound.v1.ItemService.ModerateItem.
func (c *itemServiceClient) ModerateItem(ctx context.Context, req *connect.Request[api.ModerateItemRequest]) (*connect.Response[api.ModerateItemResponse], error) {
	return c.moderateItem.CallUnary(ctx, req)
}

// ItemServiceHandler manages lost and found reports.
type ItemServiceHandler interface {
	CreateItem(context.Context, *connect.Request[api.CreateItemRequest]) (*connect.Response[api.CreateItemResponse], error)
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error)
	GetItem(context.Context, *connect.Request[api.GetItemRequest]) (*connect.Response[api.GetItemResponse], error)
	ListItems(context.Context, *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error)
	SearchItems(context.Context, *connect.Request[api.SearchItemsRequest]) (*connect.Response[api.SearchItemsResponse], error)
	SearchByImage(context.Context, *connect.Request[api.SearchByImageRequest]) (*connect.Response[api.SearchByImageResponse], error)
	EnhanceDescription(context.Context, *connect.Request[api.EnhanceDescriptionRequest]) (*connect.Response[api.EnhanceDescriptionResponse], error)
	FindMatches(context.Context, *connect.Request[api.FindMatchesRequest]) (*connect.Response[api.FindMatchesResponse], error)
	ModerateItem(context.Context, *connect.Request[api.ModerateItemRequest]) (*connect.Response[api.ModerateItemResponse], error)
}

// NewItemServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewItemServiceHandler(svc ItemServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ItemServiceName + "/", routes{
		ItemServiceCreateItemProcedure: connect.NewUnaryHandler(
			ItemServiceCreateItemProcedure,
			svc.CreateItem,
			opts...,
		),
		ItemServiceUpdateItemProcedure: connect.NewUnaryHandler(
			ItemServiceUpdateItemProcedure,
			svc.UpdateItem,
			opts...,
		),
		ItemServiceGetItemProcedure: connect.NewUnaryHandler(
			ItemServiceGetItemProcedure,
			svc.GetItem,
			opts...,
		),
		ItemServiceListItemsProcedure: connect.NewUnaryHandler(
			ItemServiceListItemsProcedure,
			svc.ListItems,
			opts...,
		),
		ItemServiceSearchItemsProcedure: connect.NewUnaryHandler(
			ItemServiceSearchItemsProcedure,
			svc.SearchItems,
			opts...,
		),
		ItemServiceSearchByImageProcedure: connect.NewUnaryHandler(
			ItemServiceSearchByImageProcedure,
			svc.SearchByImage,
			opts...,
		),
		ItemServiceEnhanceDescriptionProcedure: connect.NewUnaryHandler(
			ItemServiceEnhanceDescriptionProcedure,
			svc.EnhanceDescription,
			opts...,
		),
		ItemServiceFindMatchesProcedure: connect.NewUnaryHandler(
			ItemServiceFindMatchesProcedure,
			svc.FindMatches,
			opts...,
		),
		ItemServiceModerateItemProcedure: connect.NewUnaryHandler(
			ItemServiceModerateItemProcedure,
			svc.ModerateItem,
			opts...,
		),
	}
}

// UnimplementedItemServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedItemServiceHandler struct{}

func (UnimplementedItemServiceHandler) CreateItem(context.Context, *connect.Request[api.CreateItemRequest]) (*connect.Response[api.CreateItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ItemService.CreateItem is not implemented"))
}

func (UnimplementedItemServiceHandler) UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ItemService.UpdateItem is not implemented"))
}

func (UnimplementedItemServiceHandler) GetItem(context.Context, *connect.Request[api.GetItemRequest]) (*connect.Response[api.GetItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ItemService.GetItem is not implemented"))
}

func (UnimplementedItemServiceHandler) ListItems(context.Context, *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ItemService.ListItems is not implemented"))
}

func (UnimplementedItemServiceHandler) SearchItems(context.Context, *connect.Request[api.SearchItemsRequest]) (*connect.Response[api.SearchItemsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ItemService.SearchItems is not implemented"))
}

func (UnimplementedItemServiceHandler) SearchByImage(context.Context, *connect.Request[api.SearchByImageRequest]) (*connect.Response[api.SearchByImageResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ItemService.SearchByImage is not implemented"))
}

func (UnimplementedItemServiceHandler) EnhanceDescription(context.Context, *connect.Request[api.EnhanceDescriptionRequest]) (*connect.Response[api.EnhanceDescriptionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ItemService.EnhanceDescription is not implemented"))
}

func (UnimplementedItemServiceHandler) FindMatches(context.Context, *connect.Request[api.FindMatchesRequest]) (*connect.Response[api.FindMatchesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ItemService.FindMatches is not implemented"))
}

func (UnimplementedItemServiceHandler) ModerateItem(context.Context, *connect.Request[api.ModerateItemRequest]) (*connect.Response[api.ModerateItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ItemService.ModerateItem is not implemented"))
}

// ClaimServiceClient is a client for the lostfound.v1.ClaimService service.
type ClaimServiceClient interface {
	CreateClaim(context.Context, *connect.Request[api.CreateClaimRequest]) (*connect.Response[api.CreateClaimResponse], error)
	ListClaims(context.Context, *connect.Request[api.ListClaimsRequest]) (*connect.Response[api.ListClaimsResponse], error)
	ResolveClaim(context.Context, *connect.Request[api.ResolveClaimRequest]) (*connect.Response[api.ResolveClaimResponse], error)
}

// NewClaimServiceClient constructs a client for the lostfound.v1.ClaimService service.
func NewClaimServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ClaimServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &claimServiceClient{
		createClaim: connect.NewClient[api.CreateClaimRequest, api.CreateClaimResponse](
			httpClient,
			baseURL+ClaimServiceCreateClaimProcedure,
			opts...,
		),
		listClaims: connect.NewClient[api.ListClaimsRequest, api.ListClaimsResponse](
			httpClient,
			baseURL+ClaimServiceListClaimsProcedure,
			opts...,
		),
		resolveClaim: connect.NewClient[api.ResolveClaimRequest, api.ResolveClaimResponse](
			httpClient,
			baseURL+ClaimServiceResolveClaimProcedure,
			opts...,
		),
	}
}

// claimServiceClient implements ClaimServiceClient.
type claimServiceClient struct {
	createClaim  *connect.Client[api.CreateClaimRequest, api.CreateClaimResponse]
	listClaims   *connect.Client[api.ListClaimsRequest, api.ListClaimsResponse]
	resolveClaim *connect.Client[api.ResolveClaimRequest, api.ResolveClaimResponse]
}

// CreateClaim calls lostfound.v1.ClaimService.CreateClaim.
func (c *claimServiceClient) CreateClaim(ctx context.Context, req *connect.Request[api.CreateClaimRequest]) (*connect.Response[api.CreateClaimResponse], error) {
	return c.createClaim.CallUnary(ctx, req)
}

// ListClaims calls lostfound.v1.ClaimService.ListClaims.
func (c *claimServiceClient) ListClaims(ctx context.Context, req *connect.Request[api.ListClaimsRequest]) (*connect.Response[api.ListClaimsResponse], error) {
	return c.listClaims.CallUnary(ctx, req)
}

// ResolveClaim calls lostfound.v1.ClaimService.ResolveClaim.
func (c *claimServiceClient) ResolveClaim(ctx context.Context, req *connect.Request[api.ResolveClaimRequest]) (*connect.Response[api.ResolveClaimResponse], error) {
	return c.resolveClaim.CallUnary(ctx, req)
}

// ClaimServiceHandler manages ownership claims on items.
type ClaimServiceHandler interface {
	CreateClaim(context.Context, *connect.Request[api.CreateClaimRequest]) (*connect.Response[api.CreateClaimResponse], error)
	ListClaims(context.Context, *connect.Request[api.ListClaimsRequest]) (*connect.Response[api.ListClaimsResponse], error)
	ResolveClaim(context.Context, *connect.Request[api.ResolveClaimRequest]) (*connect.Response[api.ResolveClaimResponse], error)
}

// NewClaimServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewClaimServiceHandler(svc ClaimServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ClaimServiceName + "/", routes{
		ClaimServiceCreateClaimProcedure: connect.NewUnaryHandler(
			ClaimServiceCreateClaimProcedure,
			svc.CreateClaim,
			opts...,
		),
		ClaimServiceListClaimsProcedure: connect.NewUnaryHandler(
			ClaimServiceListClaimsProcedure,
			svc.ListClaims,
			opts...,
		),
		ClaimServiceResolveClaimProcedure: connect.NewUnaryHandler(
			ClaimServiceResolveClaimProcedure,
			svc.ResolveClaim,
			opts...,
		),
	}
}

// UnimplementedClaimServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedClaimServiceHandler struct{}

func (UnimplementedClaimServiceHandler) CreateClaim(context.Context, *connect.Request[api.CreateClaimRequest]) (*connect.Response[api.CreateClaimResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ClaimService.CreateClaim is not implemented"))
}

func (UnimplementedClaimServiceHandler) ListClaims(context.Context, *connect.Request[api.ListClaimsRequest]) (*connect.Response[api.ListClaimsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ClaimService.ListClaims is not implemented"))
}

func (UnimplementedClaimServiceHandler) ResolveClaim(context.Context, *connect.Request[api.ResolveClaimRequest]) (*connect.Response[api.ResolveClaimResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ClaimService.ResolveClaim is not implemented"))
}

// ChatServiceClient is a client for the lostfound.v1.ChatService service.
type ChatServiceClient interface {
	StartConversation(context.Context, *connect.Request[api.StartConversationRequest]) (*connect.Response[api.StartConversationResponse], error)
	ListConversations(context.Context, *connect.Request[api.ListConversationsRequest]) (*connect.Response[api.ListConversationsResponse], error)
	SendMessage(context.Context, *connect.Request[api.SendMessageRequest]) (*connect.Response[api.SendMessageResponse], error)
	ListMessages(context.Context, *connect.Request[api.ListMessagesRequest]) (*connect.Response[api.ListMessagesResponse], error)
}

// NewChatServiceClient constructs a client for the lostfound.v1.ChatService service.
func NewChatServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ChatServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &chatServiceClient{
		startConversation: connect.NewClient[api.StartConversationRequest, api.StartConversationResponse](
			httpClient,
			baseURL+ChatServiceStartConversationProcedure,
			opts...,
		),
		listConversations: connect.NewClient[api.ListConversationsRequest, api.ListConversationsResponse](
			httpClient,
			baseURL+ChatServiceListConversationsProcedure,
			opts...,
		),
		sendMessage: connect.NewClient[api.SendMessageRequest, api.SendMessageResponse](
			httpClient,
			baseURL+ChatServiceSendMessageProcedure,
			opts...,
		),
		listMessages: connect.NewClient[api.ListMessagesRequest, api.ListMessagesResponse](
			httpClient,
			baseURL+ChatServiceListMessagesProcedure,
			opts...,
		),
	}
}

// chatServiceClient implements ChatServiceClient.
type chatServiceClient struct {
	startConversation *connect.Client[api.StartConversationRequest, api.StartConversationResponse]
	listConversations *connect.Client[api.ListConversationsRequest, api.ListConversationsResponse]
	sendMessage       *connect.Client[api.SendMessageRequest, api.SendMessageResponse]
	listMessages      *connect.Client[api.ListMessagesRequest, api.ListMessagesResponse]
}

// StartConversation calls lostfound.v1.ChatService.StartConversation.
func (c *chatServiceClient) StartConversation(ctx context.Context, req *connect.Request[api.StartConversationRequest]) (*connect.Response[api.StartConversationResponse], error) {
	return c.startConversation.CallUnary(ctx, req)
}

// ListConversations calls lostfound.v1.ChatService.ListConversations.
func (c *chatServiceClient) ListConversations(ctx context.Context, req *connect.Request[api.ListConversationsRequest]) (*connect.Response[api.ListConversationsResponse], error) {
	return c.listConversations.CallUnary(ctx, req)
}

// SendMessage calls lostfound.v1.ChatService.SendMessage.
func (c *chatServiceClient) SendMessage(ctx context.Context, req *connect.Request[api.SendMessageRequest]) (*connect.Response[api.SendMessageResponse], error) {
	return c.sendMessage.CallUnary(ctx, req)
}

// ListMessages calls lostfound.v1.ChatService.ListMessages.
func (c *chatServiceClient) ListMessages(ctx context.Context, req *connect.Request[api.ListMessagesRequest]) (*connect.Response[api.ListMessagesResponse], error) {
	return c.listMessages.CallUnary(ctx, req)
}

// ChatServiceHandler manages conversations about items.
type ChatServiceHandler interface {
	StartConversation(context.Context, *connect.Request[api.StartConversationRequest]) (*connect.Response[api.StartConversationResponse], error)
	ListConversations(context.Context, *connect.Request[api.ListConversationsRequest]) (*connect.Response[api.ListConversationsResponse], error)
	SendMessage(context.Context, *connect.Request[api.SendMessageRequest]) (*connect.Response[api.SendMessageResponse], error)
	ListMessages(context.Context, *connect.Request[api.ListMessagesRequest]) (*connect.Response[api.ListMessagesResponse], error)
}

// NewChatServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewChatServiceHandler(svc ChatServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ChatServiceName + "/", routes{
		ChatServiceStartConversationProcedure: connect.NewUnaryHandler(
			ChatServiceStartConversationProcedure,
			svc.StartConversation,
			opts...,
		),
		ChatServiceListConversationsProcedure: connect.NewUnaryHandler(
			ChatServiceListConversationsProcedure,
			svc.ListConversations,
			opts...,
		),
		ChatServiceSendMessageProcedure: connect.NewUnaryHandler(
			ChatServiceSendMessageProcedure,
			svc.SendMessage,
			opts...,
		),
		ChatServiceListMessagesProcedure: connect.NewUnaryHandler(
			ChatServiceListMessagesProcedure,
			svc.ListMessages,
			opts...,
		),
	}
}

// UnimplementedChatServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedChatServiceHandler struct{}

func (UnimplementedChatServiceHandler) StartConversation(context.Context, *connect.Request[api.StartConversationRequest]) (*connect.Response[api.StartConversationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ChatService.StartConversation is not implemented"))
}

func (UnimplementedChatServiceHandler) ListConversations(context.Context, *connect.Request[api.ListConversationsRequest]) (*connect.Response[api.ListConversationsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ChatService.ListConversations is not implemented"))
}

func (UnimplementedChatServiceHandler) SendMessage(context.Context, *connect.Request[api.SendMessageRequest]) (*connect.Response[api.SendMessageResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ChatService.SendMessage is not implemented"))
}

func (UnimplementedChatServiceHandler) ListMessages(context.Context, *connect.Request[api.ListMessagesRequest]) (*connect.Response[api.ListMessagesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.ChatService.ListMessages is not implemented"))
}

// NotificationServiceClient is a client for the lostfound.v1.NotificationService service.
type NotificationServiceClient interface {
	ListNotifications(context.Context, *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error)
	MarkRead(context.Context, *connect.Request[api.MarkReadRequest]) (*connect.Response[api.MarkReadResponse], error)
	UnreadCount(context.Context, *connect.Request[api.UnreadCountRequest]) (*connect.Response[api.UnreadCountResponse], error)
}

// NewNotificationServiceClient constructs a client for the lostfound.v1.NotificationService service.
func NewNotificationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) NotificationServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &notificationServiceClient{
		listNotifications: connect.NewClient[api.ListNotificationsRequest, api.ListNotificationsResponse](
			httpClient,
			baseURL+NotificationServiceListNotificationsProcedure,
			opts...,
		),
		markRead: connect.NewClient[api.MarkReadRequest, api.MarkReadResponse](
			httpClient,
			baseURL+NotificationServiceMarkReadProcedure,
			opts...,
		),
		unreadCount: connect.NewClient[api.UnreadCountRequest, api.UnreadCountResponse](
			httpClient,
			baseURL+NotificationServiceUnreadCountProcedure,
			opts...,
		),
	}
}

// notificationServiceClient implements NotificationServiceClient.
type notificationServiceClient struct {
	listNotifications *connect.Client[api.ListNotificationsRequest, api.ListNotificationsResponse]
	markRead          *connect.Client[api.MarkReadRequest, api.MarkReadResponse]
	unreadCount       *connect.Client[api.UnreadCountRequest, api.UnreadCountResponse]
}

// ListNotifications calls lostfound.v1.NotificationService.ListNotifications.
func (c *notificationServiceClient) ListNotifications(ctx context.Context, req *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error) {
	return c.listNotifications.CallUnary(ctx, req)
}

// MarkRead calls lostfound.v1.NotificationService.MarkRead.
func (c *notificationServiceClient) MarkRead(ctx context.Context, req *connect.Request[api.MarkReadRequest]) (*connect.Response[api.MarkReadResponse], error) {
	return c.markRead.CallUnary(ctx, req)
}

// UnreadCount calls lostfound.v1.NotificationService.UnreadCount.
func (c *notificationServiceClient) UnreadCount(ctx context.Context, req *connect.Request[api.UnreadCountRequest]) (*connect.Response[api.UnreadCountResponse], error) {
	return c.unreadCount.CallUnary(ctx, req)
}

// NotificationServiceHandler manages the caller's inbox.
type NotificationServiceHandler interface {
	ListNotifications(context.Context, *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error)
	MarkRead(context.Context, *connect.Request[api.MarkReadRequest]) (*connect.Response[api.MarkReadResponse], error)
	UnreadCount(context.Context, *connect.Request[api.UnreadCountRequest]) (*connect.Response[api.UnreadCountResponse], error)
}

// NewNotificationServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewNotificationServiceHandler(svc NotificationServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + NotificationServiceName + "/", routes{
		NotificationServiceListNotificationsProcedure: connect.NewUnaryHandler(
			NotificationServiceListNotificationsProcedure,
			svc.ListNotifications,
			opts...,
		),
		NotificationServiceMarkReadProcedure: connect.NewUnaryHandler(
			NotificationServiceMarkReadProcedure,
			svc.MarkRead,
			opts...,
		),
		NotificationServiceUnreadCountProcedure: connect.NewUnaryHandler(
			NotificationServiceUnreadCountProcedure,
			svc.UnreadCount,
			opts...,
		),
	}
}

// UnimplementedNotificationServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedNotificationServiceHandler struct{}

func (UnimplementedNotificationServiceHandler) ListNotifications(context.Context, *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.NotificationService.ListNotifications is not implemented"))
}

func (UnimplementedNotificationServiceHandler) MarkRead(context.Context, *connect.Request[api.MarkReadRequest]) (*connect.Response[api.MarkReadResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.NotificationService.MarkRead is not implemented"))
}

func (UnimplementedNotificationServiceHandler) UnreadCount(context.Context, *connect.Request[api.UnreadCountRequest]) (*connect.Response[api.UnreadCountResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.NotificationService.UnreadCount is not implemented"))
}

// RewardServiceClient is a client for the lostfound.v1.RewardService service.
type RewardServiceClient interface {
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
	GetLeaderboard(context.Context, *connect.Request[api.GetLeaderboardRequest]) (*connect.Response[api.GetLeaderboardResponse], error)
	ListBadges(context.Context, *connect.Request[api.ListBadgesRequest]) (*connect.Response[api.ListBadgesResponse], error)
	SendThanks(context.Context, *connect.Request[api.SendThanksRequest]) (*connect.Response[api.SendThanksResponse], error)
	ListThanks(context.Context, *connect.Request[api.ListThanksRequest]) (*connect.Response[api.ListThanksResponse], error)
}

// NewRewardServiceClient constructs a client for the lostfound.v1.RewardService service.
func NewRewardServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) RewardServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &rewardServiceClient{
		getDashboard: connect.NewClient[api.GetDashboardRequest, api.GetDashboardResponse](
			httpClient,
			baseURL+RewardServiceGetDashboardProcedure,
			opts...,
		),
		getLeaderboard: connect.NewClient[api.GetLeaderboardRequest, api.GetLeaderboardResponse](
			httpClient,
			baseURL+RewardServiceGetLeaderboardProcedure,
			opts...,
		),
		listBadges: connect.NewClient[api.ListBadgesRequest, api.ListBadgesResponse](
			httpClient,
			baseURL+RewardServiceListBadgesProcedure,
			opts...,
		),
		sendThanks: connect.NewClient[api.SendThanksRequest, api.SendThanksResponse](
			httpClient,
			baseURL+RewardServiceSendThanksProcedure,
			opts...,
		),
		listThanks: connect.NewClient[api.ListThanksRequest, api.ListThanksResponse](
			httpClient,
			baseURL+RewardServiceListThanksProcedure,
			opts...,
		),
	}
}

// rewardServiceClient implements RewardServiceClient.
type rewardServiceClient struct {
	getDashboard   *connect.Client[api.GetDashboardRequest, api.GetDashboardResponse]
	getLeaderboard *connect.Client[api.GetLeaderboardRequest, api.GetLeaderboardResponse]
	listBadges     *connect.Client[api.ListBadgesRequest, api.ListBadgesResponse]
	sendThanks     *connect.Client[api.SendThanksRequest, api.SendThanksResponse]
	listThanks     *connect.Client[api.ListThanksRequest, api.ListThanksResponse]
}

// GetDashboard calls lostfound.v1.RewardService.GetDashboard.
func (c *rewardServiceClient) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	return c.getDashboard.CallUnary(ctx, req)
}

// GetLeaderboard calls lostfound.v1.RewardService.GetLeaderboard.
func (c *rewardServiceClient) GetLeaderboard(ctx context.Context, req *connect.Request[api.GetLeaderboardRequest]) (*connect.Response[api.GetLeaderboardResponse], error) {
	return c.getLeaderboard.CallUnary(ctx, req)
}

// ListBadges calls lostfound.v1.RewardService.ListBadges.
func (c *rewardServiceClient) ListBadges(ctx context.Context, req *connect.Request[api.ListBadgesRequest]) (*connect.Response[api.ListBadgesResponse], error) {
	return c.listBadges.CallUnary(ctx, req)
}

// SendThanks calls lostfound.v1.RewardService.SendThanks.
func (c *rewardServiceClient) SendThanks(ctx context.Context, req *connect.Request[api.SendThanksRequest]) (*connect.Response[api.SendThanksResponse], error) {
	return c.sendThanks.CallUnary(ctx, req)
}

// ListThanks calls lostfound.v1.RewardService.ListThanks.
func (c *rewardServiceClient) ListThanks(ctx context.Context, req *connect.Request[api.ListThanksRequest]) (*connect.Response[api.ListThanksResponse], error) {
	return c.listThanks.CallUnary(ctx, req)
}

// RewardServiceHandler serves the dashboard, leaderboard, badges and thank-you notes.
type RewardServiceHandler interface {
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
	GetLeaderboard(context.Context, *connect.Request[api.GetLeaderboardRequest]) (*connect.Response[api.GetLeaderboardResponse], error)
	ListBadges(context.Context, *connect.Request[api.ListBadgesRequest]) (*connect.Response[api.ListBadgesResponse], error)
	SendThanks(context.Context, *connect.Request[api.SendThanksRequest]) (*connect.Response[api.SendThanksResponse], error)
	ListThanks(context.Context, *connect.Request[api.ListThanksRequest]) (*connect.Response[api.ListThanksResponse], error)
}

// NewRewardServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewRewardServiceHandler(svc RewardServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + RewardServiceName + "/", routes{
		RewardServiceGetDashboardProcedure: connect.NewUnaryHandler(
			RewardServiceGetDashboardProcedure,
			svc.GetDashboard,
			opts...,
		),
		RewardServiceGetLeaderboardProcedure: connect.NewUnaryHandler(
			RewardServiceGetLeaderboardProcedure,
			svc.GetLeaderboard,
			opts...,
		),
		RewardServiceListBadgesProcedure: connect.NewUnaryHandler(
			RewardServiceListBadgesProcedure,
			svc.ListBadges,
			opts...,
		),
		RewardServiceSendThanksProcedure: connect.NewUnaryHandler(
			RewardServiceSendThanksProcedure,
			svc.SendThanks,
			opts...,
		),
		RewardServiceListThanksProcedure: connect.NewUnaryHandler(
			RewardServiceListThanksProcedure,
			svc.ListThanks,
			opts...,
		),
	}
}

// UnimplementedRewardServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedRewardServiceHandler struct{}

func (UnimplementedRewardServiceHandler) GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.RewardService.GetDashboard is not implemented"))
}

func (UnimplementedRewardServiceHandler) GetLeaderboard(context.Context, *connect.Request[api.GetLeaderboardRequest]) (*connect.Response[api.GetLeaderboardResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.RewardService.GetLeaderboard is not implemented"))
}

func (UnimplementedRewardServiceHandler) ListBadges(context.Context, *connect.Request[api.ListBadgesRequest]) (*connect.Response[api.ListBadgesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.RewardService.ListBadges is not implemented"))
}

func (UnimplementedRewardServiceHandler) SendThanks(context.Context, *connect.Request[api.SendThanksRequest]) (*connect.Response[api.SendThanksResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.RewardService.SendThanks is not implemented"))
}

func (UnimplementedRewardServiceHandler) ListThanks(context.Context, *connect.Request[api.ListThanksRequest]) (*connect.Response[api.ListThanksResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.RewardService.ListThanks is not implemented"))
}

// BackupServiceClient is a client for the lostfound.v1.BackupService service.
type BackupServiceClient interface {
	CreateBackup(context.Context, *connect.Request[api.CreateBackupRequest]) (*connect.Response[api.CreateBackupResponse], error)
	ListBackups(context.Context, *connect.Request[api.ListBackupsRequest]) (*connect.Response[api.ListBackupsResponse], error)
}

// NewBackupServiceClient constructs a client for the lostfound.v1.BackupService service.
func NewBackupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BackupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &backupServiceClient{
		createBackup: connect.NewClient[api.CreateBackupRequest, api.CreateBackupResponse](
			httpClient,
			baseURL+BackupServiceCreateBackupProcedure,
			opts...,
		),
		listBackups: connect.NewClient[api.ListBackupsRequest, api.ListBackupsResponse](
			httpClient,
			baseURL+BackupServiceListBackupsProcedure,
			opts...,
		),
	}
}

// backupServiceClient implements BackupServiceClient.
type backupServiceClient struct {
	createBackup *connect.Client[api.CreateBackupRequest, api.CreateBackupResponse]
	listBackups  *connect.Client[api.ListBackupsRequest, api.ListBackupsResponse]
}

// CreateBackup calls lostfound.v1.BackupService.CreateBackup.
func (c *backupServiceClient) CreateBackup(ctx context.Context, req *connect.Request[api.CreateBackupRequest]) (*connect.Response[api.CreateBackupResponse], error) {
	return c.createBackup.CallUnary(ctx, req)
}

// ListBackups calls lostfound.v1.BackupService.ListBackups.
func (c *backupServiceClient) ListBackups(ctx context.Context, req *connect.Request[api.ListBackupsRequest]) (*connect.Response[api.ListBackupsResponse], error) {
	return c.listBackups.CallUnary(ctx, req)
}

// BackupServiceHandler creates and lists tenant backups.
type BackupServiceHandler interface {
	CreateBackup(context.Context, *connect.Request[api.CreateBackupRequest]) (*connect.Response[api.CreateBackupResponse], error)
	ListBackups(context.Context, *connect.Request[api.ListBackupsRequest]) (*connect.Response[api.ListBackupsResponse], error)
}

// NewBackupServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewBackupServiceHandler(svc BackupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + BackupServiceName + "/", routes{
		BackupServiceCreateBackupProcedure: connect.NewUnaryHandler(
			BackupServiceCreateBackupProcedure,
			svc.CreateBackup,
			opts...,
		),
		BackupServiceListBackupsProcedure: connect.NewUnaryHandler(
			BackupServiceListBackupsProcedure,
			svc.ListBackups,
			opts...,
		),
	}
}

// UnimplementedBackupServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBackupServiceHandler struct{}

func (UnimplementedBackupServiceHandler) CreateBackup(context.Context, *connect.Request[api.CreateBackupRequest]) (*connect.Response[api.CreateBackupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.BackupService.CreateBackup is not implemented"))
}

func (UnimplementedBackupServiceHandler) ListBackups(context.Context, *connect.Request[api.ListBackupsRequest]) (*connect.Response[api.ListBackupsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.BackupService.ListBackups is not implemented"))
}

// RealtimeServiceClient is a client for the lostfound.v1.RealtimeService service.
type RealtimeServiceClient interface {
	Subscribe(context.Context, *connect.Request[api.SubscribeRequest]) (*connect.ServerStreamForClient[api.SubscribeResponse], error)
}

// NewRealtimeServiceClient constructs a client for the lostfound.v1.RealtimeService service.
func NewRealtimeServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) RealtimeServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &realtimeServiceClient{
		subscribe: connect.NewClient[api.SubscribeRequest, api.SubscribeResponse](
			httpClient,
			baseURL+RealtimeServiceSubscribeProcedure,
			opts...,
		),
	}
}

// realtimeServiceClient implements RealtimeServiceClient.
type realtimeServiceClient struct {
	subscribe *connect.Client[api.SubscribeRequest, api.SubscribeResponse]
}

// Subscribe calls lostfound.v1.RealtimeService.Subscribe.
func (c *realtimeServiceClient) Subscribe(ctx context.Context, req *connect.Request[api.SubscribeRequest]) (*connect.ServerStreamForClient[api.SubscribeResponse], error) {
	return c.subscribe.CallServerStream(ctx, req)
}

// RealtimeServiceHandler streams resource changes.
type RealtimeServiceHandler interface {
	Subscribe(context.Context, *connect.Request[api.SubscribeRequest], *connect.ServerStream[api.SubscribeResponse]) error
}

// NewRealtimeServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewRealtimeServiceHandler(svc RealtimeServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + RealtimeServiceName + "/", routes{
		RealtimeServiceSubscribeProcedure: connect.NewServerStreamHandler(
			RealtimeServiceSubscribeProcedure,
			svc.Subscribe,
			opts...,
		),
	}
}

// UnimplementedRealtimeServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedRealtimeServiceHandler struct{}

func (UnimplementedRealtimeServiceHandler) Subscribe(context.Context, *connect.Request[api.SubscribeRequest], *connect.ServerStream[api.SubscribeResponse]) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New("lostfound.v1.RealtimeService.Subscribe is not implemented"))
}
