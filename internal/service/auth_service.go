package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/lostfound/internal/auth"
	"github.com/mmynk/lostfound/internal/middleware"
	"github.com/mmynk/lostfound/internal/models"
	"github.com/mmynk/lostfound/internal/storage"
	"github.com/mmynk/lostfound/pkg/api"
	"github.com/mmynk/lostfound/pkg/api/apiconnect"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	apiconnect.UnimplementedAuthServiceHandler
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
		logger:        logger,
	}
}

// PublicProcedures lists the procedures that do not require a token.
func PublicProcedures() []string {
	return []string{
		apiconnect.AuthServiceRegisterProcedure,
		apiconnect.AuthServiceLoginProcedure,
		apiconnect.AuthServiceListTenantsProcedure,
	}
}

// AccountExists checks token subjects against the profile store, so tokens
// issued before DeleteAccount stop working.
func AccountExists(store storage.ProfileStore) middleware.AccountChecker {
	return func(ctx context.Context, userID string) (bool, error) {
		_, err := store.GetProfile(ctx, userID)
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return err == nil, err
	}
}

// Register creates a new user account. Registering against an unknown
// campus slug creates the campus and makes the registrant its admin.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email, "tenant", req.Msg.TenantSlug)

	slug := strings.ToLower(strings.TrimSpace(req.Msg.TenantSlug))
	displayName := strings.TrimSpace(req.Msg.DisplayName)

	// Validate input
	var v violations
	v.check("email", strings.TrimSpace(req.Msg.Email), "required,email,max=254")
	v.check("display_name", displayName, "required,max=80")
	v.check("tenant_slug", slug, "required,min=2,max=40,slug")
	if err := v.err(); err != nil {
		return nil, err
	}
	if err := s.authenticator.ValidateCredential(req.Msg.Password); err != nil {
		return nil, toConnectError(err)
	}

	// Reject duplicates before a new campus is created for them.
	email := strings.ToLower(strings.TrimSpace(req.Msg.Email))
	if _, err := s.store.GetProfileByEmail(ctx, email); err == nil {
		return nil, connect.NewError(connect.CodeAlreadyExists, auth.ErrEmailExists)
	}

	profile, err := s.register(ctx, slug, req.Msg.TenantName, email, displayName, req.Msg.Password)
	if err != nil {
		s.logger.Error("Registration failed", "email", req.Msg.Email, "tenant", slug, "error", err)
		if errors.Is(err, storage.ErrConflict) {
			return nil, connect.NewError(connect.CodeAlreadyExists, auth.ErrEmailExists)
		}
		return nil, toConnectError(err)
	}

	// Generate JWT token
	token, err := s.jwtManager.Generate(profile)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", profile.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User registered successfully", "user_id", profile.ID, "tenant_id", profile.TenantID, "role", profile.Role)
	return connect.NewResponse(&api.RegisterResponse{
		User:      toAPIProfile(profile, true),
		Token:     token,
		ExpiresAt: nowUnix() + int64(s.jwtManager.TokenDuration().Seconds()),
	}), nil
}

// register joins an existing campus, or creates the campus and its admin in
// one step so a failed registration never leaves an admin-less campus.
func (s *AuthService) register(ctx context.Context, slug, name, email, displayName, password string) (*models.Profile, error) {
	tenant, err := s.store.GetTenantBySlug(ctx, slug)
	if err == nil {
		return s.authenticator.Register(ctx, tenant.ID, email, displayName, password)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = slug
	}
	tenant = &models.Tenant{Name: name, Slug: slug}
	profile, err := s.authenticator.RegisterFounder(ctx, tenant, email, displayName, password)
	if err == nil {
		s.logger.Info("Tenant created", "tenant_id", tenant.ID, "slug", slug)
		return profile, nil
	}
	if !errors.Is(err, storage.ErrConflict) {
		return nil, err
	}

	// Either the slug was taken concurrently or the email was.
	tenant, lookupErr := s.store.GetTenantBySlug(ctx, slug)
	if lookupErr != nil {
		return nil, err
	}
	return s.authenticator.Register(ctx, tenant.ID, email, displayName, password)
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	// Validate input
	if req.Msg.Email == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	// Authenticate user
	profile, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	// Generate JWT token
	token, err := s.jwtManager.Generate(profile)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", profile.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in successfully", "user_id", profile.ID, "tenant_id", profile.TenantID)
	return connect.NewResponse(&api.LoginResponse{
		User:      toAPIProfile(profile, true),
		Token:     token,
		ExpiresAt: nowUnix() + int64(s.jwtManager.TokenDuration().Seconds()),
	}), nil
}

// Logout invalidates the user's session (currently a no-op since JWTs are stateless).
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	// With stateless JWTs, logout is handled client-side by discarding the token.
	s.logger.Info("Logout request", "user_id", middleware.GetUserID(ctx))
	return connect.NewResponse(&api.LogoutResponse{}), nil
}

// GetCurrentUser returns the currently authenticated user's profile and campus.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Info("GetCurrentUser request", "user_id", c.UserID)

	profile, err := s.store.GetProfile(ctx, c.UserID)
	if err != nil {
		// The token outlived the account.
		if errors.Is(err, storage.ErrNotFound) {
			return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
		}
		return nil, toConnectError(err)
	}
	tenant, err := s.store.GetTenant(ctx, profile.TenantID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetCurrentUserResponse{
		User:   toAPIProfile(profile, true),
		Tenant: toAPITenant(tenant),
	}), nil
}

// ListTenants lists campuses for the sign-up screen.
func (s *AuthService) ListTenants(ctx context.Context, req *connect.Request[api.ListTenantsRequest]) (*connect.Response[api.ListTenantsResponse], error) {
	tenants, err := s.store.ListTenants(ctx)
	if err != nil {
		s.logger.Error("ListTenants failed", "error", err)
		return nil, toConnectError(err)
	}
	out := make([]*api.Tenant, len(tenants))
	for i, t := range tenants {
		out[i] = toAPITenant(t)
	}
	return connect.NewResponse(&api.ListTenantsResponse{Tenants: out}), nil
}
