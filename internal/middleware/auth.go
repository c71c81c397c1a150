package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/lostfound/internal/auth"
	"github.com/mmynk/lostfound/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// EmailKey is the context key for storing the authenticated user's email.
	EmailKey contextKey = "email"
	// TenantIDKey is the context key for the caller's campus.
	TenantIDKey contextKey = "tenant_id"
	// RoleKey is the context key for the caller's role.
	RoleKey contextKey = "role"
)

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetEmail extracts the user email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// GetTenantID extracts the caller's tenant ID from the context.
func GetTenantID(ctx context.Context) string {
	tenantID, _ := ctx.Value(TenantIDKey).(string)
	return tenantID
}

// GetRole extracts the caller's role from the context.
func GetRole(ctx context.Context) models.Role {
	role, _ := ctx.Value(RoleKey).(models.Role)
	return role
}

// IsAdmin reports whether the caller is a tenant administrator.
func IsAdmin(ctx context.Context) bool {
	return GetRole(ctx) == models.RoleAdmin
}

// WithClaims returns ctx carrying the identity in claims.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, EmailKey, claims.Email)
	ctx = context.WithValue(ctx, TenantIDKey, claims.TenantID)
	ctx = context.WithValue(ctx, RoleKey, claims.Role)
	return ctx
}

// AuthInterceptor validates bearer tokens on unary and server-streaming
// calls. Procedures listed as public are let through without a token, but
// still get the caller's identity when a valid one is sent.
type AuthInterceptor struct {
	jwtManager *auth.JWTManager
	accounts   AccountChecker
	public     map[string]bool
	logger     *slog.Logger
}

// AccountChecker reports whether the account a token was issued for still
// exists.
type AccountChecker func(ctx context.Context, userID string) (bool, error)

var _ connect.Interceptor = (*AuthInterceptor)(nil)

// NewAuthInterceptor creates the interceptor.
func NewAuthInterceptor(jwtManager *auth.JWTManager, logger *slog.Logger, publicProcedures ...string) *AuthInterceptor {
	public := make(map[string]bool, len(publicProcedures))
	for _, p := range publicProcedures {
		public[p] = true
	}
	return &AuthInterceptor{jwtManager: jwtManager, public: public, logger: logger}
}

// WithAccountCheck rejects valid tokens of deleted accounts as
// unauthenticated.
func (i *AuthInterceptor) WithAccountCheck(check AccountChecker) *AuthInterceptor {
	i.accounts = check
	return i
}

func (i *AuthInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if req.Spec().IsClient {
			return next(ctx, req)
		}
		ctx, err := i.authenticate(ctx, req.Spec().Procedure, req.Header())
		if err != nil {
			return nil, err
		}
		return next(ctx, req)
	}
}

func (i *AuthInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (i *AuthInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		ctx, err := i.authenticate(ctx, conn.Spec().Procedure, conn.RequestHeader())
		if err != nil {
			return err
		}
		return next(ctx, conn)
	}
}

func (i *AuthInterceptor) authenticate(ctx context.Context, procedure string, header http.Header) (context.Context, error) {
	public := i.public[procedure]

	// Extract Authorization header
	authHeader := header.Get("Authorization")
	if authHeader == "" {
		if public {
			return ctx, nil
		}
		return ctx, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	// Parse Bearer token
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		if public {
			return ctx, nil
		}
		return ctx, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
	}

	// Validate token
	claims, err := i.jwtManager.Validate(parts[1])
	if err != nil {
		if public {
			return ctx, nil
		}
		i.logger.Warn("Rejected token", "procedure", procedure, "error", err)
		return ctx, connect.NewError(connect.CodeUnauthenticated, err)
	}

	if i.accounts != nil {
		exists, err := i.accounts(ctx, claims.UserID)
		if err != nil {
			i.logger.Error("Account lookup failed", "user_id", claims.UserID, "error", err)
			return ctx, connect.NewError(connect.CodeInternal, errors.New("account lookup failed"))
		}
		if !exists {
			if public {
				return ctx, nil
			}
			i.logger.Warn("Token for deleted account", "procedure", procedure, "user_id", claims.UserID)
			return ctx, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
		}
	}

	return WithClaims(ctx, claims), nil
}
