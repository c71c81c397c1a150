// Package client is the Go SDK for the lost-and-found server: typed service
// clients, the application context that holds the session, and helpers for
// keeping views fresh from the realtime stream.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/lostfound/pkg/api"
	"github.com/mmynk/lostfound/pkg/api/apiconnect"
)

// TokenSource supplies the bearer token for each call. An empty token sends
// no Authorization header.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed TokenSource.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Client bundles every service client behind one bearer-token interceptor.
type Client struct {
	Auth          apiconnect.AuthServiceClient
	Profile       apiconnect.ProfileServiceClient
	Items         apiconnect.ItemServiceClient
	Claims        apiconnect.ClaimServiceClient
	Chat          apiconnect.ChatServiceClient
	Notifications apiconnect.NotificationServiceClient
	Rewards       apiconnect.RewardServiceClient
	Backups       apiconnect.BackupServiceClient
	Realtime      apiconnect.RealtimeServiceClient

	baseURL string
	http    connect.HTTPClient
	tokens  TokenSource
}

// New creates a client for the server at baseURL. A nil httpClient uses
// http.DefaultClient.
func New(httpClient connect.HTTPClient, baseURL string, tokens TokenSource, opts ...connect.ClientOption) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if tokens == nil {
		tokens = StaticToken("")
	}
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithInterceptors(&bearerInterceptor{tokens: tokens})}, opts...)

	return &Client{
		Auth:          apiconnect.NewAuthServiceClient(httpClient, baseURL, opts...),
		Profile:       apiconnect.NewProfileServiceClient(httpClient, baseURL, opts...),
		Items:         apiconnect.NewItemServiceClient(httpClient, baseURL, opts...),
		Claims:        apiconnect.NewClaimServiceClient(httpClient, baseURL, opts...),
		Chat:          apiconnect.NewChatServiceClient(httpClient, baseURL, opts...),
		Notifications: apiconnect.NewNotificationServiceClient(httpClient, baseURL, opts...),
		Rewards:       apiconnect.NewRewardServiceClient(httpClient, baseURL, opts...),
		Backups:       apiconnect.NewBackupServiceClient(httpClient, baseURL, opts...),
		Realtime:      apiconnect.NewRealtimeServiceClient(httpClient, baseURL, opts...),
		baseURL:       baseURL,
		http:          httpClient,
		tokens:        tokens,
	}
}

// SignIn logs in and stores the session, with its campus, in app.
func (c *Client) SignIn(ctx context.Context, app *AppContext, email, password string) (*Session, error) {
	resp, err := c.Auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: email, Password: password}))
	if err != nil {
		return nil, err
	}
	return c.startSession(ctx, app, resp.Msg.Token, resp.Msg.ExpiresAt)
}

// Register creates an account and stores the session in app.
func (c *Client) Register(ctx context.Context, app *AppContext, req *api.RegisterRequest) (*Session, error) {
	resp, err := c.Auth.Register(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return c.startSession(ctx, app, resp.Msg.Token, resp.Msg.ExpiresAt)
}

func (c *Client) startSession(ctx context.Context, app *AppContext, token string, expiresAt int64) (*Session, error) {
	req := connect.NewRequest(&api.GetCurrentUserRequest{})
	req.Header().Set("Authorization", "Bearer "+token)
	me, err := c.Auth.GetCurrentUser(ctx, req)
	if err != nil {
		return nil, err
	}
	session := Session{Token: token, ExpiresAt: expiresAt, User: me.Msg.User, Tenant: me.Msg.Tenant}
	if err := app.SignIn(session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SignOut tells the server and clears the session in app. The local session
// is cleared even if the server call fails.
func (c *Client) SignOut(ctx context.Context, app *AppContext) error {
	_, rpcErr := c.Auth.Logout(ctx, connect.NewRequest(&api.LogoutRequest{}))
	if err := app.SignOut(); err != nil {
		return err
	}
	return rpcErr
}

// Download fetches a server path such as a backup download with the
// current bearer token.
func (c *Client) Download(ctx context.Context, path string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, err
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("download %s: %s: %s", path, resp.Status, strings.TrimSpace(string(msg)))
	}
	return io.Copy(w, resp.Body)
}

// bearerInterceptor sets the Authorization header unless the caller already
// set one.
type bearerInterceptor struct {
	tokens TokenSource
}

var _ connect.Interceptor = (*bearerInterceptor)(nil)

func (b *bearerInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if req.Header().Get("Authorization") == "" {
			if tok := b.tokens.Token(); tok != "" {
				req.Header().Set("Authorization", "Bearer "+tok)
			}
		}
		return next(ctx, req)
	}
}

func (b *bearerInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return func(ctx context.Context, spec connect.Spec) connect.StreamingClientConn {
		conn := next(ctx, spec)
		if tok := b.tokens.Token(); tok != "" {
			conn.RequestHeader().Set("Authorization", "Bearer "+tok)
		}
		return conn
	}
}

func (b *bearerInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return next
}
