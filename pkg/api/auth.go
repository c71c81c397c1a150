package api

type RegisterRequest struct {
	// TenantSlug selects the campus. An unknown slug creates the campus
	// (named TenantName) and makes the registrant its first admin.
	TenantSlug  string `json:"tenant_slug"`
	TenantName  string `json:"tenant_name,omitempty"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User      *Profile `json:"user"`
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expires_at"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User      *Profile `json:"user"`
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expires_at"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User   *Profile `json:"user"`
	Tenant *Tenant  `json:"tenant"`
}

type ListTenantsRequest struct{}

type ListTenantsResponse struct {
	Tenants []*Tenant `json:"tenants"`
}
