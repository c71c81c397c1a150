package models

// Tenant is a campus. All user-visible rows are scoped to one tenant.
type Tenant struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt int64
}
