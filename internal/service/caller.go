package service

import (
	"context"
	"time"

	"github.com/mmynk/lostfound/internal/auth"
	"github.com/mmynk/lostfound/internal/middleware"
	"github.com/mmynk/lostfound/internal/models"
)

// caller is the authenticated identity of a request.
type caller struct {
	UserID   string
	TenantID string
	Role     models.Role
}

func (c caller) isAdmin() bool {
	return c.Role == models.RoleAdmin
}

// callerFrom reads the identity set by the auth interceptor.
func callerFrom(ctx context.Context) (caller, error) {
	c := caller{
		UserID:   middleware.GetUserID(ctx),
		TenantID: middleware.GetTenantID(ctx),
		Role:     middleware.GetRole(ctx),
	}
	if c.UserID == "" || c.TenantID == "" {
		return c, auth.ErrMissingToken
	}
	return c, nil
}

// sameTenant fails with errWrongTenant when tenantID is not the caller's.
func (c caller) sameTenant(tenantID string) error {
	if tenantID != c.TenantID {
		return errWrongTenant
	}
	return nil
}

// canSeeItem reports whether the caller may read the item. Other users'
// items are visible once approved or recovered.
func (c caller) canSeeItem(it *models.Item) bool {
	if it.TenantID != c.TenantID {
		return false
	}
	if c.isAdmin() || it.OwnerID == c.UserID {
		return true
	}
	return it.Status == models.StatusApproved || it.Status == models.StatusRecovered
}

// canEditItem reports whether the caller may modify the item.
func (c caller) canEditItem(it *models.Item) bool {
	return it.TenantID == c.TenantID && (c.isAdmin() || it.OwnerID == c.UserID)
}

func nowUnix() int64 {
	return time.Now().Unix()
}
