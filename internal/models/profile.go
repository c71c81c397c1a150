package models

import "time"

// Role is the authorization level of a profile within its tenant.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Theme is the preferred color scheme.
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

// Preferences holds theme and accessibility settings plus notification opt-ins.
type Preferences struct {
	Theme              Theme   `json:"theme"`
	HighContrast       bool    `json:"high_contrast"`
	ReduceMotion       bool    `json:"reduce_motion"`
	FontScale          float64 `json:"font_scale"`
	EmailNotifications bool    `json:"email_notifications"`
}

// DefaultPreferences returns the settings a new profile starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:              ThemeSystem,
		FontScale:          1.0,
		EmailNotifications: true,
	}
}

// Profile is a registered account.
type Profile struct {
	// ID is the unique identifier for the profile (UUID format).
	ID string

	TenantID string

	// Email is unique across all tenants and used for login.
	Email string

	DisplayName  string
	PasswordHash string
	Role         Role

	// AvatarFileID references a StoredFile; empty when no avatar was uploaded.
	AvatarFileID string

	// Points accumulate from returned items and thank-you notes.
	Points int64

	Preferences Preferences

	CreatedAt int64
	UpdatedAt int64
}

// NewProfile builds a profile with default preferences and timestamps.
func NewProfile(tenantID, email, displayName, passwordHash string) *Profile {
	now := time.Now().Unix()
	return &Profile{
		TenantID:     tenantID,
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		Role:         RoleUser,
		Preferences:  DefaultPreferences(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsAdmin reports whether the profile can moderate its tenant.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
