package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/lostfound/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailExists        = errors.New("email already registered")
)

// ProfileStorage defines the interface for profile persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type ProfileStorage interface {
	CreateProfile(ctx context.Context, profile *models.Profile) error
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	CreateTenantWithAdmin(ctx context.Context, tenant *models.Tenant, admin *models.Profile) error
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage ProfileStorage
	cost    int
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage ProfileStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
		cost:    bcrypt.DefaultCost,
	}
}

// WithCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (a *PasswordAuthenticator) WithCost(cost int) *PasswordAuthenticator {
	a.cost = cost
	return a
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new profile with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, tenantID, email, displayName, credential string) (*models.Profile, error) {
	profile, err := a.newProfile(ctx, tenantID, email, displayName, credential)
	if err != nil {
		return nil, err
	}

	if err := a.storage.CreateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

// RegisterFounder creates tenant together with its admin profile. Nothing is
// stored if either insert fails.
func (a *PasswordAuthenticator) RegisterFounder(ctx context.Context, tenant *models.Tenant, email, displayName, credential string) (*models.Profile, error) {
	profile, err := a.newProfile(ctx, "", email, displayName, credential)
	if err != nil {
		return nil, err
	}

	if err := a.storage.CreateTenantWithAdmin(ctx, tenant, profile); err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	return profile, nil
}

func (a *PasswordAuthenticator) newProfile(ctx context.Context, tenantID, email, displayName, credential string) (*models.Profile, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	email = normalizeEmail(email)

	existing, err := a.storage.GetProfileByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return models.NewProfile(tenantID, email, displayName, string(hashedPassword)), nil
}

// Authenticate verifies the email and password, returning the profile if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.Profile, error) {
	profile, err := a.storage.GetProfileByEmail(ctx, normalizeEmail(email))
	if err != nil || profile == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return profile, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
