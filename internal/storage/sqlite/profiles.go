package sqlite

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/mmynk/lostfound/internal/models"
	"github.com/mmynk/lostfound/internal/storage"
)

const profileColumns = `id, tenant_id, email, display_name, password_hash, role,
	avatar_file_id, points, preferences, created_at, updated_at`

func scanProfile(row scanner) (*models.Profile, error) {
	p := &models.Profile{}
	var role, prefs string
	if err := row.Scan(
		&p.ID,
		&p.TenantID,
		&p.Email,
		&p.DisplayName,
		&p.PasswordHash,
		&role,
		&p.AvatarFileID,
		&p.Points,
		&prefs,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Role = models.Role(role)
	p.Preferences = models.DefaultPreferences()
	if prefs != "" {
		if err := json.Unmarshal([]byte(prefs), &p.Preferences); err != nil {
			return nil, fmt.Errorf("failed to decode preferences: %w", err)
		}
	}
	return p, nil
}

// CreateProfile inserts a new profile into the database.
func (s *SQLiteStore) CreateProfile(ctx context.Context, profile *models.Profile) error {
	return insertProfile(ctx, s.db, profile)
}

func insertProfile(ctx context.Context, db execer, profile *models.Profile) error {
	if profile.ID == "" {
		profile.ID = newID()
	}
	if profile.CreatedAt == 0 {
		profile.CreatedAt = now()
	}
	if profile.UpdatedAt == 0 {
		profile.UpdatedAt = profile.CreatedAt
	}
	if profile.Role == "" {
		profile.Role = models.RoleUser
	}

	prefs, err := json.Marshal(profile.Preferences)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO profiles (`+profileColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.ID,
		profile.TenantID,
		profile.Email,
		profile.DisplayName,
		profile.PasswordHash,
		string(profile.Role),
		profile.AvatarFileID,
		profile.Points,
		string(prefs),
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("profile %s: %w", profile.Email, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by its ID.
func (s *SQLiteStore) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	p, err := scanProfile(s.db.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err, "profile", id)
	}
	return p, nil
}

// GetProfileByEmail retrieves a profile by email address.
func (s *SQLiteStore) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	p, err := scanProfile(s.db.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE email = ?", email))
	if err != nil {
		return nil, notFound(err, "profile", email)
	}
	return p, nil
}

// GetProfilesByIDs retrieves multiple profiles by their IDs.
// Profiles that don't exist are omitted from the result.
func (s *SQLiteStore) GetProfilesByIDs(ctx context.Context, ids []string) (map[string]*models.Profile, error) {
	out := make(map[string]*models.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE id IN ("+placeholders(len(ids))+")",
		stringArgs(ids)...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		out[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}
	return out, nil
}

// ListProfiles returns every profile of a tenant ordered by display name.
func (s *SQLiteStore) ListProfiles(ctx context.Context, tenantID string) ([]*models.Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE tenant_id = ? ORDER BY display_name, id",
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}
	return profiles, nil
}

// UpdateProfile writes the mutable profile fields.
func (s *SQLiteStore) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	prefs, err := json.Marshal(profile.Preferences)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	profile.UpdatedAt = now()

	res, err := s.db.ExecContext(ctx,
		`UPDATE profiles
		 SET display_name = ?, role = ?, avatar_file_id = ?, preferences = ?, updated_at = ?
		 WHERE id = ?`,
		profile.DisplayName, string(profile.Role), profile.AvatarFileID, string(prefs), profile.UpdatedAt,
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return requireAffected(res, "profile", profile.ID)
}

// DeleteProfile removes the profile; foreign keys cascade to everything it owns.
func (s *SQLiteStore) DeleteProfile(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM profiles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return requireAffected(res, "profile", id)
}

// AddPoints adjusts the profile's point balance and returns the new total.
func (s *SQLiteStore) AddPoints(ctx context.Context, id string, delta int64) (int64, error) {
	var points int64
	err := s.db.QueryRowContext(ctx,
		"UPDATE profiles SET points = points + ?, updated_at = ? WHERE id = ? RETURNING points",
		delta, now(), id,
	).Scan(&points)
	if err != nil {
		return 0, notFound(err, "profile", id)
	}
	return points, nil
}
