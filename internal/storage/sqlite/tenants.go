package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/lostfound/internal/models"
	"github.com/mmynk/lostfound/internal/storage"
)

// CreateTenant inserts a new campus.
func (s *SQLiteStore) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	return insertTenant(ctx, s.db, tenant)
}

// CreateTenantWithAdmin creates tenant and its first profile as admin in one
// transaction. A taken slug or email leaves nothing behind.
func (s *SQLiteStore) CreateTenantWithAdmin(ctx context.Context, tenant *models.Tenant, admin *models.Profile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertTenant(ctx, tx, tenant); err != nil {
		return err
	}
	admin.TenantID = tenant.ID
	admin.Role = models.RoleAdmin
	if err := insertProfile(ctx, tx, admin); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertTenant(ctx context.Context, db execer, tenant *models.Tenant) error {
	if tenant.ID == "" {
		tenant.ID = newID()
	}
	if tenant.CreatedAt == 0 {
		tenant.CreatedAt = now()
	}

	_, err := db.ExecContext(ctx,
		"INSERT INTO tenants (id, name, slug, created_at) VALUES (?, ?, ?, ?)",
		tenant.ID, tenant.Name, tenant.Slug, tenant.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("tenant slug %q: %w", tenant.Slug, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}
	return nil
}

// GetTenant retrieves a tenant by ID.
func (s *SQLiteStore) GetTenant(ctx context.Context, id string) (*models.Tenant, error) {
	t := &models.Tenant{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, slug, created_at FROM tenants WHERE id = ?", id,
	).Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt)
	if err != nil {
		return nil, notFound(err, "tenant", id)
	}
	return t, nil
}

// GetTenantBySlug retrieves a tenant by its unique slug.
func (s *SQLiteStore) GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	t := &models.Tenant{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, slug, created_at FROM tenants WHERE slug = ?", slug,
	).Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt)
	if err != nil {
		return nil, notFound(err, "tenant", slug)
	}
	return t, nil
}

// ListTenants returns all tenants ordered by name.
func (s *SQLiteStore) ListTenants(ctx context.Context) ([]*models.Tenant, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, slug, created_at FROM tenants ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		t := &models.Tenant{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tenants: %w", err)
	}
	return tenants, nil
}
