package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/lostfound/internal/models"
)

// CreateBackup stores a backup record with its payload.
func (s *SQLiteStore) CreateBackup(ctx context.Context, backup *models.Backup, payload []byte) error {
	if backup.ID == "" {
		backup.ID = newID()
	}
	if backup.CreatedAt == 0 {
		backup.CreatedAt = now()
	}
	backup.SizeBytes = int64(len(payload))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO backups (id, tenant_id, created_by, size_bytes, profile_count, item_count, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		backup.ID, backup.TenantID, backup.CreatedBy, backup.SizeBytes,
		backup.ProfileCount, backup.ItemCount, payload, backup.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert backup: %w", err)
	}
	return nil
}

// ListBackups returns backup metadata for a tenant, newest first.
func (s *SQLiteStore) ListBackups(ctx context.Context, tenantID string) ([]*models.Backup, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tenant_id, created_by, size_bytes, profile_count, item_count, created_at
		 FROM backups WHERE tenant_id = ? ORDER BY created_at DESC, id`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}
	defer rows.Close()

	var out []*models.Backup
	for rows.Next() {
		b := &models.Backup{}
		if err := rows.Scan(&b.ID, &b.TenantID, &b.CreatedBy, &b.SizeBytes, &b.ProfileCount, &b.ItemCount, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan backup: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate backups: %w", err)
	}
	return out, nil
}

// GetBackup returns a backup record and its payload.
func (s *SQLiteStore) GetBackup(ctx context.Context, id string) (*models.Backup, []byte, error) {
	b := &models.Backup{}
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, created_by, size_bytes, profile_count, item_count, created_at, payload
		 FROM backups WHERE id = ?`,
		id,
	).Scan(&b.ID, &b.TenantID, &b.CreatedBy, &b.SizeBytes, &b.ProfileCount, &b.ItemCount, &b.CreatedAt, &payload)
	if err != nil {
		return nil, nil, notFound(err, "backup", id)
	}
	return b, payload, nil
}
