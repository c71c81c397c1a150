package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/lostfound/internal/models"
)

// PutFile stores a blob.
func (s *SQLiteStore) PutFile(ctx context.Context, file *models.StoredFile) error {
	if file.ID == "" {
		file.ID = newID()
	}
	if file.CreatedAt == 0 {
		file.CreatedAt = now()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO files (id, owner_id, content_type, data, created_at) VALUES (?, ?, ?, ?, ?)",
		file.ID, file.OwnerID, file.ContentType, file.Data, file.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert file: %w", err)
	}
	return nil
}

// GetFile retrieves a blob by ID.
func (s *SQLiteStore) GetFile(ctx context.Context, id string) (*models.StoredFile, error) {
	f := &models.StoredFile{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, owner_id, content_type, data, created_at FROM files WHERE id = ?", id,
	).Scan(&f.ID, &f.OwnerID, &f.ContentType, &f.Data, &f.CreatedAt)
	if err != nil {
		return nil, notFound(err, "file", id)
	}
	return f, nil
}

// DeleteFile removes a blob. Deleting a missing file is not an error.
func (s *SQLiteStore) DeleteFile(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM files WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
