package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmynk/lostfound/internal/models"
)

const itemColumns = `id, tenant_id, owner_id, kind, title, description, category, location,
	image_url, contact_info, status, occurred_at, created_at, updated_at`

func scanItem(row scanner) (*models.Item, error) {
	item := &models.Item{}
	var kind, status string
	if err := row.Scan(
		&item.ID,
		&item.TenantID,
		&item.OwnerID,
		&kind,
		&item.Title,
		&item.Description,
		&item.Category,
		&item.Location,
		&item.ImageURL,
		&item.ContactInfo,
		&status,
		&item.OccurredAt,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	item.Kind = models.ItemKind(kind)
	item.Status = models.ModerationStatus(status)
	return item, nil
}

// CreateItem persists a new item. New items start pending unless a status is set.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.Item) error {
	if item.ID == "" {
		item.ID = newID()
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = now()
	}
	item.UpdatedAt = item.CreatedAt
	if item.Status == "" {
		item.Status = models.StatusPending
	}
	if item.OccurredAt == 0 {
		item.OccurredAt = item.CreatedAt
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items (`+itemColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.TenantID, item.OwnerID, string(item.Kind),
		item.Title, item.Description, item.Category, item.Location,
		item.ImageURL, item.ContactInfo, string(item.Status),
		item.OccurredAt, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// GetItem retrieves an item by ID.
func (s *SQLiteStore) GetItem(ctx context.Context, id string) (*models.Item, error) {
	item, err := scanItem(s.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err, "item", id)
	}
	return item, nil
}

// UpdateItem writes the descriptive fields of an item. Ownership, tenant,
// kind and status are not changed here.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *models.Item) error {
	item.UpdatedAt = now()
	res, err := s.db.ExecContext(ctx,
		`UPDATE items
		 SET title = ?, description = ?, category = ?, location = ?, image_url = ?,
		     contact_info = ?, occurred_at = ?, updated_at = ?
		 WHERE id = ?`,
		item.Title, item.Description, item.Category, item.Location, item.ImageURL,
		item.ContactInfo, item.OccurredAt, item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return requireAffected(res, "item", item.ID)
}

// SetItemStatus changes the moderation status and returns the updated item.
func (s *SQLiteStore) SetItemStatus(ctx context.Context, id string, status models.ModerationStatus) (*models.Item, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE items SET status = ?, updated_at = ? WHERE id = ?",
		string(status), now(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set item status: %w", err)
	}
	if err := requireAffected(res, "item", id); err != nil {
		return nil, err
	}
	return s.GetItem(ctx, id)
}

// ListItems returns items matching filter, newest first.
func (s *SQLiteStore) ListItems(ctx context.Context, filter models.ItemFilter) ([]*models.Item, error) {
	query, args := buildItemQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

func buildItemQuery(f models.ItemFilter) (string, []any) {
	var where []string
	var args []any

	if f.TenantID != "" {
		where = append(where, "tenant_id = ?")
		args = append(args, f.TenantID)
	}
	if f.OwnerID != "" {
		where = append(where, "owner_id = ?")
		args = append(args, f.OwnerID)
	}
	if f.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(f.Kind))
	}
	if len(f.Statuses) > 0 {
		where = append(where, "status IN ("+placeholders(len(f.Statuses))+")")
		for _, st := range f.Statuses {
			args = append(args, string(st))
		}
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.Since > 0 {
		where = append(where, "created_at >= ?")
		args = append(args, f.Since)
	}
	for _, term := range strings.Fields(strings.ToLower(f.Query)) {
		pattern := "%" + escapeLike(term) + "%"
		where = append(where,
			`(lower(title) LIKE ? ESCAPE '\' OR lower(description) LIKE ? ESCAPE '\' OR lower(location) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}

	query := "SELECT " + itemColumns + " FROM items"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	limit := f.Limit
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, f.Offset)

	return query, args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
