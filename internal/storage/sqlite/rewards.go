package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/lostfound/internal/models"
)

// returnedExpr counts accepted claims where the profile helped: the finder who
// owns a found item, or the claimant who reported finding a lost item.
const returnedExpr = `(
	SELECT COUNT(*) FROM claims c JOIN items i ON i.id = c.item_id
	WHERE c.state = 'accepted' AND (
		(i.kind = 'found' AND i.owner_id = %[1]s) OR
		(i.kind = 'lost' AND c.claimant_id = %[1]s)
	)
)`

// UpsertBadge inserts or updates a badge definition.
func (s *SQLiteStore) UpsertBadge(ctx context.Context, badge *models.Badge) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO badges (code, name, description) VALUES (?, ?, ?)
		 ON CONFLICT(code) DO UPDATE SET name = excluded.name, description = excluded.description`,
		badge.Code, badge.Name, badge.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert badge: %w", err)
	}
	return nil
}

// ListBadges returns the badge catalogue.
func (s *SQLiteStore) ListBadges(ctx context.Context) ([]*models.Badge, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT code, name, description FROM badges ORDER BY code")
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	defer rows.Close()

	var badges []*models.Badge
	for rows.Next() {
		b := &models.Badge{}
		if err := rows.Scan(&b.Code, &b.Name, &b.Description); err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		badges = append(badges, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate badges: %w", err)
	}
	return badges, nil
}

// AwardBadge grants a badge once.
func (s *SQLiteStore) AwardBadge(ctx context.Context, profileID, code string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO awarded_badges (profile_id, code, awarded_at) VALUES (?, ?, ?)",
		profileID, code, now(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to award badge: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

// ListAwardedBadges returns the badges a profile earned, oldest first.
func (s *SQLiteStore) ListAwardedBadges(ctx context.Context, profileID string) ([]*models.AwardedBadge, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT profile_id, code, awarded_at FROM awarded_badges WHERE profile_id = ? ORDER BY awarded_at, code",
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list awarded badges: %w", err)
	}
	defer rows.Close()

	var out []*models.AwardedBadge
	for rows.Next() {
		a := &models.AwardedBadge{}
		if err := rows.Scan(&a.ProfileID, &a.Code, &a.AwardedAt); err != nil {
			return nil, fmt.Errorf("failed to scan awarded badge: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate awarded badges: %w", err)
	}
	return out, nil
}

// CreateThankYouNote persists a note.
func (s *SQLiteStore) CreateThankYouNote(ctx context.Context, note *models.ThankYouNote) error {
	if note.ID == "" {
		note.ID = newID()
	}
	if note.CreatedAt == 0 {
		note.CreatedAt = now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO thank_you_notes (id, tenant_id, from_id, to_id, item_id, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		note.ID, note.TenantID, note.FromID, note.ToID, note.ItemID, note.Message, note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert thank-you note: %w", err)
	}
	return nil
}

// ListThankYouNotes returns notes received by a profile, newest first.
func (s *SQLiteStore) ListThankYouNotes(ctx context.Context, toID string) ([]*models.ThankYouNote, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tenant_id, from_id, to_id, item_id, message, created_at
		 FROM thank_you_notes WHERE to_id = ? ORDER BY created_at DESC, id`,
		toID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list thank-you notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.ThankYouNote
	for rows.Next() {
		n := &models.ThankYouNote{}
		if err := rows.Scan(&n.ID, &n.TenantID, &n.FromID, &n.ToID, &n.ItemID, &n.Message, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan thank-you note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate thank-you notes: %w", err)
	}
	return notes, nil
}

// CountThankYouNotes returns how many notes a profile received.
func (s *SQLiteStore) CountThankYouNotes(ctx context.Context, toID string) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM thank_you_notes WHERE to_id = ?", toID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count thank-you notes: %w", err)
	}
	return n, nil
}

// CountReturned counts accepted claims in which the profile was the helper.
func (s *SQLiteStore) CountReturned(ctx context.Context, profileID string) (int64, error) {
	var n int64
	query := "SELECT " + fmt.Sprintf(returnedExpr, "?")
	if err := s.db.QueryRowContext(ctx, query, profileID, profileID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count returned items: %w", err)
	}
	return n, nil
}

// Leaderboard returns the tenant's top profiles by points.
func (s *SQLiteStore) Leaderboard(ctx context.Context, tenantID string, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT p.id, p.display_name, p.points, ` + fmt.Sprintf(returnedExpr, "p.id") + `
		FROM profiles p
		WHERE p.tenant_id = ?
		ORDER BY p.points DESC, p.display_name, p.id
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.ProfileID, &e.DisplayName, &e.Points, &e.Returned); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard: %w", err)
	}
	return entries, nil
}
