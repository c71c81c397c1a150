package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/lostfound/internal/models"
	"github.com/mmynk/lostfound/internal/storage"
)

const claimColumns = `id, item_id, tenant_id, claimant_id, message, state, created_at, resolved_at, resolved_by`

func scanClaim(row scanner) (*models.Claim, error) {
	c := &models.Claim{}
	var state string
	if err := row.Scan(
		&c.ID, &c.ItemID, &c.TenantID, &c.ClaimantID, &c.Message,
		&state, &c.CreatedAt, &c.ResolvedAt, &c.ResolvedBy,
	); err != nil {
		return nil, err
	}
	c.State = models.ClaimState(state)
	return c, nil
}

// CreateClaim persists a new open claim.
func (s *SQLiteStore) CreateClaim(ctx context.Context, claim *models.Claim) error {
	if claim.ID == "" {
		claim.ID = newID()
	}
	if claim.CreatedAt == 0 {
		claim.CreatedAt = now()
	}
	claim.State = models.ClaimOpen

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO claims (`+claimColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, 0, '')`,
		claim.ID, claim.ItemID, claim.TenantID, claim.ClaimantID, claim.Message,
		string(claim.State), claim.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert claim: %w", err)
	}
	return nil
}

// GetClaim retrieves a claim by ID.
func (s *SQLiteStore) GetClaim(ctx context.Context, id string) (*models.Claim, error) {
	c, err := scanClaim(s.db.QueryRowContext(ctx,
		"SELECT "+claimColumns+" FROM claims WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err, "claim", id)
	}
	return c, nil
}

// ListClaimsByItem returns the claims on one item, oldest first.
func (s *SQLiteStore) ListClaimsByItem(ctx context.Context, itemID string) ([]*models.Claim, error) {
	return s.listClaims(ctx, "item_id = ?", itemID)
}

// ListClaimsByClaimant returns the claims a user filed, oldest first.
func (s *SQLiteStore) ListClaimsByClaimant(ctx context.Context, claimantID string) ([]*models.Claim, error) {
	return s.listClaims(ctx, "claimant_id = ?", claimantID)
}

// ListClaimsByTenant returns every claim in a tenant, oldest first.
func (s *SQLiteStore) ListClaimsByTenant(ctx context.Context, tenantID string) ([]*models.Claim, error) {
	return s.listClaims(ctx, "tenant_id = ?", tenantID)
}

func (s *SQLiteStore) listClaims(ctx context.Context, where string, arg any) ([]*models.Claim, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+claimColumns+" FROM claims WHERE "+where+" ORDER BY created_at, id", arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	defer rows.Close()

	var claims []*models.Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate claims: %w", err)
	}
	return claims, nil
}

// ResolveClaim moves an open claim to a final state.
func (s *SQLiteStore) ResolveClaim(ctx context.Context, id string, state models.ClaimState, resolvedBy string) (*models.Claim, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE claims SET state = ?, resolved_at = ?, resolved_by = ? WHERE id = ? AND state = ?",
		string(state), now(), resolvedBy, id, string(models.ClaimOpen),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve claim: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		// Distinguish a missing claim from one that was already resolved.
		if _, err := s.GetClaim(ctx, id); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("claim %s already resolved: %w", id, storage.ErrConflict)
	}
	return s.GetClaim(ctx, id)
}

// AcceptClaim accepts an open claim and settles its item in one transaction.
func (s *SQLiteStore) AcceptClaim(ctx context.Context, id, resolvedBy string, helper storage.HelperFunc, points int64) (*storage.Acceptance, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	claim, err := scanClaim(tx.QueryRowContext(ctx,
		"SELECT "+claimColumns+" FROM claims WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err, "claim", id)
	}
	if claim.State != models.ClaimOpen {
		return nil, fmt.Errorf("claim %s already resolved: %w", id, storage.ErrConflict)
	}

	ts := now()
	res, err := tx.ExecContext(ctx,
		"UPDATE items SET status = ?, updated_at = ? WHERE id = ? AND status = ?",
		string(models.StatusRecovered), ts, claim.ItemID, string(models.StatusApproved),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to mark item recovered: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	} else if n == 0 {
		return nil, fmt.Errorf("item %s is not open for claims: %w", claim.ItemID, storage.ErrConflict)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE claims SET state = ?, resolved_at = ?, resolved_by = ? WHERE id = ?",
		string(models.ClaimAccepted), ts, resolvedBy, id,
	); err != nil {
		return nil, fmt.Errorf("failed to accept claim: %w", err)
	}
	claim.State = models.ClaimAccepted
	claim.ResolvedAt = ts
	claim.ResolvedBy = resolvedBy

	item, err := scanItem(tx.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id = ?", claim.ItemID))
	if err != nil {
		return nil, notFound(err, "item", claim.ItemID)
	}

	out := &storage.Acceptance{Claim: claim, Item: item, Helper: helper(item, claim)}
	if err := tx.QueryRowContext(ctx,
		"UPDATE profiles SET points = points + ?, updated_at = ? WHERE id = ? RETURNING points",
		points, ts, out.Helper,
	).Scan(&out.Points); err != nil {
		return nil, notFound(err, "profile", out.Helper)
	}

	rows, err := tx.QueryContext(ctx,
		"UPDATE claims SET state = ?, resolved_at = ?, resolved_by = ? WHERE item_id = ? AND state = ? RETURNING "+claimColumns,
		string(models.ClaimRejected), ts, resolvedBy, claim.ItemID, string(models.ClaimOpen),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reject remaining claims: %w", err)
	}
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		out.Rejected = append(out.Rejected, c)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("failed to iterate claims: %w", err)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate claims: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return out, nil
}
