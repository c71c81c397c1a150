package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmynk/lostfound/internal/models"
	"github.com/mmynk/lostfound/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// seed creates a tenant with two profiles.
func seed(t *testing.T, store *SQLiteStore) (*models.Tenant, *models.Profile, *models.Profile) {
	t.Helper()
	ctx := context.Background()

	tenant := &models.Tenant{Name: "North Campus", Slug: "north"}
	if err := store.CreateTenant(ctx, tenant); err != nil {
		t.Fatalf("CreateTenant failed: %v", err)
	}
	alice := models.NewProfile(tenant.ID, "alice@north.edu", "Alice", "hash")
	bob := models.NewProfile(tenant.ID, "bob@north.edu", "Bob", "hash")
	for _, p := range []*models.Profile{alice, bob} {
		if err := store.CreateProfile(ctx, p); err != nil {
			t.Fatalf("CreateProfile failed: %v", err)
		}
	}
	return tenant, alice, bob
}

func TestCreateTenantWithAdmin(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, alice, _ := seed(t, store)

	t.Run("creates both", func(t *testing.T) {
		tenant := &models.Tenant{Name: "South Campus", Slug: "south"}
		admin := models.NewProfile("", "carol@south.edu", "Carol", "hash")
		if err := store.CreateTenantWithAdmin(ctx, tenant, admin); err != nil {
			t.Fatalf("CreateTenantWithAdmin failed: %v", err)
		}
		got, err := store.GetProfile(ctx, admin.ID)
		if err != nil {
			t.Fatalf("GetProfile failed: %v", err)
		}
		if got.TenantID != tenant.ID || got.Role != models.RoleAdmin {
			t.Errorf("expected admin of %s, got %s of %s", tenant.ID, got.Role, got.TenantID)
		}
	})

	t.Run("duplicate email rolls back tenant", func(t *testing.T) {
		admin := models.NewProfile("", alice.Email, "Alice", "hash")
		err := store.CreateTenantWithAdmin(ctx, &models.Tenant{Name: "East", Slug: "east"}, admin)
		if !errors.Is(err, storage.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
		if _, err := store.GetTenantBySlug(ctx, "east"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected tenant to be rolled back, got %v", err)
		}
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		admin := models.NewProfile("", "dan@north.edu", "Dan", "hash")
		err := store.CreateTenantWithAdmin(ctx, &models.Tenant{Name: "Dup", Slug: "north"}, admin)
		if !errors.Is(err, storage.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
		if _, err := store.GetProfileByEmail(ctx, "dan@north.edu"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected no profile, got %v", err)
		}
	})
}

func TestTenantsAndProfiles(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	tenant, alice, _ := seed(t, store)

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		err := store.CreateTenant(ctx, &models.Tenant{Name: "Dup", Slug: "north"})
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("lookup by slug", func(t *testing.T) {
		got, err := store.GetTenantBySlug(ctx, "north")
		if err != nil {
			t.Fatalf("GetTenantBySlug failed: %v", err)
		}
		if got.ID != tenant.ID {
			t.Errorf("ID mismatch: got %s, want %s", got.ID, tenant.ID)
		}
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		dup := models.NewProfile(tenant.ID, "alice@north.edu", "Other", "hash")
		if err := store.CreateProfile(ctx, dup); !errors.Is(err, storage.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("preferences round trip", func(t *testing.T) {
		alice.Preferences.Theme = models.ThemeDark
		alice.Preferences.HighContrast = true
		alice.Preferences.FontScale = 1.25
		if err := store.UpdateProfile(ctx, alice); err != nil {
			t.Fatalf("UpdateProfile failed: %v", err)
		}
		got, err := store.GetProfileByEmail(ctx, "alice@north.edu")
		if err != nil {
			t.Fatalf("GetProfileByEmail failed: %v", err)
		}
		if got.Preferences != alice.Preferences {
			t.Errorf("preferences mismatch: got %+v, want %+v", got.Preferences, alice.Preferences)
		}
	})

	t.Run("points accumulate", func(t *testing.T) {
		if _, err := store.AddPoints(ctx, alice.ID, 10); err != nil {
			t.Fatalf("AddPoints failed: %v", err)
		}
		total, err := store.AddPoints(ctx, alice.ID, 5)
		if err != nil {
			t.Fatalf("AddPoints failed: %v", err)
		}
		if total != 15 {
			t.Errorf("points: got %d, want 15", total)
		}
	})

	t.Run("missing profile", func(t *testing.T) {
		if _, err := store.GetProfile(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if _, err := store.AddPoints(ctx, "nope", 1); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound from AddPoints, got %v", err)
		}
	})
}

func TestItems(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	tenant, alice, bob := seed(t, store)

	umbrella := &models.Item{TenantID: tenant.ID, OwnerID: alice.ID, Kind: models.KindLost,
		Title: "Blue umbrella", Description: "Left in the library", Category: "accessories", Location: "Library"}
	wallet := &models.Item{TenantID: tenant.ID, OwnerID: bob.ID, Kind: models.KindFound,
		Title: "Brown wallet", Description: "50% off coupon inside", Category: "wallets", Location: "Gym", CreatedAt: 100}
	for _, it := range []*models.Item{umbrella, wallet} {
		if err := store.CreateItem(ctx, it); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}
	}

	t.Run("defaults", func(t *testing.T) {
		if umbrella.ID == "" || umbrella.Status != models.StatusPending || umbrella.OccurredAt == 0 {
			t.Errorf("unexpected defaults: %+v", umbrella)
		}
	})

	t.Run("filter by kind and query", func(t *testing.T) {
		got, err := store.ListItems(ctx, models.ItemFilter{TenantID: tenant.ID, Kind: models.KindLost, Query: "LIBRARY"})
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != umbrella.ID {
			t.Errorf("expected umbrella only, got %d items", len(got))
		}
	})

	t.Run("like wildcards are escaped", func(t *testing.T) {
		got, err := store.ListItems(ctx, models.ItemFilter{TenantID: tenant.ID, Query: "50%"})
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != wallet.ID {
			t.Errorf("expected wallet only, got %d items", len(got))
		}
		got, _ = store.ListItems(ctx, models.ItemFilter{TenantID: tenant.ID, Query: "%"})
		if len(got) != 1 {
			t.Errorf("bare %% should match literally, got %d items", len(got))
		}
	})

	t.Run("status filter and moderation", func(t *testing.T) {
		if _, err := store.SetItemStatus(ctx, wallet.ID, models.StatusApproved); err != nil {
			t.Fatalf("SetItemStatus failed: %v", err)
		}
		got, err := store.ListItems(ctx, models.ItemFilter{TenantID: tenant.ID, Statuses: []models.ModerationStatus{models.StatusApproved}})
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if len(got) != 1 || got[0].Status != models.StatusApproved {
			t.Errorf("expected one approved item, got %+v", got)
		}
	})

	t.Run("newest first with limit", func(t *testing.T) {
		got, err := store.ListItems(ctx, models.ItemFilter{TenantID: tenant.ID, Limit: 1})
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != umbrella.ID {
			t.Errorf("expected newest item first")
		}
	})

	t.Run("update keeps status", func(t *testing.T) {
		umbrella.Title = "Navy umbrella"
		if err := store.UpdateItem(ctx, umbrella); err != nil {
			t.Fatalf("UpdateItem failed: %v", err)
		}
		got, _ := store.GetItem(ctx, umbrella.ID)
		if got.Title != "Navy umbrella" || got.Status != models.StatusPending {
			t.Errorf("unexpected item after update: %+v", got)
		}
	})

	t.Run("missing item", func(t *testing.T) {
		if err := store.UpdateItem(ctx, &models.Item{ID: "missing"}); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestClaimsAndRewards(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	tenant, alice, bob := seed(t, store)

	found := &models.Item{TenantID: tenant.ID, OwnerID: bob.ID, Kind: models.KindFound, Title: "Keys"}
	if err := store.CreateItem(ctx, found); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	claim := &models.Claim{ItemID: found.ID, TenantID: tenant.ID, ClaimantID: alice.ID, Message: "Mine!"}
	if err := store.CreateClaim(ctx, claim); err != nil {
		t.Fatalf("CreateClaim failed: %v", err)
	}

	resolved, err := store.ResolveClaim(ctx, claim.ID, models.ClaimAccepted, bob.ID)
	if err != nil {
		t.Fatalf("ResolveClaim failed: %v", err)
	}
	if resolved.State != models.ClaimAccepted || resolved.ResolvedBy != bob.ID {
		t.Errorf("unexpected resolved claim: %+v", resolved)
	}

	if _, err := store.ResolveClaim(ctx, claim.ID, models.ClaimRejected, bob.ID); !errors.Is(err, storage.ErrConflict) {
		t.Errorf("expected ErrConflict on second resolve, got %v", err)
	}
	if _, err := store.ResolveClaim(ctx, "missing", models.ClaimRejected, bob.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	returned, err := store.CountReturned(ctx, bob.ID)
	if err != nil {
		t.Fatalf("CountReturned failed: %v", err)
	}
	if returned != 1 {
		t.Errorf("bob returned: got %d, want 1", returned)
	}

	if err := store.UpsertBadge(ctx, &models.Badge{Code: "first_return", Name: "Good Samaritan"}); err != nil {
		t.Fatalf("UpsertBadge failed: %v", err)
	}
	first, err := store.AwardBadge(ctx, bob.ID, "first_return")
	if err != nil || !first {
		t.Fatalf("AwardBadge: got (%v, %v), want (true, nil)", first, err)
	}
	again, err := store.AwardBadge(ctx, bob.ID, "first_return")
	if err != nil || again {
		t.Errorf("AwardBadge should be idempotent: got (%v, %v)", again, err)
	}

	if _, err := store.AddPoints(ctx, bob.ID, 20); err != nil {
		t.Fatalf("AddPoints failed: %v", err)
	}
	board, err := store.Leaderboard(ctx, tenant.ID, 10)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(board) != 2 || board[0].ProfileID != bob.ID || board[0].Returned != 1 {
		t.Errorf("unexpected leaderboard: %+v", board)
	}
}

func TestChatAndNotifications(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	tenant, alice, bob := seed(t, store)

	item := &models.Item{TenantID: tenant.ID, OwnerID: bob.ID, Kind: models.KindFound, Title: "Phone"}
	if err := store.CreateItem(ctx, item); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	conv := &models.Conversation{TenantID: tenant.ID, ItemID: item.ID, Participants: []string{bob.ID, alice.ID}}
	if err := store.CreateConversation(ctx, conv); err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}

	found, err := store.FindConversation(ctx, item.ID, []string{alice.ID, bob.ID})
	if err != nil {
		t.Fatalf("FindConversation failed: %v", err)
	}
	if found.ID != conv.ID || len(found.Participants) != 2 {
		t.Errorf("unexpected conversation: %+v", found)
	}

	for _, body := range []string{"hi", "is it yours?", "yes"} {
		if err := store.CreateMessage(ctx, &models.Message{ConversationID: conv.ID, SenderID: alice.ID, Body: body}); err != nil {
			t.Fatalf("CreateMessage failed: %v", err)
		}
	}
	msgs, err := store.ListMessages(ctx, conv.ID, 1, 0)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Seq != 2 || msgs[1].Body != "yes" {
		t.Errorf("unexpected messages after seq 1: %+v", msgs)
	}

	convs, err := store.ListConversations(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListConversations failed: %v", err)
	}
	if len(convs) != 1 || convs[0].LastMessageAt == 0 {
		t.Errorf("unexpected conversations: %+v", convs)
	}

	n := &models.Notification{UserID: alice.ID, Type: models.NotifyNewMessage, Title: "New message",
		Data: map[string]string{"conversation_id": conv.ID}}
	if err := store.CreateNotification(ctx, n); err != nil {
		t.Fatalf("CreateNotification failed: %v", err)
	}
	if err := store.CreateNotification(ctx, &models.Notification{UserID: alice.ID, Type: models.NotifyThankYou, Title: "Thanks"}); err != nil {
		t.Fatalf("CreateNotification failed: %v", err)
	}

	unread, _ := store.CountUnread(ctx, alice.ID)
	if unread != 2 {
		t.Errorf("unread: got %d, want 2", unread)
	}
	if err := store.MarkNotificationRead(ctx, alice.ID, n.ID); err != nil {
		t.Fatalf("MarkNotificationRead failed: %v", err)
	}
	if err := store.MarkNotificationRead(ctx, bob.ID, n.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("other users must not mark notifications read, got %v", err)
	}
	list, _ := store.ListNotifications(ctx, alice.ID, false, 0)
	var withData int
	for _, got := range list {
		if got.Data["conversation_id"] == conv.ID {
			withData++
		}
	}
	if withData != 1 {
		t.Errorf("notification data not preserved")
	}
	changed, _ := store.MarkAllNotificationsRead(ctx, alice.ID)
	if changed != 1 {
		t.Errorf("MarkAllNotificationsRead changed %d, want 1", changed)
	}
}

func TestDeleteProfileCascades(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	tenant, alice, bob := seed(t, store)

	item := &models.Item{TenantID: tenant.ID, OwnerID: alice.ID, Kind: models.KindLost, Title: "Laptop"}
	if err := store.CreateItem(ctx, item); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	if err := store.CreateClaim(ctx, &models.Claim{ItemID: item.ID, TenantID: tenant.ID, ClaimantID: bob.ID}); err != nil {
		t.Fatalf("CreateClaim failed: %v", err)
	}
	if err := store.PutFile(ctx, &models.StoredFile{OwnerID: alice.ID, ContentType: "image/png", Data: []byte{1, 2}}); err != nil {
		t.Fatalf("PutFile failed: %v", err)
	}

	if err := store.DeleteProfile(ctx, alice.ID); err != nil {
		t.Fatalf("DeleteProfile failed: %v", err)
	}
	if _, err := store.GetItem(ctx, item.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("owned item should be deleted, got %v", err)
	}
	claims, _ := store.ListClaimsByClaimant(ctx, bob.ID)
	if len(claims) != 0 {
		t.Errorf("claims on deleted items should cascade, got %d", len(claims))
	}
	if err := store.DeleteProfile(ctx, alice.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete should be ErrNotFound, got %v", err)
	}
}

func TestBackups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	tenant, alice, _ := seed(t, store)

	b := &models.Backup{TenantID: tenant.ID, CreatedBy: alice.ID, ProfileCount: 2, ItemCount: 0}
	if err := store.CreateBackup(ctx, b, []byte("payload")); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if b.SizeBytes != 7 {
		t.Errorf("size: got %d, want 7", b.SizeBytes)
	}

	list, err := store.ListBackups(ctx, tenant.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListBackups: got %d, err %v", len(list), err)
	}

	got, payload, err := store.GetBackup(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetBackup failed: %v", err)
	}
	if got.ProfileCount != 2 || string(payload) != "payload" {
		t.Errorf("unexpected backup: %+v %q", got, payload)
	}
}

func TestAcceptClaim(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	tenant, alice, bob := seed(t, store)
	carol := models.NewProfile(tenant.ID, "carol@north.edu", "Carol", "hash")
	if err := store.CreateProfile(ctx, carol); err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}
	owner := func(item *models.Item, _ *models.Claim) string { return item.OwnerID }

	newClaims := func(item *models.Item) (*models.Claim, *models.Claim) {
		t.Helper()
		a := &models.Claim{ItemID: item.ID, TenantID: tenant.ID, ClaimantID: alice.ID, Message: "Mine"}
		c := &models.Claim{ItemID: item.ID, TenantID: tenant.ID, ClaimantID: carol.ID, Message: "No, mine"}
		for _, cl := range []*models.Claim{a, c} {
			if err := store.CreateClaim(ctx, cl); err != nil {
				t.Fatalf("CreateClaim failed: %v", err)
			}
		}
		return a, c
	}

	t.Run("settles item", func(t *testing.T) {
		item := &models.Item{TenantID: tenant.ID, OwnerID: bob.ID, Kind: models.KindFound, Title: "Wallet", Status: models.StatusApproved}
		if err := store.CreateItem(ctx, item); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}
		first, second := newClaims(item)

		res, err := store.AcceptClaim(ctx, first.ID, bob.ID, owner, 10)
		if err != nil {
			t.Fatalf("AcceptClaim failed: %v", err)
		}
		if res.Claim.State != models.ClaimAccepted || res.Item.Status != models.StatusRecovered {
			t.Errorf("unexpected result: claim %s, item %s", res.Claim.State, res.Item.Status)
		}
		if res.Helper != bob.ID || res.Points != 10 {
			t.Errorf("helper: got %s with %d points", res.Helper, res.Points)
		}
		if len(res.Rejected) != 1 || res.Rejected[0].ID != second.ID || res.Rejected[0].State != models.ClaimRejected {
			t.Errorf("rejected: got %+v", res.Rejected)
		}

		if _, err := store.AcceptClaim(ctx, second.ID, bob.ID, owner, 10); !errors.Is(err, storage.ErrConflict) {
			t.Errorf("expected ErrConflict for a rejected claim, got %v", err)
		}
		got, err := store.GetProfile(ctx, bob.ID)
		if err != nil {
			t.Fatalf("GetProfile failed: %v", err)
		}
		if got.Points != 10 {
			t.Errorf("points: expected 10, got %d", got.Points)
		}
	})

	t.Run("item no longer approved", func(t *testing.T) {
		item := &models.Item{TenantID: tenant.ID, OwnerID: bob.ID, Kind: models.KindFound, Title: "Scarf", Status: models.StatusRejected}
		if err := store.CreateItem(ctx, item); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}
		first, _ := newClaims(item)

		if _, err := store.AcceptClaim(ctx, first.ID, bob.ID, owner, 10); !errors.Is(err, storage.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
		claim, err := store.GetClaim(ctx, first.ID)
		if err != nil {
			t.Fatalf("GetClaim failed: %v", err)
		}
		if claim.State != models.ClaimOpen {
			t.Errorf("claim state: expected open after rollback, got %s", claim.State)
		}
	})

	t.Run("missing claim", func(t *testing.T) {
		if _, err := store.AcceptClaim(ctx, "missing", bob.ID, owner, 10); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
