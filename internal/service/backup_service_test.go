package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"connectrpc.com/connect"
	"github.com/mmynk/lostfound/internal/auth"
	"github.com/mmynk/lostfound/internal/middleware"
	"github.com/mmynk/lostfound/internal/models"
	"github.com/mmynk/lostfound/pkg/api"
)

func claimsContext(u user) context.Context {
	return middleware.WithClaims(context.Background(), &auth.Claims{
		UserID:   u.Me.ID,
		TenantID: u.Me.TenantID,
		Role:     models.Role(u.Me.Role),
	})
}

func TestBackups_AdminOnly(t *testing.T) {
	env := setupTestServer(t)
	env.register(t, "north", "admin")
	alice := env.register(t, "north", "alice")
	ctx := context.Background()

	_, err := alice.Backups.CreateBackup(ctx, connect.NewRequest(&api.CreateBackupRequest{}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = alice.Backups.ListBackups(ctx, connect.NewRequest(&api.ListBackupsRequest{}))
	assertCode(t, err, connect.CodePermissionDenied)
}

func TestBackups_CreateAndDownload(t *testing.T) {
	env := setupTestServer(t)
	admin := env.register(t, "north", "admin")
	alice := env.register(t, "north", "alice")
	other := env.register(t, "south", "admin")
	ctx := context.Background()

	item := createItem(t, alice, &admin, "found", "Keys", "Bunch of keys")
	if _, err := admin.Claims.CreateClaim(ctx, connect.NewRequest(&api.CreateClaimRequest{
		ItemID:  item.ID,
		Message: "Mine, with a red tag",
	})); err != nil {
		t.Fatalf("CreateClaim failed: %v", err)
	}

	resp, err := admin.Backups.CreateBackup(ctx, connect.NewRequest(&api.CreateBackupRequest{}))
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	backup := resp.Msg.Backup
	if backup.ProfileCount != 2 || backup.ItemCount != 1 {
		t.Errorf("counts: got %d profiles, %d items", backup.ProfileCount, backup.ItemCount)
	}
	if backup.SizeBytes == 0 {
		t.Error("expected non-empty payload")
	}

	list, err := admin.Backups.ListBackups(ctx, connect.NewRequest(&api.ListBackupsRequest{}))
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(list.Msg.Backups) != 1 || list.Msg.Backups[0].ID != backup.ID {
		t.Fatalf("expected the new backup listed, got %+v", list.Msg.Backups)
	}

	otherList, err := other.Backups.ListBackups(ctx, connect.NewRequest(&api.ListBackupsRequest{}))
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(otherList.Msg.Backups) != 0 {
		t.Errorf("backups leaked across campuses: %+v", otherList.Msg.Backups)
	}

	svc := NewBackupService(env.store, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, _, err = svc.Download(claimsContext(other), backup.ID)
	assertCode(t, err, connect.CodeNotFound)
	_, _, err = svc.Download(claimsContext(alice), backup.ID)
	assertCode(t, err, connect.CodePermissionDenied)

	meta, payload, err := svc.Download(claimsContext(admin), backup.ID)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if meta.SizeBytes != int64(len(payload)) {
		t.Errorf("size mismatch: meta %d, payload %d", meta.SizeBytes, len(payload))
	}

	snap, err := DecodeSnapshot(payload)
	if err != nil {
		t.Fatalf("DecodeSnapshot failed: %v", err)
	}
	if snap.Version != SnapshotVersion {
		t.Errorf("version: got %d", snap.Version)
	}
	if snap.Tenant == nil || snap.Tenant.Slug != "north" {
		t.Errorf("tenant: got %+v", snap.Tenant)
	}
	if len(snap.Profiles) != 2 || len(snap.Items) != 1 || len(snap.Claims) != 1 {
		t.Errorf("snapshot contents: %d profiles, %d items, %d claims", len(snap.Profiles), len(snap.Items), len(snap.Claims))
	}
	if snap.Items[0].Title != "Keys" {
		t.Errorf("item title: got %q", snap.Items[0].Title)
	}
}

func TestBackups_SizeLimit(t *testing.T) {
	env := setupTestServer(t)
	admin := env.register(t, "north", "admin")

	svc := NewBackupService(env.store, 16, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := svc.CreateBackup(claimsContext(admin), connect.NewRequest(&api.CreateBackupRequest{}))
	assertCode(t, err, connect.CodeResourceExhausted)
}

func TestDecodeSnapshot_Garbage(t *testing.T) {
	if _, err := DecodeSnapshot([]byte("not gzip")); err == nil {
		t.Fatal("expected error for garbage payload")
	}
}
