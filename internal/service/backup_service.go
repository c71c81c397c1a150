package service

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	json "github.com/goccy/go-json"
	"github.com/mmynk/lostfound/internal/models"
	"github.com/mmynk/lostfound/internal/storage"
	"github.com/mmynk/lostfound/pkg/api"
	"github.com/mmynk/lostfound/pkg/api/apiconnect"
)

// SnapshotVersion is written into every backup payload.
const SnapshotVersion = 1

// Snapshot is the decoded content of a backup. Password hashes and uploaded
// files are not included.
type Snapshot struct {
	Version   int            `json:"version"`
	CreatedAt int64          `json:"created_at"`
	Tenant    *api.Tenant    `json:"tenant"`
	Profiles  []*api.Profile `json:"profiles"`
	Items     []*api.Item    `json:"items"`
	Claims    []*api.Claim   `json:"claims"`
}

// BackupService implements the BackupService RPC interface. Admins only.
type BackupService struct {
	apiconnect.UnimplementedBackupServiceHandler
	store    storage.Store
	maxBytes int64
	logger   *slog.Logger
}

// NewBackupService creates a new BackupService. maxBytes bounds the
// compressed payload; zero disables the limit.
func NewBackupService(store storage.Store, maxBytes int64, logger *slog.Logger) *BackupService {
	return &BackupService{store: store, maxBytes: maxBytes, logger: logger}
}

// CreateBackup snapshots the caller's campus as gzip-compressed JSON.
func (s *BackupService) CreateBackup(ctx context.Context, req *connect.Request[api.CreateBackupRequest]) (*connect.Response[api.CreateBackupResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !c.isAdmin() {
		return nil, toConnectError(errAdminOnly)
	}

	snap, err := s.snapshot(ctx, c.TenantID)
	if err != nil {
		s.logger.Error("Snapshot failed", "tenant_id", c.TenantID, "error", err)
		return nil, toConnectError(err)
	}
	payload, err := encodeSnapshot(snap)
	if err != nil {
		return nil, toConnectError(err)
	}
	if s.maxBytes > 0 && int64(len(payload)) > s.maxBytes {
		s.logger.Warn("Backup too large", "tenant_id", c.TenantID, "bytes", len(payload), "max", s.maxBytes)
		return nil, connect.NewError(connect.CodeResourceExhausted,
			fmt.Errorf("backup is %d bytes, limit is %d", len(payload), s.maxBytes))
	}

	backup := &models.Backup{
		TenantID:     c.TenantID,
		CreatedBy:    c.UserID,
		SizeBytes:    int64(len(payload)),
		ProfileCount: int64(len(snap.Profiles)),
		ItemCount:    int64(len(snap.Items)),
		CreatedAt:    snap.CreatedAt,
	}
	if err := s.store.CreateBackup(ctx, backup, payload); err != nil {
		s.logger.Error("CreateBackup failed", "tenant_id", c.TenantID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Backup created", "backup_id", backup.ID, "tenant_id", c.TenantID, "bytes", backup.SizeBytes)
	return connect.NewResponse(&api.CreateBackupResponse{Backup: toAPIBackup(backup)}), nil
}

// ListBackups lists the campus backups, newest first.
func (s *BackupService) ListBackups(ctx context.Context, req *connect.Request[api.ListBackupsRequest]) (*connect.Response[api.ListBackupsResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !c.isAdmin() {
		return nil, toConnectError(errAdminOnly)
	}
	backups, err := s.store.ListBackups(ctx, c.TenantID)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]*api.Backup, len(backups))
	for i, b := range backups {
		out[i] = toAPIBackup(b)
	}
	return connect.NewResponse(&api.ListBackupsResponse{Backups: out}), nil
}

// Download returns a backup and its gzip payload for the caller, who must be
// an admin of the backup's campus.
func (s *BackupService) Download(ctx context.Context, id string) (*models.Backup, []byte, error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, nil, toConnectError(err)
	}
	if !c.isAdmin() {
		return nil, nil, toConnectError(errAdminOnly)
	}
	backup, payload, err := s.store.GetBackup(ctx, id)
	if err != nil {
		return nil, nil, toConnectError(err)
	}
	if err := c.sameTenant(backup.TenantID); err != nil {
		return nil, nil, toConnectError(err)
	}
	s.logger.Info("Backup downloaded", "backup_id", id, "by", c.UserID)
	return backup, payload, nil
}

func (s *BackupService) snapshot(ctx context.Context, tenantID string) (*Snapshot, error) {
	tenant, err := s.store.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	profiles, err := s.store.ListProfiles(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	items, err := s.store.ListItems(ctx, models.ItemFilter{TenantID: tenantID})
	if err != nil {
		return nil, err
	}
	claims, err := s.store.ListClaimsByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Version:   SnapshotVersion,
		CreatedAt: nowUnix(),
		Tenant:    toAPITenant(tenant),
		Profiles:  make([]*api.Profile, len(profiles)),
		Items:     toAPIItems(items),
		Claims:    make([]*api.Claim, len(claims)),
	}
	for i, p := range profiles {
		snap.Profiles[i] = toAPIProfile(p, true)
	}
	for i, cl := range claims {
		snap.Claims[i] = toAPIClaim(cl)
	}
	return snap, nil
}

func encodeSnapshot(snap *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if err := json.NewEncoder(zw).Encode(snap); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot reads a backup payload.
func DecodeSnapshot(payload []byte) (*Snapshot, error) {
	zr, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to open backup: %w", err)
	}
	defer zr.Close()

	var snap Snapshot
	if err := json.NewDecoder(zr).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}
	return &snap, nil
}
