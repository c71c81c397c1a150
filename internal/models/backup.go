package models

// Backup is a point-in-time export of one tenant.
type Backup struct {
	ID           string
	TenantID     string
	CreatedBy    string
	SizeBytes    int64
	ProfileCount int64
	ItemCount    int64
	CreatedAt    int64
}

// StoredFile is an uploaded blob, e.g. an avatar image.
type StoredFile struct {
	ID          string
	OwnerID     string
	ContentType string
	Data        []byte
	CreatedAt   int64
}
