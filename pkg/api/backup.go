package api

type CreateBackupRequest struct{}

type CreateBackupResponse struct {
	Backup *Backup `json:"backup"`
}

type ListBackupsRequest struct{}

type ListBackupsResponse struct {
	Backups []*Backup `json:"backups"`
}
