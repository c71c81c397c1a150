package models

// ItemKind distinguishes reports of lost property from reports of found property.
type ItemKind string

const (
	KindLost  ItemKind = "lost"
	KindFound ItemKind = "found"
)

// Valid reports whether k is a known kind.
func (k ItemKind) Valid() bool {
	return k == KindLost || k == KindFound
}

// ModerationStatus is the administrator-assigned state of an item. It is used
// as a filter value; any status may be set from any other by an admin.
type ModerationStatus string

const (
	StatusPending   ModerationStatus = "pending"
	StatusApproved  ModerationStatus = "approved"
	StatusRejected  ModerationStatus = "rejected"
	StatusRecovered ModerationStatus = "recovered"
)

// Valid reports whether s is a known status.
func (s ModerationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusRecovered:
		return true
	}
	return false
}

// Item is a lost or found report.
type Item struct {
	ID       string
	TenantID string
	OwnerID  string
	Kind     ItemKind

	Title       string
	Description string
	Category    string
	Location    string
	ImageURL    string

	// ContactInfo is either supplied by the reporter or extracted from the
	// description.
	ContactInfo string

	Status ModerationStatus

	// OccurredAt is when the item was lost or found, as reported.
	OccurredAt int64
	CreatedAt  int64
	UpdatedAt  int64
}

// ItemFilter selects items. Zero-valued fields do not constrain the result.
type ItemFilter struct {
	TenantID string
	OwnerID  string
	Kind     ItemKind
	Statuses []ModerationStatus
	Category string

	// Query matches title, description and location, case-insensitively.
	Query string

	// Since restricts to items created at or after this Unix time.
	Since int64

	Limit  int
	Offset int
}
