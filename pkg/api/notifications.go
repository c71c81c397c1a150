package api

type ListNotificationsRequest struct {
	UnreadOnly bool `json:"unread_only,omitempty"`
	Limit      int  `json:"limit,omitempty"`
}

type ListNotificationsResponse struct {
	Notifications []*Notification `json:"notifications"`
}

// MarkReadRequest marks one notification, or all of them when All is set.
type MarkReadRequest struct {
	ID  string `json:"id,omitempty"`
	All bool   `json:"all,omitempty"`
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

type UnreadCountRequest struct{}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
