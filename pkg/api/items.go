package api

type CreateItemRequest struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Location    string `json:"location,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	ContactInfo string `json:"contact_info,omitempty"`
	OccurredAt  int64  `json:"occurred_at,omitempty"`
}

type CreateItemResponse struct {
	Item *Item `json:"item"`
}

// UpdateItemRequest changes only the fields that are set.
type UpdateItemRequest struct {
	ID          string  `json:"id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Location    *string `json:"location,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	ContactInfo *string `json:"contact_info,omitempty"`
	OccurredAt  *int64  `json:"occurred_at,omitempty"`
}

type UpdateItemResponse struct {
	Item *Item `json:"item"`
}

type GetItemRequest struct {
	ID string `json:"id"`
}

type GetItemResponse struct {
	Item *Item `json:"item"`
}

type ListItemsRequest struct {
	Kind     string   `json:"kind,omitempty"`
	Statuses []string `json:"statuses,omitempty"`
	Category string   `json:"category,omitempty"`
	// Mine restricts to the caller's own reports.
	Mine   bool  `json:"mine,omitempty"`
	Since  int64 `json:"since,omitempty"`
	Limit  int   `json:"limit,omitempty"`
	Offset int   `json:"offset,omitempty"`
}

type ListItemsResponse struct {
	Items []*Item `json:"items"`
}

type SearchItemsRequest struct {
	Query string `json:"query"`
	Kind  string `json:"kind,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

type SearchItemsResponse struct {
	Items []*Item `json:"items"`
}

type SearchByImageRequest struct {
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
	Kind        string `json:"kind,omitempty"`
	Limit       int    `json:"limit,omitempty"`
}

type SearchByImageResponse struct {
	Matches []*Match `json:"matches"`
}

type EnhanceDescriptionRequest struct {
	Text string `json:"text"`
}

type EnhanceDescriptionResponse struct {
	Text string `json:"text"`
}

// FindMatchesRequest looks for reports of the opposite kind that may
// describe the same object as ItemID.
type FindMatchesRequest struct {
	ItemID string `json:"item_id"`
	Limit  int    `json:"limit,omitempty"`
}

type FindMatchesResponse struct {
	Matches []*Match `json:"matches"`
}

type ModerateItemRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ModerateItemResponse struct {
	Item *Item `json:"item"`
}
