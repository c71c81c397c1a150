package api

type CreateClaimRequest struct {
	ItemID  string `json:"item_id"`
	Message string `json:"message"`
}

type CreateClaimResponse struct {
	Claim *Claim `json:"claim"`
}

// ListClaimsRequest lists the claims on ItemID (item owner or admin), or the
// caller's own claims when ItemID is empty.
type ListClaimsRequest struct {
	ItemID string `json:"item_id,omitempty"`
}

type ListClaimsResponse struct {
	Claims []*Claim `json:"claims"`
}

type ResolveClaimRequest struct {
	ID     string `json:"id"`
	Accept bool   `json:"accept"`
}

type ResolveClaimResponse struct {
	Claim *Claim `json:"claim"`
	Item  *Item  `json:"item"`
}
