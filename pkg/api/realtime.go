package api

// SubscribeRequest names the resource keys to watch, e.g.
// "notifications:<user id>" or "items:<tenant id>".
type SubscribeRequest struct {
	Keys []string `json:"keys"`
}

// SubscribeResponse is one streamed change. The first message of a stream
// is a resync for every key so clients load initial state.
type SubscribeResponse struct {
	Change *Change `json:"change"`
}
