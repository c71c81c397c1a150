package apiconnect

import (
	json "github.com/goccy/go-json"
)

// JSONCodec marshals api messages as plain JSON. It is registered under the
// "json" name so Connect's application/json and application/connect+json
// content types use it.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
