package apiconnect

import "encoding/json"

// JSONCodec marshals api messages with encoding/json. It is registered under
// the "json" name, so it serves application/json requests.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	// Browsers may post an empty body for messages without fields.
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
