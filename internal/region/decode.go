// internal/region/decode.go
package region

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Decode parses a feed payload: a JSON object mapping region name to
// "full", "partial", "no_data" or null. Null values are treated as absent.
// Any other shape is an error.
func Decode(data []byte) (*Snapshot, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, fmt.Errorf("region: payload is not a JSON object")
	}

	var raw map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("region: decode payload: %w", err)
	}

	m := make(map[string]Status, len(raw))
	for name, v := range raw {
		if v == nil {
			continue
		}
		st, err := ParseStatus(*v)
		if err != nil {
			return nil, fmt.Errorf("region %q: %w", name, err)
		}
		m[name] = st
	}

	return NewSnapshot(m), nil
}

// MarshalJSON encodes the snapshot in feed form.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.statuses)
}
