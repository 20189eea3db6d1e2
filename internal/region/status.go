// internal/region/status.go
package region

import "fmt"

// Status is the siren state reported for one region.
// The zero value (StatusUnknown) is never stored in a Snapshot:
// it describes a region the feed did not mention.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusFull
	StatusPartial
	StatusNoData
)

// Wire literals used by the feed.
const (
	wireFull    = "full"
	wirePartial = "partial"
	wireNoData  = "no_data"
)

func (s Status) String() string {
	switch s {
	case StatusFull:
		return wireFull
	case StatusPartial:
		return wirePartial
	case StatusNoData:
		return wireNoData
	default:
		return "unknown"
	}
}

// ParseStatus maps a feed literal onto a Status.
func ParseStatus(v string) (Status, error) {
	switch v {
	case wireFull:
		return StatusFull, nil
	case wirePartial:
		return StatusPartial, nil
	case wireNoData:
		return StatusNoData, nil
	}
	return StatusUnknown, fmt.Errorf("region: unexpected status literal %q", v)
}

// MarshalText encodes explicit statuses with their wire literal.
func (s Status) MarshalText() ([]byte, error) {
	if s == StatusUnknown {
		return nil, fmt.Errorf("region: unknown status has no wire form")
	}
	return []byte(s.String()), nil
}
