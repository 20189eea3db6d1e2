// internal/region/snapshot.go
package region

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Snapshot is an immutable mapping region name -> Status.
//
// A nil *Snapshot is the "feed unavailable" sentinel. It is distinct
// from an empty snapshot, which means the feed answered with no regions.
type Snapshot struct {
	statuses map[string]Status
}

// NewSnapshot copies m into a new Snapshot.
// Names are normalized with NormalizeName; StatusUnknown entries are dropped.
func NewSnapshot(m map[string]Status) *Snapshot {
	out := make(map[string]Status, len(m))
	for name, st := range m {
		if st == StatusUnknown {
			continue
		}
		out[NormalizeName(name)] = st
	}
	return &Snapshot{statuses: out}
}

// Empty returns a snapshot with no regions.
func Empty() *Snapshot {
	return &Snapshot{statuses: map[string]Status{}}
}

// NormalizeName brings a region name into NFC form and trims surrounding space,
// so composed and decomposed spellings of the same name compare equal.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// Lookup returns the status of name and whether the feed mentioned it.
func (s *Snapshot) Lookup(name string) (Status, bool) {
	if s == nil {
		return StatusUnknown, false
	}
	st, ok := s.statuses[NormalizeName(name)]
	return st, ok
}

// Status returns the status of name, StatusUnknown when absent.
func (s *Snapshot) Status(name string) Status {
	st, _ := s.Lookup(name)
	return st
}

// Len returns the number of regions carried by the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.statuses)
}

// Names returns the region names in sorted order.
func (s *Snapshot) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.statuses))
	for n := range s.statuses {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Map returns a copy of the underlying mapping.
func (s *Snapshot) Map() map[string]Status {
	if s == nil {
		return nil
	}
	out := make(map[string]Status, len(s.statuses))
	for k, v := range s.statuses {
		out[k] = v
	}
	return out
}

// Equal reports value equality. Two nil snapshots are equal; a nil
// snapshot never equals a non-nil one, even an empty one.
func Equal(a, b *Snapshot) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if len(a.statuses) != len(b.statuses) {
		return false
	}
	for k, v := range a.statuses {
		if w, ok := b.statuses[k]; !ok || w != v {
			return false
		}
	}
	return true
}
