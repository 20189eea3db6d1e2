// internal/status/snapshot.go
package status

import "github.com/tamzrod/siren-display/internal/region"

// Snapshot represents exactly what the register writer is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health  uint16
	Counts  region.Counts
	Regions []uint16 // one code per universe region, universe order
}

// FromRegions builds the register view of snap over universe.
// A nil snap is the stale view: health stale and every region unknown.
func FromRegions(snap *region.Snapshot, universe []string) Snapshot {
	s := Snapshot{
		Health:  HealthOK,
		Counts:  region.Tally(snap, universe),
		Regions: make([]uint16, len(universe)),
	}
	if snap == nil {
		s.Health = HealthStale
		return s
	}

	for i, name := range universe {
		s.Regions[i] = Code(snap.Status(name))
	}
	return s
}

// Code maps a region status onto its register value.
func Code(st region.Status) uint16 {
	switch st {
	case region.StatusFull:
		return RegionFull
	case region.StatusPartial:
		return RegionPartial
	case region.StatusNoData:
		return RegionNoData
	default:
		return RegionUnknown
	}
}
