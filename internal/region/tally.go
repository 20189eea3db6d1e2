// internal/region/tally.go
package region

// Counts is the per-bucket region count shown in the legend.
type Counts struct {
	Full    int `json:"full"`
	Partial int `json:"partial"`
	NoData  int `json:"no_data"`

	// Nothing counts universe regions the snapshot does not mention.
	Nothing int `json:"nothing"`
}

// Tally counts the snapshot's statuses against the region universe.
// Explicit statuses are counted as reported; Nothing is the number of
// universe regions absent from the snapshot. A nil snapshot counts the
// whole universe as Nothing.
func Tally(s *Snapshot, universe []string) Counts {
	var c Counts

	if s != nil {
		for _, st := range s.statuses {
			switch st {
			case StatusFull:
				c.Full++
			case StatusPartial:
				c.Partial++
			case StatusNoData:
				c.NoData++
			}
		}
	}

	seen := make(map[string]struct{}, len(universe))
	for _, name := range universe {
		name = NormalizeName(name)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if _, ok := s.Lookup(name); !ok {
			c.Nothing++
		}
	}

	return c
}
