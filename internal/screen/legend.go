// internal/screen/legend.go
package screen

import (
	"fmt"

	"github.com/tamzrod/siren-display/internal/region"
)

// Icon is the swatch drawn in front of a legend row.
type Icon int

const (
	IconAccentFill Icon = iota
	IconBaseFill
	IconBaseStipple
	IconBaseOutline
)

// LegendEntry is one legend row.
type LegendEntry struct {
	Label string
	Count int
	Icon  Icon
}

// Text is the row caption, e.g. "partial - 2".
func (e LegendEntry) Text() string {
	return fmt.Sprintf("%s - %d", e.Label, e.Count)
}

// Legend builds the rows for snap against the region universe.
func Legend(snap *region.Snapshot, universe []string) []LegendEntry {
	c := region.Tally(snap, universe)
	return []LegendEntry{
		{Label: "full", Count: c.Full, Icon: IconAccentFill},
		{Label: "partial", Count: c.Partial, Icon: IconBaseFill},
		{Label: "no data", Count: c.NoData, Icon: IconBaseStipple},
		{Label: "nothing", Count: c.Nothing, Icon: IconBaseOutline},
	}
}
