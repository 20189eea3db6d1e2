// internal/display/consumer.go
package display

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/tamzrod/siren-display/internal/metrics"
	"github.com/tamzrod/siren-display/internal/raster"
	"github.com/tamzrod/siren-display/internal/region"
)

// Composer lays out a frame for a snapshot.
type Composer interface {
	Compose(snap *region.Snapshot, canvas image.Point) (raster.Frame, error)
	Universe() []string
}

// FrameObserver receives every composed frame with the snapshot it shows.
// It is called on the dispatch path and must not block.
type FrameObserver interface {
	ObserveFrame(snap *region.Snapshot, f raster.Frame)
}

// ScreenConsumer composes each snapshot at the sink's size and pushes
// the result to the sink. Observers get the same frame, so a snapshot
// is rasterised once however many surfaces show it.
type ScreenConsumer struct {
	composer  Composer
	sink      Sink
	rec       metrics.Recorder
	observers []FrameObserver
}

// NewScreenConsumer binds a composer to a sink.
func NewScreenConsumer(c Composer, s Sink, rec metrics.Recorder, observers ...FrameObserver) (*ScreenConsumer, error) {
	if c == nil || s == nil {
		return nil, errors.New("display: composer and sink required")
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	sc := &ScreenConsumer{composer: c, sink: s, rec: rec}
	for _, o := range observers {
		if o != nil {
			sc.observers = append(sc.observers, o)
		}
	}
	return sc, nil
}

func (sc *ScreenConsumer) Name() string { return "display" }

// OnSnapshot renders snap. A nil snapshot shows the no-connection screen.
func (sc *ScreenConsumer) OnSnapshot(_ context.Context, snap *region.Snapshot) error {
	start := time.Now()
	f, err := sc.composer.Compose(snap, sc.sink.Dimensions())
	if err != nil {
		return fmt.Errorf("compose: %w", err)
	}
	sc.rec.ObserveRender(time.Since(start))

	for _, o := range sc.observers {
		o.ObserveFrame(snap, f)
	}

	if snap != nil {
		c := region.Tally(snap, sc.composer.Universe())
		sc.rec.SetRegionCounts(c.Full, c.Partial, c.NoData, c.Nothing)
	}

	if err := sc.sink.Render(f.Base, f.Accent); err != nil {
		return fmt.Errorf("sink: %w", err)
	}
	return nil
}

// Close shuts the sink down.
func (sc *ScreenConsumer) Close() error {
	return sc.sink.Close()
}
