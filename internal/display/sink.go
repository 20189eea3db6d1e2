// internal/display/sink.go
package display

import (
	"image"

	"github.com/tamzrod/siren-display/internal/raster"
)

// Sink is the physical (or simulated) bi-chromatic panel.
type Sink interface {
	// Dimensions is the canvas size frames must be composed at.
	Dimensions() image.Point

	// Render pushes both layers to the panel. Layers must match Dimensions.
	Render(base, accent raster.Layer) error

	// Close blanks the panel and releases the device.
	Close() error
}

// NullSink accepts frames and discards them.
type NullSink struct {
	Size image.Point
}

func (s NullSink) Dimensions() image.Point               { return s.Size }
func (s NullSink) Render(base, accent raster.Layer) error { return nil }
func (s NullSink) Close() error                           { return nil }
