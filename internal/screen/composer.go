// internal/screen/composer.go
package screen

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/tamzrod/siren-display/internal/logfields"
	"github.com/tamzrod/siren-display/internal/raster"
	"github.com/tamzrod/siren-display/internal/region"
)

// NoConnectionText is shown alone when the feed is unavailable.
const NoConnectionText = "NO CONNECTION"

// DefaultMargin is the space left of and below the map that holds the
// title and legend.
var DefaultMargin = image.Pt(140, 130)

var titleLines = []struct {
	text string
	at   image.Point
}{
	{"Air raid", image.Pt(16, 50)},
	{"sirens in", image.Pt(12, 66)},
	{" Ukraine", image.Pt(12, 82)},
}

// Legend geometry, relative to the vertical middle of the canvas.
const (
	legendTop   = 54
	legendStep  = 16
	legendIconX = 1
	legendIcon  = 14
	legendTextX = 20
)

// MapRenderer draws the map layers for a snapshot.
type MapRenderer interface {
	Render(snap *region.Snapshot, size image.Point) (base, accent raster.Layer, err error)
	Universe() []string
}

// Options configure a Composer. Zero values select the defaults.
type Options struct {
	Margin   image.Point
	FontSize float64
	Logger   *slog.Logger
}

// Composer lays out a full screen: the map on the right, title and
// legend on the left, or the no-connection banner. Each Compose call
// returns a fresh frame; nothing is kept between calls.
type Composer struct {
	renderer MapRenderer
	margin   image.Point
	log      *slog.Logger
	onMap    map[string]struct{}

	mu   sync.Mutex // font faces are not safe for concurrent use
	face font.Face
}

// New builds a Composer around renderer.
func New(renderer MapRenderer, opts Options) (*Composer, error) {
	if renderer == nil {
		return nil, errors.New("screen: map renderer required")
	}
	if opts.Margin == (image.Point{}) {
		opts.Margin = DefaultMargin
	}
	if opts.Margin.X < 0 || opts.Margin.Y < 0 {
		return nil, fmt.Errorf("screen: margin must not be negative: %v", opts.Margin)
	}
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultFontSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	onMap := make(map[string]struct{})
	for _, name := range renderer.Universe() {
		onMap[region.NormalizeName(name)] = struct{}{}
	}

	return &Composer{
		renderer: renderer,
		margin:   opts.Margin,
		log:      opts.Logger,
		onMap:    onMap,
		face:     loadFace(opts.FontSize),
	}, nil
}

// Universe returns every region the legend accounts for.
func (c *Composer) Universe() []string { return c.renderer.Universe() }

// MapSize is the area handed to the renderer for a canvas.
func (c *Composer) MapSize(canvas image.Point) image.Point {
	return canvas.Sub(c.margin)
}

// Compose renders snap onto a canvas-sized frame.
// A nil snapshot yields the no-connection screen and never touches the renderer.
func (c *Composer) Compose(snap *region.Snapshot, canvas image.Point) (raster.Frame, error) {
	if canvas.X <= 0 || canvas.Y <= 0 {
		return raster.Frame{}, fmt.Errorf("screen: invalid canvas %dx%d", canvas.X, canvas.Y)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	base := raster.NewBuilder(canvas.X, canvas.Y)
	accent := raster.NewBuilder(canvas.X, canvas.Y)

	if snap == nil {
		c.drawCentered(base, NoConnectionText)
		return raster.Frame{Base: base.Layer(), Accent: accent.Layer()}, nil
	}

	mapSize := c.MapSize(canvas)
	if mapSize.X <= 0 || mapSize.Y <= 0 {
		return raster.Frame{}, fmt.Errorf("screen: canvas %v too small for margin %v", canvas, c.margin)
	}

	snap = c.drawable(snap)

	mb, ma, err := c.renderer.Render(snap, mapSize)
	if err != nil {
		return raster.Frame{}, fmt.Errorf("screen: render map: %w", err)
	}

	at := image.Pt(canvas.X-mb.Width(), 0)
	base.Paste(mb, at)
	accent.Paste(ma, at)

	for _, l := range titleLines {
		c.drawText(base, l.text, l.at)
	}

	top := canvas.Y/2 + legendTop
	for i, e := range Legend(snap, c.renderer.Universe()) {
		y := top + i*legendStep
		drawIcon(base, accent, e.Icon, image.Rect(legendIconX, y, legendIconX+legendIcon, y+legendIcon))
		c.drawText(base, e.Text(), image.Pt(legendTextX, y))
	}

	return raster.Frame{Base: base.Layer(), Accent: accent.Layer()}, nil
}

// drawable drops the regions the map cannot draw, logging each one, so a
// single unexpected feed key never keeps the rest of the map off the panel.
func (c *Composer) drawable(snap *region.Snapshot) *region.Snapshot {
	var skipped []string
	for _, name := range snap.Names() {
		if _, ok := c.onMap[name]; !ok {
			skipped = append(skipped, name)
		}
	}
	if len(skipped) == 0 {
		return snap
	}

	m := snap.Map()
	for _, name := range skipped {
		c.log.Warn("region not on map, skipped", logfields.Region(name))
		delete(m, name)
	}
	return region.NewSnapshot(m)
}

func drawIcon(base, accent *raster.Builder, icon Icon, r image.Rectangle) {
	switch icon {
	case IconAccentFill:
		accent.Fill(r, true)
	case IconBaseFill:
		base.Fill(r, true)
	case IconBaseStipple:
		base.Stipple(r)
		base.Outline(r)
	case IconBaseOutline:
		base.Outline(r)
	}
}

// drawText draws s with its top-left corner at at.
func (c *Composer) drawText(dst *raster.Builder, s string, at image.Point) {
	ascent := c.face.Metrics().Ascent.Ceil()
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: c.face,
		Dot:  fixed.P(at.X, at.Y+ascent),
	}
	d.DrawString(s)
}

func (c *Composer) drawCentered(dst *raster.Builder, s string) {
	m := c.face.Metrics()
	w := font.MeasureString(c.face, s).Ceil()
	h := m.Ascent.Ceil() + m.Descent.Ceil()

	b := dst.Bounds()
	c.drawText(dst, s, image.Pt((b.Dx()-w)/2, (b.Dy()-h)/2))
}
