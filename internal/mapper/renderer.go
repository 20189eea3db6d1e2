// internal/mapper/renderer.go
package mapper

import (
	"fmt"
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/tamzrod/siren-display/internal/artwork"
	"github.com/tamzrod/siren-display/internal/raster"
	"github.com/tamzrod/siren-display/internal/region"
)

// Tones used on the grey working canvases before dithering.
const (
	toneInk   uint8 = 0x00
	tonePaper uint8 = 0xFF

	// DefaultNoDataTone dithers into a sparse stipple that stays
	// distinguishable from a solid partial fill.
	DefaultNoDataTone uint8 = 0x90
)

// Options tune rasterization. Zero values select the defaults.
type Options struct {
	// Oversample renders at N times the target size before resampling.
	Oversample int

	// Stroke is the border width on the base layer, in target pixels.
	Stroke float64

	// Padding keeps the map away from the canvas edge, in target pixels.
	Padding float64

	// NoDataTone is the grey level used for regions without data.
	NoDataTone uint8
}

func (o Options) withDefaults() Options {
	if o.Oversample <= 0 {
		o.Oversample = 2
	}
	if o.Stroke <= 0 {
		o.Stroke = 1.2
	}
	if o.Padding <= 0 {
		o.Padding = 2
	}
	if o.NoDataTone == 0 {
		o.NoDataTone = DefaultNoDataTone
	}
	return o
}

// Renderer turns a snapshot into the base and accent map layers.
// It holds no per-render state and is safe to reuse.
type Renderer struct {
	tpl  *artwork.Template
	opts Options
}

// New binds a renderer to a parsed template.
func New(tpl *artwork.Template, opts Options) (*Renderer, error) {
	if tpl == nil {
		return nil, &RenderError{Err: ErrTemplate}
	}
	return &Renderer{tpl: tpl, opts: opts.withDefaults()}, nil
}

// NewFromFile loads the template at path (empty = embedded default).
func NewFromFile(path string, opts Options) (*Renderer, error) {
	tpl, err := artwork.Load(path)
	if err != nil {
		return nil, &RenderError{Err: fmt.Errorf("%w: %v", ErrTemplate, err)}
	}
	return New(tpl, opts)
}

// Universe returns every region name the map can show.
func (r *Renderer) Universe() []string { return r.tpl.Names() }

// Render produces the base and accent layers for snap at size.
//
// Full regions are filled on the accent layer only. Partial regions are
// filled solid on the base layer and regions without data get a dim
// stipple there. Regions the snapshot does not mention stay blank.
// Every border is stroked on the base layer; the accent layer has none.
func (r *Renderer) Render(snap *region.Snapshot, size image.Point) (base, accent raster.Layer, err error) {
	if size.X <= 0 || size.Y <= 0 {
		return raster.Layer{}, raster.Layer{}, &RenderError{Err: fmt.Errorf("%w: %dx%d", ErrSize, size.X, size.Y)}
	}

	for _, name := range snap.Names() {
		if !r.tpl.Has(name) {
			return raster.Layer{}, raster.Layer{}, &RenderError{Region: name, Err: ErrUnknownRegion}
		}
	}

	k := r.opts.Oversample
	work := size.Mul(k)
	proj := r.tpl.Fit(work, r.opts.Padding*float64(k))

	baseImg := paper(work)
	accentImg := paper(work)
	z := vector.NewRasterizer(work.X, work.Y)

	for _, sh := range r.tpl.Shapes() {
		bt, at := r.tones(snap.Status(sh.Region))
		fill(z, baseImg, sh, proj, bt)
		fill(z, accentImg, sh, proj, at)
	}

	z.Reset(work.X, work.Y)
	half := float32(r.opts.Stroke * float64(k) / 2)
	for _, sh := range r.tpl.Shapes() {
		for _, ring := range sh.Rings {
			strokeRing(z, ring, proj, half)
		}
	}
	z.Draw(baseImg, baseImg.Bounds(), image.NewUniform(color.Gray{Y: toneInk}), image.Point{})

	base = raster.Dither(raster.Resample(baseImg, size, xdraw.CatmullRom))
	accent = raster.Dither(raster.Resample(accentImg, size, xdraw.CatmullRom))
	return base, accent, nil
}

// tones maps a status to the base and accent fill levels.
func (r *Renderer) tones(st region.Status) (base, accent uint8) {
	switch st {
	case region.StatusFull:
		return tonePaper, toneInk
	case region.StatusPartial:
		return toneInk, tonePaper
	case region.StatusNoData:
		return r.opts.NoDataTone, tonePaper
	default:
		return tonePaper, tonePaper
	}
}

func paper(size image.Point) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	return img
}

func fill(z *vector.Rasterizer, dst *image.RGBA, sh artwork.Shape, proj artwork.Projection, tone uint8) {
	b := dst.Bounds()
	z.Reset(b.Dx(), b.Dy())
	for _, ring := range sh.Rings {
		z.MoveTo(proj.Point(ring[0]))
		for _, c := range ring[1:] {
			z.LineTo(proj.Point(c))
		}
		z.ClosePath()
	}
	z.Draw(dst, b, image.NewUniform(color.Gray{Y: tone}), image.Point{})
}

// strokeRing adds one quad per edge and a square per vertex.
// All sub-paths share the same winding so overlaps never cancel out.
func strokeRing(z *vector.Rasterizer, ring artwork.Ring, proj artwork.Projection, half float32) {
	n := len(ring)
	for i := 0; i < n; i++ {
		px, py := proj.Point(ring[i])
		qx, qy := proj.Point(ring[(i+1)%n])

		z.MoveTo(px-half, py-half)
		z.LineTo(px-half, py+half)
		z.LineTo(px+half, py+half)
		z.LineTo(px+half, py-half)
		z.ClosePath()

		dx, dy := qx-px, qy-py
		l := float32(math.Hypot(float64(dx), float64(dy)))
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*half, dx/l*half

		z.MoveTo(px+nx, py+ny)
		z.LineTo(qx+nx, qy+ny)
		z.LineTo(qx-nx, qy-ny)
		z.LineTo(px-nx, py-ny)
		z.ClosePath()
	}
}
