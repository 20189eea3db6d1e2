// internal/artwork/projection.go
package artwork

import (
	"image"
	"math"
)

// Projection maps template coordinates onto a pixel canvas.
// It is an equirectangular projection corrected for the latitude of the
// template centre, fitted inside the canvas with the aspect ratio kept.
type Projection struct {
	scaleX, scaleY float64
	offX, offY     float64
	box            Box
}

// Fit builds the projection for a canvas of the given size and padding.
func (t *Template) Fit(size image.Point, pad float64) Projection {
	b := t.bounds
	midLat := (b.MinY + b.MaxY) / 2
	kx := math.Cos(midLat * math.Pi / 180)
	if kx <= 0 {
		kx = 1
	}

	w := (b.MaxX - b.MinX) * kx
	h := b.MaxY - b.MinY

	availW := float64(size.X) - 2*pad
	availH := float64(size.Y) - 2*pad
	if availW <= 0 || availH <= 0 || w <= 0 || h <= 0 {
		return Projection{box: b}
	}

	s := math.Min(availW/w, availH/h)

	return Projection{
		scaleX: s * kx,
		scaleY: s,
		offX:   pad + (availW-w*s)/2,
		offY:   pad + (availH-h*s)/2,
		box:    b,
	}
}

// Point projects one (lon, lat) pair. The y axis is flipped so north is up.
func (p Projection) Point(c [2]float64) (x, y float32) {
	px := p.offX + (c[0]-p.box.MinX)*p.scaleX
	py := p.offY + (p.box.MaxY-c[1])*p.scaleY
	return float32(px), float32(py)
}
