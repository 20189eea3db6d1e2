// internal/raster/layer.go
package raster

import (
	"bytes"
	"image"
	"image/color"
)

// Layer is an immutable 1-bit bitmap.
// Rows are packed MSB first; a set bit is ink (black on base, red on accent).
type Layer struct {
	w, h   int
	stride int
	bits   []byte
}

func strideFor(w int) int { return (w + 7) / 8 }

// Blank returns a layer of the given size with no ink.
func Blank(w, h int) Layer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	s := strideFor(w)
	return Layer{w: w, h: h, stride: s, bits: make([]byte, s*h)}
}

func (l Layer) Width() int  { return l.w }
func (l Layer) Height() int { return l.h }

// Size returns the layer dimensions as a point.
func (l Layer) Size() image.Point { return image.Pt(l.w, l.h) }

// Bounds returns the layer rectangle anchored at the origin.
func (l Layer) Bounds() image.Rectangle { return image.Rect(0, 0, l.w, l.h) }

// At reports whether (x, y) carries ink. Out-of-range points are blank.
func (l Layer) At(x, y int) bool {
	if x < 0 || y < 0 || x >= l.w || y >= l.h {
		return false
	}
	return l.bits[y*l.stride+x/8]&(0x80>>uint(x%8)) != 0
}

// Bytes returns a copy of the packed rows.
func (l Layer) Bytes() []byte {
	out := make([]byte, len(l.bits))
	copy(out, l.bits)
	return out
}

// Stride is the number of bytes per packed row.
func (l Layer) Stride() int { return l.stride }

// Equal reports pixel-for-pixel equality.
func (l Layer) Equal(o Layer) bool {
	return l.w == o.w && l.h == o.h && bytes.Equal(l.bits, o.bits)
}

// InkCount returns the number of ink pixels.
func (l Layer) InkCount() int {
	n := 0
	for y := 0; y < l.h; y++ {
		for x := 0; x < l.w; x++ {
			if l.At(x, y) {
				n++
			}
		}
	}
	return n
}

// Gray renders the layer as black ink on white paper.
func (l Layer) Gray() *image.Gray {
	img := image.NewGray(l.Bounds())
	for y := 0; y < l.h; y++ {
		for x := 0; x < l.w; x++ {
			if l.At(x, y) {
				img.Pix[y*img.Stride+x] = 0x00
			} else {
				img.Pix[y*img.Stride+x] = 0xFF
			}
		}
	}
	return img
}

// Frame is the pair of layers sent to a bi-chromatic panel.
type Frame struct {
	Base   Layer
	Accent Layer
}

// Size returns the frame dimensions.
func (f Frame) Size() image.Point { return f.Base.Size() }

// Equal reports whether both layers match.
func (f Frame) Equal(o Frame) bool {
	return f.Base.Equal(o.Base) && f.Accent.Equal(o.Accent)
}

var accentRed = color.RGBA{R: 0xCC, A: 0xFF}

// Preview composes both layers the way the panel shows them:
// accent ink is drawn over base ink on white paper.
func (f Frame) Preview() *image.RGBA {
	img := image.NewRGBA(f.Base.Bounds())
	for y := 0; y < f.Base.h; y++ {
		for x := 0; x < f.Base.w; x++ {
			switch {
			case f.Accent.At(x, y):
				img.SetRGBA(x, y, accentRed)
			case f.Base.At(x, y):
				img.SetRGBA(x, y, color.RGBA{A: 0xFF})
			default:
				img.SetRGBA(x, y, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
			}
		}
	}
	return img
}
