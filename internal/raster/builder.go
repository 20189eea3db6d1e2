// internal/raster/builder.go
package raster

import (
	"image"
	"image/color"
)

// Builder is the mutable canvas a Layer is composed on.
// It implements draw.Image so glyph and vector drawers can target it;
// any colour darker than mid grey becomes ink.
type Builder struct {
	w, h   int
	stride int
	bits   []byte
}

// NewBuilder returns a blank canvas.
func NewBuilder(w, h int) *Builder {
	l := Blank(w, h)
	return &Builder{w: l.w, h: l.h, stride: l.stride, bits: l.bits}
}

func (b *Builder) ColorModel() color.Model { return color.GrayModel }

func (b *Builder) Bounds() image.Rectangle { return image.Rect(0, 0, b.w, b.h) }

func (b *Builder) At(x, y int) color.Color {
	if b.ink(x, y) {
		return color.Black
	}
	return color.White
}

func (b *Builder) Set(x, y int, c color.Color) {
	g := color.GrayModel.Convert(c).(color.Gray)
	b.SetInk(x, y, g.Y < 0x80)
}

// SetInk sets or clears one pixel. Out-of-range points are ignored.
func (b *Builder) SetInk(x, y int, ink bool) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return
	}
	i := y*b.stride + x/8
	mask := byte(0x80 >> uint(x%8))
	if ink {
		b.bits[i] |= mask
	} else {
		b.bits[i] &^= mask
	}
}

func (b *Builder) ink(x, y int) bool {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return false
	}
	return b.bits[y*b.stride+x/8]&(0x80>>uint(x%8)) != 0
}

// Fill sets every pixel of r to ink (or clears it).
func (b *Builder) Fill(r image.Rectangle, ink bool) {
	r = r.Intersect(b.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.SetInk(x, y, ink)
		}
	}
}

// Outline draws a one pixel border along the inside of r.
func (b *Builder) Outline(r image.Rectangle) {
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		b.SetInk(x, r.Min.Y, true)
		b.SetInk(x, r.Max.Y-1, true)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		b.SetInk(r.Min.X, y, true)
		b.SetInk(r.Max.X-1, y, true)
	}
}

// Stipple inks every other pixel of r in a checkerboard.
func (b *Builder) Stipple(r image.Rectangle) {
	r = r.Intersect(b.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.SetInk(x, y, (x+y)%2 == 0)
		}
	}
}

// Paste copies l onto the canvas with its top-left corner at at,
// replacing the covered pixels. Parts outside the canvas are clipped.
func (b *Builder) Paste(l Layer, at image.Point) {
	for y := 0; y < l.h; y++ {
		for x := 0; x < l.w; x++ {
			b.SetInk(at.X+x, at.Y+y, l.At(x, y))
		}
	}
}

// Layer freezes the current canvas into an immutable Layer.
// The builder may keep being used afterwards without affecting it.
func (b *Builder) Layer() Layer {
	bits := make([]byte, len(b.bits))
	copy(bits, b.bits)
	return Layer{w: b.w, h: b.h, stride: b.stride, bits: bits}
}
