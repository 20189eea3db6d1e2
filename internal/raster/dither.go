// internal/raster/dither.go
package raster

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

var inkPalette = color.Palette{color.Black, color.White}

// Dither converts img to a 1-bit layer using Floyd-Steinberg error
// diffusion. Mid tones become stipple patterns. The result is
// deterministic for a given input.
func Dither(img image.Image) Layer {
	r := img.Bounds()
	p := image.NewPaletted(image.Rect(0, 0, r.Dx(), r.Dy()), inkPalette)
	xdraw.FloydSteinberg.Draw(p, p.Bounds(), img, r.Min)
	return fromPaletted(p)
}

// Resample scales img to size with the given interpolator into a grey image.
func Resample(img image.Image, size image.Point, s xdraw.Scaler) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, size.X, size.Y))
	if img.Bounds().Size() == size {
		xdraw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, xdraw.Src)
		return dst
	}
	s.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

func fromPaletted(p *image.Paletted) Layer {
	r := p.Bounds()
	b := NewBuilder(r.Dx(), r.Dy())
	for y := 0; y < r.Dy(); y++ {
		row := p.Pix[y*p.Stride : y*p.Stride+r.Dx()]
		for x, idx := range row {
			if idx == 0 {
				b.SetInk(x, y, true)
			}
		}
	}
	return b.Layer()
}
