// internal/display/buffer.go
package display

import "github.com/tamzrod/siren-display/internal/raster"

// PackBuffer converts a layer into the byte stream e-paper controllers
// take: rows packed MSB first with a cleared bit for ink and a set bit
// for paper. With rotate180 the image is turned upside down first, for
// panels mounted with the connector on top.
func PackBuffer(l raster.Layer, rotate180 bool) []byte {
	w, h := l.Width(), l.Height()
	stride := l.Stride()
	out := make([]byte, stride*h)
	for i := range out {
		out[i] = 0xFF
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx, sy := x, y
			if rotate180 {
				sx, sy = w-1-x, h-1-y
			}
			if l.At(sx, sy) {
				out[y*stride+x/8] &^= 0x80 >> uint(x%8)
			}
		}
	}
	return out
}
