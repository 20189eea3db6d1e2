// internal/screen/font.go
package screen

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

// DefaultFontSize is the pixel size of the title, legend and banner text.
const DefaultFontSize = 16

// loadFace returns Go Mono at size, falling back to the built-in bitmap face.
func loadFace(size float64) font.Face {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
