// internal/display/file.go
package display

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/tamzrod/siren-display/internal/raster"
)

// Files written by FileSink on every render.
const (
	BaseFile      = "base.png"
	AccentFile    = "accent.png"
	PreviewFile   = "preview.png"
	BaseBufFile   = "base.bin"
	AccentBufFile = "accent.bin"
)

// FileConfig configures a FileSink.
type FileConfig struct {
	Dir        string
	Size       image.Point
	Rotate180  bool
	RawBuffers bool
}

// FileSink writes each frame into a directory: both layers and a colour
// preview as PNG, plus optional packed controller buffers for a panel
// driver process to pick up. Files are replaced atomically.
type FileSink struct {
	cfg FileConfig
}

// NewFileSink creates the output directory if needed.
func NewFileSink(cfg FileConfig) (*FileSink, error) {
	if cfg.Dir == "" {
		return nil, errors.New("display: output dir required")
	}
	if cfg.Size.X <= 0 || cfg.Size.Y <= 0 {
		return nil, fmt.Errorf("display: invalid size %v", cfg.Size)
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("display: create %s: %w", cfg.Dir, err)
	}
	return &FileSink{cfg: cfg}, nil
}

func (s *FileSink) Dimensions() image.Point { return s.cfg.Size }

// Render writes the frame files.
func (s *FileSink) Render(base, accent raster.Layer) error {
	if base.Size() != s.cfg.Size || accent.Size() != s.cfg.Size {
		return fmt.Errorf("display: frame %v/%v does not match panel %v", base.Size(), accent.Size(), s.cfg.Size)
	}

	f := raster.Frame{Base: base, Accent: accent}

	if err := s.writePNG(BaseFile, base.Gray()); err != nil {
		return err
	}
	if err := s.writePNG(AccentFile, accent.Gray()); err != nil {
		return err
	}
	if err := s.writePNG(PreviewFile, f.Preview()); err != nil {
		return err
	}

	if !s.cfg.RawBuffers {
		return nil
	}
	if err := s.writeFile(BaseBufFile, PackBuffer(base, s.cfg.Rotate180)); err != nil {
		return err
	}
	return s.writeFile(AccentBufFile, PackBuffer(accent, s.cfg.Rotate180))
}

// Close leaves a blank frame behind, the file equivalent of clearing the panel.
func (s *FileSink) Close() error {
	blank := raster.Blank(s.cfg.Size.X, s.cfg.Size.Y)
	return s.Render(blank, blank)
}

func (s *FileSink) writePNG(name string, img image.Image) error {
	return s.atomic(name, func(f *os.File) error {
		return png.Encode(f, img)
	})
}

func (s *FileSink) writeFile(name string, b []byte) error {
	return s.atomic(name, func(f *os.File) error {
		_, err := f.Write(b)
		return err
	})
}

func (s *FileSink) atomic(name string, write func(*os.File) error) error {
	tmp, err := os.CreateTemp(s.cfg.Dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("display: %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("display: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("display: close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.cfg.Dir, name)); err != nil {
		return fmt.Errorf("display: rename %s: %w", name, err)
	}
	return nil
}
