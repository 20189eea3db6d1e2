// internal/display/display_test.go
package display

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/siren-display/internal/mapper"
	"github.com/tamzrod/siren-display/internal/raster"
	"github.com/tamzrod/siren-display/internal/region"
	"github.com/tamzrod/siren-display/internal/screen"
)

type recordingSink struct {
	size    image.Point
	renders []raster.Frame
	err     error
	closed  int
}

func (r *recordingSink) Dimensions() image.Point { return r.size }
func (r *recordingSink) Render(base, accent raster.Layer) error {
	if r.err != nil {
		return r.err
	}
	r.renders = append(r.renders, raster.Frame{Base: base, Accent: accent})
	return nil
}
func (r *recordingSink) Close() error { r.closed++; return nil }

type fakeComposer struct {
	canvas []image.Point
	snaps  []*region.Snapshot
	err    error
}

func (f *fakeComposer) Compose(snap *region.Snapshot, canvas image.Point) (raster.Frame, error) {
	f.canvas = append(f.canvas, canvas)
	f.snaps = append(f.snaps, snap)
	if f.err != nil {
		return raster.Frame{}, f.err
	}
	b := raster.NewBuilder(canvas.X, canvas.Y)
	if snap == nil {
		b.SetInk(0, 0, true)
	}
	return raster.Frame{Base: b.Layer(), Accent: raster.Blank(canvas.X, canvas.Y)}, nil
}

func (f *fakeComposer) Universe() []string { return []string{"A", "B"} }

func TestPackBuffer(t *testing.T) {
	b := raster.NewBuilder(10, 2)
	b.SetInk(0, 0, true)
	l := b.Layer()

	buf := PackBuffer(l, false)
	require.Len(t, buf, 4)
	assert.Equal(t, byte(0x7F), buf[0])
	assert.Equal(t, byte(0xFF), buf[1])
	assert.Equal(t, byte(0xFF), buf[2])

	rot := PackBuffer(l, true)
	// (0,0) lands on (9,1): second row, second byte, bit 1.
	assert.Equal(t, byte(0xFF), rot[0])
	assert.Equal(t, byte(0xFF&^0x40), rot[3])
}

func TestScreenConsumer_ComposesAtSinkSize(t *testing.T) {
	sink := &recordingSink{size: image.Pt(40, 30)}
	comp := &fakeComposer{}

	sc, err := NewScreenConsumer(comp, sink, nil)
	require.NoError(t, err)
	assert.Equal(t, "display", sc.Name())

	require.NoError(t, sc.OnSnapshot(context.Background(), region.Empty()))
	require.NoError(t, sc.OnSnapshot(context.Background(), nil))

	require.Len(t, sink.renders, 2)
	assert.Equal(t, []image.Point{{40, 30}, {40, 30}}, comp.canvas)
	assert.Nil(t, comp.snaps[1])
	assert.True(t, sink.renders[1].Base.At(0, 0))

	require.NoError(t, sc.Close())
	assert.Equal(t, 1, sink.closed)
}

func TestScreenConsumer_Errors(t *testing.T) {
	sink := &recordingSink{size: image.Pt(4, 4), err: errors.New("spi timeout")}
	sc, err := NewScreenConsumer(&fakeComposer{}, sink, nil)
	require.NoError(t, err)
	assert.ErrorContains(t, sc.OnSnapshot(context.Background(), region.Empty()), "spi timeout")

	sc, err = NewScreenConsumer(&fakeComposer{err: errors.New("bad map")}, &recordingSink{size: image.Pt(4, 4)}, nil)
	require.NoError(t, err)
	assert.ErrorContains(t, sc.OnSnapshot(context.Background(), region.Empty()), "bad map")

	_, err = NewScreenConsumer(nil, sink, nil)
	assert.Error(t, err)
}

type observedFrame struct {
	snap  *region.Snapshot
	frame raster.Frame
}

type recordingObserver struct {
	seen []observedFrame
}

func (o *recordingObserver) ObserveFrame(snap *region.Snapshot, f raster.Frame) {
	o.seen = append(o.seen, observedFrame{snap: snap, frame: f})
}

func TestScreenConsumer_ObserversShareTheComposedFrame(t *testing.T) {
	sink := &recordingSink{size: image.Pt(12, 6)}
	comp := &fakeComposer{}
	obs := &recordingObserver{}
	sc, err := NewScreenConsumer(comp, sink, nil, obs, nil)
	require.NoError(t, err)

	snap := region.NewSnapshot(map[string]region.Status{"A": region.StatusFull})
	require.NoError(t, sc.OnSnapshot(context.Background(), snap))
	require.NoError(t, sc.OnSnapshot(context.Background(), nil))

	assert.Len(t, comp.snaps, 2, "one composition per snapshot")
	require.Len(t, obs.seen, 2)
	require.Len(t, sink.renders, 2)

	assert.Same(t, snap, obs.seen[0].snap)
	assert.Nil(t, obs.seen[1].snap)
	for i := range obs.seen {
		assert.True(t, obs.seen[i].frame.Equal(sink.renders[i]), "frame %d", i)
	}
}

func TestScreenConsumer_ComposeErrorSkipsObservers(t *testing.T) {
	sink := &recordingSink{size: image.Pt(4, 4)}
	obs := &recordingObserver{}
	sc, err := NewScreenConsumer(&fakeComposer{err: errors.New("bad art")}, sink, nil, obs)
	require.NoError(t, err)

	assert.Error(t, sc.OnSnapshot(context.Background(), region.Empty()))
	assert.Empty(t, obs.seen)
	assert.Empty(t, sink.renders)
}

func TestScreenConsumer_RegionOffMapStillRendersTheRest(t *testing.T) {
	r, err := mapper.NewFromFile("", mapper.Options{})
	require.NoError(t, err)
	comp, err := screen.New(r, screen.Options{})
	require.NoError(t, err)

	sink := &recordingSink{size: image.Pt(648, 480)}
	sc, err := NewScreenConsumer(comp, sink, nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, sc.OnSnapshot(ctx, region.NewSnapshot(map[string]region.Status{
		"Kyiv": region.StatusFull,
	})))
	require.NoError(t, sc.OnSnapshot(ctx, region.NewSnapshot(map[string]region.Status{
		"Kyiv":       region.StatusPartial,
		"Lviv":       region.StatusFull,
		"Zaporizhia": region.StatusFull,
	})))

	require.Len(t, sink.renders, 2)
	assert.False(t, sink.renders[0].Equal(sink.renders[1]), "second snapshot must reach the panel")

	want, err := comp.Compose(region.NewSnapshot(map[string]region.Status{
		"Kyiv": region.StatusPartial,
		"Lviv": region.StatusFull,
	}), sink.size)
	require.NoError(t, err)
	assert.True(t, want.Equal(sink.renders[1]), "known regions must be drawn as reported")
}

func TestFileSink_WritesFrame(t *testing.T) {
	dir := t.TempDir()
	size := image.Pt(16, 8)

	s, err := NewFileSink(FileConfig{Dir: dir, Size: size, RawBuffers: true, Rotate180: true})
	require.NoError(t, err)
	assert.Equal(t, size, s.Dimensions())

	b := raster.NewBuilder(size.X, size.Y)
	b.SetInk(3, 2, true)
	require.NoError(t, s.Render(b.Layer(), raster.Blank(size.X, size.Y)))

	for _, name := range []string{BaseFile, AccentFile, PreviewFile, BaseBufFile, AccentBufFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
	}

	f, err := os.Open(filepath.Join(dir, BaseFile))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, size, img.Bounds().Size())
	r, _, _, _ := img.At(3, 2).RGBA()
	assert.Equal(t, uint32(0), r)

	raw, err := os.ReadFile(filepath.Join(dir, BaseBufFile))
	require.NoError(t, err)
	assert.Len(t, raw, 2*size.Y)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 5, "temporary files must not be left behind")
}

func TestFileSink_RejectsWrongSize(t *testing.T) {
	s, err := NewFileSink(FileConfig{Dir: t.TempDir(), Size: image.Pt(8, 8)})
	require.NoError(t, err)

	assert.Error(t, s.Render(raster.Blank(4, 4), raster.Blank(8, 8)))
}

func TestFileSink_CloseBlanks(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileSink(FileConfig{Dir: dir, Size: image.Pt(8, 8)})
	require.NoError(t, err)

	full := raster.NewBuilder(8, 8)
	full.Fill(full.Bounds(), true)
	require.NoError(t, s.Render(full.Layer(), full.Layer()))
	require.NoError(t, s.Close())

	f, err := os.Open(filepath.Join(dir, AccentFile))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	r, _, _, _ := img.At(4, 4).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
}
