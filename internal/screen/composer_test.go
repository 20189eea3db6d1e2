// internal/screen/composer_test.go
package screen

import (
	"errors"
	"image"
	"testing"

	"github.com/tamzrod/siren-display/internal/raster"
	"github.com/tamzrod/siren-display/internal/region"
)

type fakeRenderer struct {
	calls    int
	lastSize image.Point
	lastSnap *region.Snapshot
	universe []string
	err      error
}

func (f *fakeRenderer) Render(snap *region.Snapshot, size image.Point) (raster.Layer, raster.Layer, error) {
	f.calls++
	f.lastSize = size
	f.lastSnap = snap
	if f.err != nil {
		return raster.Layer{}, raster.Layer{}, f.err
	}
	b := raster.NewBuilder(size.X, size.Y)
	b.Fill(b.Bounds(), true)
	l := b.Layer()
	return l, l, nil
}

func (f *fakeRenderer) Universe() []string { return f.universe }

var canvas = image.Pt(648, 480)

func newComposer(t *testing.T, r MapRenderer) *Composer {
	t.Helper()
	c, err := New(r, Options{})
	if err != nil {
		t.Fatalf("New err=%v", err)
	}
	return c
}

func TestCompose_SentinelShowsOnlyBanner(t *testing.T) {
	r := &fakeRenderer{}
	c := newComposer(t, r)

	f, err := c.Compose(nil, canvas)
	if err != nil {
		t.Fatalf("Compose err=%v", err)
	}

	if r.calls != 0 {
		t.Fatalf("renderer must not be invoked for the sentinel")
	}
	if f.Size() != canvas {
		t.Fatalf("frame size=%v want=%v", f.Size(), canvas)
	}
	if f.Accent.InkCount() != 0 {
		t.Fatalf("accent must be blank for the sentinel")
	}
	if f.Base.InkCount() == 0 {
		t.Fatalf("expected banner text on base")
	}

	// All ink sits in a band around the middle, centred horizontally.
	minX, maxX := canvas.X, 0
	for y := 0; y < canvas.Y; y++ {
		for x := 0; x < canvas.X; x++ {
			if !f.Base.At(x, y) {
				continue
			}
			if y < canvas.Y/2-20 || y > canvas.Y/2+20 {
				t.Fatalf("ink outside the centre band at (%d,%d)", x, y)
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
		}
	}
	left, right := minX, canvas.X-1-maxX
	if d := left - right; d < -12 || d > 12 {
		t.Fatalf("banner not centred: left=%d right=%d", left, right)
	}
}

func TestCompose_MapPastedTopRight(t *testing.T) {
	r := &fakeRenderer{}
	c := newComposer(t, r)

	f, err := c.Compose(region.Empty(), canvas)
	if err != nil {
		t.Fatalf("Compose err=%v", err)
	}

	want := canvas.Sub(DefaultMargin)
	if r.lastSize != want {
		t.Fatalf("map size=%v want=%v", r.lastSize, want)
	}

	if !f.Base.At(canvas.X-1, 0) || !f.Accent.At(DefaultMargin.X, want.Y-1) {
		t.Fatalf("map must cover the top-right area")
	}
	if f.Base.At(DefaultMargin.X, want.Y) || f.Accent.At(canvas.X-1, canvas.Y-1) {
		t.Fatalf("map must not extend below its area")
	}

	// Title ink left of the map.
	title := 0
	for y := 40; y < 110; y++ {
		for x := 0; x < DefaultMargin.X; x++ {
			if f.Base.At(x, y) {
				title++
			}
		}
	}
	if title == 0 {
		t.Fatalf("expected title text left of the map")
	}
}

func TestCompose_LegendIcons(t *testing.T) {
	c := newComposer(t, &fakeRenderer{universe: []string{"A"}})

	f, err := c.Compose(region.Empty(), canvas)
	if err != nil {
		t.Fatalf("Compose err=%v", err)
	}

	top := canvas.Y/2 + legendTop
	fullCentre := image.Pt(legendIconX+legendIcon/2, top+legendIcon/2)
	partialCentre := image.Pt(fullCentre.X, fullCentre.Y+legendStep)
	nothingCentre := image.Pt(fullCentre.X, fullCentre.Y+3*legendStep)

	if !f.Accent.At(fullCentre.X, fullCentre.Y) || f.Base.At(fullCentre.X, fullCentre.Y) {
		t.Fatalf("full icon must be an accent swatch")
	}
	if !f.Base.At(partialCentre.X, partialCentre.Y) {
		t.Fatalf("partial icon must be a base swatch")
	}
	if f.Base.At(nothingCentre.X, nothingCentre.Y) || !f.Base.At(legendIconX, top+3*legendStep) {
		t.Fatalf("nothing icon must be an outline")
	}
}

func TestCompose_RendererErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	c := newComposer(t, &fakeRenderer{err: boom})

	if _, err := c.Compose(region.Empty(), canvas); !errors.Is(err, boom) {
		t.Fatalf("expected renderer error, got %v", err)
	}
}

func TestCompose_SkipsRegionsOffMap(t *testing.T) {
	r := &fakeRenderer{universe: []string{"A", "B"}}
	c := newComposer(t, r)

	snap := region.NewSnapshot(map[string]region.Status{
		"A":   region.StatusPartial,
		"B":   region.StatusFull,
		"Zed": region.StatusFull,
	})
	if _, err := c.Compose(snap, canvas); err != nil {
		t.Fatalf("Compose err=%v", err)
	}

	if r.lastSnap.Len() != 2 {
		t.Fatalf("renderer got %d regions, want 2", r.lastSnap.Len())
	}
	if _, ok := r.lastSnap.Lookup("Zed"); ok {
		t.Fatalf("region off the map must not reach the renderer")
	}
	if r.lastSnap.Status("A") != region.StatusPartial || r.lastSnap.Status("B") != region.StatusFull {
		t.Fatalf("known regions must be kept as reported")
	}
	if snap.Len() != 3 {
		t.Fatalf("input snapshot must not be modified")
	}
}

func TestCompose_CanvasTooSmall(t *testing.T) {
	c := newComposer(t, &fakeRenderer{})

	if _, err := c.Compose(region.Empty(), image.Pt(100, 100)); err == nil {
		t.Fatalf("expected error for a canvas smaller than the margin")
	}
	if _, err := c.Compose(nil, image.Pt(0, 0)); err == nil {
		t.Fatalf("expected error for an empty canvas")
	}
}

func TestCompose_Idempotent(t *testing.T) {
	c := newComposer(t, &fakeRenderer{universe: []string{"A", "B"}})
	snap := region.NewSnapshot(map[string]region.Status{"A": region.StatusFull})

	f1, err := c.Compose(snap, canvas)
	if err != nil {
		t.Fatalf("Compose err=%v", err)
	}
	f2, err := c.Compose(snap, canvas)
	if err != nil {
		t.Fatalf("Compose err=%v", err)
	}
	if !f1.Equal(f2) {
		t.Fatalf("same snapshot must compose to identical frames")
	}
}

func TestLegend_Counts(t *testing.T) {
	universe := []string{"A", "B", "C", "D"}
	snap := region.NewSnapshot(map[string]region.Status{
		"A": region.StatusFull,
		"B": region.StatusPartial,
		"C": region.StatusPartial,
	})

	got := Legend(snap, universe)
	want := []string{"full - 1", "partial - 2", "no data - 0", "nothing - 1"}
	if len(got) != len(want) {
		t.Fatalf("rows=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i].Text() != want[i] {
			t.Fatalf("row %d: got=%q want=%q", i, got[i].Text(), want[i])
		}
	}
}

func TestLegend_EmptySnapshot(t *testing.T) {
	got := Legend(region.Empty(), []string{"A", "B", "C"})
	if got[0].Count != 0 || got[1].Count != 0 || got[2].Count != 0 || got[3].Count != 3 {
		t.Fatalf("unexpected legend for empty snapshot: %+v", got)
	}
}
