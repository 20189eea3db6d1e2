// internal/artwork/artwork.go
package artwork

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	geojson "github.com/paulmach/go.geojson"

	"github.com/tamzrod/siren-display/internal/region"
)

//go:embed ukraine.geojson
var defaultTemplate []byte

// NameProperty is the feature property holding the region identifier.
const NameProperty = "name"

// Ring is one closed outline in template coordinates (lon, lat).
type Ring [][2]float64

// Shape is one drawable polygon belonging to a region.
// The first ring is the outer boundary, the rest are holes.
type Shape struct {
	Region string
	Rings  []Ring
}

// Template is the parsed vector map. Shapes keep file order, so later
// shapes paint over earlier ones.
type Template struct {
	shapes []Shape
	names  []string
	known  map[string]struct{}
	bounds Box
}

// Box is an axis aligned bounding box in template coordinates.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// Default parses the embedded map of Ukraine.
func Default() (*Template, error) {
	return Parse(defaultTemplate)
}

// Load reads a GeoJSON template from disk. An empty path loads the default.
func Load(path string) (*Template, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("artwork: read %s: %w", path, err)
	}
	return Parse(b)
}

// Parse builds a Template from a GeoJSON FeatureCollection.
func Parse(data []byte) (*Template, error) {
	if len(data) == 0 {
		return nil, errors.New("artwork: empty template")
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("artwork: parse template: %w", err)
	}

	t := &Template{
		known:  make(map[string]struct{}),
		bounds: Box{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)},
	}

	for i, f := range fc.Features {
		name, err := f.PropertyString(NameProperty)
		if err != nil || region.NormalizeName(name) == "" {
			return nil, fmt.Errorf("artwork: feature %d has no %q property", i, NameProperty)
		}
		name = region.NormalizeName(name)

		if f.Geometry == nil {
			return nil, fmt.Errorf("artwork: region %q has no geometry", name)
		}

		var polys [][][][]float64
		switch {
		case f.Geometry.IsPolygon():
			polys = [][][][]float64{f.Geometry.Polygon}
		case f.Geometry.IsMultiPolygon():
			polys = f.Geometry.MultiPolygon
		default:
			return nil, fmt.Errorf("artwork: region %q has unsupported geometry %s", name, f.Geometry.Type)
		}

		for _, poly := range polys {
			sh := Shape{Region: name}
			for _, coords := range poly {
				if len(coords) < 3 {
					continue
				}
				ring := make(Ring, 0, len(coords))
				for _, c := range coords {
					if len(c) < 2 {
						return nil, fmt.Errorf("artwork: region %q has a short coordinate", name)
					}
					ring = append(ring, [2]float64{c[0], c[1]})
					t.bounds.extend(c[0], c[1])
				}
				sh.Rings = append(sh.Rings, ring)
			}
			if len(sh.Rings) > 0 {
				t.shapes = append(t.shapes, sh)
			}
		}

		if _, ok := t.known[name]; !ok {
			t.known[name] = struct{}{}
			t.names = append(t.names, name)
		}
	}

	if len(t.shapes) == 0 {
		return nil, errors.New("artwork: template has no drawable shapes")
	}

	sort.Strings(t.names)
	return t, nil
}

func (b *Box) extend(x, y float64) {
	b.MinX = math.Min(b.MinX, x)
	b.MinY = math.Min(b.MinY, y)
	b.MaxX = math.Max(b.MaxX, x)
	b.MaxY = math.Max(b.MaxY, y)
}

// Shapes returns the drawable shapes in paint order.
func (t *Template) Shapes() []Shape { return t.shapes }

// Names returns the region universe in sorted order.
func (t *Template) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Has reports whether name is part of the template.
func (t *Template) Has(name string) bool {
	_, ok := t.known[region.NormalizeName(name)]
	return ok
}

// Bounds returns the template bounding box.
func (t *Template) Bounds() Box { return t.bounds }
