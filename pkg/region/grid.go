package region

import (
	"fmt"
	"slices"
)

// DefaultLayer is the layer every generated zone starts on.
const DefaultLayer = "overworld"

// ZoneCoord is a position in the region grid, measured in zones.
type ZoneCoord struct {
	X, Y int32
}

// TilePos is a position on the full-resolution canvas, measured in tiles.
type TilePos struct {
	X, Y int32
}

// Dimensions is a width/height pair.
type Dimensions struct {
	W, H uint32
}

// Area returns W*H.
func (d Dimensions) Area() int {
	return int(d.W) * int(d.H)
}

// SubBiomeWeight links a zone to a sub-biome catalog entry with a blend weight.
type SubBiomeWeight struct {
	Name   string
	Weight float32
}

// Zone is one cell of the region grid.
type Zone struct {
	Coordinates ZoneCoord
	// Heights holds one elevation per tile, index = x + y*zoneWidth.
	Heights   []float32
	ZoneType  string
	Layer     string
	Tags      []string
	SubBiomes []SubBiomeWeight
}

// AddTag appends tag unless the zone already carries it. Tags are never removed.
func (z *Zone) AddTag(tag string) {
	if z.HasTag(tag) {
		return
	}
	z.Tags = append(z.Tags, tag)
}

// HasTag reports whether the zone carries tag.
func (z *Zone) HasTag(tag string) bool {
	return slices.Contains(z.Tags, tag)
}

// Grid is the flattened region: every zone record plus the dimensions and
// the master seed they were generated from.
type Grid struct {
	Seed   int64
	Region Dimensions
	Zone   Dimensions
	// Zones is indexed x + y*Region.W.
	Zones  []Zone
	Biomes map[string]BiomeInfo
}

// NewGrid allocates an empty grid. Zero dimensions fail with ErrInvalidConfig.
func NewGrid(seed int64, regionDims, zoneDims Dimensions) (*Grid, error) {
	if err := ValidateDimensions(regionDims, zoneDims); err != nil {
		return nil, err
	}
	return &Grid{
		Seed:   seed,
		Region: regionDims,
		Zone:   zoneDims,
		Zones:  make([]Zone, regionDims.Area()),
		Biomes: make(map[string]BiomeInfo),
	}, nil
}

// ValidateDimensions rejects zero region or zone dimensions.
func ValidateDimensions(regionDims, zoneDims Dimensions) error {
	if regionDims.W == 0 || regionDims.H == 0 {
		return fmt.Errorf("region dimensions %dx%d: %w", regionDims.W, regionDims.H, ErrInvalidConfig)
	}
	if zoneDims.W == 0 || zoneDims.H == 0 {
		return fmt.Errorf("zone dimensions %dx%d: %w", zoneDims.W, zoneDims.H, ErrInvalidConfig)
	}
	return nil
}

// CanvasSize returns the full-resolution canvas width and height in tiles.
func (g *Grid) CanvasSize() (w, h int) {
	return int(g.Region.W) * int(g.Zone.W), int(g.Region.H) * int(g.Zone.H)
}

// InBounds reports whether c lies inside the region.
func (g *Grid) InBounds(c ZoneCoord) bool {
	return c.X >= 0 && c.Y >= 0 && uint32(c.X) < g.Region.W && uint32(c.Y) < g.Region.H
}

// Index returns the flat index of c. c must be in bounds.
func (g *Grid) Index(c ZoneCoord) int {
	return int(c.X) + int(c.Y)*int(g.Region.W)
}

// CoordOf is the inverse of Index.
func (g *Grid) CoordOf(i int) ZoneCoord {
	w := int(g.Region.W)
	return ZoneCoord{X: int32(i % w), Y: int32(i / w)}
}

// TileToZone returns the zone containing tile p.
func (g *Grid) TileToZone(p TilePos) ZoneCoord {
	return ZoneCoord{X: p.X / int32(g.Zone.W), Y: p.Y / int32(g.Zone.H)}
}

// ZoneAt returns the zone at c, or nil when c is outside the region.
func (g *Grid) ZoneAt(c ZoneCoord) *Zone {
	if !g.InBounds(c) {
		return nil
	}
	return &g.Zones[g.Index(c)]
}

// ZonesWithTag returns every zone carrying tag, in index order.
func (g *Grid) ZonesWithTag(tag string) []*Zone {
	var out []*Zone
	for i := range g.Zones {
		if g.Zones[i].HasTag(tag) {
			out = append(out, &g.Zones[i])
		}
	}
	return out
}

// CountTag returns how many zones carry tag.
func (g *Grid) CountTag(tag string) int {
	n := 0
	for i := range g.Zones {
		if g.Zones[i].HasTag(tag) {
			n++
		}
	}
	return n
}

// Heightmap stitches every zone's Heights back into one canvas-sized field.
// Zones without samples contribute zeros.
func (g *Grid) Heightmap() *Field {
	w, h := g.CanvasSize()
	f := NewField(w, h)
	zw, zh := int(g.Zone.W), int(g.Zone.H)
	for i := range g.Zones {
		samples := g.Zones[i].Heights
		if len(samples) != zw*zh {
			continue
		}
		c := g.CoordOf(i)
		ox, oy := int(c.X)*zw, int(c.Y)*zh
		for ty := 0; ty < zh; ty++ {
			copy(f.Values[(oy+ty)*w+ox:(oy+ty)*w+ox+zw], samples[ty*zw:(ty+1)*zw])
		}
	}
	return f
}

// Field is a dense row-major scalar field.
type Field struct {
	W, H   int
	Values []float32
}

// NewField allocates a zeroed w×h field.
func NewField(w, h int) *Field {
	return &Field{W: w, H: h, Values: make([]float32, w*h)}
}

// At returns the value at (x, y).
func (f *Field) At(x, y int) float32 {
	return f.Values[y*f.W+x]
}

// Set stores v at (x, y).
func (f *Field) Set(x, y int, v float32) {
	f.Values[y*f.W+x] = v
}

// Empty reports whether the field holds no samples.
func (f *Field) Empty() bool {
	return f == nil || f.W <= 0 || f.H <= 0 || len(f.Values) == 0
}
