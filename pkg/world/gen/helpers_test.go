package gen

import (
	"log/slog"
	"testing"

	"github.com/OCharnyshevich/regiongen/pkg/region"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Height legend for gridFromRows.
var legend = map[byte]float32{
	'.': 0,
	'l': 0.4,
	'h': 0.6,
	'M': 0.8,
}

// gridFromRows builds a grid whose canvas is drawn by rows, one byte per tile.
func gridFromRows(t *testing.T, zw, zh int, rows []string) *region.Grid {
	t.Helper()
	h, w := len(rows), len(rows[0])
	if w%zw != 0 || h%zh != 0 {
		t.Fatalf("canvas %dx%d not divisible by zone %dx%d", w, h, zw, zh)
	}
	g, err := region.NewGrid(1,
		region.Dimensions{W: uint32(w / zw), H: uint32(h / zh)},
		region.Dimensions{W: uint32(zw), H: uint32(zh)})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	for i := range g.Zones {
		c := g.CoordOf(i)
		z := &g.Zones[i]
		z.Coordinates = c
		z.Layer = region.DefaultLayer
		z.Heights = make([]float32, zw*zh)
		for ty := 0; ty < zh; ty++ {
			for tx := 0; tx < zw; tx++ {
				ch := rows[int(c.Y)*zh+ty][int(c.X)*zw+tx]
				v, ok := legend[ch]
				if !ok {
					t.Fatalf("unknown legend byte %q", ch)
				}
				z.Heights[tx+ty*zw] = v
			}
		}
	}
	return g
}

// fieldFromRows builds a field with '#' = 1 and anything else = 0.
func fieldFromRows(rows []string) *region.Field {
	f := region.NewField(len(rows[0]), len(rows))
	for y, row := range rows {
		for x := range row {
			if row[x] == '#' {
				f.Set(x, y, 1)
			}
		}
	}
	return f
}
