package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/OCharnyshevich/regiongen/pkg/region"
)

// Mode selects what a preview shows.
type Mode string

const (
	// ModeTerrain colours every tile by its elevation band.
	ModeTerrain Mode = "terrain"
	// ModeTags colours every tile by the most specific tag of its zone.
	ModeTags Mode = "tags"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeTerrain, ModeTags:
		return m, nil
	}
	return "", fmt.Errorf("preview mode %q: %w", s, region.ErrInvalidConfig)
}

var (
	waterColor = rgb(0, 0.1, 0.35)
	lowColor   = [3]float64{0.1, 0.5, 0.15}
	highColor  = [3]float64{1, 1, 0.8}
)

// Tag colours, most specific first.
var tagColors = []struct {
	tag string
	c   color.RGBA
}{
	{region.TagSubBiomeCenter, rgb(1, 0, 0)},
	{region.TagCityUrban, rgb(1, 0, 1)},
	{region.TagCityRural, rgb(1, 0.5, 0)},
	{region.TagCity, rgb(1, 0, 1)},
	{region.TagBiomeMountainPeak, rgb(1, 1, 1)},
	{region.TagBiomeLake, rgb(0, 1, 1)},
	{region.TagBiomeIsland, rgb(1, 1, 0)},
	{region.TagBiomeOcean, rgb(0, 0, 1)},
	{region.TagBiomeLand, rgb(0, 0.6, 0)},
	{region.TagLand, rgb(0.3, 0.3, 0.3)},
}

var untagged = rgb(0, 0, 0)

func rgb(r, g, b float64) color.RGBA {
	return color.RGBA{R: channel(r), G: channel(g), B: channel(b), A: 255}
}

func channel(v float64) uint8 {
	return uint8(math.Round(255 * math.Max(0, math.Min(1, v))))
}

// Render draws g at full tile resolution.
func Render(g *region.Grid, mode Mode) (*image.RGBA, error) {
	if err := region.ValidateDimensions(g.Region, g.Zone); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if len(g.Zones) != g.Region.Area() {
		return nil, fmt.Errorf("render: %d zones for a %dx%d region: %w", len(g.Zones), g.Region.W, g.Region.H, region.ErrInvalidInput)
	}

	w, h := g.CanvasSize()
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	switch mode {
	case ModeTerrain:
		field := g.Heightmap()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.SetRGBA(x, y, terrainColor(field.At(x, y)))
			}
		}
	case ModeTags:
		zw, zh := int(g.Zone.W), int(g.Zone.H)
		for i := range g.Zones {
			c := g.CoordOf(i)
			col := tagColor(&g.Zones[i])
			for ty := 0; ty < zh; ty++ {
				for tx := 0; tx < zw; tx++ {
					img.SetRGBA(int(c.X)*zw+tx, int(c.Y)*zh+ty, col)
				}
			}
		}
	default:
		return nil, fmt.Errorf("render: unknown mode %q: %w", mode, region.ErrInvalidConfig)
	}
	return img, nil
}

func terrainColor(v float32) color.RGBA {
	if v <= 0 {
		return waterColor
	}
	t := float64(v)
	return rgb(
		lowColor[0]+(highColor[0]-lowColor[0])*t,
		lowColor[1]+(highColor[1]-lowColor[1])*t,
		lowColor[2]+(highColor[2]-lowColor[2])*t,
	)
}

func tagColor(z *region.Zone) color.RGBA {
	for _, tc := range tagColors {
		if z.HasTag(tc.tag) {
			return tc.c
		}
	}
	return untagged
}

// WritePNG encodes img and writes it atomically using a temp file + rename.
func WritePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write temp file: %w: %w", region.ErrIO, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w: %w", region.ErrIO, err)
	}
	return nil
}
