package gen

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/OCharnyshevich/regiongen/pkg/noise"
	"github.com/OCharnyshevich/regiongen/pkg/region"
)

// TerrainGenerator synthesizes the banded heightmap and slices it into zones.
type TerrainGenerator struct {
	params TerrainParams
	log    *slog.Logger
}

// NewTerrainGenerator creates a TerrainGenerator.
func NewTerrainGenerator(params TerrainParams, log *slog.Logger) *TerrainGenerator {
	return &TerrainGenerator{params: params, log: log}
}

// Generate fills every zone's Heights, Coordinates, Layer, ZoneType and its
// land/water tag.
func (tg *TerrainGenerator) Generate(g *region.Grid) error {
	if err := region.ValidateDimensions(g.Region, g.Zone); err != nil {
		return fmt.Errorf("terrain: %w", err)
	}
	if err := tg.params.Validate(); err != nil {
		return fmt.Errorf("terrain: %w", err)
	}
	if len(g.Zones) != g.Region.Area() {
		return fmt.Errorf("terrain: grid holds %d zones, want %d: %w", len(g.Zones), g.Region.Area(), region.ErrInvalidConfig)
	}

	sampler, err := noise.New(tg.params.Noise, g.Seed)
	if err != nil {
		return fmt.Errorf("terrain: %w: %w", region.ErrInvalidConfig, err)
	}

	rng := newStageRNG(g.Seed, saltTerrain)
	m := newLandMask(tg.params, rng)

	w, h := g.CanvasSize()
	canvas, err := tg.synthesize(w, h, sampler, m)
	if err != nil {
		return fmt.Errorf("terrain: synthesize canvas: %w", err)
	}

	land := sliceIntoZones(g, canvas)

	tg.log.Info("terrain generated",
		"canvas", fmt.Sprintf("%dx%d", w, h),
		"steps", tg.params.Steps,
		"landZones", land,
		"waterZones", len(g.Zones)-land,
	)
	return nil
}

// synthesize computes every canvas pixel. Rows are independent, so they are
// spread over a bounded goroutine pool; the result does not depend on scheduling.
func (tg *TerrainGenerator) synthesize(w, h int, sampler noise.Sampler, m *landMask) (*region.Field, error) {
	f := region.NewField(w, h)

	workers := tg.params.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var eg errgroup.Group
	eg.SetLimit(workers)
	for y := 0; y < h; y++ {
		eg.Go(func() error {
			ny := float64(y) / float64(h)
			row := f.Values[y*w : (y+1)*w]
			for x := range row {
				nx := float64(x) / float64(w)
				sample := float64(sampler.Sample(m.originX+nx*tg.params.Scale, m.originY+ny*tg.params.Scale))
				row[x] = quantize(sample*m.weight(nx, ny), tg.params.Steps)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return f, nil
}

// quantize rounds v up into one of steps bands. The lowest band is sea level
// and collapses to 0.
func quantize(v float64, steps int) float32 {
	band := math.Ceil(float64(steps) * v)
	if band <= 1 {
		return 0
	}
	if band > float64(steps) {
		band = float64(steps)
	}
	return float32(band / float64(steps))
}

// sliceIntoZones copies each zone's sub-rectangle out of the canvas and tags
// it by majority. Returns the number of land zones.
func sliceIntoZones(g *region.Grid, canvas *region.Field) int {
	zw, zh := int(g.Zone.W), int(g.Zone.H)
	land := 0
	for i := range g.Zones {
		c := g.CoordOf(i)
		z := &g.Zones[i]
		z.Coordinates = c
		z.Layer = region.DefaultLayer

		ox, oy := int(c.X)*zw, int(c.Y)*zh
		samples := make([]float32, zw*zh)
		above := 0
		for ty := 0; ty < zh; ty++ {
			for tx := 0; tx < zw; tx++ {
				v := canvas.At(ox+tx, oy+ty)
				samples[tx+ty*zw] = v
				if v > 0 {
					above++
				}
			}
		}
		z.Heights = samples

		if above*2 >= len(samples) {
			z.ZoneType = region.ZoneTypeLand
			z.AddTag(region.TagLand)
			land++
		} else {
			z.ZoneType = region.ZoneTypeWater
			z.AddTag(region.TagWater)
		}
	}
	return land
}

type point struct{ x, y float64 }

type segment struct{ a, b point }

// landMask pulls the map edges down to ocean: a radial continent falloff plus
// random line segments that roughen the coastline.
type landMask struct {
	originX, originY float64
	radius           float64
	lines            []segment
	falloff          float64
	lineWeight       float64
}

// newLandMask draws the origin offset first, then the line endpoints.
func newLandMask(p TerrainParams, rng *stageRNG) *landMask {
	m := &landMask{
		originX:    rng.rangeFloat(-p.OriginRange, p.OriginRange),
		originY:    rng.rangeFloat(-p.OriginRange, p.OriginRange),
		radius:     p.ContinentRadius,
		falloff:    p.LineFalloff,
		lineWeight: p.LineWeight,
	}
	for range p.Lines {
		a := point{rng.rangeFloat(p.LineMin, p.LineMax), rng.rangeFloat(p.LineMin, p.LineMax)}
		b := point{rng.rangeFloat(p.LineMin, p.LineMax), rng.rangeFloat(p.LineMin, p.LineMax)}
		m.lines = append(m.lines, segment{a, b})
	}
	return m
}

// weight returns the eased mask value in [0, 1] for a normalized canvas position.
func (m *landMask) weight(nx, ny float64) float64 {
	p := point{nx, ny}
	sphere := 1 - math.Min(dist(point{0.5, 0.5}, p), m.radius)/m.radius

	lines := 0.0
	if len(m.lines) > 0 {
		nearest := math.MaxFloat64
		for _, s := range m.lines {
			nearest = math.Min(nearest, dist(p, closestOnSegment(s, p)))
		}
		lines = 1 - math.Min(m.falloff, nearest)/m.falloff
	}

	return smoothstep(math.Max(sphere, lines*m.lineWeight))
}

// smoothstep flattens both ends of [0, 1]: 3t² - 2t³.
func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func dist(a, b point) float64 {
	return math.Hypot(a.x-b.x, a.y-b.y)
}

func closestOnSegment(s segment, p point) point {
	dx, dy := s.b.x-s.a.x, s.b.y-s.a.y
	length := math.Hypot(dx, dy)
	if length < 1e-5 {
		return s.a
	}
	ux, uy := dx/length, dy/length
	t := (p.x-s.a.x)*ux + (p.y-s.a.y)*uy
	switch {
	case t <= 0:
		return s.a
	case t >= length:
		return s.b
	}
	return point{s.a.x + ux*t, s.a.y + uy*t}
}
