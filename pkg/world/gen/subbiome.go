package gen

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/OCharnyshevich/regiongen/pkg/region"
)

// placeSubBiomes spreads sub-biome centers over the zones near the region
// center, tags them, records them in the catalog and blends their weights
// into nearby zones. Returns how many centers were placed.
func (bg *BiomeGenerator) placeSubBiomes(g *region.Grid) (int, error) {
	center := region.ZoneCoord{X: int32(g.Region.W / 2), Y: int32(g.Region.H / 2)}

	var candidates []region.ZoneCoord
	for i := range g.Zones {
		c := g.CoordOf(i)
		if zoneDistance(center, c) <= float64(bg.params.Radius) {
			candidates = append(candidates, c)
		}
	}

	count := bg.params.SubBiomes
	if count > len(candidates) {
		bg.log.Warn("not enough zones near the center for every sub-biome",
			"requested", count,
			"candidates", len(candidates),
			"radius", bg.params.Radius,
		)
		count = len(candidates)
	}

	rng := newStageRNG(g.Seed, saltSubBiomes)
	placement, err := place(candidates, count, bg.params.MinDistance, bg.params.MaxAttempts, rng, bg.log)
	if err != nil {
		return 0, fmt.Errorf("sub-biomes: %w", err)
	}

	names := make([]string, len(placement.Points))
	for i, c := range placement.Points {
		names[i] = fmt.Sprintf("subbiome_%02d", i)
		g.ZoneAt(c).AddTag(region.TagSubBiomeCenter)
		g.Biomes[names[i]] = region.BiomeInfo{
			Kind:   region.KindSubBiome,
			Tag:    region.TagSubBiomeCenter,
			Center: c,
		}
	}

	bg.blendSubBiomes(g, names, placement.Points)
	return len(placement.Points), nil
}

// blendSubBiomes gives each zone up to Blend weights, one per center closer
// than Falloff, falling linearly from 1 at the center. Zones out of reach of
// every center keep no weights.
func (bg *BiomeGenerator) blendSubBiomes(g *region.Grid, names []string, centers []region.ZoneCoord) {
	if bg.params.Blend == 0 || len(centers) == 0 {
		return
	}
	falloff := float64(bg.params.Falloff)

	for i := range g.Zones {
		c := g.CoordOf(i)
		var weights []region.SubBiomeWeight
		for k, center := range centers {
			d := zoneDistance(c, center)
			var w float64
			switch {
			case d == 0:
				w = 1
			case d < falloff:
				w = 1 - d/falloff
			default:
				continue
			}
			weights = append(weights, region.SubBiomeWeight{Name: names[k], Weight: float32(w)})
		}

		slices.SortFunc(weights, func(a, b region.SubBiomeWeight) int {
			if o := cmp.Compare(b.Weight, a.Weight); o != 0 {
				return o
			}
			return cmp.Compare(a.Name, b.Name)
		})
		if len(weights) > bg.params.Blend {
			weights = weights[:bg.params.Blend]
		}
		g.Zones[i].SubBiomes = weights
	}
}
