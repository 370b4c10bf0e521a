package gen

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/OCharnyshevich/regiongen/pkg/region"
)

// BiomeGenerator classifies zones by the terrain features they touch, splits
// cities into urban and rural, and places sub-biome centers.
type BiomeGenerator struct {
	params BiomeParams
	log    *slog.Logger
}

// NewBiomeGenerator creates a BiomeGenerator.
func NewBiomeGenerator(params BiomeParams, log *slog.Logger) *BiomeGenerator {
	return &BiomeGenerator{params: params, log: log}
}

// clusterLabel is what a zone cluster becomes in the catalog and its tags.
type clusterLabel struct {
	kind   string
	name   string // catalog name, used when prefix is empty
	prefix string // numbered catalog names: prefix_NN
	tags   []string
}

var (
	oceanLabel    = clusterLabel{kind: region.KindOcean, name: "ocean", tags: []string{region.TagBiomeOcean, region.TagWaterOcean}}
	lakeLabel     = clusterLabel{kind: region.KindLake, prefix: "lake", tags: []string{region.TagBiomeLake, region.TagWaterLake}}
	mainlandLabel = clusterLabel{kind: region.KindMainland, name: "land_main", tags: []string{region.TagBiomeLand, region.TagLandMain}}
	islandLabel   = clusterLabel{kind: region.KindIsland, prefix: "island", tags: []string{region.TagBiomeIsland, region.TagLandIsland}}
	peakLabel     = clusterLabel{kind: region.KindMountainPeak, prefix: "mountain_peak", tags: []string{region.TagBiomeMountainPeak, region.TagLandMountainPeak}}
)

// Generate reads the zone heights written by the terrain stage and the city
// tags written by the city stage.
func (bg *BiomeGenerator) Generate(g *region.Grid) error {
	if err := region.ValidateDimensions(g.Region, g.Zone); err != nil {
		return fmt.Errorf("biomes: %w", err)
	}
	if err := bg.params.Validate(); err != nil {
		return fmt.Errorf("biomes: %w", err)
	}
	if g.Biomes == nil {
		g.Biomes = make(map[string]region.BiomeInfo)
	}

	field := g.Heightmap()

	peaks, err := FindMaxima(field)
	if err != nil {
		return fmt.Errorf("biomes: mountains: %w", err)
	}
	water, err := FindMinima(field)
	if err != nil {
		return fmt.Errorf("biomes: water: %w", err)
	}
	land, err := FindAbove(field, 0)
	if err != nil {
		return fmt.Errorf("biomes: land: %w", err)
	}

	// A map without any sea-level pixel has no water, and a map without any
	// land has no peaks; the extremum scans would otherwise label them anyway.
	if len(water) > 0 && clusterValue(field, water[0]) > 0 {
		water = nil
	}
	if len(peaks) > 0 && clusterValue(field, peaks[0]) <= 0 {
		peaks = nil
	}

	waterZones := toZoneClusters(g, water)
	tagClusters(g, waterZones, oceanLabel, lakeLabel)
	landZones := toZoneClusters(g, land)
	tagClusters(g, landZones, mainlandLabel, islandLabel)
	peakZones := toZoneClusters(g, peaks)
	tagClusters(g, peakZones, peakLabel, peakLabel)

	urban, rural := bg.splitCities(g)

	centers, err := bg.placeSubBiomes(g)
	if err != nil {
		return fmt.Errorf("biomes: %w", err)
	}

	bg.log.Info("biomes generated",
		"waterClusters", len(waterZones),
		"landClusters", len(landZones),
		"peakClusters", len(peakZones),
		"urbanCities", urban,
		"ruralCities", rural,
		"subBiomes", centers,
	)
	return nil
}

func clusterValue(f *region.Field, cl Cluster) float32 {
	return f.At(int(cl[0].X), int(cl[0].Y))
}

type zoneCluster struct {
	pixels int
	zones  []region.ZoneCoord // index order
}

// toZoneClusters maps each pixel cluster onto the zones it touches and orders
// the results by pixel count, smallest first.
func toZoneClusters(g *region.Grid, clusters []Cluster) []zoneCluster {
	seen := make([]bool, len(g.Zones))
	out := make([]zoneCluster, 0, len(clusters))
	for _, cl := range clusters {
		var touched []int
		for _, p := range cl {
			i := g.Index(g.TileToZone(p))
			if !seen[i] {
				seen[i] = true
				touched = append(touched, i)
			}
		}
		slices.Sort(touched)

		zc := zoneCluster{pixels: len(cl), zones: make([]region.ZoneCoord, len(touched))}
		for k, i := range touched {
			seen[i] = false
			zc.zones[k] = g.CoordOf(i)
		}
		out = append(out, zc)
	}
	slices.SortStableFunc(out, func(a, b zoneCluster) int {
		return cmp.Compare(a.pixels, b.pixels)
	})
	return out
}

// tagClusters labels the last (largest) cluster with largest and every other
// one with rest. A zone may end up in several clusters of one category.
func tagClusters(g *region.Grid, clusters []zoneCluster, largest, rest clusterLabel) {
	for i, zc := range clusters {
		label := rest
		if i == len(clusters)-1 {
			label = largest
		}

		name := label.name
		if label.prefix != "" {
			name = fmt.Sprintf("%s_%02d", label.prefix, i)
		}

		for _, c := range zc.zones {
			z := g.ZoneAt(c)
			for _, tag := range label.tags {
				z.AddTag(tag)
			}
		}
		g.Biomes[name] = region.BiomeInfo{
			Kind:   label.kind,
			Tag:    label.tags[0],
			Zones:  zc.zones,
			Pixels: zc.pixels,
		}
	}
}

// splitCities tags between one and half of the city zones as urban by index
// order and the rest as rural. A lone city is rural.
func (bg *BiomeGenerator) splitCities(g *region.Grid) (urban, rural int) {
	cities := g.ZonesWithTag(region.TagCity)
	if len(cities) == 0 {
		return 0, 0
	}

	if half := len(cities) / 2; half > 0 {
		rng := newStageRNG(g.Seed, saltBiomes)
		urban = 1 + rng.nextN(half)
	}
	for i, z := range cities {
		if i < urban {
			z.AddTag(region.TagCityUrban)
		} else {
			z.AddTag(region.TagCityRural)
		}
	}
	return urban, len(cities) - urban
}
