package region

import "slices"

// Biome catalog kinds.
const (
	KindOcean        = "ocean"
	KindLake         = "lake"
	KindMainland     = "mainland"
	KindIsland       = "island"
	KindMountainPeak = "mountain_peak"
	KindSubBiome     = "subbiome"
)

// BiomeInfo describes one catalog entry: a tagged zone cluster or a placed
// sub-biome center.
type BiomeInfo struct {
	Kind string
	Tag  string
	// Zones lists member zones in index order. Empty for sub-biomes.
	Zones []ZoneCoord
	// Pixels is the size of the source pixel cluster.
	Pixels int
	// Center is set for sub-biomes only.
	Center ZoneCoord
}

// BiomesOfKind returns the catalog names of the given kind, sorted.
func (g *Grid) BiomesOfKind(kind string) []string {
	var names []string
	for name, info := range g.Biomes {
		if info.Kind == kind {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
