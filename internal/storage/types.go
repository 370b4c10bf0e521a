package storage

import (
	"maps"
	"slices"

	"github.com/OCharnyshevich/regiongen/pkg/region"
)

// FormatVersion is bumped whenever RegionData changes shape.
const FormatVersion = 1

// RegionData is the serializable representation of a region grid.
type RegionData struct {
	Version int         `json:"version"`
	Seed    int64       `json:"seed"`
	Region  DimsData    `json:"region"`
	Zone    DimsData    `json:"zone"`
	Zones   []ZoneData  `json:"zones"`
	Biomes  []BiomeData `json:"biomes,omitempty"` // sorted by name
}

// DimsData holds a width/height pair.
type DimsData struct {
	W uint32 `json:"w"`
	H uint32 `json:"h"`
}

// CoordData is a zone coordinate.
type CoordData struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// ZoneData is one zone record. Heights are row-major within the zone.
type ZoneData struct {
	X         int32        `json:"x"`
	Y         int32        `json:"y"`
	Heights   []float32    `json:"heights,omitempty"`
	ZoneType  string       `json:"zone_type,omitempty"`
	Layer     string       `json:"layer,omitempty"`
	Tags      []string     `json:"tags,omitempty"`
	SubBiomes []WeightData `json:"subbiomes,omitempty"`
}

// WeightData is one sub-biome weight.
type WeightData struct {
	Name   string  `json:"name"`
	Weight float32 `json:"weight"`
}

// BiomeData is one biome catalog entry.
type BiomeData struct {
	Name   string      `json:"name"`
	Kind   string      `json:"kind"`
	Tag    string      `json:"tag"`
	Zones  []CoordData `json:"zones,omitempty"`
	Pixels int         `json:"pixels,omitempty"`
	Center CoordData   `json:"center"`
}

// RegionDataFromGrid extracts serializable data from a grid.
func RegionDataFromGrid(g *region.Grid) *RegionData {
	rd := &RegionData{
		Version: FormatVersion,
		Seed:    g.Seed,
		Region:  DimsData{W: g.Region.W, H: g.Region.H},
		Zone:    DimsData{W: g.Zone.W, H: g.Zone.H},
		Zones:   make([]ZoneData, len(g.Zones)),
	}
	for i := range g.Zones {
		rd.Zones[i] = zoneDataFromZone(&g.Zones[i])
	}
	for _, name := range slices.Sorted(maps.Keys(g.Biomes)) {
		info := g.Biomes[name]
		bd := BiomeData{
			Name:   name,
			Kind:   info.Kind,
			Tag:    info.Tag,
			Pixels: info.Pixels,
			Center: CoordData{X: info.Center.X, Y: info.Center.Y},
		}
		for _, c := range info.Zones {
			bd.Zones = append(bd.Zones, CoordData{X: c.X, Y: c.Y})
		}
		rd.Biomes = append(rd.Biomes, bd)
	}
	return rd
}

func zoneDataFromZone(z *region.Zone) ZoneData {
	zd := ZoneData{
		X:        z.Coordinates.X,
		Y:        z.Coordinates.Y,
		Heights:  nilIfEmpty(z.Heights),
		ZoneType: z.ZoneType,
		Layer:    z.Layer,
		Tags:     nilIfEmpty(z.Tags),
	}
	for _, w := range z.SubBiomes {
		zd.SubBiomes = append(zd.SubBiomes, WeightData{Name: w.Name, Weight: w.Weight})
	}
	return zd
}

// Grid rebuilds the runtime grid. Empty slices come back as nil.
func (rd *RegionData) Grid() *region.Grid {
	g := &region.Grid{
		Seed:   rd.Seed,
		Region: region.Dimensions{W: rd.Region.W, H: rd.Region.H},
		Zone:   region.Dimensions{W: rd.Zone.W, H: rd.Zone.H},
		Zones:  make([]region.Zone, len(rd.Zones)),
		Biomes: make(map[string]region.BiomeInfo, len(rd.Biomes)),
	}
	for i := range rd.Zones {
		g.Zones[i] = rd.Zones[i].Zone()
	}
	for _, bd := range rd.Biomes {
		info := region.BiomeInfo{
			Kind:   bd.Kind,
			Tag:    bd.Tag,
			Pixels: bd.Pixels,
			Center: region.ZoneCoord{X: bd.Center.X, Y: bd.Center.Y},
		}
		for _, c := range bd.Zones {
			info.Zones = append(info.Zones, region.ZoneCoord{X: c.X, Y: c.Y})
		}
		g.Biomes[bd.Name] = info
	}
	return g
}

// Zone rebuilds one runtime zone record.
func (zd *ZoneData) Zone() region.Zone {
	z := region.Zone{
		Coordinates: region.ZoneCoord{X: zd.X, Y: zd.Y},
		Heights:     nilIfEmpty(zd.Heights),
		ZoneType:    zd.ZoneType,
		Layer:       zd.Layer,
		Tags:        nilIfEmpty(zd.Tags),
	}
	for _, w := range zd.SubBiomes {
		z.SubBiomes = append(z.SubBiomes, region.SubBiomeWeight{Name: w.Name, Weight: w.Weight})
	}
	return z
}

func nilIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
