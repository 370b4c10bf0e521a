package gen

import (
	"fmt"

	"github.com/OCharnyshevich/regiongen/pkg/region"
)

// TerrainParams tunes heightmap synthesis.
type TerrainParams struct {
	Noise string `yaml:"noise" json:"noise"` // "opensimplex" or "perlin"
	// Steps is the number of elevation bands; sea level is 1/Steps.
	Steps int     `yaml:"steps" json:"steps"`
	Scale float64 `yaml:"scale" json:"scale"` // noise cycles across the canvas
	// OriginRange bounds the seeded noise window offset on each axis.
	OriginRange     float64 `yaml:"origin_range" json:"origin_range"`
	ContinentRadius float64 `yaml:"continent_radius" json:"continent_radius"`
	Lines           int     `yaml:"lines" json:"lines"`
	LineMin         float64 `yaml:"line_min" json:"line_min"` // endpoint extent, normalized
	LineMax         float64 `yaml:"line_max" json:"line_max"`
	LineFalloff     float64 `yaml:"line_falloff" json:"line_falloff"`
	LineWeight      float64 `yaml:"line_weight" json:"line_weight"`
	// Workers bounds the goroutines synthesizing canvas rows. 0 uses GOMAXPROCS.
	Workers int `yaml:"workers" json:"workers"`
}

// DefaultTerrainParams returns the band and mask settings the region maps are tuned for.
func DefaultTerrainParams() TerrainParams {
	return TerrainParams{
		Noise:           "opensimplex",
		Steps:           5,
		Scale:           8.0,
		OriginRange:     10000,
		ContinentRadius: 0.5,
		Lines:           5,
		LineMin:         0.15,
		LineMax:         0.85,
		LineFalloff:     0.1,
		LineWeight:      0.5,
	}
}

// Validate rejects parameters that cannot produce a heightmap.
func (p TerrainParams) Validate() error {
	switch {
	case p.Steps < 1:
		return fmt.Errorf("terrain steps %d: %w", p.Steps, region.ErrInvalidConfig)
	case p.Scale <= 0:
		return fmt.Errorf("terrain scale %v: %w", p.Scale, region.ErrInvalidConfig)
	case p.ContinentRadius <= 0:
		return fmt.Errorf("continent radius %v: %w", p.ContinentRadius, region.ErrInvalidConfig)
	case p.Lines < 0:
		return fmt.Errorf("mask lines %d: %w", p.Lines, region.ErrInvalidConfig)
	case p.Lines > 0 && (p.LineFalloff <= 0 || p.LineMax < p.LineMin):
		return fmt.Errorf("mask line extent [%v,%v] falloff %v: %w", p.LineMin, p.LineMax, p.LineFalloff, region.ErrInvalidConfig)
	case p.Workers < 0:
		return fmt.Errorf("terrain workers %d: %w", p.Workers, region.ErrInvalidConfig)
	}
	return nil
}

// CityParams tunes city placement.
type CityParams struct {
	Count       int     `yaml:"count" json:"count"`
	MinDistance float32 `yaml:"min_distance" json:"min_distance"` // in zones
	MaxAttempts int     `yaml:"max_attempts" json:"max_attempts"`
}

// DefaultCityParams returns nine well-spaced cities.
func DefaultCityParams() CityParams {
	return CityParams{
		Count:       9,
		MinDistance: 4,
		MaxAttempts: 10,
	}
}

// Validate rejects negative counts and spacing.
func (p CityParams) Validate() error {
	if p.Count < 0 || p.MinDistance < 0 || p.MaxAttempts < 0 {
		return fmt.Errorf("city count %d spacing %v attempts %d: %w", p.Count, p.MinDistance, p.MaxAttempts, region.ErrInvalidConfig)
	}
	return nil
}

// BiomeParams tunes cluster tagging and sub-biome placement.
type BiomeParams struct {
	SubBiomes int `yaml:"subbiomes" json:"subbiomes"`
	// Radius restricts sub-biome centers to zones this close to the region center.
	Radius      float32 `yaml:"radius" json:"radius"`
	MinDistance float32 `yaml:"min_distance" json:"min_distance"`
	MaxAttempts int     `yaml:"max_attempts" json:"max_attempts"`
	// Blend is the most sub-biome weights a zone keeps.
	Blend int `yaml:"blend" json:"blend"`
	// Falloff is the distance in zones at which a center's weight reaches zero.
	Falloff float32 `yaml:"falloff" json:"falloff"`
}

// DefaultBiomeParams returns ten sub-biomes inside a 12-zone radius.
func DefaultBiomeParams() BiomeParams {
	return BiomeParams{
		SubBiomes:   10,
		Radius:      12,
		MinDistance: 4,
		MaxAttempts: 10,
		Blend:       3,
		Falloff:     8,
	}
}

// Validate rejects negative counts and distances.
func (p BiomeParams) Validate() error {
	if p.SubBiomes < 0 || p.Radius < 0 || p.MinDistance < 0 || p.MaxAttempts < 0 || p.Blend < 0 || p.Falloff < 0 {
		return fmt.Errorf("biome params %+v: %w", p, region.ErrInvalidConfig)
	}
	return nil
}
