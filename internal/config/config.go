package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/OCharnyshevich/regiongen/pkg/region"
	"github.com/OCharnyshevich/regiongen/pkg/world/gen"
)

// Output formats.
const (
	FormatJSON   = "json"
	FormatBinary = "binary"
)

// Config holds everything one pipeline run needs. Every value that affects
// the generated region lives here, so a config plus a seed reproduces a map.
type Config struct {
	Seed         int64  `yaml:"seed" json:"seed"`
	RegionWidth  uint32 `yaml:"region_width" json:"region_width"`   // in zones
	RegionHeight uint32 `yaml:"region_height" json:"region_height"` // in zones
	ZoneWidth    uint32 `yaml:"zone_width" json:"zone_width"`       // in tiles
	ZoneHeight   uint32 `yaml:"zone_height" json:"zone_height"`     // in tiles

	OutputDir string `yaml:"output_dir" json:"output_dir"`
	Format    string `yaml:"format" json:"format"` // "json" or "binary"

	Terrain gen.TerrainParams `yaml:"terrain" json:"terrain"`
	Cities  gen.CityParams    `yaml:"cities" json:"cities"`
	Biomes  gen.BiomeParams   `yaml:"biomes" json:"biomes"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Seed:         630058,
		RegionWidth:  40,
		RegionHeight: 40,
		ZoneWidth:    24,
		ZoneHeight:   24,
		OutputDir:    "regions",
		Format:       FormatJSON,
		Terrain:      gen.DefaultTerrainParams(),
		Cities:       gen.DefaultCityParams(),
		Biomes:       gen.DefaultBiomeParams(),
	}
}

// Load reads a YAML config file. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %v: %w", err, region.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// RegionDims returns the region size in zones.
func (c *Config) RegionDims() region.Dimensions {
	return region.Dimensions{W: c.RegionWidth, H: c.RegionHeight}
}

// ZoneDims returns the zone size in tiles.
func (c *Config) ZoneDims() region.Dimensions {
	return region.Dimensions{W: c.ZoneWidth, H: c.ZoneHeight}
}

// Validate reports the first invalid setting, wrapped in region.ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := region.ValidateDimensions(c.RegionDims(), c.ZoneDims()); err != nil {
		return err
	}
	if c.Format != FormatJSON && c.Format != FormatBinary {
		return fmt.Errorf("output format %q: %w", c.Format, region.ErrInvalidConfig)
	}
	if err := c.Terrain.Validate(); err != nil {
		return err
	}
	if err := c.Cities.Validate(); err != nil {
		return err
	}
	return c.Biomes.Validate()
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["region"] {
		cfg.RegionWidth = fromFile.RegionWidth
		cfg.RegionHeight = fromFile.RegionHeight
	}
	if !explicitFlags["zone"] {
		cfg.ZoneWidth = fromFile.ZoneWidth
		cfg.ZoneHeight = fromFile.ZoneHeight
	}
	if !explicitFlags["out"] {
		cfg.OutputDir = fromFile.OutputDir
	}
	if !explicitFlags["format"] {
		cfg.Format = fromFile.Format
	}

	noise, workers := cfg.Terrain.Noise, cfg.Terrain.Workers
	cfg.Terrain = fromFile.Terrain
	if explicitFlags["noise"] {
		cfg.Terrain.Noise = noise
	}
	if explicitFlags["workers"] {
		cfg.Terrain.Workers = workers
	}

	count := cfg.Cities.Count
	cfg.Cities = fromFile.Cities
	if explicitFlags["cities"] {
		cfg.Cities.Count = count
	}

	cfg.Biomes = fromFile.Biomes
}
