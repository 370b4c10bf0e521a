package gen

import (
	"fmt"
	"log/slog"

	"github.com/OCharnyshevich/regiongen/pkg/region"
)

// CityGenerator picks well-spaced land zones as city sites.
type CityGenerator struct {
	params CityParams
	log    *slog.Logger
	sites  Placement
}

// NewCityGenerator creates a CityGenerator.
func NewCityGenerator(params CityParams, log *slog.Logger) *CityGenerator {
	return &CityGenerator{params: params, log: log}
}

// Generate tags the chosen zones "city". It needs the land tags written by
// the terrain stage and fails with ErrInsufficientSpace when there are fewer
// land zones than requested cities.
func (cg *CityGenerator) Generate(g *region.Grid) error {
	if err := cg.params.Validate(); err != nil {
		return fmt.Errorf("cities: %w", err)
	}

	var candidates []region.ZoneCoord
	for i := range g.Zones {
		if g.Zones[i].HasTag(region.TagLand) {
			candidates = append(candidates, g.CoordOf(i))
		}
	}
	if cg.params.Count > len(candidates) {
		return fmt.Errorf("cities: %d cities on %d land zones: %w", cg.params.Count, len(candidates), region.ErrInsufficientSpace)
	}

	rng := newStageRNG(g.Seed, saltCities)
	sites, err := place(candidates, cg.params.Count, cg.params.MinDistance, cg.params.MaxAttempts, rng, cg.log)
	if err != nil {
		return fmt.Errorf("cities: %w", err)
	}

	for _, c := range sites.Points {
		z := g.ZoneAt(c)
		z.ZoneType = region.ZoneTypeCity
		z.AddTag(region.TagCity)
	}
	cg.sites = sites

	cg.log.Info("cities placed",
		"count", len(sites.Points),
		"spaced", sites.Spaced,
		"candidates", len(candidates),
	)
	return nil
}

// Sites returns the placement from the last Generate call.
func (cg *CityGenerator) Sites() Placement {
	return cg.sites
}
