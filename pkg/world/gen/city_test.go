package gen

import (
	"errors"
	"slices"
	"testing"

	"github.com/OCharnyshevich/regiongen/pkg/region"
)

// landGrid returns a w x h zone grid where the zones accepted by isLand carry
// the land tag and every other zone the water tag.
func landGrid(t *testing.T, w, h int, isLand func(x, y int) bool) *region.Grid {
	t.Helper()
	g, err := region.NewGrid(42, region.Dimensions{W: uint32(w), H: uint32(h)}, region.Dimensions{W: 4, H: 4})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	for i := range g.Zones {
		c := g.CoordOf(i)
		z := &g.Zones[i]
		z.Coordinates = c
		if isLand(int(c.X), int(c.Y)) {
			z.ZoneType = region.ZoneTypeLand
			z.AddTag(region.TagLand)
		} else {
			z.ZoneType = region.ZoneTypeWater
			z.AddTag(region.TagWater)
		}
	}
	return g
}

func TestCityGeneratorPlacesOnLand(t *testing.T) {
	// Land in the left half only.
	g := landGrid(t, 20, 20, func(x, _ int) bool { return x < 10 })

	cg := NewCityGenerator(CityParams{Count: 6, MinDistance: 3, MaxAttempts: 10}, discardLogger())
	if err := cg.Generate(g); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	cities := g.ZonesWithTag(region.TagCity)
	if len(cities) != 6 {
		t.Fatalf("got %d city zones, want 6", len(cities))
	}
	for _, z := range cities {
		if !z.HasTag(region.TagLand) {
			t.Errorf("city at %v is not on land", z.Coordinates)
		}
		if z.ZoneType != region.ZoneTypeCity {
			t.Errorf("city at %v has zone type %q", z.Coordinates, z.ZoneType)
		}
	}

	sites := cg.Sites()
	if len(sites.Points) != 6 {
		t.Fatalf("Sites has %d points, want 6", len(sites.Points))
	}
	for _, c := range sites.Points {
		if !g.ZoneAt(c).HasTag(region.TagCity) {
			t.Errorf("site %v not tagged city", c)
		}
	}
}

func TestCityGeneratorInsufficientLand(t *testing.T) {
	g := landGrid(t, 5, 5, func(x, y int) bool { return x == 0 && y < 3 })

	cg := NewCityGenerator(CityParams{Count: 4, MinDistance: 1, MaxAttempts: 10}, discardLogger())
	err := cg.Generate(g)
	if !errors.Is(err, region.ErrInsufficientSpace) {
		t.Fatalf("err = %v, want ErrInsufficientSpace", err)
	}
	if n := g.CountTag(region.TagCity); n != 0 {
		t.Errorf("%d zones tagged city after failure", n)
	}
}

func TestCityGeneratorNoLand(t *testing.T) {
	g := landGrid(t, 4, 4, func(int, int) bool { return false })

	cg := NewCityGenerator(DefaultCityParams(), discardLogger())
	if err := cg.Generate(g); !errors.Is(err, region.ErrInsufficientSpace) {
		t.Fatalf("err = %v, want ErrInsufficientSpace", err)
	}
}

func TestCityGeneratorZeroCount(t *testing.T) {
	g := landGrid(t, 4, 4, func(int, int) bool { return true })

	cg := NewCityGenerator(CityParams{Count: 0, MinDistance: 4, MaxAttempts: 10}, discardLogger())
	if err := cg.Generate(g); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if n := g.CountTag(region.TagCity); n != 0 {
		t.Errorf("%d zones tagged city, want 0", n)
	}
}

func TestCityGeneratorInvalidParams(t *testing.T) {
	g := landGrid(t, 4, 4, func(int, int) bool { return true })

	cg := NewCityGenerator(CityParams{Count: -1}, discardLogger())
	if err := cg.Generate(g); !errors.Is(err, region.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestCityGeneratorDeterministic(t *testing.T) {
	sites := func() []region.ZoneCoord {
		g := landGrid(t, 30, 30, func(x, y int) bool { return (x+y)%3 != 0 })
		cg := NewCityGenerator(DefaultCityParams(), discardLogger())
		if err := cg.Generate(g); err != nil {
			t.Fatalf("Generate: %v", err)
		}
		return cg.Sites().Points
	}
	a, b := sites(), sites()
	if !slices.Equal(a, b) {
		t.Errorf("sites differ:\n%v\n%v", a, b)
	}
}
