package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"testing"

	"github.com/OCharnyshevich/regiongen/internal/config"
	"github.com/OCharnyshevich/regiongen/pkg/region"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type fakeSaver struct {
	saved []*region.Grid
	err   error
}

func (s *fakeSaver) SaveRegion(g *region.Grid) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = append(s.saved, g)
	return fmt.Sprintf("region-%d.json", g.Seed), nil
}

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Seed = 17
	cfg.RegionWidth, cfg.RegionHeight = 16, 16
	cfg.ZoneWidth, cfg.ZoneHeight = 8, 8
	cfg.Cities.Count = 2
	cfg.Cities.MinDistance = 2
	cfg.Biomes.Radius = 6
	return cfg
}

func TestPipelineReferenceSeed(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 630058
	cfg.RegionWidth, cfg.RegionHeight = 40, 40
	cfg.ZoneWidth, cfg.ZoneHeight = 24, 24
	cfg.Cities.Count = 9
	cfg.Cities.MinDistance = 4

	saver := &fakeSaver{}
	finished := 0
	p := New(cfg, discardLogger(), WithSaver(saver), OnFinished(func(*region.Grid) { finished++ }))

	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	want := []State{Terrain, Cities, Biomes, Finished, Idle}
	var got []State
	for p.State() != Idle {
		s, err := p.Tick()
		if err != nil {
			t.Fatalf("Tick: %v", err)
		}
		got = append(got, s)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("states = %v, want %v", got, want)
	}
	if finished != 1 {
		t.Errorf("finished callback fired %d times, want 1", finished)
	}
	if len(saver.saved) != 1 || p.SavedPath() != "region-630058.json" {
		t.Errorf("saved %d regions to %q", len(saver.saved), p.SavedPath())
	}

	g := p.Grid()
	if n := len(g.BiomesOfKind(region.KindOcean)); n != 1 {
		t.Errorf("%d ocean clusters, want 1", n)
	}
	if n := g.CountTag(region.TagLandMountainPeak); n < 1 {
		t.Errorf("no zone tagged %s", region.TagLandMountainPeak)
	}
	cities := g.ZonesWithTag(region.TagCity)
	if len(cities) != 9 {
		t.Fatalf("%d city zones, want 9", len(cities))
	}

	sites := p.CitySites()
	for i := 0; i < sites.Spaced; i++ {
		for j := i + 1; j < sites.Spaced; j++ {
			a, b := sites.Points[i], sites.Points[j]
			if d := math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y)); d <= 4 {
				t.Errorf("cities %v and %v only %.2f apart", a, b, d)
			}
		}
	}

	for i := range g.Zones {
		for _, v := range g.Zones[i].Heights {
			if v < 0 || v > 1 {
				t.Fatalf("zone %d height %v out of [0,1]", i, v)
			}
		}
	}
}

func TestPipelineDeterministic(t *testing.T) {
	run := func() *region.Grid {
		g, err := New(smallConfig(), discardLogger()).Run(context.Background())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return g
	}
	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs with the same config produced different regions")
	}
}

func TestPipelineErrorReturnsToIdle(t *testing.T) {
	cfg := smallConfig()
	cfg.Cities.Count = 1000

	finished := 0
	p := New(cfg, discardLogger(), OnFinished(func(*region.Grid) { finished++ }))
	_, err := p.Run(context.Background())
	if !errors.Is(err, region.ErrInsufficientSpace) {
		t.Fatalf("err = %v, want ErrInsufficientSpace", err)
	}
	if p.State() != Idle {
		t.Errorf("state = %s, want idle", p.State())
	}
	if finished != 0 {
		t.Errorf("finished callback fired after a failed run")
	}

	// The pipeline is reusable after a failure.
	cfg.Cities.Count = 1
	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if finished != 1 {
		t.Errorf("finished = %d, want 1", finished)
	}
}

func TestPipelineInvalidDimensions(t *testing.T) {
	cfg := smallConfig()
	cfg.RegionWidth = 0

	p := New(cfg, discardLogger())
	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s, err := p.Tick()
	if !errors.Is(err, region.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	if s != Idle {
		t.Errorf("state = %s, want idle", s)
	}
}

func TestPipelineSaveFailure(t *testing.T) {
	saver := &fakeSaver{err: fmt.Errorf("disk full: %w", region.ErrIO)}
	finished := 0
	p := New(smallConfig(), discardLogger(), WithSaver(saver), OnFinished(func(*region.Grid) { finished++ }))

	_, err := p.Run(context.Background())
	if !errors.Is(err, region.ErrIO) {
		t.Fatalf("err = %v, want ErrIO", err)
	}
	if finished != 0 {
		t.Errorf("finished callback fired although saving failed")
	}
	if p.State() != Idle {
		t.Errorf("state = %s, want idle", p.State())
	}
}

func TestPipelineStartWhileRunning(t *testing.T) {
	p := New(smallConfig(), discardLogger())
	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := p.Start(); !errors.Is(err, ErrBusy) {
		t.Fatalf("second Start err = %v, want ErrBusy", err)
	}
}

func TestPipelineIdleTick(t *testing.T) {
	p := New(smallConfig(), discardLogger())
	s, err := p.Tick()
	if err != nil || s != Idle {
		t.Fatalf("Tick on idle = %s, %v; want idle, nil", s, err)
	}
	if p.Grid() != nil {
		t.Error("idle tick allocated a grid")
	}
}

func TestPipelineCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(smallConfig(), discardLogger())
	if _, err := p.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if p.State() != Idle {
		t.Errorf("state = %s, want idle", p.State())
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{Idle, "idle"},
		{Started, "started"},
		{Terrain, "terrain"},
		{Cities, "cities"},
		{Biomes, "biomes"},
		{Finished, "finished"},
		{State(42), "state(42)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.s), got, tt.want)
		}
	}
}
