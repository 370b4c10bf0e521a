package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/OCharnyshevich/regiongen/internal/config"
	"github.com/OCharnyshevich/regiongen/pkg/region"
	"github.com/OCharnyshevich/regiongen/pkg/world/gen"
)

// State is a pipeline stage.
type State int

const (
	Idle State = iota
	Started
	Terrain
	Cities
	Biomes
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Started:
		return "started"
	case Terrain:
		return "terrain"
	case Cities:
		return "cities"
	case Biomes:
		return "biomes"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ErrBusy is returned by Start while a run is in progress.
var ErrBusy = errors.New("pipeline already running")

// Saver persists a finished region and returns where it went.
type Saver interface {
	SaveRegion(g *region.Grid) (string, error)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSaver stores every finished region through s.
func WithSaver(s Saver) Option {
	return func(p *Pipeline) { p.saver = s }
}

// OnFinished registers fn to be called once per completed run, after the
// region has been saved.
func OnFinished(fn func(g *region.Grid)) Option {
	return func(p *Pipeline) { p.onFinished = fn }
}

// Pipeline drives one region through terrain, cities and biomes, one stage
// per Tick. It owns the grid; generators are built when their stage starts.
type Pipeline struct {
	cfg *config.Config
	log *slog.Logger

	state      State
	grid       *region.Grid
	terrain    *gen.TerrainGenerator
	cities     *gen.CityGenerator
	biomes     *gen.BiomeGenerator
	saver      Saver
	onFinished func(g *region.Grid)
	savedPath  string
}

// New creates an idle Pipeline.
func New(cfg *config.Config, log *slog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{cfg: cfg, log: log}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the stage the next Tick will run.
func (p *Pipeline) State() State {
	return p.state
}

// Grid returns the region of the current or most recent run.
func (p *Pipeline) Grid() *region.Grid {
	return p.grid
}

// CitySites returns the city placement of the most recent run.
func (p *Pipeline) CitySites() gen.Placement {
	if p.cities == nil {
		return gen.Placement{}
	}
	return p.cities.Sites()
}

// SavedPath returns where the most recent finished region was saved, if anywhere.
func (p *Pipeline) SavedPath() string {
	return p.savedPath
}

// Start begins a new run. The previous grid and generators are dropped.
func (p *Pipeline) Start() error {
	if p.state != Idle {
		return fmt.Errorf("start in state %s: %w", p.state, ErrBusy)
	}
	p.grid = nil
	p.terrain, p.cities, p.biomes = nil, nil, nil
	p.savedPath = ""
	p.state = Started
	p.log.Info("pipeline started", "seed", p.cfg.Seed)
	return nil
}

// Tick runs the current stage to completion and advances. Tick on an idle
// pipeline does nothing. A failing stage returns the pipeline to Idle.
func (p *Pipeline) Tick() (State, error) {
	from := p.state
	next, err := p.step()
	if err != nil {
		p.state = Idle
		p.log.Error("pipeline stage failed", "state", from.String(), "error", err)
		return p.state, fmt.Errorf("%s: %w", from, err)
	}
	p.state = next
	if from != Idle {
		p.log.Debug("pipeline advanced", "from", from.String(), "to", next.String())
	}
	return p.state, nil
}

func (p *Pipeline) step() (State, error) {
	switch p.state {
	case Idle:
		return Idle, nil

	case Started:
		g, err := region.NewGrid(p.cfg.Seed, p.cfg.RegionDims(), p.cfg.ZoneDims())
		if err != nil {
			return Idle, err
		}
		p.grid = g
		return Terrain, nil

	case Terrain:
		p.terrain = gen.NewTerrainGenerator(p.cfg.Terrain, p.log)
		if err := p.terrain.Generate(p.grid); err != nil {
			return Idle, err
		}
		return Cities, nil

	case Cities:
		p.cities = gen.NewCityGenerator(p.cfg.Cities, p.log)
		if err := p.cities.Generate(p.grid); err != nil {
			return Idle, err
		}
		return Biomes, nil

	case Biomes:
		p.biomes = gen.NewBiomeGenerator(p.cfg.Biomes, p.log)
		if err := p.biomes.Generate(p.grid); err != nil {
			return Idle, err
		}
		return Finished, nil

	case Finished:
		if p.saver != nil {
			path, err := p.saver.SaveRegion(p.grid)
			if err != nil {
				return Idle, err
			}
			p.savedPath = path
		}
		if p.onFinished != nil {
			p.onFinished(p.grid)
		}
		p.log.Info("pipeline finished",
			"seed", p.grid.Seed,
			"zones", len(p.grid.Zones),
			"biomes", len(p.grid.Biomes),
			"saved", p.savedPath,
		)
		return Idle, nil
	}
	return Idle, fmt.Errorf("unknown state %d", int(p.state))
}

// Run starts a run and ticks it to completion. ctx is checked between
// stages; a stage in progress always finishes.
func (p *Pipeline) Run(ctx context.Context) (*region.Grid, error) {
	if err := p.Start(); err != nil {
		return nil, err
	}
	for p.state != Idle {
		if err := ctx.Err(); err != nil {
			p.log.Warn("pipeline cancelled", "state", p.state.String())
			p.state = Idle
			return nil, err
		}
		if _, err := p.Tick(); err != nil {
			return nil, err
		}
	}
	return p.grid, nil
}
