package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/OCharnyshevich/regiongen/internal/config"
	"github.com/OCharnyshevich/regiongen/internal/pipeline"
	"github.com/OCharnyshevich/regiongen/internal/preview"
	"github.com/OCharnyshevich/regiongen/internal/storage"
	"github.com/OCharnyshevich/regiongen/pkg/region"
)

// mergeFlags are the flags that override config file values.
var mergeFlags = []string{"seed", "region", "zone", "out", "format", "noise", "workers", "cities"}

type generateOptions struct {
	configPath  string
	region      string
	zone        string
	previewPath string
	previewMode string
	indexDir    string
}

func generateCmd(logger func() *slog.Logger) *cobra.Command {
	cfg := config.DefaultConfig()
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run the generation pipeline and save the region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			explicit := make(map[string]bool)
			for _, name := range mergeFlags {
				explicit[name] = cmd.Flags().Changed(name)
			}
			if err := resolveConfig(cfg, opts, explicit); err != nil {
				return err
			}
			return runGenerate(cmd.Context(), cfg, opts, logger())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML config or preset file")
	f.Int64Var(&cfg.Seed, "seed", cfg.Seed, "master seed")
	f.StringVar(&opts.region, "region", fmt.Sprintf("%dx%d", cfg.RegionWidth, cfg.RegionHeight), "region size in zones, WxH")
	f.StringVar(&opts.zone, "zone", fmt.Sprintf("%dx%d", cfg.ZoneWidth, cfg.ZoneHeight), "zone size in tiles, WxH")
	f.StringVarP(&cfg.OutputDir, "out", "o", cfg.OutputDir, "output directory")
	f.StringVar(&cfg.Format, "format", cfg.Format, "output format: json or binary")
	f.StringVar(&cfg.Terrain.Noise, "noise", cfg.Terrain.Noise, "noise backend: opensimplex or perlin")
	f.IntVar(&cfg.Terrain.Workers, "workers", cfg.Terrain.Workers, "heightmap goroutines (0 = GOMAXPROCS)")
	f.IntVar(&cfg.Cities.Count, "cities", cfg.Cities.Count, "number of cities")
	f.StringVar(&opts.previewPath, "preview", "", "also write a PNG preview to this path")
	f.StringVar(&opts.previewMode, "preview-mode", string(preview.ModeTags), "preview mode: terrain or tags")
	f.StringVar(&opts.indexDir, "index", "", "also write a LevelDB zone index to this directory")
	return cmd
}

// resolveConfig layers the config file under explicit flags and applies the
// dimension flags.
func resolveConfig(cfg *config.Config, opts generateOptions, explicit map[string]bool) error {
	if opts.configPath != "" {
		fromFile, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		config.Merge(cfg, fromFile, explicit)
	}
	if explicit["region"] || opts.configPath == "" {
		w, h, err := parseDims(opts.region)
		if err != nil {
			return fmt.Errorf("--region: %w", err)
		}
		cfg.RegionWidth, cfg.RegionHeight = w, h
	}
	if explicit["zone"] || opts.configPath == "" {
		w, h, err := parseDims(opts.zone)
		if err != nil {
			return fmt.Errorf("--zone: %w", err)
		}
		cfg.ZoneWidth, cfg.ZoneHeight = w, h
	}
	return cfg.Validate()
}

func runGenerate(ctx context.Context, cfg *config.Config, opts generateOptions, log *slog.Logger) error {
	var mode preview.Mode
	if opts.previewPath != "" {
		var err error
		if mode, err = preview.ParseMode(opts.previewMode); err != nil {
			return err
		}
	}

	store, err := storage.New(cfg.OutputDir, cfg.Format, log)
	if err != nil {
		return err
	}

	var index *storage.ZoneIndex
	if opts.indexDir != "" {
		index, err = storage.OpenZoneIndex(opts.indexDir, log)
		if err != nil {
			return err
		}
		defer index.Close()
	}

	var hookErr error
	p := pipeline.New(cfg, log,
		pipeline.WithSaver(store),
		pipeline.OnFinished(func(g *region.Grid) {
			if index != nil {
				hookErr = index.Put(g)
			}
		}),
	)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g, err := p.Run(ctx)
	if err != nil {
		return err
	}
	if hookErr != nil {
		return hookErr
	}

	if opts.previewPath != "" {
		img, err := preview.Render(g, mode)
		if err != nil {
			return err
		}
		if err := preview.WritePNG(opts.previewPath, img); err != nil {
			return err
		}
		log.Info("preview written", "path", opts.previewPath, "mode", string(mode))
	}

	sites := p.CitySites()
	log.Info("region generated",
		"path", p.SavedPath(),
		"seed", g.Seed,
		"cities", len(sites.Points),
		"spacedCities", sites.Spaced,
		"biomes", len(g.Biomes),
	)
	return nil
}
