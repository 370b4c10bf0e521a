package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OCharnyshevich/regiongen/internal/preset"
)

func fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch [source] [dest]",
		Short: "Download a generation preset and check that it loads",
		Long: "Download a single preset YAML from a local path, a git repository\n" +
			"(git::https://host/repo.git//file.yaml) or an HTTP URL.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := preset.Fetch(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "preset %s: seed %d, %dx%d zones, %d cities\n",
				args[1], cfg.Seed, cfg.RegionWidth, cfg.RegionHeight, cfg.Cities.Count)
			return nil
		},
	}
}
