package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/OCharnyshevich/regiongen/internal/preview"
	"github.com/OCharnyshevich/regiongen/internal/storage"
)

func previewCmd(logger func() *slog.Logger) *cobra.Command {
	var out, mode string

	cmd := &cobra.Command{
		Use:   "preview [region-file]",
		Short: "Render a saved region to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			m, err := preview.ParseMode(mode)
			if err != nil {
				return err
			}
			g, err := storage.LoadRegion(args[0])
			if err != nil {
				return err
			}
			img, err := preview.Render(g, m)
			if err != nil {
				return err
			}
			if err := preview.WritePNG(out, img); err != nil {
				return err
			}
			logger().Info("preview written", "path", out, "mode", mode)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "preview.png", "output PNG path")
	cmd.Flags().StringVar(&mode, "mode", string(preview.ModeTerrain), "terrain or tags")
	return cmd
}
