package main

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/OCharnyshevich/regiongen/internal/storage"
	"github.com/OCharnyshevich/regiongen/pkg/region"
)

func inspectCmd() *cobra.Command {
	var tag, zone string

	cmd := &cobra.Command{
		Use:   "inspect [region-file]",
		Short: "Summarize a saved region, or list zones by tag or coordinate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := storage.LoadRegion(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case zone != "":
				x, y, err := parseCoord(zone)
				if err != nil {
					return err
				}
				z := g.ZoneAt(region.ZoneCoord{X: x, Y: y})
				if z == nil {
					return fmt.Errorf("zone %d,%d outside %dx%d region", x, y, g.Region.W, g.Region.H)
				}
				printZone(out, z)
			case tag != "":
				printTagged(out, g, tag)
			default:
				printSummary(out, g)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "list zones carrying this tag")
	cmd.Flags().StringVar(&zone, "zone", "", "print one zone, x,y")
	return cmd
}

func printSummary(w io.Writer, g *region.Grid) {
	fmt.Fprintf(w, "seed:   %d\n", g.Seed)
	fmt.Fprintf(w, "region: %dx%d zones of %dx%d tiles\n", g.Region.W, g.Region.H, g.Zone.W, g.Zone.H)

	counts := make(map[string]int)
	for i := range g.Zones {
		for _, t := range g.Zones[i].Tags {
			counts[t]++
		}
	}
	fmt.Fprintf(w, "\nTAGS (%d):\n", len(counts))
	for _, t := range slices.Sorted(maps.Keys(counts)) {
		fmt.Fprintf(w, "  %-22s %d\n", t, counts[t])
	}

	fmt.Fprintf(w, "\nBIOMES (%d):\n", len(g.Biomes))
	for _, name := range slices.Sorted(maps.Keys(g.Biomes)) {
		b := g.Biomes[name]
		if b.Kind == region.KindSubBiome {
			fmt.Fprintf(w, "  %-18s %-14s center %d,%d\n", name, b.Kind, b.Center.X, b.Center.Y)
			continue
		}
		fmt.Fprintf(w, "  %-18s %-14s %d zones, %d px\n", name, b.Kind, len(b.Zones), b.Pixels)
	}
}

func printTagged(w io.Writer, g *region.Grid, tag string) {
	zones := g.ZonesWithTag(tag)
	fmt.Fprintf(w, "%s (%d):\n", tag, len(zones))
	for _, z := range zones {
		fmt.Fprintf(w, "  %d,%d\t%s\n", z.Coordinates.X, z.Coordinates.Y, z.ZoneType)
	}
}

func printZone(w io.Writer, z *region.Zone) {
	fmt.Fprintf(w, "zone:  %d,%d\n", z.Coordinates.X, z.Coordinates.Y)
	fmt.Fprintf(w, "type:  %s\n", z.ZoneType)
	fmt.Fprintf(w, "layer: %s\n", z.Layer)
	fmt.Fprintf(w, "tags:  %v\n", z.Tags)

	lo, hi := float32(1), float32(0)
	for _, v := range z.Heights {
		lo, hi = min(lo, v), max(hi, v)
	}
	if len(z.Heights) > 0 {
		fmt.Fprintf(w, "height: %.2f..%.2f over %d tiles\n", lo, hi, len(z.Heights))
	}
	for _, sb := range z.SubBiomes {
		fmt.Fprintf(w, "  %s\t%.3f\n", sb.Name, sb.Weight)
	}
}
