package preset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/OCharnyshevich/regiongen/pkg/region"
)

func TestFetchLocalFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "islands.yaml")
	body := "seed: 12\nregion_width: 20\nregion_height: 20\ncities:\n  count: 4\n"
	if err := os.WriteFile(src, []byte(body), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}

	dst := filepath.Join(dir, "presets", "islands.yaml")
	cfg, err := Fetch(context.Background(), src, dst)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if cfg.Seed != 12 || cfg.RegionWidth != 20 || cfg.Cities.Count != 4 {
		t.Errorf("cfg = %+v", cfg)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("fetched preset missing: %v", err)
	}
}

func TestFetchMissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := Fetch(context.Background(), filepath.Join(dir, "nope.yaml"), filepath.Join(dir, "out.yaml"))
	if !errors.Is(err, region.ErrIO) {
		t.Fatalf("err = %v, want ErrIO", err)
	}
}

func TestFetchInvalidPreset(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(src, []byte("region_width: 0\n"), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}
	_, err := Fetch(context.Background(), src, filepath.Join(dir, "out", "broken.yaml"))
	if !errors.Is(err, region.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}
