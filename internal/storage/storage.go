package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/OCharnyshevich/regiongen/pkg/region"
)

// File extensions per output format.
const (
	ExtJSON   = ".json"
	ExtBinary = ".rgn"
)

// Storage handles file-based persistence for generated regions.
type Storage struct {
	dir    string
	binary bool
	log    *slog.Logger
}

// New creates a new Storage rooted at dir, creating it as needed. format is
// "json" or "binary".
func New(dir, format string, log *slog.Logger) (*Storage, error) {
	var binary bool
	switch format {
	case "json", "":
	case "binary":
		binary = true
	default:
		return nil, fmt.Errorf("storage format %q: %w", format, region.ErrInvalidConfig)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w: %w", dir, region.ErrIO, err)
	}
	return &Storage{dir: dir, binary: binary, log: log}, nil
}

// PathFor returns where SaveRegion puts the region generated from seed.
func (s *Storage) PathFor(seed int64) string {
	ext := ExtJSON
	if s.binary {
		ext = ExtBinary
	}
	return filepath.Join(s.dir, fmt.Sprintf("region-%d%s", seed, ext))
}

// SaveRegion writes g atomically and returns the file path.
func (s *Storage) SaveRegion(g *region.Grid) (string, error) {
	path := s.PathFor(g.Seed)
	if err := WriteRegion(path, g); err != nil {
		return "", err
	}
	s.log.Info("region saved", "path", path, "zones", len(g.Zones), "biomes", len(g.Biomes))
	return path, nil
}

// WriteRegion encodes g by the extension of path and writes it atomically.
func WriteRegion(path string, g *region.Grid) error {
	rd := RegionDataFromGrid(g)

	var data []byte
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ExtJSON:
		data, err = encodeJSON(rd)
	case ExtBinary:
		data, err = encodeBinary(rd)
	default:
		return fmt.Errorf("write region %s: unknown extension %q: %w", path, ext, region.ErrIO)
	}
	if err != nil {
		return fmt.Errorf("write region %s: %w: %w", path, region.ErrIO, err)
	}
	return atomicWrite(path, data)
}

// LoadRegion reads a region file written by SaveRegion or WriteRegion.
func LoadRegion(path string) (*region.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read region: %w: %w", region.ErrIO, err)
	}

	var rd *RegionData
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ExtJSON:
		rd, err = decodeJSON(data)
	case ExtBinary:
		rd, err = decodeBinary(data)
	default:
		return nil, fmt.Errorf("read region %s: unknown extension %q: %w", path, ext, region.ErrIO)
	}
	if err != nil {
		return nil, fmt.Errorf("read region %s: %w: %w", path, region.ErrIO, err)
	}
	if rd.Version != FormatVersion {
		return nil, fmt.Errorf("read region %s: format version %d: %w", path, rd.Version, region.ErrIO)
	}
	if len(rd.Zones) != int(rd.Region.W)*int(rd.Region.H) {
		return nil, fmt.Errorf("read region %s: %d zones for a %dx%d region: %w",
			path, len(rd.Zones), rd.Region.W, rd.Region.H, region.ErrIO)
	}
	return rd.Grid(), nil
}

// atomicWrite writes data using a temp file + rename.
func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w: %w", region.ErrIO, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w: %w", region.ErrIO, err)
	}
	return nil
}
