package storage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/util"

	"github.com/OCharnyshevich/regiongen/internal/wire"
	"github.com/OCharnyshevich/regiongen/pkg/region"
)

// ErrNotFound is returned for zones or metadata missing from a ZoneIndex.
var ErrNotFound = errors.New("not found")

var (
	metaKey    = []byte("meta")
	zonePrefix = []byte("z")
	tagPrefix  = []byte("t")
)

// Meta describes the region a ZoneIndex holds.
type Meta struct {
	Seed   int64
	Region region.Dimensions
	Zone   region.Dimensions
}

// ZoneIndex stores one record per zone in LevelDB, keyed by coordinate, plus
// a tag index, so a consumer can stream single zones without loading the
// whole region.
type ZoneIndex struct {
	db  *leveldb.DB
	log *slog.Logger
}

// OpenZoneIndex opens or creates the index at dir.
func OpenZoneIndex(dir string, log *slog.Logger) (*ZoneIndex, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("open zone index %s: %w: %w", dir, region.ErrIO, err)
	}
	return &ZoneIndex{db: db, log: log}, nil
}

// Close releases the database.
func (ix *ZoneIndex) Close() error {
	if err := ix.db.Close(); err != nil {
		return fmt.Errorf("close zone index: %w: %w", region.ErrIO, err)
	}
	return nil
}

// Put replaces the index contents with g in one batch.
func (ix *ZoneIndex) Put(g *region.Grid) error {
	batch := new(leveldb.Batch)

	iter := ix.db.NewIterator(nil, nil)
	for iter.Next() {
		batch.Delete(bytes.Clone(iter.Key()))
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return fmt.Errorf("clear zone index: %w: %w", region.ErrIO, err)
	}

	var meta bytes.Buffer
	w := wire.NewWriter(&meta)
	w.VarLong(g.Seed)
	writeDims(w, DimsData{W: g.Region.W, H: g.Region.H})
	writeDims(w, DimsData{W: g.Zone.W, H: g.Zone.H})
	if err := w.Err(); err != nil {
		return fmt.Errorf("encode meta: %w", err)
	}
	batch.Put(metaKey, meta.Bytes())

	for i := range g.Zones {
		z := &g.Zones[i]
		zd := zoneDataFromZone(z)
		rec, err := encodeZone(&zd)
		if err != nil {
			return fmt.Errorf("encode zone %v: %w", z.Coordinates, err)
		}
		batch.Put(zoneKey(z.Coordinates), rec)
		for _, tag := range z.Tags {
			batch.Put(tagKey(tag, z.Coordinates), nil)
		}
	}

	if err := ix.db.Write(batch, nil); err != nil {
		return fmt.Errorf("write zone index: %w: %w", region.ErrIO, err)
	}
	ix.log.Info("zone index written", "seed", g.Seed, "zones", len(g.Zones))
	return nil
}

// Meta returns the seed and dimensions of the indexed region.
func (ix *ZoneIndex) Meta() (Meta, error) {
	data, err := ix.get(metaKey)
	if err != nil {
		return Meta{}, fmt.Errorf("meta: %w", err)
	}
	r := wire.NewReader(bytes.NewReader(data))
	seed := r.VarLong()
	rd, zd := readDims(r), readDims(r)
	if err := r.Err(); err != nil {
		return Meta{}, fmt.Errorf("decode meta: %w: %w", region.ErrIO, err)
	}
	return Meta{
		Seed:   seed,
		Region: region.Dimensions{W: rd.W, H: rd.H},
		Zone:   region.Dimensions{W: zd.W, H: zd.H},
	}, nil
}

// Zone returns the record at c.
func (ix *ZoneIndex) Zone(c region.ZoneCoord) (region.Zone, error) {
	data, err := ix.get(zoneKey(c))
	if err != nil {
		return region.Zone{}, fmt.Errorf("zone %v: %w", c, err)
	}
	zd, err := decodeZone(data)
	if err != nil {
		return region.Zone{}, fmt.Errorf("decode zone %v: %w: %w", c, region.ErrIO, err)
	}
	return zd.Zone(), nil
}

// ZonesWithTag returns every zone carrying tag, in grid index order.
func (ix *ZoneIndex) ZonesWithTag(tag string) ([]region.Zone, error) {
	prefix := tagKey(tag, region.ZoneCoord{})[:len(tagPrefix)+len(tag)+1]

	var coords []region.ZoneCoord
	iter := ix.db.NewIterator(util.BytesPrefix(prefix), nil)
	for iter.Next() {
		k := iter.Key()[len(prefix):]
		coords = append(coords, region.ZoneCoord{
			Y: int32(binary.BigEndian.Uint32(k[0:4])),
			X: int32(binary.BigEndian.Uint32(k[4:8])),
		})
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("scan tag %q: %w: %w", tag, region.ErrIO, err)
	}

	zones := make([]region.Zone, 0, len(coords))
	for _, c := range coords {
		z, err := ix.Zone(c)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, nil
}

func (ix *ZoneIndex) get(key []byte) ([]byte, error) {
	data, err := ix.db.Get(key, nil)
	switch {
	case errors.Is(err, leveldb.ErrNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("%w: %w", region.ErrIO, err)
	}
	return data, nil
}

// Coordinates are stored y first, big-endian, so key order is grid index
// order.
func appendCoord(b []byte, c region.ZoneCoord) []byte {
	b = binary.BigEndian.AppendUint32(b, uint32(c.Y))
	return binary.BigEndian.AppendUint32(b, uint32(c.X))
}

func zoneKey(c region.ZoneCoord) []byte {
	return appendCoord(bytes.Clone(zonePrefix), c)
}

func tagKey(tag string, c region.ZoneCoord) []byte {
	k := append(bytes.Clone(tagPrefix), tag...)
	k = append(k, 0)
	return appendCoord(k, c)
}
