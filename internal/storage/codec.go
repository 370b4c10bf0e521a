package storage

import (
	"bytes"
	"compress/zlib"
	"encoding/json"
	"fmt"
	"io"

	"github.com/OCharnyshevich/regiongen/internal/wire"
)

// Binary region files start with this magic and a version byte; the rest is
// a zlib stream of wire records.
var binaryMagic = [4]byte{'R', 'G', 'N', '1'}

const (
	maxZones       = 1 << 22
	maxZoneSamples = 1 << 20
	maxTags        = 1 << 10
	maxBiomes      = 1 << 16
)

func encodeJSON(rd *RegionData) ([]byte, error) {
	data, err := json.MarshalIndent(rd, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return append(data, '\n'), nil
}

func decodeJSON(data []byte) (*RegionData, error) {
	var rd RegionData
	if err := json.Unmarshal(data, &rd); err != nil {
		return nil, fmt.Errorf("parse region json: %w", err)
	}
	return &rd, nil
}

func encodeBinary(rd *RegionData) ([]byte, error) {
	var buf bytes.Buffer
	hdr := wire.NewWriter(&buf)
	hdr.Bytes(binaryMagic[:])
	hdr.Byte(byte(rd.Version))
	if err := hdr.Err(); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	zw := zlib.NewWriter(&buf)
	w := wire.NewWriter(zw)
	w.VarLong(rd.Seed)
	writeDims(w, rd.Region)
	writeDims(w, rd.Zone)

	w.Len(len(rd.Zones))
	for i := range rd.Zones {
		writeZone(w, &rd.Zones[i])
	}

	w.Len(len(rd.Biomes))
	for _, b := range rd.Biomes {
		w.Text(b.Name)
		w.Text(b.Kind)
		w.Text(b.Tag)
		w.Len(len(b.Zones))
		for _, c := range b.Zones {
			writeCoord(w, c)
		}
		w.VarLong(int64(b.Pixels))
		writeCoord(w, b.Center)
	}

	if err := w.Err(); err != nil {
		return nil, fmt.Errorf("encode region: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress region: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeBinary(data []byte) (*RegionData, error) {
	src := bytes.NewReader(data)
	hdr := wire.NewReader(src)
	var magic [len(binaryMagic)]byte
	for i := range magic {
		magic[i] = hdr.Byte()
	}
	version := hdr.Byte()
	if hdr.Err() != nil || magic != binaryMagic {
		return nil, fmt.Errorf("not a binary region file")
	}
	rd := &RegionData{Version: int(version)}
	if rd.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported region format version %d", rd.Version)
	}

	zr, err := zlib.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("open zlib stream: %w", err)
	}
	defer zr.Close()

	r := wire.NewReader(zr)
	rd.Seed = r.VarLong()
	rd.Region = readDims(r)
	rd.Zone = readDims(r)

	samples := min(int(rd.Zone.W)*int(rd.Zone.H), maxZoneSamples)
	if n := r.Len(maxZones); n > 0 {
		rd.Zones = make([]ZoneData, n)
		for i := range rd.Zones {
			rd.Zones[i] = readZone(r, samples)
		}
	}

	for range r.Len(maxBiomes) {
		b := BiomeData{
			Name: r.Text(),
			Kind: r.Text(),
			Tag:  r.Text(),
		}
		for range r.Len(maxZones) {
			b.Zones = append(b.Zones, readCoord(r))
		}
		b.Pixels = int(r.VarLong())
		b.Center = readCoord(r)
		rd.Biomes = append(rd.Biomes, b)
	}

	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("decode region: %w", err)
	}
	// Drain to the end so zlib verifies the checksum.
	if _, err := io.Copy(io.Discard, zr); err != nil {
		return nil, fmt.Errorf("decode region: %w", err)
	}
	return rd, nil
}

// encodeZone is the single-zone record used by the zone index.
func encodeZone(zd *ZoneData) ([]byte, error) {
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	writeZone(w, zd)
	if err := w.Err(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeZone(data []byte) (ZoneData, error) {
	r := wire.NewReader(bytes.NewReader(data))
	zd := readZone(r, maxZoneSamples)
	return zd, r.Err()
}

func writeDims(w *wire.Writer, d DimsData) {
	w.VarInt(int32(d.W))
	w.VarInt(int32(d.H))
}

func readDims(r *wire.Reader) DimsData {
	return DimsData{W: uint32(r.VarInt()), H: uint32(r.VarInt())}
}

func writeCoord(w *wire.Writer, c CoordData) {
	w.VarInt(c.X)
	w.VarInt(c.Y)
}

func readCoord(r *wire.Reader) CoordData {
	return CoordData{X: r.VarInt(), Y: r.VarInt()}
}

func writeZone(w *wire.Writer, zd *ZoneData) {
	w.VarInt(zd.X)
	w.VarInt(zd.Y)
	w.Float32s(zd.Heights)
	w.Text(zd.ZoneType)
	w.Text(zd.Layer)
	w.Len(len(zd.Tags))
	for _, tag := range zd.Tags {
		w.Text(tag)
	}
	w.Len(len(zd.SubBiomes))
	for _, sb := range zd.SubBiomes {
		w.Text(sb.Name)
		w.Float32(sb.Weight)
	}
}

func readZone(r *wire.Reader, samples int) ZoneData {
	zd := ZoneData{
		X:        r.VarInt(),
		Y:        r.VarInt(),
		Heights:  r.Float32s(samples),
		ZoneType: r.Text(),
		Layer:    r.Text(),
	}
	for range r.Len(maxTags) {
		zd.Tags = append(zd.Tags, r.Text())
	}
	for range r.Len(maxTags) {
		zd.SubBiomes = append(zd.SubBiomes, WeightData{Name: r.Text(), Weight: r.Float32()})
	}
	return zd
}
