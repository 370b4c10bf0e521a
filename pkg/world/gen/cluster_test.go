package gen

import (
	"errors"
	"testing"

	"github.com/OCharnyshevich/regiongen/pkg/region"
)

func TestFindClustersEmptyField(t *testing.T) {
	tests := []struct {
		name string
		f    *region.Field
	}{
		{"nil", nil},
		{"zero_size", region.NewField(0, 0)},
		{"short_values", &region.Field{W: 3, H: 3, Values: make([]float32, 4)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindMaxima(tt.f)
			if !errors.Is(err, region.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestFindClustersDiagonalTaperIsOneCluster(t *testing.T) {
	// One pixel wide, touching only across corners. 4-connectivity would
	// split this into five clusters.
	f := fieldFromRows([]string{
		"#....",
		".#...",
		"..#..",
		"...#.",
		"....#",
	})
	clusters, err := FindMaxima(f)
	if err != nil {
		t.Fatalf("FindMaxima: %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("got %d clusters, want 1", len(clusters))
	}
	if len(clusters[0]) != 5 {
		t.Errorf("cluster has %d pixels, want 5", len(clusters[0]))
	}
}

func TestFindClustersWaterTaperAcrossDiagonal(t *testing.T) {
	// Two water bodies (.) joined by a single diagonal step.
	f := fieldFromRows([]string{
		"..####",
		"..####",
		"##.###",
		"###...",
		"###...",
	})
	clusters, err := FindMinima(f)
	if err != nil {
		t.Fatalf("FindMinima: %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("got %d water clusters, want 1", len(clusters))
	}
	if len(clusters[0]) != 11 {
		t.Errorf("water cluster has %d pixels, want 11", len(clusters[0]))
	}
}

func TestFindClustersSeparateBodies(t *testing.T) {
	f := fieldFromRows([]string{
		"##....",
		"##....",
		"......",
		"....##",
		"...###",
	})
	clusters, err := FindMaxima(f)
	if err != nil {
		t.Fatalf("FindMaxima: %v", err)
	}
	if len(clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(clusters))
	}
	if len(clusters[0]) != 4 || len(clusters[1]) != 5 {
		t.Errorf("cluster sizes = %d, %d; want 4, 5", len(clusters[0]), len(clusters[1]))
	}
}

func TestFindClustersConcaveShape(t *testing.T) {
	// The fill must turn back up both arms of the U.
	f := fieldFromRows([]string{
		"#.#.#",
		"#.#.#",
		"#.#.#",
		"#####",
	})
	clusters, err := FindMaxima(f)
	if err != nil {
		t.Fatalf("FindMaxima: %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("got %d clusters, want 1", len(clusters))
	}
	if len(clusters[0]) != 14 {
		t.Errorf("cluster has %d pixels, want 14", len(clusters[0]))
	}
}

func TestFindClustersSupersedesReference(t *testing.T) {
	f := region.NewField(4, 2)
	f.Set(0, 0, 0.4)
	f.Set(1, 0, 0.4)
	f.Set(3, 1, 0.8) // higher value found late drops the earlier set

	clusters, err := FindMaxima(f)
	if err != nil {
		t.Fatalf("FindMaxima: %v", err)
	}
	if len(clusters) != 1 || len(clusters[0]) != 1 {
		t.Fatalf("clusters = %v, want one single-pixel cluster", clusters)
	}
	if got := clusters[0][0]; got != (region.TilePos{X: 3, Y: 1}) {
		t.Errorf("maximum at %v, want (3,1)", got)
	}
}

func TestFindAboveThreshold(t *testing.T) {
	f := region.NewField(5, 1)
	for x, v := range []float32{0.6, 0.2, 0, 0.4, 0.4} {
		f.Set(x, 0, v)
	}
	clusters, err := FindAbove(f, 0)
	if err != nil {
		t.Fatalf("FindAbove: %v", err)
	}
	if len(clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(clusters))
	}
	if len(clusters[0]) != 2 || len(clusters[1]) != 2 {
		t.Errorf("cluster sizes = %d, %d; want 2, 2", len(clusters[0]), len(clusters[1]))
	}
}

func TestFindClustersNoPassingPixels(t *testing.T) {
	f := region.NewField(3, 3)
	clusters, err := FindAbove(f, 0)
	if err != nil {
		t.Fatalf("FindAbove: %v", err)
	}
	if len(clusters) != 0 {
		t.Errorf("got %d clusters, want 0", len(clusters))
	}
}

func TestFindClustersPartition(t *testing.T) {
	const w, h = 64, 48
	rng := newStageRNG(11, 0)
	f := region.NewField(w, h)
	for i := range f.Values {
		f.Values[i] = float32(rng.nextN(3)) / 2
	}

	queries := []struct {
		name    string
		find    func(*region.Field) ([]Cluster, error)
		passing func(v float32) bool
	}{
		{"maxima", FindMaxima, func(v float32) bool { return v == 1 }},
		{"minima", FindMinima, func(v float32) bool { return v == 0 }},
		{"above", func(f *region.Field) ([]Cluster, error) { return FindAbove(f, 0) }, func(v float32) bool { return v > 0 }},
	}

	for _, q := range queries {
		t.Run(q.name, func(t *testing.T) {
			clusters, err := q.find(f)
			if err != nil {
				t.Fatalf("find: %v", err)
			}

			owner := make(map[region.TilePos]int)
			for id, cl := range clusters {
				if len(cl) == 0 {
					t.Fatalf("cluster %d is empty", id)
				}
				for _, p := range cl {
					if prev, dup := owner[p]; dup {
						t.Fatalf("pixel %v in clusters %d and %d", p, prev, id)
					}
					owner[p] = id
					if !q.passing(f.At(int(p.X), int(p.Y))) {
						t.Fatalf("pixel %v value %v does not pass", p, f.At(int(p.X), int(p.Y)))
					}
				}
			}

			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					if !q.passing(f.At(x, y)) {
						continue
					}
					p := region.TilePos{X: int32(x), Y: int32(y)}
					id, ok := owner[p]
					if !ok {
						t.Fatalf("passing pixel %v belongs to no cluster", p)
					}
					// Passing 8-neighbours must share the cluster.
					for dy := -1; dy <= 1; dy++ {
						for dx := -1; dx <= 1; dx++ {
							nx, ny := x+dx, y+dy
							if nx < 0 || nx >= w || ny < 0 || ny >= h || !q.passing(f.At(nx, ny)) {
								continue
							}
							if other := owner[region.TilePos{X: int32(nx), Y: int32(ny)}]; other != id {
								t.Fatalf("neighbours %v and (%d,%d) split across clusters %d and %d", p, nx, ny, id, other)
							}
						}
					}
				}
			}
		})
	}
}

func TestFindClustersNilPredicate(t *testing.T) {
	f := region.NewField(2, 2)
	if _, err := FindClusters(f, 0, Equal, nil, Equal); !errors.Is(err, region.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
