package gen

import (
	"fmt"
	"math"

	"github.com/OCharnyshevich/regiongen/pkg/region"
)

// Predicate compares a pixel value against a reference value.
type Predicate func(value, reference float32) bool

// Common predicates.
var (
	Equal   Predicate = func(v, ref float32) bool { return v == ref }
	Greater Predicate = func(v, ref float32) bool { return v > ref }
	Less    Predicate = func(v, ref float32) bool { return v < ref }
	Never   Predicate = func(float32, float32) bool { return false }
)

// Cluster is one 8-connected component: full-resolution tile positions, each
// listed exactly once.
type Cluster []region.TilePos

// FindClusters extracts connected components from f.
//
// A single row-major scan collects the pixels that pass against a running
// reference value, starting at reference. When a pixel does not pass but
// supersedes the reference, the collected set is dropped and the scan restarts
// from that pixel's value. Equal+Greater from -inf therefore finds every pixel
// at the global maximum; Greater+Never finds every pixel above a threshold.
//
// Each unclaimed passing pixel then seeds a scanline flood fill that gathers
// its 8-connected neighbours for which sameCluster(neighbour, seedValue)
// holds. Filled pixels are claimed, so the returned clusters are disjoint.
// A seed that fails sameCluster against its own value yields no cluster.
func FindClusters(f *region.Field, reference float32, passes, supersedes, sameCluster Predicate) ([]Cluster, error) {
	if f.Empty() || len(f.Values) != f.W*f.H {
		return nil, fmt.Errorf("find clusters: empty field: %w", region.ErrInvalidInput)
	}
	if passes == nil || supersedes == nil || sameCluster == nil {
		return nil, fmt.Errorf("find clusters: nil predicate: %w", region.ErrInvalidInput)
	}

	var passing []int
	ref := reference
	for i, v := range f.Values {
		if passes(v, ref) {
			passing = append(passing, i)
		} else if supersedes(v, ref) {
			passing = passing[:0]
			ref = v
			passing = append(passing, i)
		}
	}

	claimed := make([]bool, len(f.Values))
	var clusters []Cluster
	for _, i := range passing {
		if claimed[i] {
			continue
		}
		seed := f.Values[i]
		if !sameCluster(seed, seed) {
			continue
		}
		clusters = append(clusters, scanFill(f, i%f.W, i/f.W, seed, sameCluster, claimed))
	}
	return clusters, nil
}

// FindMaxima returns the clusters of pixels at the global maximum.
func FindMaxima(f *region.Field) ([]Cluster, error) {
	return FindClusters(f, -math.MaxFloat32, Equal, Greater, Equal)
}

// FindMinima returns the clusters of pixels at the global minimum.
func FindMinima(f *region.Field) ([]Cluster, error) {
	return FindClusters(f, math.MaxFloat32, Equal, Less, Equal)
}

// FindAbove returns the clusters of pixels strictly above threshold.
func FindAbove(f *region.Field, threshold float32) ([]Cluster, error) {
	above := func(v, _ float32) bool { return v > threshold }
	return FindClusters(f, threshold, Greater, Never, above)
}

type span struct{ x1, x2, y int }

// scanFill grows whole horizontal runs instead of single pixels. For a run
// [x1, x2] on row y, every 8-connected neighbour on rows y±1 lies in
// [x1-1, x2+1], so only that window is scanned for new runs.
func scanFill(f *region.Field, sx, sy int, seedValue float32, same Predicate, claimed []bool) Cluster {
	inside := func(x, y int) bool {
		if x < 0 || x >= f.W || y < 0 || y >= f.H {
			return false
		}
		i := y*f.W + x
		return !claimed[i] && same(f.Values[i], seedValue)
	}

	var cluster Cluster
	fillRun := func(x, y int) (int, int) {
		l, r := x, x
		for inside(l-1, y) {
			l--
		}
		for inside(r+1, y) {
			r++
		}
		for i := l; i <= r; i++ {
			claimed[y*f.W+i] = true
			cluster = append(cluster, region.TilePos{X: int32(i), Y: int32(y)})
		}
		return l, r
	}

	l, r := fillRun(sx, sy)
	stack := []span{{l, r, sy}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, ny := range [2]int{s.y - 1, s.y + 1} {
			if ny < 0 || ny >= f.H {
				continue
			}
			end := min(s.x2+1, f.W-1)
			for x := max(s.x1-1, 0); x <= end; x++ {
				if !inside(x, ny) {
					continue
				}
				a, b := fillRun(x, ny)
				stack = append(stack, span{a, b, ny})
				x = b
			}
		}
	}
	return cluster
}
