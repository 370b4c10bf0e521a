package gen

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/OCharnyshevich/regiongen/pkg/region"
)

// Placement is the outcome of one constrained placement run.
type Placement struct {
	Points []region.ZoneCoord
	// Spaced counts the leading Points accepted under the spacing rule. Any
	// points after them were drawn by the unconstrained fill.
	Spaced int
}

// place picks count points from candidates by rejection sampling with a
// minimum spacing. Each slot draws random remaining candidates, up to
// maxAttempts of them, accepting the first one whose distance to every placed
// point exceeds minDistance; rejected candidates leave the pool for the rest
// of the spacing pass. A slot that runs out of attempts is skipped. Rejected
// candidates then return to the pool and any shortfall is filled by plain
// random draws, so exactly count points come back.
//
// candidates is never modified. count > len(candidates) fails with
// ErrInsufficientSpace.
func place(candidates []region.ZoneCoord, count int, minDistance float32, maxAttempts int, rng *stageRNG, log *slog.Logger) (Placement, error) {
	if count < 0 {
		return Placement{}, fmt.Errorf("place %d points: %w", count, region.ErrInvalidConfig)
	}
	if count > len(candidates) {
		return Placement{}, fmt.Errorf("place %d points among %d candidates: %w", count, len(candidates), region.ErrInsufficientSpace)
	}

	pool := slices.Clone(candidates)
	var tried, placed []region.ZoneCoord

	for slot := range count {
		accepted := false
		for range maxAttempts {
			if len(pool) == 0 {
				log.Warn("placement pool exhausted", "slot", slot)
				break
			}
			i := rng.nextN(len(pool))
			c := pool[i]
			pool = slices.Delete(pool, i, i+1)

			if nearest(c, placed) > float64(minDistance) {
				placed = append(placed, c)
				accepted = true
				break
			}
			tried = append(tried, c)
		}
		if !accepted {
			log.Debug("placement slot skipped", "slot", slot, "minDistance", minDistance)
		}
	}

	spaced := len(placed)
	pool = append(pool, tried...)
	for len(placed) < count {
		i := rng.nextN(len(pool))
		placed = append(placed, pool[i])
		pool = slices.Delete(pool, i, i+1)
	}

	if spaced < count {
		log.Warn("spacing not satisfied, filled remaining slots at random",
			"requested", count,
			"spaced", spaced,
			"minDistance", minDistance,
		)
	}
	return Placement{Points: placed, Spaced: spaced}, nil
}

// nearest returns the distance from c to the closest of points, or +Inf.
func nearest(c region.ZoneCoord, points []region.ZoneCoord) float64 {
	best := math.Inf(1)
	for _, p := range points {
		best = math.Min(best, zoneDistance(c, p))
	}
	return best
}

func zoneDistance(a, b region.ZoneCoord) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}
