package gen

// Per-stage salts mixed into the master seed, so every stage draws from its
// own sequence regardless of the order stages run in.
const (
	saltTerrain   int64 = 0x7e44a1
	saltCities    int64 = 0x3c17e5
	saltBiomes    int64 = 0x5b10e3
	saltSubBiomes int64 = 0x2d5b1b
)

// stageRNG is a small deterministic LCG. It does not depend on math/rand so
// that a seed draws the same sequence on every Go release.
type stageRNG struct {
	state int64
}

func newStageRNG(seed, salt int64) *stageRNG {
	return &stageRNG{state: seed ^ salt}
}

func (r *stageRNG) next() int64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// nextN returns a value in [0, n). n must be positive.
func (r *stageRNG) nextN(n int) int {
	v := int(r.next()>>33) % n
	if v < 0 {
		v = -v
	}
	return v
}

// float64 returns a value in [0, 1).
func (r *stageRNG) float64() float64 {
	return float64(uint64(r.next())>>11) / (1 << 53)
}

// rangeFloat returns a value in [lo, hi).
func (r *stageRNG) rangeFloat(lo, hi float64) float64 {
	return lo + (hi-lo)*r.float64()
}
