// Package noise provides seeded continuous 2D noise rescaled to [0, 1].
package noise

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Backend names accepted by New.
const (
	OpenSimplex = "opensimplex"
	Perlin      = "perlin"
)

// Sampler returns a deterministic value in [0, 1] for a 2D point.
// Implementations are read-only after construction and safe for concurrent use.
type Sampler interface {
	Sample(x, y float64) float32
}

// New returns the sampler for the named backend. An empty name selects OpenSimplex.
func New(backend string, seed int64) (Sampler, error) {
	switch backend {
	case "", OpenSimplex:
		return NewOpenSimplex(seed), nil
	case Perlin:
		return NewPerlin(seed), nil
	default:
		return nil, fmt.Errorf("unknown noise backend %q", backend)
	}
}

// OpenSimplexSampler wraps an open-simplex noise field.
type OpenSimplexSampler struct {
	noise opensimplex.Noise
}

// NewOpenSimplex creates an OpenSimplex sampler from a seed.
func NewOpenSimplex(seed int64) *OpenSimplexSampler {
	return &OpenSimplexSampler{noise: opensimplex.New(seed)}
}

// Sample rescales the signed [-1, 1] noise to [0, 1].
func (s *OpenSimplexSampler) Sample(x, y float64) float32 {
	return rescale(s.noise.Eval2(x, y))
}

// PerlinSampler wraps a layered Perlin noise field.
type PerlinSampler struct {
	noise *perlin.Perlin
}

// Perlin layering: alpha is the amplitude falloff, beta the frequency gain.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
)

// NewPerlin creates a Perlin sampler from a seed.
func NewPerlin(seed int64) *PerlinSampler {
	return &PerlinSampler{noise: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}
}

// Sample rescales the signed Perlin output to [0, 1].
func (s *PerlinSampler) Sample(x, y float64) float32 {
	return rescale(s.noise.Noise2D(x, y))
}

func rescale(v float64) float32 {
	r := 0.5 + v/2
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return float32(r)
}
