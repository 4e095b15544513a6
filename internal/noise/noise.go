package noise

import (
	perlin "github.com/aquilax/go-perlin"
)

// Perlin shape parameters. Two octaves of smoothing with three
// sub-octaves gives the rolling terrain look without visible lattice
// artifacts at chunk scale.
const (
	alpha = 2.0
	beta  = 2.0
	n     = 3
)

// Layer is one octave of 2D terrain noise. An ordered list of layers
// sums into a height field.
type Layer struct {
	Seed      int64   `json:"seed"`
	Frequency float64 `json:"frequency"`
	Amplitude float64 `json:"amplitude"`
}

// Sampler is a deterministic coherent-noise field. It is immutable after
// construction and safe for concurrent sampling, but background tasks
// should still build their own from a config snapshot so a live parameter
// edit never reaches in-flight work.
type Sampler struct {
	p    *perlin.Perlin
	freq float64
}

// NewSampler builds a sampler for the given seed and frequency. A zero
// frequency is permitted and yields a constant zero field.
func NewSampler(seed int64, frequency float64) *Sampler {
	return &Sampler{
		p:    perlin.NewPerlin(alpha, beta, n, seed),
		freq: frequency,
	}
}

// Sample2D returns a value in [-1, 1] for the given world coordinates.
func (s *Sampler) Sample2D(x, z float64) float64 {
	if s.freq == 0 {
		return 0
	}
	return clamp(s.p.Noise2D(x*s.freq, z*s.freq), -1, 1)
}

// Sample3D returns a value in [-1, 1] for the given world coordinates.
func (s *Sampler) Sample3D(x, y, z float64) float64 {
	if s.freq == 0 {
		return 0
	}
	return clamp(s.p.Noise3D(x*s.freq, y*s.freq, z*s.freq), -1, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
