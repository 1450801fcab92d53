package tracer

import "math/rand"

// Sampler produces the pseudorandom stream that drives every sampling
// decision along a path. Each pixel gets its own sampler so render workers
// never share one; the type is not safe for concurrent use.
type Sampler struct {
	rng *rand.Rand
}

// Create a sampler seeded for one pixel.
func NewSampler(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Get a uniform sample in [0, 1).
func (s *Sampler) Get1D() float64 {
	return s.rng.Float64()
}

// Get two independent uniform samples in [0, 1).
func (s *Sampler) Get2D() (float64, float64) {
	u1 := s.rng.Float64()
	u2 := s.rng.Float64()
	return u1, u2
}
