package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// CenterSampler always returns 0.5, i.e. the center of the sampled interval
type CenterSampler struct{}

// Get2D returns (0.5, 0.5)
func (CenterSampler) Get2D() Vec2 { return NewVec2(0.5, 0.5) }

// PixelOffset returns the sub-pixel offset in [0,1)² for sample index of count samples.
// A single sample goes through the pixel center. When count is a perfect square the
// pixel is split into a grid and each cell is jittered (stratified sampling); otherwise
// the offset is uniformly jittered over the whole pixel.
func PixelOffset(index, count int, sampler Sampler) Vec2 {
	if count <= 1 {
		return NewVec2(0.5, 0.5)
	}

	jitter := sampler.Get2D()

	n := int(math.Sqrt(float64(count)))
	if n*n != count {
		return jitter
	}

	cellX := index % n
	cellY := (index / n) % n
	cellSize := 1.0 / float64(n)
	return NewVec2(
		(float64(cellX)+jitter.X)*cellSize,
		(float64(cellY)+jitter.Y)*cellSize,
	)
}
