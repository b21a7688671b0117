package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides a uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerSolid is a procedural 3D checkerboard evaluated in world space, so it
// needs no texture coordinates (useful on infinite planes)
type CheckerSolid struct {
	Even, Odd core.Vec3
	Size      float64 // Edge length of one check
}

// NewCheckerSolid creates a 3D checkerboard color source
func NewCheckerSolid(even, odd core.Vec3, size float64) *CheckerSolid {
	return &CheckerSolid{Even: even, Odd: odd, Size: size}
}

// Evaluate picks Even or Odd depending on which cell the point falls in
func (c *CheckerSolid) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if c.Size <= 0 {
		return c.Even
	}
	// Nudge so points lying exactly on an axis plane do not flicker between cells
	const nudge = 1e-6
	sum := math.Floor((point.X+nudge)/c.Size) +
		math.Floor((point.Y+nudge)/c.Size) +
		math.Floor((point.Z+nudge)/c.Size)
	if int64(sum)%2 == 0 {
		return c.Even
	}
	return c.Odd
}
