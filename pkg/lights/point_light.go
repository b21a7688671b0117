package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PointLight emits equally in every direction from a single position.
// Intensity does not fall off with distance.
type PointLight struct {
	Position core.Vec3
	Color    core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, color core.Vec3) *PointLight {
	return &PointLight{Position: position, Color: color}
}

// Type returns the light type
func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Illuminate returns the direction, distance and color of the light at point
func (pl *PointLight) Illuminate(point core.Vec3) (LightSample, bool) {
	toLight := pl.Position.Subtract(point)
	distance := toLight.Length()
	direction := toLight.Normalize()
	if direction.IsZero() {
		return LightSample{}, false
	}

	return LightSample{
		Direction: direction,
		Distance:  distance,
		Intensity: pl.Color,
	}, true
}
