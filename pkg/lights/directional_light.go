package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DirectionalLight is infinitely far away and only has a direction, like the sun
type DirectionalLight struct {
	Direction core.Vec3 // Unit direction the light travels in
	Color     core.Vec3
}

// NewDirectionalLight creates a light travelling along direction
func NewDirectionalLight(direction, color core.Vec3) *DirectionalLight {
	return &DirectionalLight{Direction: direction.Normalize(), Color: color}
}

// Type returns the light type
func (dl *DirectionalLight) Type() LightType {
	return LightTypeDirectional
}

// Illuminate returns the same direction and color for every point
func (dl *DirectionalLight) Illuminate(point core.Vec3) (LightSample, bool) {
	if dl.Direction.IsZero() {
		return LightSample{}, false
	}
	return LightSample{
		Direction: dl.Direction.Negate(),
		Distance:  math.Inf(1),
		Intensity: dl.Color,
	}, true
}
