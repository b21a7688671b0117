package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// SpotLight is a point light restricted to a cone.
// Within innerAngle of the axis it shines at full strength; between innerAngle and
// outerAngle it falls off linearly with the angle; beyond outerAngle it is dark.
type SpotLight struct {
	Position  core.Vec3
	Direction core.Vec3 // Unit cone axis
	Color     core.Vec3

	innerAngle float64 // radians
	outerAngle float64 // radians
}

// NewSpotLight creates a spot light. Angles are measured from the cone axis in degrees.
// An outer angle smaller than the inner one is raised to match it (hard edge).
func NewSpotLight(position, direction, color core.Vec3, innerDegrees, outerDegrees float64) *SpotLight {
	inner := max(0, innerDegrees) * math.Pi / 180.0
	outer := max(inner, outerDegrees*math.Pi/180.0)
	return &SpotLight{
		Position:   position,
		Direction:  direction.Normalize(),
		Color:      color,
		innerAngle: inner,
		outerAngle: outer,
	}
}

// Type returns the light type
func (sl *SpotLight) Type() LightType {
	return LightTypeSpot
}

// Illuminate returns the attenuated light color at point, or false outside the cone
func (sl *SpotLight) Illuminate(point core.Vec3) (LightSample, bool) {
	toLight := sl.Position.Subtract(point)
	distance := toLight.Length()
	direction := toLight.Normalize()
	if direction.IsZero() || sl.Direction.IsZero() {
		return LightSample{}, false
	}

	falloff := sl.falloff(direction.Negate())
	if falloff <= 0 {
		return LightSample{}, false
	}

	return LightSample{
		Direction: direction,
		Distance:  distance,
		Intensity: sl.Color.Multiply(falloff),
	}, true
}

// falloff returns the cone attenuation in [0,1] for a unit direction leaving the light
func (sl *SpotLight) falloff(fromLight core.Vec3) float64 {
	cosAngle := max(-1, min(1, fromLight.Dot(sl.Direction)))
	angle := math.Acos(cosAngle)

	if angle <= sl.innerAngle {
		return 1.0
	}
	if angle >= sl.outerAngle {
		return 0.0
	}
	return (sl.outerAngle - angle) / (sl.outerAngle - sl.innerAngle)
}
