package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint       LightType = "point"
	LightTypeDirectional LightType = "directional"
	LightTypeSpot        LightType = "spot"
)

// Light interface for sources that contribute direct illumination to a shading point
type Light interface {
	Type() LightType

	// Illuminate returns the light arriving at point.
	// The sample's Direction points FROM the shading point TO the light.
	// It returns false when the light cannot reach the point at all
	// (outside a spot cone, or coincident with the light position).
	Illuminate(point core.Vec3) (LightSample, bool)
}

// LightSample describes the light arriving at a shading point
type LightSample struct {
	Direction core.Vec3 // Unit direction from shading point to light
	Distance  float64   // Distance to light; +Inf for directional lights
	Intensity core.Vec3 // Light color reaching the point
}
