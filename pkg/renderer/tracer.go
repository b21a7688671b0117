package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// TraceStats counts the rays a tracer has cast
type TraceStats struct {
	PrimaryRays     int64
	SecondaryRays   int64 // Reflection and transmission rays
	ShadowRays      int64
	MaxDepthReached int // Deepest recursion level that was shaded
}

// Add accumulates other into the stats
func (ts *TraceStats) Add(other TraceStats) {
	ts.PrimaryRays += other.PrimaryRays
	ts.SecondaryRays += other.SecondaryRays
	ts.ShadowRays += other.ShadowRays
	ts.MaxDepthReached = max(ts.MaxDepthReached, other.MaxDepthReached)
}

// Tracer follows rays through a scene, recursing for reflection and refraction.
// A Tracer keeps counters and must be used by one goroutine at a time;
// the scene it reads is shared.
type Tracer struct {
	scene    *scene.Scene
	maxDepth int
	stats    TraceStats
}

// NewTracer creates a tracer using the scene's maximum recursion depth
func NewTracer(s *scene.Scene) *Tracer {
	return &Tracer{
		scene:    s,
		maxDepth: s.SamplingConfig.MaxDepth,
	}
}

// TracePrimary traces a ray leaving the camera
func (t *Tracer) TracePrimary(ray core.Ray) core.Vec3 {
	t.stats.PrimaryRays++
	return t.TraceRay(ray, 0)
}

// TraceRay returns the color seen along ray at the given recursion depth.
// Past the maximum depth the background is returned. At the maximum depth the
// surface is still shaded locally, but no further rays are spawned.
func (t *Tracer) TraceRay(ray core.Ray, depth int) core.Vec3 {
	if depth > t.maxDepth {
		return t.scene.Background
	}

	hit, ok := t.scene.NearestHit(ray)
	if !ok {
		return t.scene.Background
	}
	t.stats.MaxDepthReached = max(t.stats.MaxDepthReached, depth)

	viewDir := ray.Direction.Negate()
	color := shade(hit, t.scene, viewDir, &t.stats.ShadowRays)

	mat := hit.Material
	if mat == nil || depth >= t.maxDepth {
		return color
	}

	reflectOrigin := hit.Point.Add(hit.Normal.Multiply(core.Epsilon))
	reflectDir := core.Reflect(ray.Direction, hit.Normal)

	var reflected core.Vec3
	haveReflected := false
	traceReflected := func() core.Vec3 {
		if !haveReflected {
			t.stats.SecondaryRays++
			reflected = t.TraceRay(core.NewRay(reflectOrigin, reflectDir), depth+1)
			haveReflected = true
		}
		return reflected
	}

	if mat.IsReflective() {
		r := mat.Reflectivity
		color = color.Multiply(1 - r).Add(traceReflected().Multiply(r))
	}

	if mat.IsTransparent() {
		transmitted := t.transmit(ray, hit.Point, hit.Normal, hit.FrontFace, mat, depth, traceReflected)
		tr := mat.Transparency
		color = color.Multiply(1 - tr).Add(transmitted.Multiply(tr))
	}

	return color.Clamp(0, 1)
}

// transmit traces the refracted ray through a transparent surface.
// On total internal reflection the mirrored ray is used instead.
func (t *Tracer) transmit(ray core.Ray, point, normal core.Vec3, frontFace bool, mat *material.Material, depth int, traceReflected func() core.Vec3) core.Vec3 {
	// Entering the surface goes from air into the material, leaving goes back out
	eta := mat.RefractiveIndex
	if frontFace {
		eta = 1.0 / mat.RefractiveIndex
	}

	refractDir, ok := core.Refract(ray.Direction, normal, eta)
	if !ok {
		return traceReflected()
	}

	t.stats.SecondaryRays++
	origin := point.Subtract(normal.Multiply(core.Epsilon))
	transmitted := t.TraceRay(core.NewRay(origin, refractDir), depth+1)

	if !mat.Fresnel {
		return transmitted
	}
	cosTheta := min(1, -ray.Direction.Dot(normal))
	kr := material.Reflectance(cosTheta, eta)
	return traceReflected().Multiply(kr).Add(transmitted.Multiply(1 - kr))
}

// Stats returns the counters accumulated since the last reset
func (t *Tracer) Stats() TraceStats {
	return t.stats
}

// TakeStats returns the accumulated counters and resets them
func (t *Tracer) TakeStats() TraceStats {
	stats := t.stats
	t.stats = TraceStats{}
	return stats
}
