package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Shade computes local Phong illumination at a hit point.
// viewDir is the unit direction from the hit point toward the viewer.
// The ambient term is always added; each light contributes diffuse and specular
// light only when its shadow ray reaches it unobstructed. The result is clamped to [0,1].
func Shade(hit *geometry.HitRecord, s *scene.Scene, viewDir core.Vec3) core.Vec3 {
	return shade(hit, s, viewDir, nil)
}

// shade is Shade with an optional counter of shadow rays cast
func shade(hit *geometry.HitRecord, s *scene.Scene, viewDir core.Vec3, shadowRays *int64) core.Vec3 {
	mat := hit.Material
	if mat == nil {
		return core.Vec3{}
	}
	surfaceColor := mat.ColorAt(hit.UV, hit.Point)

	result := s.Ambient.MultiplyVec(surfaceColor).Multiply(mat.Ambient)

	// Offset along the normal so the shadow ray does not re-hit this surface
	shadowOrigin := hit.Point.Add(hit.Normal.Multiply(core.Epsilon))

	for _, light := range s.Lights {
		sample, ok := light.Illuminate(hit.Point)
		if !ok {
			continue
		}

		nDotL := hit.Normal.Dot(sample.Direction)
		if nDotL <= 0 {
			continue // light is behind the surface
		}

		if shadowRays != nil {
			*shadowRays++
		}
		if s.IsOccluded(shadowOrigin, sample.Direction, sample.Distance) {
			continue
		}

		diffuse := sample.Intensity.MultiplyVec(surfaceColor).Multiply(mat.Diffuse * nDotL)
		result = result.Add(diffuse)

		if mat.Specular > 0 {
			reflected := core.Reflect(sample.Direction.Negate(), hit.Normal)
			rDotV := max(0, reflected.Dot(viewDir))
			specular := sample.Intensity.Multiply(mat.Specular * math.Pow(rDotV, mat.Shininess))
			result = result.Add(specular)
		}
	}

	return result.Clamp(0, 1)
}
