package material

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material describes how a surface responds to light under the Phong model and
// how much of a ray continues as reflection or transmission.
// Materials are shared by pointer between shapes and are never modified while rendering.
type Material struct {
	Name  string      // Optional label used in logs and errors
	Color ColorSource // Base surface color (solid or textured)

	Ambient   float64 // ka: fraction of the scene ambient light reflected
	Diffuse   float64 // kd: Lambertian coefficient
	Specular  float64 // ks: Phong highlight coefficient
	Shininess float64 // Phong exponent; larger values give tighter highlights

	Reflectivity    float64 // Weight of the mirror-reflected ray, 0..1
	Transparency    float64 // Weight of the transmitted ray, 0..1
	RefractiveIndex float64 // Index of refraction for transmitted rays

	// Fresnel splits the transmitted weight between refraction and reflection
	// using Schlick's approximation instead of a fixed transmission blend.
	Fresnel bool
}

// NewPhong creates an opaque, non-reflective Phong material with a solid color
func NewPhong(color core.Vec3, ambient, diffuse, specular, shininess float64) *Material {
	return NewTexturedPhong(NewSolidColor(color), ambient, diffuse, specular, shininess)
}

// NewTexturedPhong creates an opaque, non-reflective Phong material with a color source
func NewTexturedPhong(color ColorSource, ambient, diffuse, specular, shininess float64) *Material {
	return &Material{
		Color:           color,
		Ambient:         ambient,
		Diffuse:         diffuse,
		Specular:        specular,
		Shininess:       shininess,
		RefractiveIndex: 1.0,
	}
}

// NewDiffuse creates a matte material with a small ambient term and no highlight
func NewDiffuse(color core.Vec3) *Material {
	return NewPhong(color, 0.1, 0.9, 0.0, 1.0)
}

// NewMirror creates a reflective material; reflectivity is clamped to [0, 1]
func NewMirror(color core.Vec3, reflectivity float64) *Material {
	m := NewPhong(color, 0.05, 0.2, 0.8, 200)
	m.Reflectivity = clamp01(reflectivity)
	return m
}

// NewGlass creates a clear transparent material with the given index of refraction
func NewGlass(refractiveIndex, transparency float64) *Material {
	m := NewPhong(core.NewVec3(1, 1, 1), 0.0, 0.05, 0.9, 300)
	m.Transparency = clamp01(transparency)
	m.RefractiveIndex = refractiveIndex
	m.Fresnel = true
	return m
}

// ColorAt returns the surface color at the given texture coordinates and point
func (m *Material) ColorAt(uv core.Vec2, point core.Vec3) core.Vec3 {
	if m.Color == nil {
		return core.NewVec3(1, 1, 1)
	}
	return m.Color.Evaluate(uv, point)
}

// IsReflective reports whether hits on this material spawn a reflected ray
func (m *Material) IsReflective() bool {
	return m.Reflectivity > 0
}

// IsTransparent reports whether hits on this material spawn a transmitted ray
func (m *Material) IsTransparent() bool {
	return m.Transparency > 0
}

// Validate checks that every coefficient lies in its representable range
func (m *Material) Validate() error {
	coefficients := []struct {
		name  string
		value float64
	}{
		{"ambient", m.Ambient},
		{"diffuse", m.Diffuse},
		{"specular", m.Specular},
		{"shininess", m.Shininess},
	}
	for _, c := range coefficients {
		if c.value < 0 || math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("material %q: %s coefficient must be a non-negative number, got %v", m.Name, c.name, c.value)
		}
	}

	if m.Reflectivity < 0 || m.Reflectivity > 1 {
		return fmt.Errorf("material %q: reflectivity must be in [0,1], got %v", m.Name, m.Reflectivity)
	}
	if m.Transparency < 0 || m.Transparency > 1 {
		return fmt.Errorf("material %q: transparency must be in [0,1], got %v", m.Name, m.Transparency)
	}
	if m.IsTransparent() && !(m.RefractiveIndex > 0) {
		return fmt.Errorf("material %q: transparent materials need a positive refractive index, got %v", m.Name, m.RefractiveIndex)
	}
	return nil
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	// Calculate R0 for normal incidence
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
