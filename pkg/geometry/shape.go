package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T         float64            // Parameter t along the ray
	Point     core.Vec3          // Point of intersection
	Normal    core.Vec3          // Unit surface normal, facing the side the ray came from
	FrontFace bool               // Whether ray hit the outward-facing side
	UV        core.Vec2          // Texture coordinates
	Material  *material.Material // Material of the surface that was hit
	Shape     Shape              // Primitive that produced the hit
}

// SetFaceNormal orients the normal against the ray and records which side was hit.
// outwardNormal must be unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Shape interface for objects that can be hit by rays.
// Hit only reports intersections whose t lies in [ray.MinT(), ray.TMax];
// degenerate input yields (nil, false), never a record with NaN fields.
type Shape interface {
	Hit(ray core.Ray) (*HitRecord, bool)
	NormalAt(point core.Vec3) core.Vec3 // Outward unit normal at a point on the surface
	GetMaterial() *material.Material
	BoundingBox() core.AABB
}
