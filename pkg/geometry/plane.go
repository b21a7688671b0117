package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// parallelTolerance is the |D·N| below which a ray counts as parallel to a plane
const parallelTolerance = 1e-8

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3          // A point on the plane
	Normal   core.Vec3          // Unit normal; zero for a degenerate plane
	Material *material.Material // Material of the plane

	// In-plane basis used for texture coordinates
	tangent   core.Vec3
	bitangent core.Vec3
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, mat *material.Material) *Plane {
	n := normal.Normalize()
	p := &Plane{
		Point:    point,
		Normal:   n,
		Material: mat,
	}

	// Pick the world axis least aligned with the normal to build the basis
	helper := core.NewVec3(1, 0, 0)
	if math.Abs(n.X) > 0.9 {
		helper = core.NewVec3(0, 1, 0)
	}
	p.tangent = helper.Cross(n).Normalize()
	p.bitangent = n.Cross(p.tangent)
	return p
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray) (*HitRecord, bool) {
	if p.Normal.IsZero() || ray.IsDegenerate() {
		return nil, false
	}

	denominator := ray.Direction.Dot(p.Normal)

	// If denominator is close to zero, ray is parallel to plane (no intersection)
	if math.Abs(denominator) < parallelTolerance {
		return nil, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if !ray.Contains(t) {
		return nil, false
	}

	hitPoint := ray.At(t)
	hitRecord := &HitRecord{
		T:        t,
		Point:    hitPoint,
		Material: p.Material,
		Shape:    p,
	}
	hitRecord.SetFaceNormal(ray, p.Normal)

	local := hitPoint.Subtract(p.Point)
	hitRecord.UV = core.NewVec2(local.Dot(p.tangent), local.Dot(p.bitangent))

	return hitRecord, true
}

// NormalAt returns the plane normal, which is the same everywhere
func (p *Plane) NormalAt(point core.Vec3) core.Vec3 {
	return p.Normal
}

// GetMaterial returns the plane's material
func (p *Plane) GetMaterial() *material.Material {
	return p.Material
}

// BoundingBox returns an unbounded box; planes are never culled
func (p *Plane) BoundingBox() core.AABB {
	return core.InfiniteAABB()
}
