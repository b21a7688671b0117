package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Transformed places a shape defined in its own object space into the world.
// Rays are mapped into object space, intersected there, and the hit is mapped back.
type Transformed struct {
	Shape     Shape
	Transform core.Transform
	bbox      core.AABB
}

// NewTransformed wraps shape with transform
func NewTransformed(shape Shape, transform core.Transform) *Transformed {
	t := &Transformed{Shape: shape, Transform: transform}
	t.bbox = t.worldBounds()
	return t
}

// Hit tests the wrapped shape against the ray taken into object space
func (tr *Transformed) Hit(ray core.Ray) (*HitRecord, bool) {
	if !tr.Transform.Valid() || ray.IsDegenerate() {
		return nil, false
	}

	direction := tr.Transform.DirectionToObject(ray.Direction)
	scale := direction.Length()
	if scale < 1e-12 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return nil, false
	}

	// A unit step along the world ray covers scale units in object space.
	// The interval is built directly so the world epsilon is not applied twice.
	objectRay := core.Ray{
		Origin:    tr.Transform.PointToObject(ray.Origin),
		Direction: direction.Multiply(1 / scale),
		TMin:      ray.MinT() * scale,
		TMax:      ray.TMax * scale,
	}

	hit, ok := tr.Shape.Hit(objectRay)
	if !ok {
		return nil, false
	}

	t := hit.T / scale
	if !ray.Contains(t) {
		return nil, false
	}

	// The inverse transpose keeps the normal on the same side of the ray
	normal := tr.Transform.NormalToWorld(hit.Normal)
	if normal.IsZero() {
		return nil, false
	}

	return &HitRecord{
		T:         t,
		Point:     ray.At(t),
		Normal:    normal,
		FrontFace: hit.FrontFace,
		UV:        hit.UV,
		Material:  hit.Material,
		Shape:     tr,
	}, true
}

// NormalAt returns the outward world-space normal at a world-space point
func (tr *Transformed) NormalAt(point core.Vec3) core.Vec3 {
	if !tr.Transform.Valid() {
		return core.Vec3{}
	}
	local := tr.Shape.NormalAt(tr.Transform.PointToObject(point))
	return tr.Transform.NormalToWorld(local)
}

// GetMaterial returns the wrapped shape's material
func (tr *Transformed) GetMaterial() *material.Material {
	return tr.Shape.GetMaterial()
}

// BoundingBox returns the world-space bounds of the transformed shape
func (tr *Transformed) BoundingBox() core.AABB {
	return tr.bbox
}

func (tr *Transformed) worldBounds() core.AABB {
	local := tr.Shape.BoundingBox()
	if !tr.Transform.Valid() || !local.Min.IsFinite() || !local.Max.IsFinite() {
		return core.InfiniteAABB()
	}

	corners := make([]core.Vec3, 0, 8)
	for i := 0; i < 8; i++ {
		corner := local.Min
		if i&1 != 0 {
			corner.X = local.Max.X
		}
		if i&2 != 0 {
			corner.Y = local.Max.Y
		}
		if i&4 != 0 {
			corner.Z = local.Max.Z
		}
		corners = append(corners, tr.Transform.PointToWorld(corner))
	}
	return core.NewAABBFromPoints(corners...)
}
