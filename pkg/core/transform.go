package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// singularTolerance is the determinant magnitude below which a transform cannot be inverted
const singularTolerance = 1e-12

// Transform maps between an object's local space and world space.
// The object is scaled, then rotated about X, Y and Z (in that order), then translated.
type Transform struct {
	Translation     Vec3
	Scale           Vec3
	RotationDegrees Vec3

	objectToWorld mgl64.Mat4
	worldToObject mgl64.Mat4
	normalToWorld mgl64.Mat4 // inverse transpose of objectToWorld
	valid         bool
}

// IdentityTransform returns a transform that leaves every point unchanged
func IdentityTransform() Transform {
	return NewTransform(Vec3{}, NewVec3(1, 1, 1), Vec3{})
}

// NewTransform builds a transform from translation, per-axis scale and rotation in degrees.
// A zero scale component yields a singular transform; Valid reports false for it.
func NewTransform(translation, scale, rotationDegrees Vec3) Transform {
	t := Transform{
		Translation:     translation,
		Scale:           scale,
		RotationDegrees: rotationDegrees,
	}

	scaleMat := mgl64.Scale3D(scale.X, scale.Y, scale.Z)
	rotMat := mgl64.HomogRotate3DZ(mgl64.DegToRad(rotationDegrees.Z)).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(rotationDegrees.Y))).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(rotationDegrees.X)))
	transMat := mgl64.Translate3D(translation.X, translation.Y, translation.Z)

	t.objectToWorld = transMat.Mul4(rotMat).Mul4(scaleMat)

	det := t.objectToWorld.Det()
	if math.Abs(det) < singularTolerance || math.IsNaN(det) {
		return t
	}

	t.worldToObject = t.objectToWorld.Inv()
	t.normalToWorld = t.worldToObject.Transpose()
	t.valid = true
	return t
}

// Valid reports whether the transform is invertible
func (t Transform) Valid() bool {
	return t.valid
}

// PointToWorld maps an object-space point into world space
func (t Transform) PointToWorld(p Vec3) Vec3 {
	return fromVec4(t.objectToWorld.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1}))
}

// PointToObject maps a world-space point into object space
func (t Transform) PointToObject(p Vec3) Vec3 {
	return fromVec4(t.worldToObject.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1}))
}

// DirectionToObject maps a world-space direction into object space without normalizing it
func (t Transform) DirectionToObject(d Vec3) Vec3 {
	return fromVec4(t.worldToObject.Mul4x1(mgl64.Vec4{d.X, d.Y, d.Z, 0}))
}

// NormalToWorld maps an object-space surface normal into world space and normalizes it
func (t Transform) NormalToWorld(n Vec3) Vec3 {
	return fromVec4(t.normalToWorld.Mul4x1(mgl64.Vec4{n.X, n.Y, n.Z, 0})).Normalize()
}

func fromVec4(v mgl64.Vec4) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}
