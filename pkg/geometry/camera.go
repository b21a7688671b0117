package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrDegenerateCamera is returned for camera configurations that cannot form a view basis
var ErrDegenerateCamera = errors.New("degenerate camera")

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center core.Vec3 // Camera position
	LookAt core.Vec3 // Point the camera looks at
	Up     core.Vec3 // Up direction (need not be orthogonal to the view direction)
	VFov   float64   // Vertical field of view in degrees, in (0, 180)
	Width  int       // Image width in pixels
	Height int       // Image height in pixels
}

// DefaultCameraConfig returns a camera at (0,0,5) looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center: core.NewVec3(0, 0, 5),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   45.0,
		Width:  400,
		Height: 300,
	}
}

// AspectRatio returns width / height
func (c CameraConfig) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// Validate reports configuration errors that would produce degenerate rays
func (c CameraConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: resolution %dx%d must be positive", ErrDegenerateCamera, c.Width, c.Height)
	}
	if !(c.VFov > 0 && c.VFov < 180) {
		return fmt.Errorf("%w: vertical field of view %v must be in (0, 180) degrees", ErrDegenerateCamera, c.VFov)
	}
	if !c.Center.IsFinite() || !c.LookAt.IsFinite() || !c.Up.IsFinite() {
		return fmt.Errorf("%w: non-finite position, look-at or up vector", ErrDegenerateCamera)
	}
	view := c.Center.Subtract(c.LookAt).Normalize()
	if view.IsZero() {
		return fmt.Errorf("%w: look-at point coincides with the camera position", ErrDegenerateCamera)
	}
	if c.Up.Cross(view).Normalize().IsZero() {
		return fmt.Errorf("%w: up vector is parallel to the view direction", ErrDegenerateCamera)
	}
	return nil
}

// Camera generates primary rays for rendering. It is immutable once created.
type Camera struct {
	config CameraConfig

	origin     core.Vec3
	u, v, w    core.Vec3 // Right, up and backward unit vectors
	halfWidth  float64   // Image plane half extents at unit distance
	halfHeight float64
}

// NewCamera creates a camera from configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	halfHeight := math.Tan(config.VFov * math.Pi / 180.0 / 2.0)

	return &Camera{
		config:     config,
		origin:     config.Center,
		u:          u,
		v:          v,
		w:          w,
		halfHeight: halfHeight,
		halfWidth:  halfHeight * config.AspectRatio(),
	}, nil
}

// RayForPixel returns the primary ray through pixel (px, py) at sub-pixel offset (jx, jy) in [0,1).
// Row 0 is the top of the image; (0.5, 0.5) is the pixel center.
func (c *Camera) RayForPixel(px, py int, jx, jy float64) core.Ray {
	sx := 2*(float64(px)+jx)/float64(c.config.Width) - 1
	sy := 1 - 2*(float64(py)+jy)/float64(c.config.Height)

	direction := c.w.Negate().
		Add(c.u.Multiply(sx * c.halfWidth)).
		Add(c.v.Multiply(sy * c.halfHeight))

	return core.NewRay(c.origin, direction)
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.config.Width
}

// Height returns the image height in pixels
func (c *Camera) Height() int {
	return c.config.Height
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetCameraForward returns the unit viewing direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// Origin returns the camera position
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	return result
}
