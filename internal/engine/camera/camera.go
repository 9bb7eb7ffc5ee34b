// Package camera provides the orbit camera used to view a replay.
package camera

import (
	gomath "math"

	"github.com/Faultbox/printsim/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from center
	Pitch    float32 // Vertical angle, radians
	Yaw      float32 // Horizontal angle, radians

	// Projection
	FOV       float32 // Vertical field of view, degrees
	NearPlane float32
	FarPlane  float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a camera at position looking at target.
func NewOrbitCamera(position, target math.Vec3, fov float32) *OrbitCamera {
	c := &OrbitCamera{
		Center:          target,
		FOV:             fov,
		NearPlane:       0.1,
		FarPlane:        2000,
		MinDistance:     1,
		MaxDistance:     1000,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}

	offset := position.Sub(target)
	c.Distance = offset.Length()
	if c.Distance > 0 {
		c.Pitch = float32(gomath.Asin(float64(offset.Y / c.Distance)))
		c.Yaw = float32(gomath.Atan2(float64(offset.X), float64(offset.Z)))
	}
	if c.FOV <= 0 {
		c.FOV = 45
	}
	return c
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	pitch, yaw := float64(c.Pitch), float64(c.Yaw)
	offset := math.Vec3{
		X: c.Distance * float32(gomath.Cos(pitch)*gomath.Sin(yaw)),
		Y: c.Distance * float32(gomath.Sin(pitch)),
		Z: c.Distance * float32(gomath.Cos(pitch)*gomath.Cos(yaw)),
	}
	return c.Center.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for a viewport aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	fov := c.FOV * gomath.Pi / 180
	return math.Perspective(fov, aspect, c.NearPlane, c.FarPlane)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection(aspect float32) math.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity
	c.Pitch = clamp(c.Pitch, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on a bounding box and backs off far enough
// to see all of it.
func (c *OrbitCamera) FitToBounds(lo, hi math.Vec3) {
	c.Center = lo.Add(hi).Scale(0.5)

	radius := hi.Sub(lo).Length() / 2
	half := float64(c.FOV) * gomath.Pi / 360
	c.Distance = clamp(radius/float32(gomath.Sin(half)), c.MinDistance, c.MaxDistance)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
