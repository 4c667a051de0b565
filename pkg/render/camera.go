package render

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/tracer"
)

// Camera is a pinhole camera generating camera rays through pixel centers.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation (Euler angles in radians)
	Pitch float64 // Rotation around X axis (look up/down)
	Yaw   float64 // Rotation around Y axis (look left/right)

	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height; 0 derives it from the image size
}

// NewCamera creates a new camera with default settings.
func NewCamera() *Camera {
	return &Camera{
		Position: math3d.V3(0, 0, 3),
		FOV:      math.Pi / 3, // 60 degrees
	}
}

// Forward returns the forward direction vector.
func (c *Camera) Forward() math3d.Vec3 {
	// Forward is -Z in camera space, rotated by yaw and pitch
	return math3d.V3(
		-math.Sin(c.Yaw)*math.Cos(c.Pitch),
		math.Sin(c.Pitch),
		-math.Cos(c.Yaw)*math.Cos(c.Pitch),
	)
}

// Right returns the right direction vector.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.V3(
		math.Cos(c.Yaw),
		0,
		-math.Sin(c.Yaw),
	)
}

// Up returns the up direction vector.
func (c *Camera) Up() math3d.Vec3 {
	return c.Right().Cross(c.Forward())
}

// MoveForward moves the camera forward (or backward if negative).
func (c *Camera) MoveForward(distance float64) {
	c.Position = c.Position.Add(c.Forward().Scale(distance))
}

// Rotate rotates the camera by the given angles (in radians).
func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.Pitch += deltaPitch
	c.Yaw += deltaYaw

	// Clamp pitch to keep Right and Up well defined
	const maxPitch = math.Pi/2 - 0.01
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch))
}

// LookAt makes the camera look at a target point.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalized()

	c.Pitch = math.Asin(dir.Y)
	c.Yaw = math.Atan2(-dir.X, -dir.Z)
}

// Orbit places the camera distance away from target at the given yaw and
// pitch, looking at target.
func (c *Camera) Orbit(target math3d.Vec3, distance, yaw, pitch float64) {
	c.Pitch, c.Yaw = 0, 0
	c.Rotate(pitch, yaw)
	c.Position = target
	c.MoveForward(-distance)
}

// Ray returns the unit-direction camera ray through the center of pixel
// (x, y) of a width×height image. Row 0 is the top of the image.
func (c *Camera) Ray(x, y, width, height int) tracer.Ray {
	aspect := c.AspectRatio
	if aspect == 0 {
		aspect = float64(width) / float64(height)
	}
	h := math.Tan(c.FOV / 2)

	sx := (2*(float64(x)+0.5)/float64(width) - 1) * h * aspect
	sy := (1 - 2*(float64(y)+0.5)/float64(height)) * h

	dir := c.Forward().Add(c.Right().Scale(sx)).Add(c.Up().Scale(sy)).Normalized()
	return tracer.NewRay(tracer.Camera, c.Position, dir)
}
