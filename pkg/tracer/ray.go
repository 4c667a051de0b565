// Package tracer intersects rays with triangle meshes.
package tracer

import (
	"fmt"

	"github.com/taigrr/lumen/pkg/math3d"
)

// RayKind tags what a ray is used for. Only camera rays are back-face
// culled.
type RayKind uint8

const (
	Camera     RayKind = iota // Primary ray from the eye
	Shadow                    // Ray toward a light
	Reflection                // Mirror bounce
	Refraction                // Transmission through a surface
)

// String returns the lowercase kind name.
func (k RayKind) String() string {
	switch k {
	case Camera:
		return "camera"
	case Shadow:
		return "shadow"
	case Reflection:
		return "reflection"
	case Refraction:
		return "refraction"
	default:
		return fmt.Sprintf("RayKind(%d)", uint8(k))
	}
}

// Ray is a half-line with an immutable kind.
type Ray struct {
	Origin    math3d.Vec3
	Direction math3d.Vec3

	kind RayKind
}

// NewRay creates a ray of the given kind.
func NewRay(kind RayKind, origin, direction math3d.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, kind: kind}
}

// Kind returns the ray's kind.
func (r Ray) Kind() RayKind {
	return r.kind
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) math3d.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Spawn creates a secondary ray of kind from p, nudged along dir by bias so
// it does not re-hit the surface it leaves.
func Spawn(kind RayKind, p, dir math3d.Vec3, bias float64) Ray {
	return NewRay(kind, p.Add(dir.Scale(bias)), dir)
}

// String formats the ray as "<kind> ray <origin> -> <direction>".
func (r Ray) String() string {
	return fmt.Sprintf("%s ray %v -> %v", r.kind, r.Origin, r.Direction)
}
