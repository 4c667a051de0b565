package tracer

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
)

// ParallelEpsilon is the smallest |direction·normal| for which a ray is
// treated as crossing a triangle's plane. Below it the ray is parallel and
// misses.
const ParallelEpsilon = 1e-12

// Intersection is a ray hit on a single triangle.
type Intersection struct {
	T        float64
	Point    math3d.Vec3
	Normal   math3d.Vec3 // Face normal, unnormalized
	Bary     math3d.Bary
	UV       math3d.UV
	Triangle models.Triangle
}

// IntersectTriangle intersects the ray with the plane of tri and accepts the
// hit when the plane point lies inside the triangle. Camera rays only hit
// faces whose normal points against them. It reports false when there is
// no hit.
func (r Ray) IntersectTriangle(tri models.Triangle) (Intersection, bool) {
	n := tri.Normal()

	d := r.Direction.Dot(n)
	if math.Abs(d) < ParallelEpsilon {
		return Intersection{}, false
	}
	if r.kind == Camera && d >= 0 {
		return Intersection{}, false
	}

	planeDist := -n.Dot(tri.Position(0))
	t := -(n.Dot(r.Origin) + planeDist) / d
	if t < 0 {
		return Intersection{}, false
	}

	// Overflowing t yields NaN components, which Contains cannot reject.
	p := r.At(t)
	if !p.IsFinite() || !tri.Contains(p) {
		return Intersection{}, false
	}

	bary := tri.Barycentric(p)
	return Intersection{
		T:        t,
		Point:    p,
		Normal:   n,
		Bary:     bary,
		UV:       tri.InterpolateUV(bary),
		Triangle: tri,
	}, true
}
