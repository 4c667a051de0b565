package tracer

import (
	"math"

	"github.com/taigrr/lumen/pkg/models"
)

// Hit is the nearest intersection found in a Scene.
type Hit struct {
	Intersection
	Mesh int // Index of the hit mesh in the scene
}

// Scene is a read-only set of meshes. Build it once, then trace from any
// number of goroutines.
type Scene struct {
	meshes []*models.Mesh
	bounds []AABB
}

// NewScene creates a scene over meshes. The meshes must not be modified
// while the scene is in use.
func NewScene(meshes ...*models.Mesh) *Scene {
	s := &Scene{}
	for _, m := range meshes {
		s.Add(m)
	}
	return s
}

// Add appends a mesh and returns its index.
func (s *Scene) Add(m *models.Mesh) int {
	s.meshes = append(s.meshes, m)
	s.bounds = append(s.bounds, MeshBounds(m))
	return len(s.meshes) - 1
}

// Mesh returns mesh i.
func (s *Scene) Mesh(i int) *models.Mesh {
	return s.meshes[i]
}

// MeshCount returns the number of meshes.
func (s *Scene) MeshCount() int {
	return len(s.meshes)
}

// TriangleCount returns the number of triangles across all meshes.
func (s *Scene) TriangleCount() int {
	n := 0
	for _, m := range s.meshes {
		n += m.TriangleCount()
	}
	return n
}

// Intersect returns the hit with the smallest T. Meshes whose bounds the
// ray misses are skipped.
func (s *Scene) Intersect(r Ray) (Hit, bool) {
	best := Hit{Mesh: -1}
	best.T = math.Inf(1)

	for mi, m := range s.meshes {
		if !s.bounds[mi].Hit(r, best.T) {
			continue
		}
		for i := range m.Triangles {
			isect, ok := r.IntersectTriangle(m.Triangles[i])
			if ok && isect.T < best.T {
				best = Hit{Intersection: isect, Mesh: mi}
			}
		}
	}

	return best, best.Mesh >= 0
}

// Occluded reports whether anything blocks r closer than maxT.
func (s *Scene) Occluded(r Ray, maxT float64) bool {
	for mi, m := range s.meshes {
		if !s.bounds[mi].Hit(r, maxT) {
			continue
		}
		for i := range m.Triangles {
			if isect, ok := r.IntersectTriangle(m.Triangles[i]); ok && isect.T < maxT {
				return true
			}
		}
	}
	return false
}
