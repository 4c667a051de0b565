package tracer

import (
	"math"
	"testing"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
)

// quadAt returns a two-triangle unit quad in the plane z = z, facing +Z.
func quadAt(t *testing.T, name string, z float64) *models.Mesh {
	t.Helper()
	m := models.NewMesh(name)
	m.AddVertex(models.Vertex{Position: math3d.V3(-1, -1, z)})
	m.AddVertex(models.Vertex{Position: math3d.V3(1, -1, z)})
	m.AddVertex(models.Vertex{Position: math3d.V3(1, 1, z)})
	m.AddVertex(models.Vertex{Position: math3d.V3(-1, 1, z)})
	for _, tri := range [][3]int{{0, 1, 2}, {0, 2, 3}} {
		if _, err := m.AddTriangle(tri[0], tri[1], tri[2]); err != nil {
			t.Fatal(err)
		}
	}
	m.CalculateBounds()
	return m
}

func TestSceneNearestHit(t *testing.T) {
	far := quadAt(t, "far", -5)
	near := quadAt(t, "near", -2)
	s := NewScene(far, near)

	if s.MeshCount() != 2 || s.TriangleCount() != 4 {
		t.Fatalf("scene has %d meshes, %d triangles", s.MeshCount(), s.TriangleCount())
	}

	hit, ok := s.Intersect(NewRay(Camera, math3d.V3(0.3, 0.1, 0), math3d.V3(0, 0, -1)))
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Mesh != 1 || s.Mesh(hit.Mesh) != near {
		t.Errorf("hit mesh %d, want the near quad", hit.Mesh)
	}
	if math.Abs(hit.T-2) > 1e-12 {
		t.Errorf("T = %v, want 2", hit.T)
	}
}

func TestSceneMiss(t *testing.T) {
	s := NewScene(quadAt(t, "quad", -2))

	tests := []struct {
		name string
		ray  Ray
	}{
		{"beside", NewRay(Camera, math3d.V3(3, 0, 0), math3d.V3(0, 0, -1))},
		{"away", NewRay(Camera, math3d.V3(0, 0, 0), math3d.V3(0, 0, 1))},
		{"back face", NewRay(Camera, math3d.V3(0, 0, -4), math3d.V3(0, 0, 1))},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if hit, ok := s.Intersect(tc.ray); ok {
				t.Errorf("unexpected hit at t=%v", hit.T)
			}
		})
	}

	if _, ok := NewScene().Intersect(NewRay(Camera, math3d.Zero3(), math3d.V3(0, 0, -1))); ok {
		t.Error("empty scene reported a hit")
	}
}

func TestSceneOccluded(t *testing.T) {
	s := NewScene(quadAt(t, "blocker", 1))
	up := math3d.V3(0, 0, 1)

	// Shadow rays see the quad from behind.
	if !s.Occluded(NewRay(Shadow, math3d.Zero3(), up), 10) {
		t.Error("blocker between origin and light should occlude")
	}
	if s.Occluded(NewRay(Shadow, math3d.Zero3(), up), 0.5) {
		t.Error("blocker beyond maxT should not occlude")
	}
	if s.Occluded(NewRay(Shadow, math3d.V3(5, 0, 0), up), 10) {
		t.Error("ray beside the blocker should not be occluded")
	}
}

func TestAABBHit(t *testing.T) {
	box := AABB{Min: math3d.V3(-1, -1, -1), Max: math3d.V3(1, 1, 1)}

	tests := []struct {
		name string
		ray  Ray
		tMax float64
		want bool
	}{
		{"through", NewRay(Camera, math3d.V3(0, 0, 5), math3d.V3(0, 0, -1)), math.Inf(1), true},
		{"inside", NewRay(Camera, math3d.Zero3(), math3d.V3(1, 0, 0)), math.Inf(1), true},
		{"too short", NewRay(Camera, math3d.V3(0, 0, 5), math3d.V3(0, 0, -1)), 3, false},
		{"behind", NewRay(Camera, math3d.V3(0, 0, 5), math3d.V3(0, 0, 1)), math.Inf(1), false},
		{"parallel outside", NewRay(Camera, math3d.V3(2, 0, 5), math3d.V3(0, 0, -1)), math.Inf(1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := box.Hit(tc.ray, tc.tMax); got != tc.want {
				t.Errorf("Hit = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSpawnOffsetsOrigin(t *testing.T) {
	r := Spawn(Shadow, math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), 1e-3)
	if r.Kind() != Shadow {
		t.Errorf("Kind = %v, want shadow", r.Kind())
	}
	if r.Origin != math3d.V3(1, 1e-3, 0) {
		t.Errorf("Origin = %v", r.Origin)
	}
}
