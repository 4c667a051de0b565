package models

import (
	"math"
	"testing"

	"github.com/taigrr/lumen/pkg/math3d"
)

// unitTriangle returns a mesh holding the right triangle (0,0,0), (1,0,0),
// (0,1,0) with UVs equal to the XY positions.
func unitTriangle(t *testing.T) (*Mesh, Triangle) {
	t.Helper()
	m := NewMesh("unit")
	m.AddVertex(Vertex{Position: math3d.V3(0, 0, 0), UV: math3d.NewUV(0, 0)})
	m.AddVertex(Vertex{Position: math3d.V3(1, 0, 0), UV: math3d.NewUV(1, 0)})
	m.AddVertex(Vertex{Position: math3d.V3(0, 1, 0), UV: math3d.NewUV(0, 1)})
	i, err := m.AddTriangle(0, 1, 2)
	if err != nil {
		t.Fatalf("AddTriangle: %v", err)
	}
	return m, m.Triangle(i)
}

func TestTriangleNormalAndArea(t *testing.T) {
	_, tri := unitTriangle(t)

	if got := tri.Normal(); got != math3d.V3(0, 0, 1) {
		t.Errorf("Normal = %v, want (0, 0, 1)", got)
	}
	if got := tri.Area(); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Area = %v, want 0.5", got)
	}
	if tri.Degenerate() {
		t.Error("unit triangle reported degenerate")
	}
}

func TestTriangleWindingFlipsNormal(t *testing.T) {
	m, _ := unitTriangle(t)
	i, err := m.AddTriangle(0, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Triangle(i).Normal(); got != math3d.V3(0, 0, -1) {
		t.Errorf("reversed winding normal = %v, want (0, 0, -1)", got)
	}
}

func TestTriangleContains(t *testing.T) {
	_, tri := unitTriangle(t)

	tests := []struct {
		name string
		p    math3d.Vec3
		want bool
	}{
		{"interior", math3d.V3(0.25, 0.25, 0), true},
		{"vertex 0", math3d.V3(0, 0, 0), true},
		{"vertex 1", math3d.V3(1, 0, 0), true},
		{"vertex 2", math3d.V3(0, 1, 0), true},
		{"edge midpoint", math3d.V3(0.5, 0, 0), true},
		{"hypotenuse midpoint", math3d.V3(0.5, 0.5, 0), true},
		{"just inside", math3d.V3(1e-7, 1e-7, 0), true},
		{"outside past hypotenuse", math3d.V3(0.6, 0.6, 0), false},
		{"outside negative x", math3d.V3(-0.1, 0.5, 0), false},
		{"outside negative y", math3d.V3(0.5, -1e-6, 0), false},
		{"far away", math3d.V3(5, 5, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tri.Contains(tc.p); got != tc.want {
				t.Errorf("Contains(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestTriangleContainsScaleIndependent(t *testing.T) {
	// The same relative point must classify the same way on tiny and huge
	// triangles.
	for _, s := range []float64{1e-4, 1, 1e4} {
		m := NewMesh("scaled")
		m.AddVertex(Vertex{Position: math3d.V3(0, 0, 0)})
		m.AddVertex(Vertex{Position: math3d.V3(s, 0, 0)})
		m.AddVertex(Vertex{Position: math3d.V3(0, s, 0)})
		if _, err := m.AddTriangle(0, 1, 2); err != nil {
			t.Fatal(err)
		}
		tri := m.Triangle(0)
		if !tri.Contains(math3d.V3(0.3*s, 0.3*s, 0)) {
			t.Errorf("scale %g: interior point rejected", s)
		}
		if tri.Contains(math3d.V3(-0.01*s, 0.3*s, 0)) {
			t.Errorf("scale %g: exterior point accepted", s)
		}
	}
}

func TestDegenerateTriangleContainsNothing(t *testing.T) {
	m := NewMesh("line")
	m.AddVertex(Vertex{Position: math3d.V3(0, 0, 0)})
	m.AddVertex(Vertex{Position: math3d.V3(1, 0, 0)})
	m.AddVertex(Vertex{Position: math3d.V3(2, 0, 0)})
	if _, err := m.AddTriangle(0, 1, 2); err != nil {
		t.Fatal(err)
	}
	tri := m.Triangle(0)

	if !tri.Degenerate() {
		t.Error("collinear triangle should be degenerate")
	}
	if tri.Contains(math3d.V3(1, 0, 0)) {
		t.Error("degenerate triangle should contain nothing")
	}
	if got := tri.Barycentric(math3d.V3(1, 0, 0)); got != math3d.NewBary(0, 0, 1) {
		t.Errorf("degenerate Barycentric = %v, want (0, 0, 1)", got)
	}
}

func TestTriangleBarycentric(t *testing.T) {
	_, tri := unitTriangle(t)

	tests := []struct {
		name string
		p    math3d.Vec3
		want math3d.Bary
	}{
		{"interior", math3d.V3(0.25, 0.25, 0), math3d.NewBary(0.25, 0.25, 0.5)},
		{"vertex 0", math3d.V3(0, 0, 0), math3d.NewBary(0, 0, 1)},
		{"vertex 1", math3d.V3(1, 0, 0), math3d.NewBary(1, 0, 0)},
		{"vertex 2", math3d.V3(0, 1, 0), math3d.NewBary(0, 1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tri.Barycentric(tc.p)
			if got.Sub(tc.want).Len() > 1e-9 {
				t.Errorf("Barycentric(%v) = %v, want %v", tc.p, got, tc.want)
			}
			if math.Abs(got.Sum()-1) > 1e-5 {
				t.Errorf("weights sum to %v, want 1", got.Sum())
			}
		})
	}
}

func TestTriangleInterpolateUV(t *testing.T) {
	_, tri := unitTriangle(t)

	// UVs equal the XY positions, so interpolating the barycentric
	// coordinates of a point gives back its XY.
	p := math3d.V3(0.2, 0.7, 0)
	uv := tri.InterpolateUV(tri.Barycentric(p))
	if math.Abs(uv.X-0.2) > 1e-9 || math.Abs(uv.Y-0.7) > 1e-9 {
		t.Errorf("InterpolateUV = %v, want (0.2, 0.7)", uv)
	}

	// u weighs vertex 1, v weighs vertex 2 and w weighs vertex 0.
	if got := tri.InterpolateUV(math3d.NewBary(1, 0, 0)); got != math3d.NewUV(1, 0) {
		t.Errorf("InterpolateUV(1,0,0) = %v, want uv of vertex 1", got)
	}
	if got := tri.InterpolateUV(math3d.NewBary(0, 1, 0)); got != math3d.NewUV(0, 1) {
		t.Errorf("InterpolateUV(0,1,0) = %v, want uv of vertex 2", got)
	}
	if got := tri.InterpolateUV(math3d.NewBary(0, 0, 1)); got != math3d.NewUV(0, 0) {
		t.Errorf("InterpolateUV(0,0,1) = %v, want uv of vertex 0", got)
	}
}

func TestTriangleInterpolateNormalFallback(t *testing.T) {
	_, tri := unitTriangle(t)
	if got := tri.InterpolateNormal(math3d.NewBary(0.3, 0.3, 0.4)); got != math3d.V3(0, 0, 1) {
		t.Errorf("InterpolateNormal without vertex normals = %v, want face normal", got)
	}
}

func TestTriangleBounds(t *testing.T) {
	_, tri := unitTriangle(t)
	lo, hi := tri.Bounds()
	if lo != math3d.V3(0, 0, 0) || hi != math3d.V3(1, 1, 0) {
		t.Errorf("Bounds = %v, %v", lo, hi)
	}
}

func BenchmarkTriangleContains(b *testing.B) {
	m := NewMesh("bench")
	m.AddVertex(Vertex{Position: math3d.V3(0, 0, 0)})
	m.AddVertex(Vertex{Position: math3d.V3(1, 0, 0)})
	m.AddVertex(Vertex{Position: math3d.V3(0, 1, 0)})
	if _, err := m.AddTriangle(0, 1, 2); err != nil {
		b.Fatal(err)
	}
	tri := m.Triangle(0)
	p := math3d.V3(0.25, 0.25, 0)

	for b.Loop() {
		_ = tri.Contains(p)
	}
}
