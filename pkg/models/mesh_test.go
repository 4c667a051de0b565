package models

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/lumen/pkg/math3d"
)

func TestAddTriangleOutOfRange(t *testing.T) {
	m := NewMesh("test")
	m.AddVertex(Vertex{})
	m.AddVertex(Vertex{})

	tests := []struct {
		name    string
		a, b, c int
	}{
		{"past end", 0, 1, 2},
		{"negative", -1, 0, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.AddTriangle(tc.a, tc.b, tc.c)
			if !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("err = %v, want ErrIndexOutOfRange", err)
			}
		})
	}
	if m.TriangleCount() != 0 {
		t.Errorf("failed adds left %d triangles behind", m.TriangleCount())
	}
}

// TestTriangleMaterialIndex verifies per-triangle material assignment.
func TestTriangleMaterialIndex(t *testing.T) {
	m, _ := unitTriangle(t)
	m.Materials = []Material{
		{Name: "red", BaseColor: math3d.NewAlbedo(1, 0, 0), Texture: -1},
		{Name: "green", BaseColor: math3d.NewAlbedo(0, 1, 0), Texture: -1},
	}
	if _, err := m.AddTriangleWithMaterial(0, 1, 2, 1); err != nil {
		t.Fatal(err)
	}

	if got := m.GetTriangleMaterial(0); got != -1 {
		t.Errorf("triangle 0 material = %d, want -1", got)
	}
	if got := m.GetTriangleMaterial(1); got != 1 {
		t.Errorf("triangle 1 material = %d, want 1", got)
	}
	if got := m.GetTriangleMaterial(99); got != -1 {
		t.Errorf("out-of-range triangle material = %d, want -1", got)
	}

	if mat := m.GetMaterial(1); mat == nil || mat.Name != "green" {
		t.Errorf("GetMaterial(1) should return 'green' material")
	}
	if mat := m.GetMaterial(-1); mat != nil {
		t.Errorf("GetMaterial(-1) should return nil")
	}
	if mat := m.GetMaterial(99); mat != nil {
		t.Errorf("GetMaterial(99) should return nil for out-of-bounds")
	}
	if m.MaterialCount() != 2 {
		t.Errorf("MaterialCount = %d, want 2", m.MaterialCount())
	}
}

func TestMeshTransformRecomputesNormals(t *testing.T) {
	m, _ := unitTriangle(t)

	// A quarter turn about X takes the +Z normal to -Y.
	m.Transform(math3d.RotateX(math.Pi / 2))

	n := m.Triangle(0).UnitNormal()
	if n.Sub(math3d.V3(0, -1, 0)).Len() > 1e-9 {
		t.Errorf("normal after rotation = %v, want (0, -1, 0)", n)
	}

	m.Transform(math3d.ScaleUniform(2))
	if got := m.Triangle(0).Area(); math.Abs(got-2) > 1e-9 {
		t.Errorf("area after scaling by 2 = %v, want 2", got)
	}
	if got := m.Size(); math.Abs(got.X-2) > 1e-9 {
		t.Errorf("bounds not refreshed: size = %v", got)
	}
}

func TestMeshSmoothNormals(t *testing.T) {
	m := NewMesh("tent")
	// Two faces meeting at a ridge along the Y axis.
	m.AddVertex(Vertex{Position: math3d.V3(0, 0, 0)})
	m.AddVertex(Vertex{Position: math3d.V3(0, 1, 0)})
	m.AddVertex(Vertex{Position: math3d.V3(-1, 0, -1)})
	m.AddVertex(Vertex{Position: math3d.V3(1, 0, -1)})
	if _, err := m.AddTriangle(0, 1, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := m.AddTriangle(0, 3, 1); err != nil {
		t.Fatal(err)
	}

	m.CalculateSmoothNormals()

	// The ridge normal is the average of both faces: straight up +Z.
	n := m.Vertices[0].Normal
	if n.Sub(math3d.V3(0, 0, 1)).Len() > 1e-9 {
		t.Errorf("ridge normal = %v, want (0, 0, 1)", n)
	}
	if math.Abs(m.Vertices[2].Normal.Len()-1) > 1e-9 {
		t.Errorf("vertex normal not unit length: %v", m.Vertices[2].Normal)
	}
}

func TestMeshFitUnitCube(t *testing.T) {
	m := NewMesh("box")
	m.AddVertex(Vertex{Position: math3d.V3(10, 10, 10)})
	m.AddVertex(Vertex{Position: math3d.V3(14, 10, 10)})
	m.AddVertex(Vertex{Position: math3d.V3(10, 12, 10)})
	if _, err := m.AddTriangle(0, 1, 2); err != nil {
		t.Fatal(err)
	}

	m.FitUnitCube(2)

	if c := m.Center(); c.Len() > 1e-9 {
		t.Errorf("center = %v, want origin", c)
	}
	if s := m.Size(); math.Abs(s.X-2) > 1e-9 || math.Abs(s.Y-1) > 1e-9 {
		t.Errorf("size = %v, want (2, 1, 0)", s)
	}
}

// TestMeshClonePreservesMaterials verifies Clone copies materials and
// rebinds triangles to the copy.
func TestMeshClonePreservesMaterials(t *testing.T) {
	m, _ := unitTriangle(t)
	m.Materials = []Material{{Name: "mat1", BaseColor: math3d.NewAlbedo(1, 0, 0), Texture: -1}}
	m.Triangles[0].Material = 0

	clone := m.Clone()

	if clone.MaterialCount() != m.MaterialCount() {
		t.Errorf("Clone should have %d materials, got %d", m.MaterialCount(), clone.MaterialCount())
	}

	clone.Materials[0].Name = "modified"
	if m.Materials[0].Name == "modified" {
		t.Errorf("Clone should have independent material copy")
	}

	if clone.GetTriangleMaterial(0) != 0 {
		t.Errorf("Clone should preserve triangle material indices")
	}

	if clone.Triangle(0).Mesh() != clone {
		t.Error("cloned triangle still references the original mesh")
	}

	clone.Transform(math3d.Translate(math3d.V3(5, 0, 0)))
	if got := m.Triangle(0).Position(0); got != math3d.V3(0, 0, 0) {
		t.Errorf("transforming the clone moved the original: %v", got)
	}
	if got := clone.Triangle(0).Position(0); got != math3d.V3(5, 0, 0) {
		t.Errorf("clone vertex = %v, want (5, 0, 0)", got)
	}
}
