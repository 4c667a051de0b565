// Package models provides mesh geometry and model loading for lumen.
package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

var (
	// ErrIndexOutOfRange is returned when a triangle references a vertex the
	// mesh does not have.
	ErrIndexOutOfRange = errors.New("vertex index out of range")

	// ErrNoGeometry is returned when a loaded model has no triangles.
	ErrNoGeometry = errors.New("model has no triangle geometry")
)

// Mesh owns a contiguous vertex buffer and the triangles that index into
// it.
type Mesh struct {
	Name      string
	Vertices  []Vertex
	Triangles []Triangle
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Material is the surface description read from a model file.
type Material struct {
	Name      string
	BaseColor math3d.Albedo // Linear base color
	Texture   int           // Index of the base color image (-1 for none)
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Vertices:  make([]Vertex, 0),
		Triangles: make([]Triangle, 0),
	}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v Vertex) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddTriangle appends a triangle over vertices a, b and c (in winding
// order) with no material and returns its index.
func (m *Mesh) AddTriangle(a, b, c int) (int, error) {
	return m.AddTriangleWithMaterial(a, b, c, -1)
}

// AddTriangleWithMaterial appends a triangle using material index mat.
func (m *Mesh) AddTriangleWithMaterial(a, b, c, mat int) (int, error) {
	for _, i := range [3]int{a, b, c} {
		if i < 0 || i >= len(m.Vertices) {
			return -1, fmt.Errorf("triangle %d: index %d of %d vertices: %w",
				len(m.Triangles), i, len(m.Vertices), ErrIndexOutOfRange)
		}
	}

	t := Triangle{
		V:        [3]int{a, b, c},
		Material: mat,
		mesh:     m,
	}
	t.normal = faceNormal(m.Vertices[a].Position, m.Vertices[b].Position, m.Vertices[c].Position)
	m.Triangles = append(m.Triangles, t)
	return len(m.Triangles) - 1, nil
}

// Triangle returns triangle i.
func (m *Mesh) Triangle(i int) Triangle {
	return m.Triangles[i]
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// MaterialCount returns the number of materials.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}

// GetTriangleMaterial returns the material index for triangle i.
// Returns -1 if the triangle has no material or i is out of range.
func (m *Mesh) GetTriangleMaterial(i int) int {
	if i < 0 || i >= len(m.Triangles) {
		return -1
	}
	return m.Triangles[i].Material
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// recomputeNormals refreshes every cached face normal from the current
// vertex positions.
func (m *Mesh) recomputeNormals() {
	for i := range m.Triangles {
		t := &m.Triangles[i]
		t.normal = faceNormal(
			m.Vertices[t.V[0]].Position,
			m.Vertices[t.V[1]].Position,
			m.Vertices[t.V[2]].Position,
		)
	}
}

// CalculateSmoothNormals sets each vertex normal to the area-weighted
// average of the face normals around it.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	// Unnormalized face normals weight by area
	for _, t := range m.Triangles {
		for _, vi := range t.V {
			m.Vertices[vi].Normal.AddAssign(t.normal)
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal.Normalize()
	}
}

// Transform applies a transformation matrix to all vertices. Normals use
// the inverse transpose of the linear part. Cached face normals and bounds
// are recomputed, since triangles must never hold a stale normal.
func (m *Mesh) Transform(mat math3d.Mat4) {
	normalMat := mat.NormalMatrix()
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulPoint(m.Vertices[i].Position)
		m.Vertices[i].Normal = normalMat.MulVec3(m.Vertices[i].Normal).Normalized()
	}
	m.recomputeNormals()
	m.CalculateBounds()
}

// FitUnitCube centers the mesh on the origin and scales it so its largest
// dimension is size.
func (m *Mesh) FitUnitCube(size float64) {
	m.CalculateBounds()
	dims := m.Size()
	maxDim := math.Max(dims.X, math.Max(dims.Y, dims.Z))
	if maxDim <= 0 {
		return
	}
	scale := size / maxDim
	m.Transform(math3d.ScaleUniform(scale).Mul(math3d.Translate(m.Center().Negate())))
}

// Clone creates a deep copy of the mesh. The copy's triangles reference the
// copy's vertices.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]Vertex, len(m.Vertices)),
		Triangles: make([]Triangle, len(m.Triangles)),
		Materials: make([]Material, len(m.Materials)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Triangles, m.Triangles)
	copy(clone.Materials, m.Materials)
	for i := range clone.Triangles {
		clone.Triangles[i].mesh = clone
	}
	return clone
}
