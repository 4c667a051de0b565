package models

import (
	"github.com/taigrr/lumen/pkg/math3d"
)

// ContainmentEpsilon scales the edge test tolerance in Triangle.Contains.
// The tolerance is relative to the squared face normal length, so it is
// independent of the triangle's size.
const ContainmentEpsilon = 1e-9

// Vertex holds all vertex attributes.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.UV
}

// Triangle references three vertices of a Mesh by index. It never owns the
// vertices; the face normal is cached when the triangle is added and
// recomputed by Mesh.Transform.
type Triangle struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)

	mesh   *Mesh
	normal math3d.Vec3
}

// faceNormal returns (v1 - v0) × (v2 - v0). Its length is twice the area.
func faceNormal(v0, v1, v2 math3d.Vec3) math3d.Vec3 {
	return v1.Sub(v0).Cross(v2.Sub(v0))
}

// Mesh returns the mesh owning the referenced vertices.
func (t Triangle) Mesh() *Mesh {
	return t.mesh
}

// Vertex returns vertex i (0, 1 or 2) of the triangle.
func (t Triangle) Vertex(i int) Vertex {
	return t.mesh.Vertices[t.V[i]]
}

// Position returns the position of vertex i.
func (t Triangle) Position(i int) math3d.Vec3 {
	return t.mesh.Vertices[t.V[i]].Position
}

// Normal returns the cached, unnormalized face normal. Winding order
// v0 -> v1 -> v2 decides its sign.
func (t Triangle) Normal() math3d.Vec3 {
	return t.normal
}

// UnitNormal returns the face normal scaled to unit length.
func (t Triangle) UnitNormal() math3d.Vec3 {
	return t.normal.Normalized()
}

// Area returns the triangle's area.
func (t Triangle) Area() float64 {
	return t.normal.Len() / 2
}

// Degenerate reports whether the triangle has zero area.
func (t Triangle) Degenerate() bool {
	return t.normal.LenSq() == 0
}

// Contains reports whether p, assumed to lie in the triangle's plane, is
// inside the triangle. Each edge is crossed with the vector from its start
// to p and the result is dotted with the face normal; p is outside when any
// of the three values falls below -ContainmentEpsilon·|n|². Points on edges
// and vertices are inside. Degenerate triangles contain nothing.
func (t Triangle) Contains(p math3d.Vec3) bool {
	nn := t.normal.LenSq()
	if nn == 0 {
		return false
	}
	tol := -ContainmentEpsilon * nn

	for i := range 3 {
		a := t.Position(i)
		b := t.Position((i + 1) % 3)
		if b.Sub(a).Cross(p.Sub(a)).Dot(t.normal) < tol {
			return false
		}
	}
	return true
}

// Barycentric returns the weights (u, v, w) of p from unsigned sub-triangle
// area ratios. u weighs vertex 1, v weighs vertex 2 and w = 1-u-v weighs
// vertex 0.
//
// The unsigned ratios drop sign information, so this is only meaningful for
// points Contains already accepted. A degenerate triangle puts all weight on
// vertex 0.
func (t Triangle) Barycentric(p math3d.Vec3) math3d.Bary {
	area := t.normal.Len()
	if area == 0 {
		return math3d.NewBary(0, 0, 1)
	}

	v0 := t.Position(0)
	v0p := p.Sub(v0)
	v0v1 := t.Position(1).Sub(v0)
	v0v2 := t.Position(2).Sub(v0)

	u := v0p.Cross(v0v2).Len() / area
	v := v0v1.Cross(v0p).Len() / area
	return math3d.NewBary(u, v, 1-u-v)
}

// InterpolateUV blends the vertex texture coordinates with barycentric
// weights b: b.X·uv1 + b.Y·uv2 + b.Z·uv0, the pairing Barycentric produces.
func (t Triangle) InterpolateUV(b math3d.Bary) math3d.UV {
	uv := t.Vertex(1).UV.Scale(b.X)
	uv.AddAssign(t.Vertex(2).UV.Scale(b.Y))
	uv.AddAssign(t.Vertex(0).UV.Scale(b.Z))
	return uv
}

// InterpolateNormal blends the vertex normals the same way as
// InterpolateUV and returns the normalized result. Vertices without
// normals fall back to the unit face normal.
func (t Triangle) InterpolateNormal(b math3d.Bary) math3d.Vec3 {
	n := t.Vertex(1).Normal.Scale(b.X)
	n.AddAssign(t.Vertex(2).Normal.Scale(b.Y))
	n.AddAssign(t.Vertex(0).Normal.Scale(b.Z))
	if n.LenSq() == 0 {
		return t.UnitNormal()
	}
	return n.Normalized()
}

// Bounds returns the axis-aligned bounding box of the triangle.
func (t Triangle) Bounds() (min, max math3d.Vec3) {
	min = t.Position(0)
	max = min
	for i := 1; i < 3; i++ {
		min = min.Min(t.Position(i))
		max = max.Max(t.Position(i))
	}
	return min, max
}
