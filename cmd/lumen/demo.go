package main

import (
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
	"github.com/taigrr/lumen/pkg/render"
)

const (
	floorSize   = 4.0
	floorHeight = -1.0
)

// buildDemo fills r's scene with a checkered floor and a cube, and aims the
// camera at them. override, when set, replaces the cube's edge texture.
func buildDemo(r *render.Renderer, opts *options, override render.Texture) {
	floor := newFloor(floorSize, floorHeight)
	cube := newCube(0.8)

	squares := opts.checker
	if squares == 0 {
		squares = 0.5
	}
	fi := r.Scene.Add(floor)
	r.SetTexture(fi, render.CheckerTexture{
		First:      opts.surface,
		Second:     opts.alt,
		SquareSize: squares,
	})

	var cubeTex render.Texture = render.EdgeTexture{
		Name:  "cube",
		Inner: opts.surface,
		Edge:  opts.alt,
		Width: 0.05,
	}
	if override != nil {
		cubeTex = override
	}
	ci := r.Scene.Add(cube)
	r.SetTexture(ci, cubeTex)

	r.Camera.Orbit(math3d.Zero3(), demoDistance, demoYaw, demoPitch)
}

const (
	demoDistance = 4.5
	demoYaw      = 0.6
	demoPitch    = -0.35
)

// newFloor returns a square facing +Y at height y, with UVs spanning the
// floor in world units.
func newFloor(size, y float64) *models.Mesh {
	m := models.NewMesh("floor")
	h := size / 2
	a := m.AddVertex(models.Vertex{Position: math3d.V3(-h, y, -h), Normal: math3d.Up(), UV: math3d.NewUV(0, 0)})
	b := m.AddVertex(models.Vertex{Position: math3d.V3(-h, y, h), Normal: math3d.Up(), UV: math3d.NewUV(0, size)})
	c := m.AddVertex(models.Vertex{Position: math3d.V3(h, y, h), Normal: math3d.Up(), UV: math3d.NewUV(size, size)})
	d := m.AddVertex(models.Vertex{Position: math3d.V3(h, y, -h), Normal: math3d.Up(), UV: math3d.NewUV(size, 0)})
	// Indices come from AddVertex, so these cannot fail.
	_, _ = m.AddTriangle(a, b, c)
	_, _ = m.AddTriangle(a, c, d)
	m.CalculateBounds()
	return m
}

// newCube returns an axis-aligned cube of the given edge length centered at
// the origin, with outward faces and per-face UVs.
func newCube(size float64) *models.Mesh {
	m := models.NewMesh("cube")
	h := size / 2

	axes := [3]math3d.Vec3{math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1)}
	for i, n := range axes {
		u := axes[(i+1)%3]
		v := axes[(i+2)%3]
		for _, s := range [2]float64{1, -1} {
			normal := n.Scale(s)
			center := normal.Scale(h)
			corner := func(cu, cv float64) int {
				p := center.Add(u.Scale(cu * h)).Add(v.Scale(cv * h))
				return m.AddVertex(models.Vertex{
					Position: p,
					Normal:   normal,
					UV:       math3d.NewUV((cu+1)/2, (cv+1)/2),
				})
			}
			a := corner(-1, -1)
			b := corner(1, -1)
			c := corner(1, 1)
			d := corner(-1, 1)
			// u × v = n, so (a, b, c) winds outward on the positive face.
			if s > 0 {
				_, _ = m.AddTriangle(a, b, c)
				_, _ = m.AddTriangle(a, c, d)
			} else {
				_, _ = m.AddTriangle(a, c, b)
				_, _ = m.AddTriangle(a, d, c)
			}
		}
	}
	m.CalculateBounds()
	return m
}
