package models

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fogleman/fauxgl"
	"github.com/taigrr/lumen/pkg/math3d"
)

// LoadMesh loads a model file, picking the loader from its extension.
// GLTF and GLB go through GLTFLoader; OBJ, STL and PLY are parsed by fauxgl.
func LoadMesh(path string) (*Mesh, error) {
	var (
		fm  *fauxgl.Mesh
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		return LoadGLB(path)
	case ".obj":
		fm, err = fauxgl.LoadOBJ(path)
	case ".stl":
		fm, err = fauxgl.LoadSTL(path)
	case ".ply":
		fm, err = fauxgl.LoadPLY(path)
	default:
		return nil, fmt.Errorf("unsupported format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}

	return fromFauxGL(filepath.Base(path), fm)
}

type fauxglKey struct {
	position, normal, texture fauxgl.Vector
}

// fromFauxGL converts fauxgl's triangle soup into an indexed mesh, sharing
// vertices whose attributes match exactly. Vertex normals are generated
// when the file has none.
func fromFauxGL(name string, fm *fauxgl.Mesh) (*Mesh, error) {
	if len(fm.Triangles) == 0 {
		return nil, fmt.Errorf("load %s: %w", name, ErrNoGeometry)
	}

	mesh := NewMesh(name)
	index := make(map[fauxglKey]int)
	hasNormals := false

	vertex := func(v fauxgl.Vertex) int {
		key := fauxglKey{v.Position, v.Normal, v.Texture}
		if i, ok := index[key]; ok {
			return i
		}
		if v.Normal != (fauxgl.Vector{}) {
			hasNormals = true
		}
		i := mesh.AddVertex(Vertex{
			Position: math3d.V3(v.Position.X, v.Position.Y, v.Position.Z),
			Normal:   math3d.V3(v.Normal.X, v.Normal.Y, v.Normal.Z),
			UV:       math3d.NewUV(v.Texture.X, v.Texture.Y),
		})
		index[key] = i
		return i
	}

	for _, t := range fm.Triangles {
		a, b, c := vertex(t.V1), vertex(t.V2), vertex(t.V3)
		if _, err := mesh.AddTriangle(a, b, c); err != nil {
			return nil, err
		}
	}

	if !hasNormals {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()
	return mesh, nil
}
