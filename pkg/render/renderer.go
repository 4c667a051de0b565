package render

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
	"github.com/taigrr/lumen/pkg/tracer"
	"golang.org/x/sync/errgroup"
)

// ShadowBias offsets shadow ray origins along the light direction.
const ShadowBias = 1e-4

// Light is a directional light.
type Light struct {
	Direction math3d.Vec3 // Direction toward the light
	Color     math3d.Color
}

// Renderer shades a tracer.Scene through a Camera. The scene, camera and
// textures are read-only while Render runs.
type Renderer struct {
	Scene      *tracer.Scene
	Camera     *Camera
	Light      Light
	Ambient    float64 // Light reaching surfaces facing away or in shadow
	Background math3d.Color
	Shadows    bool
	Workers    int // Rows rendered concurrently; 0 means GOMAXPROCS

	textures  map[int]Texture
	materials map[int][]Texture
}

// NewRenderer creates a renderer with a white key light above and to the
// right of the camera.
func NewRenderer(scene *tracer.Scene, cam *Camera) *Renderer {
	return &Renderer{
		Scene:  scene,
		Camera: cam,
		Light: Light{
			Direction: math3d.V3(0.5, 1, 1).Normalized(),
			Color:     ColorWhite,
		},
		Ambient:    0.15,
		Background: ColorBlack,
		textures:   make(map[int]Texture),
		materials:  make(map[int][]Texture),
	}
}

// SetTexture assigns tex to every triangle of scene mesh i, overriding its
// materials.
func (r *Renderer) SetTexture(mesh int, tex Texture) {
	if r.textures == nil {
		r.textures = make(map[int]Texture)
	}
	r.textures[mesh] = tex
}

// SetMaterialTextures assigns per-material textures to scene mesh i, indexed
// like the mesh's Materials.
func (r *Renderer) SetMaterialTextures(mesh int, texs []Texture) {
	if r.materials == nil {
		r.materials = make(map[int][]Texture)
	}
	r.materials[mesh] = texs
}

// Render traces one camera ray per pixel into fb, a row per task. It stops
// early and returns the context error when ctx is canceled.
func (r *Renderer) Render(ctx context.Context, fb *Framebuffer) error {
	if fb.Width <= 0 || fb.Height <= 0 {
		return fmt.Errorf("render %dx%d: %w", fb.Width, fb.Height, ErrEmptyImage)
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for y := range fb.Height {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := fb.Row(y)
			for x := range row {
				row[x] = r.Trace(r.Camera.Ray(x, y, fb.Width, fb.Height))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Trace returns the shaded color seen along ray, or the background color
// when it hits nothing.
func (r *Renderer) Trace(ray tracer.Ray) math3d.Color {
	hit, ok := r.Scene.Intersect(ray)
	if !ok {
		return r.Background
	}

	albedo := r.texture(hit).Sample(hit.Triangle, hit.Bary)

	n := hit.Triangle.InterpolateNormal(hit.Bary)
	l := r.Light.Direction.Normalized()
	diffuse := math.Max(0, n.Dot(l))

	if diffuse > 0 && r.Shadows {
		shadow := tracer.Spawn(tracer.Shadow, hit.Point, l, ShadowBias)
		if r.Scene.Occluded(shadow, math.Inf(1)) {
			diffuse = 0
		}
	}

	lit := albedo.Mul(r.Light.Color)
	return lit.Scale(r.Ambient).Lerp(lit, diffuse)
}

// texture picks the texture for a hit: the mesh override, then the
// material texture, then the material base color, then white.
func (r *Renderer) texture(hit tracer.Hit) Texture {
	if tex, ok := r.textures[hit.Mesh]; ok {
		return tex
	}
	if texs := r.materials[hit.Mesh]; hit.Triangle.Material >= 0 && hit.Triangle.Material < len(texs) {
		return texs[hit.Triangle.Material]
	}
	mesh := hit.Triangle.Mesh()
	if mat := mesh.GetMaterial(hit.Triangle.Material); mat != nil {
		return AlbedoTexture{Name: mat.Name, Albedo: mat.BaseColor}
	}
	return defaultTexture
}

var defaultTexture Texture = AlbedoTexture{Name: "default", Albedo: math3d.NewAlbedo(1, 1, 1)}

// MaterialTextures builds the texture for each material of m: an image
// from images when the material references one, else its base color.
func MaterialTextures(m *models.Mesh, images map[int]*BitmapTexture) []Texture {
	out := make([]Texture, len(m.Materials))
	for i, mat := range m.Materials {
		if img, ok := images[mat.Texture]; ok && mat.Texture >= 0 {
			out[i] = img
			continue
		}
		out[i] = AlbedoTexture{Name: mat.Name, Albedo: mat.BaseColor}
	}
	return out
}
