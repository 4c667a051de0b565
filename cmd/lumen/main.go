// lumen - CPU ray tracer for triangle meshes
// Renders GLB/GLTF, OBJ, STL or PLY models (or a built-in demo scene) to PPM or PNG, or
// previews them in the terminal.
//
// Preview controls:
//
//	Mouse drag  - Orbit the camera
//	Scroll, +/- - Zoom in/out
//	W/S/A/D     - Pitch and yaw
//	Space       - Random spin
//	H           - Toggle shadows
//	R           - Reset view
//	Esc         - Quit
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/golang/glog"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
	"github.com/taigrr/lumen/pkg/render"
	"github.com/taigrr/lumen/pkg/tracer"
)

var (
	outPath     = flag.String("out", "out.ppm", "Output image path (.ppm or .png)")
	width       = flag.Int("width", 320, "Image width in pixels")
	height      = flag.Int("height", 240, "Image height in pixels")
	texturePath = flag.String("texture", "", "Path to texture image (PNG/JPG) applied to the model")
	textureMax  = flag.Int("texture-max", 1024, "Downscale textures larger than this many pixels per side (0 keeps full size)")
	checker     = flag.Float64("checker", 0, "Checker square size in UV units (0 disables)")
	edge        = flag.Float64("edge", 0, "Edge outline width in barycentric units (0 disables)")
	baseColor   = flag.String("color", "#c8c8c8", "Surface color (albedo, checker and edge inner color)")
	altColor    = flag.String("color2", "#646464", "Second checker color or edge color")
	bgColor     = flag.String("bg", "#1e1e28", "Background color")
	fovDegrees  = flag.Float64("fov", 60, "Vertical field of view in degrees")
	shadows     = flag.Bool("shadows", true, "Trace shadow rays")
	workers     = flag.Int("workers", 0, "Rows rendered in parallel (0 = GOMAXPROCS)")
	interactive = flag.Bool("interactive", false, "Preview in the terminal instead of writing a file")
	targetFPS   = flag.Int("fps", 30, "Target FPS for the interactive preview")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "lumen - CPU ray tracer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: lumen [options] [model.glb|.gltf|.obj|.stl|.ply]\n\n")
		fmt.Fprintf(os.Stderr, "Without a model a built-in demo scene is rendered.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	defer glog.Flush()

	modelPath := flag.Arg(0)

	if err := run(modelPath); err != nil {
		glog.Flush()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	modelPath   string
	surface     math3d.Color
	alt         math3d.Color
	background  math3d.Color
	checker     float64
	edge        float64
	texturePath string
	textureMax  int
	fov         float64
}

func parseOptions(modelPath string) (*options, error) {
	opts := &options{
		modelPath:   modelPath,
		checker:     *checker,
		edge:        *edge,
		texturePath: *texturePath,
		textureMax:  *textureMax,
		fov:         *fovDegrees * math.Pi / 180,
	}

	var err error
	if opts.surface, err = render.ParseColor(*baseColor); err != nil {
		return nil, fmt.Errorf("-color: %w", err)
	}
	if opts.alt, err = render.ParseColor(*altColor); err != nil {
		return nil, fmt.Errorf("-color2: %w", err)
	}
	if opts.background, err = render.ParseColor(*bgColor); err != nil {
		return nil, fmt.Errorf("-bg: %w", err)
	}
	if opts.checker < 0 || opts.edge < 0 {
		return nil, fmt.Errorf("-checker and -edge must not be negative")
	}
	if opts.fov <= 0 || opts.fov >= math.Pi {
		return nil, fmt.Errorf("-fov %v out of range (0, 180)", *fovDegrees)
	}
	return opts, nil
}

// surfaceTexture returns the texture the flags ask for, or nil when the
// model's own materials should be used.
func (o *options) surfaceTexture() (render.Texture, error) {
	switch {
	case o.texturePath != "":
		tex, err := render.LoadBitmapTexture(o.texturePath)
		if err != nil {
			return nil, err
		}
		glog.Infof("Loaded texture %s (%dx%d)", o.texturePath, tex.Width, tex.Height)
		return tex.Thumbnail(o.textureMax), nil
	case o.checker > 0:
		return render.CheckerTexture{First: o.surface, Second: o.alt, SquareSize: o.checker}, nil
	case o.edge > 0:
		return render.EdgeTexture{Name: "edge", Inner: o.surface, Edge: o.alt, Width: o.edge}, nil
	}
	return nil, nil
}

// buildScene loads the model (or the demo scene) and returns a configured
// renderer.
func buildScene(opts *options) (*render.Renderer, error) {
	scene := tracer.NewScene()
	cam := render.NewCamera()
	cam.FOV = opts.fov
	r := render.NewRenderer(scene, cam)
	r.Background = opts.background

	override, err := opts.surfaceTexture()
	if err != nil {
		return nil, err
	}

	if opts.modelPath == "" {
		buildDemo(r, opts, override)
		return r, nil
	}

	mesh, images, err := loadModel(opts.modelPath, opts.textureMax)
	if err != nil {
		return nil, err
	}
	mesh.FitUnitCube(2)
	glog.Infof("Loaded %s (%d vertices, %d triangles, %d materials)",
		filepath.Base(opts.modelPath), mesh.VertexCount(), mesh.TriangleCount(), mesh.MaterialCount())

	i := scene.Add(mesh)
	r.SetMaterialTextures(i, render.MaterialTextures(mesh, images))
	if override != nil {
		r.SetTexture(i, override)
	}

	cam.Orbit(math3d.Zero3(), demoDistance, demoYaw, demoPitch)
	return r, nil
}

// loadModel loads a model file. GLB/GLTF images are decoded and scaled to
// at most maxTexture pixels per side; undecodable images are skipped with a
// warning.
func loadModel(path string, maxTexture int) (*models.Mesh, map[int]*render.BitmapTexture, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
	case ".obj", ".stl", ".ply":
		mesh, err := models.LoadMesh(path)
		if err != nil {
			return nil, nil, fmt.Errorf("load model: %w", err)
		}
		return mesh, nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported format: %s (use .glb, .gltf, .obj, .stl or .ply)", ext)
	}

	mesh, encoded, err := models.LoadGLTFWithTextures(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load model: %w", err)
	}

	images := make(map[int]*render.BitmapTexture, len(encoded))
	for idx, data := range encoded {
		tex, err := render.DecodeBitmapTexture(bytes.NewReader(data))
		if err != nil {
			glog.Warningf("Skipping embedded image %d: %v", idx, err)
			continue
		}
		tex.Name = fmt.Sprintf("%s#%d", filepath.Base(path), idx)
		images[idx] = tex.Thumbnail(maxTexture)
	}
	return mesh, images, nil
}

func run(modelPath string) error {
	opts, err := parseOptions(modelPath)
	if err != nil {
		return err
	}

	r, err := buildScene(opts)
	if err != nil {
		return err
	}
	r.Shadows = *shadows
	r.Workers = *workers

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *interactive {
		return preview(ctx, r, *targetFPS)
	}
	return renderFile(ctx, r, *outPath, *width, *height)
}

// renderFile renders one frame and writes it to path, picking the format
// from the extension.
func renderFile(ctx context.Context, r *render.Renderer, path string, w, h int) error {
	fb := render.NewFramebuffer(w, h)

	start := time.Now()
	if err := r.Render(ctx, fb); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	glog.Infof("Rendered %dx%d (%d triangles) in %v", w, h, r.Scene.TriangleCount(), time.Since(start))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		if err := fb.SavePNG(path); err != nil {
			return fmt.Errorf("save png: %w", err)
		}
	case ".ppm", "":
		if err := fb.SavePPM(path); err != nil {
			return fmt.Errorf("save ppm: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s (use .ppm or .png)", filepath.Ext(path))
	}

	glog.Infof("Wrote %s", path)
	return nil
}
