package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"math"
	"os"

	"github.com/nfnt/resize"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
)

// ErrEmptyImage is returned for images with no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// Texture computes the surface color at a point of a triangle given by its
// barycentric coordinates. Implementations hold no mutable state and are
// safe for concurrent use.
type Texture interface {
	Sample(tri models.Triangle, bary math3d.Bary) math3d.Color
}

// AlbedoTexture is a constant color.
type AlbedoTexture struct {
	Name   string
	Albedo math3d.Albedo
}

// Sample returns the constant albedo.
func (t AlbedoTexture) Sample(models.Triangle, math3d.Bary) math3d.Color {
	return math3d.Color(t.Albedo)
}

// EdgeTexture outlines triangles: points whose smallest barycentric
// weight is below Width get the Edge color, the rest get Inner.
type EdgeTexture struct {
	Name  string
	Inner math3d.Color
	Edge  math3d.Color
	Width float64
}

// Sample returns Edge near the triangle's edges and Inner elsewhere.
func (t EdgeTexture) Sample(_ models.Triangle, bary math3d.Bary) math3d.Color {
	if bary.X < t.Width || bary.Y < t.Width || bary.Z < t.Width {
		return t.Edge
	}
	return t.Inner
}

// CheckerTexture alternates two colors on a grid in texture space.
type CheckerTexture struct {
	First      math3d.Color
	Second     math3d.Color
	SquareSize float64
}

// Sample returns First or Second depending on the grid cell of the
// interpolated UV.
func (t CheckerTexture) Sample(tri models.Triangle, bary math3d.Bary) math3d.Color {
	uv := tri.InterpolateUV(bary)
	x := int64(math.Floor(uv.X / t.SquareSize))
	y := int64(math.Floor(uv.Y / t.SquareSize))
	if parity(x) == parity(y) {
		return t.First
	}
	return t.Second
}

// parity returns 0 for even and 1 for odd n, including negative n.
func parity(n int64) int64 {
	return n & 1
}

// BitmapTexture looks up texels of a decoded image. V runs bottom to top.
type BitmapTexture struct {
	Name   string
	Width  int
	Height int
	Pixels []math3d.Color // Row-major, top row first
}

// Sample returns the texel under the interpolated UV. A texture with no
// pixels samples as black.
func (t *BitmapTexture) Sample(tri models.Triangle, bary math3d.Bary) math3d.Color {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		return ColorBlack
	}
	uv := tri.InterpolateUV(bary)
	x := clampIndex(uv.X*float64(t.Width), t.Width)
	y := clampIndex((1-uv.Y)*float64(t.Height), t.Height)
	return t.Pixels[y*t.Width+x]
}

// At returns the texel at (x, y).
func (t *BitmapTexture) At(x, y int) math3d.Color {
	return t.Pixels[y*t.Width+x]
}

// clampIndex truncates f to an index in [0, size-1].
func clampIndex(f float64, size int) int {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f >= float64(size) {
		return size - 1
	}
	return int(f)
}

// LoadBitmapTexture decodes the PNG or JPEG image at path.
func LoadBitmapTexture(path string) (*BitmapTexture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	tex, err := DecodeBitmapTexture(f)
	if err != nil {
		return nil, fmt.Errorf("load texture %s: %w", path, err)
	}
	tex.Name = path
	return tex, nil
}

// DecodeBitmapTexture decodes an image stream.
func DecodeBitmapTexture(r io.Reader) (*BitmapTexture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return BitmapTextureFromImage(img)
}

// BitmapTextureFromImage converts img to [0, 1] colors once, so sampling
// never touches the image again.
func BitmapTextureFromImage(img image.Image) (*BitmapTexture, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyImage
	}

	tex := &BitmapTexture{
		Width:  width,
		Height: height,
		Pixels: make([]math3d.Color, width*height),
	}
	for y := range height {
		for x := range width {
			tex.Pixels[y*width+x] = FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return tex, nil
}

// Thumbnail returns t scaled down with bilinear filtering so neither side
// exceeds maxSize, keeping the aspect ratio. t itself is returned when it
// already fits or maxSize is not positive.
func (t *BitmapTexture) Thumbnail(maxSize int) *BitmapTexture {
	if maxSize <= 0 || (t.Width <= maxSize && t.Height <= maxSize) {
		return t
	}

	img := resize.Thumbnail(uint(maxSize), uint(maxSize), t.image(), resize.Bilinear)
	small, err := BitmapTextureFromImage(img)
	if err != nil {
		return t
	}
	small.Name = t.Name
	return small
}

// image returns the texels as a 16-bit opaque image.
func (t *BitmapTexture) image() *image.RGBA64 {
	img := image.NewRGBA64(image.Rect(0, 0, t.Width, t.Height))
	for i, c := range t.Pixels {
		c = c.Clamp(0, 1)
		img.SetRGBA64(i%t.Width, i/t.Width, color.RGBA64{
			R: uint16(c.X*0xffff + 0.5),
			G: uint16(c.Y*0xffff + 0.5),
			B: uint16(c.Z*0xffff + 0.5),
			A: 0xffff,
		})
	}
	return img
}
