// Package render turns traced scenes into images.
package render

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Framebuffer is a 2D array of linear, unclamped colors. Colors are only
// quantized on output.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []math3d.Color // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
// For terminal output the height should be 2x the terminal rows, since each
// cell shows two pixels.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]math3d.Color, width*height),
	}
}

// Resize changes the dimensions, reusing the pixel storage when it is large
// enough. Pixel contents are undefined afterwards.
func (fb *Framebuffer) Resize(width, height int) {
	fb.Width = width
	fb.Height = height
	if n := width * height; cap(fb.Pixels) >= n {
		fb.Pixels = fb.Pixels[:n]
	} else {
		fb.Pixels = make([]math3d.Color, n)
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c math3d.Color) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c math3d.Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) math3d.Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return math3d.Color{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// Row returns the pixels of row y. Writers on different rows never share
// memory.
func (fb *Framebuffer) Row(y int) []math3d.Color {
	return fb.Pixels[y*fb.Width : (y+1)*fb.Width]
}

// Quantize returns the display colors of all pixels in row-major order.
func (fb *Framebuffer) Quantize() []PPMColor {
	out := make([]PPMColor, len(fb.Pixels))
	for i, c := range fb.Pixels {
		out[i] = ToDisplayColor(c)
	}
	return out
}

// WritePPM writes the framebuffer as a plain-text (P3) PPM image, one
// "r g b" pixel per line.
func (fb *Framebuffer) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return fmt.Errorf("write ppm header: %w", err)
	}
	for _, c := range fb.Quantize() {
		if _, err := fmt.Fprintln(bw, c); err != nil {
			return fmt.Errorf("write ppm pixel: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write ppm: %w", err)
	}
	return nil
}

// SavePPM writes the framebuffer to a PPM file.
func (fb *Framebuffer) SavePPM(path string) error {
	return saveFile(path, fb.WritePPM)
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, ToDisplayColor(fb.Pixels[y*fb.Width+x]).RGBA())
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	return saveFile(path, func(w io.Writer) error {
		return png.Encode(w, fb.ToImage())
	})
}

func saveFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
