// Package preview renders a colored output mesh to a still image.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/philipparndt/surfseg/pkg/output"
	"golang.org/x/image/draw"
)

// Options controls the preview image
type Options struct {
	Size        int     // Output width and height in pixels
	Supersample int     // Render scale before downsampling
	Yaw         float64 // Radians around the vertical axis
	Pitch       float64 // Radians above the horizon
	Background  color.RGBA
	// Edges draws triangle outlines on top of the fill
	Edges bool
}

// DefaultOptions returns a three-quarter view at 800x800
func DefaultOptions() Options {
	return Options{
		Size:        800,
		Supersample: 2,
		Yaw:         math.Pi / 6,
		Pitch:       math.Pi / 8,
		Background:  color.RGBA{R: 26, G: 51, B: 77, A: 255},
	}
}

// Render draws every cell of m, filled with the mean of its vertex colors
// and shaded by how directly the face points at the camera.
func Render(m *output.Mesh, opts Options) *image.RGBA {
	if opts.Size <= 0 {
		opts.Size = DefaultOptions().Size
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}

	size := opts.Size * opts.Supersample
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: opts.Background}, image.Point{}, draw.Src)

	if m.TriangleCount() > 0 {
		rasterize(img, m, opts)
	}

	if opts.Supersample == 1 {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

func rasterize(img *image.RGBA, m *output.Mesh, opts Options) {
	bounds := img.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())

	camera := NewCamera(m.BoundingBox(), opts.Yaw, opts.Pitch)
	forward := camera.Forward()

	zbuffer := make([]float64, bounds.Dx()*bounds.Dy())
	for i := range zbuffer {
		zbuffer[i] = math.Inf(1)
	}

	colors := m.Colors()
	edge := color.RGBA{R: 20, G: 20, B: 20, A: 255}

	for k, cell := range m.Cells() {
		tri := m.Triangle(k)

		var corners [3]screenVertex
		finite := true
		for i, v := range tri.Vertices() {
			x, y, z := camera.Project(v, w, h)
			if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
				finite = false
				break
			}
			corners[i] = screenVertex{x: x, y: y, z: z}
		}
		if !finite {
			continue
		}

		shade := 1.0
		if n := tri.Normal(); n.Length() > 0 {
			shade = 0.35 + 0.65*math.Abs(n.Normalize().Dot(forward))
		}
		col := meanColor(colors[cell[0]], colors[cell[1]], colors[cell[2]], shade)

		fillTriangle(img, zbuffer, corners[0], corners[1], corners[2], col)

		if opts.Edges && onCanvas(corners, w, h) {
			for i := 0; i < 3; i++ {
				p, q := corners[i], corners[(i+1)%3]
				drawLine(img, int(p.x), int(p.y), int(q.x), int(q.y), edge)
			}
		}
	}
}

// onCanvas reports whether all corners are near enough to the image for a
// line walk to stay bounded.
func onCanvas(corners [3]screenVertex, w, h float64) bool {
	for _, c := range corners {
		if c.x < -w || c.x > 2*w || c.y < -h || c.y > 2*h {
			return false
		}
	}
	return true
}

func meanColor(a, b, c output.Color, shade float64) color.RGBA {
	channel := func(x, y, z uint8) uint8 {
		v := (float64(x) + float64(y) + float64(z)) / 3 * shade
		return uint8(math.Min(255, math.Round(v)))
	}
	return color.RGBA{
		R: channel(a.R, b.R, c.R),
		G: channel(a.G, b.G, c.G),
		B: channel(a.B, b.B, c.B),
		A: 255,
	}
}

// Save encodes img as PNG or WebP depending on the extension of path
func Save(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".webp" {
		return fmt.Errorf("unsupported preview format %q (expected .png or .webp)", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if ext == ".webp" {
		err = nativewebp.Encode(f, img, nil)
	} else {
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
