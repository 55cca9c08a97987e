// Package preview renders diagnostic wireframes of meshes and joint
// hierarchies. Output is for visual QA of tool runs, not for the editor's
// own rendering path.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"rigcore/internal/mesh"
	"rigcore/internal/skeleton"
)

var (
	edgeColor   = color.NRGBA{80, 200, 255, 255}
	vertexColor = color.NRGBA{255, 255, 255, 255}
	boneColor   = color.NRGBA{255, 160, 60, 255}
	jointColor  = color.NRGBA{255, 240, 200, 255}
)

// RenderMesh draws the mesh wireframe onto a transparent canvas.
// Rendered at 2x and downscaled for smoother lines.
func RenderMesh(m mesh.Mesh, width, height int) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, width*2, height*2))

	byID := make(map[int]mesh.Vertex, len(m.Vertices))
	for _, v := range m.Vertices {
		byID[v.ID] = v
	}

	for _, t := range m.Triangles {
		a, okA := byID[t.A]
		b, okB := byID[t.B]
		c, okC := byID[t.C]
		if !okA || !okB || !okC {
			continue
		}
		drawLine(canvas, int(a.X*2), int(a.Y*2), int(b.X*2), int(b.Y*2), edgeColor)
		drawLine(canvas, int(b.X*2), int(b.Y*2), int(c.X*2), int(c.Y*2), edgeColor)
		drawLine(canvas, int(c.X*2), int(c.Y*2), int(a.X*2), int(a.Y*2), edgeColor)
	}
	for _, v := range m.Vertices {
		plot(canvas, int(v.X*2), int(v.Y*2), vertexColor)
	}

	return downscale(canvas, width, height)
}

// RenderJoints draws joints and their parent links.
func RenderJoints(points []*skeleton.Point, width, height int) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, width*2, height*2))

	idx := skeleton.Index(points)
	for _, p := range points {
		if parent, ok := idx[p.ParentID]; ok && p.ParentID != "" {
			drawLine(canvas, int(p.X*2), int(p.Y*2), int(parent.X*2), int(parent.Y*2), boneColor)
		}
	}
	for _, p := range points {
		x, y := int(p.X*2), int(p.Y*2)
		for dy := -2; dy <= 2; dy++ {
			for dx := -2; dx <= 2; dx++ {
				plot(canvas, x+dx, y+dy, jointColor)
			}
		}
	}

	return downscale(canvas, width, height)
}

// WriteWebP encodes the image to a WebP file.
func WriteWebP(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: create %s: %w", path, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("preview: encode %s: %w", path, err)
	}
	return nil
}

func downscale(src *image.NRGBA, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func plot(img *image.NRGBA, x, y int, c color.NRGBA) {
	if !(image.Point{x, y}).In(img.Bounds()) {
		return
	}
	img.SetNRGBA(x, y, c)
}

// drawLine plots a Bresenham line between two points.
func drawLine(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(img, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
