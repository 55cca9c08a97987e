package mesh

import (
	"image"
	"math"

	"rigcore/internal/mathutil"
)

// alphaThreshold is the mask cutoff: alpha above this value is "inside".
const alphaThreshold = 128

// inside reports whether the mask pixel at (x, y) is part of the shape.
// Out-of-range coordinates are outside, never a fault.
func inside(mask *image.NRGBA, x, y int) bool {
	if mask == nil {
		return false
	}
	b := mask.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return false
	}
	return mask.Pix[mask.PixOffset(x, y)+3] > alphaThreshold
}

// Generate rasterizes a part mask into a deformable triangle mesh.
//
// Interior vertices sit on a regular grid whose spacing is derived from
// vertexDensity (clamped to [5, 50] pixels); a grid sample is kept only when
// its pixel lies inside the mask. When edgeSmoothing is set, boundary pixels
// (inside with at least one 4-connected neighbor outside) become extra
// vertices at 1px granularity, in an id namespace of their own.
//
// Triangulation is per grid cell: cells with all four corner vertices
// present are split into two triangles along the diagonal; cells missing a
// corner contribute none, so concave boundaries stay under-triangulated.
func Generate(width, height int, vertexDensity float64, mask *image.NRGBA, edgeSmoothing bool) Mesh {
	spacing := mathutil.Clamp(100/vertexDensity, 5, 50)

	cols := int(math.Ceil(float64(width)/spacing)) + 1
	rows := int(math.Ceil(float64(height)/spacing)) + 1

	var verts []Vertex
	grid := make(map[[2]int]int) // (col, row) → vertex id

	for iy := 0; iy < rows; iy++ {
		for ix := 0; ix < cols; ix++ {
			px := float64(ix) * spacing
			py := float64(iy) * spacing
			if !inside(mask, int(px), int(py)) {
				continue
			}
			id := iy*cols + ix
			grid[[2]int{ix, iy}] = id
			verts = append(verts, Vertex{
				ID: id,
				X:  px,
				Y:  py,
				U:  px / float64(width),
				V:  py / float64(height),
			})
		}
	}

	if edgeSmoothing {
		// Edge pass at 1px granularity; ids start past the grid namespace.
		edgeID := cols * rows
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !inside(mask, x, y) {
					continue
				}
				if inside(mask, x-1, y) && inside(mask, x+1, y) &&
					inside(mask, x, y-1) && inside(mask, x, y+1) {
					continue
				}
				verts = append(verts, Vertex{
					ID: edgeID,
					X:  float64(x),
					Y:  float64(y),
					U:  float64(x) / float64(width),
					V:  float64(y) / float64(height),
				})
				edgeID++
			}
		}
	}

	var tris []Triangle
	for iy := 0; iy < rows-1; iy++ {
		for ix := 0; ix < cols-1; ix++ {
			tl, okTL := grid[[2]int{ix, iy}]
			tr, okTR := grid[[2]int{ix + 1, iy}]
			bl, okBL := grid[[2]int{ix, iy + 1}]
			br, okBR := grid[[2]int{ix + 1, iy + 1}]
			if !okTL || !okTR || !okBL || !okBR {
				continue
			}
			tris = append(tris, Triangle{A: tl, B: tr, C: bl})
			tris = append(tris, Triangle{A: tr, B: bl, C: br})
		}
	}

	return Mesh{
		Vertices:  verts,
		Triangles: tris,
		Bounds:    computeBounds(verts),
	}
}
