package mesh

// Optimize reduces vertex count to roughly (1 - 0.1*level) of the original
// by uniform-stride subsampling, then regroups the surviving vertices into
// consecutive triples as triangles. This is a deliberate placeholder
// strategy carried over from the source behavior: it is not curvature-aware
// and does not preserve the original triangulation. level = 0, or a vertex
// count already at or below target, is a no-op.
func Optimize(m Mesh, level int) Mesh {
	if level <= 0 {
		return m
	}
	n := len(m.Vertices)
	target := int(float64(n) * (1 - 0.1*float64(level)))
	if target < 3 {
		target = 3
	}
	if n <= target {
		return m
	}

	stride := n / target
	if stride < 1 {
		stride = 1
	}

	kept := make([]Vertex, 0, target)
	for i := 0; i < n && len(kept) < target; i += stride {
		kept = append(kept, m.Vertices[i])
	}

	tris := make([]Triangle, 0, len(kept)/3)
	for i := 0; i+2 < len(kept); i += 3 {
		tris = append(tris, Triangle{A: kept[i].ID, B: kept[i+1].ID, C: kept[i+2].ID})
	}

	return Mesh{
		Vertices:  kept,
		Triangles: tris,
		Bounds:    computeBounds(kept),
	}
}
