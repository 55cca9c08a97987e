package mesh

// Vertex is a deformable mesh vertex. X, Y are image pixel coordinates;
// U, V are normalized texture coordinates in [0,1]. Weights maps joint ids
// to bone influence weights.
type Vertex struct {
	ID      int                `json:"id"`
	X       float64            `json:"x"`
	Y       float64            `json:"y"`
	U       float64            `json:"u"`
	V       float64            `json:"v"`
	Weights map[string]float64 `json:"weights,omitempty"`
}

// Triangle references three vertex ids.
type Triangle struct {
	A int `json:"a"`
	B int `json:"b"`
	C int `json:"c"`
}

// Bounds is the axis-aligned box over all vertices.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Mesh is a triangulated cover of a part mask.
type Mesh struct {
	Vertices  []Vertex   `json:"vertices"`
	Triangles []Triangle `json:"triangles"`
	Bounds    Bounds     `json:"bounds"`
}

// computeBounds derives the bounding box over vertices. Empty vertex sets
// get the zero rectangle.
func computeBounds(verts []Vertex) Bounds {
	if len(verts) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinX: verts[0].X, MinY: verts[0].Y,
		MaxX: verts[0].X, MaxY: verts[0].Y,
	}
	for _, v := range verts[1:] {
		if v.X < b.MinX {
			b.MinX = v.X
		}
		if v.Y < b.MinY {
			b.MinY = v.Y
		}
		if v.X > b.MaxX {
			b.MaxX = v.X
		}
		if v.Y > b.MaxY {
			b.MaxY = v.Y
		}
	}
	return b
}
