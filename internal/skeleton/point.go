package skeleton

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// Scale is a non-uniform per-axis scale factor.
type Scale struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point is a single skeleton joint in image pixel space.
// Weights maps mesh-vertex ids to influence weights in [0,1].
type Point struct {
	ID       string          `json:"id"`
	X        float64         `json:"x"`
	Y        float64         `json:"y"`
	Name     string          `json:"name,omitempty"`
	ParentID string          `json:"parent_id,omitempty"`
	Rotation float64         `json:"rotation,omitempty"`
	Scale    *Scale          `json:"scale,omitempty"`
	Weights  map[int]float64 `json:"weights,omitempty"`
}

// Index builds an id → point map. Later duplicates win.
func Index(points []*Point) map[string]*Point {
	idx := make(map[string]*Point, len(points))
	for _, p := range points {
		idx[p.ID] = p
	}
	return idx
}

// ChildrenOf returns the direct children of the joint with the given id,
// in input order.
func ChildrenOf(points []*Point, id string) []*Point {
	var out []*Point
	for _, p := range points {
		if p.ParentID == id {
			out = append(out, p)
		}
	}
	return out
}

// DescendantsOf returns every joint below the given id in the hierarchy,
// breadth-first in input order.
func DescendantsOf(points []*Point, id string) []*Point {
	var out []*Point
	frontier := []string{id}
	for len(frontier) > 0 {
		next := frontier[:0:0]
		for _, fid := range frontier {
			for _, c := range ChildrenOf(points, fid) {
				out = append(out, c)
				next = append(next, c.ID)
			}
		}
		frontier = next
	}
	return out
}

// Validate checks the forest invariant: every ParentID references a joint
// in the same set, and no parent chain forms a cycle.
func Validate(points []*Point) error {
	idx := Index(points)
	for _, p := range points {
		if p.ParentID == "" {
			continue
		}
		if _, ok := idx[p.ParentID]; !ok {
			return fmt.Errorf("skeleton: joint %s references missing parent %s", p.ID, p.ParentID)
		}
		// Walk the parent chain; revisiting the start means a cycle.
		seen := map[string]bool{p.ID: true}
		for cur := idx[p.ParentID]; cur != nil; cur = idx[cur.ParentID] {
			if seen[cur.ID] {
				return fmt.Errorf("skeleton: cycle through joint %s", cur.ID)
			}
			seen[cur.ID] = true
			if cur.ParentID == "" {
				break
			}
		}
	}
	return nil
}

// Clone deep-copies a joint set. The solver works on clones so caller-owned
// joints are never written during CCD iteration.
func Clone(points []*Point) []*Point {
	var out []*Point
	if err := deepcopy.Copy(&out, points); err != nil {
		// Points are plain data; a copy failure would mean a broken type,
		// not bad input.
		panic(fmt.Sprintf("skeleton: clone: %v", err))
	}
	return out
}
