package solver

import (
	"gonum.org/v1/gonum/spatial/r2"

	"rigcore/internal/mathutil"
	"rigcore/internal/skeleton"
)

// SolveIK runs cyclic coordinate descent on the chain and returns the solved
// pose for every chain joint, keyed by joint id. Chains with fewer than two
// resolvable joints have no solution and return nil.
//
// The solve operates on a deep copy of the chain's joints; caller-owned
// joints are never written. Exhausting maxIterations is not a failure — the
// best pose found so far is returned, and callers that need solve-quality
// feedback should compare the end-effector position against the target
// themselves.
func SolveIK(chain IKChain, joints []*skeleton.Point, maxIterations int, tolerance float64) PoseMap {
	if len(chain.JointIDs) < 2 {
		return nil
	}

	work := skeleton.Index(skeleton.Clone(joints))
	links := make([]*skeleton.Point, 0, len(chain.JointIDs))
	for _, id := range chain.JointIDs {
		p, ok := work[id]
		if !ok {
			return nil
		}
		links = append(links, p)
	}

	end := links[len(links)-1]
	for iter := 0; iter < maxIterations; iter++ {
		if mathutil.Dist(r2.Vec{X: end.X, Y: end.Y}, chain.Target) < tolerance {
			break
		}

		// One CCD pass: second-to-last link back to the root. Each step
		// rotates the pivot's downstream links rigidly as a group.
		for i := len(links) - 2; i >= 0; i-- {
			pivot := r2.Vec{X: links[i].X, Y: links[i].Y}
			toEnd := mathutil.AngleTo(pivot, r2.Vec{X: end.X, Y: end.Y})
			toTarget := mathutil.AngleTo(pivot, chain.Target)
			angle := toTarget - toEnd

			for j := i + 1; j < len(links); j++ {
				p := mathutil.RotateAround(r2.Vec{X: links[j].X, Y: links[j].Y}, pivot, angle)
				links[j].X = p.X
				links[j].Y = p.Y
				links[j].Rotation += angle
			}
		}
	}

	poses := make(PoseMap, len(links))
	for _, p := range links {
		poses[p.ID] = poseOf(p)
	}
	return poses
}
