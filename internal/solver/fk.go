package solver

import "rigcore/internal/skeleton"

// ApplyFKPose returns a pose for every chain joint with the chain's explicit
// rotation (0 when absent) and the joint's current position. FK only sets
// rotation; it does not propagate translation through the hierarchy — that
// is the caller's transform pass.
func ApplyFKPose(chain FKChain, joints []*skeleton.Point) PoseMap {
	idx := skeleton.Index(joints)
	poses := make(PoseMap, len(chain.JointIDs))
	for _, id := range chain.JointIDs {
		p, ok := idx[id]
		if !ok {
			continue
		}
		pose := poseOf(p)
		pose.Rotation = chain.Rotations[id]
		poses[id] = pose
	}
	return poses
}
