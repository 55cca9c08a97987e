package solver

import "rigcore/internal/skeleton"

// CalculateHybridPose solves one hybrid chain according to its mode.
// IK mode with no solution yields an empty (non-nil) map.
func CalculateHybridPose(hc HybridChain, joints []*skeleton.Point) PoseMap {
	switch hc.Mode {
	case ModeIK:
		poses := SolveIK(hc.IK, joints, DefaultMaxIterations, DefaultTolerance)
		if poses == nil {
			return PoseMap{}
		}
		return poses
	case ModeFK:
		return ApplyFKPose(hc.FK, joints)
	default:
		ik := SolveIK(hc.IK, joints, DefaultMaxIterations, DefaultTolerance)
		fk := ApplyFKPose(hc.FK, joints)
		return BlendIKFK(ik, fk, hc.BlendWeight)
	}
}
