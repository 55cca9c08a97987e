package solver

import "rigcore/internal/mathutil"

// BlendIKFK mixes two pose maps. Weight 0 returns the FK result unchanged
// (also when the IK result is nil), weight 1 returns the IK result.
// In between, positions and per-axis scales interpolate linearly and
// rotations along the shortest arc, over the union of joint ids; a joint
// present on only one side passes through unchanged.
func BlendIKFK(ikResult, fkResult PoseMap, blendWeight float64) PoseMap {
	if blendWeight == 0 {
		return fkResult
	}
	if blendWeight == 1 {
		return ikResult
	}

	out := make(PoseMap, len(ikResult)+len(fkResult))
	for id, fk := range fkResult {
		ik, ok := ikResult[id]
		if !ok {
			out[id] = fk
			continue
		}
		out[id] = Pose{
			X:        mathutil.Lerp(fk.X, ik.X, blendWeight),
			Y:        mathutil.Lerp(fk.Y, ik.Y, blendWeight),
			Rotation: mathutil.LerpAngle(fk.Rotation, ik.Rotation, blendWeight),
			ScaleX:   mathutil.Lerp(fk.ScaleX, ik.ScaleX, blendWeight),
			ScaleY:   mathutil.Lerp(fk.ScaleY, ik.ScaleY, blendWeight),
		}
	}
	for id, ik := range ikResult {
		if _, ok := fkResult[id]; !ok {
			out[id] = ik
		}
	}
	return out
}
