package solver

import (
	"gonum.org/v1/gonum/spatial/r2"

	"rigcore/internal/skeleton"
)

// Default solve parameters, used by the hybrid dispatcher.
const (
	DefaultMaxIterations = 100
	DefaultTolerance     = 1.0
)

// Mode selects how a hybrid chain is solved.
type Mode string

const (
	ModeIK     Mode = "ik"
	ModeFK     Mode = "fk"
	ModeHybrid Mode = "hybrid"
)

// IKChain is an ordered joint run from root to end-effector with a 2D target.
type IKChain struct {
	ID       string   `json:"id"`
	Name     string   `json:"name,omitempty"`
	JointIDs []string `json:"joint_ids"`
	Target   r2.Vec   `json:"target"`
	Weight   float64  `json:"weight"`
	Active   bool     `json:"active"`
}

// FKChain carries explicit per-joint rotations over the same joint run.
type FKChain struct {
	ID        string             `json:"id"`
	Name      string             `json:"name,omitempty"`
	JointIDs  []string           `json:"joint_ids"`
	Rotations map[string]float64 `json:"rotations"`
}

// HybridChain pairs an IK and an FK chain over the same joint ids.
// BlendWeight 0 is pure FK, 1 is pure IK. The solver never validates that
// the two chains reference identical joint sequences; mismatched chains
// blend incoherently but do not fail.
type HybridChain struct {
	ID          string  `json:"id"`
	Name        string  `json:"name,omitempty"`
	IK          IKChain `json:"ik"`
	FK          FKChain `json:"fk"`
	BlendWeight float64 `json:"blend_weight"`
	Mode        Mode    `json:"mode"`
}

// Pose is one joint's solved transform.
type Pose struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
	ScaleX   float64 `json:"scale_x"`
	ScaleY   float64 `json:"scale_y"`
}

// PoseMap holds solved poses keyed by joint id.
type PoseMap map[string]Pose

// poseOf reads a joint's current transform as a Pose. Scale defaults to 1.
func poseOf(p *skeleton.Point) Pose {
	pose := Pose{X: p.X, Y: p.Y, Rotation: p.Rotation, ScaleX: 1, ScaleY: 1}
	if p.Scale != nil {
		pose.ScaleX = p.Scale.X
		pose.ScaleY = p.Scale.Y
	}
	return pose
}

// NewDefaultHybridChain builds matched IK/FK chains over the given joints:
// zero FK rotations, target at the origin, blend weight 0.5, hybrid mode.
func NewDefaultHybridChain(name string, jointIDs []string, endEffectorID string) HybridChain {
	// The end effector is the last chain entry; append it when missing.
	if n := len(jointIDs); n == 0 || jointIDs[n-1] != endEffectorID {
		jointIDs = append(append([]string(nil), jointIDs...), endEffectorID)
	}

	rotations := make(map[string]float64, len(jointIDs))
	for _, id := range jointIDs {
		rotations[id] = 0
	}
	return HybridChain{
		ID:   name,
		Name: name,
		IK: IKChain{
			ID:       name + "_ik",
			Name:     name,
			JointIDs: jointIDs,
			Target:   r2.Vec{},
			Weight:   1,
			Active:   true,
		},
		FK: FKChain{
			ID:        name + "_fk",
			Name:      name,
			JointIDs:  jointIDs,
			Rotations: rotations,
		},
		BlendWeight: 0.5,
		Mode:        ModeHybrid,
	}
}
