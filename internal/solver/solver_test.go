package solver

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r2"

	"rigcore/internal/mathutil"
	"rigcore/internal/skeleton"
)

func armJoints() []*skeleton.Point {
	return []*skeleton.Point{
		{ID: "shoulder", X: 0, Y: 0},
		{ID: "elbow", X: 10, Y: 0, ParentID: "shoulder"},
		{ID: "wrist", X: 20, Y: 0, ParentID: "elbow"},
	}
}

func armChain(target r2.Vec) IKChain {
	return IKChain{
		ID:       "arm",
		JointIDs: []string{"shoulder", "elbow", "wrist"},
		Target:   target,
		Weight:   1,
		Active:   true,
	}
}

func TestSolveIKTwoJointReachable(t *testing.T) {
	joints := []*skeleton.Point{
		{ID: "root", X: 0, Y: 0},
		{ID: "tip", X: 10, Y: 0, ParentID: "root"},
	}
	chain := IKChain{ID: "c", JointIDs: []string{"root", "tip"}, Target: r2.Vec{X: 0, Y: 10}}

	poses := SolveIK(chain, joints, 100, 1.0)
	if poses == nil {
		t.Fatal("no solution returned")
	}
	tip := poses["tip"]
	if d := math.Hypot(tip.X-0, tip.Y-10); d >= 1.0 {
		t.Errorf("end effector %v from target, want < 1.0", d)
	}
}

func TestSolveIKThreeJointScenario(t *testing.T) {
	joints := armJoints()
	target := r2.Vec{X: 10, Y: 10}

	poses := SolveIK(armChain(target), joints, 100, 1.0)
	if poses == nil {
		t.Fatal("no solution returned")
	}

	wrist := poses["wrist"]
	if d := math.Hypot(wrist.X-target.X, wrist.Y-target.Y); d >= 1.0 {
		t.Errorf("wrist is %v from (10,10), want < 1.0", d)
	}

	// Rigid links: each joint keeps its original distance to its parent.
	shoulder, elbow := poses["shoulder"], poses["elbow"]
	if d := math.Hypot(elbow.X-shoulder.X, elbow.Y-shoulder.Y); math.Abs(d-10) > 1e-9 {
		t.Errorf("shoulder–elbow length %v, want 10", d)
	}
	if d := math.Hypot(wrist.X-elbow.X, wrist.Y-elbow.Y); math.Abs(d-10) > 1e-9 {
		t.Errorf("elbow–wrist length %v, want 10", d)
	}
}

func TestSolveIKDoesNotMutateInput(t *testing.T) {
	joints := armJoints()
	SolveIK(armChain(r2.Vec{X: 10, Y: 10}), joints, 100, 1.0)

	want := armJoints()
	if diff := cmp.Diff(want, joints); diff != "" {
		t.Errorf("input joints were mutated (-want +got):\n%s", diff)
	}
}

func TestSolveIKUnreachableTargetTerminates(t *testing.T) {
	joints := armJoints()
	target := r2.Vec{X: 0, Y: 100} // farther than total chain length 20

	before := mathutil.Dist(r2.Vec{X: 20, Y: 0}, target)
	poses := SolveIK(armChain(target), joints, 100, 1.0)
	if poses == nil {
		t.Fatal("best-effort pose expected, got nil")
	}
	wrist := poses["wrist"]
	after := math.Hypot(wrist.X-target.X, wrist.Y-target.Y)
	if after > before {
		t.Errorf("distance grew from %v to %v", before, after)
	}
	// Best effort: the arm should end up fully extended toward the target.
	if after > before-15 {
		t.Errorf("distance only improved from %v to %v", before, after)
	}
}

func TestSolveIKShortChain(t *testing.T) {
	joints := armJoints()
	chain := IKChain{ID: "c", JointIDs: []string{"wrist"}, Target: r2.Vec{X: 5, Y: 5}}
	if poses := SolveIK(chain, joints, 100, 1.0); poses != nil {
		t.Errorf("single-joint chain returned %v, want nil", poses)
	}
}

func TestApplyFKPoseDeterministic(t *testing.T) {
	joints := armJoints()
	chain := FKChain{
		ID:        "arm",
		JointIDs:  []string{"shoulder", "elbow", "wrist"},
		Rotations: map[string]float64{"shoulder": 0.4, "elbow": -0.2},
	}

	first := ApplyFKPose(chain, joints)
	second := ApplyFKPose(chain, joints)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeat call differs (-first +second):\n%s", diff)
	}

	if got := first["shoulder"].Rotation; got != 0.4 {
		t.Errorf("shoulder rotation = %v, want 0.4", got)
	}
	// Absent from the rotation map defaults to zero.
	if got := first["wrist"].Rotation; got != 0 {
		t.Errorf("wrist rotation = %v, want 0", got)
	}
	if p := first["elbow"]; p.X != 10 || p.Y != 0 {
		t.Errorf("FK moved elbow to (%v, %v)", p.X, p.Y)
	}
}

func TestBlendBoundaryLaws(t *testing.T) {
	ik := PoseMap{"a": {X: 1, Y: 2, Rotation: 0.5, ScaleX: 1, ScaleY: 1}}
	fk := PoseMap{"a": {X: 3, Y: 4, Rotation: -0.5, ScaleX: 2, ScaleY: 2}}

	if diff := cmp.Diff(fk, BlendIKFK(ik, fk, 0)); diff != "" {
		t.Errorf("weight 0 is not pure FK:\n%s", diff)
	}
	if diff := cmp.Diff(ik, BlendIKFK(ik, fk, 1)); diff != "" {
		t.Errorf("weight 1 is not pure IK:\n%s", diff)
	}
	// Null IK at weight 0 still returns FK.
	if diff := cmp.Diff(fk, BlendIKFK(nil, fk, 0)); diff != "" {
		t.Errorf("nil IK at weight 0:\n%s", diff)
	}
}

func TestBlendInterpolates(t *testing.T) {
	ik := PoseMap{"a": {X: 10, Y: 0, Rotation: 1.0, ScaleX: 2, ScaleY: 4}}
	fk := PoseMap{"a": {X: 0, Y: 10, Rotation: 0.0, ScaleX: 1, ScaleY: 1}}

	got := BlendIKFK(ik, fk, 0.25)["a"]
	want := Pose{X: 2.5, Y: 7.5, Rotation: 0.25, ScaleX: 1.25, ScaleY: 1.75}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("blend 0.25 (-want +got):\n%s", diff)
	}
}

func TestBlendRotationWraparound(t *testing.T) {
	ik := PoseMap{"a": {Rotation: -3.0, ScaleX: 1, ScaleY: 1}}
	fk := PoseMap{"a": {Rotation: 3.0, ScaleX: 1, ScaleY: 1}}

	got := BlendIKFK(ik, fk, 0.5)["a"].Rotation
	if math.Abs(math.Abs(got)-math.Pi) > 1e-9 {
		t.Errorf("rotation = %v, want ±π (short path)", got)
	}
}

func TestBlendUnionPassthrough(t *testing.T) {
	ik := PoseMap{"only_ik": {X: 1, ScaleX: 1, ScaleY: 1}}
	fk := PoseMap{"only_fk": {X: 2, ScaleX: 1, ScaleY: 1}}

	got := BlendIKFK(ik, fk, 0.5)
	if got["only_ik"] != ik["only_ik"] || got["only_fk"] != fk["only_fk"] {
		t.Errorf("one-sided joints not passed through: %v", got)
	}
}

func TestCalculateHybridPoseDispatch(t *testing.T) {
	joints := armJoints()
	hc := NewDefaultHybridChain("arm", []string{"shoulder", "elbow"}, "wrist")
	hc.IK.Target = r2.Vec{X: 10, Y: 10}

	hc.Mode = ModeFK
	fk := CalculateHybridPose(hc, joints)
	if len(fk) != 3 {
		t.Fatalf("FK pose covers %d joints, want 3", len(fk))
	}

	hc.Mode = ModeIK
	ik := CalculateHybridPose(hc, joints)
	if len(ik) != 3 {
		t.Fatalf("IK pose covers %d joints, want 3", len(ik))
	}

	hc.Mode = ModeHybrid
	hc.BlendWeight = 0.5
	hybrid := CalculateHybridPose(hc, joints)
	wrist := hybrid["wrist"]
	if wrist.X == ik["wrist"].X && wrist.Y == ik["wrist"].Y {
		t.Error("hybrid pose equals pure IK at weight 0.5")
	}
	if wrist.X == fk["wrist"].X && wrist.Y == fk["wrist"].Y {
		t.Error("hybrid pose equals pure FK at weight 0.5")
	}
}

func TestCalculateHybridPoseIKNoSolution(t *testing.T) {
	hc := HybridChain{
		Mode: ModeIK,
		IK:   IKChain{JointIDs: []string{"wrist"}},
	}
	got := CalculateHybridPose(hc, armJoints())
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty map", got)
	}
}

func TestNewDefaultHybridChain(t *testing.T) {
	hc := NewDefaultHybridChain("arm", []string{"shoulder", "elbow"}, "wrist")

	wantIDs := []string{"shoulder", "elbow", "wrist"}
	if diff := cmp.Diff(wantIDs, hc.IK.JointIDs); diff != "" {
		t.Errorf("IK joint ids (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(hc.IK.JointIDs, hc.FK.JointIDs); diff != "" {
		t.Errorf("IK and FK chains differ:\n%s", diff)
	}
	if hc.BlendWeight != 0.5 {
		t.Errorf("blend weight = %v, want 0.5", hc.BlendWeight)
	}
	if hc.Mode != ModeHybrid {
		t.Errorf("mode = %q, want hybrid", hc.Mode)
	}
	for id, rot := range hc.FK.Rotations {
		if rot != 0 {
			t.Errorf("FK rotation for %s = %v, want 0", id, rot)
		}
	}
	if (hc.IK.Target != r2.Vec{}) {
		t.Errorf("target = %v, want origin", hc.IK.Target)
	}
}
