package batch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r2"

	"rigcore/internal/skeleton"
	"rigcore/internal/solver"
)

func bodyJoints() []*skeleton.Point {
	return []*skeleton.Point{
		{ID: "l_shoulder", X: -20, Y: 0},
		{ID: "l_elbow", X: -30, Y: 0, ParentID: "l_shoulder"},
		{ID: "l_wrist", X: -40, Y: 0, ParentID: "l_elbow"},
		{ID: "r_shoulder", X: 20, Y: 0},
		{ID: "r_elbow", X: 30, Y: 0, ParentID: "r_shoulder"},
		{ID: "r_wrist", X: 40, Y: 0, ParentID: "r_elbow"},
	}
}

func armChains() []solver.HybridChain {
	left := solver.NewDefaultHybridChain("left_arm", []string{"l_shoulder", "l_elbow"}, "l_wrist")
	left.Mode = solver.ModeIK
	left.IK.Target = r2.Vec{X: -25, Y: 10}

	right := solver.NewDefaultHybridChain("right_arm", []string{"r_shoulder", "r_elbow"}, "r_wrist")
	right.Mode = solver.ModeIK
	right.IK.Target = r2.Vec{X: 25, Y: 10}

	return []solver.HybridChain{left, right}
}

func TestSolveMatchesSequential(t *testing.T) {
	joints := bodyJoints()
	chains := armChains()

	want := make(map[string]solver.PoseMap, len(chains))
	for _, hc := range chains {
		want[hc.ID] = solver.CalculateHybridPose(hc, joints)
	}

	got := Solve(Config{Workers: 4, Log: zerolog.Nop()}, chains, joints)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("batch result differs from sequential (-want +got):\n%s", diff)
	}
}

func TestSolveOverlappingChainsSerialize(t *testing.T) {
	// Two chains over the same left arm must land in separate waves.
	chains := armChains()
	chains[1] = chains[0]
	chains[1].ID = "left_arm_again"

	waves := partition(chains)
	if len(waves) != 2 {
		t.Fatalf("got %d waves, want 2", len(waves))
	}

	got := Solve(Config{Workers: 2, Log: zerolog.Nop()}, chains, bodyJoints())
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if diff := cmp.Diff(got["left_arm"], got["left_arm_again"]); diff != "" {
		t.Errorf("identical chains solved differently:\n%s", diff)
	}
}

func TestPartitionDisjointChainsShareWave(t *testing.T) {
	waves := partition(armChains())
	if len(waves) != 1 {
		t.Errorf("got %d waves, want 1 (disjoint joint sets)", len(waves))
	}
}
