package batch

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"rigcore/internal/skeleton"
	"rigcore/internal/solver"
)

// Config holds shared settings for a batch solve run.
type Config struct {
	Workers       int
	MaxIterations int
	Tolerance     float64
	Log           zerolog.Logger
}

// Result holds the outcome of solving one chain.
type Result struct {
	ChainID string
	Poses   solver.PoseMap
}

// Solve runs every hybrid chain against the joint set and returns one pose
// map per chain id.
//
// Chains whose joint sets overlap must not solve concurrently, so chains
// are partitioned into waves of mutually disjoint joint sets; each wave runs
// on a worker pool, overlapping chains wait for a later wave. Within-wave
// safety follows from SolveIK working on cloned joints.
func Solve(cfg Config, chains []solver.HybridChain, joints []*skeleton.Point) map[string]solver.PoseMap {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = solver.DefaultMaxIterations
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = solver.DefaultTolerance
	}

	out := make(map[string]solver.PoseMap, len(chains))
	var solved atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				cfg.Log.Info().
					Int64("solved", solved.Load()).
					Int("total", len(chains)).
					Dur("elapsed", time.Since(start)).
					Msg("batch progress")
			}
		}
	}()

	for _, wave := range partition(chains) {
		results := make([]Result, len(wave))

		chainChan := make(chan int, cfg.Workers*2)
		var wg sync.WaitGroup
		for w := 0; w < cfg.Workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for idx := range chainChan {
					results[idx] = solveChain(cfg, wave[idx], joints)
					solved.Add(1)
				}
			}()
		}
		for i := range wave {
			chainChan <- i
		}
		close(chainChan)
		wg.Wait()

		for _, r := range results {
			out[r.ChainID] = r.Poses
		}
	}

	close(done)
	cfg.Log.Info().
		Int("chains", len(chains)).
		Dur("elapsed", time.Since(start)).
		Msg("batch solve complete")

	return out
}

func solveChain(cfg Config, hc solver.HybridChain, joints []*skeleton.Point) Result {
	var poses solver.PoseMap
	switch hc.Mode {
	case solver.ModeIK:
		poses = solver.SolveIK(hc.IK, joints, cfg.MaxIterations, cfg.Tolerance)
		if poses == nil {
			poses = solver.PoseMap{}
		}
	case solver.ModeFK:
		poses = solver.ApplyFKPose(hc.FK, joints)
	default:
		ik := solver.SolveIK(hc.IK, joints, cfg.MaxIterations, cfg.Tolerance)
		fk := solver.ApplyFKPose(hc.FK, joints)
		poses = solver.BlendIKFK(ik, fk, hc.BlendWeight)
	}
	return Result{ChainID: hc.ID, Poses: poses}
}

// partition splits chains into waves whose joint-id sets are pairwise
// disjoint within each wave, preserving input order.
func partition(chains []solver.HybridChain) [][]solver.HybridChain {
	var waves [][]solver.HybridChain
	var claimed []map[string]bool

	for _, hc := range chains {
		ids := chainJointIDs(hc)
		placed := false
		for w := range waves {
			if !overlaps(claimed[w], ids) {
				waves[w] = append(waves[w], hc)
				for id := range ids {
					claimed[w][id] = true
				}
				placed = true
				break
			}
		}
		if !placed {
			waves = append(waves, []solver.HybridChain{hc})
			claimed = append(claimed, ids)
		}
	}
	return waves
}

func chainJointIDs(hc solver.HybridChain) map[string]bool {
	ids := make(map[string]bool, len(hc.IK.JointIDs)+len(hc.FK.JointIDs))
	for _, id := range hc.IK.JointIDs {
		ids[id] = true
	}
	for _, id := range hc.FK.JointIDs {
		ids[id] = true
	}
	return ids
}

func overlaps(set map[string]bool, ids map[string]bool) bool {
	for id := range ids {
		if set[id] {
			return true
		}
	}
	return false
}
