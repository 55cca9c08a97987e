package mirror

import (
	"math"
	"sort"
	"strings"

	"rigcore/internal/skeleton"
)

// Axis selects which coordinate is reflected about the center value.
type Axis string

const (
	AxisVertical   Axis = "vertical"   // reflect x about center
	AxisHorizontal Axis = "horizontal" // reflect y about center
)

// Config controls mirrored-joint synthesis. Token lists are parallel:
// LeftTokens[i] swaps with RightTokens[i] during renaming.
type Config struct {
	Axis        Axis
	AutoRename  bool
	LeftTokens  []string
	RightTokens []string
}

// DefaultLeftTokens and DefaultRightTokens cover the common latin naming
// conventions plus the Japanese 左/右 bone prefixes.
var (
	DefaultLeftTokens  = []string{"left", "Left", "L_", "l_", "_L", "_l", "左"}
	DefaultRightTokens = []string{"right", "Right", "R_", "r_", "_R", "_r", "右"}
)

// DefaultConfig returns a vertical-axis config with renaming enabled.
func DefaultConfig() Config {
	return Config{
		Axis:        AxisVertical,
		AutoRename:  true,
		LeftTokens:  DefaultLeftTokens,
		RightTokens: DefaultRightTokens,
	}
}

// Mirrored pairs a source joint with its synthesized reflection.
type Mirrored struct {
	Original   *skeleton.Point `json:"original"`
	Mirrored   *skeleton.Point `json:"mirrored"`
	Confidence float64         `json:"confidence"`
}

// GeneratePoints synthesizes a reflected counterpart for every joint.
// Vertical axis reflects x about center, horizontal reflects y about the
// same scalar. The mirrored joint id is "<id>_mirror"; with AutoRename the
// name has its left/right token swapped, falling back to "<name>_mirror"
// when no token matches.
//
// The confidence score is a self-consistency check (center distance of the
// source vs. its reflection); for points produced here it is ≈1 and only
// becomes meaningful when auditing externally supplied mirror candidates.
func GeneratePoints(points []*skeleton.Point, center float64, cfg Config) []Mirrored {
	if cfg.LeftTokens == nil {
		cfg.LeftTokens = DefaultLeftTokens
	}
	if cfg.RightTokens == nil {
		cfg.RightTokens = DefaultRightTokens
	}

	out := make([]Mirrored, 0, len(points))
	for _, p := range points {
		m := clonePoint(p)
		m.ID = p.ID + "_mirror"
		var d, dm float64
		if cfg.Axis == AxisHorizontal {
			m.Y = 2*center - p.Y
			d, dm = math.Abs(p.Y-center), math.Abs(m.Y-center)
		} else {
			m.X = 2*center - p.X
			d, dm = math.Abs(p.X-center), math.Abs(m.X-center)
		}
		if p.Name != "" && cfg.AutoRename {
			m.Name = mirrorName(p.Name, cfg.LeftTokens, cfg.RightTokens)
		}

		conf := 1 - math.Abs(d-dm)/math.Max(math.Max(d, dm), 1)
		if conf < 0 {
			conf = 0
		}

		out = append(out, Mirrored{Original: p, Mirrored: m, Confidence: conf})
	}
	return out
}

// clonePoint copies a joint including its weight map and scale, so the
// mirrored joint never aliases the source.
func clonePoint(p *skeleton.Point) *skeleton.Point {
	m := *p
	if p.Scale != nil {
		s := *p.Scale
		m.Scale = &s
	}
	if p.Weights != nil {
		m.Weights = make(map[int]float64, len(p.Weights))
		for k, v := range p.Weights {
			m.Weights[k] = v
		}
	}
	return &m
}

// mirrorName swaps the first matching left token for its right counterpart
// (or vice versa). No match means "<name>_mirror".
func mirrorName(name string, left, right []string) string {
	for i, tok := range left {
		if i < len(right) && strings.Contains(name, tok) {
			return strings.Replace(name, tok, right[i], 1)
		}
	}
	for i, tok := range right {
		if i < len(left) && strings.Contains(name, tok) {
			return strings.Replace(name, tok, left[i], 1)
		}
	}
	return name + "_mirror"
}

// Pair is a detected bilateral counterpart pair.
type Pair struct {
	Left       *skeleton.Point `json:"left"`
	Right      *skeleton.Point `json:"right"`
	Confidence float64         `json:"confidence"`
}

// DetectPairs finds existing left/right counterparts among the given joints.
// For each joint, in input order, the unmatched joint closest in x to the
// reflected position 2*center - x wins, provided it lies within tolerance
// pixels of it; each joint joins at most one pair. Ties on x-distance break
// toward the lower joint id so results are stable across platforms.
//
// Results are sorted by descending confidence; no cutoff is applied.
func DetectPairs(points []*skeleton.Point, center, tolerance float64) []Pair {
	matched := make(map[string]bool, len(points))
	var pairs []Pair

	for _, p := range points {
		if matched[p.ID] {
			continue
		}
		expected := 2*center - p.X

		var best *skeleton.Point
		bestDist := math.Inf(1)
		for _, q := range points {
			if q.ID == p.ID || matched[q.ID] {
				continue
			}
			d := math.Abs(q.X - expected)
			if d > tolerance {
				continue
			}
			if d < bestDist || (d == bestDist && best != nil && q.ID < best.ID) {
				best = q
				bestDist = d
			}
		}
		if best == nil {
			continue
		}

		matched[p.ID] = true
		matched[best.ID] = true
		pairs = append(pairs, Pair{
			Left:       p,
			Right:      best,
			Confidence: (nameConfidence(p.Name, best.Name) + positionConfidence(p, best, center)) / 2,
		})
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].Confidence != pairs[j].Confidence {
			return pairs[i].Confidence > pairs[j].Confidence
		}
		return pairs[i].Left.ID < pairs[j].Left.ID
	})
	return pairs
}

// nameConfidence scores how well two names look like a left/right pair:
// opposite handedness 0.9, same handedness 0.1, indeterminate 0.5.
func nameConfidence(a, b string) float64 {
	aL, aR := matchesAny(a, DefaultLeftTokens), matchesAny(a, DefaultRightTokens)
	bL, bR := matchesAny(b, DefaultLeftTokens), matchesAny(b, DefaultRightTokens)
	switch {
	case (aL && bR) || (aR && bL):
		return 0.9
	case (aL && bL) || (aR && bR):
		return 0.1
	default:
		return 0.5
	}
}

func matchesAny(name string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(name, tok) {
			return true
		}
	}
	return false
}

// positionConfidence averages an x term (distance of the candidate from the
// reflected position, scaled by 50px) and a y term (height difference,
// scaled by 100px).
func positionConfidence(a, b *skeleton.Point, center float64) float64 {
	expected := 2*center - a.X
	xc := math.Max(0, 1-math.Abs(b.X-expected)/50)
	yc := math.Max(0, 1-math.Abs(a.Y-b.Y)/100)
	return (xc + yc) / 2
}

// Constraint links a detected pair for an external enforcement pass.
type Constraint struct {
	Type     string  `json:"type"`
	LeftID   string  `json:"left_id"`
	RightID  string  `json:"right_id"`
	Strength float64 `json:"strength"`
}

// CreateConstraints maps pairs to mirror constraints, strength = confidence.
// Nothing is enforced here; that is the editor shell's job.
func CreateConstraints(pairs []Pair) []Constraint {
	out := make([]Constraint, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, Constraint{
			Type:     "mirror",
			LeftID:   p.Left.ID,
			RightID:  p.Right.ID,
			Strength: p.Confidence,
		})
	}
	return out
}
