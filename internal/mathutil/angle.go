package mathutil

import "math"

// WrapAngle normalizes an angle into (-π, π]. Angle in radians.
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// LerpAngle interpolates between two angles along the shortest arc.
// The difference is wrapped into (-π, π] before scaling, so interpolating
// across the ±π boundary never takes the long way around.
func LerpAngle(a, b, t float64) float64 {
	return a + WrapAngle(b-a)*t
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
