package mathutil

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// RotateAround rotates point p around pivot by angle radians.
func RotateAround(p, pivot r2.Vec, angle float64) r2.Vec {
	c, s := math.Cos(angle), math.Sin(angle)
	d := r2.Sub(p, pivot)
	return r2.Vec{
		X: pivot.X + d.X*c - d.Y*s,
		Y: pivot.Y + d.X*s + d.Y*c,
	}
}

// AngleTo returns the angle of the vector from a to b, in radians.
func AngleTo(a, b r2.Vec) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(b, a))
}
