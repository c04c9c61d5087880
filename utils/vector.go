package utils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Tunnel axes: X runs downstream, Y is up, Z is lateral.

func RotateXZ(v r3.Vec, angleRad float64) (vr r3.Vec) {
	var (
		c, s = math.Cos(angleRad), math.Sin(angleRad)
	)
	vr = r3.Vec{
		X: v.X*c - v.Z*s,
		Y: v.Y,
		Z: v.X*s + v.Z*c,
	}
	return
}

func IsFiniteVec(v r3.Vec) bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}

func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180.
}
