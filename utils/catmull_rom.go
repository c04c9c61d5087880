package utils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// CatmullRom is an open centripetal Catmull-Rom curve through a set of control points.
type CatmullRom struct {
	Points []r3.Vec
}

func NewCatmullRom(points []r3.Vec) (cr *CatmullRom) {
	cr = &CatmullRom{Points: points}
	return
}

// Resample returns divisions+1 points spaced uniformly in curve parameter, including both
// end points. out is reused when it has enough capacity.
func (cr *CatmullRom) Resample(divisions int, out []r3.Vec) (pts []r3.Vec) {
	if cap(out) < divisions+1 {
		out = make([]r3.Vec, divisions+1)
	}
	pts = out[:divisions+1]
	for d := 0; d <= divisions; d++ {
		pts[d] = cr.PointAt(float64(d) / float64(divisions))
	}
	return
}

// PointAt evaluates the curve at t in [0,1].
func (cr *CatmullRom) PointAt(t float64) (pt r3.Vec) {
	var (
		P = cr.Points
		l = len(P)
	)
	switch l {
	case 0:
		return
	case 1:
		return P[0]
	}
	var (
		p      = float64(l-1) * t
		ip     = int(math.Floor(p))
		weight = p - float64(ip)
		p0, p3 r3.Vec
	)
	if weight == 0 && ip == l-1 {
		ip = l - 2
		weight = 1
	}
	if ip > 0 {
		p0 = P[ip-1]
	} else {
		p0 = r3.Sub(r3.Scale(2, P[0]), P[1])
	}
	p1, p2 := P[ip], P[ip+1]
	if ip+2 < l {
		p3 = P[ip+2]
	} else {
		p3 = r3.Sub(r3.Scale(2, P[l-1]), P[l-2])
	}
	var (
		dt0 = math.Pow(r3.Norm2(r3.Sub(p1, p0)), 0.25)
		dt1 = math.Pow(r3.Norm2(r3.Sub(p2, p1)), 0.25)
		dt2 = math.Pow(r3.Norm2(r3.Sub(p3, p2)), 0.25)
	)
	if dt1 < KNOTTOL {
		dt1 = 1
	}
	if dt0 < KNOTTOL {
		dt0 = dt1
	}
	if dt2 < KNOTTOL {
		dt2 = dt1
	}
	pt = r3.Vec{
		X: nonUniformCubic(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2, weight),
		Y: nonUniformCubic(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2, weight),
		Z: nonUniformCubic(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2, weight),
	}
	return
}

func nonUniformCubic(x0, x1, x2, x3, dt0, dt1, dt2, t float64) float64 {
	var (
		t1 = ((x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1) * dt1
		t2 = ((x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2) * dt1
		c0 = x1
		c1 = t1
		c2 = -3*x1 + 3*x2 - 2*t1 - t2
		c3 = 2*x1 - 2*x2 + t1 + t2
	)
	return c0 + t*(c1+t*(c2+t*c3))
}
