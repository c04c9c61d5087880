package streamlines

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gowindtunnel/flowfield"
	"github.com/notargets/gowindtunnel/types"
	"github.com/notargets/gowindtunnel/utils"
)

type Streamline struct {
	Layout
	Index    int
	Start    [2]float64
	Control  []r3.Vec
	Vertices []r3.Vec
	Colors   []utils.RGB
}

func newStreamline(l Layout, index int) (sl *Streamline) {
	sl = &Streamline{
		Layout:   l,
		Index:    index,
		Start:    l.Starts[index],
		Control:  make([]r3.Vec, l.Points),
		Vertices: make([]r3.Vec, l.VertexCount()),
		Colors:   make([]utils.RGB, l.VertexCount()),
	}
	return
}

func (sl *Streamline) Name() string {
	return fmt.Sprintf("streamline/%s/%d", sl.Category, sl.Index)
}

// rebuild recomputes the control points from the field's car pose and resamples the curve
func (sl *Streamline) rebuild(f *flowfield.Field, flowIntensity float64) {
	for j := range sl.Control {
		x := InletX + float64(j)/float64(sl.Points)*sl.Length
		sl.Control[j] = deflect(f, sl.Category, r3.Vec{X: x, Y: sl.Start[0], Z: sl.Start[1]}, flowIntensity)
	}
	sl.Vertices = utils.NewCatmullRom(sl.Control).Resample(ResampleFactor*sl.Points, sl.Vertices)
}

func (sl *Streamline) recolor(f *flowfield.Field, colorIntensity float64) {
	n := float64(len(sl.Vertices))
	for i, v := range sl.Vertices {
		c := flowfield.ColorFor(f.VelocityRatio(f.VelocityAt(v)))
		switch sl.Category {
		case types.UnderCar:
			c = utils.RGB{R: c.R * 0.7, G: c.G * 1.1, B: c.B * 1.2}
		case types.Long:
			c = utils.RGB{R: c.R * 1.2, G: c.G * 1.1, B: c.B * 0.9}
		}
		g := (0.8 + 0.4*math.Sin(float64(i)/n*math.Pi)) * colorIntensity
		sl.Colors[i] = c.Scale(g, g, g)
	}
}

// deflect bends an undisturbed control point p away from the car silhouette
func deflect(f *flowfield.Field, cat types.StreamlineCategory, p r3.Vec, flowIntensity float64) r3.Vec {
	var (
		local, dist = f.Local(p)
		rx, rz      = local.X, local.Z
		relY        = p.Y - f.CarPose().Position.Y
		x, y, z     = p.X, p.Y, p.Z
	)
	if dist < DeflectionRadius {
		s := math.Max(0, 1-dist/DeflectionRadius) * flowIntensity
		switch cat {
		case types.UnderCar:
			if math.Abs(rx) < 2.5 && math.Abs(rz) < 1 {
				y += s * 0.3 * utils.SignOr(relY, -1)
				z += s * 0.5 * utils.SignOr(rz, 1)
			}
			y = math.Max(y, GroundLevel)
		case types.Main:
			if math.Abs(rx) < 2 && math.Abs(rz) < 1 {
				y += s * 2.0 * utils.SignOr(relY, 1)
				z += s * 1.5 * utils.SignOr(rz, 1)
			}
			if rx > 0 && math.Abs(rz) < 1.5 {
				y += s * 0.8 * math.Sin(rx*1.5)
				z += s * 0.6 * math.Cos(rx*1.2)
			}
		case types.Long:
			if math.Abs(rx) < 3 && math.Abs(rz) < 1.5 {
				y += s * 2.5 * utils.SignOr(relY, 1)
				z += s * 2.0 * utils.SignOr(rz, 1)
			}
			if rx > 0 && math.Abs(rz) < 2 {
				y += s * 1.2 * math.Sin(rx)
				z += s * 0.8 * math.Sin(rx*1.3)
			}
		}
	}
	fv := VariationAmp * math.Exp(-math.Abs(x)*VariationDecay)
	y += fv * math.Sin(x*0.3+z*0.5)
	z += fv * math.Cos(x*0.4+y*0.3)
	return r3.Vec{X: x, Y: y, Z: z}
}
