package aerodynamics

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gowindtunnel/types"
)

var (
	sedan = Coefficients{DragBase: 0.3, LiftBase: 0.1, PressureBase: 0.5, FrontalArea: 2.2}
	f1    = Coefficients{DragBase: 0.7, LiftBase: -2.5, PressureBase: 0.5, FrontalArea: 1.8}
)

func TestComputeForces(t *testing.T) {
	var (
		tol = 1.e-6
	)
	{ // Sedan at 50 mph, zero pitch, evaluated by hand
		fr := ComputeForces(50, 0, sedan)
		assert.InDelta(t, 22.352, fr.Velocity, tol)
		assert.InDelta(t, 0.3060122912, fr.DynamicPressure, tol)
		assert.InDelta(t, 201.968112, fr.Drag, tol)
		assert.InDelta(t, 67.322704, fr.Lift, tol)
		assert.Equal(t, 0., fr.Downforce)
		assert.InDelta(t, 0.1530061456, fr.Pressure, tol)
		assert.InDelta(t, 101.6310122912, fr.StagnationPressure, tol)
		assert.InDelta(t, 6051093.9, fr.ReynoldsNumber, 1)
		assert.Equal(t, 85., fr.Efficiency)
		assert.Equal(t, 2.2, fr.FrontalArea)
		assert.Equal(t, AirDensity, fr.AirDensity)
	}
	{ // Zero pitch leaves the base coefficients unchanged
		for _, c := range []Coefficients{sedan, f1} {
			for _, v := range []float64{0, 10, 120, 200} {
				fr := ComputeForces(v, 0, c)
				assert.Equal(t, c.LiftBase, fr.LiftCoefficient)
				assert.Equal(t, c.DragBase, fr.DragCoefficient)
			}
		}
	}
	{ // Positive (nose down) pitch increases downforce
		noseDown := ComputeForces(100, 10, f1)
		noseUp := ComputeForces(100, -10, f1)
		assert.Greater(t, noseDown.Downforce, noseUp.Downforce)
		assert.Less(t, noseDown.LiftCoefficient, noseUp.LiftCoefficient)
		assert.InDelta(t, noseDown.Drag, noseUp.Drag, tol)
	}
}

func TestForceInvariants(t *testing.T) {
	for _, c := range []Coefficients{sedan, f1} {
		for v := 0.; v <= 200; v += 12.5 {
			for a := -45.; a <= 45; a += 7.5 {
				fr := ComputeForces(v, a, c)
				name := fmt.Sprintf("v=%v,a=%v", v, a)
				assert.GreaterOrEqual(t, fr.Drag, 0., name)
				assert.GreaterOrEqual(t, fr.Pressure, 0., name)
				assert.Equal(t, math.Max(0, -fr.Lift), fr.Downforce, name)
				assert.GreaterOrEqual(t, fr.Efficiency, 0., name)
				assert.LessOrEqual(t, fr.Efficiency, 100., name)
			}
		}
	}
	// Extreme finite inputs stay clamped
	for _, in := range [][2]float64{{1000, 90}, {1000, -90}, {-50, 720}, {1.e6, 0}} {
		fr := ComputeForces(in[0], in[1], f1)
		assert.GreaterOrEqual(t, fr.Efficiency, 0.)
		assert.LessOrEqual(t, fr.Efficiency, 100.)
	}
}

func TestEfficiencyRating(t *testing.T) {
	assert.Equal(t, 100., EfficiencyRating(0.2, 0, 0))
	assert.Equal(t, 110.-20-20, EfficiencyRating(0.7, -500, 20))
	assert.Equal(t, 100.-10-15-10, EfficiencyRating(0.35, 1, 12))
	assert.Equal(t, 45., EfficiencyRating(0.9, 50, 30))
	assert.Equal(t, 90., ComputeForces(50, 0, f1).Efficiency)
}

func TestReportValue(t *testing.T) {
	fr := ComputeForces(80, -3, f1)
	assert.Equal(t, fr.Drag, fr.Value(types.DragForce))
	assert.Equal(t, fr.Downforce, fr.Value(types.Downforce))
	assert.Equal(t, fr.ReynoldsNumber, fr.Value(types.ReynoldsNumber))
	assert.Equal(t, fr.Efficiency, fr.Value(types.Efficiency))
	for _, ff := range types.ForceFields {
		assert.NotPanics(t, func() { fr.Value(ff) })
	}
}

func TestModel(t *testing.T) {
	m := NewModel(sedan)
	assert.Equal(t, ComputeForces(50, 5, sedan), m.Compute(50, 5))
	m.SetCoefficients(f1)
	assert.Equal(t, f1, m.Coefficients())
	assert.Equal(t, ComputeForces(50, 5, f1), m.Compute(50, 5))
}

func BenchmarkComputeForces(b *testing.B) {
	b.Run("sedan", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = ComputeForces(float64(i%200), float64(i%90)-45, sedan)
		}
	})
}
