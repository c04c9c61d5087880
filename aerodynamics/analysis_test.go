package aerodynamics

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(0, 0))
	assert.NoError(t, Validate(200, -45))
	err := Validate(201, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWindSpeedRange))
	assert.False(t, errors.Is(err, ErrCarAngleRange))
	err = Validate(-1, 46)
	assert.True(t, errors.Is(err, ErrWindSpeedRange))
	assert.True(t, errors.Is(err, ErrCarAngleRange))
	assert.Error(t, Validate(math.NaN(), 0))
}

func TestPressureDistribution(t *testing.T) {
	var (
		tol = 1.e-9
		q   = DynamicPressure(50 * MPHToMS)
	)
	pd := NewPressureDistribution(50, 0)
	assert.InDelta(t, q*1.3, pd.Front, tol)
	assert.InDelta(t, q*0.5, pd.Rear, tol)
	assert.InDelta(t, q*0.6, pd.Sides, tol)
	assert.InDelta(t, q*0.4, pd.Top, tol)
	assert.InDelta(t, q*0.8, pd.Bottom, tol)
	pd = NewPressureDistribution(50, 90)
	assert.InDelta(t, q*1.0, pd.Sides, tol)
	assert.InDelta(t, q*1.0, pd.Front, tol)
}

func TestAnalysis(t *testing.T) {
	fi := NewFuelImpact(200)
	assert.Equal(t, 8.0, fi.Base)
	assert.Equal(t, 1.0, fi.Extra)
	assert.Equal(t, 9.0, fi.Actual)

	fr := ComputeForces(50, 0, sedan)
	assert.Equal(t, "High drag forces - car is experiencing significant air resistance. "+
		"Positive lift - car tends to lift off the ground. "+
		"Small angle maintains good airflow.", Explain(fr))
	fr = ForceReport{Drag: 50, Lift: -80, Angle: -12}
	assert.Equal(t, "Low drag forces - good aerodynamic efficiency. "+
		"Strong downforce - car is pushed down onto the road. "+
		"Large angle creates turbulence and increases drag.", Explain(fr))

	assert.Equal(t, 100., PerformanceRating(ForceReport{Drag: 50}))
	assert.Equal(t, 100.-40-15-10, PerformanceRating(ForceReport{Drag: 400, Lift: -200, Angle: 20}))
	assert.Equal(t, 80., PerformanceRating(ForceReport{Drag: 250}))

	assert.Equal(t, -2., RecommendedAngle(0))
	assert.Equal(t, -2.5, RecommendedAngle(50))
	assert.Equal(t, -5., RecommendedAngle(400))
}
