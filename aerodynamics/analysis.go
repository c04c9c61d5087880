package aerodynamics

import (
	"math"
	"strings"

	"github.com/notargets/gowindtunnel/utils"
)

// PressureDistribution is the approximate surface pressure in Pa on each face of the car
type PressureDistribution struct {
	Front, Rear, Sides, Top, Bottom float64
}

func NewPressureDistribution(windSpeedMPH, carAngleDeg float64) (pd PressureDistribution) {
	var (
		q    = DynamicPressure(windSpeedMPH * MPHToMS)
		a    = utils.DegToRad(carAngleDeg)
		cosA = math.Abs(math.Cos(a))
		sinA = math.Abs(math.Sin(a))
	)
	pd = PressureDistribution{
		Front:  q * (1.0 + cosA*0.3),
		Rear:   q * (0.3 + cosA*0.2),
		Sides:  q * (0.6 + sinA*0.4),
		Top:    q * (0.4 + sinA*0.1),
		Bottom: q * (0.8 + sinA*0.2),
	}
	return
}

type FuelImpact struct {
	Base, Actual, Extra float64 // L/100km
}

func NewFuelImpact(drag float64) (fi FuelImpact) {
	fi.Base = BaseFuelConsumption
	fi.Extra = (drag / 100) * 0.5
	fi.Actual = fi.Base + fi.Extra
	return
}

// Explain describes the drag, lift and angle regime of a report in plain words
func Explain(fr ForceReport) string {
	var (
		sb strings.Builder
	)
	switch {
	case fr.Drag > 200:
		sb.WriteString("High drag forces - car is experiencing significant air resistance. ")
	case fr.Drag > 100:
		sb.WriteString("Moderate drag forces - normal air resistance. ")
	default:
		sb.WriteString("Low drag forces - good aerodynamic efficiency. ")
	}
	switch {
	case fr.Lift > 0:
		sb.WriteString("Positive lift - car tends to lift off the ground. ")
	case fr.Lift < -50:
		sb.WriteString("Strong downforce - car is pushed down onto the road. ")
	default:
		sb.WriteString("Minimal lift forces - car is stable. ")
	}
	if math.Abs(fr.Angle) > 10 {
		sb.WriteString("Large angle creates turbulence and increases drag.")
	} else {
		sb.WriteString("Small angle maintains good airflow.")
	}
	return sb.String()
}

func PerformanceRating(fr ForceReport) (rating float64) {
	rating = 100
	switch {
	case fr.Drag > 300:
		rating -= 40
	case fr.Drag > 200:
		rating -= 20
	case fr.Drag > 100:
		rating -= 10
	}
	if math.Abs(fr.Lift) > 100 {
		rating -= 15
	}
	if math.Abs(fr.Angle) > 15 {
		rating -= 10
	}
	rating = math.Max(0, rating)
	return
}

// RecommendedAngle is a negative (nose up) pitch that grows with wind speed, limited to +/-5 deg
func RecommendedAngle(windSpeedMPH float64) float64 {
	return utils.Clamp(-2-windSpeedMPH*0.01, -5, 5)
}
