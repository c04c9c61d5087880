package aerodynamics

import (
	"math"

	"github.com/notargets/gowindtunnel/types"
	"github.com/notargets/gowindtunnel/utils"
)

// Coefficients are the per car type aerodynamic constants at zero pitch
type Coefficients struct {
	DragBase     float64 `json:"dragCoefficientBase"`
	LiftBase     float64 `json:"liftCoefficientBase"`
	PressureBase float64 `json:"pressureCoefficientBase"`
	FrontalArea  float64 `json:"frontalArea"` // m^2
}

// ForceReport holds every scalar shown on the dashboard. Pressures are in kPa.
type ForceReport struct {
	WindSpeed           float64 `json:"windSpeed"` // mph, as supplied
	Angle               float64 `json:"angle"`     // degrees, as supplied
	Drag                float64 `json:"drag"`
	Lift                float64 `json:"lift"`
	Downforce           float64 `json:"downforce"`
	DragCoefficient     float64 `json:"dragCoefficient"`
	LiftCoefficient     float64 `json:"liftCoefficient"`
	PressureCoefficient float64 `json:"pressureCoefficient"`
	Pressure            float64 `json:"pressure"`
	DynamicPressure     float64 `json:"dynamicPressure"`
	StagnationPressure  float64 `json:"stagnationPressure"`
	Velocity            float64 `json:"velocity"`
	ReynoldsNumber      float64 `json:"reynoldsNumber"`
	FrontalArea         float64 `json:"frontalArea"`
	AirDensity          float64 `json:"airDensity"`
	Efficiency          float64 `json:"efficiency"`
}

func DynamicPressure(vMS float64) float64 {
	return 0.5 * AirDensity * vMS * vMS
}

func ReynoldsNumber(vMS float64) float64 {
	return AirDensity * vMS * CharacteristicLen / AirViscosity
}

// AdjustedCoefficients returns Cd, Cl and Cp at the given pitch. Positive (nose down)
// pitch increases downforce.
func AdjustedCoefficients(c Coefficients, angleRad float64) (Cd, Cl, Cp float64) {
	var (
		s = math.Sin(angleRad)
	)
	Cd = c.DragBase + math.Abs(s)*DragAngleSlope
	Cl = c.LiftBase - s*LiftAngleSlope
	Cp = c.PressureBase + math.Abs(s)*PressureAngleSlope
	return
}

func ComputeForces(windSpeedMPH, carAngleDeg float64, c Coefficients) (fr ForceReport) {
	var (
		v          = windSpeedMPH * MPHToMS
		q          = DynamicPressure(v)
		Cd, Cl, Cp = AdjustedCoefficients(c, utils.DegToRad(carAngleDeg))
	)
	fr = ForceReport{
		WindSpeed:           windSpeedMPH,
		Angle:               carAngleDeg,
		Drag:                q * Cd * c.FrontalArea,
		Lift:                q * Cl * c.FrontalArea,
		DragCoefficient:     Cd,
		LiftCoefficient:     Cl,
		PressureCoefficient: Cp,
		Pressure:            q * Cp / 1000.,
		DynamicPressure:     q / 1000.,
		StagnationPressure:  (StandardPressure + q) / 1000.,
		Velocity:            v,
		ReynoldsNumber:      ReynoldsNumber(v),
		FrontalArea:         c.FrontalArea,
		AirDensity:          AirDensity,
	}
	fr.Downforce = math.Max(0, -fr.Lift)
	fr.Efficiency = EfficiencyRating(Cd, fr.Lift, carAngleDeg)
	return
}

// EfficiencyRating scores a configuration from 0 to 100. The lift thresholds apply to
// the lift force.
func EfficiencyRating(Cd, lift, angleDeg float64) (eff float64) {
	eff = 100
	switch {
	case Cd > 0.4:
		eff -= 20
	case Cd > 0.3:
		eff -= 10
	}
	switch {
	case lift < -0.5:
		eff += 10
	case lift > 0.2:
		eff -= 15
	}
	switch a := math.Abs(angleDeg); {
	case a > 15:
		eff -= 20
	case a > 10:
		eff -= 10
	}
	eff = utils.Clamp(eff, 0, 100)
	return
}

// Value returns the report scalar selected by ff
func (fr ForceReport) Value(ff types.ForceField) (f float64) {
	switch ff {
	case types.DragForce:
		f = fr.Drag
	case types.LiftForce:
		f = fr.Lift
	case types.Downforce:
		f = fr.Downforce
	case types.DragCoefficient:
		f = fr.DragCoefficient
	case types.LiftCoefficient:
		f = fr.LiftCoefficient
	case types.Pressure:
		f = fr.Pressure
	case types.DynamicPressure:
		f = fr.DynamicPressure
	case types.StagnationPressure:
		f = fr.StagnationPressure
	case types.Velocity:
		f = fr.Velocity
	case types.ReynoldsNumber:
		f = fr.ReynoldsNumber
	case types.FrontalArea:
		f = fr.FrontalArea
	case types.AirDensity:
		f = fr.AirDensity
	case types.Efficiency:
		f = fr.Efficiency
	default:
		panic("unknown force field")
	}
	return
}
