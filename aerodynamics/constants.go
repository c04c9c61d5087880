package aerodynamics

const (
	MPHToMS             = 0.44704   // mph to m/s
	AirDensity          = 1.225     // kg/m^3, sea level
	AirViscosity        = 0.0000181 // Pa*s, dynamic viscosity
	CharacteristicLen   = 4.0       // m, car length used for the Reynolds number
	StandardPressure    = 101325.   // Pa
	DragAngleSlope      = 0.4
	LiftAngleSlope      = 0.3
	PressureAngleSlope  = 0.2
	MinWindSpeedMPH     = 0.
	MaxWindSpeedMPH     = 200.
	MinCarAngleDeg      = -45.
	MaxCarAngleDeg      = 45.
	BaseFuelConsumption = 8.0 // L/100km
)
