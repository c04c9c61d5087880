package aerodynamics

// Model caches the active car's coefficients until they are swapped wholesale
type Model struct {
	coeffs Coefficients
}

func NewModel(c Coefficients) (m *Model) {
	m = &Model{coeffs: c}
	return
}

func (m *Model) SetCoefficients(c Coefficients) {
	m.coeffs = c
}

func (m *Model) Coefficients() Coefficients {
	return m.coeffs
}

func (m *Model) Compute(windSpeedMPH, carAngleDeg float64) ForceReport {
	return ComputeForces(windSpeedMPH, carAngleDeg, m.coeffs)
}
