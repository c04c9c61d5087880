package aerodynamics

import (
	"errors"
)

var (
	ErrWindSpeedRange = errors.New("Wind speed must be between 0 and 200 MPH")
	ErrCarAngleRange  = errors.New("Car angle must be between -45 and 45 degrees")
)

// Validate checks the documented input ranges and returns every violation joined
// into one error, or nil.
func Validate(windSpeedMPH, carAngleDeg float64) error {
	var (
		errs []error
	)
	if !(windSpeedMPH >= MinWindSpeedMPH && windSpeedMPH <= MaxWindSpeedMPH) {
		errs = append(errs, ErrWindSpeedRange)
	}
	if !(carAngleDeg >= MinCarAngleDeg && carAngleDeg <= MaxCarAngleDeg) {
		errs = append(errs, ErrCarAngleRange)
	}
	return errors.Join(errs...)
}
