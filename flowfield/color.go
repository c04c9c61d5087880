package flowfield

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gowindtunnel/utils"
)

// ColorFor maps a velocity ratio to green at 0, yellow at 0.5 and red at 1. Ratios
// outside [0,1] extrapolate.
func ColorFor(ratio float64) utils.RGB {
	if ratio < 0.5 {
		return utils.LerpRGB(utils.Green, utils.Yellow, ratio*2)
	}
	return utils.LerpRGB(utils.Yellow, utils.Red, (ratio-0.5)*2)
}

func (f *Field) ColorAt(p r3.Vec) utils.RGB {
	return ColorFor(f.VelocityRatio(f.VelocityAt(p)))
}
