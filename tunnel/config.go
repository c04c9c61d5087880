package tunnel

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gowindtunnel/cars"
	"github.com/notargets/gowindtunnel/particles"
	"github.com/notargets/gowindtunnel/streamlines"
)

const (
	NudgeStep = 0.5
)

// Car positions are kept inside the test section
var (
	MinPosition = r3.Vec{X: -12, Y: -2, Z: -8}
	MaxPosition = r3.Vec{X: 12, Y: 6, Z: 8}
)

type Turbulence string

const (
	RandomTurbulence Turbulence = "random"
	PerlinTurbulence Turbulence = "perlin"
	NoTurbulence     Turbulence = "none"
)

type Config struct {
	CarType            string
	WindSpeed          float64 // mph
	CarAngle           float64 // degrees
	Seed               int64   // zero seeds from the clock
	Turbulence         Turbulence
	Particles          particles.Config
	Streamlines        streamlines.Settings
	StreamlinesEnabled bool
}

func DefaultConfig() Config {
	return Config{
		CarType:            cars.DefaultCarType,
		WindSpeed:          50,
		Turbulence:         RandomTurbulence,
		Particles:          particles.DefaultConfig(),
		Streamlines:        streamlines.DefaultSettings(),
		StreamlinesEnabled: true,
	}
}
