package flowfield

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
	"gonum.org/v1/gonum/spatial/r3"
)

// Turbulence supplies a perturbation in [-0.5,0.5) for a point in the wake
type Turbulence interface {
	Perturbation(p r3.Vec) float64
}

type NoTurbulence struct{}

func (NoTurbulence) Perturbation(r3.Vec) float64 { return 0 }

// RandomTurbulence draws uniform white noise from a seeded source
type RandomTurbulence struct {
	rng *rand.Rand
}

func NewRandomTurbulence(rng *rand.Rand) (rt *RandomTurbulence) {
	rt = &RandomTurbulence{rng: rng}
	return
}

func (rt *RandomTurbulence) Perturbation(r3.Vec) float64 {
	return rt.rng.Float64() - 0.5
}

// PerlinTurbulence samples coherent noise so neighbouring points and frames vary smoothly
type PerlinTurbulence struct {
	noise *perlin.Perlin
	Scale float64 // spatial frequency
	phase float64
}

func NewPerlinTurbulence(seed int64) (pt *PerlinTurbulence) {
	pt = &PerlinTurbulence{
		noise: perlin.NewPerlin(2, 2, 3, seed),
		Scale: 0.8,
	}
	return
}

// Advance moves the noise pattern downstream by dt seconds
func (pt *PerlinTurbulence) Advance(dt float64) {
	pt.phase += dt
}

func (pt *PerlinTurbulence) Perturbation(p r3.Vec) float64 {
	n := pt.noise.Noise3D(p.X*pt.Scale-pt.phase, p.Y*pt.Scale, p.Z*pt.Scale)
	return math.Max(-0.5, math.Min(math.Nextafter(0.5, 0), n))
}
