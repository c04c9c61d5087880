package flowfield

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gowindtunnel/aerodynamics"
	"github.com/notargets/gowindtunnel/types"
	"github.com/notargets/gowindtunnel/utils"
)

func newTestField(mph float64) (f *Field) {
	f = NewField(NoTurbulence{})
	f.SetWindSpeed(mph)
	f.SetCarPose(CarPose{Size: DefaultCarSize})
	return
}

func TestFreeStream(t *testing.T) {
	var (
		tol = 1.e-12
		f   = newTestField(50)
		fs  = 50 * aerodynamics.MPHToMS
	)
	assert.InDelta(t, fs, f.FreeStream(), tol)
	// Far from the car and the walls the field is undisturbed
	for _, p := range []r3.Vec{{X: 50}, {X: -50}, {X: 20, Y: 0.5}, {X: -8, Z: 1}} {
		assert.InDelta(t, fs, f.VelocityAt(p), tol)
	}
	// 20 units downstream, outside the wake, the ratio is the free stream ratio
	assert.InDelta(t, 1./RatioSaturation, f.VelocityRatio(f.VelocityAt(r3.Vec{X: 20})), tol)
}

func TestZones(t *testing.T) {
	var (
		tol = 1.e-12
		f   = newTestField(60)
		fs  = f.FreeStream()
	)
	tests := []struct {
		p      r3.Vec
		zone   types.FlowZone
		factor float64
	}{
		{r3.Vec{}, types.Blocked, BlockedFactor},
		{r3.Vec{X: -1.5}, types.Stagnation, 0.85},
		{r3.Vec{X: 2}, types.Wake, 1 + 0.5/3},
		{r3.Vec{Y: 1.5}, types.OverTop, 1.225},
		{r3.Vec{Z: 1.5}, types.Side, 1.0625},
		{r3.Vec{X: 10}, types.FreeStream, 1},
	}
	for _, tt := range tests {
		zone, factor := f.Zone(tt.p)
		assert.Equal(t, tt.zone, zone, tt.p)
		assert.InDelta(t, tt.factor, factor, tol, tt.p)
		if tt.p.X <= 0 {
			assert.InDelta(t, fs*tt.factor, f.VelocityAt(tt.p), tol, tt.p)
		}
	}
	// Stagnation factor approaches 0.4 at the center but the blocked zone wins first
	_, factor := f.Zone(r3.Vec{X: -1.0000001})
	assert.InDelta(t, 0.7, factor, 1.e-6)
	// Very high over-the-top points are capped
	_, factor = f.Zone(r3.Vec{Y: 50})
	assert.Equal(t, MaxZoneFactor, factor)
}

func TestYawOrientation(t *testing.T) {
	f := newTestField(60)
	// Rotating the car a quarter turn moves its wake from +X to -Z
	f.SetCarPose(CarPose{Yaw: 90, Size: DefaultCarSize})
	zone, _ := f.Zone(r3.Vec{Z: -2})
	assert.Equal(t, types.Wake, zone)
	zone, _ = f.Zone(r3.Vec{Z: 1.9})
	assert.Equal(t, types.Stagnation, zone)
	// Translating the car moves the zones with it
	f.SetCarPose(CarPose{Position: r3.Vec{X: 5, Y: -1.5}, Size: DefaultCarSize})
	zone, _ = f.Zone(r3.Vec{X: 5, Y: -1.5})
	assert.Equal(t, types.Blocked, zone)
}

func TestWallDamping(t *testing.T) {
	var (
		tol = 1.e-12
		f   = newTestField(40)
	)
	assert.InDelta(t, 0.76, f.WallFactor(r3.Vec{X: 30, Y: 1.9}), tol)
	assert.InDelta(t, WallFloor, f.WallFactor(r3.Vec{X: 30, Z: -3}), tol)
	assert.Equal(t, 1., f.WallFactor(r3.Vec{X: 30}))
	assert.InDelta(t, 0.76*f.FreeStream(), f.VelocityAt(r3.Vec{X: 30, Z: 2.9}), tol)
}

func TestNonNegativeAndFinite(t *testing.T) {
	f := NewField(NewRandomTurbulence(rand.New(rand.NewSource(7))))
	for _, mph := range []float64{0, 0.5, 50, 200, -20} {
		f.SetWindSpeed(mph)
		for _, yaw := range []float64{-30, 0, 45, 180} {
			f.SetCarPose(CarPose{Position: r3.Vec{X: 0.3, Y: -1.5, Z: 0.2}, Yaw: yaw, Size: DefaultCarSize})
			for x := -12.; x <= 12; x += 0.75 {
				for y := -2.5; y <= 2.5; y += 0.5 {
					for z := -3.5; z <= 3.5; z += 0.5 {
						v := f.VelocityAt(r3.Vec{X: x, Y: y, Z: z})
						assert.True(t, utils.IsFinite(v))
						assert.GreaterOrEqual(t, v, 0.)
					}
				}
			}
		}
	}
}

func TestDegeneratePose(t *testing.T) {
	f := newTestField(50)
	f.SetCarPose(CarPose{
		Position: r3.Vec{X: math.NaN(), Y: 1},
		Yaw:      math.Inf(1),
		Size:     BoundingSize{Width: 0, Height: 1, Length: 1},
	})
	cp := f.CarPose()
	assert.Equal(t, r3.Vec{}, cp.Position)
	assert.Equal(t, 0., cp.Yaw)
	assert.Equal(t, DefaultCarSize, cp.Size)
	assert.Equal(t, 0., f.VelocityAt(r3.Vec{X: math.NaN()}))
	f.SetWindSpeed(math.NaN())
	assert.Equal(t, 0., f.FreeStream())
	assert.Equal(t, 0., f.VelocityRatio(10))
}

func TestVelocityRatio(t *testing.T) {
	f := newTestField(50)
	fs := f.FreeStream()
	assert.Equal(t, 1., f.VelocityRatio(RatioSaturation*fs))
	assert.Equal(t, 1., f.VelocityRatio(10*fs))
	assert.Equal(t, 0., f.VelocityRatio(0))
	prev := -1.
	for v := 0.; v <= 2*fs; v += fs / 50 {
		r := f.VelocityRatio(v)
		assert.GreaterOrEqual(t, r, prev)
		prev = r
	}
}

func TestTurbulenceSeeded(t *testing.T) {
	var (
		p  = r3.Vec{X: 1.5, Y: 0.2, Z: 0.1}
		f1 = NewField(NewRandomTurbulence(rand.New(rand.NewSource(42))))
		f2 = NewField(NewRandomTurbulence(rand.New(rand.NewSource(42))))
	)
	f1.SetWindSpeed(80)
	f2.SetWindSpeed(80)
	for i := 0; i < 20; i++ {
		assert.Equal(t, f1.VelocityAt(p), f2.VelocityAt(p))
	}
	// Upstream of the car the turbulence source is not consulted
	assert.Equal(t, newTestField(80).VelocityAt(r3.Vec{X: -3}), f1.VelocityAt(r3.Vec{X: -3}))

	pt := NewPerlinTurbulence(3)
	for i := 0; i < 100; i++ {
		pt.Advance(1. / 60)
		n := pt.Perturbation(r3.Vec{X: float64(i) * 0.13, Y: 0.4, Z: -0.2})
		assert.GreaterOrEqual(t, n, -0.5)
		assert.Less(t, n, 0.5)
	}
}

func TestColorFor(t *testing.T) {
	var (
		tol = 1.e-9
	)
	assert.Equal(t, utils.Green, ColorFor(0))
	assert.Equal(t, utils.Yellow, ColorFor(0.5))
	assert.Equal(t, utils.Red, ColorFor(1))
	left := ColorFor(0.5 - 1.e-12)
	assert.InDelta(t, 1., left.R, tol)
	assert.InDelta(t, 1., left.G, tol)
	assert.Equal(t, utils.RGB{R: 0.5, G: 1, B: 0}, ColorFor(0.25))
	assert.Equal(t, utils.RGB{R: 1, G: 0.5, B: 0}, ColorFor(0.75))
}

func BenchmarkVelocityAt(b *testing.B) {
	f := NewField(NewRandomTurbulence(rand.New(rand.NewSource(1))))
	f.SetWindSpeed(60)
	b.Run("wake", func(b *testing.B) {
		p := r3.Vec{X: 2, Y: 0.2}
		for i := 0; i < b.N; i++ {
			_ = f.VelocityAt(p)
		}
	})
	b.Run("freestream", func(b *testing.B) {
		p := r3.Vec{X: -9, Y: 0.2}
		for i := 0; i < b.N; i++ {
			_ = f.VelocityAt(p)
		}
	})
}
