package particles

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gowindtunnel/flowfield"
	"github.com/notargets/gowindtunnel/scene"
)

func newTestAdvector(seed int64, mph float64) (pa *Advector, f *flowfield.Field) {
	f = flowfield.NewField(flowfield.NewRandomTurbulence(rand.New(rand.NewSource(seed))))
	f.SetWindSpeed(mph)
	pa = NewAdvector(DefaultConfig(), f, rand.New(rand.NewSource(seed)), zerolog.Nop())
	return
}

func TestAdvectorInit(t *testing.T) {
	pa, _ := newTestAdvector(1, 50)
	cfg := pa.Config()
	require.Equal(t, 500, pa.Len())
	assert.Equal(t, pa.Len(), len(pa.Colors()))
	for _, p := range pa.Particles() {
		assert.True(t, p.Position.X >= cfg.XMin && p.Position.X <= cfg.XMax)
		assert.True(t, p.Position.Y >= cfg.YMin && p.Position.Y <= cfg.YMax)
		assert.True(t, p.Position.Z >= cfg.ZMin && p.Position.Z <= cfg.ZMax)
		assert.True(t, p.Velocity.X >= 5 && p.Velocity.X <= 5.5)
	}
}

func TestAdvectorRecycling(t *testing.T) {
	var (
		dts = []float64{1. / 60, 1. / 30, 0.1, 1. / 144}
	)
	pa, _ := newTestAdvector(2, 200)
	cfg := pa.Config()
	for i := 0; i < 2000; i++ {
		pa.Update(dts[i%len(dts)], 200)
		require.Equal(t, cfg.Count, pa.Len())
		assert.LessOrEqual(t, pa.MaxX(), cfg.XMax)
	}
	assert.Greater(t, pa.Recycled, 0)
	for _, p := range pa.Particles() {
		assert.True(t, p.Position.Y >= cfg.YMin && p.Position.Y <= cfg.YMax)
		assert.LessOrEqual(t, p.Velocity.Y, cfg.MaxDrift)
		assert.GreaterOrEqual(t, p.Velocity.Z, -cfg.MaxDrift)
	}
}

func TestAdvectorDegenerateInputs(t *testing.T) {
	pa, _ := newTestAdvector(3, 0)
	cfg := pa.Config()
	before := append([]Particle(nil), pa.Particles()...)
	pa.Update(0, 0)
	for i, p := range pa.Particles() {
		assert.Equal(t, before[i].Position, p.Position)
	}
	// Reversed flow recycles at the inlet instead
	for i := 0; i < 3000; i++ {
		pa.Update(1./60, -150)
		for _, p := range pa.Particles() {
			require.GreaterOrEqual(t, p.Position.X, cfg.XMin)
		}
	}
	assert.Equal(t, cfg.Count, pa.Len())
}

func TestAdvectorDeterministic(t *testing.T) {
	a, _ := newTestAdvector(9, 70)
	b, _ := newTestAdvector(9, 70)
	for i := 0; i < 50; i++ {
		a.Update(1./60, 70)
		b.Update(1./60, 70)
	}
	assert.Equal(t, a.Positions(nil), b.Positions(nil))
	assert.Equal(t, a.Colors(), b.Colors())
}

func TestAdvectorLifecycle(t *testing.T) {
	pa, f := newTestAdvector(4, 50)
	sc := scene.NewScene()
	pa.Attach(sc)
	pa.Attach(sc)
	assert.True(t, pa.Attached())
	assert.Equal(t, []string{Name}, sc.Names())

	pa.UpdateCarInfo(flowfield.CarPose{Yaw: 15, Size: flowfield.DefaultCarSize})
	assert.Equal(t, 15., f.CarPose().Yaw)
	pa.SetWindSpeed(80)
	assert.Equal(t, 80., f.WindSpeed())

	pa.Dispose()
	pa.Dispose()
	assert.True(t, pa.Disposed())
	assert.Equal(t, 0, sc.Len())
	assert.NotPanics(t, func() { pa.Update(1./60, 50) })
	pa.Attach(sc)
	assert.Equal(t, 0, sc.Len())
}

func BenchmarkAdvectorUpdate(b *testing.B) {
	pa, _ := newTestAdvector(5, 60)
	b.Run("500", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			pa.Update(1./60, 60)
		}
	})
}
