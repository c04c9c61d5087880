package streamlines

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gowindtunnel/flowfield"
	"github.com/notargets/gowindtunnel/scene"
	"github.com/notargets/gowindtunnel/types"
)

func newTestGenerator(s Settings) (g *Generator, f *flowfield.Field) {
	f = flowfield.NewField(flowfield.NoTurbulence{})
	f.SetWindSpeed(60)
	f.SetCarPose(flowfield.CarPose{Size: flowfield.DefaultCarSize})
	g = NewGenerator(f, s, zerolog.Nop())
	return
}

func TestLayouts(t *testing.T) {
	assert.Equal(t, 25, len(Layouts[types.Main].Starts))
	assert.Equal(t, 8, len(Layouts[types.Long].Starts))
	assert.Equal(t, 7, len(Layouts[types.UnderCar].Starts))
	assert.Equal(t, [2]float64{-2, -2}, Layouts[types.Main].Starts[0])
	assert.Equal(t, [2]float64{2, 2}, Layouts[types.Main].Starts[24])
	assert.Equal(t, [2]float64{-1.8, -1}, Layouts[types.UnderCar].Starts[0])
	assert.InDelta(t, 1., Layouts[types.UnderCar].Starts[6][1], 1.e-12)
	assert.Equal(t, 401, Layouts[types.Main].VertexCount())
	assert.Equal(t, 601, Layouts[types.Long].VertexCount())
	assert.Equal(t, 301, Layouts[types.UnderCar].VertexCount())
}

func TestGeneratorLifecycle(t *testing.T) {
	g, _ := newTestGenerator(DefaultSettings())
	sc := scene.NewScene()
	assert.Equal(t, types.Disabled, g.State())

	g.Update()
	assert.Equal(t, 0, g.Rebuilds)

	g.Enable(sc)
	require.Equal(t, types.Enabled, g.State())
	assert.Equal(t, 40, sc.Len())
	counts := g.Counts()
	assert.Equal(t, 25, counts[types.Main])
	assert.Equal(t, 8, counts[types.Long])
	assert.Equal(t, 7, counts[types.UnderCar])
	assert.Equal(t, 1, g.Rebuilds)

	// Enabling again does nothing
	g.Enable(sc)
	assert.Equal(t, 40, sc.Len())
	assert.Equal(t, 1, g.Rebuilds)

	g.Disable()
	assert.Equal(t, types.Disabled, g.State())
	assert.Equal(t, 0, sc.Len())
	assert.Empty(t, g.Lines())
	g.Disable()
	g.Update()

	// Disabled is reentrant
	g.Enable(sc)
	assert.Equal(t, types.Enabled, g.State())
	assert.Equal(t, 40, sc.Len())

	g.Dispose()
	assert.Equal(t, types.Disposed, g.State())
	assert.Equal(t, 0, sc.Len())
	g.Enable(sc)
	g.Update()
	g.SetSettings(DefaultSettings())
	assert.Equal(t, types.Disposed, g.State())
	assert.Equal(t, 0, sc.Len())
}

func TestGeneratorToggles(t *testing.T) {
	s := DefaultSettings()
	s.ShowLong = false
	g, _ := newTestGenerator(s)
	sc := scene.NewScene()
	g.Enable(sc)
	assert.Equal(t, 0, g.Counts()[types.Long])
	assert.Equal(t, 32, sc.Len())

	s.ShowUnderCar = false
	s.ShowLong = true
	g.SetSettings(s)
	assert.Equal(t, types.Enabled, g.State())
	assert.Equal(t, 8, g.Counts()[types.Long])
	assert.Equal(t, 0, g.Counts()[types.UnderCar])
	assert.Equal(t, 33, sc.Len())
}

func TestGeneratorRebuild(t *testing.T) {
	g, _ := newTestGenerator(DefaultSettings())
	g.Enable(scene.NewScene())

	snapshot := func() (out [][]r3.Vec) {
		for _, sl := range g.Lines() {
			out = append(out, append([]r3.Vec(nil), sl.Vertices...))
		}
		return
	}
	first := snapshot()
	g.Rebuild()
	assert.Equal(t, first, snapshot())

	// Pose unchanged: recolor only
	g.Update()
	assert.Equal(t, 2, g.Rebuilds)

	// Pose changed: vertex counts stay fixed but geometry moves
	g.SetCarPose(flowfield.CarPose{Position: r3.Vec{X: 1, Y: -0.5}, Yaw: 30, Size: flowfield.DefaultCarSize})
	g.Update()
	assert.Equal(t, 3, g.Rebuilds)
	moved := snapshot()
	require.Equal(t, len(first), len(moved))
	for i, sl := range g.Lines() {
		assert.Equal(t, sl.VertexCount(), len(moved[i]))
		assert.Equal(t, sl.VertexCount(), len(sl.Colors))
	}
	assert.NotEqual(t, first, moved)
}

func TestDeflection(t *testing.T) {
	g, _ := newTestGenerator(DefaultSettings())
	g.Enable(scene.NewScene())
	var center *Streamline
	for _, sl := range g.Lines() {
		if sl.Category == types.Main && sl.Start == [2]float64{0, 0} {
			center = sl
		}
		for _, c := range sl.Colors {
			assert.True(t, c.R >= 0 && c.R <= 1 && c.G >= 0 && c.G <= 1 && c.B >= 0 && c.B <= 1)
		}
		if sl.Category == types.UnderCar {
			for _, p := range sl.Control {
				assert.GreaterOrEqual(t, p.Y, GroundLevel-VariationAmp)
			}
		}
	}
	require.NotNil(t, center)
	// x = 0 passes through the car center and is pushed over the roof
	p := center.Control[125]
	assert.InDelta(t, 0., p.X, 1.e-12)
	assert.InDelta(t, 2., p.Y, VariationAmp+1.e-9)
	assert.InDelta(t, 1.5, p.Z, VariationAmp+1.e-9)
	// Far upstream the line only carries the small flow variation
	assert.InDelta(t, 0., center.Control[0].Y, VariationAmp)

	// Without flow intensity nothing is deflected
	s := DefaultSettings()
	s.FlowIntensity = 0
	g.SetSettings(s)
	for _, sl := range g.Lines() {
		if sl.Category == types.Main && sl.Start == [2]float64{0, 0} {
			assert.InDelta(t, 0., sl.Control[125].Y, VariationAmp)
		}
	}
}

func BenchmarkGenerator(b *testing.B) {
	g, _ := newTestGenerator(DefaultSettings())
	g.Enable(scene.NewScene())
	b.Run("Rebuild", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			g.Rebuild()
		}
	})
	b.Run("Recolor", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			g.Recolor()
		}
	})
}
