package graphics

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gowindtunnel/protocol"
	"github.com/notargets/gowindtunnel/utils"
)

func TestLines(t *testing.T) {
	var (
		red   = utils.GetColor(utils.RedName)
		white = utils.GetColor(utils.White)
	)
	l := make(Lines)
	l.AddRect(1, 2, 3, 0.5, red)
	l.AddCross(-4, 0, 0.25, white)
	assert.Equal(t, 6, l.Segments())
	assert.Len(t, l[red], 16)
	xMin, xMax, yMin, yMax := l.Bounds()
	assert.Equal(t, []float32{-4.25, 4, -0.25, 2.5}, []float32{xMin, xMax, yMin, yMax})
}

func TestBinColor(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 255, A: 255}, binColor(1, 0, 0))
	assert.Equal(t, color.RGBA{R: 255, G: 255, A: 255}, binColor(1.2, 0.97, -1))
	// Nearby shades share a bin
	assert.Equal(t, binColor(0.5, 0.5, 0.1), binColor(0.51, 0.52, 0.09))
}

func TestSideView(t *testing.T) {
	fr := protocol.Frame{
		Car: protocol.Car{
			Type:     "sedan",
			Position: []float64{0, -1.5, 0},
			Size:     []float64{1.8, 1.4, 4.0},
			Yaw:      90,
		},
		Particles: protocol.Cloud{
			Positions: []float32{-5, 0, 0, 5, 1, 0},
			Colors:    []float32{0, 1, 0, 1, 0, 0},
		},
		Streamlines: []protocol.Streamline{{
			Category: "main",
			Cloud: protocol.Cloud{
				Positions: []float32{-15, 0, 0, 0, 0.5, 0, 9, 0, 0},
				Colors:    []float32{0, 1, 0, 1, 1, 0, 1, 0, 0},
			},
		}},
	}
	l := SideView(fr)
	// 2 streamline segments, 2 segments per particle, 4 for the car
	assert.Equal(t, 2+4+4, l.Segments())
	car := l[utils.GetColor(utils.RedName)]
	require.NotEmpty(t, car)
	// Turned broadside the car shows its width
	xMin, xMax, yMin, yMax := Lines{utils.GetColor(utils.RedName): car[len(car)-16:]}.Bounds()
	assert.InDelta(t, -0.9, xMin, 1.e-6)
	assert.InDelta(t, 0.9, xMax, 1.e-6)
	assert.InDelta(t, -2.2, yMin, 1.e-6)
	assert.InDelta(t, -0.8, yMax, 1.e-6)

	xMin, xMax, _, _ = l.Bounds()
	assert.Equal(t, float32(-15), xMin)
	assert.Equal(t, float32(9), xMax)
}
