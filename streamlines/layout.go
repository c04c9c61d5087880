package streamlines

import (
	"github.com/notargets/gowindtunnel/types"
)

const (
	InletX           = -15. // every streamline starts here
	DeflectionRadius = 4.   // control points nearer the car than this are deflected
	GroundLevel      = -2.  // under-car streamlines never dip below this
	VariationAmp     = 0.08
	VariationDecay   = 0.05
	ResampleFactor   = 2 // rendered vertices per control point
)

// Layout is the fixed arrangement of one streamline category
type Layout struct {
	Category  types.StreamlineCategory
	Starts    [][2]float64 // (y, z) inlet offsets
	Points    int          // control points per streamline
	Length    float64      // along the tunnel axis
	Opacity   float64
	LineWidth float64
}

// VertexCount is the number of rendered vertices per streamline
func (l Layout) VertexCount() int {
	return ResampleFactor*l.Points + 1
}

var Layouts = map[types.StreamlineCategory]Layout{
	types.Main: {
		Category:  types.Main,
		Starts:    mainGrid(),
		Points:    200,
		Length:    24,
		Opacity:   0.8,
		LineWidth: 2,
	},
	types.Long: {
		Category: types.Long,
		Starts: [][2]float64{
			{0, 0}, {1.5, 0}, {-1.5, 0}, {0, 1.5},
			{0, -1.5}, {1, 1}, {1, -1}, {-1, 1},
		},
		Points:    300,
		Length:    30,
		Opacity:   0.9,
		LineWidth: 3,
	},
	types.UnderCar: {
		Category:  types.UnderCar,
		Starts:    underCarRow(7),
		Points:    150,
		Length:    20,
		Opacity:   0.7,
		LineWidth: 2,
	},
}

// 5x5 grid over y and z in [-2,2]
func mainGrid() (starts [][2]float64) {
	for i := 0; i < 25; i++ {
		row, col := i/5, i%5
		starts = append(starts, [2]float64{-2 + float64(row), -2 + float64(col)})
	}
	return
}

// A row just above the floor spanning z in [-1,1]
func underCarRow(n int) (starts [][2]float64) {
	for i := 0; i < n; i++ {
		starts = append(starts, [2]float64{-1.8, -1 + float64(i)*2/float64(n-1)})
	}
	return
}
