package graphics

import (
	"image/color"
	"math"

	"github.com/notargets/avs/assets"
	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"

	"github.com/notargets/gowindtunnel/protocol"
	"github.com/notargets/gowindtunnel/utils"
)

const (
	colorLevels = 8 // per channel when binning vertex colors into line colors
	glyphSize   = 0.05
)

type RenderText struct {
	Color color.RGBA
	Text  string
	Pitch uint32
	X, Y  float32
}

// Lines holds 2D segments, four floats each, grouped by color
type Lines map[color.RGBA][]float32

func (l Lines) AddSegment(x1, y1, x2, y2 float64, col color.RGBA) {
	l[col] = append(l[col],
		float32(x1), float32(y1),
		float32(x2), float32(y2),
	)
}

func (l Lines) AddCross(x, y, size float64, col color.RGBA) {
	l.AddSegment(x-size, y, x+size, y, col)
	l.AddSegment(x, y-size, x, y+size, col)
}

// AddRect outlines the axis aligned rectangle with the given center and half extents
func (l Lines) AddRect(cx, cy, hx, hy float64, col color.RGBA) {
	var (
		x0, x1 = cx - hx, cx + hx
		y0, y1 = cy - hy, cy + hy
	)
	l.AddSegment(x0, y0, x1, y0, col)
	l.AddSegment(x1, y0, x1, y1, col)
	l.AddSegment(x1, y1, x0, y1, col)
	l.AddSegment(x0, y1, x0, y0, col)
}

// Segments is the total number of segments over all colors
func (l Lines) Segments() (n int) {
	for _, line := range l {
		n += len(line) / 4
	}
	return
}

// Bounds is the extent of every segment endpoint
func (l Lines) Bounds() (xMin, xMax, yMin, yMax float32) {
	xMin, xMax = float32(math.MaxFloat32), -float32(math.MaxFloat32)
	yMin, yMax = float32(math.MaxFloat32), -float32(math.MaxFloat32)
	for _, line := range l {
		for i := 0; i+1 < len(line); i += 2 {
			x, y := line[i], line[i+1]
			xMin, xMax = min(xMin, x), max(xMax, x)
			yMin, yMax = min(yMin, y), max(yMax, y)
		}
	}
	return
}

// binColor reduces a vertex color to one of a small set so lines can be drawn per color
func binColor(r, g, b float32) color.RGBA {
	q := func(f float32) float64 {
		return math.Round(utils.Clamp(float64(f), 0, 1)*(colorLevels-1)) / (colorLevels - 1)
	}
	return utils.RGB{R: q(r), G: q(g), B: q(b)}.ToRGBA()
}

// SideView projects a frame onto the x-y plane: downstream to the right, up is up
func SideView(fr protocol.Frame) (l Lines) {
	l = make(Lines)
	for _, sl := range fr.Streamlines {
		n := len(sl.Positions) / 3
		for i := 0; i+1 < n; i++ {
			p, q := sl.Positions[3*i:3*i+3], sl.Positions[3*i+3:3*i+6]
			var col color.RGBA
			if len(sl.Colors) >= 3*i+3 {
				c := sl.Colors[3*i : 3*i+3]
				col = binColor(c[0], c[1], c[2])
			} else {
				col = utils.GetColor(utils.White)
			}
			l.AddSegment(float64(p[0]), float64(p[1]), float64(q[0]), float64(q[1]), col)
		}
	}
	ps := fr.Particles
	for i := 0; i+2 < len(ps.Positions); i += 3 {
		col := utils.GetColor(utils.Blue)
		if i+2 < len(ps.Colors) {
			col = binColor(ps.Colors[i], ps.Colors[i+1], ps.Colors[i+2])
		}
		l.AddCross(float64(ps.Positions[i]), float64(ps.Positions[i+1]), glyphSize, col)
	}
	if len(fr.Car.Position) == 3 && len(fr.Car.Size) == 3 {
		var (
			yaw   = utils.DegToRad(fr.Car.Yaw)
			w, h  = fr.Car.Size[0], fr.Car.Size[1]
			ln    = fr.Car.Size[2]
			halfX = 0.5 * (math.Abs(ln*math.Cos(yaw)) + math.Abs(w*math.Sin(yaw)))
		)
		l.AddRect(fr.Car.Position[0], fr.Car.Position[1], halfX, 0.5*h,
			utils.GetColor(utils.RedName))
	}
	return
}

// Plot opens a chart window with the lines and text. It does not return.
func Plot(lines Lines, text []RenderText) {
	xMin, xMax, yMin, yMax := lines.Bounds()
	ch := chart2d.NewChart2D(xMin, xMax, yMin, yMax,
		1024, 1024, utils2.WHITE, utils2.BLACK)
	for col, line := range lines {
		ch.AddLine(line, col)
	}
	for _, txt := range text {
		tf := assets.NewTextFormatter("NotoSans",
			"Regular", txt.Pitch,
			txt.Color, true, false)
		ch.Printf(tf, txt.X, txt.Y, "%s", txt.Text)
	}
	select {}
}
