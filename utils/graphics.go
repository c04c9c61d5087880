package utils

import (
	"image/color"
	"math"
)

// RGB is a color with components nominally in [0,1]
type RGB struct {
	R, G, B float64
}

var (
	Green  = RGB{0, 1, 0}
	Yellow = RGB{1, 1, 0}
	Red    = RGB{1, 0, 0}
)

func LerpRGB(a, b RGB, t float64) RGB {
	return RGB{
		R: Lerp(a.R, b.R, t),
		G: Lerp(a.G, b.G, t),
		B: Lerp(a.B, b.B, t),
	}
}

// Scale multiplies each component and caps the result at 1
func (c RGB) Scale(r, g, b float64) RGB {
	return RGB{
		R: math.Min(1, c.R*r),
		G: math.Min(1, c.G*g),
		B: math.Min(1, c.B*b),
	}
}

func (c RGB) ToRGBA() color.RGBA {
	toByte := func(f float64) uint8 {
		return uint8(math.Round(Clamp(f, 0, 1) * 255))
	}
	return color.RGBA{
		R: toByte(c.R),
		G: toByte(c.G),
		B: toByte(c.B),
		A: 255,
	}
}

type ColorName uint8

const (
	White ColorName = iota
	Blue
	RedName
	GreenName
	Black
)

func GetColor(name ColorName) (c color.RGBA) {
	switch name {
	case White:
		c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	case Blue:
		c = color.RGBA{R: 50, G: 0, B: 255, A: 255}
	case RedName:
		c = color.RGBA{R: 255, G: 0, B: 50, A: 255}
	case GreenName:
		c = color.RGBA{R: 25, G: 255, B: 25, A: 255}
	case Black:
		c = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	}
	return
}
