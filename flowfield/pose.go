package flowfield

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gowindtunnel/utils"
)

type BoundingSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Length float64 `json:"length"`
}

var DefaultCarSize = BoundingSize{Width: 1.8, Height: 1.4, Length: 4.0}

func (bs BoundingSize) valid() bool {
	return utils.IsFinite(bs.Width) && utils.IsFinite(bs.Height) && utils.IsFinite(bs.Length) &&
		bs.Width > 0 && bs.Height > 0 && bs.Length > 0
}

// CarPose is the car placement the field is evaluated against. Yaw is in degrees.
type CarPose struct {
	Position r3.Vec       `json:"position"`
	Yaw      float64      `json:"yaw"`
	Size     BoundingSize `json:"size"`
}

// Sanitize replaces non-finite or non-positive components with safe defaults: the
// origin for position, zero yaw and the default car size.
func (cp CarPose) Sanitize() (s CarPose) {
	s = cp
	if !utils.IsFiniteVec(s.Position) {
		s.Position = r3.Vec{}
	}
	if !utils.IsFinite(s.Yaw) {
		s.Yaw = 0
	}
	if !s.Size.valid() {
		s.Size = DefaultCarSize
	}
	return
}

// Tunnel is the test section cross-section used for wall damping, centered on the origin
type Tunnel struct {
	Width, Height, Length float64
}

var DefaultTunnel = Tunnel{Width: 6, Height: 4, Length: 12}

// WallDistance is the distance from p to the nearest of the floor, ceiling and side walls
func (t Tunnel) WallDistance(p r3.Vec) (d float64) {
	var (
		hh, hw = t.Height / 2, t.Width / 2
	)
	d = math.Min(
		math.Min(math.Abs(p.Y-hh), math.Abs(p.Y+hh)),
		math.Min(math.Abs(p.Z-hw), math.Abs(p.Z+hw)))
	return
}
