package flowfield

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gowindtunnel/aerodynamics"
	"github.com/notargets/gowindtunnel/types"
	"github.com/notargets/gowindtunnel/utils"
)

// Zone constants are tuned for visual plausibility, they are not derived from
// aerodynamic theory.
const (
	BlockedRadius    = 1.0 // inside this the flow is nearly stopped
	BlockedFactor    = 0.1
	StagnationRadius = 2.0
	StagnationDrop   = 0.6 // factor falls to 1-0.6 = 0.4 at the car center
	WakeRadius       = 3.0
	WakeGain         = 0.5 // factor rises to 1.5 at the car center
	OverTopReach     = 2.0 // half length of the over-the-top and side bands
	OverTopGain      = 0.3 // per 2 units of height
	SideClearance    = 1.0
	SideGain         = 0.25 // per 2 units of lateral offset past the clearance
	MinZoneFactor    = 0.1
	MaxZoneFactor    = 1.5
	WallThreshold    = 0.5
	WallFloor        = 0.7
	TurbulenceRadius = 4.0
	TurbulenceGain   = 0.2
	RatioSaturation  = 1.5 // velocity ratio reaches 1 at this multiple of free stream
)

// Field is the analytic velocity approximation around a car in the test section
type Field struct {
	windSpeedMPH float64
	freeStream   float64 // m/s
	pose         CarPose
	yawRad       float64
	Tunnel       Tunnel
	turbulence   Turbulence
}

func NewField(turbulence Turbulence) (f *Field) {
	if turbulence == nil {
		turbulence = NoTurbulence{}
	}
	f = &Field{
		Tunnel:     DefaultTunnel,
		turbulence: turbulence,
		pose:       CarPose{Size: DefaultCarSize},
	}
	return
}

func (f *Field) SetWindSpeed(mph float64) {
	if !utils.IsFinite(mph) {
		mph = 0
	}
	f.windSpeedMPH = mph
	f.freeStream = mph * aerodynamics.MPHToMS
}

func (f *Field) WindSpeed() float64 { return f.windSpeedMPH }

// FreeStream is the undisturbed velocity in m/s
func (f *Field) FreeStream() float64 { return f.freeStream }

// SetCarPose replaces the cached pose wholesale after sanitizing it
func (f *Field) SetCarPose(cp CarPose) {
	f.pose = cp.Sanitize()
	f.yawRad = utils.DegToRad(f.pose.Yaw)
}

func (f *Field) CarPose() CarPose { return f.pose }

func (f *Field) SetTurbulence(t Turbulence) {
	if t == nil {
		t = NoTurbulence{}
	}
	f.turbulence = t
}

func (f *Field) Turbulence() Turbulence { return f.turbulence }

// Local returns p relative to the car, rotated into the car frame, and its distance
// from the car center.
func (f *Field) Local(p r3.Vec) (local r3.Vec, dist float64) {
	rel := r3.Sub(p, f.pose.Position)
	local = utils.RotateXZ(rel, f.yawRad)
	dist = r3.Norm(rel)
	return
}

// Zone classifies p and returns the multiplicative factor applied to the free stream
func (f *Field) Zone(p r3.Vec) (zone types.FlowZone, factor float64) {
	local, d := f.Local(p)
	return zoneOf(local, d)
}

func zoneOf(local r3.Vec, d float64) (zone types.FlowZone, factor float64) {
	var (
		rx, ry, rz = local.X, local.Y, local.Z
	)
	switch {
	case d < BlockedRadius:
		zone, factor = types.Blocked, BlockedFactor
	case rx < 0 && d < StagnationRadius:
		zone = types.Stagnation
		factor = 1 - StagnationDrop*(StagnationRadius-d)/StagnationRadius
	case rx > 0 && d < WakeRadius:
		zone = types.Wake
		factor = 1 + WakeGain*(WakeRadius-d)/WakeRadius
	case ry > 0 && math.Abs(rx) < OverTopReach:
		zone = types.OverTop
		factor = 1 + ry/2*OverTopGain
	case math.Abs(rz) > SideClearance && math.Abs(rx) < OverTopReach:
		zone = types.Side
		factor = 1 + (math.Abs(rz)-SideClearance)/2*SideGain
	default:
		zone, factor = types.FreeStream, 1
	}
	factor = utils.Clamp(factor, MinZoneFactor, MaxZoneFactor)
	return
}

// WallFactor damps the flow within WallThreshold of a tunnel wall, down to WallFloor
// at the wall itself.
func (f *Field) WallFactor(p r3.Vec) float64 {
	wd := f.Tunnel.WallDistance(p)
	if wd < WallThreshold {
		return WallFloor + (1-WallFloor)*(wd/WallThreshold)
	}
	return 1
}

// VelocityAt returns the local air speed in m/s. The result is never negative, and a
// non-finite point yields zero.
func (f *Field) VelocityAt(p r3.Vec) (v float64) {
	if !utils.IsFiniteVec(p) {
		return 0
	}
	local, d := f.Local(p)
	_, factor := zoneOf(local, d)
	v = f.freeStream * factor * f.WallFactor(p)
	if p.X > f.pose.Position.X && d < TurbulenceRadius {
		v += v * f.turbulence.Perturbation(p) * TurbulenceGain * (TurbulenceRadius - d) / TurbulenceRadius
	}
	v = math.Max(0, v)
	return
}

// VelocityRatio normalizes v against RatioSaturation times the free stream, in [0,1]
func (f *Field) VelocityRatio(v float64) float64 {
	vMax := RatioSaturation * f.freeStream
	if !(vMax > 0) {
		return 0
	}
	return utils.Clamp(v/vMax, 0, 1)
}
