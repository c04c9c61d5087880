package particles

import (
	"math"
	"math/rand"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gowindtunnel/flowfield"
	"github.com/notargets/gowindtunnel/scene"
	"github.com/notargets/gowindtunnel/utils"
)

const (
	Name           = "particles"
	ReferenceFrame = 1. / 60 // seconds, the frame the step scale is tuned for
)

type Config struct {
	Count            int
	XMin, XMax       float64 // inlet and exit of the particle domain
	YMin, YMax       float64
	ZMin, ZMax       float64
	SpeedScale       float64 // downstream speed per mph
	Jitter           float64 // random extra downstream speed
	DriftJitter      float64 // initial vertical and lateral speed spread
	FrameStep        float64 // position step per unit velocity per reference frame
	TurbulenceRadius float64 // particles nearer the car than this are stirred
	TurbulenceGain   float64
	WakeLift         float64
	MaxDrift         float64 // bound on vertical and lateral speed
}

func DefaultConfig() Config {
	return Config{
		Count:            500,
		XMin:             -10,
		XMax:             10,
		YMin:             -3,
		YMax:             3,
		ZMin:             -3,
		ZMax:             3,
		SpeedScale:       0.1,
		Jitter:           0.5,
		DriftJitter:      0.1,
		FrameStep:        0.02,
		TurbulenceRadius: 3,
		TurbulenceGain:   0.05,
		WakeLift:         0.02,
		MaxDrift:         1,
	}
}

type Particle struct {
	Position r3.Vec
	Velocity r3.Vec
}

// Advector owns a fixed size particle cloud advected through a shared flow field
type Advector struct {
	cfg       Config
	field     *flowfield.Field
	rng       *rand.Rand
	log       zerolog.Logger
	particles []Particle
	colors    []utils.RGB
	container scene.Container
	disposed  bool
	Recycled  int // particles returned to the inlet since construction
}

func NewAdvector(cfg Config, field *flowfield.Field, rng *rand.Rand, log zerolog.Logger) (pa *Advector) {
	if cfg.Count <= 0 {
		cfg.Count = DefaultConfig().Count
	}
	pa = &Advector{
		cfg:       cfg,
		field:     field,
		rng:       rng,
		log:       log.With().Str("component", Name).Logger(),
		particles: make([]Particle, cfg.Count),
		colors:    make([]utils.RGB, cfg.Count),
	}
	mph := field.WindSpeed()
	for i := range pa.particles {
		p := &pa.particles[i]
		p.Position = r3.Vec{
			X: pa.uniform(cfg.XMin, cfg.XMax),
			Y: pa.uniform(cfg.YMin, cfg.YMax),
			Z: pa.uniform(cfg.ZMin, cfg.ZMax),
		}
		p.Velocity = r3.Vec{
			X: mph*cfg.SpeedScale + rng.Float64()*cfg.Jitter,
			Y: (rng.Float64() - 0.5) * cfg.DriftJitter,
			Z: (rng.Float64() - 0.5) * cfg.DriftJitter,
		}
	}
	pa.recolor()
	pa.log.Debug().Int("count", cfg.Count).Msg("particle cloud created")
	return
}

func (pa *Advector) uniform(lo, hi float64) float64 {
	return lo + pa.rng.Float64()*(hi-lo)
}

func (pa *Advector) Name() string { return Name }

func (pa *Advector) Config() Config { return pa.cfg }

func (pa *Advector) Len() int { return len(pa.particles) }

func (pa *Advector) Particles() []Particle { return pa.particles }

func (pa *Advector) Colors() []utils.RGB { return pa.colors }

func (pa *Advector) SetWindSpeed(mph float64) {
	pa.field.SetWindSpeed(mph)
}

func (pa *Advector) UpdateCarInfo(cp flowfield.CarPose) {
	pa.field.SetCarPose(cp)
}

// Update advances every particle by dt seconds of flow at the given wind speed, recycles
// those that left the domain, and recolors the cloud. It does nothing once disposed.
func (pa *Advector) Update(dt, windSpeedMPH float64) {
	if pa.disposed {
		return
	}
	var (
		cfg    = pa.cfg
		frames = 0.
		fs     = pa.field.FreeStream()
		car    = pa.field.CarPose().Position
	)
	if dt > 0 && utils.IsFinite(dt) {
		frames = dt / ReferenceFrame
	}
	if !utils.IsFinite(windSpeedMPH) {
		windSpeedMPH = 0
	}
	for i := range pa.particles {
		p := &pa.particles[i]
		p.Position = r3.Add(p.Position, r3.Scale(cfg.FrameStep*frames, p.Velocity))
		switch {
		case p.Position.X > cfg.XMax:
			pa.respawn(p, cfg.XMin)
		case p.Position.X < cfg.XMin:
			pa.respawn(p, cfg.XMax)
		}
		p.Position.Y = utils.Clamp(p.Position.Y, cfg.YMin, cfg.YMax)
		p.Position.Z = utils.Clamp(p.Position.Z, cfg.ZMin, cfg.ZMax)

		vx := windSpeedMPH*cfg.SpeedScale + pa.rng.Float64()*cfg.Jitter
		if fs > 0 {
			vx *= pa.field.VelocityAt(p.Position) / fs
		}
		p.Velocity.X = vx

		rel := r3.Sub(p.Position, car)
		if d := r3.Norm(rel); d < cfg.TurbulenceRadius {
			s := 1 - d/cfg.TurbulenceRadius
			p.Velocity.Y += (pa.rng.Float64() - 0.5) * s * cfg.TurbulenceGain
			p.Velocity.Z += (pa.rng.Float64() - 0.5) * s * cfg.TurbulenceGain
			if rel.X > 0 {
				p.Velocity.Y += s * cfg.WakeLift
			}
		}
		p.Velocity.Y = utils.Clamp(p.Velocity.Y, -cfg.MaxDrift, cfg.MaxDrift)
		p.Velocity.Z = utils.Clamp(p.Velocity.Z, -cfg.MaxDrift, cfg.MaxDrift)
	}
	pa.recolor()
}

func (pa *Advector) respawn(p *Particle, x float64) {
	p.Position = r3.Vec{
		X: x,
		Y: pa.uniform(pa.cfg.YMin, pa.cfg.YMax),
		Z: pa.uniform(pa.cfg.ZMin, pa.cfg.ZMax),
	}
	pa.Recycled++
}

func (pa *Advector) recolor() {
	for i, p := range pa.particles {
		pa.colors[i] = flowfield.ColorFor(pa.field.VelocityRatio(pa.field.VelocityAt(p.Position)))
	}
}

// Positions writes the cloud as a flat xyz buffer for a renderer
func (pa *Advector) Positions(buf []float64) []float64 {
	if cap(buf) < 3*len(pa.particles) {
		buf = make([]float64, 3*len(pa.particles))
	}
	buf = buf[:3*len(pa.particles)]
	for i, p := range pa.particles {
		buf[3*i], buf[3*i+1], buf[3*i+2] = p.Position.X, p.Position.Y, p.Position.Z
	}
	return buf
}

// MaxX is the furthest downstream particle coordinate
func (pa *Advector) MaxX() (xmax float64) {
	xmax = math.Inf(-1)
	for _, p := range pa.particles {
		xmax = math.Max(xmax, p.Position.X)
	}
	return
}

// Attach adds the cloud to c, detaching it from any previous container first
func (pa *Advector) Attach(c scene.Container) {
	if pa.disposed || c == nil || pa.container == c {
		return
	}
	pa.Detach()
	c.Add(pa)
	pa.container = c
}

func (pa *Advector) Detach() {
	if pa.container != nil {
		pa.container.Remove(pa)
		pa.container = nil
	}
}

func (pa *Advector) Attached() bool { return pa.container != nil }

// Dispose detaches and releases the buffers. It is idempotent.
func (pa *Advector) Dispose() {
	if pa.disposed {
		return
	}
	pa.Detach()
	pa.particles, pa.colors = nil, nil
	pa.disposed = true
	pa.log.Debug().Msg("particle cloud disposed")
}

func (pa *Advector) Disposed() bool { return pa.disposed }
