package tunnel

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gowindtunnel/aerodynamics"
	"github.com/notargets/gowindtunnel/cars"
	"github.com/notargets/gowindtunnel/flowfield"
	"github.com/notargets/gowindtunnel/particles"
	"github.com/notargets/gowindtunnel/protocol"
	"github.com/notargets/gowindtunnel/scene"
	"github.com/notargets/gowindtunnel/streamlines"
	"github.com/notargets/gowindtunnel/telemetry"
	"github.com/notargets/gowindtunnel/types"
	"github.com/notargets/gowindtunnel/utils"
)

// Inputs are the user controlled values the frame loop consumes
type Inputs struct {
	WindSpeed   float64 // mph
	CarAngle    float64 // degrees
	CarType     string
	CarPosition r3.Vec
}

// pending holds requests made between frames. Only Step reads it, once per frame.
type pending struct {
	inputs             Inputs
	streamlines        *bool
	streamlineSettings *streamlines.Settings
}

// Tunnel owns one flow field shared by the particle cloud and the streamlines. Inputs
// may be set from any goroutine; they take effect together at the start of the next
// Step, so a frame never sees a half updated car pose.
type Tunnel struct {
	mu      sync.Mutex
	pending pending
	paused  bool
	last    protocol.Frame

	// Owned by the goroutine calling Step
	committed   Inputs
	carType     cars.CarType
	field       *flowfield.Field
	perlin      *flowfield.PerlinTurbulence
	particles   *particles.Advector
	streamlines *streamlines.Generator
	model       *aerodynamics.Model
	scene       *scene.Scene
	time        float64
	seq         uint64

	catalog    *cars.Catalog
	placements *cars.Store
	metrics    *telemetry.FrameMetrics
	log        zerolog.Logger
}

// New builds a tunnel around the configured car type. placements may be nil, in which
// case cars start at their default placement.
func New(cfg Config, catalog *cars.Catalog, placements *cars.Store, log zerolog.Logger) (*Tunnel, error) {
	if err := aerodynamics.Validate(cfg.WindSpeed, cfg.CarAngle); err != nil {
		return nil, err
	}
	ct, err := catalog.Get(cfg.CarType)
	if err != nil {
		return nil, err
	}
	metrics, err := telemetry.NewFrameMetrics()
	if err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	tn := &Tunnel{
		catalog:    catalog,
		placements: placements,
		metrics:    metrics,
		log:        log.With().Str("component", "tunnel").Logger(),
		scene:      scene.NewScene(),
		model:      aerodynamics.NewModel(ct.Coefficients),
		carType:    ct,
	}
	var turbulence flowfield.Turbulence
	switch cfg.Turbulence {
	case NoTurbulence:
		turbulence = flowfield.NoTurbulence{}
	case PerlinTurbulence:
		tn.perlin = flowfield.NewPerlinTurbulence(seed)
		turbulence = tn.perlin
	default:
		turbulence = flowfield.NewRandomTurbulence(rand.New(rand.NewSource(seed + 1)))
	}
	tn.field = flowfield.NewField(turbulence)

	pos, err := tn.placementPosition(ct.Key)
	if err != nil {
		return nil, err
	}
	tn.committed = Inputs{
		WindSpeed:   cfg.WindSpeed,
		CarAngle:    cfg.CarAngle,
		CarType:     ct.Key,
		CarPosition: pos,
	}
	tn.pending.inputs = tn.committed
	tn.applyCommitted()

	tn.particles = particles.NewAdvector(cfg.Particles, tn.field, rand.New(rand.NewSource(seed)), log)
	tn.particles.Attach(tn.scene)
	tn.streamlines = streamlines.NewGenerator(tn.field, cfg.Streamlines, log)
	if cfg.StreamlinesEnabled {
		tn.streamlines.Enable(tn.scene)
	}
	tn.last = tn.frame(aerodynamics.ForceReport{})
	tn.log.Info().Str("car_type", ct.Key).Float64("wind_mph", cfg.WindSpeed).
		Float64("angle", cfg.CarAngle).Int64("seed", seed).Msg("tunnel ready")
	return tn, nil
}

func (tn *Tunnel) placementPosition(carType string) (r3.Vec, error) {
	if tn.placements == nil {
		return cars.DefaultPlacement(carType).Position.R3(), nil
	}
	p, err := tn.placements.Get(carType)
	if err != nil {
		return r3.Vec{}, fmt.Errorf("loading placement: %w", err)
	}
	return clampPosition(p.Position.R3()), nil
}

func (tn *Tunnel) applyCommitted() {
	tn.field.SetWindSpeed(tn.committed.WindSpeed)
	tn.field.SetCarPose(flowfield.CarPose{
		Position: tn.committed.CarPosition,
		Yaw:      tn.committed.CarAngle,
		Size:     tn.carType.Size,
	})
}

func (tn *Tunnel) Scene() *scene.Scene { return tn.scene }

func (tn *Tunnel) Field() *flowfield.Field { return tn.field }

func (tn *Tunnel) Particles() *particles.Advector { return tn.particles }

func (tn *Tunnel) Streamlines() *streamlines.Generator { return tn.streamlines }

// SetWindSpeed queues a wind speed change in mph
func (tn *Tunnel) SetWindSpeed(mph float64) error {
	tn.mu.Lock()
	defer tn.mu.Unlock()
	if err := aerodynamics.Validate(mph, tn.pending.inputs.CarAngle); err != nil {
		return err
	}
	tn.pending.inputs.WindSpeed = mph
	return nil
}

// SetCarAngle queues a pitch change in degrees. The same angle turns the car in the
// flow field.
func (tn *Tunnel) SetCarAngle(deg float64) error {
	tn.mu.Lock()
	defer tn.mu.Unlock()
	if err := aerodynamics.Validate(tn.pending.inputs.WindSpeed, deg); err != nil {
		return err
	}
	tn.pending.inputs.CarAngle = deg
	return nil
}

// SetCarType queues a car swap. The car moves to its saved placement.
func (tn *Tunnel) SetCarType(key string) error {
	ct, err := tn.catalog.Get(key)
	if err != nil {
		return err
	}
	if !ct.Enabled {
		return fmt.Errorf("car type %q is disabled", key)
	}
	pos, err := tn.placementPosition(key)
	if err != nil {
		return err
	}
	tn.mu.Lock()
	defer tn.mu.Unlock()
	tn.pending.inputs.CarType = key
	tn.pending.inputs.CarPosition = pos
	return nil
}

// SetCarPosition queues a move, limited to the test section
func (tn *Tunnel) SetCarPosition(p r3.Vec) {
	tn.mu.Lock()
	defer tn.mu.Unlock()
	tn.pending.inputs.CarPosition = clampPosition(p)
}

// Nudge queues a one step move in the direction seen from view and returns the new
// position.
func (tn *Tunnel) Nudge(d types.Direction, view types.CameraView) r3.Vec {
	tn.mu.Lock()
	defer tn.mu.Unlock()
	p := clampPosition(r3.Add(tn.pending.inputs.CarPosition, nudgeOffset(d, view)))
	tn.pending.inputs.CarPosition = p
	return p
}

// SavePosition persists the pending car position as the car type's placement
func (tn *Tunnel) SavePosition() error {
	if tn.placements == nil {
		return nil
	}
	in := tn.Inputs()
	return tn.placements.SetPosition(in.CarType, cars.FromR3(in.CarPosition))
}

func nudgeOffset(d types.Direction, view types.CameraView) (off r3.Vec) {
	switch view {
	case types.FrontView:
		switch d {
		case types.Left:
			off.X = -NudgeStep
		case types.Right:
			off.X = NudgeStep
		case types.Up:
			off.Y = NudgeStep
		case types.Down:
			off.Y = -NudgeStep
		}
	case types.SideView:
		switch d {
		case types.Left:
			off.Z = NudgeStep
		case types.Right:
			off.Z = -NudgeStep
		case types.Up:
			off.Y = NudgeStep
		case types.Down:
			off.Y = -NudgeStep
		}
	case types.TopView:
		switch d {
		case types.Left:
			off.X = -NudgeStep
		case types.Right:
			off.X = NudgeStep
		case types.Up:
			off.Z = -NudgeStep
		case types.Down:
			off.Z = NudgeStep
		}
	}
	return
}

func clampPosition(p r3.Vec) r3.Vec {
	if !utils.IsFiniteVec(p) {
		p = r3.Vec{}
	}
	return r3.Vec{
		X: utils.Clamp(p.X, MinPosition.X, MaxPosition.X),
		Y: utils.Clamp(p.Y, MinPosition.Y, MaxPosition.Y),
		Z: utils.Clamp(p.Z, MinPosition.Z, MaxPosition.Z),
	}
}

func (tn *Tunnel) SetStreamlinesEnabled(enabled bool) {
	tn.mu.Lock()
	defer tn.mu.Unlock()
	tn.pending.streamlines = &enabled
}

func (tn *Tunnel) SetStreamlineSettings(s streamlines.Settings) {
	tn.mu.Lock()
	defer tn.mu.Unlock()
	tn.pending.streamlineSettings = &s
}

// Inputs returns the most recent requested inputs, committed or not
func (tn *Tunnel) Inputs() Inputs {
	tn.mu.Lock()
	defer tn.mu.Unlock()
	return tn.pending.inputs
}

func (tn *Tunnel) Pause() {
	tn.mu.Lock()
	defer tn.mu.Unlock()
	tn.paused = true
	tn.last.Paused = true
}

func (tn *Tunnel) Resume() {
	tn.mu.Lock()
	defer tn.mu.Unlock()
	tn.paused = false
	tn.last.Paused = false
}

func (tn *Tunnel) Paused() bool {
	tn.mu.Lock()
	defer tn.mu.Unlock()
	return tn.paused
}

// Last returns the most recent frame
func (tn *Tunnel) Last() protocol.Frame {
	tn.mu.Lock()
	defer tn.mu.Unlock()
	return tn.last
}

// Step commits pending inputs, advances the flow by dt seconds and returns the new
// frame. While paused it returns the previous frame unchanged.
func (tn *Tunnel) Step(ctx context.Context, dt float64) protocol.Frame {
	tn.mu.Lock()
	if tn.paused {
		defer tn.mu.Unlock()
		return tn.last
	}
	var (
		next          = tn.pending.inputs
		toggle        = tn.pending.streamlines
		settings      = tn.pending.streamlineSettings
		start         = time.Now()
		recycledStart = tn.particles.Recycled
		rebuildStart  = tn.streamlines.Rebuilds
	)
	tn.pending.streamlines, tn.pending.streamlineSettings = nil, nil
	tn.mu.Unlock()

	if next.CarType != tn.committed.CarType {
		ct, err := tn.catalog.Get(next.CarType)
		if err == nil && !ct.Enabled {
			err = fmt.Errorf("car type %q is disabled", ct.Key)
		}
		if err != nil {
			tn.log.Warn().Err(err).Msg("ignoring car type change")
			rejected := next.CarType
			next.CarType = tn.committed.CarType
			next.CarPosition = tn.committed.CarPosition
			tn.mu.Lock()
			if tn.pending.inputs.CarType == rejected {
				tn.pending.inputs.CarType = next.CarType
				tn.pending.inputs.CarPosition = next.CarPosition
			}
			tn.mu.Unlock()
		} else {
			tn.carType = ct
			tn.model.SetCoefficients(ct.Coefficients)
			tn.log.Info().Str("car_type", ct.Key).Msg("car type changed")
		}
	}
	tn.committed = next
	tn.applyCommitted()

	if settings != nil {
		tn.streamlines.SetSettings(*settings)
	}
	if toggle != nil {
		if *toggle {
			tn.streamlines.Enable(tn.scene)
		} else {
			tn.streamlines.Disable()
		}
	}
	if tn.perlin != nil && dt > 0 {
		tn.perlin.Advance(dt)
	}
	if dt > 0 && utils.IsFinite(dt) {
		tn.time += dt
	}
	tn.particles.Update(dt, tn.committed.WindSpeed)
	tn.streamlines.Update()
	report := tn.model.Compute(tn.committed.WindSpeed, tn.committed.CarAngle)

	tn.metrics.RecordFrame(ctx, tn.committed.CarType, time.Since(start),
		tn.particles.Recycled-recycledStart, tn.streamlines.Rebuilds-rebuildStart)

	fr := tn.frame(report)
	tn.mu.Lock()
	tn.last = fr
	tn.mu.Unlock()
	return fr
}

func (tn *Tunnel) frame(report aerodynamics.ForceReport) (fr protocol.Frame) {
	tn.seq++
	pose := tn.field.CarPose()
	fr = protocol.Frame{
		Seq:  tn.seq,
		Time: tn.time,
		Car: protocol.Car{
			Type:     tn.committed.CarType,
			Position: protocol.Vec(pose.Position),
			Yaw:      pose.Yaw,
			Size:     []float64{pose.Size.Width, pose.Size.Height, pose.Size.Length},
		},
		Forces:          report,
		StreamlineState: tn.streamlines.State().String(),
	}
	ps := tn.particles.Particles()
	fr.Particles.Positions = make([]float32, 0, 3*len(ps))
	for _, p := range ps {
		fr.Particles.Positions = append(fr.Particles.Positions,
			float32(p.Position.X), float32(p.Position.Y), float32(p.Position.Z))
	}
	fr.Particles.Colors = protocol.Colors(tn.particles.Colors())
	for _, sl := range tn.streamlines.Lines() {
		fr.Streamlines = append(fr.Streamlines, protocol.Streamline{
			Category:  sl.Category.String(),
			Opacity:   sl.Opacity,
			LineWidth: sl.LineWidth,
			Cloud: protocol.Cloud{
				Positions: protocol.Float32s(sl.Vertices),
				Colors:    protocol.Colors(sl.Colors),
			},
		})
	}
	return
}

// Close detaches and releases all geometry
func (tn *Tunnel) Close() {
	tn.streamlines.Dispose()
	tn.particles.Dispose()
	tn.log.Debug().Msg("tunnel closed")
}
