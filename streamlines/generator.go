package streamlines

import (
	"github.com/rs/zerolog"

	"github.com/notargets/gowindtunnel/flowfield"
	"github.com/notargets/gowindtunnel/scene"
	"github.com/notargets/gowindtunnel/types"
	"github.com/notargets/gowindtunnel/utils"
)

type Settings struct {
	FlowIntensity  float64 `json:"flowIntensity" yaml:"FlowIntensity"`   // scales deflection
	ColorIntensity float64 `json:"colorIntensity" yaml:"ColorIntensity"` // scales brightness
	ShowLong       bool    `json:"showLong" yaml:"ShowLong"`
	ShowUnderCar   bool    `json:"showUnderCar" yaml:"ShowUnderCar"`
}

func DefaultSettings() Settings {
	return Settings{
		FlowIntensity:  1,
		ColorIntensity: 1,
		ShowLong:       true,
		ShowUnderCar:   true,
	}
}

func (s Settings) shows(cat types.StreamlineCategory) bool {
	switch cat {
	case types.Long:
		return s.ShowLong
	case types.UnderCar:
		return s.ShowUnderCar
	}
	return true
}

func (s Settings) sanitize() Settings {
	if !utils.IsFinite(s.FlowIntensity) || s.FlowIntensity < 0 {
		s.FlowIntensity = 1
	}
	if !utils.IsFinite(s.ColorIntensity) || s.ColorIntensity < 0 {
		s.ColorIntensity = 1
	}
	return s
}

// Generator owns the streamline geometry of the flow visualization. Its lifecycle is
// Disabled -> Enabling -> Enabled -> Disabling -> Disabled, and Disposed is terminal.
// Calls that do not apply to the current state are no-ops.
type Generator struct {
	field     *flowfield.Field
	settings  Settings
	log       zerolog.Logger
	state     types.LifecycleState
	container scene.Container
	lines     []*Streamline
	builtPose flowfield.CarPose
	Rebuilds  int
}

func NewGenerator(field *flowfield.Field, settings Settings, log zerolog.Logger) (g *Generator) {
	g = &Generator{
		field:    field,
		settings: settings.sanitize(),
		log:      log.With().Str("component", "streamlines").Logger(),
		state:    types.Disabled,
	}
	return
}

func (g *Generator) State() types.LifecycleState { return g.state }

func (g *Generator) Settings() Settings { return g.settings }

// Lines returns the live streamlines; empty unless enabled
func (g *Generator) Lines() []*Streamline { return g.lines }

// Counts is the number of live streamlines per category
func (g *Generator) Counts() (counts map[types.StreamlineCategory]int) {
	counts = make(map[types.StreamlineCategory]int)
	for _, sl := range g.lines {
		counts[sl.Category]++
	}
	return
}

func (g *Generator) SetWindSpeed(mph float64) {
	g.field.SetWindSpeed(mph)
}

func (g *Generator) SetCarPose(cp flowfield.CarPose) {
	g.field.SetCarPose(cp)
}

// SetSettings replaces the settings. While enabled the geometry is reallocated and
// rebuilt immediately so category toggles and intensities take effect on the next frame.
func (g *Generator) SetSettings(s Settings) {
	if g.state == types.Disposed {
		return
	}
	g.settings = s.sanitize()
	if g.state == types.Enabled {
		c := g.container
		g.Disable()
		g.Enable(c)
	}
}

// Enable builds every streamline and attaches it to c
func (g *Generator) Enable(c scene.Container) {
	if g.state != types.Disabled || c == nil {
		return
	}
	g.state = types.Enabling
	g.allocate()
	g.Rebuild()
	g.Recolor()
	for _, sl := range g.lines {
		c.Add(sl)
	}
	g.container = c
	g.state = types.Enabled
	g.log.Debug().Int("streamlines", len(g.lines)).Msg("streamlines enabled")
}

// Disable detaches and releases the geometry before returning
func (g *Generator) Disable() {
	if g.state != types.Enabled {
		return
	}
	g.state = types.Disabling
	if g.container != nil {
		for _, sl := range g.lines {
			g.container.Remove(sl)
		}
	}
	g.container = nil
	g.lines = nil
	g.state = types.Disabled
	g.log.Debug().Msg("streamlines disabled")
}

// Dispose releases everything and makes the generator inert
func (g *Generator) Dispose() {
	if g.state == types.Disposed {
		return
	}
	g.Disable()
	g.state = types.Disposed
}

// Update is the per frame hook: it rebuilds when the car pose changed and recolors
func (g *Generator) Update() {
	if g.state != types.Enabled {
		return
	}
	if g.field.CarPose() != g.builtPose {
		g.Rebuild()
	}
	g.Recolor()
}

func (g *Generator) allocate() {
	g.lines = g.lines[:0]
	for _, cat := range types.StreamlineCategories {
		if !g.settings.shows(cat) {
			continue
		}
		l := Layouts[cat]
		for i := range l.Starts {
			g.lines = append(g.lines, newStreamline(l, i))
		}
	}
}

// Rebuild regenerates every streamline from the current car pose
func (g *Generator) Rebuild() {
	for _, sl := range g.lines {
		sl.rebuild(g.field, g.settings.FlowIntensity)
	}
	g.builtPose = g.field.CarPose()
	g.Rebuilds++
}

// Recolor recomputes the vertex colors without moving any vertex
func (g *Generator) Recolor() {
	for _, sl := range g.lines {
		sl.recolor(g.field, g.settings.ColorIntensity)
	}
}
