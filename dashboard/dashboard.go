package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/notargets/gowindtunnel/aerodynamics"
	"github.com/notargets/gowindtunnel/protocol"
	"github.com/notargets/gowindtunnel/recorder"
	"github.com/notargets/gowindtunnel/tunnel"
	"github.com/notargets/gowindtunnel/types"
	"github.com/notargets/gowindtunnel/utils"
)

const (
	FPS         = 60
	SpeedStep   = 5. // mph per key press
	AngleStep   = 1. // degrees per key press
	springFreq  = 6.
	springDamp  = 1.
	graphHeight = 8
	graphWidth  = 50
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	panel  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// eased moves a value toward a target along a critically damped spring
type eased struct {
	pos, vel, target float64
}

func (e *eased) step(s harmonica.Spring) float64 {
	e.pos, e.vel = s.Update(e.pos, e.vel, e.target)
	return e.pos
}

// Model is the bubbletea model driving one tunnel. The applied wind speed and angle ease
// toward the values the user dials in.
type Model struct {
	ctx      context.Context
	tn       *tunnel.Tunnel
	rec      *recorder.Recorder
	carTypes []string
	carIdx   int
	view     types.CameraView
	spring   harmonica.Spring
	speed    eased
	angle    eased
	graph    types.ForceField
	frame    protocol.Frame
	status   string
	width    int
	height   int
}

func New(ctx context.Context, tn *tunnel.Tunnel, rec *recorder.Recorder, carTypes []string) Model {
	var (
		in = tn.Inputs()
		m  = Model{
			ctx:      ctx,
			tn:       tn,
			rec:      rec,
			carTypes: carTypes,
			spring:   harmonica.NewSpring(harmonica.FPS(FPS), springFreq, springDamp),
			speed:    eased{pos: in.WindSpeed, target: in.WindSpeed},
			angle:    eased{pos: in.CarAngle, target: in.CarAngle},
			frame:    tn.Last(),
			width:    80,
			height:   24,
		}
	)
	for i, k := range carTypes {
		if k == in.CarType {
			m.carIdx = i
		}
	}
	return m
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/FPS, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Frame() protocol.Frame { return m.frame }

func (m Model) Targets() (windSpeed, carAngle float64) {
	return m.speed.target, m.angle.target
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tickMsg:
		m.step()
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	if !m.tn.Paused() {
		// both are clamped to the valid ranges, so these cannot fail
		_ = m.tn.SetWindSpeed(utils.Clamp(m.speed.step(m.spring),
			aerodynamics.MinWindSpeedMPH, aerodynamics.MaxWindSpeedMPH))
		_ = m.tn.SetCarAngle(utils.Clamp(m.angle.step(m.spring),
			aerodynamics.MinCarAngleDeg, aerodynamics.MaxCarAngleDeg))
	}
	m.frame = m.tn.Step(m.ctx, 1./FPS)
	if !m.frame.Paused {
		m.rec.Observe(m.frame.Forces)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.speed.target = utils.Clamp(m.speed.target+SpeedStep, aerodynamics.MinWindSpeedMPH, aerodynamics.MaxWindSpeedMPH)
	case "down", "j":
		m.speed.target = utils.Clamp(m.speed.target-SpeedStep, aerodynamics.MinWindSpeedMPH, aerodynamics.MaxWindSpeedMPH)
	case "right", "l":
		m.angle.target = utils.Clamp(m.angle.target+AngleStep, aerodynamics.MinCarAngleDeg, aerodynamics.MaxCarAngleDeg)
	case "left", "h":
		m.angle.target = utils.Clamp(m.angle.target-AngleStep, aerodynamics.MinCarAngleDeg, aerodynamics.MaxCarAngleDeg)
	case "0":
		m.angle.target = aerodynamics.RecommendedAngle(m.speed.target)
	case "c":
		if len(m.carTypes) > 0 {
			m.carIdx = (m.carIdx + 1) % len(m.carTypes)
			if err := m.tn.SetCarType(m.carTypes[m.carIdx]); err != nil {
				m.status = red.Render(err.Error())
			} else {
				m.status = "car: " + m.carTypes[m.carIdx]
			}
		}
	case "tab", "g":
		m.graph = types.ForceFields[(int(m.graph)+1)%len(types.ForceFields)]
	case "v":
		m.view = types.CameraView((int(m.view) + 1) % 3)
		m.status = "nudge view: " + m.view.String()
	case "w":
		m.tn.Nudge(types.Up, m.view)
	case "a":
		m.tn.Nudge(types.Left, m.view)
	case "s":
		m.tn.Nudge(types.Down, m.view)
	case "d":
		m.tn.Nudge(types.Right, m.view)
	case "t":
		enabled := m.frame.StreamlineState != types.Enabled.String()
		m.tn.SetStreamlinesEnabled(enabled)
	case " ":
		if m.tn.Paused() {
			m.tn.Resume()
		} else {
			m.tn.Pause()
		}
	case "r":
		fr := m.frame
		tr, err := m.rec.Record(m.ctx, fr.Forces.WindSpeed, fr.Forces.Angle, fr.Car.Type, fr.Forces)
		if err != nil {
			m.status = red.Render(err.Error())
		} else {
			m.status = fmt.Sprintf("recorded test #%d", tr.ID)
		}
	}
	return m, nil
}

func (m Model) View() string {
	var (
		b  strings.Builder
		fr = m.frame
		f  = fr.Forces
	)
	status := green.Render("● running")
	if fr.Paused {
		status = yellow.Render("○ paused")
	}
	b.WriteString(cyan.Render("WIND TUNNEL") + "  " + status + "  " +
		dim.Render(fmt.Sprintf("t=%.1fs frame %d", fr.Time, fr.Seq)) + "\n\n")
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		dim.Render("car"), white.Render(fr.Car.Type),
		dim.Render("wind"), white.Render(fmt.Sprintf("%.1f → %.0f mph", f.WindSpeed, m.speed.target)),
		dim.Render("angle"), white.Render(fmt.Sprintf("%.1f → %.0f°", f.Angle, m.angle.target))))
	if len(fr.Car.Position) == 3 {
		b.WriteString(dim.Render(fmt.Sprintf("position (%.1f, %.1f, %.1f)  streamlines %s\n",
			fr.Car.Position[0], fr.Car.Position[1], fr.Car.Position[2], fr.StreamlineState)))
	}
	b.WriteString("\n")

	var readouts strings.Builder
	for _, ff := range types.ForceFields {
		label := fmt.Sprintf("%-22s", ff.String())
		if ff == m.graph {
			label = cyan.Render("▸ " + label)
		} else {
			label = dim.Render("  " + label)
		}
		readouts.WriteString(fmt.Sprintf("%s %s\n", label,
			white.Render(fmt.Sprintf("%12.3f %s", f.Value(ff), ff.Unit()))))
	}
	readouts.WriteString("\n" + dim.Render(aerodynamics.Explain(f)))

	var graph string
	if hist := m.rec.Series.Values(m.graph); len(hist) > 1 {
		graph = asciigraph.Plot(hist,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption(m.graph.String()))
	} else {
		graph = dim.Render("collecting " + m.graph.String())
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		panel.Render(readouts.String()), panel.Render(graph)))
	b.WriteString("\n")

	if st, ok := m.rec.Statistics(); ok {
		b.WriteString(dim.Render(fmt.Sprintf("tests %d  avg drag %.1fN  avg lift %.1fN\n",
			st.TotalTests, st.AverageDrag, st.AverageLift)))
	}
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(dim.Render("↑↓ wind  ←→ angle  0 recommended  c car  wasd nudge  v view  t streamlines  tab graph  r record  space pause  q quit"))
	return b.String()
}
