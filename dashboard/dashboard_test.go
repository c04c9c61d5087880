package dashboard

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gowindtunnel/cars"
	"github.com/notargets/gowindtunnel/recorder"
	"github.com/notargets/gowindtunnel/tunnel"
	"github.com/notargets/gowindtunnel/types"
)

func newTestModel(t *testing.T) Model {
	cfg := tunnel.DefaultConfig()
	cfg.Seed = 11
	cfg.Particles.Count = 40
	catalog := cars.NewCatalog()
	tn, err := tunnel.New(cfg, catalog, nil, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(tn.Close)
	return New(context.Background(), tn, recorder.New("", zerolog.Nop()), catalog.EnabledKeys())
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEasing(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyLeft})
	speed, angle := m.Targets()
	assert.Equal(t, 60., speed)
	assert.Equal(t, -1., angle)

	m = send(m, tickMsg{})
	// The applied speed trails the target
	first := m.Frame().Forces.WindSpeed
	assert.Greater(t, first, 50.)
	assert.Less(t, first, 60.)

	for i := 0; i < 3*FPS; i++ {
		m = send(m, tickMsg{})
	}
	assert.InDelta(t, 60., m.Frame().Forces.WindSpeed, 0.05)
	assert.InDelta(t, -1., m.Frame().Forces.Angle, 0.05)

	for i := 0; i < 100; i++ {
		m = send(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	speed, _ = m.Targets()
	assert.Equal(t, 0., speed)
}

func TestKeys(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tickMsg{})

	m = send(m, key("c"), tickMsg{})
	assert.Equal(t, "sports", m.Frame().Car.Type)

	m = send(m, key("r"))
	assert.Equal(t, 1, m.rec.Len())
	assert.Contains(t, m.status, "#1")

	m = send(m, key("g"), key("g"))
	assert.Equal(t, types.Downforce, m.graph)

	m = send(m, key(" "), tickMsg{})
	assert.True(t, m.Frame().Paused)
	m = send(m, key(" "), tickMsg{})
	assert.False(t, m.Frame().Paused)

	m = send(m, key("t"), tickMsg{})
	assert.Equal(t, types.Disabled.String(), m.Frame().StreamlineState)

	before := m.Frame().Car.Position
	m = send(m, key("w"), tickMsg{})
	assert.InDelta(t, before[1]+tunnel.NudgeStep, m.Frame().Car.Position[1], 1.e-12)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 5; i++ {
		m = send(m, tickMsg{})
	}
	m = send(m, key("r"))
	v := m.View()
	assert.Contains(t, v, "WIND TUNNEL")
	assert.Contains(t, v, "Drag Force")
	assert.Contains(t, v, "Efficiency Rating")
	assert.Contains(t, v, "tests 1")
}
