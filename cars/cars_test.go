package cars

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gowindtunnel/database"
	"github.com/notargets/gowindtunnel/flowfield"
)

func TestCatalog(t *testing.T) {
	c := NewCatalog()
	assert.Equal(t, []string{"custom", "f1", "sedan", "sports", "suv", "truck"}, c.Keys())

	f1, err := c.Get("f1")
	require.NoError(t, err)
	assert.Equal(t, 0.7, f1.Coefficients.DragBase)
	assert.Equal(t, -2.5, f1.Coefficients.LiftBase)
	assert.Equal(t, PressureCoefficient, f1.Coefficients.PressureBase)
	assert.Equal(t, 1.8, f1.Coefficients.FrontalArea)
	assert.Equal(t, 740., f1.Weight)
	assert.Equal(t, flowfield.DefaultCarSize, f1.Size)

	custom, _ := c.Get("custom")
	sedan, _ := c.Get("sedan")
	assert.Equal(t, sedan.Coefficients, custom.Coefficients)

	_, err = c.Get("bus")
	assert.True(t, errors.Is(err, ErrUnknownCarType))

	require.NoError(t, c.SetEnabled("truck", false))
	assert.NotContains(t, c.EnabledKeys(), "truck")
	assert.Error(t, c.SetEnabled("bus", true))

	// Every built-in type passes the editor bounds
	for _, ct := range DefaultCarTypes() {
		assert.NoError(t, ct.Validate(), ct.Key)
	}

	edited := sedan
	edited.Coefficients.DragBase = 0.28
	require.NoError(t, c.Put(edited))
	got, _ := c.Get("sedan")
	assert.Equal(t, 0.28, got.Coefficients.DragBase)

	bad := sedan
	bad.Coefficients.DragBase = 2.5
	bad.Weight = 100
	err = c.Put(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "drag coefficient")
	assert.Contains(t, err.Error(), "weight")

	require.NoError(t, c.Reset("sedan"))
	got, _ = c.Get("sedan")
	assert.Equal(t, 0.3, got.Coefficients.DragBase)
	assert.Error(t, c.Reset("bus"))
}

func newTestStore(t *testing.T) *Store {
	db, err := database.Open(database.Memory(), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	s, err := NewStore(db, DefaultKeys(), zerolog.Nop())
	require.NoError(t, err)
	return s
}

func TestPlacementStore(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Get("f1")
	require.NoError(t, err)
	assert.Equal(t, Vec3{Y: 90}, p.Rotation)
	assert.Equal(t, Vec3{Y: -1.5}, p.Position)
	p, _ = s.Get("sedan")
	assert.Equal(t, Vec3{}, p.Rotation)

	_, err = s.Get("bus")
	assert.True(t, errors.Is(err, ErrUnknownCarType))

	require.NoError(t, s.SetRotation("sedan", Vec3{X: 1, Y: 2, Z: 3}))
	require.NoError(t, s.SetPosition("sedan", Vec3{X: 0.5, Y: -1, Z: 2}))
	p, _ = s.Get("sedan")
	assert.Equal(t, Placement{Rotation: Vec3{1, 2, 3}, Position: Vec3{0.5, -1, 2}}, p)

	require.NoError(t, s.ResetRotation("sedan"))
	p, _ = s.Get("sedan")
	assert.Equal(t, Vec3{}, p.Rotation)
	assert.Equal(t, Vec3{0.5, -1, 2}, p.Position)

	require.NoError(t, s.ResetPosition("sedan"))
	p, _ = s.Get("sedan")
	assert.Equal(t, DefaultPlacement("sedan"), p)

	require.NoError(t, s.SetRotation("f1", Vec3{Y: 45}))
	require.NoError(t, s.Reset("f1"))
	p, _ = s.Get("f1")
	assert.Equal(t, DefaultPlacement("f1"), p)

	require.NoError(t, s.SetPosition("suv", Vec3{X: 3}))
	require.NoError(t, s.ClearAll())
	p, _ = s.Get("suv")
	assert.Equal(t, DefaultPlacement("suv"), p)
}

func TestPlacementExportImport(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetPosition("truck", Vec3{X: -2, Y: -1.5, Z: 1}))

	data, err := s.Export()
	require.NoError(t, err)
	var st Settings
	require.NoError(t, json.Unmarshal(data, &st))
	assert.Equal(t, 6, len(st.Positions))
	assert.Equal(t, Vec3{X: -2, Y: -1.5, Z: 1}, st.Positions["truck"])
	assert.Equal(t, Vec3{Y: 90}, st.Rotations["f1"])
	assert.False(t, st.LastModified.IsZero())

	other := newTestStore(t)
	partial := []byte(`{"rotations":{"sports":{"x":0,"y":180,"z":0}},"positions":{"truck":{"x":-2,"y":-1.5,"z":1}}}`)
	require.NoError(t, other.Import(partial))
	p, _ := other.Get("sports")
	assert.Equal(t, Vec3{Y: 180}, p.Rotation)
	assert.Equal(t, DefaultPlacement("sports").Position, p.Position)
	p, _ = other.Get("truck")
	assert.Equal(t, Vec3{X: -2, Y: -1.5, Z: 1}, p.Position)
	p, _ = other.Get("f1")
	assert.Equal(t, DefaultPlacement("f1"), p)

	assert.Error(t, other.Import([]byte("{not json")))
}
