package cmd

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gowindtunnel/tunnel"
)

func TestRun3D(t *testing.T) {
	var (
		dir     = t.TempDir()
		icFile  = filepath.Join(dir, "input.yaml")
		csvFile = filepath.Join(dir, "results.csv")
	)
	fileInput := []byte(`
Title: Test Case
WindSpeed: 80
CarAngle: -3
CarType: sports
ParticleCount: 60
Seed: 5
Turbulence: perlin
Frames: 30
FrameTime: 0.02
RecordEvery: 10
Streamlines:
  Enabled: true
  FlowIntensity: 1
  ColorIntensity: 1
  ShowLong: false
  ShowUnderCar: true
`)
	require.NoError(t, os.WriteFile(icFile, fileInput, 0644))
	m3d := &Model3D{ICFile: icFile, CSVFile: csvFile}
	ip, err := processInput(m3d)
	require.NoError(t, err)
	ip.Print()

	cfg := tunnelConfig(ip)
	assert.Equal(t, "sports", cfg.CarType)
	assert.Equal(t, tunnel.PerlinTurbulence, cfg.Turbulence)
	assert.Equal(t, 60, cfg.Particles.Count)
	assert.False(t, cfg.Streamlines.ShowLong)

	require.NoError(t, Run3D(context.Background(), m3d, ip))
	f, err := os.Open(csvFile)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	// header plus one test every ten frames
	require.Len(t, rows, 4)
	assert.Equal(t, "sports", rows[1][5])
	assert.Equal(t, "80", rows[3][3])
}

func TestProcessInputErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := processInput(&Model3D{ICFile: filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("WindSpeed: 300\nCarAngle: 60\n"), 0644))
	_, err = processInput(&Model3D{ICFile: bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Wind speed")
	assert.Contains(t, err.Error(), "Car angle")

	ip, err := processInput(&Model3D{})
	require.NoError(t, err)
	assert.Equal(t, 50., ip.WindSpeed)
}
