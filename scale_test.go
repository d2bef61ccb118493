package aquatank

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridScale(t *testing.T) {
	m := sampleModel(t)

	// 160 * 70 * 80 = 896000; ask for exactly that & nothing changes
	assert.InDelta(t, 1.0, m.GridScale(896000), 1e-9)
	assert.InDelta(t, 0.5, m.GridScale(896000/8), 1e-9)
}

func TestRescale(t *testing.T) {
	m := sampleModel(t)

	scaled, f, err := m.Rescale(896000 / 8)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, f, 1e-9)

	// every length halves, the original is untouched
	assert.InDelta(t, 80.0, scaled.Tank.Width, 1e-9)
	assert.InDelta(t, 35.0, scaled.Tank.Depth, 1e-9)
	assert.InDelta(t, 40.0, scaled.Tank.Height, 1e-9)
	assert.InDelta(t, 0.6, scaled.Tank.Glass, 1e-9)
	assert.Equal(t, 160.0, m.Tank.Width)

	require.NotNil(t, scaled.Overflow.Shaft)
	assert.InDelta(t, 12.5, scaled.Overflow.Shaft.Points[1].X, 1e-9)
	assert.InDelta(t, 40.0, scaled.Overflow.Shaft.Height, 1e-9)

	require.Len(t, scaled.Overflow.Holes, 2)
	assert.InDelta(t, 5.0, scaled.Overflow.Holes[0].X, 1e-9)
	assert.InDelta(t, 3.0, scaled.Overflow.Holes[0].Diameter, 1e-9)

	// zone boxes & velocities scale with the tank
	assert.InDelta(t, 7.5, scaled.Pump.Outlet.Location.X, 1e-9)
	assert.InDelta(t, -0.5, scaled.Pump.Outlet.Resolved.Z, 1e-9)
	assert.InDelta(t, 10.0, scaled.Pump.Inlet.Resolved.X, 1e-9)
}

func TestRescaleVolumeMatchesBudget(t *testing.T) {
	m := sampleModel(t)

	scaled, _, err := m.Rescale(50000)
	require.NoError(t, err)

	volume := scaled.Tank.Width * scaled.Tank.Depth * scaled.Tank.Height
	assert.InDelta(t, 50000, volume, 1e-6*50000)
}

func TestRescaleRejectsBadBudget(t *testing.T) {
	m := sampleModel(t)
	_, _, err := m.Rescale(0)
	assert.Error(t, err)
	_, _, err = m.Rescale(-5)
	assert.Error(t, err)
}

func TestLoadConstants(t *testing.T) {
	dir, err := os.MkdirTemp("", "aquatank_constants")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	fpath := filepath.Join(dir, "constants.json")
	require.NoError(t, os.WriteFile(fpath, []byte(`{
        // solver tunables
        "MAX_GRID_CELLS": 500000,
        "WORLD_DT": 0.002,
        "DEFAULT_GRAVITY": -9.81,
        "DEFAULT_FILL_HEIGHT": 0.8
    }`), 0644))

	c, err := LoadConstants(fpath)
	require.NoError(t, err)
	assert.Equal(t, 500000, c.MaxGridCells)
	assert.Equal(t, 0.002, c.WorldDt)
	assert.Equal(t, -9.81, c.DefaultGravity)
}

func TestLoadConstantsRejectsBadBudget(t *testing.T) {
	dir, err := os.MkdirTemp("", "aquatank_constants")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	fpath := filepath.Join(dir, "constants.json")
	require.NoError(t, os.WriteFile(fpath, []byte(`{"MAX_GRID_CELLS": 0}`), 0644))

	_, err = LoadConstants(fpath)
	require.Error(t, err)
	assert.IsType(t, &ConfigurationError{}, err)

	_, err = LoadConstants(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestRescaleIsConsistentWithGridScale(t *testing.T) {
	m := sampleModel(t)
	f := m.GridScale(123456)
	_, got, err := m.Rescale(123456)
	require.NoError(t, err)
	assert.Equal(t, f, got)
	assert.False(t, math.IsNaN(f))
}
