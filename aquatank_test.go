package aquatank

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model3d"
)

func sampleModel(t *testing.T) *Model {
	cfg, err := ParseConfig([]byte(sampleConfig))
	require.NoError(t, err)
	m, err := New(cfg)
	require.NoError(t, err)
	return m
}

func TestNewBuildsWholeModel(t *testing.T) {
	m := sampleModel(t)

	require.NotNil(t, m.Tank)
	require.NotNil(t, m.Overflow)
	require.NotNil(t, m.Pump)

	assert.Len(t, m.Overflow.Holes, 2)
	require.NotNil(t, m.Overflow.Shaft)
	assert.Len(t, m.Overflow.Shaft.Points, 3)
	assert.Equal(t, 80.0, m.Overflow.Shaft.Height)

	assert.Equal(t, "IN", m.Pump.Inlet.Name)
	assert.Equal(t, "OUT", m.Pump.Outlet.Name)
	assert.Empty(t, m.Warnings())
}

func TestNewFailsAtomically(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	require.NoError(t, err)

	// a bad hole aborts the whole build; nothing partially built leaks
	cfg.Overflow.Drill = append(cfg.Overflow.Drill, DrillConfig{
		Position: "Bottom", X: 155, Y: 10, Diameter: 10,
	})
	m, err := New(cfg)
	require.Error(t, err)
	assert.Nil(t, m.Tank)
	assert.Nil(t, m.Overflow)
	assert.Nil(t, m.Pump)
}

func TestBuildIsDeterministic(t *testing.T) {
	a := sampleModel(t)
	b := sampleModel(t)

	aj, err := a.JSON()
	require.NoError(t, err)
	bj, err := b.JSON()
	require.NoError(t, err)
	assert.Equal(t, aj, bj)

	assert.Equal(t, a.Tank, b.Tank)
	assert.Equal(t, a.Overflow.Holes, b.Overflow.Holes)
	assert.Equal(t, a.Overflow.Shaft, b.Overflow.Shaft)
	assert.Equal(t, a.Pump.Inlet, b.Pump.Inlet)
	assert.Equal(t, a.Pump.Outlet, b.Pump.Outlet)
}

func TestLoadFromFile(t *testing.T) {
	dir, err := os.MkdirTemp("", "aquatank_test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	fpath := filepath.Join(dir, "tank.json")
	require.NoError(t, os.WriteFile(fpath, []byte(sampleConfig), 0644))

	m, err := Load(fpath)
	require.NoError(t, err)
	assert.Equal(t, 160.0, m.Tank.Width)
}

func TestSnapshotRoundTrip(t *testing.T) {
	m := sampleModel(t)

	data, err := m.Snapshot()
	require.NoError(t, err)

	got, err := LoadSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, m.Tank, got.Tank)
	assert.Equal(t, m.Overflow.Holes, got.Overflow.Holes)
	assert.Equal(t, m.Pump.Outlet.Resolved, got.Pump.Outlet.Resolved)
}

func TestLoadSnapshotGarbage(t *testing.T) {
	_, err := LoadSnapshot([]byte("definitely not msgpack"))
	assert.Error(t, err)
}

func TestModelSolidAt(t *testing.T) {
	m := sampleModel(t)

	// shaft wall mid-height
	assert.True(t, m.SolidAt(model3d.XYZ(10, 15, 40)))
	// open water
	assert.False(t, m.SolidAt(model3d.XYZ(100, 40, 40)))
	// bottom pane glass
	assert.True(t, m.SolidAt(model3d.XYZ(100, 40, -0.5)))
	// inside a drilled bore the glass is gone
	assert.False(t, m.SolidAt(model3d.XYZ(10, 10, -0.5)))
	// above the open top there is nothing
	assert.False(t, m.SolidAt(model3d.XYZ(100, 40, 85)))
}

func TestModelForceAt(t *testing.T) {
	m := sampleModel(t)

	assert.Equal(t, model3d.XYZ(0, 0, -1), m.ForceAt(model3d.XYZ(20, 14, 10)))
	assert.Equal(t, model3d.XYZ(20, 1, 0), m.ForceAt(model3d.XYZ(11, 61, 30)))
	assert.Equal(t, model3d.Coord3D{}, m.ForceAt(model3d.XYZ(100, 30, 60)))
}

func TestModelSatisfiesGeometry(t *testing.T) {
	var _ Geometry = sampleModel(t)
}
