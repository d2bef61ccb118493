package aquatank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTankRejectsNonPositiveDimensions(t *testing.T) {
	for _, dims := range [][4]float64{
		{0, 70, 80, 12},
		{160, -1, 80, 12},
		{160, 70, 0, 12},
		{160, 70, 80, 0},
	} {
		_, _, err := newTank(dims[0], dims[1], dims[2], dims[3])
		require.Error(t, err, "%v", dims)
		assert.IsType(t, &ConfigurationError{}, err)
	}
}

func TestNewTankConvertsGlassToTankUnits(t *testing.T) {
	tank, warnings, err := newTank(160, 70, 80, 12)
	require.NoError(t, err)
	assert.Equal(t, 1.2, tank.Glass) // 12mm -> 1.2cm
	assert.Empty(t, warnings)
}

func TestNewTankWarnsOnImplausibleGlass(t *testing.T) {
	// 90mm glass on a 30cm cube is not something a glazier would cut
	tank, warnings, err := newTank(30, 30, 30, 90)
	require.NoError(t, err) // warn, not fail
	assert.Equal(t, 9.0, tank.Glass)
	assert.NotEmpty(t, warnings)
}

func TestTankSizeAndCenter(t *testing.T) {
	tank, _, err := newTank(160, 70, 80, 12)
	require.NoError(t, err)

	assert.Equal(t, 160.0, tank.Size().X)
	assert.Equal(t, 70.0, tank.Size().Y)
	assert.Equal(t, 80.0, tank.Size().Z)
	assert.Equal(t, 35.0, tank.Center().Y)
}

func TestTankContains(t *testing.T) {
	tank, _, err := newTank(160, 70, 80, 12)
	require.NoError(t, err)

	assert.True(t, tank.Contains(tank.Center()))
	assert.True(t, tank.Contains(tank.Size())) // pane surface counts
	assert.False(t, tank.Contains(tank.Size().Add(tank.Size())))

	bounds := tank.Bounds()
	assert.True(t, bounds.Contains(tank.Center()))
}

func TestPaneExtents(t *testing.T) {
	tank, _, err := newTank(160, 70, 80, 12)
	require.NoError(t, err)

	cases := map[Pane][2]float64{
		Right:  {70, 80},
		Left:   {70, 80},
		Bottom: {160, 70},
		Back:   {160, 80},
		Front:  {160, 80},
	}
	for pane, want := range cases {
		lu, lv, err := tank.PaneExtent(pane)
		require.NoError(t, err)
		assert.Equal(t, want[0], lu, pane)
		assert.Equal(t, want[1], lv, pane)
	}

	_, _, err = tank.PaneExtent(Pane("Top"))
	assert.Error(t, err)
}
