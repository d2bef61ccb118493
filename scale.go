package aquatank

import (
	"math"

	"github.com/pkg/errors"

	"github.com/voidshard/aquatank/internal/jsonc"
)

// Constants holds the simulation-wide tunables that live next to the
// tank config (constants.json). Only MaxGridCells matters to geometry;
// the rest passes through to whichever solver consumes the model.
type Constants struct {
	MaxGridCells      int     `json:"MAX_GRID_CELLS"`
	WorldDt           float64 `json:"WORLD_DT"`
	DefaultGravity    float64 `json:"DEFAULT_GRAVITY"`
	DefaultFillHeight float64 `json:"DEFAULT_FILL_HEIGHT"`
	DefaultDampening  float64 `json:"DEFAULT_DAMPENING"`
	MaxParticles      int     `json:"MAX_PARTICLES"`
	VisibleParticles  int     `json:"VISIBLE_PARTICLES"`
}

// LoadConstants reads a constants.json style file (comment tolerant).
func LoadConstants(fpath string) (*Constants, error) {
	data, err := jsonc.ReadFile(fpath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read constants %s", fpath)
	}
	c := &Constants{}
	if err := jsonc.Unmarshal(data, c); err != nil {
		return nil, newConfigError("constants", err.Error(), nil)
	}
	if c.MaxGridCells <= 0 {
		return nil, newConfigError("MAX_GRID_CELLS", "must be > 0", c.MaxGridCells)
	}
	return c, nil
}

// GridScale returns the factor that shrinks (or grows) the tank so its
// volume matches maxGridCells unit cells; cube root of cells over
// volume.
func (m *Model) GridScale(maxGridCells int) float64 {
	volume := m.Tank.Width * m.Tank.Depth * m.Tank.Height
	return math.Cbrt(float64(maxGridCells) / volume)
}

// Rescale builds a NEW model whose every length is multiplied by the
// grid scale factor for maxGridCells; dimensions, glass, holes, shaft
// points, pump zones & their velocities. The receiver is untouched.
// Returns the scaled model & the factor applied.
func (m *Model) Rescale(maxGridCells int) (*Model, float64, error) {
	if maxGridCells <= 0 {
		return nil, 0, newConfigError("maxGridCells", "must be > 0", maxGridCells)
	}
	f := m.GridScale(maxGridCells)

	cfg := &Config{
		Tank: TankConfig{
			Width:  m.cfg.Tank.Width * f,
			Depth:  m.cfg.Tank.Depth * f,
			Height: m.cfg.Tank.Height * f,
			Glass:  m.cfg.Tank.Glass * f,
		},
		Overflow: OverflowConfig{
			Drill: make([]DrillConfig, len(m.cfg.Overflow.Drill)),
			Shaft: make([][2]float64, len(m.cfg.Overflow.Shaft)),
		},
		Pump: PumpConfig{
			Inlet:  scaleZone(m.cfg.Pump.Inlet, f),
			Outlet: scaleZone(m.cfg.Pump.Outlet, f),
		},
	}

	for i, d := range m.cfg.Overflow.Drill {
		cfg.Overflow.Drill[i] = DrillConfig{
			Position: d.Position,
			X:        d.X * f,
			Y:        d.Y * f,
			Diameter: d.Diameter * f,
		}
	}
	for i, p := range m.cfg.Overflow.Shaft {
		cfg.Overflow.Shaft[i] = [2]float64{p[0] * f, p[1] * f}
	}

	scaled, err := New(cfg)
	if err != nil {
		return nil, 0, err
	}
	return scaled, f, nil
}

// scaleZone multiplies every length in a zone config by f.
// Directions scale too, velocities are per-unit figures.
func scaleZone(z ZoneConfig, f float64) ZoneConfig {
	d := z.Direction
	switch d.Kind {
	case Parallel:
		d.Vector = d.Vector.Scale(f)
	case Inward, Outward:
		d.Speed *= f
	}
	return ZoneConfig{
		Location:  [3]float64{z.Location[0] * f, z.Location[1] * f, z.Location[2] * f},
		Extent:    [3]float64{z.Extent[0] * f, z.Extent[1] * f, z.Extent[2] * f},
		Direction: d,
		Pane:      z.Pane,
		Name:      z.Name,
	}
}
