package aquatank

import (
	"encoding/json"
	"io/ioutil"

	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
	"github.com/vmihailenco/msgpack/v5"
)

// Model holds the fully validated tank geometry; the tank box, the
// overflow drill holes & shaft, and the pump flow zones. Once built it
// is read-only & may be shared across any number of consumers without
// locking. Reconfiguring means building a fresh Model; a half built
// one is never handed out.
type Model struct {
	Tank     *Tank
	Overflow *Overflow
	Pump     *Pump

	cfg      *Config
	warnings []string
}

// New builds a Model from the given config, validating everything
// eagerly. Either the whole model builds or you get an error naming
// what is wrong with the config.
func New(cfg *Config) (*Model, error) {
	m := &Model{cfg: cfg}
	return m, m.build()
}

// Load reads & builds a Model from a tank.json style file.
func Load(fpath string) (*Model, error) {
	cfg, err := LoadConfig(fpath)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// build runs construction in dependency order; the tank first since
// everything else is bounds-checked against it.
func (m *Model) build() error {
	tank, warnings, err := newTank(
		m.cfg.Tank.Width, m.cfg.Tank.Depth, m.cfg.Tank.Height, m.cfg.Tank.Glass)
	if err != nil {
		return err
	}
	m.warnings = warnings

	overflow := newOverflow(tank)
	for _, d := range m.cfg.Overflow.Drill {
		if _, err := overflow.AddDrillHole(Pane(d.Position), d.X, d.Y, d.Diameter); err != nil {
			return err
		}
	}
	if len(m.cfg.Overflow.Shaft) > 0 {
		pts := make([]model2d.Coord, len(m.cfg.Overflow.Shaft))
		for i, p := range m.cfg.Overflow.Shaft {
			pts[i] = model2d.Coord{X: p[0], Y: p[1]}
		}
		if _, err := overflow.SetShaftPath(pts); err != nil {
			return err
		}
	}

	pump := newPump(tank)
	if _, err := pump.SetInlet(zoneFromConfig(m.cfg.Pump.Inlet, "IN")); err != nil {
		return err
	}
	if _, err := pump.SetOutlet(zoneFromConfig(m.cfg.Pump.Outlet, "OUT")); err != nil {
		return err
	}

	m.Tank = tank
	m.Overflow = overflow
	m.Pump = pump
	return nil
}

// zoneFromConfig lifts the raw zone config into a FlowZone.
func zoneFromConfig(z ZoneConfig, defaultName string) FlowZone {
	name := z.Name
	if name == "" {
		name = defaultName
	}
	return FlowZone{
		Name:      name,
		Location:  model3d.XYZ(z.Location[0], z.Location[1], z.Location[2]),
		Extent:    model3d.XYZ(z.Extent[0], z.Extent[1], z.Extent[2]),
		Direction: z.Direction,
		Pane:      Pane(z.Pane),
	}
}

// Warnings returns non-fatal oddities noticed while building
// (eg. implausible glass thickness). The model is still valid.
func (m *Model) Warnings() []string {
	return m.warnings
}

// Config returns the configuration this model was built from.
func (m *Model) Config() *Config {
	return m.cfg
}

// Contains returns if p is within the tank water volume.
func (m *Model) Contains(p model3d.Coord3D) bool {
	return m.Tank.Contains(p)
}

// SolidAt returns if p sits inside glass; the pane shell or a shaft
// wall. Drilled bores are void, water passes through them.
func (m *Model) SolidAt(p model3d.Coord3D) bool {
	if m.Overflow.Shaft != nil && m.Overflow.Shaft.Solid().Contains(p) {
		return true
	}
	if !m.inShell(p) {
		return false
	}
	for _, h := range m.Overflow.Holes {
		if h.Solid().Contains(p) {
			return false
		}
	}
	return true
}

// inShell returns if p lies in the glass shell around the water
// volume; within the outer box (grown by the glass everywhere except
// the open top) but outside the inner one.
func (m *Model) inShell(p model3d.Coord3D) bool {
	g := m.Tank.Glass
	s := m.Tank.Size()
	inOuter := p.X >= -g && p.X <= s.X+g &&
		p.Y >= -g && p.Y <= s.Y+g &&
		p.Z >= -g && p.Z <= s.Z
	inInner := p.X > 0 && p.X < s.X &&
		p.Y > 0 && p.Y < s.Y &&
		p.Z > 0
	return inOuter && !inInner
}

// ForceAt returns the pump flow vector applied to a fluid cell at p;
// zero outside both zones.
func (m *Model) ForceAt(p model3d.Coord3D) model3d.Coord3D {
	return m.Pump.Inlet.ForceAt(p).Add(m.Pump.Outlet.ForceAt(p))
}

// JSON returns the model's config as json.
func (m *Model) JSON() ([]byte, error) {
	return json.Marshal(m.cfg)
}

// SaveJSON writes a json file to the given path.
func (m *Model) SaveJSON(fpath string) error {
	data, err := m.JSON()
	if err != nil {
		return err
	}
	return ioutil.WriteFile(fpath, data, 0644)
}

// Snapshot returns a compact binary form of the model, intended for
// handing a validated tank between processes (builder -> simulator).
func (m *Model) Snapshot() ([]byte, error) {
	return msgpack.Marshal(m.cfg)
}

// LoadSnapshot rebuilds a model from Snapshot() data. The geometry is
// re-validated on load, so a snapshot can never smuggle in a model
// that would not build.
func LoadSnapshot(data []byte) (*Model, error) {
	cfg := &Config{}
	if err := msgpack.Unmarshal(data, cfg); err != nil {
		return nil, newConfigError("snapshot", err.Error(), nil)
	}
	return New(cfg)
}
