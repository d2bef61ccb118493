package aquatank

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/voidshard/aquatank/internal/jsonc"
)

// Config is the declarative tank description, usually read from
// tank.json. Comment lines (leading "//") are tolerated in the file.
//
// All lengths share one unit (cm) except tank.glass which is given
// in mm, matching how tanks are actually specced by glaziers.
type Config struct {
	Tank     TankConfig     `json:"tank"`
	Overflow OverflowConfig `json:"overflow"`
	Pump     PumpConfig     `json:"pump"`
}

// TankConfig is the raw tank box; width, depth, height in cm,
// glass thickness in mm.
type TankConfig struct {
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
	Glass  float64 `json:"glass"`
}

// OverflowConfig lists holes to drill & the shaft footprint polyline
// (bottom pane coordinates, may be empty if the tank has no shaft).
type OverflowConfig struct {
	Drill []DrillConfig `json:"drill"`
	Shaft [][2]float64  `json:"shaft"`
}

// DrillConfig is one hole; position names the pane (exact match, one
// of Right, Left, Bottom, Back, Front) & x, y are pane-local.
type DrillConfig struct {
	Position string  `json:"position"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Diameter float64 `json:"diameter"`
}

// PumpConfig holds the two flow zones of the return pump.
type PumpConfig struct {
	Inlet  ZoneConfig `json:"inlet"`
	Outlet ZoneConfig `json:"outlet"`
}

// ZoneConfig is a flow zone; location is the anchor corner, extent the
// box dimensions from it. Pane optionally pins which face an Inward /
// Outward direction resolves against.
type ZoneConfig struct {
	Location  [3]float64 `json:"location"`
	Extent    [3]float64 `json:"extent"`
	Direction Direction  `json:"direction"`
	Pane      string     `json:"pane,omitempty"`
	Name      string     `json:"name,omitempty"`
}

// ParseConfig reads a Config from raw (comment tolerant) json.
// This only checks the json shape; geometric validation happens when
// the config is built into a Model.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := json.Unmarshal(jsonc.Strip(data), cfg); err != nil {
		// keep our own config error types on the surface
		if _, ok := err.(*ConfigurationError); ok {
			return nil, err
		}
		return nil, newConfigError("json", err.Error(), nil)
	}
	return cfg, nil
}

// LoadConfig reads a Config from the given file.
func LoadConfig(fpath string) (*Config, error) {
	data, err := jsonc.ReadFile(fpath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", fpath)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", fpath)
	}
	return cfg, nil
}
