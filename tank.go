package aquatank

import (
	"fmt"

	"github.com/unixpickle/model3d/model3d"
)

// Tank is the inner water volume of the aquarium & the root of the
// geometry model. All other geometry is anchored to (and validated
// against) these dimensions.
//
// Width, Depth, Height and Glass share one length unit (cm). Note that
// the config file gives glass thickness in mm; newTank converts.
type Tank struct {
	Width  float64
	Depth  float64
	Height float64

	// Glass is the pane thickness, already converted to the tank unit
	Glass float64
}

// newTank validates raw dimensions (tank unit, glass in mm) & returns
// the immutable tank along with any non-fatal warnings.
func newTank(width, depth, height, glassMM float64) (*Tank, []string, error) {
	for field, v := range map[string]float64{
		"tank.width":  width,
		"tank.depth":  depth,
		"tank.height": height,
		"tank.glass":  glassMM,
	} {
		if v <= 0 {
			return nil, nil, newConfigError(field, "must be > 0", v)
		}
	}

	t := &Tank{
		Width:  width,
		Depth:  depth,
		Height: height,
		Glass:  glassMM / 10.0, // mm -> cm
	}

	warnings := []string{}
	if smallest := minf(width, minf(depth, height)); t.Glass >= smallest/10.0 {
		warnings = append(warnings, fmt.Sprintf(
			"glass thickness %.1f is unusually large for a %.0fx%.0fx%.0f tank",
			t.Glass, width, depth, height))
	}

	return t, warnings, nil
}

// Size returns the inner dimensions as a vector.
func (t *Tank) Size() model3d.Coord3D {
	return model3d.XYZ(t.Width, t.Depth, t.Height)
}

// Center returns the centre of the water volume.
func (t *Tank) Center() model3d.Coord3D {
	return t.Size().Scale(0.5)
}

// Bounds returns the axis aligned box of the water volume.
func (t *Tank) Bounds() *model3d.Rect {
	return &model3d.Rect{MinVal: model3d.Coord3D{}, MaxVal: t.Size()}
}

// Contains returns if p lies within the water volume (inclusive of
// the pane surfaces).
func (t *Tank) Contains(p model3d.Coord3D) bool {
	return p.X >= 0 && p.X <= t.Width &&
		p.Y >= 0 && p.Y <= t.Depth &&
		p.Z >= 0 && p.Z <= t.Height
}

// PaneExtent returns the in-plane (u, v) lengths of the given pane.
func (t *Tank) PaneExtent(p Pane) (float64, float64, error) {
	fn, ok := paneExtents[p]
	if !ok {
		return 0, 0, newGeometryError("extent", p, "unknown pane")
	}
	u, v := fn(t.Size())
	return u, v, nil
}

// LocalToGlobal maps pane-local (u, v) to a point in the global frame.
// Out of bounds inputs fail; a valid local coordinate always maps to a
// point on the tank's bounding box.
func (t *Tank) LocalToGlobal(p Pane, u, v float64) (model3d.Coord3D, error) {
	lu, lv, err := t.PaneExtent(p)
	if err != nil {
		return model3d.Coord3D{}, err
	}
	if u < 0 || u > lu || v < 0 || v > lv {
		return model3d.Coord3D{}, newGeometryError(
			"local-to-global", p, "coordinates outside pane extent", u, v, lu, lv)
	}
	return paneEmbeddings[p](u, v, t.Size()), nil
}

// minf returns the lowest of two floats
func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
