package aquatank

import (
	"encoding/json"
	"fmt"

	"github.com/unixpickle/model3d/model3d"
)

// effectiveRadius is how close (in tank units) a fluid sample must be
// to the outlet centre to be carried over to the inlet.
const effectiveRadius = 1.0

// DirectionKind tags the closed set of flow direction variants.
type DirectionKind string

const (
	// Parallel flow follows a fixed vector throughout the zone
	Parallel DirectionKind = "Parallel"
	// Inward flow follows the resolved pane's inward normal
	Inward DirectionKind = "Inward"
	// Outward flow follows the resolved pane's inward normal, negated
	Outward DirectionKind = "Outward"
)

// Direction is how a flow zone's velocity is specified; either an
// explicit vector or a speed along a tank face normal.
// In json this follows the config wire format, one of
//
//	{"Parallel": [x, y, z]}
//	{"Inward": speed}
//	{"Outward": speed}
type Direction struct {
	Kind   DirectionKind
	Vector model3d.Coord3D // Parallel only
	Speed  float64         // Inward / Outward only
}

// ParallelDirection is flow along the given vector.
func ParallelDirection(v model3d.Coord3D) Direction {
	return Direction{Kind: Parallel, Vector: v}
}

// InwardDirection is flow into the tank at the given speed.
func InwardDirection(speed float64) Direction {
	return Direction{Kind: Inward, Speed: speed}
}

// OutwardDirection is flow out of the tank at the given speed.
func OutwardDirection(speed float64) Direction {
	return Direction{Kind: Outward, Speed: speed}
}

// MarshalJSON writes the externally-tagged wire form.
func (d Direction) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case Parallel:
		return json.Marshal(map[string][3]float64{
			string(Parallel): {d.Vector.X, d.Vector.Y, d.Vector.Z},
		})
	case Inward, Outward:
		return json.Marshal(map[string]float64{string(d.Kind): d.Speed})
	}
	return nil, newConfigError("direction", "unknown kind", string(d.Kind))
}

// UnmarshalJSON reads the externally-tagged wire form.
func (d *Direction) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return newConfigError("direction", "not an object", string(data))
	}
	if len(raw) != 1 {
		return newConfigError("direction", "expected exactly one of Parallel / Inward / Outward", string(data))
	}

	for key, val := range raw {
		switch DirectionKind(key) {
		case Parallel:
			var v []float64
			if err := json.Unmarshal(val, &v); err != nil || len(v) != 3 {
				return newConfigError("direction.Parallel", "expected [x, y, z]", string(val))
			}
			*d = ParallelDirection(model3d.XYZ(v[0], v[1], v[2]))
		case Inward:
			var s float64
			if err := json.Unmarshal(val, &s); err != nil {
				return newConfigError("direction.Inward", "expected a number", string(val))
			}
			*d = InwardDirection(s)
		case Outward:
			var s float64
			if err := json.Unmarshal(val, &s); err != nil {
				return newConfigError("direction.Outward", "expected a number", string(val))
			}
			*d = OutwardDirection(s)
		default:
			return newConfigError("direction", "unknown variant", key)
		}
	}
	return nil
}

// FlowZone is an axis aligned box in the tank with a flow direction;
// the opening of a pump inlet or outlet. Location is the anchor corner
// (minimum along every axis), Extent the box dimensions from it.
type FlowZone struct {
	Name      string
	Location  model3d.Coord3D
	Extent    model3d.Coord3D
	Direction Direction

	// Pane optionally pins which tank face an Inward / Outward zone is
	// relative to; when unset the nearest face is used.
	Pane Pane

	// derived on construction
	Resolved model3d.Coord3D // concrete flow vector
}

// Box returns the zone volume.
func (z *FlowZone) Box() *model3d.Rect {
	return &model3d.Rect{MinVal: z.Location, MaxVal: z.Location.Add(z.Extent)}
}

// Center returns the middle of the zone volume.
func (z *FlowZone) Center() model3d.Coord3D {
	return z.Location.Add(z.Extent.Scale(0.5))
}

// Contains returns if p is within the zone volume.
func (z *FlowZone) Contains(p model3d.Coord3D) bool {
	mx := z.Location.Add(z.Extent)
	return p.X >= z.Location.X && p.X <= mx.X &&
		p.Y >= z.Location.Y && p.Y <= mx.Y &&
		p.Z >= z.Location.Z && p.Z <= mx.Z
}

// ForceAt returns the flow vector a fluid cell at p experiences;
// zero outside the zone volume.
func (z *FlowZone) ForceAt(p model3d.Coord3D) model3d.Coord3D {
	if !z.Contains(p) {
		return model3d.Coord3D{}
	}
	return z.Resolved
}

func (z *FlowZone) String() string {
	return fmt.Sprintf("%s@%v+%v -> %v", z.Name, z.Location, z.Extent, z.Resolved)
}

// Pump owns exactly one inlet & one outlet flow zone, anchored to and
// validated against the tank.
type Pump struct {
	tank *Tank

	Inlet  *FlowZone
	Outlet *FlowZone
}

// newPump returns an empty pump anchored to t.
func newPump(t *Tank) *Pump {
	return &Pump{tank: t}
}

// SetInlet validates & stores the pump inlet zone.
func (p *Pump) SetInlet(z FlowZone) (*FlowZone, error) {
	if z.Name == "" {
		z.Name = "IN"
	}
	zone, err := p.placeZone(z)
	if err != nil {
		return nil, err
	}
	p.Inlet = zone
	return zone, nil
}

// SetOutlet validates & stores the pump outlet zone.
func (p *Pump) SetOutlet(z FlowZone) (*FlowZone, error) {
	if z.Name == "" {
		z.Name = "OUT"
	}
	zone, err := p.placeZone(z)
	if err != nil {
		return nil, err
	}
	p.Outlet = zone
	return zone, nil
}

// placeZone runs all zone validation & resolves the flow direction.
// Nothing is stored if any check fails.
func (p *Pump) placeZone(z FlowZone) (*FlowZone, error) {
	if z.Extent.X <= 0 || z.Extent.Y <= 0 || z.Extent.Z <= 0 {
		return nil, newGeometryError(
			"zone "+z.Name, z.Pane, "extent components must be > 0",
			z.Extent.X, z.Extent.Y, z.Extent.Z)
	}

	mx := z.Location.Add(z.Extent)
	if !p.tank.Contains(z.Location) || !p.tank.Contains(mx) {
		return nil, newGeometryError(
			"zone "+z.Name, z.Pane, "zone outside tank bounds",
			z.Location.X, z.Location.Y, z.Location.Z, mx.X, mx.Y, mx.Z)
	}

	// a tag is optional but a present one must name a real pane, even
	// when the direction kind never reads it
	if z.Pane != "" && !z.Pane.Valid() {
		return nil, newGeometryError("zone "+z.Name, z.Pane, "unknown pane")
	}

	resolved, err := p.resolveDirection(&z)
	if err != nil {
		return nil, err
	}

	zone := z // copy, callers can't mutate what we validated
	zone.Resolved = resolved
	return &zone, nil
}

// resolveDirection turns the direction variant into a concrete vector.
// Parallel is used as given. Inward / Outward need a pane; an explicit
// tag wins, otherwise the face of the tank nearest the zone volume is
// used (flush faces have gap zero). An exact tie is refused rather
// than picking an arbitrary face.
func (p *Pump) resolveDirection(z *FlowZone) (model3d.Coord3D, error) {
	if z.Direction.Kind == Parallel {
		return z.Direction.Vector, nil
	}
	if z.Direction.Kind != Inward && z.Direction.Kind != Outward {
		return model3d.Coord3D{}, newGeometryError(
			"zone "+z.Name, z.Pane, "unknown direction kind: "+string(z.Direction.Kind))
	}

	pane := z.Pane
	if pane == "" {
		nearest, err := p.nearestPane(z)
		if err != nil {
			return model3d.Coord3D{}, err
		}
		pane = nearest
	}

	normal, err := pane.InwardNormal()
	if err != nil {
		return model3d.Coord3D{}, newGeometryError(
			"zone "+z.Name, pane, "cannot resolve inward direction against unknown pane")
	}

	speed := z.Direction.Speed
	if z.Direction.Kind == Outward {
		speed = -speed
	}
	return normal.Scale(speed), nil
}

// nearestPane returns the pane whose face is closest to the zone box.
func (p *Pump) nearestPane(z *FlowZone) (Pane, error) {
	mx := z.Location.Add(z.Extent)
	gaps := map[Pane]float64{
		Left:   z.Location.X,
		Right:  p.tank.Width - mx.X,
		Back:   z.Location.Y,
		Front:  p.tank.Depth - mx.Y,
		Bottom: z.Location.Z,
	}

	// the open top is not a pane, so z+ never resolves
	best := Pane("")
	bestGap := 0.0
	tied := false
	for _, pane := range AllPanes() {
		gap := gaps[pane]
		if best == "" || gap < bestGap {
			best, bestGap, tied = pane, gap, false
		} else if gap == bestGap {
			tied = true
		}
	}

	if tied {
		return "", newGeometryError(
			"zone "+z.Name, "", "ambiguous inward direction, zone is equidistant from two panes; tag the zone with an explicit pane",
			bestGap)
	}
	return best, nil
}

// Transfer maps a fluid sample near the outlet onto the inlet,
// preserving its offset from the outlet centre, & reports the velocity
// it re-enters with. ok is false when p is out of the pump's reach.
func (p *Pump) Transfer(point model3d.Coord3D) (target, velocity model3d.Coord3D, ok bool) {
	if p.Inlet == nil || p.Outlet == nil {
		return model3d.Coord3D{}, model3d.Coord3D{}, false
	}

	offset := point.Sub(p.Outlet.Center())
	if offset.Norm() > effectiveRadius {
		return model3d.Coord3D{}, model3d.Coord3D{}, false
	}
	return p.Inlet.Center().Add(offset), p.Inlet.Resolved, true
}
