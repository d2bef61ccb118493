package aquatank

import (
	"fmt"
	"math"

	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"

	"github.com/voidshard/aquatank/internal/prism"
)

// DrillHole is a hole bored through a glass pane, modelled as a finite
// cylinder of length Tank.Glass along the pane's inward normal.
// X, Y are the hole centre in pane-local coordinates.
type DrillHole struct {
	Pane     Pane
	X        float64
	Y        float64
	Diameter float64

	// derived on construction
	Center model3d.Coord3D // on the inner pane surface, global frame
	Axis   model3d.Coord3D // boring direction (the pane's inward normal)
	Bore   float64         // bore length, ie. the glass thickness
}

func (h *DrillHole) String() string {
	return fmt.Sprintf("%s( %g, %g )/%g", h.Pane, h.X, h.Y, h.Diameter)
}

// Solid returns the bored-out cylinder. It spans the glass from the
// outer surface to the inner one.
func (h *DrillHole) Solid() model3d.Solid {
	return &model3d.Cylinder{
		P1:     h.Center.Sub(h.Axis.Scale(h.Bore)),
		P2:     h.Center,
		Radius: h.Diameter / 2.0,
	}
}

// ShaftWall is one glass pane of the overflow shaft; a segment of the
// footprint polyline extruded up from the floor.
type ShaftWall struct {
	Origin    model2d.Coord // start of the segment on the floor
	Length    float64
	Angle     float64 // yaw about the vertical axis
	Thickness float64
	Height    float64
}

// Solid returns the wall as a 3d solid.
func (w *ShaftWall) Solid() model3d.Solid {
	end := w.Origin.Add(model2d.Coord{X: math.Cos(w.Angle), Y: math.Sin(w.Angle)}.Scale(w.Length))
	return &wallSolid{
		a:    w.Origin,
		b:    end,
		half: w.Thickness / 2.0,
		h:    w.Height,
	}
}

// wallSolid is a box standing on the segment a-b, Thickness wide.
type wallSolid struct {
	a, b model2d.Coord
	half float64
	h    float64
}

func (w *wallSolid) Min() model3d.Coord3D {
	return model3d.XYZ(math.Min(w.a.X, w.b.X)-w.half, math.Min(w.a.Y, w.b.Y)-w.half, 0)
}

func (w *wallSolid) Max() model3d.Coord3D {
	return model3d.XYZ(math.Max(w.a.X, w.b.X)+w.half, math.Max(w.a.Y, w.b.Y)+w.half, w.h)
}

func (w *wallSolid) Contains(p model3d.Coord3D) bool {
	if p.Z < 0 || p.Z > w.h {
		return false
	}
	return prism.DistToSegment(model2d.Coord{X: p.X, Y: p.Y}, w.a, w.b) <= w.half
}

// Shaft is the overflow shaft; a polyline footprint on the bottom pane
// (relative to its back-left corner) extruded from the floor to the
// tank height.
type Shaft struct {
	Points    []model2d.Coord
	Height    float64
	Thickness float64
}

// Segments pairs up the footprint points.
func (s *Shaft) Segments() []*model2d.Segment {
	return prism.Segments(s.Points)
}

// Walls returns one wall description per footprint segment, the way
// an installer (or a mesh builder) consumes the shaft.
func (s *Shaft) Walls() []*ShaftWall {
	walls := make([]*ShaftWall, 0, len(s.Points)-1)
	for i := 1; i < len(s.Points); i++ {
		a, b := s.Points[i-1], s.Points[i]
		walls = append(walls, &ShaftWall{
			Origin:    a,
			Length:    b.Dist(a),
			Angle:     prism.Angle(a, b),
			Thickness: s.Thickness,
			Height:    s.Height,
		})
	}
	return walls
}

// Solid returns the shaft glass as a single 3d solid.
func (s *Shaft) Solid() model3d.Solid {
	solids := model3d.JoinedSolid{}
	for _, w := range s.Walls() {
		solids = append(solids, w.Solid())
	}
	return solids
}

// Overflow owns the drilled holes & the (optional) shaft that let
// water leave the tank for the sump.
type Overflow struct {
	tank *Tank

	Holes []*DrillHole
	Shaft *Shaft // nil when the tank has no shaft
}

// newOverflow returns an empty overflow anchored to t.
func newOverflow(t *Tank) *Overflow {
	return &Overflow{tank: t, Holes: []*DrillHole{}}
}

// AddDrillHole validates & stores a hole on the given pane.
// The hole must clear the pane edges; a bore tangent to a seam would
// compromise the silicone, so the check is strict.
// Nothing is stored if validation fails.
func (o *Overflow) AddDrillHole(p Pane, x, y, diameter float64) (*DrillHole, error) {
	if !p.Valid() {
		return nil, newGeometryError("drill", p, "unknown pane")
	}

	lu, lv, err := o.tank.PaneExtent(p)
	if err != nil {
		return nil, err
	}

	if diameter <= 0 {
		return nil, newGeometryError("drill", p, "diameter must be > 0", diameter)
	}
	if diameter >= minf(lu, lv) {
		return nil, newGeometryError("drill", p, "diameter exceeds pane", diameter, lu, lv)
	}

	r := diameter / 2.0
	if x-r <= 0 || x+r >= lu || y-r <= 0 || y+r >= lv {
		return nil, newGeometryError("drill", p, "hole extends beyond pane", x, y, r, lu, lv)
	}

	center, err := o.tank.LocalToGlobal(p, x, y)
	if err != nil {
		return nil, err
	}
	axis, err := p.InwardNormal()
	if err != nil {
		return nil, err
	}

	hole := &DrillHole{
		Pane:     p,
		X:        x,
		Y:        y,
		Diameter: diameter,
		Center:   center,
		Axis:     axis,
		Bore:     o.tank.Glass,
	}
	o.Holes = append(o.Holes, hole)
	return hole, nil
}

// SetShaftPath validates & stores the shaft footprint. Points are
// bottom-pane coordinates. The path must have at least two points,
// no consecutive duplicates, no self-intersections & must lie on the
// tank floor. Nothing is stored if validation fails.
func (o *Overflow) SetShaftPath(points []model2d.Coord) (*Shaft, error) {
	if err := prism.ValidatePath(points); err != nil {
		return nil, wrapGeometryError("shaft", err)
	}

	for _, pt := range points {
		if pt.X < 0 || pt.X > o.tank.Width || pt.Y < 0 || pt.Y > o.tank.Depth {
			return nil, newGeometryError(
				"shaft", Bottom, "point outside tank floor", pt.X, pt.Y, o.tank.Width, o.tank.Depth)
		}
	}

	pts := make([]model2d.Coord, len(points))
	copy(pts, points)

	o.Shaft = &Shaft{
		Points:    pts,
		Height:    o.tank.Height,
		Thickness: o.tank.Glass,
	}
	return o.Shaft, nil
}
