package aquatank

import (
	"image"
	"math"

	"github.com/boljen/go-bitmap"
	"github.com/unixpickle/essentials"

	"github.com/voidshard/aquatank/internal/encoding"
	"github.com/voidshard/aquatank/internal/line"
)

const (
	// bit numbers for our per-cell bitmap
	bitShaft  = 0
	bitHole   = 1
	bitInlet  = 2
	bitOutlet = 3
)

// FloorGrid rasterises the model onto a coarse grid over the tank
// floor so a cell-based solver can tell at a glance which columns hold
// shaft glass, drilled drains or pump openings.
//
// Each cell is a uint16;
//
//	high 8 bits -> drill hole index + 1 (0 means no hole)
//	low  8 bits -> bitmap
//	  bit 0 -> shaft wall
//	  bit 1 -> drill hole (bottom pane)
//	  bit 2 -> pump inlet footprint
//	  bit 3 -> pump outlet footprint
//	  bits 4-7 -> unused
type FloorGrid struct {
	cells []uint16

	cols     int
	rows     int
	cellSize float64
}

// NewFloorGrid rasterises m at the given cell size (tank units).
func NewFloorGrid(m *Model, cellSize float64) (*FloorGrid, error) {
	if cellSize <= 0 {
		return nil, newConfigError("cellSize", "must be > 0", cellSize)
	}

	g := &FloorGrid{
		cols:     int(math.Ceil(m.Tank.Width / cellSize)),
		rows:     int(math.Ceil(m.Tank.Depth / cellSize)),
		cellSize: cellSize,
	}
	g.cells = make([]uint16, g.cols*g.rows)

	if m.Overflow.Shaft != nil {
		for _, seg := range m.Overflow.Shaft.Segments() {
			a := g.cellAt(seg[0].X, seg[0].Y)
			b := g.cellAt(seg[1].X, seg[1].Y)
			for _, pt := range line.PointsBetween(a, b) {
				g.setFlag(pt.X, pt.Y, bitShaft)
			}
		}
	}

	for i, h := range m.Overflow.Holes {
		if h.Pane != Bottom {
			continue
		}
		g.markHole(h, i)
	}

	g.markZone(m.Pump.Inlet, bitInlet)
	g.markZone(m.Pump.Outlet, bitOutlet)

	return g, nil
}

// Cols is the cell count along the width axis.
func (g *FloorGrid) Cols() int {
	return g.cols
}

// Rows is the cell count along the depth axis.
func (g *FloorGrid) Rows() int {
	return g.rows
}

// CellSize returns the cell edge length in tank units.
func (g *FloorGrid) CellSize() float64 {
	return g.cellSize
}

// IsShaftWall returns if shaft glass crosses cell (cx, cy).
func (g *FloorGrid) IsShaftWall(cx, cy int) bool {
	return g.getFlag(cx, cy, bitShaft)
}

// IsDrillHole returns if a bottom pane bore covers cell (cx, cy).
func (g *FloorGrid) IsDrillHole(cx, cy int) bool {
	return g.getFlag(cx, cy, bitHole)
}

// IsInlet returns if the pump inlet footprint covers cell (cx, cy).
func (g *FloorGrid) IsInlet(cx, cy int) bool {
	return g.getFlag(cx, cy, bitInlet)
}

// IsOutlet returns if the pump outlet footprint covers cell (cx, cy).
func (g *FloorGrid) IsOutlet(cx, cy int) bool {
	return g.getFlag(cx, cy, bitOutlet)
}

// Blocked returns if fluid cannot occupy the column at (cx, cy);
// currently that means shaft glass.
func (g *FloorGrid) Blocked(cx, cy int) bool {
	return g.IsShaftWall(cx, cy)
}

// HoleAt returns the index (into Overflow.Holes) of the bottom pane
// hole covering cell (cx, cy), ok false if there is none.
func (g *FloorGrid) HoleAt(cx, cy int) (int, bool) {
	if g.isOutOfBounds(cx, cy) {
		return 0, false
	}
	idx, _ := encoding.Split16(g.cells[cy*g.cols+cx])
	if idx == 0 {
		return 0, false
	}
	return int(idx) - 1, true
}

// cellAt maps floor coordinates to a cell, clamped into the grid.
func (g *FloorGrid) cellAt(x, y float64) image.Point {
	cx := essentials.MaxInt(0, essentials.MinInt(g.cols-1, int(x/g.cellSize)))
	cy := essentials.MaxInt(0, essentials.MinInt(g.rows-1, int(y/g.cellSize)))
	return image.Pt(cx, cy)
}

// markHole flags every cell within the bore radius of h.
func (g *FloorGrid) markHole(h *DrillHole, index int) {
	r := h.Diameter / 2.0
	lo := g.cellAt(h.Center.X-r, h.Center.Y-r)
	hi := g.cellAt(h.Center.X+r, h.Center.Y+r)

	for cy := lo.Y; cy <= hi.Y; cy++ {
		for cx := lo.X; cx <= hi.X; cx++ {
			// cell centre within bore radius
			px := (float64(cx) + 0.5) * g.cellSize
			py := (float64(cy) + 0.5) * g.cellSize
			if math.Hypot(px-h.Center.X, py-h.Center.Y) > r {
				continue
			}
			g.setFlag(cx, cy, bitHole)
			g.setHoleIndex(cx, cy, index)
		}
	}
}

// markZone flags the x/y footprint of a flow zone.
func (g *FloorGrid) markZone(z *FlowZone, bit int) {
	lo := g.cellAt(z.Location.X, z.Location.Y)
	hi := g.cellAt(z.Location.X+z.Extent.X, z.Location.Y+z.Extent.Y)
	for cy := lo.Y; cy <= hi.Y; cy++ {
		for cx := lo.X; cx <= hi.X; cx++ {
			g.setFlag(cx, cy, bit)
		}
	}
}

// setFlag sets one bit of the cell's 8 bit bitmap
func (g *FloorGrid) setFlag(cx, cy, bit int) {
	if g.isOutOfBounds(cx, cy) {
		return
	}
	i := cy*g.cols + cx
	idx, flags := encoding.Split16(g.cells[i])

	bm := bitmap.Bitmap(encoding.ToBytes8(flags))
	bm.Set(bit, true)

	g.cells[i] = encoding.Merge8(idx, encoding.FromBytes8(bm.Data(true)))
}

// getFlag reads one bit of the cell's 8 bit bitmap
func (g *FloorGrid) getFlag(cx, cy, bit int) bool {
	if g.isOutOfBounds(cx, cy) {
		return false
	}
	_, flags := encoding.Split16(g.cells[cy*g.cols+cx])
	return bitmap.Bitmap(encoding.ToBytes8(flags)).Get(bit)
}

// setHoleIndex records which hole covers the cell (stored +1, 0 is none)
func (g *FloorGrid) setHoleIndex(cx, cy, index int) {
	if g.isOutOfBounds(cx, cy) || index > 254 {
		return
	}
	i := cy*g.cols + cx
	_, flags := encoding.Split16(g.cells[i])
	g.cells[i] = encoding.Merge8(uint8(index+1), flags)
}

// isOutOfBounds determines if cx,cy is outside the grid
func (g *FloorGrid) isOutOfBounds(cx, cy int) bool {
	return cx < 0 || cx >= g.cols || cy < 0 || cy >= g.rows
}
