package aquatank

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"
)

// PlanScheme defines how features are coloured in a plan view.
type PlanScheme struct {
	Water  color.Color
	Glass  color.Color
	Shaft  color.Color
	Holes  color.Color
	Inlet  color.Color
	Outlet color.Color
}

// DefaultPlanScheme returns a reasonable default PlanScheme.
func DefaultPlanScheme() *PlanScheme {
	return &PlanScheme{
		Water:  colornames.Lightblue,
		Glass:  colornames.Darkslategray,
		Shaft:  colornames.Black,
		Holes:  colornames.White,
		Inlet:  colornames.Seagreen,
		Outlet: colornames.Crimson,
	}
}

// PlanView renders the model top-down (looking down the z axis) at
// the given pixels-per-unit. Diagnostic output; the operator checks
// their tank.json lines up with the tank they actually drilled.
func (m *Model) PlanView(scheme *PlanScheme, scale float64) (image.Image, error) {
	if scale <= 0 {
		return nil, newConfigError("scale", "must be > 0", scale)
	}
	if scheme == nil {
		scheme = DefaultPlanScheme()
	}

	glass := m.Tank.Glass * scale
	w := int(math.Ceil(m.Tank.Width*scale + 2*glass))
	h := int(math.Ceil(m.Tank.Depth*scale + 2*glass))
	ctx := gg.NewContext(w, h)

	// outer shell then the water volume over it; what remains visible
	// of the shell is the pane glass
	ctx.SetColor(scheme.Glass)
	ctx.DrawRectangle(0, 0, float64(w), float64(h))
	ctx.Fill()
	ctx.SetColor(scheme.Water)
	ctx.DrawRectangle(glass, glass, m.Tank.Width*scale, m.Tank.Depth*scale)
	ctx.Fill()

	// from here on we draw in water-volume coordinates
	ctx.Translate(glass, glass)

	for _, z := range []*FlowZone{m.Pump.Inlet, m.Pump.Outlet} {
		if z == m.Pump.Inlet {
			ctx.SetColor(scheme.Inlet)
		} else {
			ctx.SetColor(scheme.Outlet)
		}
		ctx.DrawRectangle(z.Location.X*scale, z.Location.Y*scale, z.Extent.X*scale, z.Extent.Y*scale)
		ctx.Fill()
	}

	if m.Overflow.Shaft != nil {
		ctx.SetColor(scheme.Shaft)
		ctx.SetLineWidth(math.Max(1, glass))
		ctx.SetLineCapSquare()
		for _, seg := range m.Overflow.Shaft.Segments() {
			ctx.DrawLine(seg[0].X*scale, seg[0].Y*scale, seg[1].X*scale, seg[1].Y*scale)
			ctx.Stroke()
		}
	}

	for _, hole := range m.Overflow.Holes {
		if hole.Pane != Bottom {
			continue
		}
		ctx.SetColor(scheme.Holes)
		ctx.DrawCircle(hole.Center.X*scale, hole.Center.Y*scale, hole.Diameter/2.0*scale)
		ctx.Fill()
	}

	return ctx.Image(), nil
}

// SavePlan writes a plan view PNG to the given path.
func (m *Model) SavePlan(fpath string, scheme *PlanScheme, scale float64) error {
	im, err := m.PlanView(scheme, scale)
	if err != nil {
		return err
	}
	return savePNG(fpath, im)
}

// savePNG to disk
func savePNG(fpath string, in image.Image) error {
	buff := new(bytes.Buffer)
	err := png.Encode(buff, in)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(fpath, buff.Bytes(), 0644)
}
