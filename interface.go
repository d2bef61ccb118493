package aquatank

import (
	"github.com/unixpickle/model3d/model3d"
)

// Geometry is what downstream subsystems (fluid solver, renderer) ask
// of a built tank model. We only have three questions;
// - is this point inside the water volume?
// - is this point inside glass? (pane shell, shaft wall - minus bores)
// - what pump force applies at this point?
// A *Model satisfies this & is safe for concurrent readers.
type Geometry interface {
	// true if p is within the tank water volume
	Contains(p model3d.Coord3D) bool

	// true if p sits in solid glass (implies fluid cannot occupy it)
	SolidAt(p model3d.Coord3D) bool

	// pump flow vector at p, zero outside the pump zones
	ForceAt(p model3d.Coord3D) model3d.Coord3D
}
