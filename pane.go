package aquatank

import (
	"github.com/unixpickle/model3d/model3d"
)

// Pane names one of the five bounded glass faces of the tank.
// The top is open water & deliberately has no pane.
// Each pane carries its own 2d coordinate system used by the config;
// the tables below fix the origin corner, the in-plane axes and the
// inward normal for each of them.
//
// Global frame: x runs along the width, y along the depth (0 at the
// back wall), z up from the floor, origin at the floor's back-left
// corner of the inner water volume.
type Pane string

const (
	Right  Pane = "Right"  // origin bottom-back, u toward the front, v up
	Left   Pane = "Left"   // origin bottom-back, u toward the front, v up
	Bottom Pane = "Bottom" // origin back-left, u along width, v toward the front
	Back   Pane = "Back"   // origin bottom-left, u along width, v up
	Front  Pane = "Front"  // origin bottom-left, u along width, v up
)

var (
	allPanes = []Pane{Right, Left, Bottom, Back, Front}

	paneIndex = map[Pane]int{
		Right:  0,
		Left:   1,
		Bottom: 2,
		Back:   3,
		Front:  4,
	}

	// unit vectors pointing from each pane into the water volume
	paneNormals = map[Pane]model3d.Coord3D{
		Right:  model3d.XYZ(-1, 0, 0),
		Left:   model3d.XYZ(1, 0, 0),
		Bottom: model3d.XYZ(0, 0, 1),
		Back:   model3d.XYZ(0, 1, 0),
		Front:  model3d.XYZ(0, -1, 0),
	}

	// embedding of pane-local (u, v) into the global frame, given the
	// inner tank size
	paneEmbeddings = map[Pane]func(u, v float64, size model3d.Coord3D) model3d.Coord3D{
		Right:  func(u, v float64, s model3d.Coord3D) model3d.Coord3D { return model3d.XYZ(s.X, u, v) },
		Left:   func(u, v float64, s model3d.Coord3D) model3d.Coord3D { return model3d.XYZ(0, u, v) },
		Bottom: func(u, v float64, s model3d.Coord3D) model3d.Coord3D { return model3d.XYZ(u, v, 0) },
		Back:   func(u, v float64, s model3d.Coord3D) model3d.Coord3D { return model3d.XYZ(u, 0, v) },
		Front:  func(u, v float64, s model3d.Coord3D) model3d.Coord3D { return model3d.XYZ(u, s.Y, v) },
	}

	// in-plane extent of each pane as (u, v) lengths, given the inner
	// tank size
	paneExtents = map[Pane]func(size model3d.Coord3D) (float64, float64){
		Right:  func(s model3d.Coord3D) (float64, float64) { return s.Y, s.Z },
		Left:   func(s model3d.Coord3D) (float64, float64) { return s.Y, s.Z },
		Bottom: func(s model3d.Coord3D) (float64, float64) { return s.X, s.Y },
		Back:   func(s model3d.Coord3D) (float64, float64) { return s.X, s.Z },
		Front:  func(s model3d.Coord3D) (float64, float64) { return s.X, s.Z },
	}
)

// ID returns the index of a pane, -1 if the pane is unknown
func (p Pane) ID() int {
	v, ok := paneIndex[p]
	if !ok {
		return -1
	}
	return v
}

// Valid returns if p is one of the five known panes.
// Pane names are case sensitive, an exact match is required.
func (p Pane) Valid() bool {
	_, ok := paneIndex[p]
	return ok
}

// InwardNormal returns the unit vector pointing from pane p into
// the tank interior.
func (p Pane) InwardNormal() (model3d.Coord3D, error) {
	n, ok := paneNormals[p]
	if !ok {
		return model3d.Coord3D{}, newGeometryError("normal", p, "unknown pane")
	}
	return n, nil
}

// AllPanes returns all known Pane enums
func AllPanes() []Pane {
	return allPanes
}
