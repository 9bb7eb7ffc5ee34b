package debug

import (
	"github.com/google/uuid"

	"github.com/Faultbox/printsim/internal/engine/scene"
	"github.com/Faultbox/printsim/pkg/gradient"
	"github.com/Faultbox/printsim/pkg/math"
)

// Default build plate grid.
const (
	DefaultGridSize      = 50
	DefaultGridDivisions = 50
	DefaultGridColor     = gradient.RGB(0x444444)
)

// Grid is a square line grid on the XZ plane centered on the origin.
// It is a scene.Lines node so every renderer draws it like printed paths.
type Grid struct {
	id    uuid.UUID
	lines []scene.Polyline
}

// NewGrid builds a grid of the given size with divisions cells per side.
func NewGrid(size float32, divisions int, color gradient.RGB) *Grid {
	g := &Grid{id: uuid.New()}
	if divisions < 1 {
		divisions = 1
	}

	half := size / 2
	step := size / float32(divisions)
	for i := 0; i <= divisions; i++ {
		k := -half + float32(i)*step
		g.lines = append(g.lines,
			scene.Polyline{Points: []math.Vec3{{X: k, Z: -half}, {X: k, Z: half}}, Color: color},
			scene.Polyline{Points: []math.Vec3{{X: -half, Z: k}, {X: half, Z: k}}, Color: color},
		)
	}
	return g
}

// DefaultGrid returns the standard build plate grid.
func DefaultGrid() *Grid {
	return NewGrid(DefaultGridSize, DefaultGridDivisions, DefaultGridColor)
}

// ID implements scene.Node.
func (g *Grid) ID() uuid.UUID {
	return g.id
}

// Polylines implements scene.Lines.
func (g *Grid) Polylines() []scene.Polyline {
	return g.lines
}
