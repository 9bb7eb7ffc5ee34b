package scene

import (
	"github.com/google/uuid"

	"github.com/Faultbox/printsim/pkg/math"
)

// Part is one rigid piece of a robot model.
type Part struct {
	Name     string
	Bounds   [6]float32 // Local AABB: minX, minY, minZ, maxX, maxY, maxZ
	Color    [3]float32
	Position math.Vec3
	Yaw      float32 // Rotation about Y, radians
	Scale    math.Vec3
}

// Transform returns the part's model matrix.
func (p Part) Transform() math.Mat4 {
	return math.TRS(p.Position, p.Yaw, p.Scale)
}

// Model is a robot's visual representation: a body that stays on the build
// plate and a print head that moves vertically above it.
type Model struct {
	id   uuid.UUID
	Body Part
	Head Part
}

// NewModel creates a model with unit scale.
func NewModel(body, head Part) *Model {
	m := &Model{id: uuid.New(), Body: body, Head: head}
	m.SetScale(1)
	return m
}

// DefaultModel returns the box-shaped stand-in used when no asset is configured.
func DefaultModel() *Model {
	return NewModel(
		Part{
			Name:   "body",
			Bounds: [6]float32{-0.5, 0, -0.5, 0.5, 0.4, 0.5},
			Color:  [3]float32{0.8, 0.55, 0.1},
		},
		Part{
			Name:   "printhead",
			Bounds: [6]float32{-0.15, -0.3, -0.15, 0.15, 0, 0.15},
			Color:  [3]float32{0.85, 0.85, 0.85},
		},
	)
}

// ID implements Node.
func (m *Model) ID() uuid.UUID {
	return m.id
}

// SetScale applies a uniform scale to both parts.
func (m *Model) SetScale(s float32) {
	m.Body.Scale = math.Vec3{X: s, Y: s, Z: s}
	m.Head.Scale = math.Vec3{X: s, Y: s, Z: s}
}

// Clone returns a copy of the model's shape and pose with a new identity.
func (m *Model) Clone() *Model {
	c := *m
	c.id = uuid.New()
	return &c
}
