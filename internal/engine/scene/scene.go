// Package scene holds the replay scene graph: posed robot models and printed
// path groups that renderers draw each tick.
//
// The graph only tracks membership. Nodes are opaque handles added and removed
// by the playback engine; renderers walk whatever is currently attached.
package scene

import (
	"github.com/google/uuid"

	"github.com/Faultbox/printsim/pkg/gradient"
	"github.com/Faultbox/printsim/pkg/math"
)

// Node is a renderable handle with a stable identity.
type Node interface {
	ID() uuid.UUID
}

// Graph is the add/remove surface the playback engine drives.
type Graph interface {
	Add(n Node)
	Remove(n Node)
}

// Polyline is a connected line strip drawn in one color.
type Polyline struct {
	Points []math.Vec3
	Color  gradient.RGB
}

// Lines is a node made of colored polylines.
type Lines interface {
	Node
	Polylines() []Polyline
}

// Scene is an in-memory Graph. Adding a node twice or removing an absent node
// is a no-op. Not safe for concurrent use; the playback tick owns it.
type Scene struct {
	nodes map[uuid.UUID]Node
	pos   map[uuid.UUID]int // index into order
	order []uuid.UUID       // insertion order; removed slots hold uuid.Nil until compaction
	stale int
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{nodes: make(map[uuid.UUID]Node), pos: make(map[uuid.UUID]int)}
}

// Add attaches n to the scene.
func (s *Scene) Add(n Node) {
	id := n.ID()
	if _, ok := s.nodes[id]; ok {
		return
	}
	s.nodes[id] = n
	s.pos[id] = len(s.order)
	s.order = append(s.order, id)
}

// Remove detaches n from the scene.
func (s *Scene) Remove(n Node) {
	id := n.ID()
	if _, ok := s.nodes[id]; !ok {
		return
	}
	delete(s.nodes, id)
	s.order[s.pos[id]] = uuid.Nil
	delete(s.pos, id)
	s.stale++
	if s.stale > len(s.nodes) {
		s.compact()
	}
}

// Contains reports whether n is attached.
func (s *Scene) Contains(n Node) bool {
	_, ok := s.nodes[n.ID()]
	return ok
}

// Len returns the number of attached nodes.
func (s *Scene) Len() int {
	return len(s.nodes)
}

// Walk calls fn for every attached node in insertion order.
func (s *Scene) Walk(fn func(Node)) {
	for _, id := range s.order {
		if id == uuid.Nil {
			continue
		}
		fn(s.nodes[id])
	}
}

// Models returns the attached robot models.
func (s *Scene) Models() []*Model {
	var out []*Model
	s.Walk(func(n Node) {
		if m, ok := n.(*Model); ok {
			out = append(out, m)
		}
	})
	return out
}

// Lines returns the attached line nodes.
func (s *Scene) Lines() []Lines {
	var out []Lines
	s.Walk(func(n Node) {
		if l, ok := n.(Lines); ok {
			out = append(out, l)
		}
	})
	return out
}

// Bounds returns the axis-aligned box around every line point and model origin.
// ok is false for a scene with nothing to measure.
func (s *Scene) Bounds() (lo, hi math.Vec3, ok bool) {
	grow := func(p math.Vec3) {
		if !ok {
			lo, hi, ok = p, p, true
			return
		}
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	s.Walk(func(n Node) {
		switch v := n.(type) {
		case *Model:
			grow(v.Body.Position)
			grow(v.Head.Position)
		case Lines:
			for _, pl := range v.Polylines() {
				for _, p := range pl.Points {
					grow(p)
				}
			}
		}
	})
	return lo, hi, ok
}

func (s *Scene) compact() {
	kept := s.order[:0]
	for _, id := range s.order {
		if id != uuid.Nil {
			s.pos[id] = len(kept)
			kept = append(kept, id)
		}
	}
	s.order = kept
	s.stale = 0
}
