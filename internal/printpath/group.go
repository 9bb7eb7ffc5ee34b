// Package printpath builds the per-frame groups of printed polylines that the
// playback engine reveals as the replay advances.
package printpath

import (
	"github.com/google/uuid"

	"github.com/Faultbox/printsim/internal/engine/scene"
)

// Group is the material printed during one simulated frame. It never changes
// after Build returns.
type Group struct {
	id    uuid.UUID
	lines []scene.Polyline
}

func newGroup(lines []scene.Polyline) *Group {
	return &Group{id: uuid.New(), lines: lines}
}

// ID implements scene.Node.
func (g *Group) ID() uuid.UUID {
	return g.id
}

// Polylines implements scene.Lines.
func (g *Group) Polylines() []scene.Polyline {
	return g.lines
}

// Len returns the number of polylines in the group.
func (g *Group) Len() int {
	return len(g.lines)
}

// Set is the frame-indexed list of groups. Index 0 is always an empty group
// standing for "nothing printed yet"; index k holds what frame k-1 printed.
type Set struct {
	groups []*Group
}

// Len returns the number of groups (frame count + 1).
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.groups)
}

// At returns group i, or nil when i is out of range.
func (s *Set) At(i int) *Group {
	if s == nil || i < 0 || i >= len(s.groups) {
		return nil
	}
	return s.groups[i]
}

// Polylines returns the total number of polylines across all groups.
func (s *Set) Polylines() int {
	n := 0
	for i := 0; i < s.Len(); i++ {
		n += s.groups[i].Len()
	}
	return n
}
