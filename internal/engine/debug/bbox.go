// Package debug provides debug visualization helpers shared by the renderers.
package debug

import (
	"github.com/Faultbox/printsim/internal/engine/scene"
	"github.com/Faultbox/printsim/pkg/math"
)

// BoxEdgeCount is the number of edges in a box wireframe.
const BoxEdgeCount = 12

// Edge is a line segment.
type Edge [2]math.Vec3

// BoxEdges returns the 12 edges of an axis-aligned box.
func BoxEdges(lo, hi math.Vec3) [BoxEdgeCount]Edge {
	c := [8]math.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
	}
	return [BoxEdgeCount]Edge{
		// Bottom face
		{c[0], c[1]}, {c[1], c[2]}, {c[2], c[3]}, {c[3], c[0]},
		// Top face
		{c[4], c[5]}, {c[5], c[6]}, {c[6], c[7]}, {c[7], c[4]},
		// Vertical edges
		{c[0], c[4]}, {c[1], c[5]}, {c[2], c[6]}, {c[3], c[7]},
	}
}

// PartEdges returns the wireframe of a model part's bounds in world space.
func PartEdges(p scene.Part) [BoxEdgeCount]Edge {
	lo := math.Vec3{X: p.Bounds[0], Y: p.Bounds[1], Z: p.Bounds[2]}
	hi := math.Vec3{X: p.Bounds[3], Y: p.Bounds[4], Z: p.Bounds[5]}

	m := p.Transform()
	edges := BoxEdges(lo, hi)
	for i := range edges {
		edges[i][0] = m.TransformVec3(edges[i][0])
		edges[i][1] = m.TransformVec3(edges[i][1])
	}
	return edges
}

// ModelEdges returns the wireframes of both parts of a robot model.
func ModelEdges(m *scene.Model) []Edge {
	body := PartEdges(m.Body)
	head := PartEdges(m.Head)
	out := make([]Edge, 0, 2*BoxEdgeCount)
	out = append(out, body[:]...)
	return append(out, head[:]...)
}
