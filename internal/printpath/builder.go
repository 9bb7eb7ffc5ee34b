package printpath

import (
	"fmt"

	"github.com/Faultbox/printsim/internal/engine/scene"
	"github.com/Faultbox/printsim/internal/simlog"
	"github.com/Faultbox/printsim/pkg/gradient"
	"github.com/Faultbox/printsim/pkg/math"
)

// MinPoints is the fewest points a printed polyline needs to be drawn.
const MinPoints = 2

// Build converts every frame's printed polylines into colored groups.
// Polylines with fewer than MinPoints points are dropped. A polyline's color
// comes from the height of its last point.
func Build(frames []simlog.Frame, cal gradient.Calibration) (*Set, error) {
	set := &Set{groups: make([]*Group, 0, len(frames)+1)}
	set.groups = append(set.groups, newGroup(nil))

	for fi, frame := range frames {
		var lines []scene.Polyline
		for pi, printed := range frame.Printeds {
			if len(printed) < MinPoints {
				continue
			}
			line, err := buildPolyline(printed, cal)
			if err != nil {
				return nil, fmt.Errorf("frame %d printed %d: %w", fi, pi, err)
			}
			lines = append(lines, line)
		}
		set.groups = append(set.groups, newGroup(lines))
	}

	return set, nil
}

func buildPolyline(printed [][]float64, cal gradient.Calibration) (scene.Polyline, error) {
	points := make([]math.Vec3, 0, len(printed))
	var height float64
	for vi, v := range printed {
		p, err := simlog.ToWorld(v)
		if err != nil {
			return scene.Polyline{}, fmt.Errorf("point %d: %w", vi, err)
		}
		height = p.Y
		points = append(points, math.V3(p.X, p.Y, p.Z))
	}
	return scene.Polyline{Points: points, Color: gradient.Color(height, cal)}, nil
}
