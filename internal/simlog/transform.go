package simlog

import (
	"errors"
	"fmt"
)

// UnitsPerWorld is the number of simulator units in one world unit.
const UnitsPerWorld = 10

// ErrShortVector reports a position with fewer than three coordinates.
var ErrShortVector = errors.New("vector needs 3 coordinates")

// Point is a position in Y-up world space.
type Point struct {
	X, Y, Z float64
}

// ToWorld converts a simulator vector to world space:
// x = v[0] / -10, y = v[2] / 10, z = v[1] / 10.
func ToWorld(v []float64) (Point, error) {
	if len(v) < 3 {
		return Point{}, fmt.Errorf("%w: got %d", ErrShortVector, len(v))
	}
	return Point{
		X: v[0] / -UnitsPerWorld,
		Y: v[2] / UnitsPerWorld,
		Z: v[1] / UnitsPerWorld,
	}, nil
}
