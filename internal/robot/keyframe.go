// Package robot models the replayed print robots and their per-frame poses.
package robot

import (
	"github.com/Faultbox/printsim/internal/simlog"
	"github.com/Faultbox/printsim/pkg/math"
)

// Keyframe is one actor's pose at one simulated frame.
type Keyframe struct {
	X, Y, Z  float64
	Rotation float64 // Yaw, radians
}

// KeyframeFromMachine converts a log record to a world-space keyframe.
func KeyframeFromMachine(m simlog.Machine) (Keyframe, error) {
	p, err := simlog.ToWorld(m.V)
	if err != nil {
		return Keyframe{}, err
	}
	return Keyframe{X: p.X, Y: p.Y, Z: p.Z, Rotation: m.R}, nil
}

// Position returns the keyframe position as a render vector.
func (k Keyframe) Position() math.Vec3 {
	return math.V3(k.X, k.Y, k.Z)
}

// Track is an actor's keyframes indexed by frame number.
// Index 0 is the initial pose; index k is the pose after k simulated frames.
type Track struct {
	keys []Keyframe
}

// NewTrack returns a track holding a copy of keys.
func NewTrack(keys ...Keyframe) Track {
	return Track{keys: append([]Keyframe(nil), keys...)}
}

// Append adds the next frame's keyframe.
func (t *Track) Append(k Keyframe) {
	t.keys = append(t.keys, k)
}

// At returns the keyframe for frame i. ok is false when i is out of range.
func (t Track) At(i int) (k Keyframe, ok bool) {
	if i < 0 || i >= len(t.keys) {
		return Keyframe{}, false
	}
	return t.keys[i], true
}

// Len returns the number of keyframes.
func (t Track) Len() int {
	return len(t.keys)
}

// Keyframes returns a copy of the keyframes.
func (t Track) Keyframes() []Keyframe {
	return append([]Keyframe(nil), t.keys...)
}
