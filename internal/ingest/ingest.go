// Package ingest validates a decoded simulation log and turns it into the
// staging data a Simulation commits in one step.
package ingest

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/printsim/internal/config"
	"github.com/Faultbox/printsim/internal/logger"
	"github.com/Faultbox/printsim/internal/printpath"
	"github.com/Faultbox/printsim/internal/robot"
	"github.com/Faultbox/printsim/internal/simlog"
	"github.com/Faultbox/printsim/pkg/gradient"
)

// Options controls how printed paths are colored.
type Options struct {
	Start    gradient.RGB // Color at the build plate
	End      gradient.RGB // Color at Headroom * model height
	Headroom float64
	Clamp    bool
}

// DefaultOptions returns the standard blue-to-white gradient.
func DefaultOptions() Options {
	return Options{
		Start:    0x2d3dbf,
		End:      0xffffff,
		Headroom: 1.1,
		Clamp:    true,
	}
}

// OptionsFromConfig builds Options from the colors config section.
func OptionsFromConfig(c config.ColorsConfig) Options {
	return Options{
		Start:    gradient.RGB(c.Start),
		End:      gradient.RGB(c.End),
		Headroom: c.Headroom,
		Clamp:    c.Clamp,
	}
}

// Result is everything derived from one log. Nothing in it is shared with a
// live Simulation until the result is committed.
type Result struct {
	FrameCount  int
	Tracks      []robot.Track // One per actor, indexed by actor number
	Paths       *printpath.Set
	ModelHeight float64
	Calibration gradient.Calibration
}

// Actors returns the number of actors the log references.
func (r *Result) Actors() int {
	return len(r.Tracks)
}

// Ingest validates doc and builds a Result. It has no side effects and may run
// on any goroutine.
func Ingest(doc *simlog.Document, opts Options) (*Result, error) {
	if doc == nil {
		return nil, ErrMissingDocument
	}
	if doc.Init == nil || doc.Init.Machines == nil || doc.Frames == nil {
		return nil, ErrMissingInitOrFrames
	}

	count := distinctActors(doc.Init.Machines)
	tracks := make([]robot.Track, count)

	for i, m := range doc.Init.Machines {
		if err := appendKeyframe(tracks, m); err != nil {
			return nil, fmt.Errorf("init machine %d: %w", i, err)
		}
	}

	var height float64
	for fi, frame := range doc.Frames {
		for mi, m := range frame.Machines {
			if err := appendKeyframe(tracks, m); err != nil {
				return nil, fmt.Errorf("frame %d machine %d: %w", fi, mi, err)
			}
			height = max(height, m.V[2]/simlog.UnitsPerWorld)
		}
	}

	cal := gradient.Calibration{
		Min:   0,
		Max:   opts.Headroom * height,
		Start: opts.Start,
		End:   opts.End,
		Clamp: opts.Clamp,
	}

	paths, err := printpath.Build(doc.Frames, cal)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedVector, err)
	}

	want := len(doc.Frames) + 1
	for n, t := range tracks {
		if t.Len() != want {
			logger.Warn("actor track length differs from frame count",
				zap.Int("actor", n),
				zap.Int("keyframes", t.Len()),
				zap.Int("expected", want))
		}
	}

	logger.Debug("simulation ingested",
		zap.Int("frames", len(doc.Frames)),
		zap.Int("actors", count),
		zap.Int("polylines", paths.Polylines()),
		zap.Float64("modelHeight", height))

	return &Result{
		FrameCount:  len(doc.Frames),
		Tracks:      tracks,
		Paths:       paths,
		ModelHeight: height,
		Calibration: cal,
	}, nil
}

func distinctActors(machines []simlog.Machine) int {
	seen := make(map[int]struct{}, len(machines))
	for _, m := range machines {
		seen[m.N] = struct{}{}
	}
	return len(seen)
}

func appendKeyframe(tracks []robot.Track, m simlog.Machine) error {
	if m.N < 0 || m.N >= len(tracks) {
		return fmt.Errorf("%w: n=%d, roster size %d", ErrActorIndexOutOfRange, m.N, len(tracks))
	}
	k, err := robot.KeyframeFromMachine(m)
	if err != nil {
		return fmt.Errorf("%w: actor %d: %w", ErrMalformedVector, m.N, err)
	}
	tracks[m.N].Append(k)
	return nil
}
