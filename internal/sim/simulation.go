// Package sim implements the replay state machine: it steps a frame index,
// poses the robot roster and reveals printed paths up to the current frame.
package sim

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/printsim/internal/engine/scene"
	"github.com/Faultbox/printsim/internal/ingest"
	"github.com/Faultbox/printsim/internal/logger"
	"github.com/Faultbox/printsim/internal/printpath"
	"github.com/Faultbox/printsim/internal/robot"
	"github.com/Faultbox/printsim/internal/simlog"
	"github.com/Faultbox/printsim/pkg/gradient"
)

// ErrNoResult reports a commit of a nil ingestion result.
var ErrNoResult = errors.New("no ingestion result")

// FrameCounter displays the "<current> | <count>" text.
type FrameCounter interface {
	SetFrameCounter(text string)
}

// Simulation is the replay aggregate root. Every group with index in
// [0, lastPrintedFrame] is attached to the graph and no other group is.
// Not safe for concurrent use.
type Simulation struct {
	graph   scene.Graph
	counter FrameCounter

	frameCount       int
	currentFrame     int
	lastPrintedFrame int

	roster      []*robot.Actor
	paths       *printpath.Set
	modelHeight float64
	calibration gradient.Calibration
	counterText string
}

// New creates an empty simulation that attaches nodes to graph and reports
// the frame counter to counter. counter may be nil.
func New(graph scene.Graph, counter FrameCounter) *Simulation {
	return &Simulation{graph: graph, counter: counter}
}

// SetBaseRobot replaces the roster with actor, detaching every previous actor first.
func (s *Simulation) SetBaseRobot(actor *robot.Actor) {
	for _, a := range s.roster {
		a.RemoveFrom(s.graph)
	}
	s.roster = []*robot.Actor{actor}
	actor.AddTo(s.graph)
}

// Load commits an ingestion result. On error nothing is changed.
func (s *Simulation) Load(res *ingest.Result) error {
	if res == nil {
		return ErrNoResult
	}
	if len(s.roster) == 0 {
		return fmt.Errorf("%w: no template actor for %d actors", ingest.ErrRosterSizeMismatch, res.Actors())
	}

	s.hideShown()

	template := s.roster[0]
	for _, a := range s.roster[1:] {
		a.RemoveFrom(s.graph)
	}
	s.roster = robot.Spawn(template, res.Actors())
	for i, a := range s.roster {
		if i < len(res.Tracks) {
			a.SetTrack(res.Tracks[i])
		}
		a.AddTo(s.graph)
	}

	s.paths = res.Paths
	s.frameCount = res.FrameCount
	s.modelHeight = res.ModelHeight
	s.calibration = res.Calibration
	s.currentFrame = 0
	s.lastPrintedFrame = 0
	s.show(0)

	logger.Info("simulation loaded",
		zap.Int("frames", s.frameCount),
		zap.Int("actors", len(s.roster)),
		zap.Int("polylines", s.paths.Polylines()))
	return nil
}

// LoadDocument ingests doc and commits the result.
func (s *Simulation) LoadDocument(doc *simlog.Document, opts ingest.Options) error {
	res, err := ingest.Ingest(doc, opts)
	if err != nil {
		return err
	}
	return s.Load(res)
}

// Next advances one frame, wrapping to 0 after the last frame.
func (s *Simulation) Next() {
	s.SetFrame(s.currentFrame + 1)
}

// Previous steps back one frame, wrapping to the last frame from 0.
func (s *Simulation) Previous() {
	s.SetFrame(s.currentFrame - 1)
}

// SetFrame jumps to frame k modulo the frame count.
func (s *Simulation) SetFrame(k int) {
	s.currentFrame = s.normalize(k)
	s.drawFrame()
}

// IsFinished reports whether the current frame is the last one.
func (s *Simulation) IsFinished() bool {
	return s.currentFrame+1 == s.frameCount
}

func (s *Simulation) normalize(k int) int {
	n := s.frameCount
	if n == 0 {
		return 0
	}
	return ((k % n) + n) % n
}

func (s *Simulation) drawFrame() {
	cur := s.currentFrame

	for i, a := range s.roster {
		if !a.SetFrame(cur) {
			logger.Debug("actor has no keyframe for frame",
				zap.Int("actor", i), zap.Int("frame", cur))
		}
	}

	switch {
	case cur > s.lastPrintedFrame:
		for i := s.lastPrintedFrame + 1; i <= cur; i++ {
			s.show(i)
		}
	case cur < s.lastPrintedFrame:
		for i := cur + 1; i <= s.lastPrintedFrame; i++ {
			s.hide(i)
		}
	}

	s.counterText = fmt.Sprintf("%d | %d", cur, s.frameCount)
	if s.counter != nil {
		s.counter.SetFrameCounter(s.counterText)
	}

	s.lastPrintedFrame = cur
}

func (s *Simulation) show(i int) {
	if g := s.paths.At(i); g != nil {
		s.graph.Add(g)
	}
}

func (s *Simulation) hide(i int) {
	if g := s.paths.At(i); g != nil {
		s.graph.Remove(g)
	}
}

func (s *Simulation) hideShown() {
	for i := 0; i <= s.lastPrintedFrame; i++ {
		s.hide(i)
	}
}

// FrameCount returns the number of playable frames.
func (s *Simulation) FrameCount() int { return s.frameCount }

// CurrentFrame returns the current frame index.
func (s *Simulation) CurrentFrame() int { return s.currentFrame }

// LastPrintedFrame returns the visibility watermark.
func (s *Simulation) LastPrintedFrame() int { return s.lastPrintedFrame }

// ModelHeight returns the tallest print head height seen in the log.
func (s *Simulation) ModelHeight() float64 { return s.modelHeight }

// Calibration returns the gradient used to color the loaded paths.
func (s *Simulation) Calibration() gradient.Calibration { return s.calibration }

// Paths returns the loaded path set, nil before the first load.
func (s *Simulation) Paths() *printpath.Set { return s.paths }

// FrameCounterText returns the last frame counter text drawn.
func (s *Simulation) FrameCounterText() string { return s.counterText }

// Roster returns the current actors. The slice is a copy.
func (s *Simulation) Roster() []*robot.Actor {
	return append([]*robot.Actor(nil), s.roster...)
}
