// Package player drives a Simulation from a periodic clock: it owns the scene,
// the playing flag and the asynchronous log load.
package player

import (
	"context"
	"path"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/printsim/internal/engine/camera"
	"github.com/Faultbox/printsim/internal/engine/debug"
	"github.com/Faultbox/printsim/internal/engine/scene"
	"github.com/Faultbox/printsim/internal/ingest"
	"github.com/Faultbox/printsim/internal/loader"
	"github.com/Faultbox/printsim/internal/logger"
	"github.com/Faultbox/printsim/internal/robot"
	"github.com/Faultbox/printsim/internal/sim"
)

// Renderer draws the scene once per tick.
type Renderer interface {
	Render(sc *scene.Scene, cam *camera.OrbitCamera) error
}

// Options configures an App.
type Options struct {
	Interval time.Duration  // Minimum time between frame steps
	Ingest   ingest.Options // Path coloring
	Template *robot.Actor   // Actor cloned for every robot in a log
	Renderer Renderer       // May be nil for logic-only runs
	Display  Display        // May be nil
	Fetcher  loader.Fetcher
	Camera   *camera.OrbitCamera
	Grid     bool // Show the build plate grid
}

type loadResult struct {
	res *ingest.Result
	err error
}

type pendingLoad struct {
	url    string
	done   func(ok bool)
	result chan loadResult
}

// App is the replay application context. Every method except Load's
// background work runs on the tick goroutine.
type App struct {
	scene    *scene.Scene
	sim      *sim.Simulation
	camera   *camera.OrbitCamera
	renderer Renderer
	display  Display
	fetcher  loader.Fetcher
	opts     ingest.Options
	interval time.Duration

	playing  bool
	lastStep time.Time
	pending  *pendingLoad

	// OnFinished is called when playback stops on the last frame.
	OnFinished func()
}

// New creates an App with the template actor already in the scene.
func New(opts Options) *App {
	sc := scene.New()
	display := opts.Display
	if display == nil {
		display = &LogDisplay{}
	}

	a := &App{
		scene:    sc,
		sim:      sim.New(sc, display),
		camera:   opts.Camera,
		renderer: opts.Renderer,
		display:  display,
		fetcher:  opts.Fetcher,
		opts:     opts.Ingest,
		interval: opts.Interval,
	}
	if a.camera == nil {
		a.camera = camera.NewOrbitCamera(defaultCameraPosition, defaultCameraTarget, 45)
	}
	template := opts.Template
	if template == nil {
		template = robot.New(scene.DefaultModel(), robot.DefaultScale)
	}
	a.sim.SetBaseRobot(template)
	if opts.Grid {
		sc.Add(debug.DefaultGrid())
	}
	return a
}

// Load fetches and ingests url in the background. done is called once on the
// tick goroutine with the outcome. A newer Load supersedes an outstanding one,
// whose done receives false and whose result is dropped.
func (a *App) Load(ctx context.Context, url string, done func(ok bool)) {
	if p := a.pending; p != nil {
		logger.Warn("simulation load superseded", zap.String("url", p.url))
		a.pending = nil
		if p.done != nil {
			p.done(false)
		}
	}

	a.Stop()
	a.display.SetStatus(StatusLoadingPrefix+path.Base(url), false)

	p := &pendingLoad{url: url, done: done, result: make(chan loadResult, 1)}
	a.pending = p

	fetcher, opts := a.fetcher, a.opts
	go func() {
		doc, err := fetcher.Fetch(ctx, url)
		if err != nil {
			p.result <- loadResult{err: err}
			return
		}
		res, err := ingest.Ingest(doc, opts)
		p.result <- loadResult{res: res, err: err}
	}()
}

// Loading reports whether a load is outstanding.
func (a *App) Loading() bool {
	return a.pending != nil
}

// Tick advances the app to now: it finishes a completed load, steps one frame
// when playing and the interval has elapsed, and renders once.
func (a *App) Tick(now time.Time) {
	if p := a.pending; p != nil {
		select {
		case r := <-p.result:
			a.pending = nil
			a.finishLoad(p, r)
		default:
		}
		a.render()
		return
	}

	if a.playing && now.Sub(a.lastStep) > a.interval {
		a.lastStep = now
		a.sim.Next()
		if a.sim.IsFinished() {
			a.playing = false
			logger.Info("playback finished", zap.Int("frame", a.sim.CurrentFrame()))
			if a.OnFinished != nil {
				a.OnFinished()
			}
		}
	}

	a.render()
}

func (a *App) finishLoad(p *pendingLoad, r loadResult) {
	err := r.err
	if err == nil {
		err = a.sim.Load(r.res)
	}
	if err != nil {
		logger.Error("failed to load simulation", zap.String("url", p.url), zap.Error(err))
		a.display.SetStatus(StatusLoadFailed, true)
		if p.done != nil {
			p.done(false)
		}
		return
	}

	a.sim.SetFrame(0)
	a.display.SetStatus(StatusLoaded, false)
	if p.done != nil {
		p.done(true)
	}
}

func (a *App) render() {
	if a.renderer == nil {
		return
	}
	if err := a.renderer.Render(a.scene, a.camera); err != nil {
		logger.Warn("render failed", zap.Error(err))
	}
}

// Run calls Tick on every interval until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.tickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			a.Tick(now)
		}
	}
}

func (a *App) tickInterval() time.Duration {
	if a.interval <= 0 {
		return time.Second / 30
	}
	return a.interval
}

// Toggle switches between playing and stopped.
func (a *App) Toggle() {
	if a.playing {
		a.Stop()
		return
	}
	a.Play()
}

// Play starts stepping frames on subsequent ticks. It does nothing while a
// load is outstanding or when no frames are loaded.
func (a *App) Play() {
	if a.pending != nil || a.sim.FrameCount() == 0 {
		return
	}
	a.playing = true
	a.display.SetStatus("", false)
}

// Stop halts playback at the next tick boundary.
func (a *App) Stop() {
	a.playing = false
}

// Playing reports whether playback is running.
func (a *App) Playing() bool {
	return a.playing
}

// Next steps one frame forward. No-op while playing or loading.
func (a *App) Next() {
	if a.playing || a.pending != nil {
		return
	}
	a.sim.Next()
}

// Previous steps one frame back. No-op while playing or loading.
func (a *App) Previous() {
	if a.playing || a.pending != nil {
		return
	}
	a.sim.Previous()
}

// SetFrame jumps to frame k. Ignored while loading.
func (a *App) SetFrame(k int) {
	if a.pending != nil {
		return
	}
	a.sim.SetFrame(k)
}

// IsFinished reports whether the current frame is the last one.
func (a *App) IsFinished() bool {
	return a.sim.IsFinished()
}

// Simulation returns the underlying simulation.
func (a *App) Simulation() *sim.Simulation {
	return a.sim
}

// Scene returns the scene the app renders.
func (a *App) Scene() *scene.Scene {
	return a.scene
}

// Camera returns the view camera.
func (a *App) Camera() *camera.OrbitCamera {
	return a.camera
}

// Render draws the scene without advancing playback.
func (a *App) Render() {
	a.render()
}
