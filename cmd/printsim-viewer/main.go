// printsim-viewer is the interactive SDL2/OpenGL replay viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/printsim/internal/config"
	"github.com/Faultbox/printsim/internal/engine/debug"
	"github.com/Faultbox/printsim/internal/engine/input"
	"github.com/Faultbox/printsim/internal/engine/renderer"
	"github.com/Faultbox/printsim/internal/engine/window"
	"github.com/Faultbox/printsim/internal/logger"
	"github.com/Faultbox/printsim/internal/player"
)

const windowTitle = "printsim"

func init() {
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if args := config.Args(); len(args) > 0 {
		cfg.Playback.SimulationFile = args[0]
		cfg.Playback.SimulationDir = ""
	}

	if err := run(cfg); err != nil {
		logger.Error("viewer failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}

type viewer struct {
	cfg      *config.Config
	win      *window.Window
	renderer *renderer.Renderer
	app      *player.App
	input    *input.Input
	shots    *debug.ScreenshotCapture
	opened   chan string
	display  *titleDisplay
}

func run(cfg *config.Config) error {
	win, err := window.New(window.ConfigFrom(windowTitle, cfg.Graphics))
	if err != nil {
		return err
	}
	defer win.Close()

	w, h := win.DrawableSize()
	r, err := renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		return err
	}
	defer r.Close()

	display := &titleDisplay{win: win}
	opts := player.OptionsFromConfig(cfg)
	opts.Renderer = r
	opts.Display = display

	v := &viewer{
		cfg:      cfg,
		win:      win,
		renderer: r,
		app:      player.New(opts),
		input:    input.New(),
		shots:    debug.NewScreenshotCapture(cfg.Snapshot.OutputDir, windowTitle),
		opened:   make(chan string, 1),
		display:  display,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if url := cfg.SimulationURL(); url != "" {
		v.load(ctx, url)
	}

	for {
		if v.input.Update() {
			return nil
		}
		v.handleInput(ctx)

		select {
		case path := <-v.opened:
			v.load(ctx, path)
		default:
		}

		v.app.Tick(time.Now())
		win.SwapBuffers()
	}
}

func (v *viewer) load(ctx context.Context, url string) {
	v.app.Load(ctx, url, func(ok bool) {
		if ok {
			v.renderer.ForgetUnused(v.app.Scene())
		}
	})
}

func (v *viewer) handleInput(ctx context.Context) {
	for _, cmd := range v.input.Commands() {
		switch cmd {
		case input.CommandTogglePlay:
			v.app.Toggle()
		case input.CommandNext:
			v.app.Next()
		case input.CommandPrevious:
			v.app.Previous()
		case input.CommandFirst:
			v.app.SetFrame(0)
		case input.CommandLast:
			v.app.SetFrame(-1)
		case input.CommandOpen:
			v.openFileDialog()
		case input.CommandScreenshot:
			v.screenshot()
		case input.CommandResetCamera:
			cam := player.CameraFromConfig(v.cfg.Camera)
			*v.app.Camera() = *cam
		}
	}

	cam := v.app.Camera()
	if v.input.DragX != 0 || v.input.DragY != 0 {
		cam.HandleDrag(v.input.DragX, v.input.DragY)
	}
	if v.input.Wheel != 0 {
		cam.HandleZoom(v.input.Wheel)
	}
	if v.input.Resized {
		w, h := v.win.DrawableSize()
		v.renderer.Resize(w, h)
	}
}

// openFileDialog shows a native picker. SDL window calls must stay on the
// main thread, so the chosen path is handed back through v.opened.
func (v *viewer) openFileDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Simulation logs", "json", "gz").
			Filter("All Files", "*").
			Title("Open simulation log").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case v.opened <- filename:
		default:
		}
	}()
}

func (v *viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// titleDisplay shows status and frame counter in the window title.
type titleDisplay struct {
	win     *window.Window
	status  string
	isError bool
	counter string
}

func (d *titleDisplay) SetStatus(text string, isError bool) {
	d.status, d.isError = text, isError
	if isError {
		logger.Warn("status", zap.String("text", text))
	}
	d.update()
}

func (d *titleDisplay) SetFrameCounter(text string) {
	d.counter = text
	d.update()
}

func (d *titleDisplay) update() {
	title := windowTitle
	if d.status != "" {
		prefix := ""
		if d.isError {
			prefix = "[!] "
		}
		title += " - " + prefix + d.status
	}
	if d.counter != "" {
		title += " - " + d.counter
	}
	d.win.SetTitle(title)
}
