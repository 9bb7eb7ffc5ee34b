package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/printsim/internal/config"
	"github.com/Faultbox/printsim/internal/engine/debug"
	"github.com/Faultbox/printsim/internal/ingest"
	"github.com/Faultbox/printsim/internal/loader"
	"github.com/Faultbox/printsim/internal/logger"
	"github.com/Faultbox/printsim/internal/player"
	"github.com/Faultbox/printsim/internal/report"
	"github.com/Faultbox/printsim/internal/snapshot"
)

var errLoadFailed = errors.New("could not load simulation file")

// logURL picks the log argument or falls back to the configured file.
func logURL(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.SimulationURL()
}

// loadApp loads url into app and ticks until the load settles.
func loadApp(ctx context.Context, app *player.App, url string) error {
	ok := false
	app.Load(ctx, url, func(success bool) { ok = success })

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for app.Loading() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			app.Tick(now)
		}
	}
	if !ok {
		return fmt.Errorf("%w: %s", errLoadFailed, url)
	}
	return nil
}

func cmdInfo(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	htmlOut := fs.String("html", "", "Also write an HTML chart page to this file")
	fs.Parse(args)

	url := logURL(cfg, fs.Args())
	doc, err := loader.New(cfg.Playback.FetchTimeout).Fetch(ctx, url)
	if err != nil {
		return err
	}
	res, err := ingest.Ingest(doc, ingest.OptionsFromConfig(cfg.Colors))
	if err != nil {
		return err
	}

	rep := report.Summarize(url, res)
	if err := rep.WriteYAML(os.Stdout); err != nil {
		return err
	}

	if *htmlOut != "" {
		f, err := os.Create(*htmlOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := rep.WriteHTML(f); err != nil {
			return fmt.Errorf("writing %s: %w", *htmlOut, err)
		}
		logger.Info("chart written", zap.String("path", *htmlOut))
	}
	return nil
}

func cmdPlay(ctx context.Context, cfg *config.Config, args []string) error {
	display := &player.LogDisplay{LogCounters: true}
	opts := player.OptionsFromConfig(cfg)
	opts.Display = display
	app := player.New(opts)

	if err := loadApp(ctx, app, logURL(cfg, args)); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	app.OnFinished = cancel

	start := time.Now()
	app.Play()
	if !app.Playing() {
		fmt.Println(display.FrameCount)
		return nil
	}
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Printf("%s (%s)\n", display.FrameCount, time.Since(start).Round(time.Millisecond))
	return nil
}

func cmdFrame(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: printsim frame [log] <k>")
	}
	k, err := strconv.Atoi(args[len(args)-1])
	if err != nil {
		return fmt.Errorf("frame index: %w", err)
	}

	app := player.New(player.OptionsFromConfig(cfg))
	if err := loadApp(ctx, app, logURL(cfg, args[:len(args)-1])); err != nil {
		return err
	}

	app.SetFrame(k)
	s := app.Simulation()
	fmt.Println(s.FrameCounterText())
	for i, a := range s.Roster() {
		m := a.Model()
		fmt.Printf("robot %d: head (%.2f, %.2f, %.2f) yaw %.3f\n",
			i, m.Head.Position.X, m.Head.Position.Y, m.Head.Position.Z, m.Head.Yaw)
	}
	return nil
}

func cmdSnapshot(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	out := fs.String("o", "", "Output PNG (default: timestamped file in snapshot.output_dir)")
	fs.Parse(args)

	rest := fs.Args()
	frame := -1
	if len(rest) > 1 {
		k, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("frame index: %w", err)
		}
		frame = k
	}

	r := snapshot.New(cfg.Snapshot.Width, cfg.Snapshot.Height)
	opts := player.OptionsFromConfig(cfg)
	opts.Renderer = r
	app := player.New(opts)

	if err := loadApp(ctx, app, logURL(cfg, rest)); err != nil {
		return err
	}

	// -1 wraps to the last frame
	app.SetFrame(frame)
	app.Render()

	capture := debug.NewScreenshotCapture(cfg.Snapshot.OutputDir, "printsim")
	var path string
	var err error
	if *out != "" {
		path, err = capture.SaveAs(*out, r.Image())
	} else {
		path, err = capture.CaptureFromImage(r.Image())
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s -> %s\n", app.Simulation().FrameCounterText(), path)
	return nil
}
