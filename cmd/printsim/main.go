// printsim is a headless CLI for print-simulation replay logs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/printsim/internal/config"
	"github.com/Faultbox/printsim/internal/logger"
)

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

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command, rest := args[0], args[1:]
	switch command {
	case "info":
		err = cmdInfo(ctx, cfg, rest)
	case "play":
		err = cmdPlay(ctx, cfg, rest)
	case "frame":
		err = cmdFrame(ctx, cfg, rest)
	case "snapshot", "snap":
		err = cmdSnapshot(ctx, cfg, rest)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`printsim - print simulation log replay

Usage:
  printsim [flags] <command> [options]

Commands:
  info [-html out.html] [log]         Summarize a log (YAML on stdout)
  play [log]                          Replay a log in real time until the last frame
  frame [log] <k>                     Print the frame counter and robot poses at frame k
  snapshot [-o out.png] [log] [k]     Render frame k (default: last) to a PNG

The log is a file path, file:// or http(s):// URL, optionally gzip-compressed.
When omitted, playback.simulation_file from the config is used.

Flags:
  -config <path>   Config file (default ./printsim.yaml or the user config dir)
  -debug           Debug logging
  -file <log>      Override the configured simulation log
  -fps <n>         Playback rate
  -width, -height  Snapshot size
  -no-clamp        Extrapolate path colors outside the height range

Examples:
  printsim info simulations/benchy.json
  printsim -fps 60 play https://example.com/benchy.json.gz
  printsim snapshot -o benchy.png simulations/benchy.json 120`)
}
