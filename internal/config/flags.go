package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagFile       = flag.String("file", "", "Simulation log file or URL")
	flagFPS        = flag.Int("fps", 0, "Playback frames per second")
	flagNoClamp    = flag.Bool("no-clamp", false, "Extrapolate path colors outside the height range")
	flagWindowed   = flag.Bool("windowed", false, "Run the viewer in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run the viewer in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Viewer/snapshot width")
	flagHeight     = flag.Int("height", 0, "Viewer/snapshot height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagFile != "" {
		cfg.Playback.SimulationFile = *flagFile
		cfg.Playback.SimulationDir = ""
	}
	if *flagFPS > 0 {
		cfg.Playback.FPS = *flagFPS
	}
	if *flagNoClamp {
		cfg.Colors.Clamp = false
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
		cfg.Snapshot.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
		cfg.Snapshot.Height = *flagHeight
	}
}
