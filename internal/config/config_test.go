package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Playback.FPS != 30 {
		t.Errorf("expected fps 30, got %d", cfg.Playback.FPS)
	}
	if cfg.Playback.SimulationFile != "simulation.json" {
		t.Errorf("expected simulation.json, got %s", cfg.Playback.SimulationFile)
	}
	if cfg.Colors.Start != 0x2d3dbf || cfg.Colors.End != 0xffffff {
		t.Errorf("expected gradient 0x2d3dbf..0xffffff, got %#06x..%#06x", cfg.Colors.Start, cfg.Colors.End)
	}
	if cfg.Colors.Headroom != 1.1 {
		t.Errorf("expected headroom 1.1, got %f", cfg.Colors.Headroom)
	}
	if !cfg.Colors.Clamp {
		t.Error("expected clamping on by default")
	}
	if cfg.Model.Scale != 4 {
		t.Errorf("expected model scale 4, got %f", cfg.Model.Scale)
	}
	if cfg.Camera.Position != [3]float32{0, 20, 50} {
		t.Errorf("expected camera at (0,20,50), got %v", cfg.Camera.Position)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		fps  int
		want time.Duration
	}{
		{30, 33333333 * time.Nanosecond},
		{60, 16666666 * time.Nanosecond},
		{0, 33333333 * time.Nanosecond},
	}
	for _, tt := range tests {
		got := PlaybackConfig{FPS: tt.fps}.FrameInterval()
		if got != tt.want {
			t.Errorf("FrameInterval(fps=%d) = %v, want %v", tt.fps, got, tt.want)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "printsim.yaml")

	yamlContent := `
playback:
  fps: 60
  simulation_file: "bridge.json.gz"
  fetch_timeout: 5s

colors:
  start: 0x000000
  end: 0xff8800
  headroom: 1.25
  clamp: false

model:
  scale: 2

logging:
  level: "debug"
  log_file: "printsim.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Playback.FPS != 60 {
		t.Errorf("expected fps 60, got %d", cfg.Playback.FPS)
	}
	if cfg.Playback.SimulationFile != "bridge.json.gz" {
		t.Errorf("expected bridge.json.gz, got %s", cfg.Playback.SimulationFile)
	}
	if cfg.Playback.FetchTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.Playback.FetchTimeout)
	}
	if cfg.Colors.End != 0xff8800 {
		t.Errorf("expected end color 0xff8800, got %#06x", cfg.Colors.End)
	}
	if cfg.Colors.Clamp {
		t.Error("expected clamp to be false")
	}
	if cfg.Model.Scale != 2 {
		t.Errorf("expected scale 2, got %f", cfg.Model.Scale)
	}
	// Untouched sections keep defaults.
	if cfg.Playback.SimulationDir != "./simulations" {
		t.Errorf("expected default simulation dir, got %s", cfg.Playback.SimulationDir)
	}
	if cfg.Logging.LogFile != "printsim.log" {
		t.Errorf("expected log file 'printsim.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
playback:
  fps: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/printsim.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestSimulationURL(t *testing.T) {
	tests := []struct {
		name string
		file string
		dir  string
		want string
	}{
		{"relative joined", "simulation.json", "./simulations", "simulations/simulation.json"},
		{"no dir", "simulation.json", "", "simulation.json"},
		{"absolute kept", "/data/run.json", "./simulations", "/data/run.json"},
		{"url kept", "https://example.com/run.json", "./simulations", "https://example.com/run.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Playback.SimulationFile = tt.file
			cfg.Playback.SimulationDir = tt.dir
			if got := cfg.SimulationURL(); got != tt.want {
				t.Errorf("SimulationURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "file flag bypasses simulation dir",
			setup: func() { *flagFile = "/tmp/run.json" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.SimulationURL() != "/tmp/run.json" {
					t.Errorf("expected /tmp/run.json, got %s", cfg.SimulationURL())
				}
			},
			teardown: func() { *flagFile = "" },
		},
		{
			name:  "fps flag",
			setup: func() { *flagFPS = 120 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Playback.FPS != 120 {
					t.Errorf("expected fps 120, got %d", cfg.Playback.FPS)
				}
			},
			teardown: func() { *flagFPS = 0 },
		},
		{
			name:  "no-clamp flag",
			setup: func() { *flagNoClamp = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Colors.Clamp {
					t.Error("expected clamp disabled")
				}
			},
			teardown: func() { *flagNoClamp = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Snapshot.Width != 2560 {
					t.Errorf("expected width 2560, got %d/%d", cfg.Graphics.Width, cfg.Snapshot.Width)
				}
				if cfg.Graphics.Height != 1440 || cfg.Snapshot.Height != 1440 {
					t.Errorf("expected height 1440, got %d/%d", cfg.Graphics.Height, cfg.Snapshot.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "printsim.yaml")

	yamlContent := `
playback:
  fps: 24
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.Playback.FPS != 24 {
		t.Errorf("expected fps 24 from file, got %d", cfg.Playback.FPS)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "printsim.yaml")

	cfg := Default()
	cfg.Playback.FPS = 48
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Playback.FPS != 48 {
		t.Errorf("expected fps 48 after reload, got %d", loaded.Playback.FPS)
	}
}
