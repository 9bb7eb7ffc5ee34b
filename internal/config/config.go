// Package config handles replay configuration loading and management.
package config

import "time"

// Config holds all replay settings.
type Config struct {
	Playback PlaybackConfig `yaml:"playback"`
	Colors   ColorsConfig   `yaml:"colors"`
	Model    ModelConfig    `yaml:"model"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PlaybackConfig holds the playback clock and log location.
type PlaybackConfig struct {
	FPS            int           `yaml:"fps"`
	SimulationFile string        `yaml:"simulation_file"`
	SimulationDir  string        `yaml:"simulation_dir"` // Prefix for relative SimulationFile
	FetchTimeout   time.Duration `yaml:"fetch_timeout"`
}

// ColorsConfig holds the height gradient used for printed paths.
type ColorsConfig struct {
	Start    uint32  `yaml:"start"`
	End      uint32  `yaml:"end"`
	Headroom float64 `yaml:"headroom"` // Gradient top = headroom * model height
	Clamp    bool    `yaml:"clamp"`
}

// ModelConfig describes the robot's visual representation.
type ModelConfig struct {
	Scale      float32    `yaml:"scale"`
	BodyBounds [6]float32 `yaml:"body_bounds"` // minX, minY, minZ, maxX, maxY, maxZ
	HeadBounds [6]float32 `yaml:"head_bounds"`
}

// GraphicsConfig holds viewer window settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// CameraConfig holds the initial orbit camera placement.
type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	FOV      float32    `yaml:"fov"` // Degrees
}

// SnapshotConfig holds headless PNG rendering settings.
type SnapshotConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	OutputDir string `yaml:"output_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// FrameInterval returns the playback tick period derived from FPS.
func (p PlaybackConfig) FrameInterval() time.Duration {
	if p.FPS <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(p.FPS)
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Playback: PlaybackConfig{
			FPS:            30,
			SimulationFile: "simulation.json",
			SimulationDir:  "./simulations",
			FetchTimeout:   30 * time.Second,
		},
		Colors: ColorsConfig{
			Start:    0x2d3dbf,
			End:      0xffffff,
			Headroom: 1.1,
			Clamp:    true,
		},
		Model: ModelConfig{
			Scale:      4,
			BodyBounds: [6]float32{-0.5, 0, -0.5, 0.5, 0.4, 0.5},
			HeadBounds: [6]float32{-0.15, -0.3, -0.15, 0.15, 0, 0.15},
		},
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			Position: [3]float32{0, 20, 50},
			FOV:      45,
		},
		Snapshot: SnapshotConfig{
			Width:     1024,
			Height:    768,
			OutputDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
