package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	return cfg, nil
}

// SimulationURL resolves the configured simulation file against SimulationDir.
// URLs and absolute paths are returned unchanged.
func (c *Config) SimulationURL() string {
	file := c.Playback.SimulationFile
	if u, err := url.Parse(file); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return file
	}
	if c.Playback.SimulationDir == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(c.Playback.SimulationDir, file)
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./printsim.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "PrintSim")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "PrintSim")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "printsim")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "printsim")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
