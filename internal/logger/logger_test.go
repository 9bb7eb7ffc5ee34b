package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNopBeforeInit(t *testing.T) {
	// Library packages log before any Init in tests; this must not panic.
	Log = zap.NewNop()
	Sugar = Log.Sugar()
	Info("discarded", zap.Int("frame", 1))
	Named("sim").Debug("discarded")
}

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{level: "error", expected: []string{"ERROR"}, excluded: []string{"WARN", "INFO", "DEBUG"}},
		{level: "warn", expected: []string{"ERROR", "WARN"}, excluded: []string{"INFO", "DEBUG"}},
		{level: "info", expected: []string{"ERROR", "WARN", "INFO"}, excluded: []string{"DEBUG"}},
		{level: "debug", expected: []string{"ERROR", "WARN", "INFO", "DEBUG"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")
			cfg := FileConfig{Path: logFile, MaxSizeMB: 10, MaxBackups: 1, MaxAgeDays: 1}

			if err := InitWithFileConfig(tt.level, cfg, false); err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			logContent := string(content)

			for _, exp := range tt.expected {
				if !strings.Contains(logContent, exp) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(logContent, exc) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestNamedComponent(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "named.log")
	if err := InitWithFileConfig("info", FileConfig{Path: logFile, MaxSizeMB: 1}, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}

	Named("player").Info("tick", zap.Int("frame", 7))
	Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "player") || !strings.Contains(string(content), "frame") {
		t.Errorf("expected component name and field in output, got %q", content)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/printsim.log")

	if cfg.Path != "/tmp/printsim.log" {
		t.Errorf("expected path /tmp/printsim.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 20 {
		t.Errorf("expected MaxSizeMB 20, got %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups != 5 {
		t.Errorf("expected MaxBackups 5, got %d", cfg.MaxBackups)
	}
	if cfg.MaxAgeDays != 14 {
		t.Errorf("expected MaxAgeDays 14, got %d", cfg.MaxAgeDays)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}
