package player

import (
	"go.uber.org/zap"

	"github.com/Faultbox/printsim/internal/logger"
)

// Status texts shown while loading.
const (
	StatusLoadingPrefix = "Loading simulation file: "
	StatusLoadFailed    = "Could not load simulation file."
	StatusLoaded        = "Finished loading. Press Play."
)

// Display shows status and frame counter text.
type Display interface {
	SetStatus(text string, isError bool)
	SetFrameCounter(text string)
}

// LogDisplay is a Display that writes to the structured log, for headless runs.
type LogDisplay struct {
	Status      string
	IsError     bool
	FrameCount  string
	LogCounters bool // Log every frame counter change at debug level
}

// SetStatus implements Display.
func (d *LogDisplay) SetStatus(text string, isError bool) {
	d.Status, d.IsError = text, isError
	if isError {
		logger.Error("status", zap.String("text", text))
		return
	}
	if text != "" {
		logger.Info("status", zap.String("text", text))
	}
}

// SetFrameCounter implements Display.
func (d *LogDisplay) SetFrameCounter(text string) {
	d.FrameCount = text
	if d.LogCounters {
		logger.Debug("frame", zap.String("counter", text))
	}
}
