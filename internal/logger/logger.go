// Package logger provides structured logging for the replay tools using zap.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the process-wide logger. It discards everything until Init is called.
var Log = zap.NewNop()

// Sugar is the sugared form of Log.
var Sugar = Log.Sugar()

// FileConfig holds rotated file output settings.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileConfig returns rotation defaults for a log file at path.
func DefaultFileConfig(path string) FileConfig {
	return FileConfig{
		Path:       path,
		MaxSizeMB:  20,
		MaxBackups: 5,
		MaxAgeDays: 14,
		Compress:   true,
	}
}

// Init sets up console logging at level, plus a rotated file when logFile is set.
func Init(level string, logFile string) error {
	fileCfg := FileConfig{}
	if logFile != "" {
		fileCfg = DefaultFileConfig(logFile)
	}
	return InitWithFileConfig(level, fileCfg, true)
}

// InitWithFileConfig sets up logging with explicit file rotation settings.
// consoleOutput=false keeps stdout quiet, which tests rely on.
func InitWithFileConfig(level string, fileCfg FileConfig, consoleOutput bool) error {
	lvl := ParseLevel(level)

	var cores []zapcore.Core
	if consoleOutput {
		enc := zapcore.NewConsoleEncoder(encoderConfig(
			zapcore.TimeEncoderOfLayout("15:04:05.000"),
			zapcore.CapitalColorLevelEncoder,
		))
		cores = append(cores, zapcore.NewCore(enc, zapcore.Lock(os.Stdout), lvl))
	}

	if fileCfg.Path != "" {
		w := &lumberjack.Logger{
			Filename:   fileCfg.Path,
			MaxSize:    fileCfg.MaxSizeMB,
			MaxBackups: fileCfg.MaxBackups,
			MaxAge:     fileCfg.MaxAgeDays,
			Compress:   fileCfg.Compress,
			LocalTime:  true,
		}
		enc := zapcore.NewConsoleEncoder(encoderConfig(
			zapcore.ISO8601TimeEncoder,
			zapcore.CapitalLevelEncoder,
		))
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(w), lvl))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	Sugar = Log.Sugar()
	return nil
}

func encoderConfig(timeEnc zapcore.TimeEncoder, levelEnc zapcore.LevelEncoder) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		CallerKey:        "caller",
		EncodeTime:       timeEnc,
		EncodeLevel:      levelEnc,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

// ParseLevel converts a level name to a zap level. Unknown names mean info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Named returns a child logger tagged with a component name.
func Named(component string) *zap.Logger {
	return Log.Named(component)
}

// Sync flushes buffered entries.
func Sync() {
	_ = Log.Sync()
}

// Debug logs a debug message.
func Debug(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

// Info logs an info message.
func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

// Error logs an error message.
func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}

// Fatal logs a fatal message and exits.
func Fatal(msg string, fields ...zap.Field) {
	Log.Fatal(msg, fields...)
}
