package log

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/small-frappuccino/modcore/pkg/util"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Manager holds the named loggers used across the bot. Application covers
// bootstrap and service lifecycle, Discord covers gateway/REST activity, and
// Error is reserved for failures that should reach stderr.
type Manager struct {
	application *slog.Logger
	discord     *slog.Logger
	errlog      *slog.Logger

	rotator *lumberjack.Logger
}

var (
	// GlobalLogger is initialized by SetupLogger and used by the accessor
	// functions below. Accessors stay nil-safe and fall back to slog.Default.
	GlobalLogger *Manager

	setupOnce sync.Once
)

// SetupLogger initializes the global logger manager. Output is teed to the
// process streams and to a rotated log file under the application log
// directory. Idempotent and safe to call from multiple goroutines.
func SetupLogger() error {
	setupOnce.Do(func() {
		rotator := &lumberjack.Logger{
			Filename:   util.GetLogFilePath(),
			MaxSize:    20, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}

		level := slog.LevelInfo
		if util.EnvBool("MODCORE_DEBUG") {
			level = slog.LevelDebug
		}

		outHandler := slog.NewTextHandler(io.MultiWriter(os.Stdout, rotator), &slog.HandlerOptions{Level: level})
		errHandler := slog.NewTextHandler(io.MultiWriter(os.Stderr, rotator), &slog.HandlerOptions{Level: level})

		GlobalLogger = &Manager{
			application: slog.New(outHandler).With("logger", "application"),
			discord:     slog.New(outHandler).With("logger", "discord"),
			errlog:      slog.New(errHandler).With("logger", "error"),
			rotator:     rotator,
		}
	})
	return nil
}

// Sync flushes and closes the underlying rotated file. Called on shutdown.
func (m *Manager) Sync() {
	if m == nil || m.rotator == nil {
		return
	}
	_ = m.rotator.Close()
}

// ApplicationLogger returns the logger for bootstrap and service lifecycle.
func ApplicationLogger() *slog.Logger {
	if GlobalLogger == nil {
		return slog.Default()
	}
	return GlobalLogger.application
}

// DiscordLogger returns the logger for gateway and REST activity.
func DiscordLogger() *slog.Logger {
	if GlobalLogger == nil {
		return slog.Default()
	}
	return GlobalLogger.discord
}

// ErrorLoggerRaw returns the stderr-backed error logger.
func ErrorLoggerRaw() *slog.Logger {
	if GlobalLogger == nil {
		return slog.Default()
	}
	return GlobalLogger.errlog
}
