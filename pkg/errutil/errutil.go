// Package errutil centralizes error handling and reporting for recurring
// operations against the Discord API and local configuration files.
package errutil

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/small-frappuccino/modcore/pkg/log"
)

// ErrorHandler reports operational errors through the shared loggers.
type ErrorHandler struct {
	mu      sync.Mutex
	errored int
}

var (
	globalHandler *ErrorHandler
	handlerOnce   sync.Once
)

// InitializeGlobalErrorHandler sets up the process-wide handler. Safe to call
// more than once.
func InitializeGlobalErrorHandler() *ErrorHandler {
	handlerOnce.Do(func() {
		globalHandler = &ErrorHandler{}
	})
	return globalHandler
}

// GlobalErrorHandler returns the process-wide handler, initializing it if
// needed.
func GlobalErrorHandler() *ErrorHandler {
	return InitializeGlobalErrorHandler()
}

// Count returns the number of errors reported so far.
func (h *ErrorHandler) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.errored
}

func (h *ErrorHandler) report(logger *slog.Logger, msg string, args ...any) {
	h.mu.Lock()
	h.errored++
	h.mu.Unlock()
	logger.Error(msg, args...)
}

// HandleDiscordError runs fn and reports any error against the Discord
// logger, annotated with the operation name. The returned error wraps the
// original so callers can still branch on it with errors.Is.
func HandleDiscordError(operation string, fn func() error) error {
	err := fn()
	if err == nil {
		return nil
	}
	GlobalErrorHandler().report(log.DiscordLogger(), "discord operation failed",
		"operation", operation,
		"error", err)
	return fmt.Errorf("%s: %w", operation, err)
}

// HandleConfigError runs fn and reports any error against the application
// logger, annotated with the operation and file path involved.
func HandleConfigError(operation, path string, fn func() error) error {
	err := fn()
	if err == nil {
		return nil
	}
	GlobalErrorHandler().report(log.ApplicationLogger(), "config operation failed",
		"operation", operation,
		"path", path,
		"error", err)
	return fmt.Errorf("%s (%s): %w", operation, path, err)
}
