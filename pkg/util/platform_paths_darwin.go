//go:build darwin

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// macOS filesystem layout:
//   - Config: ~/Library/Preferences/<AppName>
//   - Cache:  ~/Library/Caches/<AppName>
//   - Logs:   ~/Library/Logs/<AppName>

func platformConfigDir(appName string) string {
	return filepath.Join(platformHomeDir(), "Library", "Preferences", sanitizeAppNameForPath(appName))
}

func platformCacheDir(appName string) string {
	return filepath.Join(platformHomeDir(), "Library", "Caches", sanitizeAppNameForPath(appName))
}

func platformLogDir(appName string) string {
	return filepath.Join(platformHomeDir(), "Library", "Logs", sanitizeAppNameForPath(appName))
}

func platformHomeDir() string {
	if h := strings.TrimSpace(os.Getenv("HOME")); h != "" {
		return h
	}
	if h, err := os.UserHomeDir(); err == nil && strings.TrimSpace(h) != "" {
		return h
	}
	return "."
}

func sanitizeAppNameForPath(name string) string {
	n := strings.TrimSpace(name)
	n = strings.ReplaceAll(n, "/", "-")
	n = strings.ReplaceAll(n, "\\", "-")
	n = strings.ReplaceAll(n, "\x00", "")
	n = strings.TrimSpace(n)
	if n == "" {
		return "modcore"
	}
	return n
}
