package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ConfiguredAppName is set by the host before Discord auth; when non-empty
	// it controls the directory names used for config, cache and logs.
	ConfiguredAppName string

	// DiscordBotName is set at runtime from the Discord API username. It has
	// no hardcoded default; EffectiveBotName() provides the fallback.
	DiscordBotName string
)

// AppVersion is the version of the running application, set at build time or
// by the host via SetAppVersion.
var AppVersion string

// SetAppVersion sets the version of the running application.
func SetAppVersion(v string) {
	AppVersion = v
}

// SetAppName sets a configured application name. Host applications call this
// before Discord auth so on-disk paths are stable across restarts.
func SetAppName(name string) {
	if strings.TrimSpace(name) == "" {
		return
	}
	ConfiguredAppName = sanitizeAppNameForPath(name)
}

// SetBotName records the bot username reported by the Discord API. Used only
// as a path fallback when no app name was configured.
func SetBotName(name string) {
	if strings.TrimSpace(name) == "" {
		return
	}
	DiscordBotName = sanitizeAppNameForPath(name)
}

// EffectiveBotName returns the current application name, preferring an
// explicitly configured name, then the Discord username, then a default.
func EffectiveBotName() string {
	if n := strings.TrimSpace(ConfiguredAppName); n != "" {
		return n
	}
	if n := strings.TrimSpace(DiscordBotName); n != "" {
		return n
	}
	return "modcore"
}

// GetSettingsFilePath returns the path for the primary settings JSON.
// Layout: <ConfigBase>/preferences/settings.json
func GetSettingsFilePath() string {
	return filepath.Join(configBaseDir(), "preferences", "settings.json")
}

// GetStateDBPath returns the SQLite path for durable runtime state.
// Layout: <CacheBase>/state/state.db
func GetStateDBPath() string {
	return filepath.Join(cacheBaseDir(), "state", "state.db")
}

// GetLogFilePath returns the path to the main rotated log file.
func GetLogFilePath() string {
	app := EffectiveBotName()
	base := strings.TrimSpace(platformLogDir(app))
	if base == "" {
		base = filepath.Join(".", "logs", app)
	}
	return filepath.Join(base, "modcore.log")
}

// EnsureDataDirs creates the base directories for settings, state and logs.
// Safe to call multiple times.
func EnsureDataDirs() error {
	dirs := []string{
		filepath.Dir(GetSettingsFilePath()),
		filepath.Dir(GetStateDBPath()),
		filepath.Dir(GetLogFilePath()),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory %s: %w", d, err)
		}
	}
	return nil
}

func configBaseDir() string {
	app := EffectiveBotName()
	if dir := strings.TrimSpace(platformConfigDir(app)); dir != "" {
		return dir
	}
	return filepath.Join(".", "config", app)
}

func cacheBaseDir() string {
	app := EffectiveBotName()
	if dir := strings.TrimSpace(platformCacheDir(app)); dir != "" {
		return dir
	}
	return filepath.Join(".", "cache", app)
}
