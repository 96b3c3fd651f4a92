//go:build windows

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// Windows filesystem layout:
//   - Config base: %APPDATA%/<AppName>
//   - Cache base:  %APPDATA%/<AppName>/Cache
//   - Logs base:   %APPDATA%/<AppName>/Logs

func platformConfigDir(appName string) string {
	return filepath.Join(windowsAppDataBase(), sanitizeAppNameForPath(appName))
}

func platformCacheDir(appName string) string {
	return filepath.Join(platformConfigDir(appName), "Cache")
}

func platformLogDir(appName string) string {
	return filepath.Join(platformConfigDir(appName), "Logs")
}

func windowsAppDataBase() string {
	if v := strings.TrimSpace(os.Getenv("APPDATA")); v != "" {
		return v
	}
	// Typical location: C:\Users\<User>\AppData\Roaming
	if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
		return filepath.Join(home, "AppData", "Roaming")
	}
	return "."
}

// sanitizeAppNameForPath normalizes an application name so it is safe as a
// single directory segment on Windows. Windows disallows <>:"/\|?* and
// trailing dots or spaces in directory names.
func sanitizeAppNameForPath(name string) string {
	n := strings.TrimSpace(name)
	n = strings.ReplaceAll(n, "/", "-")
	n = strings.ReplaceAll(n, "\\", "-")
	n = strings.NewReplacer(
		"<", "-",
		">", "-",
		":", "-",
		"\"", "-",
		"|", "-",
		"?", "-",
		"*", "-",
	).Replace(n)
	n = strings.TrimRight(n, " .")
	if strings.TrimSpace(n) == "" {
		return "modcore"
	}
	return n
}
