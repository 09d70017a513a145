package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "tabfocus"

// DefaultDataDir returns the OS-appropriate default data directory.
//
//   - macOS:   ~/Library/Application Support/tabfocus
//   - Linux:   $XDG_DATA_HOME/tabfocus (fallback ~/.local/share/tabfocus)
//   - Windows: %LOCALAPPDATA%\tabfocus (fallback %APPDATA%\tabfocus)
func DefaultDataDir() string {
	return defaultDataDirForOS(runtime.GOOS)
}

func defaultDataDirForOS(goos string) string {
	home, _ := os.UserHomeDir()

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, appName)
		}
		if dir := os.Getenv("APPDATA"); dir != "" {
			return filepath.Join(dir, appName)
		}
		return filepath.Join(home, appName)
	default: // linux, freebsd, etc.
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return filepath.Join(dir, appName)
		}
		return filepath.Join(home, ".local", "share", appName)
	}
}

// ResolveDataDir picks the data directory: an explicit flag value wins, then
// $TABFOCUS_DIR, then the OS default.
func ResolveDataDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if dir := os.Getenv("TABFOCUS_DIR"); dir != "" {
		return dir
	}
	return DefaultDataDir()
}
