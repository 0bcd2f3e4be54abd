package util

import (
	"os"
	"path/filepath"
	"strings"
)

// HomeDir returns the user's home directory
func HomeDir() string {
	home, _ := os.UserHomeDir()
	return home
}

// ExpandPath expands a leading ~ to the user's home directory and
// resolves relative paths against baseDir (or the working directory
// when baseDir is empty).
func ExpandPath(path, baseDir string) string {
	if path == "" {
		return path
	}
	if path == "~" {
		return HomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(HomeDir(), path[2:])
	}
	if filepath.IsAbs(path) {
		return path
	}
	if baseDir == "" {
		baseDir, _ = os.Getwd()
	}
	return filepath.Join(baseDir, path)
}

// DefaultSyncLogPath returns the default sync log location for a
// project root, alongside where Claude Code keeps its hook scripts.
func DefaultSyncLogPath(root string) string {
	return filepath.Join(root, ".claude", "hooks", "sync.log")
}

// ConfigDir returns the user-level agentsync config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "agentsync")
	}
	return filepath.Join(HomeDir(), ".config", "agentsync")
}

// PathExists checks if a path exists on the filesystem
func PathExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
