// ABOUTME: XDG Base Directory Specification support for Linux/Unix standards
// ABOUTME: Handles config, cache, and runtime directories with HOME fallback

package xdg

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ConfigHome returns ~/.config/podman-py or respects XDG_CONFIG_HOME.
func ConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "podman-py")
	}
	home := getHome()
	return filepath.Join(home, ".config", "podman-py")
}

// CacheHome returns ~/.cache/podman-py or respects XDG_CACHE_HOME.
func CacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "podman-py")
	}
	home := getHome()
	return filepath.Join(home, ".cache", "podman-py")
}

// RuntimeDir returns XDG_RUNTIME_DIR or the conventional /run/user/<uid>.
// The rootless podman socket lives under this directory.
func RuntimeDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir
	}
	return filepath.Join("/run", "user", strconv.Itoa(os.Getuid()))
}

// ExpandPath expands $XDG_* variables and ~ in config paths.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(getHome(), path[2:])
	}

	if strings.HasPrefix(path, "$XDG_RUNTIME_DIR") {
		return strings.Replace(path, "$XDG_RUNTIME_DIR", RuntimeDir(), 1)
	}
	if strings.HasPrefix(path, "$XDG_CONFIG_HOME") {
		xdgConfig := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfig == "" {
			xdgConfig = filepath.Join(getHome(), ".config")
		}
		return strings.Replace(path, "$XDG_CONFIG_HOME", xdgConfig, 1)
	}
	if strings.HasPrefix(path, "$XDG_CACHE_HOME") {
		xdgCache := os.Getenv("XDG_CACHE_HOME")
		if xdgCache == "" {
			xdgCache = filepath.Join(getHome(), ".cache")
		}
		return strings.Replace(path, "$XDG_CACHE_HOME", xdgCache, 1)
	}

	// Non-XDG paths pass through unchanged
	return path
}

// getHome returns HOME with fallback chain.
func getHome() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}

	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}

	return "."
}
