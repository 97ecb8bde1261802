// ABOUTME: Container engine detection for Podman and Docker services
// ABOUTME: Provides socket discovery and availability checking

package runtime

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Mr-Sunglasses/podman-py/internal/xdg"
)

// EngineInfo contains detected engine information
type EngineInfo struct {
	Name       string // "podman", "docker"
	Status     string // "available", "cli-only", "unavailable"
	SocketPath string // e.g., "/run/podman/podman.sock"
	Version    string // e.g., "5.2.3"
}

func (e EngineInfo) String() string {
	return fmt.Sprintf("%s (%s) v%s @ %s", e.Name, e.Status, e.Version, e.SocketPath)
}

// URI returns the unix:// URI for the detected socket, empty when none.
func (e EngineInfo) URI() string {
	if e.SocketPath == "" {
		return ""
	}
	return "unix://" + e.SocketPath
}

// DetectAll finds all available container engines
func DetectAll() []EngineInfo {
	return []EngineInfo{
		detectPodman(),
		detectDocker(),
	}
}

// DetectBest returns the best available engine (priority: Podman > Docker)
func DetectBest() *EngineInfo {
	all := DetectAll()

	for _, e := range all {
		if e.Name == "podman" && e.Status == "available" {
			return &e
		}
	}

	for _, e := range all {
		if e.Name == "docker" && e.Status == "available" {
			return &e
		}
	}

	return nil
}

// PodmanSocketCandidates returns the socket paths probed for podman, root
// socket first, then the rootless socket under XDG_RUNTIME_DIR.
func PodmanSocketCandidates() []string {
	return []string{
		"/run/podman/podman.sock",
		filepath.Join(xdg.RuntimeDir(), "podman", "podman.sock"),
	}
}

func detectPodman() EngineInfo {
	info := EngineInfo{Name: "podman"}

	// Check CLI presence
	version, err := exec.Command("podman", "version", "--format", "{{.Client.Version}}").Output()
	if err != nil {
		info.Status = "unavailable"
		return info
	}
	info.Version = strings.TrimSpace(string(version))

	// Check sockets, root first then rootless
	for _, socketPath := range PodmanSocketCandidates() {
		if _, err := os.Stat(socketPath); err == nil {
			info.Status = "available"
			info.SocketPath = socketPath
			return info
		}
	}

	info.Status = "cli-only"
	return info
}

func detectDocker() EngineInfo {
	info := EngineInfo{Name: "docker"}

	// Check CLI presence
	version, err := exec.Command("docker", "version", "--format", "{{.Client.Version}}").Output()
	if err != nil {
		info.Status = "unavailable"
		return info
	}
	info.Version = strings.TrimSpace(string(version))

	// Check socket
	socketPath := "/var/run/docker.sock"
	if _, err := os.Stat(socketPath); err == nil {
		info.Status = "available"
		info.SocketPath = socketPath
	} else {
		info.Status = "cli-only"
	}

	return info
}
