// ABOUTME: Process environment capture and service URI resolution
// ABOUTME: Container-style variables win over docker-style ones

package client

import (
	"os"
	"strings"

	"github.com/Mr-Sunglasses/podman-py/errdefs"
	"github.com/Mr-Sunglasses/podman-py/internal/runtime"
)

// Snapshot captures the whole process environment as a map. ConnectionError
// rendering filters it down to the connection-relevant allow-list, so the
// full capture never reaches diagnostics output.
func Snapshot() map[string]string {
	environ := os.Environ()
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[key] = value
	}
	return env
}

// ResolveURI picks the service URI to attempt. Resolution order:
// the explicit argument, CONTAINER_HOST, DOCKER_HOST, a detected engine
// socket, and finally the conventional root podman socket.
func ResolveURI(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if host := os.Getenv(errdefs.EnvContainerHost); host != "" {
		return host
	}
	if host := os.Getenv(errdefs.EnvDockerHost); host != "" {
		return host
	}
	if best := runtime.DetectBest(); best != nil {
		return best.URI()
	}
	return "unix://" + runtime.PodmanSocketCandidates()[0]
}
