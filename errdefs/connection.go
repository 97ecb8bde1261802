// ABOUTME: ConnectionError assembled when reaching the service fails
// ABOUTME: Renders host, filtered environment, and causal chain segments

package errdefs

import (
	"fmt"
	"strings"
)

// Environment variables relevant to connection setup. Two naming families
// exist for compatibility: docker-style and container-style.
const (
	EnvDockerHost         = "DOCKER_HOST"
	EnvContainerHost      = "CONTAINER_HOST"
	EnvDockerTLSVerify    = "DOCKER_TLS_VERIFY"
	EnvContainerTLSVerify = "CONTAINER_TLS_VERIFY"
	EnvDockerCertPath     = "DOCKER_CERT_PATH"
	EnvContainerCertPath  = "CONTAINER_CERT_PATH"
)

// connectionEnvAllowList is the fixed set of variable names that may be
// surfaced in a rendered ConnectionError. Nothing outside this list is ever
// printed, so unrelated process secrets cannot leak into diagnostics.
// Rendering iterates in this order.
var connectionEnvAllowList = []string{
	EnvDockerHost,
	EnvContainerHost,
	EnvDockerTLSVerify,
	EnvContainerTLSVerify,
	EnvDockerCertPath,
	EnvContainerCertPath,
}

// ConnectionEnvVars returns the allow-list of connection-relevant variable
// names in rendering order.
func ConnectionEnvVars() []string {
	vars := make([]string, len(connectionEnvAllowList))
	copy(vars, connectionEnvAllowList)
	return vars
}

// ConnectionError reports a failure to reach the service before any HTTP
// exchange occurred. It never carries a status code.
type ConnectionError struct {
	Message string

	// Environment is the process environment snapshot taken during the
	// connection attempt. Rendering filters it to the allow-list above.
	Environment map[string]string

	// Host is the URL or socket path that could not be reached.
	Host string

	// Err is the lower-level error that triggered this one, when known.
	Err error
}

// NewConnectionError builds a ConnectionError. environment, host, and cause
// may be zero.
func NewConnectionError(message string, environment map[string]string, host string, cause error) *ConnectionError {
	return &ConnectionError{Message: message, Environment: environment, Host: host, Err: cause}
}

// Error renders the segments message, host, environment, cause — in that
// order, joined by " | ". Segment order is a contract for log tooling.
func (e *ConnectionError) Error() string {
	segments := []string{e.Message}

	if e.Host != "" {
		segments = append(segments, "Host: "+e.Host)
	}

	if len(e.Environment) > 0 {
		var lines []string
		for _, key := range connectionEnvAllowList {
			if value, ok := e.Environment[key]; ok {
				lines = append(lines, fmt.Sprintf("  %s=%s", key, value))
			}
		}
		if len(lines) > 0 {
			segments = append(segments, "Environment:\n"+strings.Join(lines, "\n"))
		}
	}

	if e.Err != nil {
		segments = append(segments, "Caused by: "+e.Err.Error())
	}

	return strings.Join(segments, " | ")
}

// Unwrap returns the triggering lower-level error, if any.
func (e *ConnectionError) Unwrap() error { return e.Err }

// Kind returns KindConnection.
func (e *ConnectionError) Kind() Kind { return KindConnection }

func (e *ConnectionError) podmanError() {}
