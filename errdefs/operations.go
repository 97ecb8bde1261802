// ABOUTME: Errors for composite operations: image build and container run
// ABOUTME: Both capture operation context at construction time

package errdefs

import (
	"fmt"
	"strings"
)

// BuildError reports a failed image build.
type BuildError struct {
	// Reason describes why the build failed.
	Reason string

	buildLog []string
}

// NewBuildError captures the already-consumed build log alongside the
// failure reason. The log must be fully collected before the underlying
// stream is closed; the error copies it and outlives the operation.
func NewBuildError(reason string, buildLog []string) *BuildError {
	captured := make([]string, len(buildLog))
	copy(captured, buildLog)
	return &BuildError{Reason: reason, buildLog: captured}
}

func (e *BuildError) Error() string { return e.Reason }

// BuildLog returns the captured build output lines for diagnostic display.
// Callers must not modify the returned slice.
func (e *BuildError) BuildLog() []string { return e.buildLog }

// Kind returns KindBuild.
func (e *BuildError) Kind() Kind { return KindBuild }

func (e *BuildError) podmanError() {}

// ContainerRef identifies the container a ContainerError refers to without
// importing the containers package.
type ContainerRef interface {
	ID() string
}

// ContainerError reports a container that exited with a non-zero status.
// Callers guarantee ExitStatus is non-zero; a zero status is a contract
// violation, not a representable error.
type ContainerError struct {
	// Container is a non-owning reference to the container that failed.
	Container ContainerRef

	ExitStatus int
	Command    string
	Image      string
	Stderr     []string

	message string
}

// NewContainerError composes the diagnostic message once, at construction,
// since the container's state may change afterwards.
func NewContainerError(ctr ContainerRef, exitStatus int, command, image string, stderr []string) *ContainerError {
	msg := fmt.Sprintf("Command '%s' in image '%s' returned non-zero exit status %d", command, image, exitStatus)
	if len(stderr) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, strings.Join(stderr, "\n"))
	}

	return &ContainerError{
		Container:  ctr,
		ExitStatus: exitStatus,
		Command:    command,
		Image:      image,
		Stderr:     stderr,
		message:    msg,
	}
}

func (e *ContainerError) Error() string { return e.message }

// Kind returns KindContainer.
func (e *ContainerError) Kind() Kind { return KindContainer }

func (e *ContainerError) podmanError() {}
