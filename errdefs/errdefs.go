// ABOUTME: Error taxonomy shared by every package in the library
// ABOUTME: Defines the closed PodmanError variant set and kind predicates

// Package errdefs defines the errors reported by the podman client library.
//
// Every library-native error implements PodmanError, so callers can branch
// on Kind or use the IsXxx predicates instead of matching message strings.
// Construction is pure data assembly: nothing here performs I/O, logs, or
// retries — rendering via Error() is the only behavior.
package errdefs

import "errors"

// Kind identifies the variant of a library error.
type Kind string

const (
	KindAPI             Kind = "api"
	KindNotFound        Kind = "not found"
	KindImageNotFound   Kind = "image not found"
	KindBuild           Kind = "build"
	KindContainer       Kind = "container"
	KindConnection      Kind = "connection"
	KindInvalidArgument Kind = "invalid argument"
)

// PodmanError is implemented by every error this library reports.
// The unexported marker keeps the variant set closed to this package.
type PodmanError interface {
	error
	Kind() Kind
	podmanError()
}

// IsPodmanError reports whether err (or anything it wraps) originated from
// this library, as opposed to an arbitrary underlying error.
func IsPodmanError(err error) bool {
	var pe PodmanError
	return errors.As(err, &pe)
}

// IsDockerException is an alias for IsPodmanError kept for code written
// against the docker-py style taxonomy this library descends from.
func IsDockerException(err error) bool {
	return IsPodmanError(err)
}

// IsNotFound reports whether err is a generic resource-absent API error.
// Image-specific lookups report IsImageNotFound instead.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsImageNotFound reports whether err signals a missing image.
func IsImageNotFound(err error) bool {
	var e *ImageNotFoundError
	return errors.As(err, &e)
}

// IsConnectionError reports whether err was raised while establishing a
// connection to the service, before any HTTP exchange took place.
func IsConnectionError(err error) bool {
	var e *ConnectionError
	return errors.As(err, &e)
}

// InvalidArgumentError reports a parameter that was not valid for the
// requested operation.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string { return e.Reason }

// Kind returns KindInvalidArgument.
func (e *InvalidArgumentError) Kind() Kind { return KindInvalidArgument }

func (e *InvalidArgumentError) podmanError() {}
