// ABOUTME: HTTP-facing error types classified by status-code range
// ABOUTME: APIError plus the NotFound / ImageNotFound specializations

package errdefs

import "fmt"

// Response is the view of an HTTP response needed to classify an APIError.
// The transport layer passes its live response handle, never a copy, so the
// status code reflects the response object's state at call time.
type Response interface {
	StatusCode() int
	Reason() string
}

// APIError wraps an HTTP exchange that completed with a non-success status
// or failed at the transport level.
type APIError struct {
	// Message is the error text from the service, possibly enhanced by a
	// binding. It is superseded by Response.Reason() when a response is
	// attached (deliberate override, not concatenation).
	Message string

	// Response is the handle to the failing HTTP response, nil when the
	// exchange never produced one. Read lazily, never mutated.
	Response Response

	// Explanation optionally augments the message with caller context.
	Explanation string
}

// NewAPIError builds an APIError. resp and explanation may be zero.
func NewAPIError(message string, resp Response, explanation string) *APIError {
	return &APIError{Message: message, Response: resp, Explanation: explanation}
}

// StatusCode returns the HTTP status code read from the response at call
// time, or 0 when no response is attached.
func (e *APIError) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode()
}

// IsClientError reports whether the request itself was incorrect (4xx).
func (e *APIError) IsClientError() bool {
	code := e.StatusCode()
	return 400 <= code && code < 500
}

// IsServerError reports whether the service failed (5xx).
func (e *APIError) IsServerError() bool {
	code := e.StatusCode()
	return 500 <= code && code < 600
}

// IsError reports whether the HTTP operation resulted in an error status.
func (e *APIError) IsError() bool {
	return e.IsClientError() || e.IsServerError()
}

func (e *APIError) Error() string {
	msg := e.Message
	if e.Response != nil {
		msg = e.Response.Reason()
	}

	switch {
	case e.IsClientError():
		msg = fmt.Sprintf("%d Client Error: %s", e.StatusCode(), msg)
	case e.IsServerError():
		msg = fmt.Sprintf("%d Server Error: %s", e.StatusCode(), msg)
	}

	if e.Explanation != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Explanation)
	}

	return msg
}

// Kind returns KindAPI.
func (e *APIError) Kind() Kind { return KindAPI }

func (e *APIError) podmanError() {}

// NotFoundError signals a resource absent on the service. It exists so
// callers can match by type rather than re-deriving the 404 status.
type NotFoundError struct {
	APIError
}

// NewNotFound builds a NotFoundError from the failing exchange.
func NewNotFound(message string, resp Response, explanation string) *NotFoundError {
	return &NotFoundError{APIError{Message: message, Response: resp, Explanation: explanation}}
}

// Unwrap exposes the embedded APIError so errors.As sees the ancestry.
func (e *NotFoundError) Unwrap() error { return &e.APIError }

// Kind returns KindNotFound.
func (e *NotFoundError) Kind() Kind { return KindNotFound }

// ImageNotFoundError signals an image absent on the service, for callers
// that need pull-and-retry handling distinct from a generic NotFoundError.
type ImageNotFoundError struct {
	APIError
}

// NewImageNotFound builds an ImageNotFoundError from the failing exchange.
func NewImageNotFound(message string, resp Response, explanation string) *ImageNotFoundError {
	return &ImageNotFoundError{APIError{Message: message, Response: resp, Explanation: explanation}}
}

// Unwrap exposes the embedded APIError so errors.As sees the ancestry.
func (e *ImageNotFoundError) Unwrap() error { return &e.APIError }

// Kind returns KindImageNotFound.
func (e *ImageNotFoundError) Kind() Kind { return KindImageNotFound }
