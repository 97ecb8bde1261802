// ABOUTME: APIResponse wrapper exposing the live HTTP response handle
// ABOUTME: Maps non-success statuses into the errdefs taxonomy

package client

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Mr-Sunglasses/podman-py/errdefs"
)

// maxErrorBodyBytes caps how much of an error body is read for diagnostics.
const maxErrorBodyBytes = 32 * 1024

// APIResponse wraps the service's HTTP response. The original response
// handle is retained, never copied, so errors built from it keep reading
// the live status code. Exactly one of Process, ProcessError, or a manual
// Body read followed by Close must consume it.
type APIResponse struct {
	resp *http.Response
}

// StatusCode reads the status code from the underlying response.
func (r *APIResponse) StatusCode() int { return r.resp.StatusCode }

// Reason returns the status line text without the leading code.
func (r *APIResponse) Reason() string {
	reason := strings.TrimSpace(strings.TrimPrefix(r.resp.Status, strconv.Itoa(r.resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(r.resp.StatusCode)
	}
	return reason
}

// IsSuccess reports whether the exchange completed with a 2xx status.
func (r *APIResponse) IsSuccess() bool {
	return r.resp.StatusCode >= http.StatusOK && r.resp.StatusCode < http.StatusMultipleChoices
}

// Body exposes the response stream for callers that decode it themselves.
func (r *APIResponse) Body() io.ReadCloser { return r.resp.Body }

// Close drains and releases the response body.
func (r *APIResponse) Close() error {
	_, _ = io.Copy(io.Discard, io.LimitReader(r.resp.Body, maxErrorBodyBytes))
	return r.resp.Body.Close()
}

// Process decodes a successful JSON response into v (v may be nil to
// discard), or converts an error status into a typed error.
func (r *APIResponse) Process(v any) error {
	if !r.IsSuccess() {
		return r.ProcessError()
	}

	defer func() { _ = r.resp.Body.Close() }()
	if v == nil {
		_, _ = io.Copy(io.Discard, r.resp.Body)
		return nil
	}
	return json.NewDecoder(r.resp.Body).Decode(v)
}

// errorBody matches the engine's JSON error schema.
type errorBody struct {
	Cause    string `json:"cause"`
	Message  string `json:"message"`
	Response int    `json:"response"`
}

// ProcessError converts a non-success response into an errdefs error,
// consuming the body. A 404 becomes a NotFoundError; everything else an
// APIError. The response handle is passed through so the status stays live.
func (r *APIResponse) ProcessError() error {
	body, _ := io.ReadAll(io.LimitReader(r.resp.Body, maxErrorBodyBytes))
	_ = r.resp.Body.Close()

	message := strings.TrimSpace(string(body))
	explanation := ""

	var parsed errorBody
	if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
		message = parsed.Message
		if parsed.Cause != "" && parsed.Cause != parsed.Message {
			explanation = parsed.Cause
		}
	}

	if r.resp.StatusCode == http.StatusNotFound {
		return errdefs.NewNotFound(message, r, explanation)
	}
	return errdefs.NewAPIError(message, r, explanation)
}
