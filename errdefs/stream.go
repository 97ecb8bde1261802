// ABOUTME: StreamParseError for malformed multiplexed or chunked payloads
// ABOUTME: Independent of HTTP status; raised purely from local decoding

package errdefs

// StreamParseError reports streamed payload data that could not be decoded,
// such as a corrupt multiplexed frame header or malformed chunked JSON.
// It is a local decode failure, deliberately outside the PodmanError set:
// it carries no HTTP context and no status code.
type StreamParseError struct {
	// Reason describes the failure well enough for a human to locate the
	// malformed frame, e.g. an offset or the raw header bytes.
	Reason string
}

func (e *StreamParseError) Error() string { return e.Reason }
