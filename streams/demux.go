// ABOUTME: Demultiplexer for the engine's stdout/stderr frame protocol
// ABOUTME: Malformed frames surface as errdefs.StreamParseError

// Package streams decodes the payload formats the engine streams back:
// multiplexed stdout/stderr frames and chunked JSON documents. Decode
// failures are reported as errdefs.StreamParseError with enough detail to
// locate the malformed input; they carry no HTTP context.
package streams

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Mr-Sunglasses/podman-py/errdefs"
)

// Stream types carried in the first byte of each 8-byte frame header.
const (
	frameStdin  = 0
	frameStdout = 1
	frameStderr = 2
)

const frameHeaderLen = 8

// maxFrameSize rejects frame headers whose declared payload length is
// absurd, which in practice means the stream is not framed at all.
const maxFrameSize = 16 * 1024 * 1024

// Copy demultiplexes src into stdout and stderr until EOF. Each frame is an
// 8-byte header (stream type, 3 padding bytes, big-endian payload length)
// followed by the payload. Returns the number of payload bytes written.
func Copy(stdout, stderr io.Writer, src io.Reader) (int64, error) {
	header := make([]byte, frameHeaderLen)
	var written int64
	var offset int64

	for {
		if _, err := io.ReadFull(src, header); err != nil {
			if errors.Is(err, io.EOF) {
				return written, nil
			}
			return written, &errdefs.StreamParseError{
				Reason: fmt.Sprintf("truncated frame header at offset %d: %v", offset, err),
			}
		}

		var dst io.Writer
		switch header[0] {
		case frameStdin, frameStdout:
			dst = stdout
		case frameStderr:
			dst = stderr
		default:
			return written, &errdefs.StreamParseError{
				Reason: fmt.Sprintf("unknown stream type %d in frame header at offset %d", header[0], offset),
			}
		}

		frameSize := int64(binary.BigEndian.Uint32(header[4:frameHeaderLen]))
		if frameSize > maxFrameSize {
			return written, &errdefs.StreamParseError{
				Reason: fmt.Sprintf("frame at offset %d declares %d payload bytes, limit is %d", offset, frameSize, maxFrameSize),
			}
		}
		offset += frameHeaderLen

		n, err := io.CopyN(dst, src, frameSize)
		written += n
		offset += n
		if err != nil {
			if errors.Is(err, io.EOF) {
				return written, &errdefs.StreamParseError{
					Reason: fmt.Sprintf("truncated frame payload at offset %d: expected %d bytes, got %d", offset, frameSize, n),
				}
			}
			// Destination write failure, not a parse problem.
			return written, err
		}
	}
}

// Lines demultiplexes src and splits the captured output into lines,
// dropping the trailing newline. Either slice may be nil when that stream
// produced no output.
func Lines(src io.Reader) (stdout, stderr []string, err error) {
	var outBuf, errBuf bytes.Buffer
	if _, err := Copy(&outBuf, &errBuf, src); err != nil {
		return nil, nil, err
	}
	return splitLines(outBuf.String()), splitLines(errBuf.String()), nil
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
