// ABOUTME: Decoder for the chunked JSON progress streams of build and pull
// ABOUTME: Invokes a callback per document, StreamParseError on bad input

package streams

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/docker/docker/pkg/jsonmessage"

	"github.com/Mr-Sunglasses/podman-py/errdefs"
)

// DecodeJSONStream reads concatenated JSON documents from r and invokes fn
// for each one until EOF. A document that cannot be decoded stops the read
// with an errdefs.StreamParseError; an error returned by fn stops it with
// that error.
func DecodeJSONStream(r io.Reader, fn func(jsonmessage.JSONMessage) error) error {
	dec := json.NewDecoder(r)

	for {
		var msg jsonmessage.JSONMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return &errdefs.StreamParseError{
				Reason: fmt.Sprintf("malformed JSON stream document at input offset %d: %v", dec.InputOffset(), err),
			}
		}

		if err := fn(msg); err != nil {
			return err
		}
	}
}
