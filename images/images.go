// ABOUTME: Image operations: inspect, existence checks, and pull
// ABOUTME: Missing images surface as errdefs.ImageNotFoundError

// Package images drives the engine's image endpoints. Lookup failures for
// a missing image are reported as errdefs.ImageNotFoundError so callers
// can implement pull-and-retry without string matching.
package images

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/docker/docker/pkg/jsonmessage"

	"github.com/Mr-Sunglasses/podman-py/client"
	"github.com/Mr-Sunglasses/podman-py/errdefs"
	"github.com/Mr-Sunglasses/podman-py/internal/logger"
	"github.com/Mr-Sunglasses/podman-py/streams"
)

// Image is the subset of the inspect payload this library consumes.
type Image struct {
	ID       string   `json:"Id"`
	RepoTags []string `json:"RepoTags"`
}

// Inspect fetches image metadata. A missing image is an ImageNotFoundError.
func Inspect(ctx context.Context, conn *client.Connection, ref string) (*Image, error) {
	if ref == "" {
		return nil, &errdefs.InvalidArgumentError{Reason: "image reference cannot be empty"}
	}

	resp, err := conn.DoRequest(ctx, http.MethodGet, fmt.Sprintf("/images/%s/json", ref), nil, nil, nil)
	if err != nil {
		return nil, err
	}

	var img Image
	if err := resp.Process(&img); err != nil {
		return nil, imageNotFoundFor(err)
	}
	return &img, nil
}

// Exists reports whether the image is present on the service.
func Exists(ctx context.Context, conn *client.Connection, ref string) (bool, error) {
	_, err := Inspect(ctx, conn, ref)
	if errdefs.IsImageNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Pull asks the service to pull ref from a registry. The progress stream is
// consumed fully; an error document inside an otherwise successful stream
// still fails the pull.
func Pull(ctx context.Context, conn *client.Connection, ref string) error {
	if ref == "" {
		return &errdefs.InvalidArgumentError{Reason: "image reference cannot be empty"}
	}

	query := url.Values{"fromImage": []string{ref}}
	resp, err := conn.DoRequest(ctx, http.MethodPost, "/images/create", query, nil, nil)
	if err != nil {
		return err
	}

	if !resp.IsSuccess() {
		return imageNotFoundFor(resp.ProcessError())
	}

	defer func() { _ = resp.Close() }()

	var pullErr *jsonmessage.JSONError
	err = streams.DecodeJSONStream(resp.Body(), func(msg jsonmessage.JSONMessage) error {
		if msg.Error != nil {
			pullErr = msg.Error
		}
		return nil
	})
	if err != nil {
		return err
	}

	if pullErr != nil {
		// The registry rejected the reference after the exchange succeeded;
		// there is no HTTP response to attach.
		return errdefs.NewImageNotFound(pullErr.Message, nil, fmt.Sprintf("pull of %q failed", ref))
	}

	logger.Debug("pulled image %s", ref)
	return nil
}

// imageNotFoundFor narrows a generic NotFoundError from an image endpoint
// into the image-specific specialization, keeping the live response handle.
func imageNotFoundFor(err error) error {
	var nf *errdefs.NotFoundError
	if errors.As(err, &nf) {
		return errdefs.NewImageNotFound(nf.Message, nf.Response, nf.Explanation)
	}
	return err
}
