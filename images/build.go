// ABOUTME: Image build over the engine's /build endpoint
// ABOUTME: Captures the streamed build log before raising BuildError

package images

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/docker/docker/pkg/jsonmessage"

	"github.com/Mr-Sunglasses/podman-py/client"
	"github.com/Mr-Sunglasses/podman-py/errdefs"
	"github.com/Mr-Sunglasses/podman-py/internal/logger"
	"github.com/Mr-Sunglasses/podman-py/streams"
)

// BuildOptions describes one image build.
type BuildOptions struct {
	// Context is the build context as a tar stream. Required.
	Context io.Reader

	// Dockerfile is the path of the containerfile within the context,
	// defaulting to the engine's convention when empty.
	Dockerfile string

	// Tags to apply to the built image.
	Tags []string

	// NoCache disables the layer cache for this build.
	NoCache bool
}

// buildAux matches the aux document carrying the built image ID.
type buildAux struct {
	ID string `json:"ID"`
}

// Build runs an image build and returns the built image ID. The build log
// is collected line by line while the stream is open; when the build fails
// the captured log travels with the returned BuildError, since the stream
// is gone by the time the caller sees it.
func Build(ctx context.Context, conn *client.Connection, opts BuildOptions) (string, error) {
	if opts.Context == nil {
		return "", &errdefs.InvalidArgumentError{Reason: "build context cannot be nil"}
	}

	query := url.Values{}
	for _, tag := range opts.Tags {
		query.Add("t", tag)
	}
	if opts.Dockerfile != "" {
		query.Set("dockerfile", opts.Dockerfile)
	}
	if opts.NoCache {
		query.Set("nocache", "1")
	}

	headers := http.Header{"Content-Type": []string{"application/x-tar"}}
	resp, err := conn.DoRequest(ctx, http.MethodPost, "/build", query, headers, opts.Context)
	if err != nil {
		return "", err
	}

	if !resp.IsSuccess() {
		return "", resp.ProcessError()
	}

	defer func() { _ = resp.Close() }()

	var buildLog []string
	var imageID string
	var buildErr *errdefs.BuildError

	err = streams.DecodeJSONStream(resp.Body(), func(msg jsonmessage.JSONMessage) error {
		if msg.Stream != "" {
			line := strings.TrimRight(msg.Stream, "\n")
			if line != "" {
				buildLog = append(buildLog, line)
			}
		}
		if msg.Aux != nil {
			var aux buildAux
			if json.Unmarshal(*msg.Aux, &aux) == nil && aux.ID != "" {
				imageID = aux.ID
			}
		}
		if msg.Error != nil {
			buildErr = errdefs.NewBuildError(msg.Error.Message, buildLog)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if buildErr != nil {
		return "", buildErr
	}
	if imageID == "" {
		// A stream that ends without an error or an image ID still failed.
		return "", errdefs.NewBuildError("build stream ended without an image ID", buildLog)
	}

	logger.Debug("built image %s", imageID)
	return imageID, nil
}
