// ABOUTME: Container lifecycle operations over the compat API
// ABOUTME: Create, start, wait, logs, and remove with typed errors

// Package containers drives the engine's container endpoints and reports
// failed runs as errdefs.ContainerError. A Container is a non-owning handle;
// the service manages the actual lifecycle.
package containers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/docker/docker/api/types/container"

	"github.com/Mr-Sunglasses/podman-py/client"
	"github.com/Mr-Sunglasses/podman-py/errdefs"
	"github.com/Mr-Sunglasses/podman-py/internal/logger"
	"github.com/Mr-Sunglasses/podman-py/streams"
)

// Container is a handle to a container on the service.
type Container struct {
	id    string
	image string
	conn  *client.Connection
}

// ID returns the container's engine-assigned identifier.
func (c *Container) ID() string { return c.id }

// Image returns the image reference the container was created from.
func (c *Container) Image() string { return c.image }

// CreateOptions describes one container creation.
type CreateOptions struct {
	// Name for the new container; the engine assigns one when empty.
	Name string

	Config     *container.Config
	HostConfig *container.HostConfig
}

// createRequest is the create endpoint's body layout.
type createRequest struct {
	*container.Config
	HostConfig *container.HostConfig `json:"HostConfig,omitempty"`
}

// Create makes a container from an existing image. A missing image is an
// ImageNotFoundError so callers can pull and retry.
func Create(ctx context.Context, conn *client.Connection, opts CreateOptions) (*Container, error) {
	if opts.Config == nil || opts.Config.Image == "" {
		return nil, &errdefs.InvalidArgumentError{Reason: "container config must name an image"}
	}

	body, err := json.Marshal(createRequest{Config: opts.Config, HostConfig: opts.HostConfig})
	if err != nil {
		return nil, &errdefs.InvalidArgumentError{Reason: fmt.Sprintf("cannot encode container config: %v", err)}
	}

	query := url.Values{}
	if opts.Name != "" {
		query.Set("name", opts.Name)
	}

	resp, err := conn.DoRequest(ctx, http.MethodPost, "/containers/create", query, nil, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var created container.CreateResponse
	if err := resp.Process(&created); err != nil {
		// The create endpoint 404s only when the image is absent.
		return nil, narrowImageNotFound(err)
	}

	logger.Debug("created container %s from %s", created.ID, opts.Config.Image)
	return &Container{id: created.ID, image: opts.Config.Image, conn: conn}, nil
}

// Start starts the container. An already-running container is success.
func (c *Container) Start(ctx context.Context) error {
	resp, err := c.conn.DoRequest(ctx, http.MethodPost, fmt.Sprintf("/containers/%s/start", c.id), nil, nil, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode() == http.StatusNotModified {
		return resp.Close()
	}
	return resp.Process(nil)
}

// Wait blocks until the container exits and returns its exit status.
func (c *Container) Wait(ctx context.Context) (int64, error) {
	resp, err := c.conn.DoRequest(ctx, http.MethodPost, fmt.Sprintf("/containers/%s/wait", c.id), nil, nil, nil)
	if err != nil {
		return 0, err
	}

	var waited container.WaitResponse
	if err := resp.Process(&waited); err != nil {
		return 0, err
	}
	if waited.Error != nil && waited.Error.Message != "" {
		return 0, errdefs.NewAPIError(waited.Error.Message, nil, fmt.Sprintf("wait on container %s failed", c.id))
	}
	return waited.StatusCode, nil
}

// LogsOptions selects which streams to fetch.
type LogsOptions struct {
	Stdout bool
	Stderr bool

	// Tail limits output to the last N lines, engine syntax ("all", "100").
	Tail string
}

// Logs fetches and demultiplexes the container's output.
func (c *Container) Logs(ctx context.Context, opts LogsOptions) (stdout, stderr []string, err error) {
	query := url.Values{}
	if opts.Stdout {
		query.Set("stdout", "1")
	}
	if opts.Stderr {
		query.Set("stderr", "1")
	}
	if opts.Tail != "" {
		query.Set("tail", opts.Tail)
	}

	resp, err := c.conn.DoRequest(ctx, http.MethodGet, fmt.Sprintf("/containers/%s/logs", c.id), query, nil, nil)
	if err != nil {
		return nil, nil, err
	}
	if !resp.IsSuccess() {
		return nil, nil, resp.ProcessError()
	}

	defer func() { _ = resp.Close() }()
	return streams.Lines(resp.Body())
}

// Remove deletes the container and its anonymous volumes.
func (c *Container) Remove(ctx context.Context, force bool) error {
	query := url.Values{"v": []string{"1"}}
	if force {
		query.Set("force", "1")
	}

	resp, err := c.conn.DoRequest(ctx, http.MethodDelete, fmt.Sprintf("/containers/%s", c.id), query, nil, nil)
	if err != nil {
		return err
	}
	return resp.Process(nil)
}

// narrowImageNotFound converts a generic NotFoundError from an image-backed
// endpoint into the image-specific specialization.
func narrowImageNotFound(err error) error {
	var nf *errdefs.NotFoundError
	if errors.As(err, &nf) {
		return errdefs.NewImageNotFound(nf.Message, nf.Response, nf.Explanation)
	}
	return err
}
