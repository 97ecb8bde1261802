// ABOUTME: High-level run: create, start, wait, and collect output
// ABOUTME: Non-zero exits become errdefs.ContainerError with stderr context

package containers

import (
	"context"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/strslice"
	"github.com/google/uuid"

	"github.com/Mr-Sunglasses/podman-py/client"
	"github.com/Mr-Sunglasses/podman-py/errdefs"
	"github.com/Mr-Sunglasses/podman-py/images"
	"github.com/Mr-Sunglasses/podman-py/internal/logger"
)

// RunOptions describes one container run.
type RunOptions struct {
	// Image to run. Required. Pulled automatically when absent.
	Image string

	// Command overrides the image's default command.
	Command []string

	// Name for the container; a generated one is used when empty.
	Name string

	// Env entries in KEY=VALUE form.
	Env []string

	// Remove deletes the container after the run completes.
	Remove bool
}

// Run creates a container, starts it, waits for it to exit, and returns its
// stdout lines. A missing image is pulled once and the create retried. A
// non-zero exit status is reported as an errdefs.ContainerError carrying the
// exit status, the command, the image, and the container's stderr tail.
func Run(ctx context.Context, conn *client.Connection, opts RunOptions) ([]string, error) {
	if opts.Image == "" {
		return nil, &errdefs.InvalidArgumentError{Reason: "run requires an image"}
	}

	name := opts.Name
	if name == "" {
		name = "podman-" + uuid.New().String()[:8]
	}

	createOpts := CreateOptions{
		Name: name,
		Config: &container.Config{
			Image: opts.Image,
			Cmd:   strslice.StrSlice(opts.Command),
			Env:   opts.Env,
		},
	}

	ctr, err := Create(ctx, conn, createOpts)
	if errdefs.IsImageNotFound(err) {
		logger.Debug("image %s absent, pulling before retry", opts.Image)
		if pullErr := images.Pull(ctx, conn, opts.Image); pullErr != nil {
			return nil, pullErr
		}
		ctr, err = Create(ctx, conn, createOpts)
	}
	if err != nil {
		return nil, err
	}

	if opts.Remove {
		defer func() {
			if removeErr := ctr.Remove(ctx, true); removeErr != nil {
				logger.Debug("cleanup of container %s failed: %v", ctr.ID(), removeErr)
			}
		}()
	}

	if err := ctr.Start(ctx); err != nil {
		return nil, err
	}

	exitStatus, err := ctr.Wait(ctx)
	if err != nil {
		return nil, err
	}

	if exitStatus != 0 {
		// Best effort: a failed log fetch still leaves a usable error.
		_, stderrLines, logsErr := ctr.Logs(ctx, LogsOptions{Stderr: true})
		if logsErr != nil {
			logger.Debug("stderr fetch for container %s failed: %v", ctr.ID(), logsErr)
			stderrLines = nil
		}
		command := strings.Join(opts.Command, " ")
		return nil, errdefs.NewContainerError(ctr, int(exitStatus), command, opts.Image, stderrLines)
	}

	stdout, _, err := ctr.Logs(ctx, LogsOptions{Stdout: true})
	if err != nil {
		return nil, err
	}
	return stdout, nil
}
