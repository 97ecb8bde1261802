// ABOUTME: HTTP connection to a Podman or Docker-compatible service
// ABOUTME: Handles unix/tcp transports and connection-failure diagnostics

// Package client issues HTTP requests against a container engine service
// and maps failures into the errdefs taxonomy. Connection setup failures
// become errdefs.ConnectionError; completed exchanges with error statuses
// become errdefs.APIError or its specializations.
package client

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/docker/go-connections/sockets"
	"github.com/gorilla/websocket"

	"github.com/Mr-Sunglasses/podman-py/errdefs"
	"github.com/Mr-Sunglasses/podman-py/internal/logger"
)

// apiVersion is the compat API base path prefix. Podman serves the
// docker-compatible endpoints under the same versioned layout.
const apiVersion = "v1.41"

// dummyHost appears in request URLs when the transport is a unix socket;
// the engine ignores it.
const dummyHost = "d"

// Connection is a configured HTTP client bound to one service endpoint.
// It is safe for concurrent use.
type Connection struct {
	uri     string
	base    string // scheme://host prefix for request URLs
	httpc   *http.Client
	dialCtx func(ctx context.Context, network, addr string) (net.Conn, error)
}

// Options tunes connection construction.
type Options struct {
	// Timeout bounds a single HTTP exchange. Zero means no client timeout;
	// callers control lifetimes through ctx.
	Timeout time.Duration
}

// New connects to the service at uri (unix:///path or tcp://host:port) and
// verifies it responds. Any failure before a successful HTTP exchange is
// reported as an errdefs.ConnectionError carrying the attempted host, the
// process environment snapshot, and the cause.
func New(ctx context.Context, uri string, opts ...Options) (*Connection, error) {
	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}

	conn, err := newConnection(uri, opt)
	if err != nil {
		return nil, errdefs.NewConnectionError("failed to configure connection to Podman service", Snapshot(), uri, err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, errdefs.NewConnectionError("failed to connect to Podman service", Snapshot(), uri, err)
	}

	logger.Debug("connected to %s", uri)
	return conn, nil
}

// FromEnv connects using the environment and detected sockets; see
// ResolveURI for the resolution order.
func FromEnv(ctx context.Context, opts ...Options) (*Connection, error) {
	return New(ctx, ResolveURI(""), opts...)
}

func newConnection(uri string, opt Options) (*Connection, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid service URI: %w", err)
	}

	tr := &http.Transport{}
	conn := &Connection{
		uri:   uri,
		httpc: &http.Client{Transport: tr, Timeout: opt.Timeout},
	}

	switch u.Scheme {
	case "unix":
		socketPath := u.Path
		if err := sockets.ConfigureTransport(tr, "unix", socketPath); err != nil {
			return nil, err
		}
		conn.base = "http://" + dummyHost
		conn.dialCtx = func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", socketPath)
		}
	case "tcp":
		if err := sockets.ConfigureTransport(tr, "tcp", u.Host); err != nil {
			return nil, err
		}
		conn.base = "http://" + u.Host
		conn.dialCtx = func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "tcp", u.Host)
		}
	default:
		return nil, fmt.Errorf("unsupported URI scheme %q", u.Scheme)
	}

	return conn, nil
}

// URI returns the service URI this connection was built from.
func (c *Connection) URI() string { return c.uri }

// Ping verifies the service answers HTTP requests at all.
func (c *Connection) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/_ping", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping returned status %d", resp.StatusCode)
	}
	return nil
}

// DoRequest performs one HTTP exchange against the versioned API. A
// transport-level send failure is reported as an errdefs.APIError with no
// response attached; callers inspect the returned APIResponse for status
// handling. path must begin with "/".
func (c *Connection) DoRequest(ctx context.Context, method, path string, query url.Values, headers http.Header, body io.Reader) (*APIResponse, error) {
	endpoint := fmt.Sprintf("%s/%s%s", c.base, apiVersion, path)

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, &errdefs.InvalidArgumentError{Reason: fmt.Sprintf("cannot build request for %s: %v", path, err)}
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if req.Header.Get("Content-Type") == "" && body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		// The exchange failed below HTTP; there is no response to classify.
		return nil, errdefs.NewAPIError(err.Error(), nil, fmt.Sprintf("%s %s failed", method, path))
	}

	logger.Debug("%s %s -> %d", method, path, resp.StatusCode)
	return &APIResponse{resp: resp}, nil
}

// DialWebsocket upgrades to a websocket on the given API path, reusing the
// connection's transport dialer so unix sockets work transparently.
func (c *Connection) DialWebsocket(ctx context.Context, path string, query url.Values) (*websocket.Conn, error) {
	u := url.URL{Scheme: "ws", Host: dummyHost, Path: "/" + apiVersion + path}
	if c.dialCtx == nil {
		return nil, errdefs.NewAPIError("connection has no dialer", nil, "")
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	dialer := websocket.Dialer{
		NetDialContext:   c.dialCtx,
		HandshakeTimeout: 10 * time.Second,
	}

	ws, resp, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			return nil, (&APIResponse{resp: resp}).ProcessError()
		}
		return nil, errdefs.NewAPIError(err.Error(), nil, fmt.Sprintf("websocket dial %s failed", path))
	}
	return ws, nil
}
