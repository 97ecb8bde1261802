// ABOUTME: Interactive attach to a container over the websocket endpoint
// ABOUTME: Reuses the connection's transport dialer for unix sockets

package containers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gorilla/websocket"
)

// AttachOptions selects which streams the attach carries.
type AttachOptions struct {
	Stdin  bool
	Stdout bool
	Stderr bool
}

// AttachWebSocket attaches to the container's I/O over the engine's
// websocket endpoint. The caller owns the returned connection and must
// close it; frames follow the engine's attach protocol.
func (c *Container) AttachWebSocket(ctx context.Context, opts AttachOptions) (*websocket.Conn, error) {
	query := url.Values{"stream": []string{"1"}}
	if opts.Stdin {
		query.Set("stdin", "1")
	}
	if opts.Stdout {
		query.Set("stdout", "1")
	}
	if opts.Stderr {
		query.Set("stderr", "1")
	}

	return c.conn.DialWebsocket(ctx, fmt.Sprintf("/containers/%s/attach/ws", c.id), query)
}
