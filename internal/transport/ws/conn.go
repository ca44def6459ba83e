package ws

import (
	"context"
	"time"

	"github.com/coder/websocket"
)

const opTimeout = 5 * time.Second

// Conn adapts a WebSocket connection to the core's line contract: one text
// frame carries exactly one line, so the wire-level text protocol is the
// same as over TCP.
type Conn struct {
	ctx context.Context
	ws  *websocket.Conn
}

func newConn(ctx context.Context, ws *websocket.Conn) *Conn {
	return &Conn{ctx: ctx, ws: ws}
}

// ReadLine blocks until the next text frame.
func (c *Conn) ReadLine() (string, error) {
	_, data, err := c.ws.Read(c.ctx)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteLine sends one line as one text frame.
func (c *Conn) WriteLine(line string) error {
	ctx, cancel := context.WithTimeout(c.ctx, opTimeout)
	defer cancel()
	return c.ws.Write(ctx, websocket.MessageText, []byte(line))
}

// Alive probes with a WebSocket ping, the protocol's harmless write.
func (c *Conn) Alive() bool {
	ctx, cancel := context.WithTimeout(c.ctx, opTimeout)
	defer cancel()
	return c.ws.Ping(ctx) == nil
}

// Close ends the session, unblocking any pending ReadLine.
func (c *Conn) Close() error {
	return c.ws.Close(websocket.StatusNormalClosure, "closing")
}
