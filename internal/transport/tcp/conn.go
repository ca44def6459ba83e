package tcp

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"time"
)

const probeTimeout = 2 * time.Second

// Conn adapts a TCP socket to the core's line-oriented connection contract.
// Writes are serialized: room broadcasts reach a connection from many
// workers at once.
type Conn struct {
	raw net.Conn
	r   *bufio.Reader

	mu sync.Mutex
	w  *bufio.Writer
}

// NewConn wraps an accepted socket with buffered line framing.
func NewConn(raw net.Conn) *Conn {
	return &Conn{
		raw: raw,
		r:   bufio.NewReader(raw),
		w:   bufio.NewWriter(raw),
	}
}

// ReadLine blocks until a full line arrives and returns it without the
// trailing newline.
func (c *Conn) ReadLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// WriteLine sends a single newline-terminated line.
func (c *Conn) WriteLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.w.WriteString(line + "\n"); err != nil {
		return err
	}
	return c.w.Flush()
}

// Alive probes the socket with a harmless blank-line write under a short
// deadline. A client that vanished without a FIN only shows up as a write
// error, never as a closed flag.
func (c *Conn) Alive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.raw.SetWriteDeadline(time.Now().Add(probeTimeout)); err != nil {
		return false
	}
	defer c.raw.SetWriteDeadline(time.Time{}) //nolint:errcheck

	if _, err := c.w.WriteString("\n"); err != nil {
		return false
	}
	return c.w.Flush() == nil
}

// Close tears down the socket, which also unblocks any pending ReadLine.
func (c *Conn) Close() error {
	return c.raw.Close()
}
