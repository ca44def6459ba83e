package chat

import (
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeConn is an in-memory Conn. Input lines are fed through a channel;
// written lines are recorded for assertions.
type fakeConn struct {
	in chan string

	mu      sync.Mutex
	written []string
	alive   bool
	closed  bool

	closeOnce sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		in:    make(chan string, 64),
		alive: true,
	}
}

// newScriptedConn feeds the given lines and then reports end-of-stream.
func newScriptedConn(lines ...string) *fakeConn {
	c := newFakeConn()
	for _, line := range lines {
		c.in <- line
	}
	c.closeOnce.Do(func() { close(c.in) })
	return c
}

func (c *fakeConn) push(line string) {
	c.in <- line
}

func (c *fakeConn) ReadLine() (string, error) {
	line, ok := <-c.in
	if !ok {
		return "", io.EOF
	}
	return line, nil
}

func (c *fakeConn) WriteLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.New("write on closed conn")
	}
	c.written = append(c.written, line)
	return nil
}

func (c *fakeConn) Alive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alive && !c.closed
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.closeOnce.Do(func() { close(c.in) })
	return nil
}

func (c *fakeConn) markDead() {
	c.mu.Lock()
	c.alive = false
	c.mu.Unlock()
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *fakeConn) lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.written))
	copy(out, c.written)
	return out
}

func (c *fakeConn) countContaining(substr string) int {
	n := 0
	for _, line := range c.lines() {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

func newTestUser(name string) (*User, *fakeConn) {
	conn := newFakeConn()
	return NewUser(name, conn, ">"), conn
}

// mustLine waits until the connection has received a line containing substr.
func mustLine(t *testing.T, c *fakeConn, substr string) string {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, line := range c.lines() {
			if strings.Contains(line, substr) {
				return line
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected a line containing %q, got %v", substr, c.lines())
	return ""
}

// eventually polls cond until it holds or the timeout expires.
func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(msg)
}
