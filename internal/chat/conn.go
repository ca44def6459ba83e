package chat

// Conn is the transport-level handle the core needs from a client connection.
// Framing, encoding, and socket setup belong to the transport packages; the
// core only reads lines, writes lines, probes liveness, and closes.
type Conn interface {
	// ReadLine blocks until the next full line arrives. It returns an error
	// on end-of-stream or transport failure, which the worker treats as a
	// disconnect.
	ReadLine() (string, error)

	// WriteLine delivers a single line to the client.
	WriteLine(line string) error

	// Alive reports whether the transport is still usable. Implementations
	// must probe with a harmless write, not a cached open/closed flag:
	// abrupt network failures only surface on write attempts.
	Alive() bool

	// Close tears down the underlying transport. Closing is what unblocks a
	// pending ReadLine.
	Close() error
}
