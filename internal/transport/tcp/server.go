package tcp

import (
	"context"
	"errors"
	"net"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/yusufemrebilgin/multithreaded-chat-room/internal/chat"
)

// Server accepts TCP connections and hands each one to the hub as a worker.
// The pool semaphore bounds how many sessions run at once; once it is full,
// the accept loop parks until a session ends.
type Server struct {
	addr string
	hub  *chat.Hub
	log  zerolog.Logger
	pool *semaphore.Weighted

	ln net.Listener
}

// NewServer builds a server for the given listen address and pool size.
func NewServer(addr string, poolSize int, hub *chat.Hub, logger zerolog.Logger) *Server {
	if poolSize <= 0 {
		poolSize = 1
	}
	return &Server{
		addr: addr,
		hub:  hub,
		log:  logger,
		pool: semaphore.NewWeighted(int64(poolSize)),
	}
}

// Listen binds the listener. A bind failure is the one fatal startup error
// of the system; the caller decides to exit.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.log.Info().Str("addr", s.addr).Msg("tcp transport listening")
	return nil
}

// Serve runs the accept loop until the listener closes or ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	for {
		raw, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return nil
			}
			return err
		}

		if err := s.pool.Acquire(ctx, 1); err != nil {
			_ = raw.Close()
			return nil
		}

		s.log.Debug().Str("remote", raw.RemoteAddr().String()).Msg("accepted connection")
		go func() {
			defer s.pool.Release(1)
			s.hub.ServeConn(NewConn(raw))
		}()
	}
}

// Close shuts the listener down, unblocking Serve.
func (s *Server) Close() error {
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}
