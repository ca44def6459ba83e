package chat

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ConnRegistry tracks one live connection per user id and periodically
// sweeps out connections whose liveness probe fails, reclaiming resources
// from clients that dropped without a clean close.
type ConnRegistry struct {
	log      zerolog.Logger
	interval time.Duration

	mu    sync.Mutex
	conns map[string]Conn

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewConnRegistry constructs the registry and starts the background liveness
// sweep. The first sweep runs after one interval, then repeats every
// interval.
func NewConnRegistry(logger zerolog.Logger, sweepInterval time.Duration) *ConnRegistry {
	r := &ConnRegistry{
		log:      logger,
		interval: sweepInterval,
		conns:    make(map[string]Conn),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go r.monitor()
	return r
}

// Add records the connection for userID, replacing any prior entry.
func (r *ConnRegistry) Add(userID string, conn Conn) error {
	if userID == "" || conn == nil {
		return chatErrorf(ErrCodeInvalidArgument, "user id and connection are required")
	}

	r.mu.Lock()
	r.conns[userID] = conn
	total := len(r.conns)
	r.mu.Unlock()

	r.log.Info().Str("user_id", userID).Int("active", total).Msg("client connected")
	return nil
}

// Close closes and removes the connection for userID. An absent id is a
// warned no-op. The entry is gone once removal is attempted, even if the
// transport close fails.
func (r *ConnRegistry) Close(userID string) {
	r.mu.Lock()
	conn, ok := r.conns[userID]
	if ok {
		delete(r.conns, userID)
	}
	total := len(r.conns)
	r.mu.Unlock()

	if !ok {
		r.log.Warn().Str("user_id", userID).Msg("no active connection to close")
		return
	}

	if err := conn.Close(); err != nil {
		r.log.Warn().Err(err).Str("user_id", userID).Msg("closing connection failed")
		return
	}
	r.log.Info().Str("user_id", userID).Int("active", total).Msg("connection closed")
}

// CloseAll closes every tracked connection best-effort and stops the
// background monitor.
func (r *ConnRegistry) CloseAll() {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
	<-r.done

	r.mu.Lock()
	conns := r.conns
	r.conns = make(map[string]Conn)
	r.mu.Unlock()

	for userID, conn := range conns {
		if err := conn.Close(); err != nil {
			r.log.Warn().Err(err).Str("user_id", userID).Msg("closing connection failed")
		}
	}
	r.log.Info().Int("closed", len(conns)).Msg("all connections closed")
}

// Count returns the number of tracked connections.
func (r *ConnRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

func (r *ConnRegistry) monitor() {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.stop:
			return
		}
	}
}

// sweep probes every tracked connection and evicts the dead ones. Probes run
// outside the registry lock: Alive performs a write and may block briefly.
func (r *ConnRegistry) sweep() {
	r.mu.Lock()
	snapshot := make(map[string]Conn, len(r.conns))
	for userID, conn := range r.conns {
		snapshot[userID] = conn
	}
	r.mu.Unlock()

	before := len(snapshot)
	r.log.Debug().Int("active", before).Msg("starting connection check")

	for userID, conn := range snapshot {
		if !conn.Alive() {
			r.Close(userID)
		}
	}

	after := r.Count()
	if before != after {
		r.log.Info().Int("before", before).Int("after", after).Msg("connection check evicted dead connections")
	}
}
