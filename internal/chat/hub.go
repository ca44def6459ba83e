package chat

import (
	"time"

	"github.com/rs/zerolog"
)

// HubConfig carries the knobs the core needs from the configuration surface.
type HubConfig struct {
	CommandPrefix string
	SystemPrefix  string
	SweepInterval time.Duration
}

// Hub owns the process-wide shared state: the room registry, the connection
// registry, and the command dispatch table. Transports hand accepted
// connections to ServeConn; everything else stays internal.
type Hub struct {
	log zerolog.Logger

	rooms      *RoomRegistry
	conns      *ConnRegistry
	dispatcher *Dispatcher

	cmdPrefix string
	sysPrefix string
}

// NewHub constructs the registries and dispatch table and registers the
// built-in commands. The connection liveness sweep starts immediately.
func NewHub(logger zerolog.Logger, cfg HubConfig) *Hub {
	h := &Hub{
		log:       logger,
		rooms:     NewRoomRegistry(logger),
		conns:     NewConnRegistry(logger, cfg.SweepInterval),
		cmdPrefix: cfg.CommandPrefix,
		sysPrefix: cfg.SystemPrefix,
	}
	h.dispatcher = NewDispatcher(logger, cfg.CommandPrefix)
	RegisterBuiltins(h.dispatcher, h.rooms)
	return h
}

// ServeConn runs a worker for the connection and blocks until the session
// ends. Transports call this once per accepted connection.
func (h *Hub) ServeConn(conn Conn) {
	newWorker(h, conn).Run()
}

// Connections exposes the connection registry for observability.
func (h *Hub) Connections() *ConnRegistry {
	return h.conns
}

// Shutdown closes every tracked connection and stops background monitoring.
func (h *Hub) Shutdown() {
	h.conns.CloseAll()
}
