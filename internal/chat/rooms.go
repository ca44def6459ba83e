package chat

import (
	"sync"

	"github.com/rs/zerolog"
)

// RoomRegistry tracks every live room by name. At most one room per name
// exists at any time; create and remove are atomic with respect to
// concurrent callers on the same name.
//
// "Leave the room" and "remove it if now empty" are two separate atomic
// steps, not one transaction: another worker may re-create a just-emptied
// name between them. That race is accepted for a best-effort chat service.
type RoomRegistry struct {
	log zerolog.Logger

	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewRoomRegistry constructs an empty registry.
func NewRoomRegistry(logger zerolog.Logger) *RoomRegistry {
	return &RoomRegistry{
		log:   logger,
		rooms: make(map[string]*Room),
	}
}

// Create constructs a new empty room and inserts it. It fails with
// ErrRoomExists when the name is already taken; no concurrent Create for the
// same name may succeed once one has.
func (rr *RoomRegistry) Create(name, password string) (*Room, error) {
	room, err := NewRoom(name, password)
	if err != nil {
		return nil, err
	}

	rr.mu.Lock()
	defer rr.mu.Unlock()
	if _, exists := rr.rooms[name]; exists {
		return nil, chatErrorf(ErrCodeRoomExists, "room '%s' already exists", name)
	}
	rr.rooms[name] = room

	rr.log.Info().Str("room", name).Msg("room created")
	return room, nil
}

// Get returns the live room for name, shared not copied.
func (rr *RoomRegistry) Get(name string) (*Room, error) {
	rr.mu.RLock()
	room, ok := rr.rooms[name]
	rr.mu.RUnlock()
	if !ok {
		rr.log.Debug().Str("room", name).Msg("room not found")
		return nil, chatErrorf(ErrCodeRoomNotFound, "room '%s' not found", name)
	}
	return room, nil
}

// Remove deletes the room by name. Removing an absent name is a logged
// no-op, not an error. Remove does not drain or notify members; callers
// invoke it only after confirming the room is empty.
func (rr *RoomRegistry) Remove(name string) {
	rr.mu.Lock()
	_, ok := rr.rooms[name]
	if ok {
		delete(rr.rooms, name)
	}
	rr.mu.Unlock()

	if !ok {
		rr.log.Warn().Str("room", name).Msg("cannot remove room: does not exist")
		return
	}
	rr.log.Info().Str("room", name).Msg("room removed")
}
