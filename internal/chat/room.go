package chat

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Room is a named channel with an optional password gate and a set of member
// users. Membership is a set: no duplicates, no ordering guarantee for
// broadcast.
type Room struct {
	name string
	hash []byte // bcrypt hash of the room password, nil when the room is open

	mu      sync.RWMutex
	members map[*User]struct{}
}

// NewRoom constructs an empty room. A non-empty password is stored as a
// bcrypt hash; the empty password means no gate.
func NewRoom(name, password string) (*Room, error) {
	r := &Room{
		name:    name,
		members: make(map[*User]struct{}),
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash room password: %w", err)
		}
		r.hash = hash
	}
	return r, nil
}

// Name returns the room's registry key.
func (r *Room) Name() string {
	return r.name
}

// Join adds the user to the member set after checking the password gate.
// Re-adding an existing member is a no-op. On first addition the user's
// current-room reference is set, the joiner gets a private confirmation, and
// the rest of the room is notified.
func (r *Room) Join(password string, u *User) error {
	if len(r.hash) > 0 {
		if err := bcrypt.CompareHashAndPassword(r.hash, []byte(password)); err != nil {
			return chatErrorf(ErrCodeIncorrectPassword, "incorrect password for room '%s'", r.name)
		}
	}

	r.mu.Lock()
	if _, ok := r.members[u]; ok {
		r.mu.Unlock()
		return nil
	}
	r.members[u] = struct{}{}
	r.mu.Unlock()

	u.setRoom(r)
	u.Info("Joined room successfully!")
	r.Broadcast(u, fmt.Sprintf("%s has joined the chat!", u.Name))
	return nil
}

// Leave removes the user from the member set, clears the user's current-room
// reference, notifies the remaining members, and confirms privately to the
// departing user.
func (r *Room) Leave(u *User) error {
	r.mu.Lock()
	if _, ok := r.members[u]; !ok {
		r.mu.Unlock()
		return chatErrorf(ErrCodeNotAMember, "you are not a member of room '%s'", r.name)
	}
	delete(r.members, u)
	r.mu.Unlock()

	u.setRoom(nil)
	r.Broadcast(nil, fmt.Sprintf("%s has left the chat!", u.Name))
	u.Info("You've left the current room.")
	return nil
}

// Broadcast delivers msg verbatim to every current member except sender.
// A nil sender means no exclusion, used for system notices. Delivery is
// fire-and-forget per member: one dead connection never blocks the rest.
func (r *Room) Broadcast(sender *User, msg string) {
	r.mu.RLock()
	recipients := make([]*User, 0, len(r.members))
	for member := range r.members {
		if member == sender {
			continue
		}
		recipients = append(recipients, member)
	}
	r.mu.RUnlock()

	// Writes happen outside the lock so a slow socket cannot stall joins.
	for _, member := range recipients {
		member.Send(msg)
	}
}

// Empty reports whether the member set is empty. Callers use it to decide
// room teardown after a leave.
func (r *Room) Empty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members) == 0
}

func (r *Room) memberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}
