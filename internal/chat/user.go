package chat

import (
	"sync"

	"github.com/google/uuid"
)

// User is the identity for one authenticated session. It owns its connection
// for the session lifetime and is a member of at most one room at a time.
type User struct {
	ID   string
	Name string

	conn      Conn
	sysPrefix string

	mu   sync.Mutex
	room *Room
}

// NewUser constructs a user with a fresh session id.
func NewUser(name string, conn Conn, sysPrefix string) *User {
	return &User{
		ID:        "user-" + uuid.NewString()[:8],
		Name:      name,
		conn:      conn,
		sysPrefix: sysPrefix,
	}
}

// Room returns the user's current room, nil when unaffiliated.
func (u *User) Room() *Room {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.room
}

func (u *User) setRoom(r *Room) {
	u.mu.Lock()
	u.room = r
	u.mu.Unlock()
}

// Send writes a raw chat line to the user's connection. Write failures are
// swallowed; broadcast delivery is best-effort per recipient.
func (u *User) Send(line string) {
	_ = u.conn.WriteLine(line)
}

// Info writes a system-prefixed informational line to the user.
func (u *User) Info(msg string) {
	_ = u.conn.WriteLine(u.sysPrefix + " " + msg)
}
