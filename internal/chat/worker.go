package chat

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 8
)

// Worker is the per-client control loop. One instance runs per accepted
// connection, moving through Authenticating, Welcomed, Listening, and
// Closed. Everything a misbehaving client can cause stays on its own
// connection; no error here ever reaches another worker.
type Worker struct {
	hub  *Hub
	conn Conn
	log  zerolog.Logger

	user *User
}

func newWorker(hub *Hub, conn Conn) *Worker {
	return &Worker{
		hub:  hub,
		conn: conn,
		log:  hub.log,
	}
}

// Run drives the worker to completion. It returns when the connection
// reaches end-of-stream, fails, or is torn down by the registry.
func (w *Worker) Run() {
	defer w.close()

	if err := w.authenticate(); err != nil {
		w.log.Debug().Err(err).Msg("client disconnected before authenticating")
		return
	}

	_ = w.conn.WriteLine(welcomeBanner(w.hub.cmdPrefix, w.hub.sysPrefix))
	w.listen()
}

// authenticate prompts for a username until one passes validation, then
// constructs the user and registers its connection. The retry loop is
// unbounded; only a disconnect ends it.
func (w *Worker) authenticate() error {
	w.info("Please enter your username:")
	for {
		line, err := w.conn.ReadLine()
		if err != nil {
			return err
		}

		username := strings.TrimSpace(line)
		if reason := validateUsername(username); reason != "" {
			w.info(reason)
			w.info("Please try again:")
			continue
		}

		user := NewUser(username, w.conn, w.hub.sysPrefix)
		if err := w.hub.conns.Add(user.ID, w.conn); err != nil {
			return err
		}
		w.user = user
		w.log = w.log.With().Str("user_id", user.ID).Str("user", user.Name).Logger()
		w.log.Info().Msg("user authenticated")
		return nil
	}
}

// listen reads lines until end-of-stream or transport failure. Blank lines
// are skipped, command-prefix lines are dispatched, and everything else is
// chat text for the user's current room.
func (w *Worker) listen() {
	for {
		line, err := w.conn.ReadLine()
		if err != nil {
			w.log.Debug().Err(err).Msg("read loop ended")
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, w.hub.cmdPrefix) {
			if err := w.hub.dispatcher.Dispatch(w.user, line); err != nil {
				w.info(err.Error())
			}
			continue
		}

		if room := w.user.Room(); room != nil {
			room.Broadcast(w.user, fmt.Sprintf("%s:> %s", w.user.Name, line))
		} else {
			w.info("Join a room to send a message")
		}
	}
}

// close tears down the session: the user leaves its current room (with
// empty-room cleanup) and the connection is removed from the registry. The
// auto-leave on abrupt disconnect keeps rooms free of dead members.
func (w *Worker) close() {
	if w.user == nil {
		_ = w.conn.Close()
		return
	}

	if room := w.user.Room(); room != nil {
		if err := leaveAndCleanup(w.hub.rooms, room, w.user); err != nil {
			w.log.Warn().Err(err).Str("room", room.Name()).Msg("leaving room on disconnect failed")
		}
	}
	w.hub.conns.Close(w.user.ID)
	w.log.Info().Msg("session closed")
}

func (w *Worker) info(msg string) {
	_ = w.conn.WriteLine(w.hub.sysPrefix + " " + msg)
}

func validateUsername(username string) string {
	if username == "" {
		return "Username cannot be empty"
	}
	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		return fmt.Sprintf("Username length must be between %d and %d characters", usernameMinLen, usernameMaxLen)
	}
	return ""
}

func welcomeBanner(cmdPrefix, sysPrefix string) string {
	return fmt.Sprintf(`%[1]s Welcome to the chat-room application!
%[1]s Here's how you can get started:
	- Type %[2]screate to create a new room
	- Usage: %[2]screate <room-name> [room-password]

	- Type %[2]sjoin to join an existing room
	- Usage: %[2]sjoin <room-name> [room-password]

%[1]s Need more help?
	- Type %[2]shelp to see all commands.
	- Type %[2]shelp <command-name> for details about a specific command.`, sysPrefix, cmdPrefix)
}
