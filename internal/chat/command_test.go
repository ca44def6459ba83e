package chat

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *RoomRegistry) {
	t.Helper()
	rooms := NewRoomRegistry(zerolog.Nop())
	d := NewDispatcher(zerolog.Nop(), "/")
	RegisterBuiltins(d, rooms)
	return d, rooms
}

func TestDispatchUnknownCommand(t *testing.T) {
	d, _ := newTestDispatcher(t)
	u, _ := newTestUser("alice")

	err := d.Dispatch(u, "/teleport lobby")
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected unknown-command error, got %v", err)
	}

	// A bare prefix carries no keyword.
	if err := d.Dispatch(u, "/"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected unknown-command error for bare prefix, got %v", err)
	}
}

func TestCreateCommandJoinsCreator(t *testing.T) {
	d, rooms := newTestDispatcher(t)
	alice, aliceConn := newTestUser("alice")

	if err := d.Dispatch(alice, "/create lobby secret"); err != nil {
		t.Fatalf("create: %v", err)
	}

	room, err := rooms.Get("lobby")
	if err != nil {
		t.Fatalf("room not registered: %v", err)
	}
	if alice.Room() != room {
		t.Fatal("creator not joined to the new room")
	}
	mustLine(t, aliceConn, "Joined room successfully!")
}

func TestCreateCommandMissingName(t *testing.T) {
	d, _ := newTestDispatcher(t)
	alice, _ := newTestUser("alice")

	if err := d.Dispatch(alice, "/create"); !errors.Is(err, ErrInvalidUsage) {
		t.Fatalf("expected invalid-usage error, got %v", err)
	}
}

func TestJoinCommandPasswordScenario(t *testing.T) {
	d, _ := newTestDispatcher(t)

	alice, aliceConn := newTestUser("alice")
	bob, _ := newTestUser("bob")

	if err := d.Dispatch(alice, "/create lobby secret"); err != nil {
		t.Fatal(err)
	}

	err := d.Dispatch(bob, "/join lobby wrong")
	if !errors.Is(err, ErrIncorrectPassword) {
		t.Fatalf("expected incorrect-password error, got %v", err)
	}
	if bob.Room() != nil {
		t.Fatal("failed join set bob's current room")
	}

	if err := d.Dispatch(bob, "/join lobby secret"); err != nil {
		t.Fatalf("join with correct password: %v", err)
	}
	mustLine(t, aliceConn, "bob has joined the chat!")
}

func TestJoinCommandUnknownRoom(t *testing.T) {
	d, _ := newTestDispatcher(t)
	alice, _ := newTestUser("alice")

	if err := d.Dispatch(alice, "/join ghost"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected room-not-found error, got %v", err)
	}
}

func TestLeaveCommandRemovesEmptyRoom(t *testing.T) {
	d, rooms := newTestDispatcher(t)
	alice, _ := newTestUser("alice")

	if err := d.Dispatch(alice, "/create lobby"); err != nil {
		t.Fatal(err)
	}
	if err := d.Dispatch(alice, "/leave"); err != nil {
		t.Fatalf("leave: %v", err)
	}

	if alice.Room() != nil {
		t.Fatal("current room not cleared after leave")
	}
	if _, err := rooms.Get("lobby"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("empty room lingered in the registry: %v", err)
	}
}

func TestLeaveCommandKeepsNonEmptyRoom(t *testing.T) {
	d, rooms := newTestDispatcher(t)
	alice, _ := newTestUser("alice")
	bob, _ := newTestUser("bob")

	if err := d.Dispatch(alice, "/create lobby"); err != nil {
		t.Fatal(err)
	}
	if err := d.Dispatch(bob, "/join lobby"); err != nil {
		t.Fatal(err)
	}
	if err := d.Dispatch(alice, "/leave"); err != nil {
		t.Fatal(err)
	}

	room, err := rooms.Get("lobby")
	if err != nil {
		t.Fatalf("room removed while bob is still a member: %v", err)
	}
	if room.memberCount() != 1 {
		t.Fatalf("expected bob alone in the room, got %d members", room.memberCount())
	}
}

func TestLeaveCommandWithoutRoom(t *testing.T) {
	d, _ := newTestDispatcher(t)
	alice, _ := newTestUser("alice")

	if err := d.Dispatch(alice, "/leave"); !errors.Is(err, ErrNotAMember) {
		t.Fatalf("expected not-a-member error, got %v", err)
	}
	if err := d.Dispatch(alice, "/leave now"); !errors.Is(err, ErrInvalidUsage) {
		t.Fatalf("expected invalid-usage error for extra argument, got %v", err)
	}
}

func TestHelpCommand(t *testing.T) {
	d, _ := newTestDispatcher(t)
	alice, aliceConn := newTestUser("alice")

	if err := d.Dispatch(alice, "/help"); err != nil {
		t.Fatalf("help index: %v", err)
	}
	mustLine(t, aliceConn, "Available commands:")
	for _, name := range []string{"/create", "/join", "/leave", "/help"} {
		mustLine(t, aliceConn, name)
	}

	if err := d.Dispatch(alice, "/help join"); err != nil {
		t.Fatalf("help detail: %v", err)
	}
	mustLine(t, aliceConn, "USAGE")
	mustLine(t, aliceConn, "/join <room-name> [room-password]")

	if err := d.Dispatch(alice, "/help bogus"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected unknown-command error, got %v", err)
	}
	if err := d.Dispatch(alice, "/help a b"); !errors.Is(err, ErrInvalidUsage) {
		t.Fatalf("expected invalid-usage error, got %v", err)
	}
}

func TestArgs(t *testing.T) {
	args := Args{"lobby", ""}

	got, err := args.Required(0, "room-name")
	if err != nil || got != "lobby" {
		t.Fatalf("Required(0) = %q, %v", got, err)
	}
	if _, err := args.Required(1, "room-password"); !errors.Is(err, ErrInvalidUsage) {
		t.Fatalf("blank required argument must fail, got %v", err)
	}
	if _, err := args.Required(5, "missing"); !errors.Is(err, ErrInvalidUsage) {
		t.Fatalf("absent required argument must fail, got %v", err)
	}

	if got := args.Optional(1, "fallback"); got != "fallback" {
		t.Fatalf("blank optional argument must resolve to default, got %q", got)
	}
	if got := args.Optional(0, "fallback"); got != "lobby" {
		t.Fatalf("Optional(0) = %q", got)
	}
}
