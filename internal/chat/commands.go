package chat

// RegisterBuiltins wires the built-in command set into the dispatcher.
func RegisterBuiltins(d *Dispatcher, rooms *RoomRegistry) {
	d.Register(Command{
		Name:        "create",
		Description: "Creates a new chat room and joins it.",
		Usage:       d.prefix + "create <room-name> [room-password]",
		Run: func(u *User, args Args) error {
			name, err := args.Required(0, "room-name")
			if err != nil {
				return err
			}
			password := args.Optional(1, "")

			room, err := rooms.Create(name, password)
			if err != nil {
				return err
			}
			// The creator joins with the password just set, so they are
			// never asked to re-supply it.
			return room.Join(password, u)
		},
	})

	d.Register(Command{
		Name:        "join",
		Description: "Joins an existing chat room.",
		Usage:       d.prefix + "join <room-name> [room-password]",
		Run: func(u *User, args Args) error {
			name, err := args.Required(0, "room-name")
			if err != nil {
				return err
			}
			password := args.Optional(1, "")

			room, err := rooms.Get(name)
			if err != nil {
				return err
			}
			return room.Join(password, u)
		},
	})

	d.Register(Command{
		Name:        "leave",
		Description: "Leaves the current chat room.",
		Usage:       d.prefix + "leave",
		Run: func(u *User, args Args) error {
			if len(args) != 0 {
				return chatErrorf(ErrCodeInvalidUsage, "%sleave takes no arguments", d.prefix)
			}
			room := u.Room()
			if room == nil {
				return chatErrorf(ErrCodeNotAMember, "join a room to use %sleave", d.prefix)
			}
			return leaveAndCleanup(rooms, room, u)
		},
	})

	d.Register(Command{
		Name:        "help",
		Description: "Displays help information for commands.",
		Usage:       d.prefix + "help [command]",
		Run: func(u *User, args Args) error {
			if len(args) > 1 {
				return chatErrorf(ErrCodeInvalidUsage, "usage: %shelp [command]", d.prefix)
			}
			if len(args) == 0 {
				d.index(u)
				return nil
			}
			cmd, ok := d.commands[args[0]]
			if !ok {
				return chatErrorf(ErrCodeUnknownCommand, "unknown command '%s'", args[0])
			}
			d.describe(u, cmd)
			return nil
		},
	})
}

// leaveAndCleanup removes the user from the room and, when the room becomes
// empty, removes the room from the registry. The two steps are individually
// atomic but not one transaction; see RoomRegistry.
func leaveAndCleanup(rooms *RoomRegistry, room *Room, u *User) error {
	if err := room.Leave(u); err != nil {
		return err
	}
	if room.Empty() {
		rooms.Remove(room.Name())
	}
	return nil
}
