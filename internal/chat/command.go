package chat

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Handler executes a command on behalf of a user. The handler validates its
// own argument count and shape; dispatch only splits the line.
type Handler func(u *User, args Args) error

// Command pairs a handler with the metadata used to synthesize help text.
type Command struct {
	Name        string
	Description string
	Usage       string
	Run         Handler
}

// Dispatcher routes command lines to registered handlers. Commands are
// registered once at startup; Dispatch is safe for concurrent use afterwards.
type Dispatcher struct {
	log    zerolog.Logger
	prefix string

	commands map[string]Command
	order    []string
}

// NewDispatcher constructs a dispatcher for the given command prefix.
func NewDispatcher(logger zerolog.Logger, prefix string) *Dispatcher {
	return &Dispatcher{
		log:      logger,
		prefix:   prefix,
		commands: make(map[string]Command),
	}
}

// Register adds a command to the dispatch table. Registering a nil handler
// or an empty name panics: the table is wired at startup and a bad entry is
// a programming error.
func (d *Dispatcher) Register(cmd Command) {
	if cmd.Name == "" || cmd.Run == nil {
		panic("chat: command must have a name and a handler")
	}
	if _, dup := d.commands[cmd.Name]; dup {
		panic(fmt.Sprintf("chat: command %q registered twice", cmd.Name))
	}
	d.commands[cmd.Name] = cmd
	d.order = append(d.order, cmd.Name)
}

// Dispatch strips the command prefix, splits the line into keyword and
// positional arguments, and invokes the matching handler.
func (d *Dispatcher) Dispatch(u *User, rawLine string) error {
	fields := strings.Fields(strings.TrimPrefix(rawLine, d.prefix))
	if len(fields) == 0 {
		return chatErrorf(ErrCodeUnknownCommand, "no command given; type %shelp to list commands", d.prefix)
	}

	keyword := fields[0]
	cmd, ok := d.commands[keyword]
	if !ok {
		d.log.Warn().Str("command", keyword).Str("user", u.Name).Msg("unknown command")
		return chatErrorf(ErrCodeUnknownCommand, "unknown command '%s'; type %shelp to list commands", keyword, d.prefix)
	}

	return cmd.Run(u, Args(fields[1:]))
}

// describe sends a command's detailed usage record to the user, one
// system-prefixed section per line.
func (d *Dispatcher) describe(u *User, cmd Command) {
	u.Info("CMD\n\t" + cmd.Name)
	u.Info("USAGE\n\t" + cmd.Usage)
	u.Info("DESCRIPTION\n\t" + cmd.Description)
}

// index sends the keyword and description of every registered command, in
// registration order.
func (d *Dispatcher) index(u *User) {
	u.Info("Available commands:")
	for _, name := range d.order {
		cmd := d.commands[name]
		u.Info(fmt.Sprintf("  %-8s %s", d.prefix+cmd.Name, cmd.Description))
	}
}

// Args are the whitespace-split positional arguments of a command line.
type Args []string

// Required returns the argument at index i, failing with an invalid-usage
// error when it is missing or blank.
func (a Args) Required(i int, name string) (string, error) {
	if i >= len(a) || strings.TrimSpace(a[i]) == "" {
		return "", chatErrorf(ErrCodeInvalidUsage, "missing required argument <%s>", name)
	}
	return a[i], nil
}

// Optional returns the argument at index i, or def when it is missing or
// blank.
func (a Args) Optional(i int, def string) string {
	if i >= len(a) || strings.TrimSpace(a[i]) == "" {
		return def
	}
	return a[i]
}
