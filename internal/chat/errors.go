package chat

import "fmt"

// Error codes for domain errors.
const (
	ErrCodeInvalidUsage      = "invalid_usage"
	ErrCodeUnknownCommand    = "unknown_command"
	ErrCodeRoomNotFound      = "room_not_found"
	ErrCodeRoomExists        = "room_already_exists"
	ErrCodeIncorrectPassword = "incorrect_password"
	ErrCodeNotAMember        = "not_a_member"
	ErrCodeInvalidArgument   = "invalid_argument"
)

var (
	ErrInvalidUsage      = &ChatError{Code: ErrCodeInvalidUsage, Message: "invalid usage"}
	ErrUnknownCommand    = &ChatError{Code: ErrCodeUnknownCommand, Message: "unknown command"}
	ErrRoomNotFound      = &ChatError{Code: ErrCodeRoomNotFound, Message: "room not found"}
	ErrRoomExists        = &ChatError{Code: ErrCodeRoomExists, Message: "room already exists"}
	ErrIncorrectPassword = &ChatError{Code: ErrCodeIncorrectPassword, Message: "incorrect room password"}
	ErrNotAMember        = &ChatError{Code: ErrCodeNotAMember, Message: "not a member of the room"}
	ErrInvalidArgument   = &ChatError{Code: ErrCodeInvalidArgument, Message: "invalid argument"}
)

// ChatError wraps a code and human-readable message. Errors raised while
// handling one client's input never leave the worker boundary; the message is
// what the client sees.
type ChatError struct {
	Code    string
	Message string
}

func (e *ChatError) Error() string {
	return e.Message
}

// Is matches any ChatError carrying the same code, so callers can test
// errors.Is(err, ErrRoomNotFound) against instances built with chatErrorf.
func (e *ChatError) Is(target error) bool {
	t, ok := target.(*ChatError)
	return ok && t.Code == e.Code
}

func chatErrorf(code, format string, args ...any) *ChatError {
	return &ChatError{Code: code, Message: fmt.Sprintf(format, args...)}
}
