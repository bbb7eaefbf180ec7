package apperror

import (
	"errors"
	"fmt"
)

// Client-side failures. Anything not wrapping one of these is a server error.
var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrInvalidName      = errors.New("invalid player name")
	ErrInvalidBoardSize = errors.New("unsupported board size")
	ErrCannotSelect     = errors.New("scenario cannot be selected")
	ErrGameAlreadyWon   = errors.New("game has already been won")
	ErrNotGameMember    = errors.New("player is not part of the game")
)

// Error is a client error whose Message is safe to show to the player verbatim.
type Error struct {
	Kind    error
	Message string
}

func New(kind error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

func (that *Error) Error() string {
	return that.Message
}

func (that *Error) Unwrap() error {
	return that.Kind
}

// AsClient returns the client error wrapped somewhere in err, if any.
func AsClient(err error) (*Error, bool) {
	var clientErr *Error
	if errors.As(err, &clientErr) {
		return clientErr, true
	}

	return nil, false
}
