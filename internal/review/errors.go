package review

import "errors"

var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
)

// Error carries a user-facing message and one of the sentinel kinds above,
// so callers can map it with errors.Is and still show Msg as-is.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func badRequest(msg string) error {
	return &Error{Kind: ErrBadRequest, Msg: msg}
}

func notFound(msg string) error {
	return &Error{Kind: ErrNotFound, Msg: msg}
}
