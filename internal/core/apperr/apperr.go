// Package apperr defines the error kinds shared by services and adapters.
// Transport layers map kinds to status codes with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrBadInput        = errors.New("bad input")
	ErrConflict        = errors.New("conflict")
)

// Error carries a client-safe message and the kind it belongs to.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// NotFound reports a missing subject, e.g. NotFound("user") -> "user not found".
func NotFound(subject string) error {
	return &Error{Kind: ErrNotFound, Msg: subject + " not found"}
}

func Forbidden(msg string) error {
	return &Error{Kind: ErrForbidden, Msg: msg}
}

func Unauthenticated(msg string) error {
	return &Error{Kind: ErrUnauthenticated, Msg: msg}
}

func BadInput(msg string) error {
	return &Error{Kind: ErrBadInput, Msg: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: ErrConflict, Msg: msg}
}

// Message returns the client-safe text of err when it is an *Error, or fallback otherwise.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return fallback
}
