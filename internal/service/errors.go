package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrInvalidOperation   = errors.New("invalid operation")
)

// Error is a domain failure with a message safe to show to the client.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func invalidInput(message string) *Error { return newError(ErrInvalidInput, message) }
func notFound(message string) *Error { return newError(ErrNotFound, message) }
func unauthenticated(message string) *Error { return newError(ErrUnauthenticated, message) }
func userNotFound() *Error { return notFound("User not found") }
func postNotFound() *Error { return notFound("Post not found") }
