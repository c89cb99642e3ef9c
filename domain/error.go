package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a core error so the transport layer can map it to a
// status code without string matching.
type ErrorKind string

const (
	ErrorKindValidation ErrorKind = "validation"
	ErrorKindNotFound   ErrorKind = "not_found"
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *Error {
	return &Error{Kind: ErrorKindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) *Error {
	return &Error{Kind: ErrorKindNotFound, Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var domainErr *Error
	return errors.As(err, &domainErr) && domainErr.Kind == ErrorKindValidation
}

func IsNotFound(err error) bool {
	var domainErr *Error
	return errors.As(err, &domainErr) && domainErr.Kind == ErrorKindNotFound
}
