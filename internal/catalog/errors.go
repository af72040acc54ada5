package catalog

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateName = errors.New("product name already exists")
	ErrInvalidInput  = errors.New("invalid input")
)

// InputError keeps the human-readable message while staying matchable
// with errors.Is(err, ErrInvalidInput).
type InputError struct {
	msg string
}

func (e *InputError) Error() string { return e.msg }

func (e *InputError) Unwrap() error { return ErrInvalidInput }

func invalid(msg string) error { return &InputError{msg: msg} }
