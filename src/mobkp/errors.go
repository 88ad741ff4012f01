package mobkp

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrExternalProcess   = errors.New("external process failure")
	ErrMalformedInstance = errors.New("malformed instance file")
	ErrIO                = errors.New("i/o failure")
)

// ParameterError reports which request field failed validation.
type ParameterError struct {
	Field  string
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}

func (e *ParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

func invalidParameter(field, format string, args ...any) error {
	return &ParameterError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func malformed(path, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedInstance, path, fmt.Sprintf(format, args...))
}

func ioFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
}

// Classify maps err onto one of the sentinel kinds, or nil when it matches none.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidParameter):
		return ErrInvalidParameter
	case errors.Is(err, ErrExternalProcess):
		return ErrExternalProcess
	case errors.Is(err, ErrMalformedInstance):
		return ErrMalformedInstance
	case errors.Is(err, ErrIO):
		return ErrIO
	}
	var perr *fs.PathError
	if errors.As(err, &perr) {
		return ErrIO
	}
	return nil
}
