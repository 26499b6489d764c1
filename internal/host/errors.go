package host

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSupported marks operations a virtual host refuses to perform.
	ErrNotSupported = errors.New("operation not supported in this host")
	// ErrDisposed is returned by every call made after Dispose.
	ErrDisposed = errors.New("host: system disposed")
)

// UnsupportedOperationError names the refused operation.
type UnsupportedOperationError struct {
	Op string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("host: %s: %v", e.Op, ErrNotSupported)
}

// Unwrap lets errors.Is match ErrNotSupported.
func (e *UnsupportedOperationError) Unwrap() error { return ErrNotSupported }

func unsupported(op string) error {
	return &UnsupportedOperationError{Op: op}
}
