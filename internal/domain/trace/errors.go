package trace

import (
	"context"
	"errors"
	"fmt"
	"os"
)

var (
	ErrEmptyInput      = errors.New("trace is empty")
	ErrMalformedHeader = errors.New("trace has no header line")
	ErrInvalidEncoding = errors.New("trace is not valid UTF-8")
	ErrTooLarge        = errors.New("trace exceeds size limit")
)

// IOError reports a failure to read or decode a trace.
type IOError struct {
	Op   string // "stat", "read" or "decode"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("trace %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("trace %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsStorageFailure reports whether err came from the storage layer rather
// than from the trace content, a missing file or the caller giving up.
func IsStorageFailure(err error) bool {
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		return false
	}
	switch {
	case errors.Is(ioErr.Err, ErrInvalidEncoding), errors.Is(ioErr.Err, ErrTooLarge):
		return false
	case errors.Is(ioErr.Err, os.ErrNotExist):
		return false
	case errors.Is(ioErr.Err, context.Canceled), errors.Is(ioErr.Err, context.DeadlineExceeded):
		return false
	}
	return true
}
