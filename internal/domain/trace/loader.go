package trace

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/viant/afs"
)

// DefaultMaxSize is the largest trace a Loader accepts unless configured.
const DefaultMaxSize int64 = 64 << 20

// Loader reads traces from any location afs can resolve and parses them.
type Loader struct {
	fs      afs.Service
	maxSize int64
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithMaxSize caps the accepted trace size in bytes. Zero disables the cap.
func WithMaxSize(n int64) LoaderOption {
	return func(l *Loader) {
		l.maxSize = n
	}
}

// NewLoader creates a loader backed by fs.
func NewLoader(fs afs.Service, opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:      fs,
		maxSize: DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the trace at location and groups its tasks.
func (l *Loader) Load(ctx context.Context, location string) ([]TaskGroup, error) {
	data, err := l.Read(ctx, location)
	if err != nil {
		return nil, err
	}

	groups, err := ParseBytes(data)
	if err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) {
			ioErr.Path = location
		}
		return nil, err
	}
	return groups, nil
}

// Read returns the raw bytes of the trace at location.
func (l *Loader) Read(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &IOError{Op: "read", Path: location, Err: err}
	}

	exists, err := l.fs.Exists(ctx, location)
	if err != nil {
		return nil, &IOError{Op: "stat", Path: location, Err: err}
	}
	if !exists {
		return nil, &IOError{Op: "stat", Path: location, Err: os.ErrNotExist}
	}

	if l.maxSize > 0 {
		object, err := l.fs.Object(ctx, location)
		if err != nil {
			return nil, &IOError{Op: "stat", Path: location, Err: err}
		}
		if object.IsDir() {
			return nil, &IOError{Op: "read", Path: location, Err: errors.New("location is a directory")}
		}
		if object.Size() > l.maxSize {
			return nil, &IOError{
				Op:   "read",
				Path: location,
				Err:  fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, object.Size(), l.maxSize),
			}
		}
	}

	data, err := l.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, &IOError{Op: "read", Path: location, Err: err}
	}
	return data, nil
}

// Exists reports whether a trace is present at location.
func (l *Loader) Exists(ctx context.Context, location string) bool {
	ok, err := l.fs.Exists(ctx, location)
	return err == nil && ok
}

// ParseFile reads the trace at location with a fresh loader and groups its tasks.
func ParseFile(ctx context.Context, location string, opts ...LoaderOption) ([]TaskGroup, error) {
	return NewLoader(afs.New(), opts...).Load(ctx, location)
}
