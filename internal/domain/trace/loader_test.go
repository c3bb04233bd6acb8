package trace

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/GriffinCanCode/tracegroups/internal/testutil"
)

func TestLoaderLoad(t *testing.T) {
	path := testutil.WriteTrace(t, testutil.SampleTrace())
	loader := NewLoader(afs.New())

	groups, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Build", groups[0].BaseName)
	assert.Equal(t, []string{"Build", "Build (2)"}, taskNames(groups[0]))
}

func TestLoaderNotFound(t *testing.T) {
	loader := NewLoader(afs.New())
	path := t.TempDir() + "/missing.txt"

	groups, err := loader.Load(context.Background(), path)
	assert.Nil(t, groups)
	assert.ErrorIs(t, err, os.ErrNotExist)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "stat", ioErr.Op)
	assert.Equal(t, path, ioErr.Path)
	assert.False(t, IsStorageFailure(err))
}

func TestLoaderEmptyFile(t *testing.T) {
	path := testutil.WriteTrace(t, "  \n\n")

	_, err := NewLoader(afs.New()).Load(context.Background(), path)
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.False(t, IsStorageFailure(err))
}

func TestLoaderInvalidEncoding(t *testing.T) {
	path := testutil.WriteTrace(t, testutil.Header+"\n\xff\xfe\xfd\tbroken\n")

	_, err := NewLoader(afs.New()).Load(context.Background(), path)
	assert.ErrorIs(t, err, ErrInvalidEncoding)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, path, ioErr.Path)
	assert.Contains(t, err.Error(), path)
}

func TestLoaderMaxSize(t *testing.T) {
	path := testutil.WriteTrace(t, testutil.SampleTrace())

	_, err := NewLoader(afs.New(), WithMaxSize(16)).Load(context.Background(), path)
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.False(t, IsStorageFailure(err))

	groups, err := NewLoader(afs.New(), WithMaxSize(0)).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, groups, 1)
}

func TestLoaderDirectory(t *testing.T) {
	_, err := NewLoader(afs.New()).Load(context.Background(), t.TempDir())

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "read", ioErr.Op)
	assert.True(t, IsStorageFailure(err))
}

func TestLoaderCancelledContext(t *testing.T) {
	path := testutil.WriteTrace(t, testutil.SampleTrace())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(afs.New()).Load(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsStorageFailure(err))
}

func TestLoaderMemoryLocation(t *testing.T) {
	fs := afs.New()
	ctx := context.Background()
	location := "mem://localhost/traces/trace.txt"

	err := fs.Upload(ctx, location, file.DefaultFileOsMode, strings.NewReader(testutil.SampleTrace()))
	require.NoError(t, err)

	loader := NewLoader(fs)
	assert.True(t, loader.Exists(ctx, location))

	groups, err := loader.Load(ctx, location)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Tasks, 2)
}

func TestParseFile(t *testing.T) {
	path := testutil.WriteTrace(t, strings.ReplaceAll(testutil.SampleTrace(), "\n", "\r\n"))

	groups, err := ParseFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "70", groups[0].Tasks[1].CPU)
}

func TestParseFileWithOptions(t *testing.T) {
	path := testutil.WriteTrace(t, testutil.SampleTrace())

	_, err := ParseFile(context.Background(), path, WithMaxSize(8))
	assert.ErrorIs(t, err, ErrTooLarge)
}
