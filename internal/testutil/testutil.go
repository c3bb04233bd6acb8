// Package testutil provides trace fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Header is a representative trace header line.
const Header = "Task\tStart\tEnd\tHost\tPID\tUser\tState\tQueue\tPriority\tExit\tDuration\tRead\tWrite\tVirt\tRes\tPeak\tThreads\tCPU\tMemory"

// rowWidth is the number of columns in a complete trace row.
const rowWidth = 19

// Row builds a complete trace row with the given values at their fixed
// columns and filler everywhere else.
func Row(name, duration, cpu, memory string) string {
	cols := make([]string, rowWidth)
	for i := range cols {
		cols[i] = "-"
	}
	cols[0] = name
	cols[10] = duration
	cols[17] = cpu
	cols[18] = memory
	return strings.Join(cols, "\t")
}

// ShortRow builds a row with only the first n columns of Row.
func ShortRow(n int, name, duration, cpu, memory string) string {
	cols := strings.Split(Row(name, duration, cpu, memory), "\t")
	if n < len(cols) {
		cols = cols[:n]
	}
	return strings.Join(cols, "\t")
}

// Trace joins Header and rows with newlines.
func Trace(rows ...string) string {
	return strings.Join(append([]string{Header}, rows...), "\n")
}

// WriteTrace writes content to a file in a per-test directory and returns its path.
func WriteTrace(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// SampleTrace is the two-row Build trace used across tests.
func SampleTrace() string {
	return Trace(
		Row("Build", "120s", "85%", "256MB"),
		Row("Build (2)", "90s", "70%", "128MB"),
	)
}
