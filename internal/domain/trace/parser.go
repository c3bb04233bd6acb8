package trace

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
)

// Fixed column positions in a trace row.
const (
	colName     = 0
	colDuration = 10
	colCPU      = 17
	colMemory   = 18
)

const defaultCPU = "0"

var repetitionSuffix = regexp.MustCompile(` \(\d+\)$`)

// BaseName strips one trailing " (N)" repetition marker from name.
func BaseName(name string) string {
	if loc := repetitionSuffix.FindStringIndex(name); loc != nil {
		return name[:loc[0]]
	}
	return name
}

// Parse groups the task rows of a trace by base name.
func Parse(content string) ([]TaskGroup, error) {
	content = strings.TrimSpace(strings.TrimPrefix(content, "\ufeff"))
	if content == "" {
		return nil, ErrEmptyInput
	}
	return parseLines(splitLines(content))
}

// ParseBytes validates that data is UTF-8 and parses it.
func ParseBytes(data []byte) ([]TaskGroup, error) {
	if !utf8.Valid(data) {
		return nil, &IOError{Op: "decode", Err: encodingError(data)}
	}
	return Parse(string(data))
}

func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func parseLines(lines []string) ([]TaskGroup, error) {
	if len(lines) == 0 {
		return nil, ErrMalformedHeader
	}
	rows := lines[1:]

	groups := make([]TaskGroup, 0)
	index := make(map[string]int)
	for _, row := range rows {
		task := parseRow(row)
		base := BaseName(task.Name)

		i, ok := index[base]
		if !ok {
			i = len(groups)
			index[base] = i
			groups = append(groups, TaskGroup{BaseName: base})
		}
		groups[i].Tasks = append(groups[i].Tasks, task)
	}
	return groups, nil
}

func parseRow(row string) Task {
	cols := strings.Split(row, "\t")

	cpu := strings.TrimSuffix(column(cols, colCPU), "%")
	if cpu == "" {
		cpu = defaultCPU
	}

	return Task{
		Name:     column(cols, colName),
		Duration: column(cols, colDuration),
		Memory:   column(cols, colMemory),
		CPU:      cpu,
	}
}

// column returns the trimmed value at i, or "" when the row is too short.
func column(cols []string, i int) string {
	if i >= len(cols) {
		return ""
	}
	return strings.TrimSpace(cols[i])
}

func encodingError(data []byte) error {
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil || result.Charset == "" {
		return ErrInvalidEncoding
	}
	return fmt.Errorf("%w (looks like %s)", ErrInvalidEncoding, strings.ToLower(result.Charset))
}
