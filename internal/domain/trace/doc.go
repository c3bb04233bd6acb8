// Package trace parses tab-separated execution traces and groups repeated
// task instances by base name.
//
// A trace starts with a header line that is skipped without validation. Every
// following line is one task row; fields are read by fixed column index:
//
//	0   task name
//	10  duration
//	17  CPU percentage
//	18  memory
//
// Rows whose names differ only by a trailing repetition marker such as
// " (2)" collapse into one TaskGroup. Groups and the tasks inside them keep
// the order in which they first appear in the input.
//
// Example Usage:
//
//	groups, err := trace.Parse(content)
//	if errors.Is(err, trace.ErrEmptyInput) {
//	    // nothing to show
//	}
//
//	loader := trace.NewLoader(afs.New())
//	groups, err = loader.Load(ctx, "/data/trace.txt")
package trace
