package merge

import (
	"errors"
	"fmt"
)

// ErrNoFiles is returned when Merge is called with an empty list.
var ErrNoFiles = errors.New("no files to merge")

// DurationUnavailableError means the duration of an input could not be read,
// so progress cannot be computed and the job is not started.
type DurationUnavailableError struct {
	Path string
	Err  error
}

func (e *DurationUnavailableError) Error() string {
	return fmt.Sprintf("cannot read duration of %s: %v", e.Path, e.Err)
}

func (e *DurationUnavailableError) Unwrap() error {
	return e.Err
}

// ToolError is a non-zero ffmpeg exit. Diagnostic is everything ffmpeg wrote
// to stderr.
type ToolError struct {
	ExitCode   int
	Diagnostic string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("ffmpeg exited with status %d", e.ExitCode)
}
