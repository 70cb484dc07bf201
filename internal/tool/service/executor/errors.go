package executor

import (
	"errors"
	"fmt"
)

// ErrEmptyCommand is returned when Run is called without an argv.
var ErrEmptyCommand = errors.New("empty command")

// CommandError represents failures to start or wait on a process.
// A process that ran and exited non-zero is not a CommandError.
type CommandError struct {
	Cmd   string
	Cause error
	Stage string // "start", "execution"
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed at %s: %v", e.Cmd, e.Stage, e.Cause)
}
func (e *CommandError) Unwrap() error { return e.Cause }
