package notebook

import (
	"fmt"
	"time"
)

// OutputTarget selects where the execution service writes the executed notebook.
//
// A zero value OutputTarget is invalid: either InPlace must be set or Name
// must name a file in the request's working directory.
type OutputTarget struct {
	InPlace bool
	Name    string
}

// ExecRequest describes a single invocation of the notebook execution service.
type ExecRequest struct {
	// WorkDir is the directory the service runs in. Empty means the current directory.
	WorkDir string
	// Notebook is the notebook path, relative to WorkDir.
	Notebook string
	Output   OutputTarget
	// AllowErrors keeps executing past cells that raise.
	AllowErrors bool
	// CellTimeout bounds each cell independently. Zero leaves the service default.
	CellTimeout time.Duration
}

// Validate checks that the request can be handed to an executor.
func (r ExecRequest) Validate() error {
	if r.Notebook == "" {
		return fmt.Errorf("notebook path is required")
	}
	if r.Output.InPlace && r.Output.Name != "" {
		return fmt.Errorf("output cannot be both in place and %q", r.Output.Name)
	}
	if !r.Output.InPlace && r.Output.Name == "" {
		return fmt.Errorf("output target is required")
	}
	if r.CellTimeout < 0 {
		return fmt.Errorf("cell timeout must not be negative, got %s", r.CellTimeout)
	}
	return nil
}

// ExecResult captures the outcome of one service invocation.
type ExecResult struct {
	ExitCode int
	Duration time.Duration
}

// ExitError is returned when the execution service itself exits with a failure
// status. Cell errors tolerated through AllowErrors never produce an ExitError.
type ExitError struct {
	Notebook string
	ExitCode int
	// Reason optionally explains the exit, e.g. an out-of-memory kill.
	Reason string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("execute %s: service exited with status %d", e.Notebook, e.ExitCode)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}
