package nbconvert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/Cybiii/chisel-bootcamp/internal/domain/notebook"
	"github.com/Cybiii/chisel-bootcamp/internal/ports"
)

const defaultPython = "python"

// Config describes how to invoke nbconvert on the local machine.
type Config struct {
	// Python is the interpreter that has nbconvert installed.
	Python string
	// Env is appended to the harness environment.
	Env []string
	// Stdout and Stderr receive the service's output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// Executor runs nbconvert as a child process.
type Executor struct {
	cfg Config
}

var _ ports.NotebookExecutor = (*Executor)(nil)

// New constructs an Executor using the provided configuration.
func New(cfg Config) *Executor {
	if cfg.Python == "" {
		cfg.Python = defaultPython
	}
	return &Executor{cfg: cfg}
}

// Execute runs nbconvert for req and waits for it to exit.
func (e *Executor) Execute(ctx context.Context, req notebook.ExecRequest) (*notebook.ExecResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("nbconvert: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.cfg.Python, Args(req)...)
	cmd.Dir = req.WorkDir
	cmd.Stdout = e.cfg.Stdout
	cmd.Stderr = e.cfg.Stderr
	if len(e.cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), e.cfg.Env...)
	}

	start := time.Now()
	err := cmd.Run()
	result := &notebook.ExecResult{Duration: time.Since(start)}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return result, nil
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		return result, &notebook.ExitError{Notebook: req.Notebook, ExitCode: result.ExitCode}
	default:
		return nil, fmt.Errorf("nbconvert: run %s: %w", e.cfg.Python, err)
	}
}

// Close is a no-op; the executor holds no resources between runs.
func (e *Executor) Close() error {
	return nil
}
