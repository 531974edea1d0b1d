package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Cybiii/chisel-bootcamp/internal/domain/notebook"
	"github.com/Cybiii/chisel-bootcamp/internal/ports"
)

// DefaultCellTimeout bounds each cell when a single notebook is run in place.
const DefaultCellTimeout = 5 * time.Minute

var banner = strings.Repeat("=", 60)

// Service executes one notebook in place, keeping the outputs in the file.
type Service struct {
	executor    ports.NotebookExecutor
	out         io.Writer
	cellTimeout time.Duration
}

// NewService constructs a Service printing progress to out.
// A non-positive cellTimeout selects DefaultCellTimeout.
func NewService(executor ports.NotebookExecutor, out io.Writer, cellTimeout time.Duration) *Service {
	if out == nil {
		out = io.Discard
	}
	if cellTimeout <= 0 {
		cellTimeout = DefaultCellTimeout
	}
	return &Service{
		executor:    executor,
		out:         out,
		cellTimeout: cellTimeout,
	}
}

// Run executes the notebook at path and overwrites it with the executed copy.
// Cell errors do not fail the run; only a failure of the execution service does.
func (s *Service) Run(ctx context.Context, path string) (*notebook.ExecResult, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("notebook %s: %w", path, err)
	}

	fmt.Fprintf(s.out, "Executing notebook: %s\n", path)
	fmt.Fprintln(s.out, banner)

	dir, base := filepath.Split(path)
	result, err := s.executor.Execute(ctx, notebook.ExecRequest{
		WorkDir:     dir,
		Notebook:    base,
		Output:      notebook.OutputTarget{InPlace: true},
		AllowErrors: true,
		CellTimeout: s.cellTimeout,
	})

	fmt.Fprintln(s.out, banner)
	if err != nil {
		fmt.Fprintf(s.out, "✗ Error executing %s\n", path)
		var exitErr *notebook.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintf(s.out, "Exit code: %d\n", exitErr.ExitCode)
		}
		return result, err
	}

	fmt.Fprintf(s.out, "✓ Successfully executed %s\n", path)
	return result, nil
}

// Close releases the underlying executor.
func (s *Service) Close() error {
	return s.executor.Close()
}
