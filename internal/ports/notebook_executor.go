package ports

import (
	"context"

	"github.com/Cybiii/chisel-bootcamp/internal/domain/notebook"
)

// NotebookExecutor runs a notebook through an external execution service.
//
// Implementations return a *notebook.ExitError when the service itself fails.
// Errors raised by cells are tolerated when the request allows them and are
// only visible in the executed document.
type NotebookExecutor interface {
	Execute(ctx context.Context, req notebook.ExecRequest) (*notebook.ExecResult, error)
	Close() error
}
