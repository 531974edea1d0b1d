package docker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/docker/docker/client"

	"github.com/Cybiii/chisel-bootcamp/internal/domain/notebook"
	"github.com/Cybiii/chisel-bootcamp/internal/infra/nbconvert"
	"github.com/Cybiii/chisel-bootcamp/internal/ports"
)

// Executor runs nbconvert inside a Docker container with the notebook's
// directory bind-mounted as the container working directory.
type Executor struct {
	engine *containerEngine
	client dockerClient
}

var _ ports.NotebookExecutor = (*Executor)(nil)

// New constructs an Executor connected to the Docker daemon described by the environment.
func New(cfg Config) (*Executor, error) {
	if cfg.Image == "" {
		return nil, fmt.Errorf("docker executor: image is required")
	}

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("docker executor: create client: %w", err)
	}

	return newExecutorWithClient(cli, cfg), nil
}

func newExecutorWithClient(cli dockerClient, cfg Config) *Executor {
	return &Executor{
		engine: newContainerEngine(cli, cfg),
		client: cli,
	}
}

// Execute runs nbconvert for req in a fresh container and waits for it to exit.
func (e *Executor) Execute(ctx context.Context, req notebook.ExecRequest) (*notebook.ExecResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("docker executor: %w", err)
	}
	if !filepath.IsLocal(req.Notebook) {
		return nil, fmt.Errorf("docker executor: notebook %q must be inside the work directory", req.Notebook)
	}

	hostDir, err := absWorkDir(req.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("docker executor: %w", err)
	}

	if err := e.engine.ensureImage(ctx); err != nil {
		return nil, err
	}

	req.Notebook = filepath.ToSlash(req.Notebook)
	cmd := append([]string{e.engine.cfg.Python}, nbconvert.Args(req)...)
	containerID, cleanup, err := e.engine.createContainer(ctx, hostDir, cmd)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	start := time.Now()
	if err := e.engine.start(ctx, containerID); err != nil {
		return nil, err
	}

	status, err := e.engine.waitForExit(ctx, containerID)
	if err != nil {
		if ctx.Err() != nil {
			if stopErr := e.engine.stop(containerID); stopErr != nil {
				return nil, errors.Join(err, stopErr)
			}
		}
		return nil, err
	}
	result := &notebook.ExecResult{
		ExitCode: int(status.StatusCode),
		Duration: time.Since(start),
	}

	if err := e.engine.copyLogs(ctx, containerID); err != nil {
		return nil, err
	}

	if result.ExitCode == 0 {
		return result, nil
	}

	exitErr := &notebook.ExitError{Notebook: req.Notebook, ExitCode: result.ExitCode}
	oom, err := e.engine.oomKilled(ctx, containerID)
	if err != nil {
		return result, errors.Join(exitErr, err)
	}
	if oom {
		exitErr.Reason = "container killed: out of memory"
	}
	return result, exitErr
}

// Close releases the Docker client.
func (e *Executor) Close() error {
	if e.client == nil {
		return nil
	}
	if err := e.client.Close(); err != nil {
		return fmt.Errorf("docker client: %w", err)
	}
	return nil
}

func absWorkDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	return abs, nil
}
