package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Cybiii/chisel-bootcamp/internal/infra/docker"
	"github.com/Cybiii/chisel-bootcamp/internal/infra/nbconvert"
	"github.com/Cybiii/chisel-bootcamp/internal/ports"
)

// Backend names where nbconvert runs.
type Backend string

const (
	BackendLocal  Backend = "local"
	BackendDocker Backend = "docker"
)

const (
	defaultPython        = "python"
	defaultDockerImage   = "ucbbar/chisel-bootcamp"
	defaultDockerWorkdir = "/home/bootcamp/work"
)

// Config is the ambient configuration shared by both commands.
type Config struct {
	Backend       Backend
	Python        string
	DockerImage   string
	DockerWorkdir string
	DockerUser    string
	DockerMemory  int64
	// CellTimeout overrides the command's own per-cell timeout when positive.
	CellTimeout time.Duration
}

// FromEnv reads the configuration from the process environment.
func FromEnv() Config {
	return Load(os.Getenv)
}

// Load reads the configuration through getenv. Invalid values fall back to defaults.
func Load(getenv func(string) string) Config {
	return Config{
		Backend:       parseBackend(getenv("NBH_BACKEND")),
		Python:        orDefault(getenv("NBH_PYTHON"), defaultPython),
		DockerImage:   orDefault(getenv("NBH_DOCKER_IMAGE"), defaultDockerImage),
		DockerWorkdir: orDefault(getenv("NBH_DOCKER_WORKDIR"), defaultDockerWorkdir),
		DockerUser:    getenv("NBH_DOCKER_USER"),
		DockerMemory:  parseBytes(getenv("NBH_DOCKER_MEMORY")),
		CellTimeout:   parseDuration(getenv("NBH_CELL_TIMEOUT"), 0),
	}
}

// CellTimeoutOr returns the configured cell timeout, or fallback when unset.
func (c Config) CellTimeoutOr(fallback time.Duration) time.Duration {
	if c.CellTimeout > 0 {
		return c.CellTimeout
	}
	return fallback
}

// NewExecutor builds the notebook executor selected by the configuration.
// The service's output is forwarded to stdout and stderr.
func (c Config) NewExecutor(stdout, stderr io.Writer) (ports.NotebookExecutor, error) {
	switch c.Backend {
	case BackendLocal:
		return nbconvert.New(nbconvert.Config{
			Python: c.Python,
			Stdout: stdout,
			Stderr: stderr,
		}), nil
	case BackendDocker:
		return docker.New(docker.Config{
			Image:            c.DockerImage,
			Workdir:          c.DockerWorkdir,
			Python:           c.Python,
			User:             c.DockerUser,
			MemoryLimitBytes: c.DockerMemory,
			Stdout:           stdout,
			Stderr:           stderr,
		})
	default:
		return nil, fmt.Errorf("unknown backend %q", c.Backend)
	}
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func parseBackend(raw string) Backend {
	switch Backend(strings.ToLower(strings.TrimSpace(raw))) {
	case BackendDocker:
		return BackendDocker
	default:
		return BackendLocal
	}
}

// parseDuration accepts Go durations ("90s") or a bare number of seconds.
func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs <= 0 {
			return fallback
		}
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseBytes(raw string) int64 {
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}
