package docker

import (
	"io"
	"os"
	"strconv"
)

const (
	defaultWorkdir = "/home/bootcamp/work"
	defaultPython  = "python"
)

// Config describes how to run nbconvert inside a container.
type Config struct {
	// Image must have Jupyter and the notebook kernels installed.
	Image string
	// Workdir is where the notebook directory is mounted inside the container.
	Workdir string
	// Python is the interpreter inside the image.
	Python string
	// User runs the container process as uid[:gid]. Empty selects the harness
	// user so files created in the mounted directory stay writable.
	User string
	// MemoryLimitBytes caps container memory. Zero means no limit.
	MemoryLimitBytes int64
	// Stdout and Stderr receive the service's logs once it exits. Nil discards them.
	Stdout io.Writer
	Stderr io.Writer
}

func (c Config) withDefaults() Config {
	if c.Workdir == "" {
		c.Workdir = defaultWorkdir
	}
	if c.Python == "" {
		c.Python = defaultPython
	}
	if c.User == "" {
		c.User = hostUser()
	}
	if c.MemoryLimitBytes < 0 {
		c.MemoryLimitBytes = 0
	}
	if c.Stdout == nil {
		c.Stdout = io.Discard
	}
	if c.Stderr == nil {
		c.Stderr = io.Discard
	}
	return c
}

// hostUser returns "uid:gid" of the current process, or "" where the
// platform has no numeric ids.
func hostUser() string {
	uid, gid := os.Getuid(), os.Getgid()
	if uid < 0 || gid < 0 {
		return ""
	}
	return strconv.Itoa(uid) + ":" + strconv.Itoa(gid)
}
