package checker

import (
	"fmt"
	"os"
	"path/filepath"
)

// enterDir makes dir the process working directory and returns a function
// that restores the previous one. The restore function must always be called.
func enterDir(dir string) (func() error, error) {
	if dir == "" || filepath.Clean(dir) == "." {
		return func() error { return nil }, nil
	}

	original, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return nil, fmt.Errorf("enter notebook directory: %w", err)
	}

	return func() error {
		if err := os.Chdir(original); err != nil {
			return fmt.Errorf("restore working directory %s: %w", original, err)
		}
		return nil
	}, nil
}

// createScratch reserves a uniquely named notebook file in dir. The file is
// closed straight away so the execution service can replace it.
func createScratch(dir string) (string, func() error, error) {
	f, err := os.CreateTemp(dir, "tmp*.ipynb")
	if err != nil {
		return "", nil, fmt.Errorf("create scratch notebook: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, fmt.Errorf("close scratch notebook: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = os.Remove(path)
		return "", nil, fmt.Errorf("resolve scratch notebook: %w", err)
	}

	remove := func() error {
		if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove scratch notebook: %w", err)
		}
		return nil
	}
	return abs, remove, nil
}
