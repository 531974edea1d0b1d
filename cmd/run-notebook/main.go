// Command run-notebook executes a single notebook in place with nbconvert,
// keeping cell errors in the executed file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Cybiii/chisel-bootcamp/internal/app/runner"
	"github.com/Cybiii/chisel-bootcamp/internal/config"
	"github.com/Cybiii/chisel-bootcamp/internal/domain/notebook"
)

const usage = `Usage: run-notebook <notebook_name.ipynb>
Example: run-notebook 1_intro_to_scala.ipynb
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, os.Args[1:], config.FromEnv(), os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, cfg config.Config, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "run-notebook: ", 0)

	if len(args) < 1 {
		fmt.Fprint(stdout, usage)
		return 1
	}

	executor, err := cfg.NewExecutor(stdout, stderr)
	if err != nil {
		logger.Printf("failed to initialize executor: %v", err)
		return 1
	}

	service := runner.NewService(executor, stdout, cfg.CellTimeoutOr(runner.DefaultCellTimeout))
	defer func() {
		if cerr := service.Close(); cerr != nil {
			logger.Printf("warning: failed to close executor: %v", cerr)
		}
	}()

	if _, err := service.Run(ctx, args[0]); err != nil {
		var exitErr *notebook.ExitError
		if !errors.As(err, &exitErr) {
			logger.Print(err)
		}
		return 1
	}
	return 0
}
