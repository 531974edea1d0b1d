// Command runtest executes the course notebooks and checks that each one
// raises exactly the errors recorded in the expectation catalog, stopping at
// the first notebook that does not.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Cybiii/chisel-bootcamp/internal/app/checker"
	"github.com/Cybiii/chisel-bootcamp/internal/app/producer"
	"github.com/Cybiii/chisel-bootcamp/internal/config"
	"github.com/Cybiii/chisel-bootcamp/internal/domain/check"
	"github.com/Cybiii/chisel-bootcamp/internal/infra/ipynb"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, os.Args[1:], config.FromEnv(), os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, cfg config.Config, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "runtest: ", 0)

	// Only a leading --help is an option; every other argument names a notebook.
	if len(args) > 0 && args[0] == "--help" {
		fmt.Fprintln(stdout, "Usage: runtest [notebook_name.ipynb] [notebook_name_2.ipynb] [...]")
		fmt.Fprintln(stdout, "By default, check all notebooks if notebooks are not specified.")
		return 0
	}

	executor, err := cfg.NewExecutor(stdout, stderr)
	if err != nil {
		logger.Printf("failed to initialize executor: %v", err)
		return 1
	}
	defer func() {
		if cerr := executor.Close(); cerr != nil {
			logger.Printf("warning: failed to close executor: %v", cerr)
		}
	}()

	service := checker.NewService(executor, ipynb.Reader{}, checker.Config{
		Diagnostics: stderr,
		CellTimeout: cfg.CellTimeoutOr(checker.DefaultCellTimeout),
	})

	notebooks, err := producer.NewService(service.Catalog(), args)
	if err != nil {
		logger.Print(err)
		return 1
	}

	total := notebooks.Remaining()
	passed := 0
	err = service.Run(ctx, notebooks, func(report check.Report) {
		if report.Passed() {
			passed++
			fmt.Fprintf(stdout, "PASS %s (%d expected errors, %s)\n", report.Notebook, len(report.Expected), report.Duration.Round(time.Millisecond))
			return
		}
		fmt.Fprintf(stdout, "FAIL %s (%s)\n", report.Notebook, report.Duration.Round(time.Millisecond))
	})
	if err != nil {
		logger.Printf("%v", err)
		return 1
	}

	fmt.Fprintf(stdout, "%d/%d notebooks raised the expected errors\n", passed, total)
	return 0
}
