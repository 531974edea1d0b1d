package checker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Cybiii/chisel-bootcamp/internal/domain/check"
	"github.com/Cybiii/chisel-bootcamp/internal/domain/notebook"
	"github.com/Cybiii/chisel-bootcamp/internal/ports"
)

// DefaultCellTimeout bounds each cell during a batch check.
const DefaultCellTimeout = 60 * time.Second

// Config tunes a Service. Zero fields take their defaults.
type Config struct {
	// Catalog defaults to check.DefaultCatalog.
	Catalog *check.Catalog
	// Diagnostics receives mismatch reports. Defaults to os.Stderr.
	Diagnostics io.Writer
	// CellTimeout defaults to DefaultCellTimeout.
	CellTimeout time.Duration
}

// Service checks notebooks against the expectation catalog, one at a time.
type Service struct {
	executor    ports.NotebookExecutor
	reader      ports.DocumentReader
	catalog     *check.Catalog
	diagnostics io.Writer
	cellTimeout time.Duration
}

// NewService constructs a Service that runs notebooks through executor and
// reads the executed copies back with reader.
func NewService(executor ports.NotebookExecutor, reader ports.DocumentReader, cfg Config) *Service {
	if cfg.Catalog == nil {
		cfg.Catalog = check.DefaultCatalog()
	}
	if cfg.Diagnostics == nil {
		cfg.Diagnostics = os.Stderr
	}
	if cfg.CellTimeout <= 0 {
		cfg.CellTimeout = DefaultCellTimeout
	}
	return &Service{
		executor:    executor,
		reader:      reader,
		catalog:     cfg.Catalog,
		diagnostics: cfg.Diagnostics,
		cellTimeout: cfg.CellTimeout,
	}
}

// Catalog returns the expectation catalog the service checks against.
func (s *Service) Catalog() *check.Catalog {
	return s.catalog
}

// Run checks every notebook the producer yields, stopping at the first
// notebook that fails to run or does not match its expectations.
//
// When onReport is provided it is invoked after every notebook, including the
// failing one.
func (s *Service) Run(ctx context.Context, producer ports.NotebookProducer, onReport func(check.Report)) error {
	for {
		name, err := producer.NextNotebook(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get next notebook: %w", err)
		}

		report, err := s.CheckNotebook(ctx, name)
		if onReport != nil {
			onReport(report)
		}
		if err != nil {
			return err
		}
	}
}

// CheckNotebook executes one notebook into a scratch copy and compares the
// errors its cells raised with the catalog. A mismatch is written to the
// diagnostics stream and returned as a *check.MismatchError.
func (s *Service) CheckNotebook(ctx context.Context, name string) (check.Report, error) {
	report := check.Report{Notebook: name}

	expected, err := s.catalog.Lookup(name)
	if err != nil {
		report.Err = err
		return report, err
	}
	report.Expected = expected

	start := time.Now()
	actual, err := s.collectErrors(ctx, name)
	report.Duration = time.Since(start)
	if err != nil {
		report.Err = fmt.Errorf("check %s: %w", name, err)
		return report, report.Err
	}
	report.Actual = actual

	report.Comparison = check.Compare(expected, actual)
	if report.Comparison.OK {
		return report, nil
	}

	if err := check.WriteReport(s.diagnostics, name, report.Comparison); err != nil {
		report.Err = fmt.Errorf("write report for %s: %w", name, err)
		return report, report.Err
	}
	report.Err = &check.MismatchError{Notebook: name, Comparison: report.Comparison}
	return report, report.Err
}

// collectErrors runs the notebook from inside its own directory so relative
// resources resolve, and returns the signatures of the errors it raised.
func (s *Service) collectErrors(ctx context.Context, path string) (signatures []string, err error) {
	dir, base := filepath.Split(path)

	restore, err := enterDir(dir)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, restore())
	}()

	scratch, remove, err := createScratch(".")
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, remove())
	}()

	if _, err := s.executor.Execute(ctx, notebook.ExecRequest{
		Notebook:    base,
		Output:      notebook.OutputTarget{Name: filepath.Base(scratch)},
		AllowErrors: true,
		CellTimeout: s.cellTimeout,
	}); err != nil {
		return nil, err
	}

	doc, err := s.reader.ReadDocument(scratch)
	if err != nil {
		return nil, err
	}
	return doc.ErrorSignatures(), nil
}
