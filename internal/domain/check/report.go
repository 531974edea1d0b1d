package check

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Cybiii/chisel-bootcamp/internal/domain/notebook"
)

var reportBar = strings.Repeat("=", 100)

// Report captures the outcome of checking one notebook.
type Report struct {
	Notebook   string
	Expected   []string
	Actual     []string
	Comparison Comparison
	Duration   time.Duration
	Err        error
}

// Passed reports whether the notebook ran and matched its expectations.
func (r Report) Passed() bool {
	return r.Err == nil && r.Comparison.OK
}

// WriteReport writes the mismatch diagnostics for a failed comparison.
// Nothing is written when the comparison succeeded.
func WriteReport(w io.Writer, notebookName string, c Comparison) error {
	if c.OK {
		return nil
	}

	var b strings.Builder
	b.WriteString(reportBar + "\n")
	fmt.Fprintf(&b, "Errors detected in %s\n", notebookName)
	for _, m := range c.Mismatches {
		fmt.Fprintf(&b, "No match for %d-th expected error '%s' got '%s'\n",
			m.Index, m.Expected, notebook.Truncate(m.Actual, notebook.SignatureLimit))
	}
	b.WriteString(reportBar + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
