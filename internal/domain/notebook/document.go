package notebook

import "unicode/utf8"

// Output types understood by the harness.
const (
	OutputError         = "error"
	OutputStream        = "stream"
	OutputExecuteResult = "execute_result"
	OutputDisplayData   = "display_data"
)

// SignatureLimit is the number of characters of a traceback line kept for comparison.
const SignatureLimit = 100

// Document is an executed notebook as read back from disk.
type Document struct {
	Format      int
	FormatMinor int
	Cells       []Cell
}

// Cell is a single notebook cell together with the outputs it produced.
type Cell struct {
	Type    string
	Source  string
	Outputs []Output
}

// Output is one structured cell output.
type Output struct {
	OutputType string
	EName      string
	EValue     string
	Traceback  []string
}

// IsError reports whether the output represents an unhandled error.
func (o Output) IsError() bool {
	return o.OutputType == OutputError
}

// Signature returns the comparison key of an error output: the first traceback
// entry cut to SignatureLimit characters.
//
// Kernels occasionally emit an error without a traceback; the "ename: evalue"
// pair is used in that case.
func (o Output) Signature() string {
	if len(o.Traceback) > 0 {
		return Truncate(o.Traceback[0], SignatureLimit)
	}
	if o.EName == "" && o.EValue == "" {
		return ""
	}
	return Truncate(o.EName+": "+o.EValue, SignatureLimit)
}

// ErrorOutputs collects every error output in document order.
func (d *Document) ErrorOutputs() []Output {
	var errs []Output
	for _, cell := range d.Cells {
		for _, out := range cell.Outputs {
			if out.IsError() {
				errs = append(errs, out)
			}
		}
	}
	return errs
}

// ErrorSignatures returns the signatures of ErrorOutputs, in order.
func (d *Document) ErrorSignatures() []string {
	outputs := d.ErrorOutputs()
	signatures := make([]string, len(outputs))
	for i, out := range outputs {
		signatures[i] = out.Signature()
	}
	return signatures
}

// Truncate cuts s to at most limit characters without splitting a rune.
func Truncate(s string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
