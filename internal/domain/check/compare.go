package check

import (
	"strings"

	"github.com/Cybiii/chisel-bootcamp/internal/domain/notebook"
)

// NoErrorSentinel fills the shorter of the expected and actual lists so that
// a length difference surfaces as a mismatch.
const NoErrorSentinel = "-- No Error --"

// Mismatch describes one position where the expected signature was not found.
type Mismatch struct {
	Index    int
	Expected string
	Actual   string
}

// Comparison is the outcome of comparing expected and actual error signatures.
type Comparison struct {
	OK         bool
	Positions  int
	Mismatches []Mismatch
}

// Compare matches expected signatures against actual ones position by position.
//
// Actual signatures are cut to notebook.SignatureLimit characters, both lists
// are padded with NoErrorSentinel to the same length, and position i matches
// when expected[i] is a substring of actual[i].
func Compare(expected, actual []string) Comparison {
	truncated := make([]string, len(actual))
	for i, a := range actual {
		truncated[i] = notebook.Truncate(a, notebook.SignatureLimit)
	}

	n := max(len(expected), len(truncated))
	exp := pad(expected, n)
	act := pad(truncated, n)

	result := Comparison{OK: true, Positions: n}
	for i := 0; i < n; i++ {
		if strings.Contains(act[i], exp[i]) {
			continue
		}
		result.OK = false
		result.Mismatches = append(result.Mismatches, Mismatch{
			Index:    i,
			Expected: exp[i],
			Actual:   act[i],
		})
	}
	return result
}

func pad(values []string, n int) []string {
	padded := make([]string, n)
	copy(padded, values)
	for i := len(values); i < n; i++ {
		padded[i] = NoErrorSentinel
	}
	return padded
}
