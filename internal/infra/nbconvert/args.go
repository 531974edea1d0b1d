package nbconvert

import (
	"math"
	"strconv"
	"time"

	"github.com/Cybiii/chisel-bootcamp/internal/domain/notebook"
)

// Args builds the nbconvert command line, without the interpreter, for req.
func Args(req notebook.ExecRequest) []string {
	args := []string{"-m", "nbconvert", "--to", "notebook", "--execute"}
	if req.AllowErrors {
		args = append(args, "--allow-errors")
	}
	if req.CellTimeout > 0 {
		args = append(args, "--ExecutePreprocessor.timeout="+timeoutSeconds(req.CellTimeout))
	}
	if req.Output.InPlace {
		args = append(args, "--inplace")
	} else {
		args = append(args, "--output", req.Output.Name)
	}
	return append(args, req.Notebook)
}

// nbconvert takes whole seconds; partial seconds round up so a timeout never shrinks.
func timeoutSeconds(d time.Duration) string {
	return strconv.FormatInt(int64(math.Ceil(d.Seconds())), 10)
}
