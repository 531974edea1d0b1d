package checker

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/Cybiii/chisel-bootcamp/internal/domain/notebook"
)

type executeCall struct {
	req notebook.ExecRequest
	cwd string
}

type stubExecutor struct {
	calls     []executeCall
	executeFn func(ctx context.Context, req notebook.ExecRequest) (*notebook.ExecResult, error)
	closed    bool
}

func (s *stubExecutor) Execute(ctx context.Context, req notebook.ExecRequest) (*notebook.ExecResult, error) {
	cwd, _ := os.Getwd()
	s.calls = append(s.calls, executeCall{req: req, cwd: cwd})
	if s.executeFn != nil {
		return s.executeFn(ctx, req)
	}
	if err := os.WriteFile(req.Output.Name, []byte("{}"), 0o644); err != nil {
		return nil, err
	}
	return &notebook.ExecResult{}, nil
}

func (s *stubExecutor) Close() error {
	s.closed = true
	return nil
}

type stubReader struct {
	paths  []string
	docs   map[string]*notebook.Document
	readFn func(path string) (*notebook.Document, error)
}

// ReadDocument serves the document registered for the notebook being checked,
// keyed by the directory the scratch file lives in.
func (s *stubReader) ReadDocument(path string) (*notebook.Document, error) {
	s.paths = append(s.paths, path)
	if s.readFn != nil {
		return s.readFn(path)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	if doc, ok := s.docs[filepath.Base(filepath.Dir(path))]; ok {
		return doc, nil
	}
	return &notebook.Document{Format: 4}, nil
}

func errorDoc(signatures ...string) *notebook.Document {
	cell := notebook.Cell{Type: "code"}
	for _, sig := range signatures {
		cell.Outputs = append(cell.Outputs, notebook.Output{
			OutputType: notebook.OutputError,
			Traceback:  []string{sig},
		})
	}
	return &notebook.Document{Format: 4, Cells: []notebook.Cell{cell}}
}

type listProducer struct {
	names []string
}

func (p *listProducer) NextNotebook(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(p.names) == 0 {
		return "", io.EOF
	}
	name := p.names[0]
	p.names = p.names[1:]
	return name, nil
}
