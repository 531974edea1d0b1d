package producer

import (
	"context"
	"fmt"
	"io"

	"github.com/Cybiii/chisel-bootcamp/internal/domain/check"
	"github.com/Cybiii/chisel-bootcamp/internal/ports"
)

// Service implements ports.NotebookProducer over a fixed list of catalog entries.
type Service struct {
	notebooks []string
	index     int
}

var _ ports.NotebookProducer = (*Service)(nil)

// NewService selects the notebooks to check.
//
// With no requested names every catalog notebook is produced in sorted order.
// Otherwise exactly the requested names are produced, in the order given, and
// every name must be in the catalog.
func NewService(catalog *check.Catalog, requested []string) (*Service, error) {
	if len(requested) == 0 {
		return &Service{notebooks: catalog.Names()}, nil
	}

	for _, name := range requested {
		if _, err := catalog.Lookup(name); err != nil {
			return nil, fmt.Errorf("select notebooks: %w", err)
		}
	}
	return &Service{notebooks: append([]string{}, requested...)}, nil
}

// NextNotebook returns the next notebook, or io.EOF once all were produced.
func (s *Service) NextNotebook(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if s.index >= len(s.notebooks) {
		return "", io.EOF
	}

	name := s.notebooks[s.index]
	s.index++

	return name, nil
}

// Remaining reports how many notebooks have not been produced yet.
func (s *Service) Remaining() int {
	return len(s.notebooks) - s.index
}
