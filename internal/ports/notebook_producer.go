package ports

import "context"

// NotebookProducer yields notebook identifiers to check, one at a time.
// io.EOF signals that no notebooks remain.
type NotebookProducer interface {
	NextNotebook(ctx context.Context) (string, error)
}
