package ports

import "github.com/Cybiii/chisel-bootcamp/internal/domain/notebook"

// DocumentReader loads an executed notebook from disk.
type DocumentReader interface {
	ReadDocument(path string) (*notebook.Document, error)
}
