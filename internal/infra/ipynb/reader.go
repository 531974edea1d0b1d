package ipynb

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Cybiii/chisel-bootcamp/internal/domain/notebook"
	"github.com/Cybiii/chisel-bootcamp/internal/ports"
)

// v3 documents name error outputs "pyerr".
const legacyErrorOutput = "pyerr"

// Reader implements ports.DocumentReader for nbformat JSON files.
type Reader struct{}

var _ ports.DocumentReader = Reader{}

// ReadDocument reads and decodes the notebook at path.
func (Reader) ReadDocument(path string) (*notebook.Document, error) {
	return ReadFile(path)
}

// ReadFile reads and decodes the notebook at path.
func ReadFile(path string) (*notebook.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open notebook: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return doc, nil
}

// Decode parses an nbformat v3 or v4 document.
func Decode(r io.Reader) (*notebook.Document, error) {
	var raw rawDocument
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode notebook: %w", err)
	}

	switch {
	case raw.Format >= 4:
		return raw.toDocument(raw.Cells), nil
	case raw.Format == 3:
		var cells []rawCell
		for _, ws := range raw.Worksheets {
			cells = append(cells, ws.Cells...)
		}
		return raw.toDocument(cells), nil
	default:
		return nil, fmt.Errorf("unsupported nbformat %d", raw.Format)
	}
}

type rawDocument struct {
	Format      int            `json:"nbformat"`
	FormatMinor int            `json:"nbformat_minor"`
	Cells       []rawCell      `json:"cells"`
	Worksheets  []rawWorksheet `json:"worksheets"`
}

type rawWorksheet struct {
	Cells []rawCell `json:"cells"`
}

type rawCell struct {
	CellType string      `json:"cell_type"`
	Source   multiline   `json:"source"`
	Input    multiline   `json:"input"`
	Outputs  []rawOutput `json:"outputs"`
}

type rawOutput struct {
	OutputType string   `json:"output_type"`
	EName      string   `json:"ename"`
	EValue     string   `json:"evalue"`
	Traceback  []string `json:"traceback"`
}

func (d rawDocument) toDocument(cells []rawCell) *notebook.Document {
	doc := &notebook.Document{
		Format:      d.Format,
		FormatMinor: d.FormatMinor,
		Cells:       make([]notebook.Cell, 0, len(cells)),
	}
	for _, c := range cells {
		source := string(c.Source)
		if source == "" {
			source = string(c.Input)
		}
		cell := notebook.Cell{Type: c.CellType, Source: source}
		for _, o := range c.Outputs {
			outputType := o.OutputType
			if outputType == legacyErrorOutput {
				outputType = notebook.OutputError
			}
			cell.Outputs = append(cell.Outputs, notebook.Output{
				OutputType: outputType,
				EName:      o.EName,
				EValue:     o.EValue,
				Traceback:  o.Traceback,
			})
		}
		doc.Cells = append(doc.Cells, cell)
	}
	return doc
}

// multiline accepts nbformat's "string or list of strings" text fields.
type multiline string

func (m *multiline) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = multiline(s)
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("multiline text: %w", err)
	}
	*m = multiline(strings.Join(lines, ""))
	return nil
}
