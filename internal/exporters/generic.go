package exporters

import (
	"fmt"
	"io"

	"github.com/mrlokans/highlights-export/internal/entities"
)

type DocumentExporter interface {
	Export(documents []entities.Document) (ExportResult, error)
}

type ExportResult struct {
	BooksProcessed      int      `json:"books_processed"`
	HighlightsProcessed int      `json:"highlights_processed"`
	Files               []string `json:"files,omitempty"`
}

// StreamExporter writes documents one after another to a writer.
type StreamExporter struct {
	w io.Writer
}

func NewStreamExporter(w io.Writer) *StreamExporter {
	return &StreamExporter{w: w}
}

func (e *StreamExporter) Export(documents []entities.Document) (ExportResult, error) {
	result := ExportResult{}
	for _, doc := range documents {
		if _, err := io.WriteString(e.w, doc.Markdown); err != nil {
			return result, fmt.Errorf("failed to write %q: %w", doc.Title, err)
		}
		result.BooksProcessed++
		result.HighlightsProcessed += doc.Highlights
	}
	return result, nil
}
