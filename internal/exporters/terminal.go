package exporters

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"

	"github.com/mrlokans/highlights-export/internal/entities"
)

const (
	DefaultTerminalStyle    = "dark"
	DefaultTerminalWordWrap = 80
)

// TerminalExporter renders documents for display in a terminal.
type TerminalExporter struct {
	w        io.Writer
	style    string
	wordWrap int
}

func NewTerminalExporter(w io.Writer, style string, wordWrap int) *TerminalExporter {
	if style == "" {
		style = DefaultTerminalStyle
	}
	if wordWrap < 0 {
		wordWrap = DefaultTerminalWordWrap
	}
	return &TerminalExporter{w: w, style: style, wordWrap: wordWrap}
}

func (e *TerminalExporter) Export(documents []entities.Document) (ExportResult, error) {
	result := ExportResult{}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(e.style),
		glamour.WithWordWrap(e.wordWrap),
	)
	if err != nil {
		return result, fmt.Errorf("failed to create renderer: %w", err)
	}

	for _, doc := range documents {
		out, err := r.Render(doc.Markdown)
		if err != nil {
			return result, fmt.Errorf("failed to render %q: %w", doc.Title, err)
		}
		if _, err := io.WriteString(e.w, out); err != nil {
			return result, err
		}
		result.BooksProcessed++
		result.HighlightsProcessed += doc.Highlights
	}

	return result, nil
}
