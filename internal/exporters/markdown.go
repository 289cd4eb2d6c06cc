package exporters

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/mrlokans/highlights-export/internal/entities"
	"github.com/mrlokans/highlights-export/internal/utils"
)

// RenderMarkdown renders a book as a heading, an author line and one
// blockquote per highlight. Each line of a highlight is trimmed and quoted
// separately; trailing line breaks are dropped first. Text is passed through
// without Markdown escaping.
func RenderMarkdown(book entities.Book) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "# %s\n\n", book.Title)
	fmt.Fprintf(&builder, "Author: %s\n\n", book.Author)

	for _, highlight := range book.Highlights {
		for _, line := range strings.Split(strings.TrimRight(highlight, "\r\n"), "\n") {
			fmt.Fprintf(&builder, "> %s\n", strings.TrimSpace(line))
		}
		builder.WriteString("\n")
	}

	return builder.String()
}

// MarkdownExporter writes one Markdown file per document into ExportDir.
type MarkdownExporter struct {
	fs        afero.Fs
	ExportDir string
}

func NewMarkdownExporter(fs afero.Fs, exportDir string) *MarkdownExporter {
	return &MarkdownExporter{
		fs:        fs,
		ExportDir: exportDir,
	}
}

func (exporter *MarkdownExporter) Export(documents []entities.Document) (ExportResult, error) {
	result := ExportResult{}

	if err := exporter.fs.MkdirAll(exporter.ExportDir, 0755); err != nil {
		return result, fmt.Errorf("failed to create export directory: %w", err)
	}

	namer := utils.NewFileNamer()
	for _, doc := range documents {
		outputPath := filepath.Join(exporter.ExportDir, namer.Name(doc.Title))
		if err := afero.WriteFile(exporter.fs, outputPath, []byte(doc.Markdown), 0644); err != nil {
			return result, fmt.Errorf("failed to write %s: %w", outputPath, err)
		}
		result.Files = append(result.Files, outputPath)
		result.BooksProcessed++
		result.HighlightsProcessed += doc.Highlights
	}

	return result, nil
}
