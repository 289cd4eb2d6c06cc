package importers

import (
	"context"
	"fmt"

	"github.com/mrlokans/highlights-export/internal/entities"
	"github.com/mrlokans/highlights-export/internal/exporters"
	"github.com/mrlokans/highlights-export/internal/kobo"
	"github.com/mrlokans/highlights-export/internal/logger"
	"github.com/mrlokans/highlights-export/internal/oreilly"
	"github.com/mrlokans/highlights-export/internal/sources"
)

// ReaderFactory builds a reader for the file at path.
type ReaderFactory func(path string, log logger.Logger) sources.Reader

// Summary describes the outcome of one run.
type Summary struct {
	Entries    int `json:"entries"`
	Books      int `json:"books"`
	Highlights int `json:"highlights"`
}

// Pipeline handles the export workflow:
// read source → sort and group by book → render Markdown.
type Pipeline struct {
	readers map[sources.InputType]ReaderFactory
	log     logger.Logger
}

// NewPipeline creates a pipeline with the Kobo and O'Reilly readers registered.
func NewPipeline(log logger.Logger) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}
	p := &Pipeline{
		readers: make(map[sources.InputType]ReaderFactory),
		log:     log,
	}
	p.Register(sources.InputKobo, func(path string, log logger.Logger) sources.Reader {
		return kobo.NewReader(path, log)
	})
	p.Register(sources.InputOReilly, func(path string, log logger.Logger) sources.Reader {
		return oreilly.NewReader(path, log)
	})
	return p
}

// Register sets the reader used for an input type, replacing any previous one.
func (p *Pipeline) Register(inputType sources.InputType, factory ReaderFactory) {
	p.readers[inputType] = factory
}

// Run reads the file at path with the reader selected by inputType and
// returns one rendered document per book. Any reader error aborts the run.
func (p *Pipeline) Run(ctx context.Context, inputType sources.InputType, path string) ([]entities.Document, Summary, error) {
	factory, ok := p.readers[inputType]
	if !ok {
		return nil, Summary{}, fmt.Errorf("no reader registered for input type %q", inputType)
	}
	return p.RunReader(ctx, factory(path, p.log))
}

// RunReader runs the pipeline over an already constructed reader.
func (p *Pipeline) RunReader(ctx context.Context, reader sources.Reader) ([]entities.Document, Summary, error) {
	entries, err := reader.ReadEntries(ctx)
	if err != nil {
		p.log.Error("export failed", "err", err)
		return nil, Summary{}, fmt.Errorf("failed to read highlights: %w", err)
	}

	library := GroupEntries(entries)
	documents := Render(library)

	summary := Summary{
		Entries:    len(entries),
		Books:      len(library),
		Highlights: library.HighlightCount(),
	}
	p.log.Info("export complete", "books", summary.Books, "highlights", summary.Highlights)

	return documents, summary, nil
}

// Render renders every book of the library, ordered by title.
func Render(library Library) []entities.Document {
	documents := make([]entities.Document, 0, len(library))
	for _, title := range library.Titles() {
		book := library[title]
		documents = append(documents, entities.Document{
			Title:      book.Title,
			Markdown:   exporters.RenderMarkdown(book),
			Highlights: len(book.Highlights),
		})
	}
	return documents
}
