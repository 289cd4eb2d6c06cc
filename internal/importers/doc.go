// Package importers turns raw highlight entries into rendered books.
//
// # Architecture
//
// The export pipeline follows a simple flow:
//
//	Source file → sources.Reader → []HighlightEntry → SortEntries → GroupEntries → Render → []Document
//
// A reader is selected by input type ("kobo" or "oreilly"). It either
// returns every decodable entry or fails with a *sources.Error, in which
// case the run stops and nothing is rendered. Entries are then sorted by
// book title, container path and start offset, folded into a Library keyed
// by title, and each book is rendered with exporters.RenderMarkdown.
//
// # Adding a New Source
//
//  1. Create a package with a reader:
//
//     type Reader struct { path string; log logger.Logger }
//
//     func (r *Reader) ReadEntries(ctx context.Context) ([]entities.HighlightEntry, error)
//
//  2. Report failures through the sources error helpers so callers can
//     tell an unreadable file (sources.Unavailable) from a bad document
//     (sources.Malformed). Rows that cannot be decoded go through
//     sources.RowResults and are logged, not returned.
//
//  3. Register it:
//
//     pipeline.Register("mysource", func(path string, log logger.Logger) sources.Reader {
//     return mysource.NewReader(path, log)
//     })
//
// # Example Usage
//
//	pipeline := importers.NewPipeline(log)
//	docs, summary, err := pipeline.Run(ctx, sources.InputKobo, "KoboReader.sqlite")
package importers
