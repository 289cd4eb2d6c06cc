// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Sources
//
//   - sources.Reader: Reads highlight entries from one input format
//     (internal/kobo, internal/oreilly)
//
// ## Output
//
//   - exporters.DocumentExporter: Writes rendered documents to stdout, a
//     directory or the terminal (internal/exporters)
//
// ## Ambient
//
//   - logger.Logger: Structured logging shared by readers, the pipeline and
//     the HTTP server (internal/logger)
//
// # Adding a New Input Format
//
//  1. Create a package with a reader:
//
//     type Reader struct {
//         path string
//         log  logger.Logger
//     }
//
//     func (r *Reader) ReadEntries(ctx context.Context) ([]entities.HighlightEntry, error)
//
//  2. Add an InputType constant in internal/sources and register the reader
//     in importers.NewPipeline.
//
//  3. Allow its upload extensions in internal/http/export.go.
//
//  4. Add a compile-time check to checks.go.
//
// # Adding a New Output
//
//  1. Implement exporters.DocumentExporter.
//
//  2. Select it in newDocumentExporter (internal/cli/export.go).
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
