package interfaces

// This file contains compile-time interface implementation checks.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/highlights-export/internal/exporters"
	"github.com/mrlokans/highlights-export/internal/kobo"
	"github.com/mrlokans/highlights-export/internal/oreilly"
	"github.com/mrlokans/highlights-export/internal/sources"
)

// =============================================================================
// Sources
// =============================================================================

var _ sources.Reader = (*kobo.Reader)(nil)
var _ sources.Reader = (*oreilly.Reader)(nil)

// =============================================================================
// Output
// =============================================================================

var _ exporters.DocumentExporter = (*exporters.StreamExporter)(nil)
var _ exporters.DocumentExporter = (*exporters.MarkdownExporter)(nil)
var _ exporters.DocumentExporter = (*exporters.TerminalExporter)(nil)
