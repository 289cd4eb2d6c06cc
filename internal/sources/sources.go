// Package sources defines what every highlight source shares: the input
// selector, the reader contract, the error taxonomy and the per-row fold
// that keeps one bad record from failing a whole read.
package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrlokans/highlights-export/internal/entities"
	"github.com/mrlokans/highlights-export/internal/logger"
)

// InputType selects a source reader.
type InputType string

const (
	InputKobo    InputType = "kobo"
	InputOReilly InputType = "oreilly"
)

// InputTypes lists the recognised selectors.
func InputTypes() []InputType {
	return []InputType{InputKobo, InputOReilly}
}

func (t InputType) String() string {
	return string(t)
}

// ParseInputType accepts exactly the recognised selectors, case-insensitively.
func ParseInputType(s string) (InputType, error) {
	candidate := InputType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range InputTypes() {
		if candidate == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown input type %q (expected one of: kobo, oreilly)", s)
}

// Reader produces highlight entries from one source file.
type Reader interface {
	ReadEntries(ctx context.Context) ([]entities.HighlightEntry, error)
}

// RowFailure records a row that could not be decoded.
type RowFailure struct {
	Row int
	Err error
}

// RowResults partitions decoded rows from failed ones.
type RowResults struct {
	Entries  []entities.HighlightEntry
	Failures []RowFailure
}

// Add records the outcome of decoding row n.
func (r *RowResults) Add(row int, entry entities.HighlightEntry, err error) {
	if err != nil {
		r.Failures = append(r.Failures, RowFailure{
			Row: row,
			Err: &Error{Kind: KindRowDecode, Op: fmt.Sprintf("decode row %d", row), Err: err},
		})
		return
	}
	r.Entries = append(r.Entries, entry)
}

// LogFailures emits one warning per skipped row.
func (r *RowResults) LogFailures(log logger.Logger) {
	for _, f := range r.Failures {
		log.Warn("skipping row", "row", f.Row, "err", f.Err)
	}
}
