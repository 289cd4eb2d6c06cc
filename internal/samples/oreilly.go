package samples

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/pretty"
)

// OReillyAnnotation is one item of an O'Reilly annotations export.
type OReillyAnnotation struct {
	BookTitle        string   `json:"book_title,omitempty"`
	Authors          []string `json:"authors,omitempty"`
	ISBN             string   `json:"isbn,omitempty"`
	ChapterTitle     string   `json:"chapter_title,omitempty"`
	ChapterPath      string   `json:"chapter_path,omitempty"`
	EndContainerPath string   `json:"end_container_path,omitempty"`
	Highlight        string   `json:"highlight"`
	PersonalNote     string   `json:"personal_note,omitempty"`
	StartOffset      int      `json:"start_offset"`
	EndOffset        int      `json:"end_offset"`
}

// OReillyExport is the paginated envelope the O'Reilly API returns.
type OReillyExport struct {
	Count   int                 `json:"count"`
	Next    *string             `json:"next"`
	Results []OReillyAnnotation `json:"results"`
}

// MarshalOReillyExport encodes annotations as a single-page export.
func MarshalOReillyExport(annotations []OReillyAnnotation) ([]byte, error) {
	export := OReillyExport{
		Count:   len(annotations),
		Results: annotations,
	}
	data, err := json.Marshal(export)
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return pretty.Pretty(data), nil
}

// WriteOReillyExport writes annotations to path as an O'Reilly export.
func WriteOReillyExport(path string, annotations []OReillyAnnotation) error {
	data, err := MarshalOReillyExport(annotations)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
