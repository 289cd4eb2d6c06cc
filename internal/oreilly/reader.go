// Package oreilly reads highlights from an O'Reilly annotations export.
//
// The export is either a bare JSON array of annotations or an API page
// object holding the array under "results" (or "annotations"). Each
// annotation maps onto entities.HighlightEntry:
//
//	book_title | epub_title          -> BookTitle
//	authors (array) | author         -> Author (joined with ", ")
//	isbn | epub_identifier           -> ISBN
//	chapter_title                    -> Title
//	highlight | quote                -> Text (required)
//	personal_note | annotation       -> Annotation
//	start_offset, end_offset         -> offsets
//	chapter_path | start_container_path -> StartContainerPath
//	end_container_path               -> EndContainerPath (defaults to start)
package oreilly

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/mrlokans/highlights-export/internal/entities"
	"github.com/mrlokans/highlights-export/internal/logger"
	"github.com/mrlokans/highlights-export/internal/sources"
)

var envelopeKeys = []string{"results", "annotations"}

type Reader struct {
	path string
	log  logger.Logger
}

func NewReader(path string, log logger.Logger) *Reader {
	if log == nil {
		log = logger.Nop()
	}
	return &Reader{
		path: path,
		log:  log.With("source", "oreilly", "path", path),
	}
}

func (r *Reader) ReadEntries(ctx context.Context) ([]entities.HighlightEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, sources.Unavailable("read oreilly export", r.path, err)
	}

	results, err := ParseEntries(data)
	if err != nil {
		var srcErr *sources.Error
		if errors.As(err, &srcErr) {
			srcErr.Path = r.path
		}
		return nil, err
	}

	results.LogFailures(r.log)
	r.log.Debug("read oreilly highlights", "entries", len(results.Entries), "skipped", len(results.Failures))

	return results.Entries, nil
}

// ParseEntries walks an in-memory export. The document must be valid JSON
// holding an annotation array; individual annotations that cannot be
// decoded are returned as failures.
func ParseEntries(data []byte) (*sources.RowResults, error) {
	if !gjson.ValidBytes(data) {
		return nil, sources.Malformed("parse oreilly export", "", fmt.Errorf("document is not valid JSON"))
	}

	items, err := annotationArray(gjson.ParseBytes(data))
	if err != nil {
		return nil, sources.Malformed("parse oreilly export", "", err)
	}

	results := &sources.RowResults{}
	row := 0
	items.ForEach(func(_, item gjson.Result) bool {
		row++
		entry, err := decodeAnnotation(item)
		results.Add(row, entry, err)
		return true
	})

	return results, nil
}

func annotationArray(root gjson.Result) (gjson.Result, error) {
	if root.IsArray() {
		return root, nil
	}
	if !root.IsObject() {
		return gjson.Result{}, fmt.Errorf("expected an array or object at the top level, got %s", root.Type)
	}
	for _, key := range envelopeKeys {
		if items := root.Get(key); items.IsArray() {
			return items, nil
		}
	}
	return gjson.Result{}, fmt.Errorf("no annotation array found (expected %q or %q)", envelopeKeys[0], envelopeKeys[1])
}

func decodeAnnotation(item gjson.Result) (entities.HighlightEntry, error) {
	if !item.IsObject() {
		return entities.HighlightEntry{}, fmt.Errorf("annotation is not an object")
	}

	text := firstString(item, "highlight", "quote")
	if text == nil || strings.TrimSpace(*text) == "" {
		return entities.HighlightEntry{}, fmt.Errorf("annotation has no highlight text")
	}

	startOffset, err := intField(item, "start_offset")
	if err != nil {
		return entities.HighlightEntry{}, err
	}
	endOffset, err := intField(item, "end_offset")
	if err != nil {
		return entities.HighlightEntry{}, err
	}

	startPath := entities.Value(firstString(item, "chapter_path", "start_container_path"))
	endPath := startPath
	if p := firstString(item, "end_container_path"); p != nil {
		endPath = *p
	}

	return entities.HighlightEntry{
		ISBN:               firstString(item, "isbn", "epub_identifier"),
		Author:             authors(item),
		BookTitle:          firstString(item, "book_title", "epub_title"),
		Title:              entities.Value(firstString(item, "chapter_title")),
		Text:               *text,
		Annotation:         firstString(item, "personal_note", "annotation"),
		StartOffset:        startOffset,
		EndOffset:          endOffset,
		StartContainerPath: startPath,
		EndContainerPath:   endPath,
	}, nil
}

// firstString returns the first of keys holding a non-empty string.
func firstString(item gjson.Result, keys ...string) *string {
	for _, key := range keys {
		v := item.Get(key)
		if v.Type == gjson.String && v.Str != "" {
			s := v.Str
			return &s
		}
	}
	return nil
}

func intField(item gjson.Result, key string) (int, error) {
	v := item.Get(key)
	switch v.Type {
	case gjson.Null:
		return 0, nil
	case gjson.Number:
		return int(v.Int()), nil
	default:
		return 0, fmt.Errorf("field %s is not a number: %s", key, v.Raw)
	}
}

// authors accepts a list of names, a list of {"name": ...} objects, or a
// single "author" string.
func authors(item gjson.Result) *string {
	list := item.Get("authors")
	if list.IsArray() {
		var names []string
		list.ForEach(func(_, a gjson.Result) bool {
			name := a.Str
			if a.IsObject() {
				name = a.Get("name").Str
			}
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
			return true
		})
		if len(names) > 0 {
			joined := strings.Join(names, ", ")
			return &joined
		}
		return nil
	}
	if list.Type == gjson.String && list.Str != "" {
		s := list.Str
		return &s
	}
	return firstString(item, "author")
}
