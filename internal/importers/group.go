package importers

import (
	"sort"
	"strings"

	"github.com/mrlokans/highlights-export/internal/entities"
)

// Library maps a resolved book title to its book. Iteration order over the
// map is unspecified; use Titles for a stable order.
type Library map[string]entities.Book

// Titles returns the library's titles in ascending lexical order.
func (l Library) Titles() []string {
	titles := make([]string, 0, len(l))
	for title := range l {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}

// HighlightCount returns the number of highlights across all books.
func (l Library) HighlightCount() int {
	n := 0
	for _, book := range l {
		n += len(book.Highlights)
	}
	return n
}

// SortEntries orders entries by resolved book title, then container path,
// then start offset. Absent and empty titles sort as "(No title)", the key
// they are grouped under. The sort is stable so equal keys keep source
// order. The input slice is not modified.
func SortEntries(entries []entities.HighlightEntry) []entities.HighlightEntry {
	sorted := make([]entities.HighlightEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if c := strings.Compare(resolveTitle(a), resolveTitle(b)); c != 0 {
			return c < 0
		}
		if c := strings.Compare(a.StartContainerPath, b.StartContainerPath); c != 0 {
			return c < 0
		}
		return a.StartOffset < b.StartOffset
	})

	return sorted
}

// GroupEntries sorts entries and folds them into books keyed by resolved
// title. All entries without a title share the "(No title)" book, and
// distinct books with the same title are merged. The author of a book is
// the first author found in sort order.
func GroupEntries(entries []entities.HighlightEntry) Library {
	library := make(Library)

	for _, e := range SortEntries(entries) {
		title := resolveTitle(e)

		book, exists := library[title]
		if !exists {
			book = entities.Book{Title: title}
		}
		if book.Author == "" && e.Author != nil && *e.Author != "" {
			book.Author = *e.Author
		}
		book.Highlights = append(book.Highlights, e.Text)

		library[title] = book
	}

	for title, book := range library {
		if book.Author == "" {
			book.Author = entities.UnknownAuthorPlaceholder
			library[title] = book
		}
	}

	return library
}

func resolveTitle(e entities.HighlightEntry) string {
	if e.BookTitle == nil || *e.BookTitle == "" {
		return entities.NoTitlePlaceholder
	}
	return *e.BookTitle
}
