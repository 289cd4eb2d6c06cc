package entities

const (
	// NoTitlePlaceholder is the book title used when an entry carries none.
	NoTitlePlaceholder = "(No title)"
	// UnknownAuthorPlaceholder is the author used when no entry of a book names one.
	UnknownAuthorPlaceholder = "(Author unknown)"
)

// HighlightEntry is a single highlight as read from a source, before any
// grouping. Optional fields are nil when the source has no value for them.
type HighlightEntry struct {
	ISBN       *string `json:"isbn,omitempty"`
	Author     *string `json:"author,omitempty"`
	BookTitle  *string `json:"book_title,omitempty"`
	Title      string  `json:"title"` // chapter/section title
	Text       string  `json:"text"`
	Annotation *string `json:"annotation,omitempty"`

	// Location information
	StartOffset        int    `json:"start_offset"`
	EndOffset          int    `json:"end_offset"`
	StartContainerPath string `json:"start_container_path"`
	EndContainerPath   string `json:"end_container_path"`
}

// Book is a group of highlights sharing one resolved title.
// Title and Author are never empty: placeholders are applied while grouping.
type Book struct {
	Title      string   `json:"title"`
	Author     string   `json:"author"`
	Highlights []string `json:"highlights"`
}

// Document is the rendered form of a Book.
type Document struct {
	Title      string `json:"title"`
	Markdown   string `json:"markdown"`
	Highlights int    `json:"highlights"`
}

// Optional returns a pointer to s, for building entries by hand.
func Optional(s string) *string {
	return &s
}

// Value returns the string behind an optional field, or "" when absent.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
