package importers

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/highlights-export/internal/entities"
)

var opt = entities.Optional

func entry(bookTitle *string, path string, offset int, text string) entities.HighlightEntry {
	return entities.HighlightEntry{
		BookTitle:          bookTitle,
		Text:               text,
		StartContainerPath: path,
		StartOffset:        offset,
		EndContainerPath:   path,
	}
}

func withAuthor(e entities.HighlightEntry, author *string) entities.HighlightEntry {
	e.Author = author
	return e
}

func TestGroupEntries_Empty(t *testing.T) {
	library := GroupEntries(nil)

	assert.Empty(t, library)
	assert.Empty(t, library.Titles())
	assert.Equal(t, 0, library.HighlightCount())
}

func TestGroupEntries_UntitledEntriesShareOneBook(t *testing.T) {
	entries := []entities.HighlightEntry{
		withAuthor(entry(nil, "/x", 1, "one"), opt("Someone")),
		entry(opt(""), "/y", 2, "two"),
		{Text: "three", ISBN: opt("123"), Title: "Chapter"},
		entry(opt("Titled"), "/z", 0, "four"),
	}

	library := GroupEntries(entries)

	require.Len(t, library, 2)
	untitled, ok := library[entities.NoTitlePlaceholder]
	require.True(t, ok)
	assert.Equal(t, entities.NoTitlePlaceholder, untitled.Title)
	assert.ElementsMatch(t, []string{"one", "two", "three"}, untitled.Highlights)
	assert.Equal(t, []string{"four"}, library["Titled"].Highlights)
}

func TestGroupEntries_OrdersByContainerPathThenOffset(t *testing.T) {
	foo := opt("Foo")
	entries := []entities.HighlightEntry{
		entry(foo, "/b", 10, "b-10"),
		entry(foo, "/a", 30, "a-30"),
		entry(foo, "/b", 2, "b-2"),
		entry(foo, "/a", 5, "a-5"),
	}

	library := GroupEntries(entries)

	assert.Equal(t, []string{"a-5", "a-30", "b-2", "b-10"}, library["Foo"].Highlights)
}

func TestGroupEntries_OffsetIsNumeric(t *testing.T) {
	foo := opt("Foo")
	entries := []entities.HighlightEntry{
		entry(foo, "/a", 100, "hundred"),
		entry(foo, "/a", 9, "nine"),
	}

	assert.Equal(t, []string{"nine", "hundred"}, GroupEntries(entries)["Foo"].Highlights)
}

func TestGroupEntries_TiesKeepSourceOrder(t *testing.T) {
	foo := opt("Foo")
	entries := []entities.HighlightEntry{
		entry(foo, "/a", 1, "first"),
		entry(foo, "/a", 1, "second"),
		entry(foo, "/a", 1, "third"),
	}

	assert.Equal(t, []string{"first", "second", "third"}, GroupEntries(entries)["Foo"].Highlights)
}

func TestGroupEntries_AuthorIsFirstInSortOrder(t *testing.T) {
	foo := opt("Foo")
	entries := []entities.HighlightEntry{
		withAuthor(entry(foo, "/c", 0, "c"), opt("Third")),
		withAuthor(entry(foo, "/a", 0, "a"), nil),
		withAuthor(entry(foo, "/b", 0, "b"), opt("Second")),
		withAuthor(entry(foo, "/a", 1, "a1"), opt("")),
	}

	library := GroupEntries(entries)

	assert.Equal(t, "Second", library["Foo"].Author)
}

func TestGroupEntries_AuthorPlaceholder(t *testing.T) {
	entries := []entities.HighlightEntry{
		entry(opt("Foo"), "/a", 0, "a"),
		withAuthor(entry(opt("Foo"), "/b", 0, "b"), opt("")),
	}

	assert.Equal(t, entities.UnknownAuthorPlaceholder, GroupEntries(entries)["Foo"].Author)
}

func TestGroupEntries_SameTitleMerges(t *testing.T) {
	entries := []entities.HighlightEntry{
		{BookTitle: opt("Collected Poems"), ISBN: opt("111"), Author: opt("Poet A"), Text: "a", StartContainerPath: "/1"},
		{BookTitle: opt("Collected Poems"), ISBN: opt("222"), Author: opt("Poet B"), Text: "b", StartContainerPath: "/2"},
	}

	library := GroupEntries(entries)

	require.Len(t, library, 1)
	assert.Equal(t, []string{"a", "b"}, library["Collected Poems"].Highlights)
	assert.Equal(t, "Poet A", library["Collected Poems"].Author)
}

func TestGroupEntries_EveryEntryLandsInExactlyOneBook(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	titles := []*string{nil, opt(""), opt("Alpha"), opt("Beta"), opt("Gamma")}
	paths := []string{"/a", "/b", "/c"}

	var entries []entities.HighlightEntry
	for i := 0; i < 200; i++ {
		entries = append(entries, entities.HighlightEntry{
			BookTitle:          titles[rng.Intn(len(titles))],
			StartContainerPath: paths[rng.Intn(len(paths))],
			StartOffset:        rng.Intn(50),
			Text:               string(rune('A' + i%26)),
		})
	}

	library := GroupEntries(entries)

	assert.Equal(t, len(entries), library.HighlightCount())
	for title, book := range library {
		assert.Equal(t, title, book.Title)
		assert.NotEmpty(t, book.Author)
	}
}

func TestSortEntries_NonDecreasingWithinBook(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	titles := []*string{nil, opt(""), opt(entities.NoTitlePlaceholder), opt("Alpha"), opt("Beta")}
	paths := []string{"/a", "/b", "/c", "/a/1"}

	var entries []entities.HighlightEntry
	for i := 0; i < 300; i++ {
		entries = append(entries, entities.HighlightEntry{
			BookTitle:          titles[rng.Intn(len(titles))],
			StartContainerPath: paths[rng.Intn(len(paths))],
			StartOffset:        rng.Intn(1000),
		})
	}

	sorted := SortEntries(entries)
	require.Len(t, sorted, len(entries))

	byBook := map[string][]entities.HighlightEntry{}
	for _, e := range sorted {
		byBook[resolveTitle(e)] = append(byBook[resolveTitle(e)], e)
	}
	for title, group := range byBook {
		ok := sort.SliceIsSorted(group, func(i, j int) bool {
			if group[i].StartContainerPath != group[j].StartContainerPath {
				return group[i].StartContainerPath < group[j].StartContainerPath
			}
			return group[i].StartOffset < group[j].StartOffset
		})
		assert.True(t, ok, "book %s is not in reading order", title)
	}
}

func TestSortEntries_UntitledSortUnderPlaceholder(t *testing.T) {
	entries := []entities.HighlightEntry{
		entry(opt("B"), "", 0, "b"),
		entry(nil, "", 0, "none"),
		entry(opt("A"), "", 0, "a"),
	}

	sorted := SortEntries(entries)

	texts := []string{sorted[0].Text, sorted[1].Text, sorted[2].Text}
	assert.Equal(t, []string{"none", "a", "b"}, texts)
	assert.Equal(t, "b", entries[0].Text, "input must not be reordered")
}

func TestGroupEntries_UntitledVariantsShareReadingOrder(t *testing.T) {
	entries := []entities.HighlightEntry{
		entry(nil, "/b", 0, "nil-b"),
		entry(opt(""), "/a", 0, "empty-a"),
		entry(opt(entities.NoTitlePlaceholder), "/0", 0, "literal-0"),
		entry(nil, "/a", 5, "nil-a5"),
	}

	library := GroupEntries(entries)

	require.Len(t, library, 1)
	assert.Equal(t, []string{"literal-0", "empty-a", "nil-a5", "nil-b"}, library[entities.NoTitlePlaceholder].Highlights)
}

func TestLibrary_Titles(t *testing.T) {
	library := Library{
		"Walden":                    {Title: "Walden"},
		entities.NoTitlePlaceholder: {Title: entities.NoTitlePlaceholder},
		"Meditations":               {Title: "Meditations"},
	}

	assert.Equal(t, []string{"(No title)", "Meditations", "Walden"}, library.Titles())
}
