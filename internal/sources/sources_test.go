package sources

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/highlights-export/internal/entities"
	"github.com/mrlokans/highlights-export/internal/logger"
)

func TestParseInputType(t *testing.T) {
	t.Run("accepts known selectors", func(t *testing.T) {
		kobo, err := ParseInputType("kobo")
		require.NoError(t, err)
		assert.Equal(t, InputKobo, kobo)

		oreilly, err := ParseInputType(" OReilly ")
		require.NoError(t, err)
		assert.Equal(t, InputOReilly, oreilly)
	})

	t.Run("rejects anything else", func(t *testing.T) {
		for _, input := range []string{"", "kindle", "kobo2", "o'reilly"} {
			_, err := ParseInputType(input)
			assert.Error(t, err, "input %q", input)
		}
	})
}

func TestError_MatchesSentinelAndCause(t *testing.T) {
	err := Unavailable("open kobo database", "/tmp/missing.sqlite", os.ErrNotExist)

	assert.True(t, errors.Is(err, ErrSourceUnavailable))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.False(t, errors.Is(err, ErrQuery))
	assert.Equal(t, "open kobo database /tmp/missing.sqlite: source unavailable: file does not exist", err.Error())
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("failed to read highlights: %w", QueryFailed("query bookmarks", "db.sqlite", errors.New("no such table: bookmark")))

	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindQuery, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestRowResults(t *testing.T) {
	var results RowResults

	results.Add(1, entities.HighlightEntry{Text: "first"}, nil)
	results.Add(2, entities.HighlightEntry{}, errors.New("bad offset"))
	results.Add(3, entities.HighlightEntry{Text: "third"}, nil)

	require.Len(t, results.Entries, 2)
	assert.Equal(t, "first", results.Entries[0].Text)
	assert.Equal(t, "third", results.Entries[1].Text)

	require.Len(t, results.Failures, 1)
	assert.Equal(t, 2, results.Failures[0].Row)
	assert.True(t, errors.Is(results.Failures[0].Err, ErrRowDecode))
	kind, ok := KindOf(results.Failures[0].Err)
	require.True(t, ok)
	assert.Equal(t, KindRowDecode, kind)

	var buf bytes.Buffer
	results.LogFailures(logger.New(logger.Config{Level: "warn", Output: &buf}))
	assert.Contains(t, buf.String(), "skipping row")
	assert.Contains(t, buf.String(), "bad offset")
}
