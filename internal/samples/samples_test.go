package samples

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestWriteKoboDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "KoboReader.sqlite")
	require.NoError(t, WriteKoboDatabase(path, DefaultKoboVolumes()))

	db, err := OpenKoboDatabase(path)
	require.NoError(t, err)
	defer CloseDatabase(db)

	var volumes, chapters, bookmarks int64
	require.NoError(t, db.Model(&KoboContent{}).Where("ContentType = ?", KoboContentTypeBook).Count(&volumes).Error)
	require.NoError(t, db.Model(&KoboContent{}).Where("ContentType = ?", KoboContentTypeChapter).Count(&chapters).Error)
	require.NoError(t, db.Model(&KoboBookmark{}).Count(&bookmarks).Error)

	assert.Equal(t, int64(2), volumes)
	assert.Equal(t, int64(3), chapters)
	assert.Equal(t, int64(4), bookmarks)

	var volume KoboContent
	require.NoError(t, db.Where("ContentType = ? AND Title = ?", KoboContentTypeBook, "Walden").First(&volume).Error)
	require.NotNil(t, volume.Attribution)
	assert.Equal(t, "Henry David Thoreau", *volume.Attribution)
	assert.Nil(t, volume.ISBN)
}

func TestSeedKoboVolumes_ChapterIDsExtendVolumeID(t *testing.T) {
	db, err := OpenKoboDatabase(filepath.Join(t.TempDir(), "kobo.sqlite"))
	require.NoError(t, err)
	defer CloseDatabase(db)

	require.NoError(t, SeedKoboVolumes(db, []KoboVolume{{
		VolumeID: "file:///book.epub",
		Title:    "Book",
		Chapters: []KoboChapter{{Title: "One", Path: "one.xhtml", Highlights: []KoboHighlight{{Text: "x", Annotation: "note"}}}},
	}}))

	var bookmark KoboBookmark
	require.NoError(t, db.First(&bookmark).Error)
	assert.Equal(t, "file:///book.epub", bookmark.VolumeID)
	assert.Equal(t, "file:///book.epub!OEBPS!one.xhtml", bookmark.ContentID)
	require.NotNil(t, bookmark.Annotation)
	assert.Equal(t, "note", *bookmark.Annotation)
}

func TestSeedKoboVolumes_DuplicateVolumeRollsBack(t *testing.T) {
	db, err := OpenKoboDatabase(filepath.Join(t.TempDir(), "kobo.sqlite"))
	require.NoError(t, err)
	defer CloseDatabase(db)

	volume := KoboVolume{VolumeID: "v", Title: "T"}
	err = SeedKoboVolumes(db, []KoboVolume{volume, volume})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&KoboContent{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestWriteOReillyExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annotations.json")
	require.NoError(t, WriteOReillyExport(path, DefaultOReillyAnnotations()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(data))

	root := gjson.ParseBytes(data)
	assert.Equal(t, int64(3), root.Get("count").Int())
	assert.Equal(t, gjson.Null, root.Get("next").Type)
	assert.Equal(t, "The Art of War", root.Get("results.0.book_title").String())
	assert.Equal(t, "Lionel Giles", root.Get("results.0.authors.1").String())
	assert.Equal(t, "The most quoted line.", root.Get("results.1.personal_note").String())
	assert.False(t, root.Get("results.0.personal_note").Exists())
}
