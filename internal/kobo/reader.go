package kobo

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mrlokans/highlights-export/internal/entities"
	"github.com/mrlokans/highlights-export/internal/logger"
	"github.com/mrlokans/highlights-export/internal/sources"
)

// Kobo marks the content row describing a whole volume (and its author)
// with this ContentType.
const authorContentType = 6

// Every bookmark with highlighted text, joined to the epub content row whose
// ContentID starts with the bookmark's ContentID (book and chapter titles)
// and to the volume row carrying the author.
const highlightsQuery = `
	SELECT
		content.ISBN AS isbn,
		content.BookTitle AS book_title,
		content.Title AS title,
		author.Attribution AS author,
		bookmark.Text AS highlight,
		bookmark.Annotation AS annotation,
		bookmark.StartOffset AS start_offset,
		bookmark.EndOffset AS end_offset,
		bookmark.StartContainerPath AS start_container_path,
		bookmark.EndContainerPath AS end_container_path
	FROM bookmark
	LEFT OUTER JOIN content
		ON content.ContentID LIKE bookmark.ContentID || '%'
		AND content.MimeType LIKE '%epub%'
	LEFT OUTER JOIN content AS author
		ON author.ContentID = bookmark.VolumeID
		AND author.ContentType = ?
	WHERE bookmark.Text IS NOT NULL
`

// requiredColumns is the fixed schema the query relies on.
var requiredColumns = map[string][]string{
	"bookmark": {
		"ContentID",
		"VolumeID",
		"Text",
		"Annotation",
		"StartOffset",
		"EndOffset",
		"StartContainerPath",
		"EndContainerPath",
	},
	"content": {
		"ContentID",
		"ContentType",
		"MimeType",
		"BookTitle",
		"Title",
		"Attribution",
		"ISBN",
	},
}

// Reader reads highlights from a Kobo on-device database (KoboReader.sqlite).
type Reader struct {
	dbPath string
	log    logger.Logger
}

func NewReader(dbPath string, log logger.Logger) *Reader {
	if log == nil {
		log = logger.Nop()
	}
	return &Reader{
		dbPath: dbPath,
		log:    log.With("source", "kobo", "path", dbPath),
	}
}

func (r *Reader) GetDBPath() string {
	return r.dbPath
}

// ReadEntries returns one entry per highlighted bookmark. Rows that fail to
// decode are logged and skipped.
func (r *Reader) ReadEntries(ctx context.Context) ([]entities.HighlightEntry, error) {
	db, err := r.open(ctx)
	if err != nil {
		return nil, err
	}
	defer closeDB(db)

	if err := ValidateSchema(db); err != nil {
		return nil, sources.QueryFailed("validate kobo schema", r.dbPath, err)
	}

	rows, err := db.WithContext(ctx).Raw(highlightsQuery, authorContentType).Rows()
	if err != nil {
		return nil, sources.QueryFailed("query kobo highlights", r.dbPath, err)
	}
	defer rows.Close()

	var results sources.RowResults
	row := 0
	for rows.Next() {
		row++
		entry, err := scanEntry(rows)
		results.Add(row, entry, err)
	}
	if err := rows.Err(); err != nil {
		return nil, sources.QueryFailed("iterate kobo highlights", r.dbPath, err)
	}

	results.LogFailures(r.log)
	r.log.Debug("read kobo highlights", "entries", len(results.Entries), "skipped", len(results.Failures))

	return results.Entries, nil
}

// open connects read-only and proves the file is an SQLite database.
func (r *Reader) open(ctx context.Context) (*gorm.DB, error) {
	info, err := os.Stat(r.dbPath)
	if err != nil {
		return nil, sources.Unavailable("open kobo database", r.dbPath, err)
	}
	if info.IsDir() {
		return nil, sources.Unavailable("open kobo database", r.dbPath, fmt.Errorf("path is a directory"))
	}
	// SQLite treats an empty file as an empty database.
	if info.Size() == 0 {
		return nil, sources.Unavailable("open kobo database", r.dbPath, fmt.Errorf("file is empty"))
	}

	dsn, err := readOnlyDSN(r.dbPath)
	if err != nil {
		return nil, sources.Unavailable("open kobo database", r.dbPath, err)
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, sources.Unavailable("open kobo database", r.dbPath, err)
	}

	var tables int64
	if err := db.WithContext(ctx).Raw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table'").Scan(&tables).Error; err != nil {
		closeDB(db)
		return nil, sources.Unavailable("open kobo database", r.dbPath, fmt.Errorf("not a valid SQLite database: %w", err))
	}

	return db, nil
}

// readOnlyDSN builds a read-only SQLite URI for path. The path is made
// absolute and escaped so that '#' and '?' in file names stay part of it.
func readOnlyDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=ro"}
	return u.String(), nil
}

// ValidateSchema checks that the bookmark and content tables carry every
// column the highlights query reads.
func ValidateSchema(db *gorm.DB) error {
	migrator := db.Migrator()
	for _, table := range []string{"bookmark", "content"} {
		if !migrator.HasTable(table) {
			return fmt.Errorf("missing required table: %s", table)
		}

		columnTypes, err := migrator.ColumnTypes(table)
		if err != nil {
			return fmt.Errorf("failed to inspect table %s: %w", table, err)
		}
		present := make(map[string]bool, len(columnTypes))
		for _, ct := range columnTypes {
			present[strings.ToLower(ct.Name())] = true
		}

		for _, col := range requiredColumns[table] {
			if !present[strings.ToLower(col)] {
				return fmt.Errorf("missing required column: %s.%s", table, col)
			}
		}
	}
	return nil
}

func scanEntry(rows *sql.Rows) (entities.HighlightEntry, error) {
	var e entities.HighlightEntry
	var isbn, bookTitle, title, author, annotation sql.NullString

	err := rows.Scan(
		&isbn,
		&bookTitle,
		&title,
		&author,
		&e.Text,
		&annotation,
		&e.StartOffset,
		&e.EndOffset,
		&e.StartContainerPath,
		&e.EndContainerPath,
	)
	if err != nil {
		return entities.HighlightEntry{}, fmt.Errorf("failed to scan row: %w", err)
	}

	e.ISBN = nullable(isbn)
	e.BookTitle = nullable(bookTitle)
	e.Title = title.String
	e.Author = nullable(author)
	e.Annotation = nullable(annotation)

	return e, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
