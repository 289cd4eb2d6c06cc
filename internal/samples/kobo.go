// Package samples builds source files in the shapes the readers expect:
// a Kobo on-device database and an O'Reilly JSON export. It backs the
// generate_samples command and the reader tests.
package samples

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// KoboContentTypeBook marks the content row that describes a whole volume.
const KoboContentTypeBook = 6

// KoboContentTypeChapter marks a content row for one section of a volume.
const KoboContentTypeChapter = 9

const KoboEpubMimeType = "application/x-kobo-epub+zip"

// KoboContent mirrors the subset of the Kobo content table the reader uses.
type KoboContent struct {
	ContentID   string  `gorm:"column:ContentID;primaryKey"`
	ContentType int     `gorm:"column:ContentType"`
	MimeType    string  `gorm:"column:MimeType"`
	BookTitle   *string `gorm:"column:BookTitle"`
	Title       *string `gorm:"column:Title"`
	Attribution *string `gorm:"column:Attribution"`
	ISBN        *string `gorm:"column:ISBN"`
}

func (KoboContent) TableName() string {
	return "content"
}

// KoboBookmark mirrors the subset of the Kobo bookmark table the reader uses.
type KoboBookmark struct {
	BookmarkID         string  `gorm:"column:BookmarkID;primaryKey"`
	VolumeID           string  `gorm:"column:VolumeID"`
	ContentID          string  `gorm:"column:ContentID"`
	StartContainerPath string  `gorm:"column:StartContainerPath"`
	StartOffset        int     `gorm:"column:StartOffset"`
	EndContainerPath   string  `gorm:"column:EndContainerPath"`
	EndOffset          int     `gorm:"column:EndOffset"`
	Text               *string `gorm:"column:Text"`
	Annotation         *string `gorm:"column:Annotation"`
}

func (KoboBookmark) TableName() string {
	return "bookmark"
}

// KoboVolume describes one book to write into a sample Kobo database.
type KoboVolume struct {
	VolumeID string
	Title    string
	Author   string
	ISBN     string
	Chapters []KoboChapter
}

type KoboChapter struct {
	Title      string
	Path       string
	Highlights []KoboHighlight
}

type KoboHighlight struct {
	Text        string
	Annotation  string
	StartOffset int
	EndOffset   int
}

// OpenKoboDatabase creates (or opens) a database at path with the Kobo
// bookmark and content tables.
func OpenKoboDatabase(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&KoboContent{}, &KoboBookmark{}); err != nil {
		return nil, fmt.Errorf("failed to create kobo schema: %w", err)
	}
	return db, nil
}

// CloseDatabase releases the connection behind db.
func CloseDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SeedKoboVolumes writes volumes, their chapters and bookmarks into db the
// way a Kobo device lays them out: one ContentType 6 row per volume carrying
// the author, one ContentType 9 row per chapter carrying the book title.
func SeedKoboVolumes(db *gorm.DB, volumes []KoboVolume) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, v := range volumes {
			book := KoboContent{
				ContentID:   v.VolumeID,
				ContentType: KoboContentTypeBook,
				MimeType:    KoboEpubMimeType,
				Title:       optional(v.Title),
				Attribution: optional(v.Author),
				ISBN:        optional(v.ISBN),
			}
			if err := tx.Create(&book).Error; err != nil {
				return fmt.Errorf("failed to create volume %s: %w", v.VolumeID, err)
			}

			for ci, ch := range v.Chapters {
				chapterID := fmt.Sprintf("%s!OEBPS!%s", v.VolumeID, ch.Path)
				chapter := KoboContent{
					ContentID:   chapterID,
					ContentType: KoboContentTypeChapter,
					MimeType:    KoboEpubMimeType,
					BookTitle:   optional(v.Title),
					Title:       optional(ch.Title),
					ISBN:        optional(v.ISBN),
				}
				if err := tx.Create(&chapter).Error; err != nil {
					return fmt.Errorf("failed to create chapter %s: %w", chapterID, err)
				}

				for hi, h := range ch.Highlights {
					bookmark := KoboBookmark{
						BookmarkID:         fmt.Sprintf("%s-%d-%d", v.VolumeID, ci, hi),
						VolumeID:           v.VolumeID,
						ContentID:          chapterID,
						StartContainerPath: fmt.Sprintf("span#kobo\\.%d\\.1", ci+1),
						StartOffset:        h.StartOffset,
						EndContainerPath:   fmt.Sprintf("span#kobo\\.%d\\.1", ci+1),
						EndOffset:          h.EndOffset,
						Text:               optional(h.Text),
						Annotation:         optional(h.Annotation),
					}
					if err := tx.Create(&bookmark).Error; err != nil {
						return fmt.Errorf("failed to create bookmark: %w", err)
					}
				}
			}
		}
		return nil
	})
}

// WriteKoboDatabase creates a Kobo database at path holding volumes.
func WriteKoboDatabase(path string, volumes []KoboVolume) error {
	db, err := OpenKoboDatabase(path)
	if err != nil {
		return err
	}
	defer CloseDatabase(db)

	return SeedKoboVolumes(db, volumes)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
