package utils

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// maxBaseNameLength leaves room for a collision suffix and the extension
// within the 255 bytes most filesystems allow.
const maxBaseNameLength = 200

// BookFileName returns a filesystem-safe Markdown file name for a book title.
func BookFileName(title string) string {
	return baseName(title) + ".md"
}

func baseName(title string) string {
	name := slug.Make(title)
	if len(name) > maxBaseNameLength {
		name = strings.TrimRight(name[:maxBaseNameLength], "-")
	}
	if name == "" {
		name = "untitled"
	}
	return name
}

// FileNamer hands out unique file names. Titles whose slugs collide get a
// numeric suffix: "walden.md", "walden-2.md", ...
type FileNamer struct {
	seen map[string]int
}

func NewFileNamer() *FileNamer {
	return &FileNamer{seen: make(map[string]int)}
}

func (n *FileNamer) Name(title string) string {
	base := baseName(title)
	for {
		n.seen[base]++
		count := n.seen[base]
		candidate := base
		if count > 1 {
			candidate = fmt.Sprintf("%s-%d", base, count)
		}
		// A suffixed name may itself be another title's slug.
		if count == 1 || n.seen[candidate] == 0 {
			if count > 1 {
				n.seen[candidate]++
			}
			return candidate + ".md"
		}
	}
}
