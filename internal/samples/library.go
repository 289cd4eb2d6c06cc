package samples

// Public domain books used for the generated sample sources.

func DefaultKoboVolumes() []KoboVolume {
	return []KoboVolume{
		{
			VolumeID: "file:///mnt/onboard/Marcus Aurelius/Meditations.kepub.epub",
			Title:    "Meditations",
			Author:   "Marcus Aurelius",
			ISBN:     "9780140449334",
			Chapters: []KoboChapter{
				{
					Title: "Book Two",
					Path:  "book02.xhtml",
					Highlights: []KoboHighlight{
						{
							Text:        "Begin the morning by saying to thyself, I shall meet with the busy-body, the ungrateful, arrogant, deceitful, envious, unsocial.",
							StartOffset: 0,
							EndOffset:   131,
						},
					},
				},
				{
					Title: "Book Four",
					Path:  "book04.xhtml",
					Highlights: []KoboHighlight{
						{
							Text:        "The universe is change;\nour life is what our thoughts make it.",
							Annotation:  "Compare with Epictetus.",
							StartOffset: 212,
							EndOffset:   274,
						},
						{
							Text:        "Very little is needed to make a happy life.",
							StartOffset: 40,
							EndOffset:   83,
						},
					},
				},
			},
		},
		{
			VolumeID: "file:///mnt/onboard/Henry David Thoreau/Walden.kepub.epub",
			Title:    "Walden",
			Author:   "Henry David Thoreau",
			Chapters: []KoboChapter{
				{
					Title: "Where I Lived, and What I Lived For",
					Path:  "ch02.xhtml",
					Highlights: []KoboHighlight{
						{
							Text:        "I went to the woods because I wished to live deliberately, to front only the essential facts of life.",
							StartOffset: 1024,
							EndOffset:   1126,
						},
					},
				},
			},
		},
	}
}

func DefaultOReillyAnnotations() []OReillyAnnotation {
	return []OReillyAnnotation{
		{
			BookTitle:    "The Art of War",
			Authors:      []string{"Sun Tzu", "Lionel Giles"},
			ChapterTitle: "Laying Plans",
			ChapterPath:  "/library/view/the-art-of/ch01.html",
			Highlight:    "All warfare is based on deception.",
			StartOffset:  310,
			EndOffset:    344,
		},
		{
			BookTitle:    "The Art of War",
			Authors:      []string{"Sun Tzu", "Lionel Giles"},
			ChapterTitle: "Attack by Stratagem",
			ChapterPath:  "/library/view/the-art-of/ch03.html",
			Highlight:    "If you know the enemy and know yourself,\nyou need not fear the result of a hundred battles.",
			PersonalNote: "The most quoted line.",
			StartOffset:  1502,
			EndOffset:    1590,
		},
		{
			BookTitle:    "The Art of War",
			Authors:      []string{"Sun Tzu", "Lionel Giles"},
			ChapterTitle: "Laying Plans",
			ChapterPath:  "/library/view/the-art-of/ch01.html",
			Highlight:    "The art of war is of vital importance to the State.",
			StartOffset:  12,
			EndOffset:    63,
		},
	}
}
