package chunkers

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// chapterPrefixRegex matches a leading numeric chapter prefix followed by an
// optional separator and the title slug, e.g. "03_a_case_of_identity".
var chapterPrefixRegex = regexp.MustCompile(`^(\d+)[-_ ]?(.*)$`)

// ExtractChapterTitle derives provenance from a source filename. A leading
// numeric prefix becomes the chapter index and the remaining slug becomes a
// title-cased story title; without a numeric prefix the chapter index is nil
// and the whole stem is title-cased.
//
//	"03_a_case_of_identity.txt" -> (3, "A Case Of Identity")
//	"notes.txt"                 -> (nil, "Notes")
func ExtractChapterTitle(filename string) (*int, string) {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	match := chapterPrefixRegex.FindStringSubmatch(stem)
	if match == nil {
		return nil, titleCaseSlug(stem)
	}

	chapterIndex, err := strconv.Atoi(match[1])
	if err != nil {
		// digits too large for int; treat as no numeric prefix
		return nil, titleCaseSlug(stem)
	}
	return &chapterIndex, titleCaseSlug(match[2])
}

// titleCaseSlug turns an underscore/hyphen slug into a human-readable title.
func titleCaseSlug(slug string) string {
	s := strings.ReplaceAll(slug, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.TrimSpace(s)

	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
