package chunkers

import (
	"regexp"
	"strings"
	"unicode"
)

// paragraphBoundaryRegex matches runs of two or more newlines, allowing
// trailing whitespace on blank lines.
var paragraphBoundaryRegex = regexp.MustCompile(`\n\s*\n+`)

// NormalizeNewlines converts Windows and old Mac line endings to "\n".
func NormalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// SplitSentences splits text into trimmed, non-empty sentences in document
// order. A sentence boundary is sentence-ending punctuation (. ! ?) followed
// by whitespace and an uppercase letter, digit, or opening quote, or any
// newline. This is a heuristic, not a grammar-aware splitter: abbreviations
// and mid-sentence capitalized words are not special-cased.
func SplitSentences(text string) []string {
	runes := []rune(NormalizeNewlines(text))

	var sentences []string
	emit := func(start, end int) {
		s := strings.TrimSpace(string(runes[start:end]))
		if s != "" {
			sentences = append(sentences, s)
		}
	}

	start := 0
	i := 0
	for i < len(runes) {
		r := runes[i]

		if r == '\n' {
			emit(start, i)
			i++
			start = i
			continue
		}

		if r == '.' || r == '!' || r == '?' {
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			// require at least one whitespace rune before the opener
			if j > i+1 && opensSentence(runes, j) {
				emit(start, i+1)
				i = j
				start = j
				continue
			}
		}

		i++
	}
	emit(start, len(runes))

	return sentences
}

// opensSentence reports whether the rune at j (optionally preceded by a
// quote mark) starts a new sentence.
func opensSentence(runes []rune, j int) bool {
	if j >= len(runes) {
		return false
	}
	r := runes[j]
	if r == '"' || r == '\'' || r == '“' || r == '”' {
		j++
		if j >= len(runes) {
			return false
		}
		r = runes[j]
	}
	return unicode.IsUpper(r) || unicode.IsDigit(r)
}

// SplitParagraphs splits text into trimmed, non-empty paragraphs in document
// order. Paragraphs are separated by blank lines (runs of two or more
// newlines, with optional whitespace between them).
func SplitParagraphs(text string) []string {
	parts := paragraphBoundaryRegex.Split(NormalizeNewlines(text), -1)

	paragraphs := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		paragraphs = append(paragraphs, part)
	}
	return paragraphs
}
