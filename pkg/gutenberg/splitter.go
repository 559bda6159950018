// Package gutenberg splits Project Gutenberg anthologies into per-story
// text files ready for ingestion
package gutenberg

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ragtext/ragtext/pkg/chunkers"
	"github.com/ragtext/ragtext/pkg/errors"
)

// DefaultStartMarker opens the first story of the Sherlock Holmes
// anthology; DefaultEndMarker is the standard Gutenberg footer line.
const (
	DefaultStartMarker = "I. A SCANDAL IN BOHEMIA"
	DefaultEndMarker   = "*** END OF THE PROJECT GUTENBERG EBOOK"
)

var (
	// headings look like "XII. THE ADVENTURE OF THE COPPER BEECHES" on
	// their own line
	storyHeadingRegex = regexp.MustCompile(`(?m)^[IVXLC]+\.\s+[A-Z\s]+$`)
	romanPrefixRegex  = regexp.MustCompile(`^[IVXLC]+\.\s+`)
	invalidCharRegex  = regexp.MustCompile(`[^a-z0-9_]`)
)

// Story is one extracted story with its heading and body text
type Story struct {
	Title string
	Text  string
}

// SplitOptions controls where the anthology's core content begins and ends
type SplitOptions struct {
	StartMarker string
	EndMarker   string
}

// SanitizeTitle cleans a story heading into a filename slug: the Roman
// numeral prefix is dropped, spaces become underscores, and everything
// outside [a-z0-9_] is removed.
func SanitizeTitle(title string) string {
	name := strings.TrimSpace(romanPrefixRegex.ReplaceAllString(title, ""))
	name = strings.ReplaceAll(strings.ToLower(name), " ", "_")
	return invalidCharRegex.ReplaceAllString(name, "")
}

// Split isolates the text between the start and end markers and cuts it
// into stories at Roman-numeral headings. Each story keeps its heading as
// the first line.
func Split(fullText string, opts SplitOptions) ([]Story, error) {
	if opts.StartMarker == "" {
		opts.StartMarker = DefaultStartMarker
	}
	if opts.EndMarker == "" {
		opts.EndMarker = DefaultEndMarker
	}

	startIndex := strings.Index(fullText, opts.StartMarker)
	endIndex := strings.Index(fullText, opts.EndMarker)
	if startIndex == -1 || endIndex == -1 {
		return nil, errors.NewConfigError("could not find start or end markers for the book content")
	}

	coreText := strings.TrimSpace(fullText[startIndex:endIndex])

	headings := storyHeadingRegex.FindAllStringIndex(coreText, -1)
	if len(headings) == 0 {
		return nil, errors.NewConfigError("no story headings found; check the delimiter pattern")
	}

	stories := make([]Story, 0, len(headings))
	for i, loc := range headings {
		title := strings.TrimSpace(coreText[loc[0]:loc[1]])

		bodyEnd := len(coreText)
		if i+1 < len(headings) {
			bodyEnd = headings[i+1][0]
		}
		body := strings.TrimSpace(coreText[loc[1]:bodyEnd])

		stories = append(stories, Story{
			Title: title,
			Text:  strings.TrimSpace(title + "\n\n" + body),
		})
	}

	return stories, nil
}

// SplitFile reads an anthology file and writes one NN_slug.txt file per
// story into outputDir, returning the written filenames in story order.
func SplitFile(inputPath, outputDir string, opts SplitOptions) ([]string, error) {
	fullText, err := chunkers.ReadTextFile(inputPath)
	if err != nil {
		return nil, err
	}

	stories, err := Split(fullText, opts)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, errors.NewFileError("failed to create output directory", err)
	}

	filenames := make([]string, 0, len(stories))
	for i, story := range stories {
		filename := fmt.Sprintf("%02d_%s.txt", i+1, SanitizeTitle(story.Title))
		path := filepath.Join(outputDir, filename)

		if err := os.WriteFile(path, []byte(story.Text), 0644); err != nil {
			return nil, errors.NewFileError("failed to write story file", err).WithDetail("path", path)
		}
		filenames = append(filenames, filename)
	}

	return filenames, nil
}
