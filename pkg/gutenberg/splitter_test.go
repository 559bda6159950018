package gutenberg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleBook = `The Adventures of Sherlock Holmes

by Arthur Conan Doyle

Contents

I. A Scandal in Bohemia
II. The Red-Headed League

I. A SCANDAL IN BOHEMIA

To Sherlock Holmes she is always the woman.

II. THE RED HEADED LEAGUE

I had called upon my friend one day in the autumn.

III. A CASE OF IDENTITY

My dear fellow, said Sherlock Holmes.

*** END OF THE PROJECT GUTENBERG EBOOK THE ADVENTURES OF SHERLOCK HOLMES ***
`

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"I. A SCANDAL IN BOHEMIA", "a_scandal_in_bohemia"},
		{"XII. THE ADVENTURE OF THE COPPER BEECHES", "the_adventure_of_the_copper_beeches"},
		{"III. A CASE OF IDENTITY", "a_case_of_identity"},
		{"No Prefix Here", "no_prefix_here"},
		{"V. THE FIVE ORANGE PIPS!", "the_five_orange_pips"},
	}

	for _, tt := range tests {
		got := SanitizeTitle(tt.title)
		if got != tt.want {
			t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestSplit(t *testing.T) {
	stories, err := Split(sampleBook, SplitOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stories) != 3 {
		t.Fatalf("expected 3 stories, got %d", len(stories))
	}

	if stories[0].Title != "I. A SCANDAL IN BOHEMIA" {
		t.Errorf("unexpected first title: %q", stories[0].Title)
	}
	if !strings.HasPrefix(stories[0].Text, "I. A SCANDAL IN BOHEMIA\n\n") {
		t.Errorf("story text should open with its heading, got %q", stories[0].Text[:40])
	}
	if !strings.Contains(stories[0].Text, "she is always the woman") {
		t.Errorf("story 0 missing body text")
	}
	if strings.Contains(stories[0].Text, "RED HEADED") {
		t.Errorf("story 0 leaked content from the next story")
	}

	if !strings.Contains(stories[2].Text, "My dear fellow") {
		t.Errorf("last story missing body text")
	}
	if strings.Contains(stories[2].Text, "END OF THE PROJECT GUTENBERG") {
		t.Errorf("footer not stripped from last story")
	}
}

func TestSplitTableOfContentsNotMatched(t *testing.T) {
	// the contents list uses mixed case, so only the all-caps headings split
	stories, err := Split(sampleBook, SplitOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, story := range stories {
		if strings.Contains(story.Text, "Contents") {
			t.Errorf("table of contents leaked into story %q", story.Title)
		}
	}
}

func TestSplitMissingMarkers(t *testing.T) {
	if _, err := Split("no markers here", SplitOptions{}); err == nil {
		t.Error("expected error for missing markers")
	}

	if _, err := Split(sampleBook, SplitOptions{StartMarker: "NOT PRESENT"}); err == nil {
		t.Error("expected error for absent start marker")
	}
}

func TestSplitFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sherlock.txt")
	if err := os.WriteFile(input, []byte(sampleBook), 0644); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(dir, "stories")
	filenames, err := SplitFile(input, outDir, SplitOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"01_a_scandal_in_bohemia.txt",
		"02_the_red_headed_league.txt",
		"03_a_case_of_identity.txt",
	}
	if len(filenames) != len(want) {
		t.Fatalf("expected %d files, got %d", len(want), len(filenames))
	}
	for i, name := range want {
		if filenames[i] != name {
			t.Errorf("filename %d = %q, want %q", i, filenames[i], name)
		}
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("story file not written: %v", err)
		}
		if len(data) == 0 {
			t.Errorf("story file %q is empty", name)
		}
	}
}

func TestSplitFileMissingInput(t *testing.T) {
	if _, err := SplitFile("/nonexistent/book.txt", t.TempDir(), SplitOptions{}); err == nil {
		t.Error("expected error for missing input file")
	}
}
