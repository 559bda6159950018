package chunkers

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ragtext/ragtext/pkg/errors"
)

// five sentences of exactly 20 characters each
var hybridSentences = []string{
	"Alpha bravo charlie.",
	"Delta echos foxtrot.",
	"Gamma hotel indiana.",
	"Julia kilos limatwo.",
	"Mikes novem oscarss.",
}

func TestHybridChunkerGroupsWithSentenceOverlap(t *testing.T) {
	chunker, err := NewHybridChunker(45, 10, 1, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	text := strings.Join(hybridSentences, " ")
	chunks, err := chunker.Chunk(context.Background(), text, "h.txt")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// two 20-char sentences joined by a space fit in 45, a third does not
	want := hybridSentences[0] + " " + hybridSentences[1]
	if chunks[0].Text != want {
		t.Errorf("First chunk: expected %q, got %q", want, chunks[0].Text)
	}
	if got := utf8.RuneCountInString(chunks[0].Text); got != 41 {
		t.Errorf("First chunk: expected 41 chars, got %d", got)
	}

	// with overlap_sentences=1 the second chunk starts at sentence index 1
	if !strings.HasPrefix(chunks[1].Text, hybridSentences[1]) {
		t.Errorf("Second chunk should start at sentence 1, got %q", chunks[1].Text)
	}
}

func TestHybridChunkerRespectsBudgets(t *testing.T) {
	chunker, _ := NewHybridChunker(100, 3, 0, 1)

	var sentences []string
	for i := 0; i < 12; i++ {
		sentences = append(sentences, "This sentence fills some space today.")
	}
	chunks, err := chunker.Chunk(context.Background(), strings.Join(sentences, " "), "b.txt")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for i, chunk := range chunks {
		count := len(SplitSentences(chunk.Text))
		if count > 3 {
			t.Errorf("Chunk %d holds %d sentences, budget is 3", i, count)
		}
		if chunk.ChunkIndex != i {
			t.Errorf("Chunk %d: unexpected index %d", i, chunk.ChunkIndex)
		}
	}
}

func TestHybridChunkerForceIncludesOversizeSentence(t *testing.T) {
	chunker, _ := NewHybridChunker(10, 5, 0, 1)

	long := "Averyveryverylongsentencewithoutanyspaces indeed keeps going."
	chunks, err := chunker.Chunk(context.Background(), long, "long.txt")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != long {
		t.Errorf("Oversize sentence should be force-included whole, got %q", chunks[0].Text)
	}
}

func TestHybridChunkerOverlapNeverMovesBackward(t *testing.T) {
	// overlap as large as the group would stall without the progress clamp
	chunker, _ := NewHybridChunker(25, 1, 5, 1)

	text := "One two three. Four five six. Seven eight nine."
	chunks, err := chunker.Chunk(context.Background(), text, "p.txt")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.ChunkIndex != i {
			t.Errorf("Chunk %d: unexpected index %d", i, chunk.ChunkIndex)
		}
	}
}

func TestHybridChunkerMinSentencesAdmitsOverBudgetChunks(t *testing.T) {
	// the character budget only closes a chunk once min_sentences is met,
	// so two long sentences still land in one chunk
	chunker, _ := NewHybridChunker(30, 10, 0, 2)

	text := "This first sentence is well over budget. This second one is too."
	chunks, err := chunker.Chunk(context.Background(), text, "m.txt")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	if utf8.RuneCountInString(chunks[0].Text) <= 30 {
		t.Errorf("Expected chunk over the character budget, got %d chars", utf8.RuneCountInString(chunks[0].Text))
	}
}

func TestHybridChunkerIDsAreUnique(t *testing.T) {
	chunker, _ := NewHybridChunker(25, 1, 0, 1)

	text := "One two three. Four five six. Seven eight nine."
	chunks, err := chunker.Chunk(context.Background(), text, "ids.txt")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	seen := make(map[string]bool)
	for _, chunk := range chunks {
		if !strings.HasPrefix(chunk.ID, "hyb_") {
			t.Errorf("Unexpected ID prefix: %s", chunk.ID)
		}
		if seen[chunk.ID] {
			t.Errorf("Duplicate chunk ID: %s", chunk.ID)
		}
		seen[chunk.ID] = true
	}
}

func TestHybridChunkerConfigValidation(t *testing.T) {
	cases := []struct {
		name                                           string
		maxChars, maxSentences, overlapSents, minSents int
	}{
		{"zero max_chars", 0, 10, 1, 1},
		{"zero max_sentences", 1000, 0, 1, 1},
		{"negative overlap_sentences", 1000, 10, -1, 1},
		{"zero min_sentences", 1000, 10, 1, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewHybridChunker(tc.maxChars, tc.maxSentences, tc.overlapSents, tc.minSents)
			if !errors.HasCode(err, errors.ErrCodeConfigInvalid) {
				t.Errorf("Expected CONFIG_INVALID, got %v", err)
			}
		})
	}
}
