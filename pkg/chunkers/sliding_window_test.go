package chunkers

import (
	"context"
	"testing"

	"github.com/ragtext/ragtext/pkg/errors"
)

func TestSlidingWindowChunkerOverlappingStride(t *testing.T) {
	chunker, err := NewSlidingWindowChunker(4, 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	chunks, err := chunker.Chunk(context.Background(), "abcdefgh", "s.txt")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []string{"abcd", "cdef", "efgh", "gh"}
	if len(chunks) != len(expected) {
		t.Fatalf("Expected %d chunks, got %d", len(expected), len(chunks))
	}
	for i, want := range expected {
		if chunks[i].Text != want {
			t.Errorf("Chunk %d: expected %q, got %q", i, want, chunks[i].Text)
		}
		if chunks[i].ChunkIndex != i {
			t.Errorf("Chunk %d: unexpected index %d", i, chunks[i].ChunkIndex)
		}
	}
}

func TestSlidingWindowChunkerStrideLargerThanWindow(t *testing.T) {
	chunker, _ := NewSlidingWindowChunker(2, 5)

	chunks, err := chunker.Chunk(context.Background(), "abcdefghij", "gap.txt")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// stride exceeding the window skips characters
	expected := []string{"ab", "fg"}
	if len(chunks) != len(expected) {
		t.Fatalf("Expected %d chunks, got %d", len(expected), len(chunks))
	}
	for i, want := range expected {
		if chunks[i].Text != want {
			t.Errorf("Chunk %d: expected %q, got %q", i, want, chunks[i].Text)
		}
	}
}

func TestSlidingWindowChunkerUnitStrideTerminates(t *testing.T) {
	chunker, _ := NewSlidingWindowChunker(3, 1)

	chunks, err := chunker.Chunk(context.Background(), "x", "x.txt")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
}

func TestSlidingWindowChunkerConfigValidation(t *testing.T) {
	if _, err := NewSlidingWindowChunker(0, 1); !errors.HasCode(err, errors.ErrCodeConfigInvalid) {
		t.Errorf("Expected CONFIG_INVALID for zero window, got %v", err)
	}
	if _, err := NewSlidingWindowChunker(4, 0); !errors.HasCode(err, errors.ErrCodeConfigInvalid) {
		t.Errorf("Expected CONFIG_INVALID for zero stride, got %v", err)
	}
	if _, err := NewSlidingWindowChunker(-1, -1); !errors.HasCode(err, errors.ErrCodeConfigInvalid) {
		t.Errorf("Expected CONFIG_INVALID for negative params, got %v", err)
	}
}
