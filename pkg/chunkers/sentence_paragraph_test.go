package chunkers

import (
	"context"
	"testing"
)

func TestSentenceChunkerOneChunkPerSentence(t *testing.T) {
	chunker := NewSentenceChunker()

	chunks, err := chunker.Chunk(context.Background(), "Hello world. This is a test.", "hello.txt")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "Hello world." {
		t.Errorf("Unexpected first chunk: %q", chunks[0].Text)
	}
	if chunks[1].Text != "This is a test." {
		t.Errorf("Unexpected second chunk: %q", chunks[1].Text)
	}
	if chunks[0].ID != "sent_chunk_0" || chunks[1].ID != "sent_chunk_1" {
		t.Errorf("Unexpected IDs: %s, %s", chunks[0].ID, chunks[1].ID)
	}
	if chunks[0].ChunkIndex != 0 || chunks[1].ChunkIndex != 1 {
		t.Errorf("Unexpected indices: %d, %d", chunks[0].ChunkIndex, chunks[1].ChunkIndex)
	}
}

func TestSentenceChunkerEmptyText(t *testing.T) {
	chunker := NewSentenceChunker()
	chunks, err := chunker.Chunk(context.Background(), "", "empty.txt")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("Expected no chunks, got %d", len(chunks))
	}
}

func TestParagraphChunkerOneChunkPerParagraph(t *testing.T) {
	chunker := NewParagraphChunker()

	chunks, err := chunker.Chunk(context.Background(), "Para one.\n\nPara two.", "paras.txt")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "Para one." {
		t.Errorf("Unexpected first chunk: %q", chunks[0].Text)
	}
	if chunks[1].Text != "Para two." {
		t.Errorf("Unexpected second chunk: %q", chunks[1].Text)
	}
	if chunks[0].ID != "para_chunk_0" || chunks[1].ID != "para_chunk_1" {
		t.Errorf("Unexpected IDs: %s, %s", chunks[0].ID, chunks[1].ID)
	}
}

func TestParagraphChunkerDocumentOrder(t *testing.T) {
	chunker := NewParagraphChunker()

	chunks, err := chunker.Chunk(context.Background(), "alpha\n\nbravo\n\ncharlie\n\ndelta", "order.txt")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []string{"alpha", "bravo", "charlie", "delta"}
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
