package parsers

import (
	"context"
	"io"

	"github.com/ragtext/ragtext/pkg/chunkers"
	"github.com/ragtext/ragtext/pkg/errors"
)

// TextParser handles plain text documents
type TextParser struct{}

// NewTextParser creates a new plain text parser
func NewTextParser() *TextParser {
	return &TextParser{}
}

// Parse reads the content with tolerant decoding
func (tp *TextParser) Parse(ctx context.Context, reader io.Reader) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", errors.NewFileError("failed to read text content", err)
	}

	text, err := chunkers.DecodeText(data)
	if err != nil {
		return "", errors.NewFileError("failed to decode text content", err)
	}
	return text, nil
}

// Extensions lists the file extensions this parser handles
func (tp *TextParser) Extensions() []string {
	return []string{".txt", ".text", ".log"}
}
