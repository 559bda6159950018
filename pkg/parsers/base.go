// Package parsers converts source documents to plain text for chunking
package parsers

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ragtext/ragtext/pkg/errors"
)

// Parser extracts plain text from one document format
type Parser interface {
	// Parse reads the document and returns its plain text content
	Parse(ctx context.Context, reader io.Reader) (string, error)

	// Extensions lists the file extensions this parser handles
	Extensions() []string
}

// ParseFile opens the file and runs the parser registered for its extension
func ParseFile(ctx context.Context, path string) (string, error) {
	parser := ForFile(path)

	f, err := os.Open(path)
	if err != nil {
		// missing and unreadable sources classify the same way
		return "", errors.NewSourceNotFoundError(filepath.Base(path)).WithDetail("cause", err.Error())
	}
	defer f.Close()

	return parser.Parse(ctx, f)
}

// ForFile returns the parser for the file's extension, defaulting to the
// plain text parser
func ForFile(path string) Parser {
	ext := strings.ToLower(filepath.Ext(path))
	for _, parser := range registry {
		for _, supported := range parser.Extensions() {
			if ext == supported {
				return parser
			}
		}
	}
	return defaultParser
}

var (
	defaultParser Parser = NewTextParser()
	registry             = []Parser{
		NewTextParser(),
		NewHTMLParser(),
		NewPDFParser(),
		NewMarkdownParser(),
	}
)
