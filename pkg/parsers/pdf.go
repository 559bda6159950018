package parsers

import (
	"bytes"
	"context"
	"io"

	"github.com/ledongthuc/pdf"

	"github.com/ragtext/ragtext/pkg/errors"
)

// PDFParser extracts text from PDF documents
type PDFParser struct{}

// NewPDFParser creates a new PDF parser
func NewPDFParser() *PDFParser {
	return &PDFParser{}
}

// Parse extracts the plain text of every page
func (pp *PDFParser) Parse(ctx context.Context, reader io.Reader) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", errors.NewFileError("failed to read PDF content", err)
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewFileError("failed to open PDF", err)
	}

	textReader, err := r.GetPlainText()
	if err != nil {
		return "", errors.NewFileError("failed to extract PDF text", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(textReader); err != nil {
		return "", errors.NewFileError("failed to read PDF text", err)
	}

	return buf.String(), nil
}

// Extensions lists the file extensions this parser handles
func (pp *PDFParser) Extensions() []string {
	return []string{".pdf"}
}
