package parsers

import (
	"context"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ragtext/ragtext/pkg/errors"
)

// HTMLParser extracts readable text from HTML documents
type HTMLParser struct{}

// NewHTMLParser creates a new HTML parser
func NewHTMLParser() *HTMLParser {
	return &HTMLParser{}
}

// Parse strips markup and returns block-level text separated by blank
// lines so paragraph-based chunkers see document structure
func (hp *HTMLParser) Parse(ctx context.Context, reader io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return "", errors.NewFileError("failed to parse HTML", err)
	}

	doc.Find("script, style, noscript").Remove()

	var blocks []string
	doc.Find("p, h1, h2, h3, h4, h5, h6, li, blockquote, pre, td").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			blocks = append(blocks, strings.Join(strings.Fields(text), " "))
		}
	})

	// documents without block elements still yield their raw text
	if len(blocks) == 0 {
		text := strings.TrimSpace(doc.Text())
		if text == "" {
			return "", nil
		}
		return strings.Join(strings.Fields(text), " "), nil
	}

	return strings.Join(blocks, "\n\n"), nil
}

// Extensions lists the file extensions this parser handles
func (hp *HTMLParser) Extensions() []string {
	return []string{".html", ".htm", ".xhtml"}
}
