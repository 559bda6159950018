package parsers

import (
	"context"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/ragtext/ragtext/pkg/errors"
)

// MarkdownParser extracts plain text from Markdown documents
type MarkdownParser struct {
	md goldmark.Markdown
}

// NewMarkdownParser creates a new markdown parser
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{md: goldmark.New()}
}

// Parse walks the Markdown AST and collects text content, emitting blank
// lines between block nodes so paragraph structure survives
func (mp *MarkdownParser) Parse(ctx context.Context, reader io.Reader) (string, error) {
	source, err := io.ReadAll(reader)
	if err != nil {
		return "", errors.NewFileError("failed to read markdown content", err)
	}

	doc := mp.md.Parser().Parse(text.NewReader(source))

	var sb strings.Builder
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Text:
			if entering {
				sb.Write(node.Segment.Value(source))
				if node.SoftLineBreak() || node.HardLineBreak() {
					sb.WriteByte('\n')
				}
			}
		case *ast.Paragraph, *ast.Heading, *ast.ListItem, *ast.Blockquote:
			if !entering {
				sb.WriteString("\n\n")
			}
		case *ast.CodeBlock:
			if entering {
				for i := 0; i < node.Lines().Len(); i++ {
					line := node.Lines().At(i)
					sb.Write(line.Value(source))
				}
				sb.WriteString("\n")
			}
		case *ast.FencedCodeBlock:
			if entering {
				for i := 0; i < node.Lines().Len(); i++ {
					line := node.Lines().At(i)
					sb.Write(line.Value(source))
				}
				sb.WriteString("\n")
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", errors.NewFileError("failed to walk markdown document", err)
	}

	return strings.TrimSpace(sb.String()), nil
}

// Extensions lists the file extensions this parser handles
func (mp *MarkdownParser) Extensions() []string {
	return []string{".md", ".markdown"}
}
