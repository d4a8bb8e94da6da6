package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/docoutline/docoutline/internal/record"
)

// MarkdownParser handles Markdown files using goldmark. Heading levels map
// to synthesized font sizes; markdown has no pagination, so everything
// lands on page 0.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) ([]record.Page, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	page := record.Page{Index: 0}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := strings.TrimSpace(string(node.Text(src)))
			if title == "" {
				continue
			}
			page.Runs = append(page.Runs, record.TextRun{
				Text:     title,
				FontSize: headingSize(node.Level),
			})
		default:
			body := blockText(n, src)
			for _, line := range strings.Split(body, "\n") {
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				page.Runs = append(page.Runs, record.TextRun{
					Text:     line,
					FontSize: bodyFontSize,
				})
			}
		}
	}

	if len(page.Runs) == 0 {
		return nil, nil
	}
	return []record.Page{page}, nil
}

// blockText gets the text content of a goldmark AST node. Leaf blocks carry
// their own source lines; container blocks (lists, quotes) only have
// children, so the two cases are exclusive.
func blockText(n ast.Node, src []byte) string {
	if t, ok := n.(*ast.Text); ok {
		return string(t.Value(src))
	}
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines.Len() > 0 {
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(src))
				buf.WriteByte('\n')
			}
			return strings.TrimSpace(buf.String())
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := blockText(c, src); t != "" {
			buf.WriteString(t)
			buf.WriteByte('\n')
		}
	}
	return strings.TrimSpace(buf.String())
}
