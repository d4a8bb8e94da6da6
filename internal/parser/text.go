package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/docoutline/docoutline/internal/record"
)

// TextParser handles plain text files. Form feeds delimit pages; font
// sizes are estimated from line shape since plain text carries none.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) ([]record.Page, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	pages := []record.Page{{Index: 0}}
	pageIndex := 0

	for scanner.Scan() {
		line := scanner.Text()
		for strings.Contains(line, "\f") {
			before, after, _ := strings.Cut(line, "\f")
			appendLine(&pages[pageIndex], before)
			pageIndex++
			pages = append(pages, record.Page{Index: pageIndex})
			line = after
		}
		appendLine(&pages[pageIndex], line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// A file with no content at all still reports zero pages of runs.
	if len(pages) == 1 && len(pages[0].Runs) == 0 {
		return nil, nil
	}
	return pages, nil
}

func appendLine(page *record.Page, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	page.Runs = append(page.Runs, record.TextRun{
		Text:      line,
		FontSize:  EstimateFontSize(line),
		PageIndex: page.Index,
	})
}
