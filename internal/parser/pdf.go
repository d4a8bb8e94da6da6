package parser

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/docoutline/docoutline/internal/record"
)

// PDFParser handles PDF files. It reads styled text (with real font sizes)
// through the Go library first, then falls back to pdftotext with
// estimated sizes if available.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) ([]record.Page, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docoutline-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	pages, err := extractPDFRuns(tmpPath)
	if err != nil && p.FallbackPdftotext {
		pages, err = extractPdftotext(tmpPath)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	return pages, nil
}

// extractPDFRuns reads each page row by row. A row becomes one text run
// carrying the largest font size seen in it, so a heading set next to a
// superscript keeps its significance.
func extractPDFRuns(path string) ([]record.Page, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([]record.Page, 0, numPages)
	for i := 1; i <= numPages; i++ {
		pageIndex := i - 1 // output contract is 0-based
		out := record.Page{Index: pageIndex}

		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, out)
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			pages = append(pages, out)
			continue
		}

		for _, row := range rows {
			var sb strings.Builder
			var size float64
			for _, text := range row.Content {
				sb.WriteString(text.S)
				if text.FontSize > size {
					size = text.FontSize
				}
			}
			line := strings.TrimSpace(sb.String())
			if line == "" {
				continue
			}
			if size <= 0 {
				size = EstimateFontSize(line)
			}
			out.Runs = append(out.Runs, record.TextRun{
				Text:      line,
				FontSize:  size,
				PageIndex: pageIndex,
			})
		}
		pages = append(pages, out)
	}
	return pages, nil
}

// extractPdftotext shells out to poppler. Layout text has no font data, so
// sizes are estimated from line shape.
func extractPdftotext(path string) ([]record.Page, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}

	var pages []record.Page
	for i, pageText := range strings.Split(string(out), "\f") {
		page := record.Page{Index: i}
		for _, line := range strings.Split(pageText, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			page.Runs = append(page.Runs, record.TextRun{
				Text:      line,
				FontSize:  EstimateFontSize(line),
				PageIndex: i,
			})
		}
		pages = append(pages, page)
	}
	return pages, nil
}
