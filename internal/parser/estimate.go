package parser

import (
	"regexp"
	"strings"
	"unicode"
)

// Font sizes synthesized for formats that carry structural heading levels
// (markdown, html, docx styles) instead of real point sizes.
var headingSizes = map[int]float64{
	1: 24,
	2: 18,
	3: 14,
	4: 12.5,
	5: 11.5,
	6: 11,
}

// bodyFontSize is the synthesized size for running text.
const bodyFontSize = 10

var (
	numberedLead  = regexp.MustCompile(`^\d+\.`)
	titleCaseLine = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*$`)
)

// headingSize maps a structural heading level to a synthesized font size.
func headingSize(level int) float64 {
	if s, ok := headingSizes[level]; ok {
		return s
	}
	return bodyFontSize
}

// EstimateFontSize guesses a font size for formats with no size data at
// all, from the shape of the line: short all-caps and numbered lines look
// like headings, everything else like body text.
func EstimateFontSize(text string) float64 {
	text = strings.TrimSpace(text)
	if isUpper(text) && len(text) < 50 {
		return 14
	}
	if numberedLead.MatchString(text) {
		return 13
	}
	if titleCaseLine.MatchString(text) && len(text) < 60 {
		return 12
	}
	return bodyFontSize
}

func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			hasLetter = true
		}
	}
	return hasLetter
}
