package normalize

import (
	"strings"
	"unicode"
)

// Ratio of special characters to visible characters above which a line is
// treated as encoding garbage.
const specialRatioLimit = 0.5

// IsValid reports whether a line carries real content. Lines failing any
// check are extraction artifacts: stray symbols, encoding garbage, or
// formatting-rule runs.
func IsValid(l Line) bool {
	text := strings.TrimSpace(l.Text)
	if text == "" {
		return false
	}

	runes := []rune(text)
	if len(runes) == 1 && !isWordRune(runes[0]) {
		// A lone punctuation or symbol character is OCR noise.
		return false
	}

	if isRepeatedRun(runes) {
		return false
	}

	var special, visible int
	for _, r := range runes {
		if unicode.IsSpace(r) {
			continue
		}
		visible++
		if !isWordRune(r) {
			special++
		}
	}
	if visible > 1 && float64(special)/float64(visible) > specialRatioLimit {
		return false
	}

	return true
}

// Filter drops invalid lines from the stream. Page attribution is carried
// on each line, so removing an artifact never shifts the page index of the
// lines that follow it.
func Filter(lines []Line) []Line {
	out := lines[:0:0]
	for _, l := range lines {
		if IsValid(l) {
			out = append(out, l)
		}
	}
	return out
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isRepeatedRun detects lines that are a run of four or more identical
// non-alphanumeric characters ("-----", "....", "****"), ignoring spaces.
func isRepeatedRun(runes []rune) bool {
	var first rune
	count := 0
	for _, r := range runes {
		if unicode.IsSpace(r) {
			continue
		}
		if count == 0 {
			first = r
			count = 1
			continue
		}
		if r != first {
			return false
		}
		count++
	}
	return count >= 4 && !isWordRune(first)
}
