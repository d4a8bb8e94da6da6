package classify

import (
	"regexp"
	"strings"

	"github.com/docoutline/docoutline/internal/normalize"
	"github.com/docoutline/docoutline/internal/record"
)

// titleMinScore is the bar a first-page line must clear to be the title.
const titleMinScore = 0.35

// How many leading lines of the first page are title-eligible.
const titleWindow = 10

var titleFieldLike = regexp.MustCompile(
	`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}` + // email
		`|(?i)(?:https?://|www\.)\S+` + // url
		`|\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`, // date
)

// ExtractTitle picks the most title-like line from the first page's merged
// lines: large relative font, near the top, short, and not shaped like a
// numbered heading or a structured field. Falls back to the first valid
// line, then to the placeholder when the page is empty.
func ExtractTitle(lines []normalize.Line) string {
	var firstPage []normalize.Line
	for _, l := range lines {
		if l.PageIndex == 0 {
			firstPage = append(firstPage, l)
		}
	}
	if len(firstPage) == 0 {
		return record.PlaceholderTitle
	}

	var maxSize float64
	for _, l := range firstPage {
		if l.FontSize > maxSize {
			maxSize = l.FontSize
		}
	}

	best := -1.0
	bestText := ""
	window := firstPage
	if len(window) > titleWindow {
		window = window[:titleWindow]
	}
	for i, l := range window {
		if score := titleScore(l, i, maxSize); score > best {
			best = score
			bestText = strings.TrimSpace(l.Text)
		}
	}

	if best >= titleMinScore && bestText != "" {
		return bestText
	}
	return strings.TrimSpace(firstPage[0].Text)
}

func titleScore(l normalize.Line, position int, maxSize float64) float64 {
	text := strings.TrimSpace(l.Text)
	runes := len([]rune(text))
	if runes < 3 {
		return 0
	}

	var score float64
	if maxSize > 0 {
		score += 0.5 * (l.FontSize / maxSize)
	}
	score += 0.2 * (1 - float64(position)/float64(titleWindow))
	if runes <= 80 {
		score += 0.2
	}
	if runes <= 40 {
		score += 0.1
	}

	// Numbered headings and structured fields are not titles.
	if numberedPattern.MatchString(text) {
		score -= 0.4
	}
	if titleFieldLike.MatchString(text) {
		score -= 0.5
	}
	if strings.HasSuffix(text, ".") && wordCount(text) > 10 {
		score -= 0.3
	}

	return score
}
