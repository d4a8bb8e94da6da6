package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"

	"github.com/docoutline/docoutline/internal/normalize"
	"github.com/docoutline/docoutline/internal/record"
)

// estimateWordCount counts whitespace-separated words on Latin-like lines
// and individual ideographs/kana on no-space-script lines.
func estimateWordCount(lines []normalize.Line) int {
	total := 0
	for _, l := range lines {
		if l.Script == normalize.ScriptNoSpace {
			for _, r := range l.Text {
				if unicode.IsLetter(r) {
					total++
				}
			}
			continue
		}
		total += len(strings.Fields(l.Text))
	}
	return total
}

// detectLanguage guesses the dominant document language from script tags:
// kana implies Japanese, other ideographs Chinese, everything else falls
// back to the default.
func detectLanguage(lines []normalize.Line) string {
	noSpace := 0
	kana := false
	for _, l := range lines {
		if l.Script != normalize.ScriptNoSpace {
			continue
		}
		noSpace++
		for _, r := range l.Text {
			if (r >= 0x3040 && r <= 0x309F) || (r >= 0x30A0 && r <= 0x30FF) {
				kana = true
				break
			}
		}
	}
	if noSpace*2 <= len(lines) {
		return record.DefaultLanguage
	}
	if kana {
		return language.Japanese.String()
	}
	return language.Chinese.String()
}
