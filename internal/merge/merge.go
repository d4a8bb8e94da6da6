// Package merge reassembles logical lines that the upstream extractor
// split across physical lines: mid-sentence wraps, hyphenation, address
// fragments, and no-space-script continuations.
package merge

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/docoutline/docoutline/internal/normalize"
)

// connectives are trailing/leading tokens that signal an unfinished
// Latin-script clause.
var connectives = map[string]bool{
	"and": true, "or": true, "but": true, "nor": true, "yet": true,
	"so": true, "of": true, "to": true, "the": true, "a": true,
	"an": true, "with": true, "for": true, "in": true, "on": true,
	"at": true, "by": true, "from": true,
}

// noSpaceParticles are leading particles that continue a Japanese clause.
var noSpaceParticles = map[rune]bool{
	'の': true, 'に': true, 'を': true, 'は': true, 'が': true,
	'と': true, 'で': true, 'も': true, 'や': true, 'へ': true,
}

var (
	addrLeadNumber   = regexp.MustCompile(`^\d+\s+\p{L}`)
	addrStreetTail   = regexp.MustCompile(`(?i)\b(Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Lane|Ln|Boulevard|Blvd|Parkway|Pkwy)\.?\s*,?$`)
	addrCommaTail    = regexp.MustCompile(`,\s*\S{1,12}$`)
	addrUnitLead     = regexp.MustCompile(`(?i)^(Suite|Ste|Apt|Unit|Floor|Fl|#)\b`)
	addrUnitTail     = regexp.MustCompile(`(?i)\b(Suite|Ste|Apt|Unit|Floor|Fl)\.?\s*#?\w+$`)
	addrCityStateZip = regexp.MustCompile(`^[A-Z][a-zA-Z .]*,?\s*[A-Z]{2}\s+\d{5}(-\d{4})?$`)
	addrCityLead     = regexp.MustCompile(`^[A-Z][a-zA-Z .]*,$`)
	addrZipLead      = regexp.MustCompile(`^\d{5}(-\d{4})?\b`)

	cjkHeading = regexp.MustCompile(`^第[0-9０-９一二三四五六七八九十百]+[章部編節条項]`)
)

// rule holds the per-script joining behavior. Keeping the table explicit
// makes the merger data-driven and extensible to additional scripts.
type rule struct {
	separator string
	terminal  func(r rune) bool
	contStart func(text string) bool
}

var rules = map[normalize.Script]rule{
	normalize.ScriptLatin: {
		separator: " ",
		terminal: func(r rune) bool {
			return r == '.' || r == '!' || r == '?' || r == ':' || r == ';'
		},
		contStart: func(text string) bool {
			r := firstRune(text)
			if unicode.IsLower(r) {
				return true
			}
			// Case-sensitive: a capitalized "The" starts a sentence, a
			// lowercase one continues it.
			return connectives[firstWord(text)]
		},
	},
	normalize.ScriptNoSpace: {
		separator: "",
		terminal: func(r rune) bool {
			return r == '。' || r == '！' || r == '？' || r == '：'
		},
		contStart: func(text string) bool {
			return noSpaceParticles[firstRune(text)]
		},
	},
}

// Lines scans the valid-line stream once, accumulating a buffer and
// deciding for each line whether it continues the buffer or starts a new
// logical line. Merging is strictly forward: flushed lines are final, so
// applying Lines to its own output is a no-op.
func Lines(in []normalize.Line) []normalize.Line {
	var out []normalize.Line
	var buf normalize.Line
	have := false

	for _, next := range in {
		if !have {
			buf = clone(next)
			have = true
			continue
		}
		if shouldMerge(buf, next) {
			join(&buf, next)
			continue
		}
		out = append(out, buf)
		buf = clone(next)
	}
	if have {
		out = append(out, buf)
	}
	return out
}

func shouldMerge(buf, next normalize.Line) bool {
	if buf.Text == "" || next.Text == "" {
		return false
	}

	// Incomplete-line signal: the buffer visibly stops mid-clause.
	if incomplete(buf) {
		return true
	}

	// Continuation signal: the next line starts like the middle of a clause.
	if rules[next.Script].contStart(next.Text) {
		return true
	}

	// Script signal: adjacent no-space-script lines join unless the buffer
	// already ended a sentence or either side is a chapter-style heading.
	if buf.Script == normalize.ScriptNoSpace && next.Script == normalize.ScriptNoSpace {
		if !rules[buf.Script].terminal(lastRune(buf.Text)) &&
			!cjkHeading.MatchString(buf.Text) && !cjkHeading.MatchString(next.Text) {
			return true
		}
	}

	// Address signal: postal fragments merge regardless of the clause
	// signals above.
	if addressPartial(buf.Text) && addressContinuation(next.Text) {
		return true
	}

	return false
}

func incomplete(buf normalize.Line) bool {
	last := lastRune(buf.Text)
	switch last {
	case ',', '-', '(', '[', '{', '、':
		return true
	}
	if buf.Script == normalize.ScriptLatin {
		return connectives[strings.ToLower(lastWord(buf.Text))]
	}
	return false
}

// join appends next onto buf. The merged line keeps the first page index,
// the maximum font size, and the buffer's script tag when they agree.
func join(buf *normalize.Line, next normalize.Line) {
	bothNoSpace := buf.Script == normalize.ScriptNoSpace && next.Script == normalize.ScriptNoSpace
	switch {
	case bothNoSpace:
		buf.Text += next.Text
	case strings.HasSuffix(buf.Text, "-") && endsMidWord(buf.Text):
		// Soft hyphen line break: drop the hyphen, no space re-inserted.
		buf.Text = strings.TrimSuffix(buf.Text, "-") + next.Text
	default:
		buf.Text += rules[buf.Script].separator + next.Text
	}

	if next.FontSize > buf.FontSize {
		buf.FontSize = next.FontSize
	}
	if buf.Script != next.Script {
		buf.Script = normalize.ScriptLatin
	}
	buf.RunIDs = append(buf.RunIDs, next.RunIDs...)
}

// endsMidWord reports whether a trailing hyphen follows a letter, i.e.
// the extractor broke a word rather than ending a clause on a dash.
func endsMidWord(text string) bool {
	runes := []rune(strings.TrimSuffix(text, "-"))
	if len(runes) == 0 {
		return false
	}
	return unicode.IsLetter(runes[len(runes)-1])
}

func addressPartial(text string) bool {
	if addrStreetTail.MatchString(text) || addrUnitTail.MatchString(text) {
		return true
	}
	if addrLeadNumber.MatchString(text) && addrCommaTail.MatchString(text) {
		return true
	}
	return false
}

// addressContinuation also accepts a bare city fragment ("Springfield,"):
// matching it on the first pass, before the state and zip arrive, keeps the
// merge decision identical on every pass.
func addressContinuation(text string) bool {
	return addrUnitLead.MatchString(text) ||
		addrCityStateZip.MatchString(text) ||
		addrCityLead.MatchString(text) ||
		addrZipLead.MatchString(text)
}

func clone(l normalize.Line) normalize.Line {
	c := l
	c.RunIDs = append([]int(nil), l.RunIDs...)
	return c
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], ",.;:")
}

func lastWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[len(fields)-1], ",.;:")
}
