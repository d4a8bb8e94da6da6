// Package normalize canonicalizes raw extracted text and tags each line
// with a detected script family, then filters out extraction artifacts.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/docoutline/docoutline/internal/record"
)

// Script identifies the writing-system family of a line. It drives the
// script-specific merge rules downstream.
type Script int

const (
	// ScriptLatin covers scripts that separate words with spaces.
	ScriptLatin Script = iota
	// ScriptNoSpace covers CJK-style scripts without inter-word spacing.
	ScriptNoSpace
)

func (s Script) String() string {
	if s == ScriptNoSpace {
		return "no_space"
	}
	return "latin_like"
}

// Line is a normalized text line flowing through the pipeline. After
// merging, a Line may aggregate several source runs: FontSize is the
// maximum among them and PageIndex belongs to the first.
type Line struct {
	Text      string
	Script    Script
	FontSize  float64
	PageIndex int
	RunIDs    []int
}

// Text applies Unicode compatibility composition (NFKC) and collapses
// internal whitespace, so visually identical glyphs compare equal
// regardless of source encoding variant. Idempotent.
func Text(s string) string {
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// DetectScript tags a line by its dominant character ranges.
func DetectScript(s string) Script {
	var cjk, other int
	for _, r := range s {
		switch {
		case isCJK(r):
			cjk++
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			other++
		}
	}
	if cjk > other {
		return ScriptNoSpace
	}
	return ScriptLatin
}

func isCJK(r rune) bool {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF: // CJK unified ideographs
		return true
	case r >= 0x3400 && r <= 0x4DBF: // CJK extension A
		return true
	case r >= 0x3040 && r <= 0x309F: // hiragana
		return true
	case r >= 0x30A0 && r <= 0x30FF: // katakana
		return true
	case r >= 0xF900 && r <= 0xFAFF: // CJK compatibility ideographs
		return true
	case r >= 0xFF66 && r <= 0xFF9D: // halfwidth katakana
		return true
	}
	return false
}

// Lines normalizes every run of every page, preserving order. Runs that are
// not valid UTF-8 are dropped; runs that normalize to the empty string pass
// through so that all drop decisions stay in the artifact filter.
func Lines(pages []record.Page) []Line {
	var out []Line
	runID := 0
	for _, page := range pages {
		for _, run := range page.Runs {
			id := runID
			runID++
			if !utf8.ValidString(run.Text) {
				continue
			}
			text := Text(run.Text)
			out = append(out, Line{
				Text:      text,
				Script:    DetectScript(text),
				FontSize:  run.FontSize,
				PageIndex: page.Index,
				RunIDs:    []int{id},
			})
		}
	}
	return out
}
