package classify

import (
	"math"
	"testing"

	"github.com/docoutline/docoutline/internal/normalize"
	"github.com/docoutline/docoutline/internal/record"
)

var reportThresholds = Thresholds{H1Min: 24, H2Min: 16, H3Min: 16, BodySize: 10}

func line(text string, size float64, page int) normalize.Line {
	return normalize.Line{
		Text:      text,
		Script:    normalize.DetectScript(text),
		FontSize:  size,
		PageIndex: page,
	}
}

func TestClassify_NumberedSectionIsHighConfidenceH1(t *testing.T) {
	cands := Classify([]normalize.Line{line("1. Introduction", 16, 1)}, reportThresholds)
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	c := cands[0]
	if c.Level != record.LevelH1 {
		t.Errorf("level = %v, want H1", c.Level)
	}
	if c.Confidence < HighConfidence {
		t.Errorf("confidence = %v, want >= %v", c.Confidence, HighConfidence)
	}
}

func TestClassify_ProseIsRejected(t *testing.T) {
	prose := "The quarterly results were strong, and revenue increased across all regions during the period."
	cands := Classify([]normalize.Line{line(prose, 10, 2)}, reportThresholds)
	if len(cands) != 0 {
		t.Errorf("prose classified as heading: %+v", cands)
	}
}

func TestClassify_BelowBodyFontIsSuppressed(t *testing.T) {
	cands := Classify([]normalize.Line{line("Fine Print Notice", 8, 3)}, reportThresholds)
	if len(cands) != 0 {
		t.Errorf("below-body line classified as heading: %+v", cands)
	}
}

func TestClassify_TooShortIsRejected(t *testing.T) {
	cands := Classify([]normalize.Line{line("Hi", 24, 0)}, reportThresholds)
	if len(cands) != 0 {
		t.Errorf("two-rune line classified as heading: %+v", cands)
	}
}

func TestClassify_UniformFontFallsBackToPatterns(t *testing.T) {
	uniform := Thresholds{H1Min: 12, H2Min: 12, H3Min: 12, BodySize: 12}
	cands := Classify([]normalize.Line{line("第1章はじめに", 12, 0)}, uniform)
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	if cands[0].Level != record.LevelH1 {
		t.Errorf("level = %v, want H1", cands[0].Level)
	}
	if cands[0].Confidence < MinConfidence {
		t.Errorf("confidence = %v below acceptance", cands[0].Confidence)
	}
}

func TestClassify_AllCapsWithoutFontSignal(t *testing.T) {
	cands := Classify([]normalize.Line{line("EXECUTIVE SUMMARY", 0, 0)}, reportThresholds)
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	if cands[0].Level != record.LevelH1 {
		t.Errorf("level = %v, want H1", cands[0].Level)
	}
}

func TestClassify_ConfidenceBounds(t *testing.T) {
	lines := []normalize.Line{
		line("1. Introduction", 24, 0),
		line("APPENDIX", 24, 5),
		line("2.1 Detailed Requirements Overview", 16, 2),
		line("Chapter 7", 24, 6),
	}
	for _, c := range Classify(lines, reportThresholds) {
		if c.Confidence < 0 || c.Confidence > 1 || math.IsNaN(c.Confidence) {
			t.Errorf("confidence out of range for %q: %v", c.Line.Text, c.Confidence)
		}
	}
}

func TestResolveLevel_PatternShiftsOneStep(t *testing.T) {
	// Deep numbering in an H1-sized font lands one step below the font
	// band, not at the pattern's own level.
	cands := Classify([]normalize.Line{line("1.1.1 Detailed Design", 24, 4)}, reportThresholds)
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	if cands[0].Level != record.LevelH2 {
		t.Errorf("level = %v, want H2 (font H1 shifted one step toward pattern H3)", cands[0].Level)
	}
}

func TestPatternScore_Shapes(t *testing.T) {
	cases := []struct {
		text  string
		score float64
		level record.Level
	}{
		{"1. Introduction", 0.95, record.LevelH1},
		{"2.3 Data Model", 0.9, record.LevelH2},
		{"4.1.2 Error Handling", 0.85, record.LevelH3},
		{"Chapter 3: Results", 0.9, record.LevelH1},
		{"Appendix B", 0.9, record.LevelH1},
		{"第２章設計", 0.9, record.LevelH1},
		{"第3節実装", 0.8, record.LevelH2},
		{"TABLE OF CONTENTS", 0.75, record.LevelH1},
		{"B. Secondary Goals", 0.7, record.LevelH2},
		{"Prerequisites:", 0.55, record.LevelH3},
		{"System Design Overview", 0.6, record.LevelH2},
		{"plain prose with no shape at all", 0, ""},
	}
	for _, c := range cases {
		score, level, _ := PatternScore(c.text)
		if score != c.score || level != c.level {
			t.Errorf("PatternScore(%q) = (%v, %v), want (%v, %v)",
				c.text, score, level, c.score, c.level)
		}
	}
}

func TestFontScore_Bands(t *testing.T) {
	cases := []struct {
		size     float64
		score    float64
		level    record.Level
		suppress bool
	}{
		{30, 1.0, record.LevelH1, false},
		{24, 1.0, record.LevelH1, false},
		{16, 0.85, record.LevelH2, false},
		{11, 0.3, "", false},
		{10, 0.3, "", false},
		{8, 0.1, "", true},
		{0, 0.5, "", false},
	}
	for _, c := range cases {
		score, level, suppress := FontScore(c.size, reportThresholds)
		if score != c.score || level != c.level || suppress != c.suppress {
			t.Errorf("FontScore(%v) = (%v, %v, %v), want (%v, %v, %v)",
				c.size, score, level, suppress, c.score, c.level, c.suppress)
		}
	}
}

func TestContentScore_TerminalProsePenalized(t *testing.T) {
	short, _ := ContentScore("Background", normalize.ScriptLatin)
	prose, _ := ContentScore("This sentence carries on for quite a while before it finally comes to an end.", normalize.ScriptLatin)
	if short <= prose {
		t.Errorf("short heading scored %v, long prose %v; want heading higher", short, prose)
	}
}
