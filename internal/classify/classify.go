package classify

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/docoutline/docoutline/internal/normalize"
	"github.com/docoutline/docoutline/internal/record"
)

const (
	// MinConfidence is the acceptance threshold for emitting a candidate.
	MinConfidence = 0.40
	// HighConfidence marks candidates kept preferentially when the outline
	// cap forces truncation.
	HighConfidence = 0.70

	weightPattern = 0.40
	weightFont    = 0.35
	weightContent = 0.25

	// belowBodyPenalty drags the combined score toward zero for lines in a
	// smaller-than-body font, regardless of the other signals.
	belowBodyPenalty = 0.3
)

// Candidate is a line scored as a potential heading. Ephemeral: produced
// and consumed within classification.
type Candidate struct {
	Line       normalize.Line
	Level      record.Level
	Confidence float64
	Reasons    []string
}

var (
	numberedPattern = regexp.MustCompile(`^(\d+)((?:\.\d+)*)\.?\s+\S`)
	letteredPattern = regexp.MustCompile(`^[A-Z]\.\s+\S`)
	chapterPattern  = regexp.MustCompile(`(?i)^(chapter|section|part|appendix)\b`)
	bulletPattern   = regexp.MustCompile(`^[•▪▫◦]\s*\p{Lu}`)
	cjkMajorPattern = regexp.MustCompile(`^第[0-9０-９一二三四五六七八九十百]+[章部編]`)
	cjkMinorPattern = regexp.MustCompile(`^第[0-9０-９一二三四五六七八九十百]+[節条項]`)
)

// headingKeywords are terms strongly associated with section headers.
var headingKeywords = []string{
	"introduction", "summary", "overview", "conclusion", "abstract",
	"references", "appendix", "background", "acknowledg", "contents",
	"glossary", "scope", "methodology", "results", "discussion",
	"objectives", "requirements",
	"序論", "結論", "概要", "まとめ", "目次", "背景", "付録", "はじめに",
}

// Classify scores every merged line against pattern, font, and lexical
// signals, emitting a candidate for each line whose combined confidence
// clears the acceptance threshold. Thresholds are passed by value so that
// concurrent documents never share classifier state.
func Classify(lines []normalize.Line, t Thresholds) []Candidate {
	var out []Candidate
	for _, line := range lines {
		if c, ok := classifyLine(line, t); ok {
			out = append(out, c)
		}
	}
	return out
}

func classifyLine(line normalize.Line, t Thresholds) (Candidate, bool) {
	text := strings.TrimSpace(line.Text)
	if len([]rune(text)) < 3 {
		return Candidate{}, false
	}

	var reasons []string

	patternScore, patternLevel, patternReason := PatternScore(text)
	if patternReason != "" {
		reasons = append(reasons, patternReason)
	}

	fontScore, fontLevel, belowBody := FontScore(line.FontSize, t)
	if fontLevel != "" {
		reasons = append(reasons, "font-"+strings.ToLower(string(fontLevel)))
	}

	contentScore, contentReason := ContentScore(text, line.Script)
	if contentReason != "" {
		reasons = append(reasons, contentReason)
	}

	confidence := weightPattern*patternScore + weightFont*fontScore + weightContent*contentScore
	if belowBody {
		confidence *= belowBodyPenalty
	}
	confidence = clamp01(confidence)

	if confidence < MinConfidence {
		return Candidate{}, false
	}

	return Candidate{
		Line:       line,
		Level:      resolveLevel(fontLevel, patternLevel, patternScore),
		Confidence: confidence,
		Reasons:    reasons,
	}, true
}

// PatternScore matches the line against known heading shapes and returns a
// sub-score in [0,1], the level the shape suggests, and a reason tag.
func PatternScore(text string) (float64, record.Level, string) {
	if m := numberedPattern.FindStringSubmatch(text); m != nil {
		depth := 1 + strings.Count(m[2], ".")
		switch depth {
		case 1:
			return 0.95, record.LevelH1, "numbered-h1"
		case 2:
			return 0.9, record.LevelH2, "numbered-h2"
		default:
			return 0.85, record.LevelH3, "numbered-h3"
		}
	}
	if chapterPattern.MatchString(text) {
		return 0.9, record.LevelH1, "chapter-word"
	}
	if cjkMajorPattern.MatchString(text) {
		return 0.9, record.LevelH1, "cjk-chapter"
	}
	if cjkMinorPattern.MatchString(text) {
		return 0.8, record.LevelH2, "cjk-section"
	}
	if isAllCapsShort(text) {
		return 0.75, record.LevelH1, "all-caps"
	}
	if letteredPattern.MatchString(text) {
		return 0.7, record.LevelH2, "lettered"
	}
	if strings.HasSuffix(text, "：") || (strings.HasSuffix(text, ":") && wordCount(text) <= 6) {
		return 0.55, record.LevelH3, "label-colon"
	}
	if isTitleCaseShort(text) {
		return 0.6, record.LevelH2, "title-case"
	}
	if bulletPattern.MatchString(text) {
		return 0.5, record.LevelH2, "bullet-lead"
	}
	return 0, "", ""
}

// FontScore places the line's size in the document's threshold bands. A
// size below the H3 minimum marks the line heading-unlikely.
func FontScore(size float64, t Thresholds) (float64, record.Level, bool) {
	if t.Uniform() || size <= 0 {
		// No usable font signal: neutral score, no level, no suppression.
		return 0.5, "", false
	}
	switch {
	case size >= t.H1Min:
		return 1.0, record.LevelH1, false
	case size >= t.H2Min:
		return 0.85, record.LevelH2, false
	case size >= t.H3Min:
		return 0.7, record.LevelH3, false
	case size >= t.BodySize:
		return 0.3, "", false
	default:
		return 0.1, "", true
	}
}

// ContentScore weighs heading vocabulary against body-text markers.
func ContentScore(text string, script normalize.Script) (float64, string) {
	score := 0.4
	reason := ""
	words := wordCount(text)

	lower := strings.ToLower(text)
	for _, kw := range headingKeywords {
		if strings.Contains(lower, kw) && words <= 8 {
			score += 0.4
			reason = "heading-keyword"
			break
		}
	}

	terminal := strings.HasSuffix(text, ".") || strings.HasSuffix(text, "。")
	switch {
	case terminal && words > 12:
		score -= 0.35
	case terminal:
		score -= 0.2
	case words <= 8:
		score += 0.15
	}

	// Multiple clauses read like running prose, not a header.
	if strings.Count(text, ",")+strings.Count(text, "、") >= 2 {
		score -= 0.1
	}
	if words > 12 {
		score -= 0.15
	}

	return clamp01(score), reason
}

// resolveLevel assigns the font band's level, letting a strong pattern
// shift it by at most one step. Without a font band the pattern decides.
func resolveLevel(fontLevel, patternLevel record.Level, patternScore float64) record.Level {
	if fontLevel == "" {
		if patternLevel != "" {
			return patternLevel
		}
		return record.LevelH3
	}
	if patternLevel == "" || patternScore < 0.7 || patternLevel == fontLevel {
		return fontLevel
	}
	fi, pi := levelRank(fontLevel), levelRank(patternLevel)
	if pi < fi {
		return levelFromRank(fi - 1)
	}
	return levelFromRank(fi + 1)
}

func levelRank(l record.Level) int {
	switch l {
	case record.LevelH1:
		return 1
	case record.LevelH2:
		return 2
	default:
		return 3
	}
}

func levelFromRank(r int) record.Level {
	switch {
	case r <= 1:
		return record.LevelH1
	case r == 2:
		return record.LevelH2
	default:
		return record.LevelH3
	}
}

func isAllCapsShort(text string) bool {
	if len([]rune(text)) > 60 {
		return false
	}
	letters := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters >= 4
}

func isTitleCaseShort(text string) bool {
	if strings.HasSuffix(text, ".") {
		return false
	}
	fields := strings.Fields(text)
	if len(fields) < 2 || len(fields) > 8 {
		return false
	}
	for _, f := range fields {
		r := []rune(f)[0]
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
