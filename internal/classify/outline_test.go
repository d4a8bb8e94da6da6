package classify

import (
	"fmt"
	"testing"

	"github.com/docoutline/docoutline/internal/normalize"
	"github.com/docoutline/docoutline/internal/record"
)

func cand(text string, page int, level record.Level, conf float64) Candidate {
	return Candidate{
		Line:       normalize.Line{Text: text, PageIndex: page},
		Level:      level,
		Confidence: conf,
	}
}

func TestAssembleOutline_DedupeKeepsFirstOccurrence(t *testing.T) {
	cands := []Candidate{
		cand("Introduction", 0, record.LevelH1, 0.8),
		cand("INTRODUCTION", 7, record.LevelH2, 0.9),
	}
	out := AssembleOutline(cands)
	if len(out) != 1 {
		t.Fatalf("expected 1 entry after dedupe, got %d", len(out))
	}
	if out[0].Page != 0 || out[0].Level != record.LevelH1 {
		t.Errorf("dedupe kept the wrong occurrence: %+v", out[0])
	}
}

func TestAssembleOutline_OrderedByDescendingConfidence(t *testing.T) {
	cands := []Candidate{
		cand("Background", 1, record.LevelH2, 0.55),
		cand("Overview", 0, record.LevelH1, 0.95),
		cand("Details", 2, record.LevelH3, 0.70),
	}
	out := AssembleOutline(cands)
	want := []string{"Overview", "Details", "Background"}
	for i, text := range want {
		if out[i].Text != text {
			t.Errorf("entry %d = %q, want %q", i, out[i].Text, text)
		}
	}
}

func TestAssembleOutline_EqualConfidenceKeepsPageOrder(t *testing.T) {
	cands := []Candidate{
		cand("First Section", 1, record.LevelH1, 0.8),
		cand("Second Section", 2, record.LevelH1, 0.8),
		cand("Third Section", 3, record.LevelH1, 0.8),
	}
	out := AssembleOutline(cands)
	for i, want := range []int{1, 2, 3} {
		if out[i].Page != want {
			t.Errorf("entry %d page = %d, want %d", i, out[i].Page, want)
		}
	}
}

func TestAssembleOutline_CapsEntries(t *testing.T) {
	var cands []Candidate
	for i := 0; i < MaxOutlineEntries+5; i++ {
		cands = append(cands, cand(fmt.Sprintf("Section %d", i), i, record.LevelH2, 0.9-float64(i)*0.01))
	}
	out := AssembleOutline(cands)
	if len(out) != MaxOutlineEntries {
		t.Fatalf("expected %d entries, got %d", MaxOutlineEntries, len(out))
	}
	// Truncation drops the lowest-confidence tail.
	if out[0].Text != "Section 0" || out[len(out)-1].Text != fmt.Sprintf("Section %d", MaxOutlineEntries-1) {
		t.Errorf("unexpected survivors: first %q last %q", out[0].Text, out[len(out)-1].Text)
	}
}

func TestAssembleOutline_CleansBulletsKeepsNumbering(t *testing.T) {
	cands := []Candidate{
		cand("•  Overview of  Operations", 0, record.LevelH2, 0.8),
		cand("2.1 Methods", 1, record.LevelH2, 0.7),
	}
	out := AssembleOutline(cands)
	if out[0].Text != "Overview of Operations" {
		t.Errorf("bullet not stripped: %q", out[0].Text)
	}
	if out[1].Text != "2.1 Methods" {
		t.Errorf("section numbering altered: %q", out[1].Text)
	}
}

func TestAssembleOutline_Empty(t *testing.T) {
	out := AssembleOutline(nil)
	if len(out) != 0 {
		t.Errorf("expected empty outline, got %v", out)
	}
}
