package normalize

import (
	"testing"

	"github.com/docoutline/docoutline/internal/record"
)

func TestText_CompatibilityComposition(t *testing.T) {
	// Fullwidth forms and ligatures must compare equal to their plain
	// counterparts after normalization.
	cases := map[string]string{
		"Ｈｅｌｌｏ":          "Hello",
		"ﬁle ﬂow":        "file flow",
		"plain text":     "plain text",
		"  spaced\tout ": "spaced out",
	}
	for in, want := range cases {
		if got := Text(in); got != want {
			t.Errorf("Text(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestText_Idempotent(t *testing.T) {
	inputs := []string{
		"Ｈｅｌｌｏ　Ｗｏｒｌｄ",
		"ﬁnancial ﬁgures",
		"already normal",
		"これは日本語です",
		"",
	}
	for _, in := range inputs {
		once := Text(in)
		twice := Text(once)
		if once != twice {
			t.Errorf("Text not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestDetectScript(t *testing.T) {
	cases := []struct {
		text string
		want Script
	}{
		{"Hello world", ScriptLatin},
		{"1. Introduction", ScriptLatin},
		{"これは日本語の文章です", ScriptNoSpace},
		{"中文文档结构分析", ScriptNoSpace},
		{"カタカナのテスト", ScriptNoSpace},
		{"", ScriptLatin},
	}
	for _, c := range cases {
		if got := DetectScript(c.text); got != c.want {
			t.Errorf("DetectScript(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestLines_PreservesOrderAndPages(t *testing.T) {
	pages := []record.Page{
		{Index: 0, Runs: []record.TextRun{
			{Text: "Title", FontSize: 24, PageIndex: 0},
			{Text: "body one", FontSize: 10, PageIndex: 0},
		}},
		{Index: 1, Runs: []record.TextRun{
			{Text: "body two", FontSize: 10, PageIndex: 1},
		}},
	}

	lines := Lines(pages)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0].Text != "Title" || lines[0].PageIndex != 0 {
		t.Errorf("line 0 = %q page %d", lines[0].Text, lines[0].PageIndex)
	}
	if lines[2].Text != "body two" || lines[2].PageIndex != 1 {
		t.Errorf("line 2 = %q page %d", lines[2].Text, lines[2].PageIndex)
	}
	for i, l := range lines {
		if len(l.RunIDs) != 1 || l.RunIDs[0] != i {
			t.Errorf("line %d run ids = %v", i, l.RunIDs)
		}
	}
}

func TestLines_EmptyRunPassesThrough(t *testing.T) {
	// Empty-after-normalization lines survive here; dropping is the
	// artifact filter's job.
	pages := []record.Page{
		{Index: 0, Runs: []record.TextRun{{Text: "   ", FontSize: 10}}},
	}
	lines := Lines(pages)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != "" {
		t.Errorf("expected empty text, got %q", lines[0].Text)
	}
}

func TestLines_DropsInvalidUTF8(t *testing.T) {
	pages := []record.Page{
		{Index: 0, Runs: []record.TextRun{
			{Text: "good", FontSize: 10},
			{Text: string([]byte{0xff, 0xfe, 0xfd}), FontSize: 10},
			{Text: "also good", FontSize: 10},
		}},
	}
	lines := Lines(pages)
	if len(lines) != 2 {
		t.Fatalf("expected undecodable run dropped, got %d lines", len(lines))
	}
	if lines[0].Text != "good" || lines[1].Text != "also good" {
		t.Errorf("unexpected lines: %q, %q", lines[0].Text, lines[1].Text)
	}
}
