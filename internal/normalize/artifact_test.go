package normalize

import "testing"

func TestIsValid(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"Introduction", true},
		{"1. Scope of Work", true},
		{"a", true},            // single letter is fine
		{"7", true},            // single digit is fine
		{"•", false},           // lone bullet
		{"|", false},           // lone pipe
		{"", false},            // empty
		{"   ", false},         // whitespace only
		{"-----", false},       // horizontal rule
		{"..........", false},  // leader dots
		{"* * * *", false},     // repeated run with spaces
		{"---", false},         // short repeat run, still majority special
		{"- item one", true},   // punctuation-led but mostly words
		{"@#$% &*!", false},    // encoding garbage, majority special
		{"C++ (2nd ed.)", true}, // punctuation-heavy but mostly words
		{"これは有効な行です", true},
	}
	for _, c := range cases {
		l := Line{Text: c.text, Script: DetectScript(c.text)}
		if got := IsValid(l); got != c.want {
			t.Errorf("IsValid(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestFilter_KeepsPageAttribution(t *testing.T) {
	in := []Line{
		{Text: "Heading", PageIndex: 0},
		{Text: "•", PageIndex: 0},
		{Text: "body on the next page", PageIndex: 1},
	}
	out := Filter(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 lines after filtering, got %d", len(out))
	}
	if out[0].Text != "Heading" || out[0].PageIndex != 0 {
		t.Errorf("out[0] = %+v", out[0])
	}
	if out[1].Text != "body on the next page" || out[1].PageIndex != 1 {
		t.Errorf("out[1] = %+v", out[1])
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := []Line{
		{Text: "••••"},
		{Text: "kept"},
	}
	_ = Filter(in)
	if in[0].Text != "••••" {
		t.Errorf("input slice mutated: %+v", in[0])
	}
}
