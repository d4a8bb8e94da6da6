package merge

import (
	"reflect"
	"testing"

	"github.com/docoutline/docoutline/internal/normalize"
)

func latin(text string, page int, size float64, ids ...int) normalize.Line {
	return normalize.Line{
		Text:      text,
		Script:    normalize.ScriptLatin,
		FontSize:  size,
		PageIndex: page,
		RunIDs:    ids,
	}
}

func noSpace(text string, page int, size float64, ids ...int) normalize.Line {
	return normalize.Line{
		Text:      text,
		Script:    normalize.ScriptNoSpace,
		FontSize:  size,
		PageIndex: page,
		RunIDs:    ids,
	}
}

func texts(lines []normalize.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestLines_TrailingCommaMerges(t *testing.T) {
	in := []normalize.Line{
		latin("The committee reviewed the proposal,", 0, 10, 0),
		latin("Which had been submitted in March.", 0, 10, 1),
	}
	out := Lines(in)
	if len(out) != 1 {
		t.Fatalf("expected 1 merged line, got %v", texts(out))
	}
	want := "The committee reviewed the proposal, Which had been submitted in March."
	if out[0].Text != want {
		t.Errorf("merged text = %q, want %q", out[0].Text, want)
	}
}

func TestLines_LowercaseContinuationMerges(t *testing.T) {
	in := []normalize.Line{
		latin("The quarterly results were strong, and revenue", 0, 10, 0),
		latin("increased across all regions during the period.", 0, 10, 1),
	}
	out := Lines(in)
	if len(out) != 1 {
		t.Fatalf("expected 1 merged line, got %v", texts(out))
	}
	want := "The quarterly results were strong, and revenue increased across all regions during the period."
	if out[0].Text != want {
		t.Errorf("merged text = %q, want %q", out[0].Text, want)
	}
}

func TestLines_HyphenatedWordRejoins(t *testing.T) {
	in := []normalize.Line{
		latin("The department manages all infor-", 0, 10, 0),
		latin("mation systems for the agency.", 0, 10, 1),
	}
	out := Lines(in)
	if len(out) != 1 {
		t.Fatalf("expected 1 merged line, got %v", texts(out))
	}
	want := "The department manages all information systems for the agency."
	if out[0].Text != want {
		t.Errorf("merged text = %q, want %q", out[0].Text, want)
	}
}

func TestLines_HeadingDoesNotSwallowBody(t *testing.T) {
	in := []normalize.Line{
		latin("Introduction", 0, 18, 0),
		latin("This chapter describes the system architecture.", 0, 10, 1),
	}
	out := Lines(in)
	if len(out) != 2 {
		t.Fatalf("expected heading kept separate, got %v", texts(out))
	}
}

func TestLines_AddressFragmentsMerge(t *testing.T) {
	in := []normalize.Line{
		latin("123 Main Street", 0, 10, 0),
		latin("Suite 400", 0, 10, 1),
		latin("Springfield, IL 62704", 0, 10, 2),
	}
	out := Lines(in)
	if len(out) != 1 {
		t.Fatalf("expected address to merge into 1 line, got %v", texts(out))
	}
	want := "123 Main Street Suite 400 Springfield, IL 62704"
	if out[0].Text != want {
		t.Errorf("merged text = %q, want %q", out[0].Text, want)
	}
}

func TestLines_AddressCityFragmentMergesInOnePass(t *testing.T) {
	in := []normalize.Line{
		latin("123 Main St.", 0, 10, 0),
		latin("Springfield,", 0, 10, 1),
		latin("IL 62704", 0, 10, 2),
	}
	out := Lines(in)
	if len(out) != 1 {
		t.Fatalf("expected address to merge in a single pass, got %v", texts(out))
	}
	want := "123 Main St. Springfield, IL 62704"
	if out[0].Text != want {
		t.Errorf("merged text = %q, want %q", out[0].Text, want)
	}
	twice := Lines(out)
	if !reflect.DeepEqual(out, twice) {
		t.Errorf("address merge not idempotent:\n once: %v\ntwice: %v", texts(out), texts(twice))
	}
}

func TestLines_NoSpaceScriptConcatenatesWithoutSeparator(t *testing.T) {
	in := []normalize.Line{
		noSpace("これは長い日本語の文章で", 0, 10, 0),
		noSpace("あり、途中で折り返されています。", 0, 10, 1),
	}
	out := Lines(in)
	if len(out) != 1 {
		t.Fatalf("expected 1 merged line, got %v", texts(out))
	}
	want := "これは長い日本語の文章であり、途中で折り返されています。"
	if out[0].Text != want {
		t.Errorf("merged text = %q, want %q", out[0].Text, want)
	}
}

func TestLines_CJKHeadingStaysSeparate(t *testing.T) {
	in := []normalize.Line{
		noSpace("第1章はじめに", 0, 10, 0),
		noSpace("本書の目的を説明する。", 0, 10, 1),
	}
	out := Lines(in)
	if len(out) != 2 {
		t.Fatalf("expected chapter heading kept separate, got %v", texts(out))
	}
}

func TestLines_TerminalSentenceStopsNoSpaceMerge(t *testing.T) {
	in := []normalize.Line{
		noSpace("最初の文はここで終わる。", 0, 10, 0),
		noSpace("次の文は別の論理行になる。", 0, 10, 1),
	}
	out := Lines(in)
	if len(out) != 2 {
		t.Fatalf("expected sentence boundary to stop merging, got %v", texts(out))
	}
}

func TestLines_MergedLineKeepsMaxFontAndFirstPage(t *testing.T) {
	in := []normalize.Line{
		latin("Results are summarized in the", 1, 10, 3),
		latin("table below for every region.", 2, 12, 4),
	}
	out := Lines(in)
	if len(out) != 1 {
		t.Fatalf("expected 1 merged line, got %v", texts(out))
	}
	if out[0].FontSize != 12 {
		t.Errorf("font size = %v, want 12", out[0].FontSize)
	}
	if out[0].PageIndex != 1 {
		t.Errorf("page index = %d, want 1", out[0].PageIndex)
	}
	if !reflect.DeepEqual(out[0].RunIDs, []int{3, 4}) {
		t.Errorf("run ids = %v, want [3 4]", out[0].RunIDs)
	}
}

func TestLines_Idempotent(t *testing.T) {
	in := []normalize.Line{
		latin("Overview", 0, 18, 0),
		latin("The system processes documents and", 0, 10, 1),
		latin("produces a structured record.", 0, 10, 2),
		latin("2. Architecture", 1, 16, 3),
		noSpace("これは続きの", 1, 10, 4),
		noSpace("文章です。", 1, 10, 5),
		latin("123 Main St.", 2, 10, 6),
		latin("Springfield,", 2, 10, 7),
		latin("IL 62704", 2, 10, 8),
	}
	once := Lines(in)
	twice := Lines(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merge not idempotent:\n once: %v\ntwice: %v", texts(once), texts(twice))
	}
}

func TestLines_EmptyAndSingle(t *testing.T) {
	if out := Lines(nil); out != nil {
		t.Errorf("Lines(nil) = %v, want nil", out)
	}
	single := []normalize.Line{latin("Only line", 0, 10, 0)}
	out := Lines(single)
	if len(out) != 1 || out[0].Text != "Only line" {
		t.Errorf("single line changed: %v", texts(out))
	}
}

func TestLines_DoesNotMutateInput(t *testing.T) {
	in := []normalize.Line{
		latin("ends with a,", 0, 10, 0),
		latin("continuation here.", 0, 10, 1),
	}
	_ = Lines(in)
	if in[0].Text != "ends with a," || len(in[0].RunIDs) != 1 {
		t.Errorf("input mutated: %+v", in[0])
	}
}
