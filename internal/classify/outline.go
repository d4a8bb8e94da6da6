package classify

import (
	"regexp"
	"sort"
	"strings"

	"github.com/docoutline/docoutline/internal/record"
)

// MaxOutlineEntries bounds the outline regardless of document length, to
// avoid over-segmentation on noisy documents.
const MaxOutlineEntries = 20

var leadingBullet = regexp.MustCompile(`^[•▪▫◦]\s*`)

// AssembleOutline deduplicates candidates (first occurrence wins), ranks
// them by descending confidence, truncates to the cap, and projects the
// survivors to external entries.
//
// The serialized order is the truncation order, confidence-descending, not
// page order: callers wanting reading order must re-sort by page.
func AssembleOutline(cands []Candidate) []record.OutlineEntry {
	seen := make(map[string]bool, len(cands))
	deduped := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		key := strings.ToLower(strings.TrimSpace(c.Line.Text))
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, c)
	}

	// Stable so equal-confidence entries keep page order.
	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Confidence > deduped[j].Confidence
	})

	if len(deduped) > MaxOutlineEntries {
		deduped = deduped[:MaxOutlineEntries]
	}

	out := make([]record.OutlineEntry, 0, len(deduped))
	for _, c := range deduped {
		out = append(out, record.OutlineEntry{
			Level: c.Level,
			Text:  cleanHeadingText(c.Line.Text),
			Page:  c.Line.PageIndex,
		})
	}
	return out
}

// cleanHeadingText strips list bullets and collapses whitespace. Section
// numbering is kept: it is part of the heading as readers see it.
func cleanHeadingText(text string) string {
	text = leadingBullet.ReplaceAllString(strings.TrimSpace(text), "")
	return strings.Join(strings.Fields(text), " ")
}
