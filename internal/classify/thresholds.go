// Package classify scores merged lines as heading candidates, extracts the
// document title, and assembles the final outline.
package classify

import (
	"sort"

	"github.com/docoutline/docoutline/internal/normalize"
)

// Thresholds are document-relative font-size cut-offs for heading levels,
// derived once from the observed size distribution. Invariant:
// H1Min >= H2Min >= H3Min.
type Thresholds struct {
	H1Min float64
	H2Min float64
	H3Min float64

	// BodySize is the modal font size, assumed to be body text.
	BodySize float64
}

// Uniform reports the degenerate single-font-size case, where level
// assignment falls back entirely to pattern and content signals.
func (t Thresholds) Uniform() bool {
	return t.H1Min == t.H3Min && t.H3Min == t.BodySize
}

// EstimateThresholds partitions the document's own font-size distribution
// into heading bands. The modal size is taken as body text; the distinct
// sizes above it, largest first, become the H1/H2/H3 minimums. Documents
// with a single size collapse all three thresholds to it.
func EstimateThresholds(lines []normalize.Line) Thresholds {
	counts := make(map[float64]int)
	for _, l := range lines {
		if l.FontSize > 0 {
			counts[l.FontSize]++
		}
	}
	if len(counts) == 0 {
		return Thresholds{}
	}

	body := modalSize(counts)

	var above []float64
	for size := range counts {
		if size > body {
			above = append(above, size)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(above)))

	switch len(above) {
	case 0:
		return Thresholds{H1Min: body, H2Min: body, H3Min: body, BodySize: body}
	case 1:
		return Thresholds{H1Min: above[0], H2Min: above[0], H3Min: above[0], BodySize: body}
	case 2:
		return Thresholds{H1Min: above[0], H2Min: above[1], H3Min: above[1], BodySize: body}
	default:
		return Thresholds{H1Min: above[0], H2Min: above[1], H3Min: above[2], BodySize: body}
	}
}

// modalSize returns the most frequent size; ties go to the smaller size so
// that a large display font never masquerades as body text.
func modalSize(counts map[float64]int) float64 {
	var best float64
	bestCount := -1
	for size, n := range counts {
		if n > bestCount || (n == bestCount && size < best) {
			best = size
			bestCount = n
		}
	}
	return best
}
