// Package fields scans normalized document text for structured fields
// (emails, dates, URLs, versions, addresses, phone numbers and friends)
// with no cross-line state and no dependency on classification.
package fields

import (
	"fmt"
	"regexp"

	"github.com/docoutline/docoutline/internal/record"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})\b`)
	datePattern  = regexp.MustCompile(`\b(?:\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}[/-]\d{1,2}[/-]\d{1,2}|(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{1,2},?\s+\d{4})\b`)
	urlPattern   = regexp.MustCompile(`(?:https?://|www\.)[A-Za-z0-9.-]+\.[A-Za-z]{2,}(?:/[^\s]*)?`)

	versionPattern   = regexp.MustCompile(`(?i)(?:version|ver\.?|v\.?)\s*(\d+(?:\.\d+)*)`)
	copyrightPattern = regexp.MustCompile(`(?i)©\s*(\d{4}(?:-\d{4})?)|copyright\s*(?:©)?\s*(\d{4}(?:-\d{4})?)`)
	addressPattern   = regexp.MustCompile(`\d+\s+[A-Za-z\s]+(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Lane|Ln|Boulevard|Blvd|Parkway|Pkwy)\b`)
	pricePattern     = regexp.MustCompile(`\$\s*\d+(?:,\d{3})*(?:\.\d{2})?`)
	idPattern        = regexp.MustCompile(`\b(?:ID|id|Id)[\s:]*([A-Z0-9]{5,})\b`)
	referencePattern = regexp.MustCompile(`\b(?:Ref|REF|Reference)[\s:]*([A-Z0-9-]{3,})\b`)
)

// Extract scans text for every field kind. Each kind's matches are
// deduplicated in first-seen order.
func Extract(text string) record.ImportantFields {
	return record.ImportantFields{
		Emails:    matches(emailPattern, text),
		Dates:     matches(datePattern, text),
		URLs:      matches(urlPattern, text),
		Versions:  groupMatches(versionPattern, text),
		Addresses: matches(addressPattern, text),
		Phones:    phoneMatches(text),

		Copyrights: groupMatches(copyrightPattern, text),
		Prices:     matches(pricePattern, text),
		IDNumbers:  groupMatches(idPattern, text),
		References: groupMatches(referencePattern, text),
	}
}

// matches returns whole-pattern matches, deduplicated in first-seen order.
func matches(re *regexp.Regexp, text string) []string {
	return dedupe(re.FindAllString(text, -1))
}

// groupMatches returns the first non-empty capture group of each match.
func groupMatches(re *regexp.Regexp, text string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		for _, g := range m[1:] {
			if g != "" {
				out = append(out, g)
				break
			}
		}
	}
	return dedupe(out)
}

// phoneMatches formats grouped phone captures uniformly.
func phoneMatches(text string) []string {
	var out []string
	for _, m := range phonePattern.FindAllStringSubmatch(text, -1) {
		out = append(out, fmt.Sprintf("(%s) %s-%s", m[1], m[2], m[3]))
	}
	return dedupe(out)
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
