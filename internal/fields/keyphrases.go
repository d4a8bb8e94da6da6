package fields

import "regexp"

const (
	maxKeyPhrases       = 15
	maxCapitalizedTerms = 10
	maxTechnicalTerms   = 5
)

var (
	// Capitalized multi-word terms ("Annual Revenue Report").
	capitalizedPhrase = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,3}\b`)
	// Tokens mixing letters with digits, or standalone acronyms.
	technicalTerm = regexp.MustCompile(`\b[A-Za-z]+[0-9]+[A-Za-z0-9]*\b|\b[A-Z]{2,}\b`)
)

// KeyPhrases extracts up to 15 notable terms from the document text:
// capitalized multi-word phrases first, then technical tokens, deduplicated
// in first-seen order.
func KeyPhrases(text string) []string {
	var raw []string

	phrases := capitalizedPhrase.FindAllString(text, -1)
	if len(phrases) > maxCapitalizedTerms {
		phrases = phrases[:maxCapitalizedTerms]
	}
	raw = append(raw, phrases...)

	terms := technicalTerm.FindAllString(text, -1)
	if len(terms) > maxTechnicalTerms {
		terms = terms[:maxTechnicalTerms]
	}
	raw = append(raw, terms...)

	out := dedupe(raw)
	if len(out) > maxKeyPhrases {
		out = out[:maxKeyPhrases]
	}
	return out
}
