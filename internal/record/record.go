package record

// TextRun is a contiguous span of extracted text sharing one font size,
// as delivered by an upstream decoder. Read-only input to the pipeline.
type TextRun struct {
	Text      string  `json:"text"`
	FontSize  float64 `json:"font_size"`
	PageIndex int     `json:"page_index"`
}

// Page is an ordered sequence of raw text runs. Page indices are 0-based.
type Page struct {
	Index int       `json:"index"`
	Runs  []TextRun `json:"runs"`
}

// Level is a heading level in the extracted outline.
type Level string

const (
	LevelH1 Level = "H1"
	LevelH2 Level = "H2"
	LevelH3 Level = "H3"
)

// OutlineEntry is the externally visible heading record.
type OutlineEntry struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Metadata carries simple document statistics.
type Metadata struct {
	TotalPages         int    `json:"total_pages"`
	EstimatedWordCount int    `json:"estimated_word_count"`
	Language           string `json:"language"`
}

// ImportantFields groups structured field matches by kind. Each slice is
// deduplicated and ordered by first appearance in the document. The six
// primary kinds are always present (possibly empty); the remaining kinds
// are included only when matched.
type ImportantFields struct {
	Emails    []string `json:"emails"`
	Dates     []string `json:"dates"`
	URLs      []string `json:"urls"`
	Versions  []string `json:"versions"`
	Addresses []string `json:"addresses"`
	Phones    []string `json:"phones"`

	Copyrights []string `json:"copyrights,omitempty"`
	Prices     []string `json:"prices,omitempty"`
	IDNumbers  []string `json:"id_numbers,omitempty"`
	References []string `json:"references,omitempty"`
}

// DocumentRecord is the complete result for one document. Lifecycle is
// create-populate-serialize-discard; nothing persists across documents.
type DocumentRecord struct {
	Title           string          `json:"title"`
	Outline         []OutlineEntry  `json:"outline"`
	Metadata        Metadata        `json:"metadata"`
	KeyPhrases      []string        `json:"key_phrases"`
	ImportantFields ImportantFields `json:"important_fields"`
}

// Empty returns a minimal schema-valid record for a document that could
// not be characterized (zero pages, no decodable runs).
func Empty() *DocumentRecord {
	return &DocumentRecord{
		Title:      PlaceholderTitle,
		Outline:    []OutlineEntry{},
		Metadata:   Metadata{Language: DefaultLanguage},
		KeyPhrases: []string{},
		ImportantFields: ImportantFields{
			Emails:    []string{},
			Dates:     []string{},
			URLs:      []string{},
			Versions:  []string{},
			Addresses: []string{},
			Phones:    []string{},
		},
	}
}

const (
	// PlaceholderTitle is used when no line on the first page qualifies.
	PlaceholderTitle = "Untitled Document"

	// DefaultLanguage is reported when script detection finds nothing better.
	DefaultLanguage = "en"
)
