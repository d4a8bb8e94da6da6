package resultstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docoutline/docoutline/internal/record"
)

// DirWriter writes one <stem>.json per document into an output directory,
// the batch contract expected by downstream tooling.
type DirWriter struct {
	Dir string
}

// Write serializes the record next to the input file's stem. The filename
// is reduced to its base to keep writes inside the output directory.
func (w *DirWriter) Write(filename string, rec *record.DocumentRecord) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if stem == "" {
		stem = "document"
	}

	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	path := filepath.Join(w.Dir, stem+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}
