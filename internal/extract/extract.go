// Package extract runs the document-structure pipeline: normalization,
// artifact filtering, line merging, font-threshold estimation, heading
// classification, and final record assembly.
package extract

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/docoutline/docoutline/internal/classify"
	"github.com/docoutline/docoutline/internal/fields"
	"github.com/docoutline/docoutline/internal/merge"
	"github.com/docoutline/docoutline/internal/normalize"
	"github.com/docoutline/docoutline/internal/record"
)

// Extractor turns decoded pages into DocumentRecords. Stateless across
// documents apart from latency accounting, so a single Extractor is safe
// for concurrent use by the worker pool.
type Extractor struct {
	log   *slog.Logger
	Stats *PipelineStats
}

func New(log *slog.Logger) *Extractor {
	return &Extractor{
		log:   log,
		Stats: NewPipelineStats(time.Hour),
	}
}

// Process runs the full pipeline for one document. It always returns a
// schema-valid record: malformed input degrades the data, never the batch.
func (e *Extractor) Process(ctx context.Context, pages []record.Page) *record.DocumentRecord {
	start := time.Now()
	defer func() {
		e.Stats.Record(time.Since(start).Milliseconds())
	}()

	rec := record.Empty()
	rec.Metadata.TotalPages = len(pages)
	if len(pages) == 0 {
		return rec
	}

	lines := normalize.Lines(pages)
	lines = normalize.Filter(lines)
	merged := merge.Lines(lines)
	if len(merged) == 0 {
		return rec
	}

	thresholds := classify.EstimateThresholds(merged)

	var text strings.Builder
	for i, l := range merged {
		if i > 0 {
			text.WriteByte('\n')
		}
		text.WriteString(l.Text)
	}
	fullText := text.String()

	// The remaining stages are independent pure functions of the merged
	// corpus, so they fan out.
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		candidates := classify.Classify(merged, thresholds)
		rec.Outline = classify.AssembleOutline(candidates)
		return nil
	})
	g.Go(func() error {
		rec.Title = classify.ExtractTitle(merged)
		return nil
	})
	g.Go(func() error {
		rec.ImportantFields = fields.Extract(fullText)
		return nil
	})
	g.Go(func() error {
		phrases := fields.KeyPhrases(fullText)
		if phrases == nil {
			phrases = []string{}
		}
		rec.KeyPhrases = phrases
		return nil
	})
	g.Go(func() error {
		rec.Metadata.EstimatedWordCount = estimateWordCount(merged)
		rec.Metadata.Language = detectLanguage(merged)
		return nil
	})
	_ = g.Wait()

	if rec.Outline == nil {
		rec.Outline = []record.OutlineEntry{}
	}

	e.log.Debug("document processed",
		"pages", len(pages),
		"merged_lines", len(merged),
		"outline_entries", len(rec.Outline),
		"uniform_font", thresholds.Uniform(),
	)
	return rec
}
