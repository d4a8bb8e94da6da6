package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/docoutline/docoutline/internal/extract"
	"github.com/docoutline/docoutline/internal/parser"
	"github.com/docoutline/docoutline/internal/record"
	"github.com/docoutline/docoutline/internal/resultstore"
)

// Worker processes a single document job: decode, extract, deliver.
type Worker struct {
	extractor *extract.Extractor
	store     *resultstore.Client
	dirWriter *resultstore.DirWriter
	log       *slog.Logger

	docTimeout  time.Duration
	pdfFallback bool
}

func NewWorker(ex *extract.Extractor, store *resultstore.Client, dir *resultstore.DirWriter, log *slog.Logger, docTimeout time.Duration, pdfFallback bool) *Worker {
	return &Worker{
		extractor:   ex,
		store:       store,
		dirWriter:   dir,
		log:         log,
		docTimeout:  docTimeout,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full pipeline for a job. The extraction core never
// fails a document outright; only decode errors mark a job failed.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)

	// Phase 1: decode into pages of text runs.
	job.SetStatus(StatusParsing, "decoding document")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "decoding")
		return
	}
	if pdfParser, ok := p.(*parser.PDFParser); ok {
		pdfParser.FallbackPdftotext = w.pdfFallback
	}

	pages, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		job.AddError(fmt.Sprintf("decode: %s", err))
		job.SetStatus(StatusFailed, "decoding")
		return
	}

	// Phase 2: run the extraction pipeline. The per-document timeout is
	// enforced here, outside the pure pipeline; a slow document's partial
	// work is simply discarded.
	job.SetStatus(StatusExtracting, "extracting structure")
	extractCtx := ctx
	if w.docTimeout > 0 {
		var cancel context.CancelFunc
		extractCtx, cancel = context.WithTimeout(ctx, w.docTimeout)
		defer cancel()
	}

	done := make(chan *record.DocumentRecord, 1)
	go func() {
		done <- w.extractor.Process(extractCtx, pages)
	}()

	var rec *record.DocumentRecord
	select {
	case rec = <-done:
	case <-extractCtx.Done():
	}
	// A record finished after the deadline is discarded along with one that
	// never arrived: the timeout bounds delivered work, not just waiting.
	if err := extractCtx.Err(); err != nil {
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	job.SetResult(rec)

	log.Info("extraction complete",
		"title", rec.Title,
		"pages", rec.Metadata.TotalPages,
		"outline_entries", len(rec.Outline),
		"language", rec.Metadata.Language,
	)

	// Phase 3: deliver the record.
	job.SetStatus(StatusStoring, "storing record")
	hadErrors := false

	if w.dirWriter != nil {
		if err := w.dirWriter.Write(job.Filename, rec); err != nil {
			log.Error("output write failed", "error", err)
			job.AddError(fmt.Sprintf("output: %s", err))
			hadErrors = true
		}
	}

	if w.store != nil {
		if err := w.putWithRetry(ctx, job.DocID, rec); err != nil {
			log.Error("record store failed", "error", err)
			job.AddError(fmt.Sprintf("store: %s", err))
			hadErrors = true
		}
	}

	if hadErrors {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}

func (w *Worker) putWithRetry(ctx context.Context, docID string, rec *record.DocumentRecord) error {
	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(Backoff(attempt - 1)):
			}
		}
		lastErr = w.store.PutRecord(ctx, docID, rec)
		if lastErr == nil {
			return nil
		}
		if !IsRetryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}
