package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/docoutline/docoutline/internal/extract"
)

func testWorker(docTimeout time.Duration) *Worker {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewWorker(extract.New(log), nil, nil, log, docTimeout, false)
}

func textJob(content string) *Job {
	job := &Job{
		ID:       NewJobID(),
		DocID:    "doc1",
		Status:   StatusQueued,
		Filename: "report.txt",
	}
	job.SetFileData([]byte(content))
	return job
}

func TestWorkerProcessCompletes(t *testing.T) {
	w := testWorker(time.Minute)
	job := textJob("ANNUAL REPORT\n1. Introduction\nBody text describing the year in detail.\n")

	w.Process(context.Background(), job)

	if job.Status != StatusCompleted {
		t.Fatalf("status = %s, want completed (errors: %v)", job.Status, job.Progress.Errors)
	}
	rec := job.Result()
	if rec == nil {
		t.Fatal("completed job has no result")
	}
	if rec.Metadata.TotalPages != 1 {
		t.Errorf("total pages = %d, want 1", rec.Metadata.TotalPages)
	}
	if job.Progress.TotalPages != 1 || job.Progress.WordCount == 0 {
		t.Errorf("progress not mirrored: %+v", job.Progress)
	}
}

func TestWorkerProcessTimeoutDiscardsResult(t *testing.T) {
	w := testWorker(time.Nanosecond)
	job := textJob("ANNUAL REPORT\n1. Introduction\nBody text describing the year in detail.\n")

	w.Process(context.Background(), job)

	if job.Status != StatusFailed {
		t.Fatalf("status = %s, want failed", job.Status)
	}
	if job.Result() != nil {
		t.Error("timed-out job kept a result")
	}
	if len(job.Progress.Errors) == 0 {
		t.Error("timeout not recorded on the job")
	}
}

func TestWorkerProcessUnsupportedExtensionFails(t *testing.T) {
	w := testWorker(time.Minute)
	job := textJob("payload")
	job.Filename = "archive.zip"

	w.Process(context.Background(), job)

	if job.Status != StatusFailed {
		t.Fatalf("status = %s, want failed", job.Status)
	}
	if job.Result() != nil {
		t.Error("failed job has a result")
	}
}
