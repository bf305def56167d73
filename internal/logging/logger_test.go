package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"podcastr/internal/services"
)

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Writers: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hello", String("k", "v"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if record["msg"] != "hello" || record["k"] != "v" {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsStageAndRun(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Writers: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithRunID(services.WithStage(t.Context(), "audio"), "run-1")
	WithContext(ctx, logger).Info("stage started")

	line := buf.String()
	if !strings.Contains(line, "stage=audio") || !strings.Contains(line, "run_id=run-1") {
		t.Fatalf("expected stage and run fields, got %q", line)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	logger.Error("should not panic", Error(nil))
}
