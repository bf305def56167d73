package main

import (
	"log/slog"

	"podcastr/internal/archive"
)

// zipArchiver adapts the zip packaging layer to the pipeline's archiver
// contract.
type zipArchiver struct {
	logger    *slog.Logger
	outputDir string
}

func newZipArchiver(logger *slog.Logger, outputDir string) *zipArchiver {
	return &zipArchiver{logger: logger, outputDir: outputDir}
}

func (a *zipArchiver) Build(entries []archive.Entry) ([]byte, error) {
	return archive.Build(a.logger, entries)
}

func (a *zipArchiver) Write(data []byte) (string, error) {
	return archive.WriteTemp(a.outputDir, data)
}
