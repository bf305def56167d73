package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"podcastr/internal/logging"
)

// Entry is one named artifact destined for the episode archive. Exactly
// one of Text and Bytes should be set; an entry with neither is skipped
// silently, an entry without a file name is skipped with a warning.
type Entry struct {
	Name  string
	Text  string
	Bytes []byte
}

// Build assembles the entries into a single in-memory zip archive.
func Build(logger *slog.Logger, entries []Entry) ([]byte, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if entries == nil {
		return nil, errors.New("archive entries cannot be nil")
	}

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	for _, entry := range entries {
		if strings.TrimSpace(entry.Name) == "" {
			logger.Warn("skipping archive entry without file name")
			continue
		}
		switch {
		case strings.TrimSpace(entry.Text) != "":
			if err := writeEntry(writer, entry.Name, []byte(entry.Text)); err != nil {
				return nil, err
			}
		case len(entry.Bytes) > 0:
			if err := writeEntry(writer, entry.Name, entry.Bytes); err != nil {
				return nil, err
			}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

func writeEntry(writer *zip.Writer, name string, content []byte) error {
	entry, err := writer.Create(name)
	if err != nil {
		return fmt.Errorf("create archive entry %q: %w", name, err)
	}
	if _, err := entry.Write(content); err != nil {
		return fmt.Errorf("write archive entry %q: %w", name, err)
	}
	return nil
}

// WriteTemp writes the archive blob to a fresh uniquely named zip file in
// dir (the system temp dir when dir is empty) and returns its path.
func WriteTemp(dir string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("archive data is empty")
	}
	if strings.TrimSpace(dir) == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure output directory: %w", err)
	}
	path := filepath.Join(dir, uuid.NewString()+".zip")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write archive: %w", err)
	}
	return path, nil
}
