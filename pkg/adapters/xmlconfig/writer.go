package xmlconfig

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/x3launch/pkg/domain"
)

// Writer implements ports.ProfileWriter on the local filesystem.
type Writer struct {
	logger *slog.Logger
}

// NewWriter creates a Writer. A nil logger discards output.
func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Writer{logger: logger}
}

// Marshal renders the document with an XML declaration and four-space indentation.
func Marshal(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Write persists the profile to path atomically.
// It writes to a temporary file in the same directory, syncs it, and renames it over the destination,
// so a reader never observes a partial document. Any existing file is replaced.
func (w *Writer) Write(ctx context.Context, profile domain.Profile, path string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfigWrite, err)
	}

	data, err := Marshal(NewDocument(profile))
	if err != nil {
		return fmt.Errorf("%w: failed to marshal profile: %w", domain.ErrConfigWrite, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to ensure config directory: %w", domain.ErrConfigWrite, err)
	}

	tmpFile, err := os.CreateTemp(dir, "tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %w", domain.ErrConfigWrite, err)
	}
	tmpPath := tmpFile.Name()

	// Removing after a successful rename is a no-op.
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("%w: failed to write temp file: %w", domain.ErrConfigWrite, err)
	}
	// CreateTemp uses 0600; the game and other users must be able to read the file.
	if err := tmpFile.Chmod(0o644); err != nil {
		return fmt.Errorf("%w: failed to set config permissions: %w", domain.ErrConfigWrite, err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("%w: failed to fsync temp file: %w", domain.ErrConfigWrite, err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("%w: failed to close temp file: %w", domain.ErrConfigWrite, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: failed to move config into place: %w", domain.ErrConfigWrite, err)
	}

	w.logger.Debug("profile written", "path", path, "bytes", len(data))
	return nil
}
