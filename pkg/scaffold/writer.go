package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
)

// Writer materializes generated artifacts under a project directory.
type Writer struct {
	logger *zap.Logger
}

// NewWriter creates a Writer that logs through the given logger.
func NewWriter(logger *zap.Logger) *Writer {
	return &Writer{logger: logger}
}

// Write creates dir and writes every artifact beneath it. The first write
// failure aborts the batch; files already written are left in place. Marking
// an artifact executable is best effort: a chmod failure is logged, never
// fatal, and never attempted on Windows.
func (w *Writer) Write(dir string, artifacts []Artifact) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create project directory %s: %w", dir, err)
	}

	for _, a := range artifacts {
		path := filepath.Join(dir, a.Path)
		if parent := filepath.Dir(path); parent != dir {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return fmt.Errorf("failed to create directory for %s: %w", a.Path, err)
			}
		}

		if err := os.WriteFile(path, []byte(a.Content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", a.Path, err)
		}
		w.logger.Debug("wrote artifact", zap.String("path", path))

		if a.Executable && runtime.GOOS != "windows" {
			if err := os.Chmod(path, 0o755); err != nil {
				w.logger.Warn("failed to mark artifact executable",
					zap.String("path", path), zap.Error(err))
			}
		}
	}

	w.logger.Info("project written", zap.String("dir", dir), zap.Int("artifacts", len(artifacts)))
	return nil
}
