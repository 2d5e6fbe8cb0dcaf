package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileStore persists prompts as a single JSON document on disk. The document
// is loaded once at construction; a missing file starts an empty store, a
// corrupt one is an initialization error rather than silent data loss.
type FileStore struct {
	mu      sync.Mutex
	path    string
	prompts map[string]Prompt
	logger  *zap.Logger
}

var _ Store = &FileStore{}

func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	s := &FileStore{
		path:    path,
		prompts: make(map[string]Prompt),
		logger:  logger,
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("prompt document does not exist yet, starting empty", zap.String("path", path))
		return s, nil
	}
	if err != nil {
		return nil, &InitError{Backend: "file", Err: err}
	}

	if err := json.Unmarshal(data, &s.prompts); err != nil {
		return nil, &InitError{Backend: "file", Err: fmt.Errorf("failed to deserialize %s: %w", path, err)}
	}

	logger.Debug("loaded prompt document", zap.String("path", path), zap.Int("prompts", len(s.prompts)))
	return s, nil
}

// save writes the whole document back. Callers hold s.mu.
func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.prompts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize prompt document: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to ensure %s exists: %w", dir, err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Create(ctx context.Context, p *Prompt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, exists := s.prompts[p.ID]; exists {
		return fmt.Errorf("prompt %s already exists", p.ID)
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.prompts[p.ID] = *p

	return s.save()
}

func (s *FileStore) Get(ctx context.Context, id string) (*Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.prompts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &p, nil
}

func (s *FileStore) Update(ctx context.Context, p *Prompt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.prompts[p.ID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, p.ID)
	}

	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	s.prompts[p.ID] = *p

	return s.save()
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.prompts[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.prompts, id)

	return s.save()
}

func (s *FileStore) List(ctx context.Context) ([]*Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prompts := make([]*Prompt, 0, len(s.prompts))
	for id := range s.prompts {
		p := s.prompts[id]
		prompts = append(prompts, &p)
	}

	sort.Slice(prompts, func(i, j int) bool { return prompts[i].Name < prompts[j].Name })
	return prompts, nil
}

func (s *FileStore) Close() error {
	return nil
}
