package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MemoryStore keeps prompts in process memory. Contents are lost on shutdown.
type MemoryStore struct {
	mu      sync.RWMutex
	prompts map[string]Prompt
	logger  *zap.Logger
}

var _ Store = &MemoryStore{}

func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		prompts: make(map[string]Prompt),
		logger:  logger,
	}
}

func (s *MemoryStore) Create(ctx context.Context, p *Prompt) error {
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

	s.logger.Debug("created prompt", zap.String("prompt_id", p.ID), zap.String("prompt_name", p.Name))
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Prompt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.prompts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &p, nil
}

func (s *MemoryStore) Update(ctx context.Context, p *Prompt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.prompts[p.ID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, p.ID)
	}

	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	s.prompts[p.ID] = *p

	s.logger.Debug("updated prompt", zap.String("prompt_id", p.ID))
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.prompts[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.prompts, id)

	s.logger.Debug("deleted prompt", zap.String("prompt_id", id))
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*Prompt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prompts := make([]*Prompt, 0, len(s.prompts))
	for id := range s.prompts {
		p := s.prompts[id]
		prompts = append(prompts, &p)
	}

	sort.Slice(prompts, func(i, j int) bool { return prompts[i].Name < prompts[j].Name })
	return prompts, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
