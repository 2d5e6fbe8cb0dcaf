// Package storage provides the pluggable prompt persistence backends a server
// is composed with. A backend is selected by the storage tag in the config;
// all backends satisfy the same Store capability interface.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound reports that no prompt exists for the requested id.
var ErrNotFound = errors.New("prompt not found")

// Prompt is the unit of persistence.
type Prompt struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Content     string    `json:"content"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Store is the capability interface every storage backend implements.
// Create assigns the prompt an id and timestamps; Update preserves CreatedAt
// and refreshes UpdatedAt. Get and Update return ErrNotFound for unknown ids.
type Store interface {
	Create(ctx context.Context, p *Prompt) error
	Get(ctx context.Context, id string) (*Prompt, error)
	Update(ctx context.Context, p *Prompt) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Prompt, error)
	Close() error
}

// InitError reports a backend-specific initialization failure, naming the
// backend so startup logs identify which storage selection failed.
type InitError struct {
	Backend string
	Err     error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("failed to initialize %s storage: %s", e.Backend, e.Err.Error())
}

func (e *InitError) Unwrap() error {
	return e.Err
}
