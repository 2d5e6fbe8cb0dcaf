package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Table names cannot be bound as query parameters, so the configured name is
// restricted to a safe identifier before it is interpolated into SQL.
var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// DatabaseStore persists prompts in a Postgres table. pgxpool connects lazily,
// so construction succeeds without a reachable server; the prompts table is
// ensured on first use.
type DatabaseStore struct {
	pool   *pgxpool.Pool
	table  string
	logger *zap.Logger

	ensureOnce sync.Once
	ensureErr  error
}

var _ Store = &DatabaseStore{}

func NewDatabaseStore(ctx context.Context, connString, table string, logger *zap.Logger) (*DatabaseStore, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, &InitError{Backend: "database", Err: fmt.Errorf("invalid table name %q", table)}
	}

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, &InitError{Backend: "database", Err: err}
	}

	logger.Debug("created database pool", zap.String("table", table))
	return &DatabaseStore{
		pool:   pool,
		table:  table,
		logger: logger,
	}, nil
}

func (s *DatabaseStore) ensureTable(ctx context.Context) error {
	s.ensureOnce.Do(func() {
		ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id text PRIMARY KEY,
			name text NOT NULL,
			description text NOT NULL DEFAULT '',
			content text NOT NULL,
			tags text[] NOT NULL DEFAULT '{}',
			created_at timestamptz NOT NULL,
			updated_at timestamptz NOT NULL
		)`, s.table)

		if _, err := s.pool.Exec(ctx, ddl); err != nil {
			s.ensureErr = &InitError{Backend: "database", Err: fmt.Errorf("failed to ensure table %s: %w", s.table, err)}
			return
		}
		s.logger.Debug("ensured prompts table", zap.String("table", s.table))
	})
	return s.ensureErr
}

func (s *DatabaseStore) Create(ctx context.Context, p *Prompt) error {
	if err := s.ensureTable(ctx); err != nil {
		return err
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (id, name, description, content, tags, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now(), now())
		 RETURNING created_at, updated_at`, s.table)

	err := s.pool.QueryRow(ctx, query, p.ID, p.Name, p.Description, p.Content, p.Tags).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert prompt %s: %w", p.ID, err)
	}
	return nil
}

func (s *DatabaseStore) Get(ctx context.Context, id string) (*Prompt, error) {
	if err := s.ensureTable(ctx); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT id, name, description, content, tags, created_at, updated_at FROM %s WHERE id = $1`, s.table)

	p := &Prompt{}
	err := s.pool.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Content, &p.Tags, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt %s: %w", id, err)
	}
	return p, nil
}

func (s *DatabaseStore) Update(ctx context.Context, p *Prompt) error {
	if err := s.ensureTable(ctx); err != nil {
		return err
	}

	query := fmt.Sprintf(
		`UPDATE %s SET name = $2, description = $3, content = $4, tags = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING created_at, updated_at`, s.table)

	err := s.pool.QueryRow(ctx, query, p.ID, p.Name, p.Description, p.Content, p.Tags).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, p.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update prompt %s: %w", p.ID, err)
	}
	return nil
}

func (s *DatabaseStore) Delete(ctx context.Context, id string) error {
	if err := s.ensureTable(ctx); err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.table)
	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete prompt %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *DatabaseStore) List(ctx context.Context) ([]*Prompt, error) {
	if err := s.ensureTable(ctx); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT id, name, description, content, tags, created_at, updated_at FROM %s ORDER BY name`, s.table)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	defer rows.Close()

	var prompts []*Prompt
	for rows.Next() {
		p := &Prompt{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Content, &p.Tags, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prompt row: %w", err)
		}
		prompts = append(prompts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prompt rows: %w", err)
	}
	return prompts, nil
}

func (s *DatabaseStore) Close() error {
	s.pool.Close()
	return nil
}
