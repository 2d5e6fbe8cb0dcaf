package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/promptforge/promptforge/pkg/config"
)

// New maps a storage configuration variant to a concrete backend. Selection is
// a total function over the closed tag set: adding a backend means adding one
// case here and one implementation file, never touching call sites. Backends
// that support lazy connection (database) defer it to first use; the file
// backend loads eagerly and reports failures as an InitError.
func New(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Type {
	case config.StorageTypeMemory:
		return NewMemoryStore(logger), nil
	case config.StorageTypeFile:
		return NewFileStore(cfg.Path, logger)
	case config.StorageTypeDatabase:
		return NewDatabaseStore(ctx, cfg.Database, cfg.Table, logger)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnsupportedStorageType, cfg.Type)
	}
}
