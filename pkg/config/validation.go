package config

import (
	"errors"
	"fmt"
)

// Validate checks the config against the closed transport and storage sets.
// It is called before any resource is created; a failure here aborts startup.
func (c *Config) Validate() error {
	var err error

	if c.Server.Name == "" {
		err = errors.Join(err, fmt.Errorf("invalid config: server.name is required"))
	}

	if c.Server.Version == "" {
		err = errors.Join(err, fmt.Errorf("invalid config: server.version is required"))
	}

	if transportErr := ValidateTransport(c.Server.Transport); transportErr != nil {
		err = errors.Join(err, transportErr)
	}

	if c.Server.Transport == TransportStreamableHTTP && c.Server.HTTP != nil {
		if c.Server.HTTP.Port <= 0 {
			err = errors.Join(err, fmt.Errorf("invalid config: http.port must be greater than 0"))
		}
	}

	if storageErr := c.Storage.Validate(); storageErr != nil {
		err = errors.Join(err, storageErr)
	}

	return err
}

// Validate checks that the storage tag is inside the closed set. Fields
// irrelevant to the selected tag are deliberately not validated.
func (s *StorageConfig) Validate() error {
	switch s.Type {
	case StorageTypeMemory, StorageTypeFile:
		return nil
	case StorageTypeDatabase:
		if s.Database == "" {
			return fmt.Errorf("invalid config: storage.database is required for the database backend")
		}
		return nil
	default:
		return fmt.Errorf("%w: %q (must be one of %s, %s, %s)",
			ErrUnsupportedStorageType, s.Type, StorageTypeMemory, StorageTypeFile, StorageTypeDatabase)
	}
}

// ValidateTransport checks a transport kind against the closed set. The CLI
// uses this to validate the --transport override eagerly, before the value
// replaces the configured transport.
func ValidateTransport(transport string) error {
	switch transport {
	case TransportStdio, TransportStreamableHTTP:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be one of %s, %s)",
			ErrUnsupportedTransport, transport, TransportStdio, TransportStreamableHTTP)
	}
}
