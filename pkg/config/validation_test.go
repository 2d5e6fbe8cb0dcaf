package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Kind:          Kind,
			SchemaVersion: SchemaVersion,
			Server:        ServerConfig{Name: "demo", Version: "0.1.0", Transport: TransportStdio},
			Storage:       StorageConfig{Type: StorageTypeMemory},
		}
	}

	tt := map[string]struct {
		mutate      func(cfg *Config)
		expectErrIs error
		expectErr   string
	}{
		"valid config passes": {
			mutate: func(cfg *Config) {},
		},
		"missing name fails": {
			mutate:    func(cfg *Config) { cfg.Server.Name = "" },
			expectErr: "server.name is required",
		},
		"missing version fails": {
			mutate:    func(cfg *Config) { cfg.Server.Version = "" },
			expectErr: "server.version is required",
		},
		"unknown transport fails with the offending value": {
			mutate:      func(cfg *Config) { cfg.Server.Transport = "carrier-pigeon" },
			expectErrIs: ErrUnsupportedTransport,
			expectErr:   "carrier-pigeon",
		},
		"unknown storage tag fails with the offending tag": {
			mutate:      func(cfg *Config) { cfg.Storage.Type = "unsupported-type" },
			expectErrIs: ErrUnsupportedStorageType,
			expectErr:   "unsupported-type",
		},
		"database storage requires a connection string": {
			mutate:    func(cfg *Config) { cfg.Storage = StorageConfig{Type: StorageTypeDatabase} },
			expectErr: "storage.database is required",
		},
		"irrelevant fields on memory storage are ignored": {
			mutate: func(cfg *Config) {
				cfg.Storage = StorageConfig{Type: StorageTypeMemory, Path: "whatever", Table: "ignored"}
			},
		},
		"zero http port fails": {
			mutate: func(cfg *Config) {
				cfg.Server.Transport = TransportStreamableHTTP
				cfg.Server.HTTP = &HTTPConfig{Port: 0}
			},
			expectErr: "http.port must be greater than 0",
		},
	}

	for tn, tc := range tt {
		t.Run(tn, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			err := cfg.Validate()

			if tc.expectErrIs == nil && tc.expectErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tc.expectErrIs != nil {
				assert.True(t, errors.Is(err, tc.expectErrIs))
			}
			if tc.expectErr != "" {
				assert.Contains(t, err.Error(), tc.expectErr)
			}
		})
	}
}

func TestValidateTransport(t *testing.T) {
	assert.NoError(t, ValidateTransport(TransportStdio))
	assert.NoError(t, ValidateTransport(TransportStreamableHTTP))

	err := ValidateTransport("websocket")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedTransport))
	assert.Contains(t, err.Error(), "websocket")
}
