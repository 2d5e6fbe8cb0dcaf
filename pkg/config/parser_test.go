package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
kind: PromptForgeConfig
schemaVersion: v1alpha1
server:
  name: demo
  version: 0.1.0
  description: a demo server
  transport: streamablehttp
  http:
    port: 9090
storage:
  type: memory
features:
  templates: true
`

func TestParse(t *testing.T) {
	tt := map[string]struct {
		data        string
		expectErr   string
		expectCheck func(t *testing.T, cfg *Config)
	}{
		"valid config parses with defaults": {
			data: validConfig,
			expectCheck: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "demo", cfg.Server.Name)
				assert.Equal(t, TransportStreamableHTTP, cfg.Server.Transport)
				assert.Equal(t, 9090, cfg.Server.HTTP.Port)
				assert.Equal(t, DefaultBasePath, cfg.Server.HTTP.BasePath)
				require.NotNil(t, cfg.Server.HTTP.Stateless)
				assert.True(t, *cfg.Server.HTTP.Stateless)
				require.NotNil(t, cfg.Server.HTTP.Health)
				assert.Equal(t, DefaultReadinessPath, cfg.Server.HTTP.Health.ReadinessPath)
				assert.True(t, cfg.Features.Templates)
				assert.False(t, cfg.Features.Analytics)
			},
		},
		"missing kind is rejected": {
			data: `
schemaVersion: v1alpha1
server:
  name: demo
  version: 0.1.0
storage:
  type: memory
`,
			expectErr: "kind field is required",
		},
		"wrong kind is rejected": {
			data: `
kind: SomethingElse
schemaVersion: v1alpha1
server:
  name: demo
  version: 0.1.0
storage:
  type: memory
`,
			expectErr: "invalid kind",
		},
		"wrong schema version is rejected": {
			data: `
kind: PromptForgeConfig
schemaVersion: v2
server:
  name: demo
  version: 0.1.0
storage:
  type: memory
`,
			expectErr: "invalid schema version",
		},
		"unknown fields are rejected": {
			data: `
kind: PromptForgeConfig
schemaVersion: v1alpha1
server:
  name: demo
  version: 0.1.0
storage:
  type: memory
shiny: true
`,
			expectErr: "failed to unmarshal",
		},
	}

	for tn, tc := range tt {
		t.Run(tn, func(t *testing.T) {
			cfg, err := Parse([]byte(tc.data))
			if tc.expectErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectErr)
				return
			}
			require.NoError(t, err)
			tc.expectCheck(t, cfg)
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "promptforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validConfig), 0o644))

	cfg, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Server.Name)

	_, err = ParseFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestStdioDefaultTransport(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{Name: "demo", Version: "0.1.0"},
		Storage: StorageConfig{Type: StorageTypeFile},
	}
	cfg.ApplyDefaults()

	assert.Equal(t, TransportStdio, cfg.Server.Transport)
	assert.Nil(t, cfg.Server.HTTP)
	assert.Equal(t, DefaultFilePath, cfg.Storage.Path)
}
