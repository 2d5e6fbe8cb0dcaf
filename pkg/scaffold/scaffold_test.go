package scaffold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptforge/promptforge/pkg/config"
)

func baseOptions() *ProjectOptions {
	return &ProjectOptions{
		Name:        "my-prompts",
		Description: "A prompt library",
		Transport:   "http",
		Storage:     "json",
		Features:    []string{"templates", "sharing"},
	}
}

func artifactByPath(t *testing.T, artifacts []Artifact, path string) Artifact {
	t.Helper()
	for _, a := range artifacts {
		if a.Path == path {
			return a
		}
	}
	t.Fatalf("no artifact at %s", path)
	return Artifact{}
}

func TestGenerateProducesExpectedArtifacts(t *testing.T) {
	artifacts := Generate(baseOptions())

	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		paths = append(paths, a.Path)
	}
	assert.ElementsMatch(t, []string{
		"go.mod", "main.go", "promptforge.yaml", "README.md", ".gitignore", "run.sh",
	}, paths)

	assert.True(t, artifactByPath(t, artifacts, "run.sh").Executable)
	assert.False(t, artifactByPath(t, artifacts, "go.mod").Executable)
}

func TestGenerateIsDeterministic(t *testing.T) {
	first := Generate(baseOptions())
	second := Generate(baseOptions())
	assert.Equal(t, first, second)
}

func TestGeneratedConfigParses(t *testing.T) {
	tests := map[string]struct {
		storage           string
		transport         string
		expectedType      string
		expectedTransport string
	}{
		"json storage over http": {
			storage:           "json",
			transport:         "http",
			expectedType:      config.StorageTypeFile,
			expectedTransport: config.TransportStreamableHTTP,
		},
		"postgres storage over websocket": {
			storage:           "postgres",
			transport:         "websocket",
			expectedType:      config.StorageTypeDatabase,
			expectedTransport: config.TransportStreamableHTTP,
		},
		"sqlite storage over stdio": {
			storage:           "sqlite",
			transport:         "stdio",
			expectedType:      config.StorageTypeDatabase,
			expectedTransport: config.TransportStdio,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			opts := baseOptions()
			opts.Storage = tc.storage
			opts.Transport = tc.transport

			raw := artifactByPath(t, Generate(opts), "promptforge.yaml")
			cfg, err := config.Parse([]byte(raw.Content))
			require.NoError(t, err)
			require.NoError(t, cfg.Validate())

			assert.Equal(t, "my-prompts", cfg.Server.Name)
			assert.Equal(t, tc.expectedType, cfg.Storage.Type)
			assert.Equal(t, tc.expectedTransport, cfg.Server.Transport)
			assert.True(t, cfg.Features.Templates)
			assert.True(t, cfg.Features.Sharing)
			assert.False(t, cfg.Features.Analytics)
		})
	}
}

func TestReadmeReflectsOptionalSections(t *testing.T) {
	opts := baseOptions()
	opts.Auth = &AuthOptions{Type: "oauth", Provider: "github"}
	opts.Deployment = &DeploymentOptions{Platform: "fly", Domain: "prompts.example.com"}

	readme := artifactByPath(t, Generate(opts), "README.md").Content
	assert.Contains(t, readme, "oauth")
	assert.Contains(t, readme, "github")
	assert.Contains(t, readme, "prompts.example.com")

	bare := artifactByPath(t, Generate(baseOptions()), "README.md").Content
	assert.NotContains(t, bare, "Auth:")
	assert.NotContains(t, bare, "Deployment:")
}

func TestRunScriptGuardsDatabaseURL(t *testing.T) {
	opts := baseOptions()
	opts.Storage = "postgres"
	script := artifactByPath(t, Generate(opts), "run.sh").Content
	assert.Contains(t, script, "DATABASE_URL")

	opts.Storage = "json"
	script = artifactByPath(t, Generate(opts), "run.sh").Content
	assert.NotContains(t, script, "DATABASE_URL")
}
