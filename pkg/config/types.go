// Package config defines the declarative configuration a promptforge server is
// composed from: server identity, a storage selection, a transport selection
// and optional feature flags. The config is parsed once by the entry point and
// passed by value into every component that needs it; no component reads
// ambient process state.
package config

import (
	"errors"

	"github.com/promptforge/promptforge/pkg/observability/logging"
)

const (
	// Kind identifies the type of promptforge config file.
	Kind = "PromptForgeConfig"

	// SchemaVersion is the config file format version this build understands.
	SchemaVersion = "v1alpha1"
)

// Transport kinds supported by the runtime. The set is closed: anything else
// is a configuration error, never a defaulted fallback.
const (
	TransportStdio          = "stdio"
	TransportStreamableHTTP = "streamablehttp"
)

// Storage type tags. Exactly one tag selects exactly one backend; fields
// irrelevant to the selected tag are ignored, not validated.
const (
	StorageTypeMemory   = "memory"
	StorageTypeFile     = "file"
	StorageTypeDatabase = "database"
)

var (
	// ErrUnsupportedStorageType reports a storage tag outside the closed set.
	ErrUnsupportedStorageType = errors.New("unsupported storage type")

	// ErrUnsupportedTransport reports a transport kind outside the closed set.
	ErrUnsupportedTransport = errors.New("unsupported transport")
)

// ServerConfig describes the identity and transport of a server instance.
type ServerConfig struct {
	// Name of the MCP server, reported to clients.
	Name string `json:"name"`

	// Version of the MCP server, reported to clients.
	Version string `json:"version"`

	// Description is a human readable summary of the server.
	Description string `json:"description,omitempty"`

	// Transport selects how the server exchanges protocol messages
	// (stdio or streamablehttp). Defaults to stdio.
	Transport string `json:"transport,omitempty"`

	// HTTP configures the streamablehttp transport. Ignored for stdio.
	HTTP *HTTPConfig `json:"http,omitempty"`
}

// HTTPConfig configures the streamable HTTP transport.
type HTTPConfig struct {
	// Port number to listen on.
	Port int `json:"port,omitempty"`

	// BasePath for the MCP endpoint (default: /mcp).
	BasePath string `json:"basePath,omitempty"`

	// Stateless indicates whether the server is stateless (default: true when unset).
	Stateless *bool `json:"stateless,omitempty"`

	// Health configures liveness/readiness probe endpoints.
	Health *HealthConfig `json:"health,omitempty"`
}

// HealthConfig configures the probe endpoints served by the HTTP transport.
type HealthConfig struct {
	// Enabled turns the health endpoints on (default: true when unset).
	Enabled *bool `json:"enabled,omitempty"`

	// LivenessPath is the liveness probe path (default: /healthz).
	LivenessPath string `json:"livenessPath,omitempty"`

	// ReadinessPath is the readiness probe path (default: /readyz).
	ReadinessPath string `json:"readinessPath,omitempty"`
}

// StorageConfig is a tagged union selecting a prompt storage backend.
type StorageConfig struct {
	// Type is the storage tag: memory, file or database.
	Type string `json:"type"`

	// Path to the JSON document backing a file store. Only read when
	// Type is "file"; defaults to prompts.json.
	Path string `json:"path,omitempty"`

	// Database is the connection string of the backing database. Only read
	// when Type is "database".
	Database string `json:"database,omitempty"`

	// Table holds the prompts table name. Only read when Type is
	// "database"; defaults to prompts.
	Table string `json:"table,omitempty"`
}

// FeatureFlags toggles optional server behaviour. Unknown flags in the file
// are rejected by the YAML parser rather than silently dropped.
type FeatureFlags struct {
	Templates     bool `json:"templates,omitempty"`
	Sharing       bool `json:"sharing,omitempty"`
	Analytics     bool `json:"analytics,omitempty"`
	Collaboration bool `json:"collaboration,omitempty"`
}

// Config is the root of a promptforge config file.
type Config struct {
	// Kind identifies the config file type.
	Kind string `json:"kind"`

	// SchemaVersion of the config file format.
	SchemaVersion string `json:"schemaVersion"`

	// Server identity and transport selection.
	Server ServerConfig `json:"server"`

	// Storage backend selection.
	Storage StorageConfig `json:"storage"`

	// Features toggles optional behaviour.
	Features FeatureFlags `json:"features,omitempty"`

	// Logging configures the process logger.
	Logging *logging.Config `json:"logging,omitempty"`
}
