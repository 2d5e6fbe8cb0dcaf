package config

import "k8s.io/utils/ptr"

// Default values for server configuration.
const (
	// DefaultTransport is used when the config file leaves transport empty.
	DefaultTransport = TransportStdio

	// DefaultPort is the default port for the streamable HTTP transport.
	DefaultPort = 8080

	// DefaultBasePath is the default base path for the MCP endpoint.
	DefaultBasePath = "/mcp"

	// DefaultLivenessPath is the default liveness probe path.
	DefaultLivenessPath = "/healthz"

	// DefaultReadinessPath is the default readiness probe path.
	DefaultReadinessPath = "/readyz"

	// DefaultFilePath is the default document path for the file store.
	DefaultFilePath = "prompts.json"

	// DefaultTable is the default prompts table name for the database store.
	DefaultTable = "prompts"
)

// ApplyDefaults applies default values to the Config after parsing.
func (c *Config) ApplyDefaults() {
	c.Server.ApplyDefaults()
	c.Storage.ApplyDefaults()
}

// ApplyDefaults applies default values to ServerConfig.
func (s *ServerConfig) ApplyDefaults() {
	if s.Transport == "" {
		s.Transport = DefaultTransport
	}

	if s.Transport == TransportStreamableHTTP {
		if s.HTTP == nil {
			s.HTTP = &HTTPConfig{}
		}
		s.HTTP.ApplyDefaults()
	}
}

// ApplyDefaults applies default values to HTTPConfig.
func (h *HTTPConfig) ApplyDefaults() {
	if h.Port <= 0 {
		h.Port = DefaultPort
	}
	if h.BasePath == "" {
		h.BasePath = DefaultBasePath
	}
	if h.Stateless == nil {
		h.Stateless = ptr.To(true)
	}

	if h.Health == nil {
		h.Health = &HealthConfig{}
	}
	h.Health.ApplyDefaults()
}

// ApplyDefaults applies default values to HealthConfig.
func (h *HealthConfig) ApplyDefaults() {
	if h.Enabled == nil {
		h.Enabled = ptr.To(true)
	}
	if h.LivenessPath == "" {
		h.LivenessPath = DefaultLivenessPath
	}
	if h.ReadinessPath == "" {
		h.ReadinessPath = DefaultReadinessPath
	}
}

// ApplyDefaults applies default values to StorageConfig. Only fields relevant
// to the selected tag are touched.
func (s *StorageConfig) ApplyDefaults() {
	switch s.Type {
	case StorageTypeFile:
		if s.Path == "" {
			s.Path = DefaultFilePath
		}
	case StorageTypeDatabase:
		if s.Table == "" {
			s.Table = DefaultTable
		}
	}
}
