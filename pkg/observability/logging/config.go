// Package logging provides a schema-friendly wrapper around zap configuration.
//
// The server config embeds a logging.Config so operators can tune log level,
// encoding and output destinations from the same YAML file that describes the
// server. Logs default to stderr: when the server runs on the stdio transport,
// stdout carries MCP protocol traffic and must never receive log lines.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is a JSON/YAML friendly logging configuration that can be converted
// to a zap.Config when needed.
type Config struct {
	// Level is the minimum enabled logging level (debug, info, warn, error, dpanic, panic, fatal)
	Level string `json:"level,omitempty"`
	// Development puts the logger in development mode
	Development bool `json:"development,omitempty"`
	// DisableCaller stops annotating logs with the calling function's file name and line number
	DisableCaller bool `json:"disableCaller,omitempty"`
	// DisableStacktrace completely disables automatic stacktrace capturing
	DisableStacktrace bool `json:"disableStacktrace,omitempty"`
	// Encoding sets the logger's encoding ("json" or "console")
	Encoding string `json:"encoding,omitempty"`
	// OutputPaths is a list of URLs or file paths to write logging output to.
	// Defaults to stderr so stdout stays reserved for protocol output.
	OutputPaths []string `json:"outputPaths,omitempty"`
	// ErrorOutputPaths is a list of URLs to write internal logger errors to
	ErrorOutputPaths []string `json:"errorOutputPaths,omitempty"`
	// InitialFields is a collection of fields to add to the root logger
	InitialFields map[string]interface{} `json:"initialFields,omitempty"`
}

// toZapConfig converts the schema-friendly Config to a zap.Config.
func (c *Config) toZapConfig() (zap.Config, error) {
	var config zap.Config

	switch c.Encoding {
	case "json":
		config = zap.NewProductionConfig()
	default:
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	if c.Level != "" {
		level, err := zapcore.ParseLevel(c.Level)
		if err != nil {
			return config, fmt.Errorf("invalid log level %q: %w", c.Level, err)
		}
		config.Level = zap.NewAtomicLevelAt(level)
	}

	if c.Encoding != "" {
		config.Encoding = c.Encoding
	}

	config.Development = c.Development
	config.DisableCaller = c.DisableCaller
	config.DisableStacktrace = c.DisableStacktrace

	// stdout is the protocol stream on stdio transports; diagnostics go to stderr.
	config.OutputPaths = []string{"stderr"}
	if len(c.OutputPaths) > 0 {
		config.OutputPaths = c.OutputPaths
	}

	if len(c.ErrorOutputPaths) > 0 {
		config.ErrorOutputPaths = c.ErrorOutputPaths
	}

	if c.InitialFields != nil {
		config.InitialFields = c.InitialFields
	}

	return config, nil
}

// Build creates a logger from the configuration. It should be called once at
// startup and the resulting logger reused for the process lifetime.
func (c *Config) Build() (*zap.Logger, error) {
	config, err := c.toZapConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to convert to zap config: %w", err)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}
	return logger, nil
}

// Base returns a usable logger for the given config, degrading instead of
// failing: a nil config yields a stderr console logger, and a config that
// fails to build falls back the same way after reporting the build error
// through the fallback logger itself.
func Base(c *Config) *zap.Logger {
	if c == nil {
		return fallbackLogger(nil)
	}

	logger, err := c.Build()
	if err != nil || logger == nil {
		return fallbackLogger(err)
	}
	return logger
}

func fallbackLogger(buildErr error) *zap.Logger {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	config.Encoding = "console"
	config.OutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil || logger == nil {
		return zap.NewNop()
	}
	if buildErr != nil {
		logger.Error("failed to build configured logger, using console fallback", zap.Error(buildErr))
	}
	return logger
}
