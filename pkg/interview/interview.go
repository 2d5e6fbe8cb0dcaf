// Package interview collects project options through a fixed sequence of
// questions with conditional branches. The question flow is the single
// enforcement point for the conditional-presence rules: auth options exist
// only for network transports, a deployment domain only for remote platforms.
package interview

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/promptforge/promptforge/pkg/scaffold"
)

// Prompter asks one question at a time. The terminal implementation lives in
// this package; tests script their own.
type Prompter interface {
	// Input asks a free-form question and returns the raw answer.
	Input(question string) (string, error)

	// Select asks the user to pick exactly one of the choices.
	Select(question string, choices []string) (string, error)

	// MultiSelect asks the user to pick zero or more of the choices.
	MultiSelect(question string, choices []string) ([]string, error)

	// Confirm asks a yes/no question.
	Confirm(question string) (bool, error)
}

// Choice sets offered by the interview. Closed sets: the prompter returns one
// of these values, never free text.
var (
	Transports          = []string{"http", "websocket", "stdio", "grpc"}
	StorageBackends     = []string{"json", "sqlite", "mongodb", "postgres"}
	Features            = []string{"templates", "sharing", "analytics", "collaboration"}
	AuthTypes           = []string{"apikey", "oauth", "jwt"}
	OAuthProviders      = []string{"github", "google", "supabase"}
	DeploymentPlatforms = []string{"local", "docker", "fly", "railway"}
)

// Collector runs the interview against a Prompter.
type Collector struct {
	prompter Prompter
	logger   *zap.Logger
}

// NewCollector creates a Collector.
func NewCollector(prompter Prompter, logger *zap.Logger) *Collector {
	return &Collector{prompter: prompter, logger: logger}
}

// Collect runs the full question sequence and returns the resolved options.
// Any prompter error aborts the interview immediately.
func (c *Collector) Collect() (*scaffold.ProjectOptions, error) {
	opts := &scaffold.ProjectOptions{}

	for opts.Name == "" {
		name, err := c.prompter.Input("What is your project named?")
		if err != nil {
			return nil, fmt.Errorf("failed to read project name: %w", err)
		}
		opts.Name = strings.TrimSpace(name)
		if opts.Name == "" {
			c.logger.Debug("empty project name, asking again")
		}
	}

	description, err := c.prompter.Input("Describe your project (optional)")
	if err != nil {
		return nil, fmt.Errorf("failed to read project description: %w", err)
	}
	opts.Description = description

	transport, err := c.prompter.Select("Which transport should the server use?", Transports)
	if err != nil {
		return nil, fmt.Errorf("failed to read transport: %w", err)
	}
	opts.Transport = transport

	storage, err := c.prompter.Select("Where should prompts be stored?", StorageBackends)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage backend: %w", err)
	}
	opts.Storage = storage

	features, err := c.prompter.MultiSelect("Which features do you want?", Features)
	if err != nil {
		return nil, fmt.Errorf("failed to read features: %w", err)
	}
	opts.Features = features

	if opts.Transport != "stdio" {
		auth, err := c.collectAuth()
		if err != nil {
			return nil, err
		}
		opts.Auth = auth
	}

	deployment, err := c.collectDeployment()
	if err != nil {
		return nil, err
	}
	opts.Deployment = deployment

	c.logger.Debug("interview complete",
		zap.String("project_name", opts.Name),
		zap.String("transport", opts.Transport),
		zap.String("storage", opts.Storage))
	return opts, nil
}

// collectAuth runs the auth sub-tree. It returns nil when the user declines
// authentication, so the options carry no auth key at all.
func (c *Collector) collectAuth() (*scaffold.AuthOptions, error) {
	needsAuth, err := c.prompter.Confirm("Does your server need authentication?")
	if err != nil {
		return nil, fmt.Errorf("failed to read auth choice: %w", err)
	}
	if !needsAuth {
		return nil, nil
	}

	authType, err := c.prompter.Select("Which authentication type?", AuthTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to read auth type: %w", err)
	}

	auth := &scaffold.AuthOptions{Type: authType}
	if authType == "oauth" {
		provider, err := c.prompter.Select("Which OAuth provider?", OAuthProviders)
		if err != nil {
			return nil, fmt.Errorf("failed to read oauth provider: %w", err)
		}
		auth.Provider = provider
	}
	return auth, nil
}

// collectDeployment runs the deployment sub-tree. A declined deployment
// returns nil; the local platform never asks for a domain.
func (c *Collector) collectDeployment() (*scaffold.DeploymentOptions, error) {
	needsDeployment, err := c.prompter.Confirm("Do you want to configure deployment?")
	if err != nil {
		return nil, fmt.Errorf("failed to read deployment choice: %w", err)
	}
	if !needsDeployment {
		return nil, nil
	}

	platform, err := c.prompter.Select("Which platform will you deploy to?", DeploymentPlatforms)
	if err != nil {
		return nil, fmt.Errorf("failed to read deployment platform: %w", err)
	}

	deployment := &scaffold.DeploymentOptions{Platform: platform}
	if platform != "local" {
		domain, err := c.prompter.Input("What domain will the server be reachable at?")
		if err != nil {
			return nil, fmt.Errorf("failed to read deployment domain: %w", err)
		}
		deployment.Domain = domain
	}
	return deployment, nil
}
