// Package scaffold turns collected project options into an on-disk project
// skeleton. Generation is pure: Generate returns the artifact list without
// touching the filesystem, and Writer materializes it.
package scaffold

import (
	"fmt"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/promptforge/promptforge/pkg/config"
)

// ProjectOptions is the answer sheet produced by the interview. Auth and
// Deployment are nil when the corresponding questions were skipped.
type ProjectOptions struct {
	Name        string
	Description string
	Transport   string
	Storage     string
	Features    []string

	Auth       *AuthOptions
	Deployment *DeploymentOptions
}

// AuthOptions describes the authentication the generated server should use.
// Provider is set only for the oauth type.
type AuthOptions struct {
	Type     string
	Provider string
}

// DeploymentOptions describes where the generated server will be deployed.
// Domain is empty for local deployments.
type DeploymentOptions struct {
	Platform string
	Domain   string
}

// Artifact is one generated file, path relative to the project root.
type Artifact struct {
	Path       string
	Content    string
	Executable bool
}

// Generate produces the full artifact set for the given options. The result
// is deterministic for identical options.
func Generate(opts *ProjectOptions) []Artifact {
	return []Artifact{
		{Path: "go.mod", Content: goModContent(opts)},
		{Path: "main.go", Content: mainGoContent(opts)},
		{Path: "promptforge.yaml", Content: configContent(opts)},
		{Path: "README.md", Content: readmeContent(opts)},
		{Path: ".gitignore", Content: gitignoreContent()},
		{Path: "run.sh", Content: runScriptContent(opts), Executable: true},
	}
}

// serverTransport maps an interview transport choice to the transport key the
// runtime understands. Everything that is not stdio is served over streamable
// HTTP; websocket and grpc front-ends terminate elsewhere.
func serverTransport(choice string) string {
	if choice == "stdio" {
		return "stdio"
	}
	return "streamablehttp"
}

// serverStorage maps an interview storage choice to a storage config block.
func serverStorage(choice string) config.StorageConfig {
	switch choice {
	case "json":
		return config.StorageConfig{Type: config.StorageTypeFile, Path: "prompts.json"}
	case "sqlite", "mongodb", "postgres":
		return config.StorageConfig{Type: config.StorageTypeDatabase, Database: "$DATABASE_URL"}
	default:
		return config.StorageConfig{Type: config.StorageTypeMemory}
	}
}

func goModContent(opts *ProjectOptions) string {
	return fmt.Sprintf(`module %s

go 1.24

require github.com/promptforge/promptforge v0.1.0
`, moduleName(opts.Name))
}

// moduleName normalizes a project name into something usable as a module
// path element.
func moduleName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	return s
}

func mainGoContent(opts *ProjectOptions) string {
	return fmt.Sprintf(`package main

import (
	"fmt"
	"os"

	"github.com/promptforge/promptforge/pkg/cli"
)

// %s serves prompts over the %s transport.
func main() {
	if err := cli.Execute("dev"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
`, opts.Name, opts.Transport)
}

// configContent renders a config file the runtime can parse back without
// edits. It marshals the real config types so the artifact can never drift
// from the schema.
func configContent(opts *ProjectOptions) string {
	cfg := &config.Config{
		Kind:          config.Kind,
		SchemaVersion: config.SchemaVersion,
		Server: config.ServerConfig{
			Name:        opts.Name,
			Version:     "0.1.0",
			Description: opts.Description,
			Transport:   serverTransport(opts.Transport),
		},
		Storage:  serverStorage(opts.Storage),
		Features: featureFlags(opts.Features),
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		// config.Config contains nothing unmarshalable
		panic(err)
	}
	return string(data)
}

func featureFlags(features []string) config.FeatureFlags {
	flags := config.FeatureFlags{}
	for _, f := range features {
		switch f {
		case "templates":
			flags.Templates = true
		case "sharing":
			flags.Sharing = true
		case "analytics":
			flags.Analytics = true
		case "collaboration":
			flags.Collaboration = true
		}
	}
	return flags
}

func readmeContent(opts *ProjectOptions) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", opts.Name)
	if opts.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", opts.Description)
	}
	b.WriteString("An MCP server scaffolded with promptforge.\n\n")
	b.WriteString("## Configuration\n\n")
	fmt.Fprintf(&b, "- Transport: %s\n", opts.Transport)
	fmt.Fprintf(&b, "- Storage: %s\n", opts.Storage)
	if len(opts.Features) > 0 {
		fmt.Fprintf(&b, "- Features: %s\n", strings.Join(opts.Features, ", "))
	}
	if opts.Auth != nil {
		fmt.Fprintf(&b, "- Auth: %s", opts.Auth.Type)
		if opts.Auth.Provider != "" {
			fmt.Fprintf(&b, " (%s)", opts.Auth.Provider)
		}
		b.WriteString("\n")
	}
	if opts.Deployment != nil {
		fmt.Fprintf(&b, "- Deployment: %s", opts.Deployment.Platform)
		if opts.Deployment.Domain != "" {
			fmt.Fprintf(&b, " at %s", opts.Deployment.Domain)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n## Running\n\n")
	b.WriteString("```sh\n./run.sh\n```\n")

	return b.String()
}

func gitignoreContent() string {
	return `/bin/
*.log
.env
prompts.json
`
}

func runScriptContent(opts *ProjectOptions) string {
	var b strings.Builder

	b.WriteString("#!/bin/sh\nset -e\n\n")
	if serverStorage(opts.Storage).Type == config.StorageTypeDatabase {
		b.WriteString(`if [ -z "$DATABASE_URL" ]; then
	echo "DATABASE_URL must be set" >&2
	exit 1
fi

`)
	}
	b.WriteString("exec go run . run --config promptforge.yaml\n")

	return b.String()
}
