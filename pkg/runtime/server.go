package runtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/promptforge/promptforge/pkg/config"
	"github.com/promptforge/promptforge/pkg/storage"
)

var createPromptSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"name":        {Type: "string", Description: "Short name of the prompt"},
		"description": {Type: "string", Description: "What the prompt is for"},
		"content":     {Type: "string", Description: "The prompt text"},
		"tags":        {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
	},
	Required: []string{"name", "content"},
}

var getPromptSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"id": {Type: "string", Description: "Prompt id"},
	},
	Required: []string{"id"},
}

var updatePromptSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"id":          {Type: "string", Description: "Prompt id"},
		"name":        {Type: "string"},
		"description": {Type: "string"},
		"content":     {Type: "string"},
		"tags":        {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
	},
	Required: []string{"id", "name", "content"},
}

var deletePromptSchema = getPromptSchema

var listPromptsSchema = &jsonschema.Schema{
	Type:       "object",
	Properties: map[string]*jsonschema.Schema{},
}

// makeServer builds the MCP server over the given storage handle. The storage
// must be constructed before this is called; every tool handler closes over it.
func makeServer(cfg *config.Config, store storage.Store, logger *zap.Logger) *mcp.Server {
	logger.Debug("building MCP server",
		zap.String("server_name", cfg.Server.Name),
		zap.String("server_version", cfg.Server.Version))

	opts := &mcp.ServerOptions{
		HasTools: true,
	}
	if cfg.Server.Description != "" {
		opts.Instructions = cfg.Server.Description
	}

	s := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Server.Name,
		Version: cfg.Server.Version,
	}, opts)

	s.AddTool(&mcp.Tool{
		Name:        "create_prompt",
		Description: "Store a new prompt",
		InputSchema: createPromptSchema,
	}, createPromptHandler(store, logger))

	s.AddTool(&mcp.Tool{
		Name:        "get_prompt",
		Description: "Fetch a stored prompt by id",
		InputSchema: getPromptSchema,
	}, getPromptHandler(store, logger))

	s.AddTool(&mcp.Tool{
		Name:        "update_prompt",
		Description: "Replace a stored prompt",
		InputSchema: updatePromptSchema,
	}, updatePromptHandler(store, logger))

	s.AddTool(&mcp.Tool{
		Name:        "delete_prompt",
		Description: "Delete a stored prompt by id",
		InputSchema: deletePromptSchema,
	}, deletePromptHandler(store, logger))

	s.AddTool(&mcp.Tool{
		Name:        "list_prompts",
		Description: "List all stored prompts",
		InputSchema: listPromptsSchema,
	}, listPromptsHandler(store, logger))

	return s
}

type promptArgs struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
}

func parseArgs(req *mcp.CallToolRequest) (*promptArgs, error) {
	args := &promptArgs{}
	if len(req.Params.Arguments) == 0 {
		return args, nil
	}
	if err := json.Unmarshal(req.Params.Arguments, args); err != nil {
		return nil, fmt.Errorf("failed to parse tool arguments: %w", err)
	}
	return args, nil
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("failed to serialize result: %s", err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func createPromptHandler(store storage.Store, logger *zap.Logger) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := parseArgs(req)
		if err != nil {
			return errorResult("%s", err.Error()), nil
		}

		p := &storage.Prompt{
			Name:        args.Name,
			Description: args.Description,
			Content:     args.Content,
			Tags:        args.Tags,
		}
		if err := store.Create(ctx, p); err != nil {
			logger.Error("failed to create prompt", zap.String("prompt_name", args.Name), zap.Error(err))
			return errorResult("failed to create prompt: %s", err.Error()), nil
		}

		logger.Info("created prompt", zap.String("prompt_id", p.ID), zap.String("prompt_name", p.Name))
		return jsonResult(p), nil
	}
}

func getPromptHandler(store storage.Store, logger *zap.Logger) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := parseArgs(req)
		if err != nil {
			return errorResult("%s", err.Error()), nil
		}

		p, err := store.Get(ctx, args.ID)
		if err != nil {
			logger.Warn("failed to get prompt", zap.String("prompt_id", args.ID), zap.Error(err))
			return errorResult("failed to get prompt: %s", err.Error()), nil
		}
		return jsonResult(p), nil
	}
}

func updatePromptHandler(store storage.Store, logger *zap.Logger) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := parseArgs(req)
		if err != nil {
			return errorResult("%s", err.Error()), nil
		}

		p := &storage.Prompt{
			ID:          args.ID,
			Name:        args.Name,
			Description: args.Description,
			Content:     args.Content,
			Tags:        args.Tags,
		}
		if err := store.Update(ctx, p); err != nil {
			logger.Warn("failed to update prompt", zap.String("prompt_id", args.ID), zap.Error(err))
			return errorResult("failed to update prompt: %s", err.Error()), nil
		}

		logger.Info("updated prompt", zap.String("prompt_id", p.ID))
		return jsonResult(p), nil
	}
}

func deletePromptHandler(store storage.Store, logger *zap.Logger) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := parseArgs(req)
		if err != nil {
			return errorResult("%s", err.Error()), nil
		}

		if err := store.Delete(ctx, args.ID); err != nil {
			logger.Warn("failed to delete prompt", zap.String("prompt_id", args.ID), zap.Error(err))
			return errorResult("failed to delete prompt: %s", err.Error()), nil
		}

		logger.Info("deleted prompt", zap.String("prompt_id", args.ID))
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("deleted prompt %s", args.ID)}},
		}, nil
	}
}

func listPromptsHandler(store storage.Store, logger *zap.Logger) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		prompts, err := store.List(ctx)
		if err != nil {
			logger.Error("failed to list prompts", zap.Error(err))
			return errorResult("failed to list prompts: %s", err.Error()), nil
		}
		if prompts == nil {
			prompts = []*storage.Prompt{}
		}
		return jsonResult(prompts), nil
	}
}
