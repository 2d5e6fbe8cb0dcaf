package runtime

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/promptforge/promptforge/pkg/storage"
)

func callRequest(args string) *mcp.CallToolRequest {
	return &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Arguments: []byte(args),
		},
	}
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestPromptToolHandlers(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(zap.NewNop())
	logger := zap.NewNop()

	create := createPromptHandler(store, logger)
	result, err := create(ctx, callRequest(`{"name": "greeting", "content": "hello there", "tags": ["demo"]}`))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var created storage.Prompt
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "greeting", created.Name)

	get := getPromptHandler(store, logger)
	result, err = get(ctx, callRequest(`{"id": "`+created.ID+`"}`))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, textOf(t, result), "hello there")

	update := updatePromptHandler(store, logger)
	result, err = update(ctx, callRequest(`{"id": "`+created.ID+`", "name": "greeting", "content": "general kenobi"}`))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, textOf(t, result), "general kenobi")

	list := listPromptsHandler(store, logger)
	result, err = list(ctx, callRequest(`{}`))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var prompts []*storage.Prompt
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &prompts))
	assert.Len(t, prompts, 1)

	del := deletePromptHandler(store, logger)
	result, err = del(ctx, callRequest(`{"id": "`+created.ID+`"}`))
	require.NoError(t, err)
	require.False(t, result.IsError)

	result, err = get(ctx, callRequest(`{"id": "`+created.ID+`"}`))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandlersReportToolErrorsInBand(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(zap.NewNop())
	logger := zap.NewNop()

	// unknown id is a tool-level error, not a protocol error
	get := getPromptHandler(store, logger)
	result, err := get(ctx, callRequest(`{"id": "missing"}`))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textOf(t, result), "missing")

	// malformed arguments likewise
	create := createPromptHandler(store, logger)
	result, err = create(ctx, callRequest(`{not json`))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestListPromptsReturnsEmptyArray(t *testing.T) {
	store := storage.NewMemoryStore(zap.NewNop())

	list := listPromptsHandler(store, zap.NewNop())
	result, err := list(context.Background(), callRequest(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "[]", textOf(t, result))
}

func TestMakeServer(t *testing.T) {
	cfg := testConfig()
	store := storage.NewMemoryStore(zap.NewNop())

	s := makeServer(cfg, store, zap.NewNop())
	require.NotNil(t, s)
}
