package mcpserver

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithArgs(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestStringMapArgument_Strings(t *testing.T) {
	req := requestWithArgs(map[string]any{
		"options": map[string]any{"version": "1.0", "environment": "prod"},
	})

	got, err := stringMapArgument(req, "options")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"version": "1.0", "environment": "prod"}, got)
}

func TestStringMapArgument_CoercesScalars(t *testing.T) {
	req := requestWithArgs(map[string]any{
		"options": map[string]any{
			"count":   float64(3),
			"ratio":   1.5,
			"dry_run": true,
		},
	})

	got, err := stringMapArgument(req, "options")

	require.NoError(t, err)
	assert.Equal(t, "3", got["count"])
	assert.Equal(t, "1.5", got["ratio"])
	assert.Equal(t, "true", got["dry_run"])
}

func TestStringMapArgument_Absent(t *testing.T) {
	got, err := stringMapArgument(requestWithArgs(map[string]any{}), "options")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStringMapArgument_RejectsNonObject(t *testing.T) {
	req := requestWithArgs(map[string]any{"options": "version=1.0"})

	_, err := stringMapArgument(req, "options")

	assert.Error(t, err)
}

func TestStringMapArgument_RejectsNestedValues(t *testing.T) {
	req := requestWithArgs(map[string]any{
		"options": map[string]any{"nested": map[string]any{"x": 1}},
	})

	_, err := stringMapArgument(req, "options")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nested")
}

func TestToolResult_RendersIndentedJSON(t *testing.T) {
	result, err := toolResult(map[string]string{"id": "abc"})

	require.NoError(t, err)
	require.Len(t, result.Content, 1)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Contains(t, text.Text, `"id": "abc"`)
}
