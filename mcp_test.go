package main

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), name string, args map[string]interface{}) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", result.Content[0])
	return text.Text, result.IsError
}

func TestShortestPathTool(t *testing.T) {
	planner := NewPlanner(gridFromRows(t, "000", "000", "000"))
	handler := shortestPathHandler(planner)

	text, isError := callTool(t, handler, "shortest_path", map[string]interface{}{
		"source_row": 0.0, "source_col": 0.0, "destination_row": 2.0, "destination_col": 2.0,
	})
	assert.False(t, isError)
	assert.Contains(t, text, "reachable, steps = 2")
	assert.Contains(t, text, "verification passed")
	assert.Contains(t, text, "(1, 1) →")
	assert.Contains(t, text, "☆□□\n□▽□\n□□◎\n")

	text, isError = callTool(t, handler, "shortest_path", map[string]interface{}{
		"source_row": 0.0, "source_col": 0.0, "destination_row": 7.0, "destination_col": 2.0,
	})
	assert.True(t, isError)
	assert.Contains(t, text, "outside 3x3 grid")

	// missing arguments read as -1
	_, isError = callTool(t, handler, "shortest_path", map[string]interface{}{})
	assert.True(t, isError)
}

func TestShortestPathToolUnreachable(t *testing.T) {
	planner := NewPlanner(gridFromRows(t, "010", "110", "000"))

	text, isError := callTool(t, shortestPathHandler(planner), "shortest_path", map[string]interface{}{
		"source_row": 0.0, "source_col": 0.0, "destination_row": 2.0, "destination_col": 2.0,
	})
	assert.False(t, isError)
	assert.Contains(t, text, "unreachable")
}

func TestRenderGridTool(t *testing.T) {
	planner := NewPlanner(gridFromRows(t, "01", "00"))

	text, isError := callTool(t, renderGridHandler(planner), "render_grid", nil)
	assert.False(t, isError)
	assert.Equal(t, "2x2 grid, 1 obstacles\n\n□▓\n□□\n", text)
}

func TestNewMCPServer(t *testing.T) {
	s := NewMCPServer(NewPlanner(gridFromRows(t, "0")))
	assert.NotNil(t, s)
}
