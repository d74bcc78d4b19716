package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

// NewMCPServer exposes the planner as MCP tools
func NewMCPServer(planner *Planner) *server.MCPServer {
	s := server.NewMCPServer(
		"grid-planner",
		version,
		server.WithToolCapabilities(true),
	)
	s.AddTool(shortestPathTool(), shortestPathHandler(planner))
	s.AddTool(renderGridTool(), renderGridHandler(planner))
	return s
}

// --- shortest_path ---

func shortestPathTool() mcp.Tool {
	return mcp.NewTool("shortest_path",
		mcp.WithDescription("Find the shortest 8-directional path between two grid cells, avoiding obstacles and wall corners. Returns the path, step count and breadth-first verification."),
		mcp.WithNumber("source_row", mcp.Required(), mcp.Description("Row of the start cell (0-based)")),
		mcp.WithNumber("source_col", mcp.Required(), mcp.Description("Column of the start cell (0-based)")),
		mcp.WithNumber("destination_row", mcp.Required(), mcp.Description("Row of the target cell (0-based)")),
		mcp.WithNumber("destination_col", mcp.Required(), mcp.Description("Column of the target cell (0-based)")),
	)
}

func shortestPathHandler(planner *Planner) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		src := Cell{Row: req.GetInt("source_row", -1), Col: req.GetInt("source_col", -1)}
		dst := Cell{Row: req.GetInt("destination_row", -1), Col: req.GetInt("destination_col", -1)}

		result, err := planner.Route(src, dst)
		if err != nil && !errors.Is(err, ErrInconsistentVerification) {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(Summary(result))
		sb.WriteString("\n")
		if result.Found {
			sb.WriteString("\n")
			sb.WriteString(FormatPath(*result.Path))
		}
		sb.WriteString("\n")
		sb.WriteString(RenderRoute(planner.Grid(), result, false))
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- render_grid ---

func renderGridTool() mcp.Tool {
	return mcp.NewTool("render_grid",
		mcp.WithDescription("Show the current grid: □ passable, ▓ obstacle."),
	)
}

func renderGridHandler(planner *Planner) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g := planner.Grid()
		text := fmt.Sprintf("%dx%d grid, %d obstacles\n\n%s", g.Height(), g.Width(), g.ObstacleCount(), RenderMap(g, false))
		return mcp.NewToolResultText(text), nil
	}
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the planner as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := NewMCPServer(NewPlanner(grid, cfg.PlannerOptions()...))
		return server.ServeStdio(s)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
