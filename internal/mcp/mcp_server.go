// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the goatrank MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.Store) *server.MCPServer {
	s := server.NewMCPServer(
		"GOAT Ranking Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: run_scoring ---
	s.AddTool(mcp.NewTool("run_scoring",
		mcp.WithDescription("Run the scoring pipeline for a category and return the ranked results."),
		mcp.WithString("category_id", mcp.Description("UUID of the category to score."), mcp.Required()),
		mcp.WithString("model_id", mcp.Description("UUID of the scoring model. Defaults to the category's active model.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleRunScoring)

	// --- 2. Tool: get_rankings ---
	s.AddTool(mcp.NewTool("get_rankings",
		mcp.WithDescription("Return the stored ranking for a category without rescoring."),
		mcp.WithString("category_id", mcp.Description("UUID of the category."), mcp.Required()),
		mcp.WithString("model_id", mcp.Description("UUID of the scoring model. Defaults to the category's active model.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetRankings)

	// --- 3. Tool: calculate_influence ---
	s.AddTool(mcp.NewTool("calculate_influence",
		mcp.WithDescription("Calculate and persist the AI influence score for an entity from its recorded evidence."),
		mcp.WithString("entity_id", mcp.Description("UUID of the entity."), mcp.Required()),
		mcp.WithString("model_id", mcp.Description("UUID of the influence model. Defaults to the category's active influence model.")),
	), h.handleCalculateInfluence)

	// --- 4. Tool: calculate_era_factors ---
	s.AddTool(mcp.NewTool("calculate_era_factors",
		mcp.WithDescription("Recompute per-component mean and standard deviation for an era, preserving manual multipliers."),
		mcp.WithString("era_id", mcp.Description("UUID of the era."), mcp.Required()),
	), h.handleCalculateEraFactors)

	// --- 5. Tool: create_snapshot ---
	s.AddTool(mcp.NewTool("create_snapshot",
		mcp.WithDescription("Freeze the current ranking of a category into an immutable snapshot."),
		mcp.WithString("category_id", mcp.Description("UUID of the category."), mcp.Required()),
		mcp.WithString("model_id", mcp.Description("UUID of the scoring model. Defaults to the category's active model.")),
		mcp.WithString("label", mcp.Description("Free-form label for the snapshot.")),
	), h.handleCreateSnapshot)

	return s
}

// StartMCPServer starts the goatrank MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.Store) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
