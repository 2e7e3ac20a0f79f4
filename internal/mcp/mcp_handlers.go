package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goatarena/goatrank/core"
	"github.com/goatarena/goatrank/core/algo"
	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/schema"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.Store
}

// rankedResult adds rank and tier label on top of a final score, matching
// the CLI's JSON output shape.
type rankedResult struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	schema.FinalScore
}

func enrichRanking(scores []schema.FinalScore) []rankedResult {
	out := make([]rankedResult, len(scores))
	for i, s := range scores {
		out[i] = rankedResult{
			Rank:       i + 1,
			Label:      contract.GetPlainLabel(s.Score),
			FinalScore: s,
		}
	}
	return out
}

// parseID parses a required UUID argument.
func parseID(request mcp.CallToolRequest, key string) (uuid.UUID, error) {
	raw := request.GetString(key, "")
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%s is required", key)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid UUID: %v", key, err)
	}
	return id, nil
}

// parseOptionalID parses an optional UUID argument, returning nil when absent.
func parseOptionalID(request mcp.CallToolRequest, key string) (*uuid.UUID, error) {
	raw := request.GetString(key, "")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s is not a valid UUID: %v", key, err)
	}
	return &id, nil
}

func (h *toolHandler) handleRunScoring(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categoryID, err := parseID(request, "category_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	modelID, err := parseOptionalID(request, "model_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg := h.baseCfg.Clone()
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	scores, err := core.RunScoring(ctx, h.store, cfg, categoryID, modelID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	ranked := algo.RankScores(scores, cfg.ResultLimit)

	jsonData, _ := json.MarshalIndent(enrichRanking(ranked), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRankings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categoryID, err := parseID(request, "category_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	modelID, err := parseOptionalID(request, "model_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg := h.baseCfg.Clone()
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	if modelID == nil {
		model, err := h.store.GetActiveScoringModel(ctx, categoryID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load active model: %v", err)), nil
		}
		if model == nil {
			return mcp.NewToolResultError("category has no active scoring model"), nil
		}
		modelID = &model.ID
	}

	scores, err := h.store.ListFinalScores(ctx, categoryID, *modelID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list rankings failed: %v", err)), nil
	}
	ranked := algo.RankScores(scores, cfg.ResultLimit)

	jsonData, _ := json.MarshalIndent(enrichRanking(ranked), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCalculateInfluence(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entityID, err := parseID(request, "entity_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	modelID, err := parseOptionalID(request, "model_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	score, err := core.CalculateInfluenceScore(ctx, h.store, entityID, modelID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("influence calculation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(score, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCalculateEraFactors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eraID, err := parseID(request, "era_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := core.CalculateEraFactors(ctx, h.store, eraID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("era factor calculation failed: %v", err)), nil
	}

	// Collect the stored factors for every component that has one.
	components, err := h.store.ListComponents(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list components failed: %v", err)), nil
	}
	type factorResult struct {
		ComponentName string  `json:"component_name"`
		Mean          float64 `json:"mean"`
		StdDev        float64 `json:"std_dev"`
		Multiplier    float64 `json:"multiplier"`
	}
	var factors []factorResult
	for _, c := range components {
		f, err := h.store.GetEraFactor(ctx, eraID, c.ID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load era factor failed: %v", err)), nil
		}
		if f == nil {
			continue
		}
		factors = append(factors, factorResult{
			ComponentName: c.Name,
			Mean:          f.Mean,
			StdDev:        f.StdDev,
			Multiplier:    f.Multiplier,
		})
	}

	jsonData, _ := json.MarshalIndent(factors, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCreateSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categoryID, err := parseID(request, "category_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	modelID, err := parseOptionalID(request, "model_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	label := request.GetString("label", "")

	snap, err := core.CreateSnapshot(ctx, h.store, categoryID, modelID, label)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("snapshot failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(snap, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
