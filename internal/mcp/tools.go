package mcp

import (
	"context"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
)

// defaultRecentLimit matches the previous-performance window shown while
// logging a workout.
const defaultRecentLimit = 2

// parseLimit interprets an optional limit argument, defaulting when empty.
func parseLimit(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

// --- Tool definitions ---

var toolListTemplates = mcp.NewTool("list_workout_templates",
	mcp.WithDescription("List the user's workout templates. Each template names its exercises, their measurement type (weights, bodyweight, timed, cardio), and planned sets."),
)

var toolGetHistory = mcp.NewTool("get_workout_history",
	mcp.WithDescription("Retrieve completed workouts, newest first. Each record includes every exercise with per-set values (weight, reps, distance, time) and the set quality rating."),
	mcp.WithString("limit", mcp.Description("Maximum number of workouts to return. Defaults to all.")),
)

var toolGetRecentHistory = mcp.NewTool("get_recent_history",
	mcp.WithDescription("Retrieve the most recent completed workouts for one template, newest first. Useful for progression analysis on a specific routine."),
	mcp.WithString("template_id", mcp.Required(), mcp.Description("Template ID to fetch history for")),
	mcp.WithString("limit", mcp.Description("Maximum number of workouts to return. Defaults to 2.")),
)

// --- Tool handlers ---

func (h *handlers) listTemplates(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := h.ds.FetchWorkoutData(ctx)
	if err != nil {
		h.log.Error("mcp list_workout_templates", "error", err)
		return mcp.NewToolResultError("fetch failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(data.Templates)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := h.ds.FetchWorkoutData(ctx)
	if err != nil {
		h.log.Error("mcp get_workout_history", "error", err)
		return mcp.NewToolResultError("fetch failed: " + err.Error()), nil
	}

	history := data.History
	limit, err := parseLimit(req.GetString("limit", ""), len(history))
	if err != nil {
		return mcp.NewToolResultError("limit must be a positive integer"), nil
	}
	if limit < len(history) {
		history = history[:limit]
	}

	result, err := mcp.NewToolResultJSON(history)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRecentHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templateID, err := req.RequireString("template_id")
	if err != nil {
		return mcp.NewToolResultError("template_id parameter is required"), nil
	}

	limit, err := parseLimit(req.GetString("limit", ""), defaultRecentLimit)
	if err != nil {
		return mcp.NewToolResultError("limit must be a positive integer"), nil
	}

	records, err := h.ds.FetchRecentHistory(ctx, templateID, limit)
	if err != nil {
		h.log.Error("mcp get_recent_history", "template", templateID, "error", err)
		return mcp.NewToolResultError("fetch failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
