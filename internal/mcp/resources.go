package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// recentWorkoutsWindow caps the resource payload; the full history is
// available through the get_workout_history tool.
const recentWorkoutsWindow = 10

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := h.ds.FetchWorkoutData(ctx)
	if err != nil {
		return nil, err
	}

	history := data.History
	if len(history) > recentWorkoutsWindow {
		history = history[:recentWorkoutsWindow]
	}

	payload, err := json.Marshal(history)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(payload),
		},
	}, nil
}
