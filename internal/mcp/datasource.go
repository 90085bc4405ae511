package mcp

import (
	"context"

	"github.com/claude/setlog/internal/api"
	"github.com/claude/setlog/internal/models"
)

// DataSource is the read surface the MCP server exposes. The API client
// satisfies it; tests substitute fakes.
type DataSource interface {
	FetchWorkoutData(ctx context.Context) (*api.WorkoutData, error)
	FetchRecentHistory(ctx context.Context, templateID string, limit int) ([]models.WorkoutRecord, error)
}

var _ DataSource = (*api.Client)(nil)
