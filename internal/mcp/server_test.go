package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/claude/setlog/internal/api"
	"github.com/claude/setlog/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

type fakeSource struct {
	data    *api.WorkoutData
	records []models.WorkoutRecord
	err     error
}

func (f *fakeSource) FetchWorkoutData(ctx context.Context) (*api.WorkoutData, error) {
	return f.data, f.err
}

func (f *fakeSource) FetchRecentHistory(ctx context.Context, templateID string, limit int) ([]models.WorkoutRecord, error) {
	return f.records, f.err
}

// TestParseLimit verifies defaulting and rejection of non-positive limits.
func TestParseLimit(t *testing.T) {
	tests := []struct {
		in      string
		def     int
		want    int
		wantErr bool
	}{
		{"", 2, 2, false},
		{"5", 2, 5, false},
		{"0", 2, 0, true},
		{"-1", 2, 0, true},
		{"zero", 2, 0, true},
	}
	for _, tt := range tests {
		got, err := parseLimit(tt.in, tt.def)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLimit(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseLimit(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// TestRecentWorkoutsResource verifies the resource caps the payload and
// serves it as JSON under the requested URI.
func TestRecentWorkoutsResource(t *testing.T) {
	var history []models.WorkoutRecord
	for i := range 15 {
		history = append(history, models.WorkoutRecord{WorkoutID: fmt.Sprintf("workout_%d", i)})
	}
	h := &handlers{
		ds:  &fakeSource{data: &api.WorkoutData{History: history}},
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "setlog://recent_workouts"

	contents, err := h.recentWorkouts(context.Background(), req)
	if err != nil {
		t.Fatalf("recentWorkouts: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(contents))
	}

	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents[0] is %T, want TextResourceContents", contents[0])
	}
	if text.URI != "setlog://recent_workouts" {
		t.Errorf("URI = %q", text.URI)
	}

	var got []models.WorkoutRecord
	if err := json.Unmarshal([]byte(text.Text), &got); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if len(got) != recentWorkoutsWindow {
		t.Errorf("payload has %d records, want %d", len(got), recentWorkoutsWindow)
	}
	if got[0].WorkoutID != "workout_0" {
		t.Errorf("first record = %q, want workout_0", got[0].WorkoutID)
	}
}
