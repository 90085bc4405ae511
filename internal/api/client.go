// Package api is the HTTP client for the remote workout API. The API is an
// external deployment; this client covers exactly the operations the app
// consumes: the template+history listing, recent history for a template,
// workout creation, template creation, and template deletion.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/claude/setlog/internal/auth"
	"github.com/claude/setlog/internal/models"
)

// Client calls the remote workout API with bearer authentication. Every
// operation is attempted exactly once per user action — no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     auth.TokenSource
	log        *slog.Logger
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string, tokens auth.TokenSource, log *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     tokens,
		log:        log,
	}
}

// Error is a failed API response. Message carries the server-provided error
// text when the body had one, so callers can surface it over the generic
// transport wording.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// WorkoutData is the template+history listing returned by GET /templates.
type WorkoutData struct {
	Templates []models.Template      `json:"templates"`
	History   []models.WorkoutRecord `json:"history"`
}

// FetchWorkoutData retrieves the user's templates and workout history.
// History is sorted by createdAt descending before return — the listing
// endpoint makes no ordering promise, unlike /history.
func (c *Client) FetchWorkoutData(ctx context.Context) (*WorkoutData, error) {
	var data WorkoutData
	if err := c.do(ctx, http.MethodGet, "/templates", nil, nil, &data); err != nil {
		return nil, err
	}

	sort.SliceStable(data.History, func(i, j int) bool {
		return data.History[i].CreatedAt.After(data.History[j].CreatedAt)
	})
	return &data, nil
}

// FetchRecentHistory retrieves the most recent prior workouts for a template,
// server-ordered most recent first. The result is attached to a new session
// as-is; index 0 is treated as the latest workout.
func (c *Client) FetchRecentHistory(ctx context.Context, templateID string, limit int) ([]models.WorkoutRecord, error) {
	params := url.Values{}
	params.Set("templateID", templateID)
	params.Set("limit", strconv.Itoa(limit))

	var records []models.WorkoutRecord
	if err := c.do(ctx, http.MethodGet, "/history", params, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SaveWorkout persists a completed workout record.
func (c *Client) SaveWorkout(ctx context.Context, rec models.WorkoutRecord) (*models.WorkoutRecord, error) {
	var created models.WorkoutRecord
	if err := c.do(ctx, http.MethodPost, "/workouts", nil, rec, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateTemplate persists a new workout template. Exercises without an ID are
// assigned one before sending; IDs are client-generated and stable for the
// template's lifetime.
func (c *Client) CreateTemplate(ctx context.Context, tpl models.Template) (*models.Template, error) {
	exercises := make([]models.ExerciseTemplate, len(tpl.Exercises))
	copy(exercises, tpl.Exercises)
	for i := range exercises {
		if exercises[i].ExerciseID == "" {
			exercises[i].ExerciseID = models.NewExerciseID()
		}
	}
	tpl.Exercises = exercises

	var created models.Template
	if err := c.do(ctx, http.MethodPost, "/templates", nil, tpl, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteTemplate removes a template. The endpoint identifies templates by
// their stored workoutID, sent in the request body.
func (c *Client) DeleteTemplate(ctx context.Context, userID, workoutID string) error {
	body := map[string]string{"userID": userID, "workoutID": workoutID}
	return c.do(ctx, http.MethodDelete, "/", nil, body, nil)
}

// do issues one authenticated request and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshaling %s %s body: %w", method, path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("api: creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.IDToken(ctx)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: reading %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: serverMessage(respBody, resp.StatusCode)}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("api: decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// serverMessage extracts the server's error text from a failure body,
// falling back to the raw body, then to the status text.
func serverMessage(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		return trimmed
	}
	return http.StatusText(status)
}
