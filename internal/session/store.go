package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/setlog/internal/api"
	"github.com/claude/setlog/internal/auth"
	"github.com/claude/setlog/internal/models"
)

// historyLimit is how many prior workouts are fetched for side-by-side
// display when a session starts.
const historyLimit = 2

// ErrNoActiveWorkout is returned by edits and Finish when no session is
// in progress. Finish with no session issues no network call.
var ErrNoActiveWorkout = errors.New("no active workout")

// APIClient is the slice of the remote API the store drives. *api.Client
// satisfies it; tests substitute a fake.
type APIClient interface {
	FetchWorkoutData(ctx context.Context) (*api.WorkoutData, error)
	FetchRecentHistory(ctx context.Context, templateID string, limit int) ([]models.WorkoutRecord, error)
	SaveWorkout(ctx context.Context, rec models.WorkoutRecord) (*models.WorkoutRecord, error)
	CreateTemplate(ctx context.Context, tpl models.Template) (*models.Template, error)
	DeleteTemplate(ctx context.Context, userID, workoutID string) error
}

// Compile-time check: *api.Client satisfies APIClient.
var _ APIClient = (*api.Client)(nil)

// Store is the single source of truth for the active session and the loaded
// template/history lists. UI code dispatches intents through its methods and
// never mutates session data directly. Each store is an isolated instance —
// no ambient singletons — so tests build one per case.
type Store struct {
	mu       sync.Mutex
	client   APIClient
	identity auth.Identity
	log      *slog.Logger

	active    *Workout
	templates []models.Template
	history   []models.WorkoutRecord
}

// NewStore creates a store for the given signed-in identity.
func NewStore(client APIClient, identity auth.Identity, log *slog.Logger) *Store {
	return &Store{client: client, identity: identity, log: log}
}

// Refresh reloads the template and history lists from the API. History
// arrives sorted most recent first.
func (s *Store) Refresh(ctx context.Context) error {
	data, err := s.client.FetchWorkoutData(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates = data.Templates
	s.history = data.History
	return nil
}

// Templates returns the loaded template list.
func (s *Store) Templates() []models.Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Template, len(s.templates))
	copy(out, s.templates)
	return out
}

// History returns the loaded workout history, most recent first.
func (s *Store) History() []models.WorkoutRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.WorkoutRecord, len(s.history))
	copy(out, s.history)
	return out
}

// Active returns a display snapshot of the in-progress session, or nil.
func (s *Store) Active() *Workout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.clone()
}

// Start begins a session from a template. The history fetch is best-effort:
// when it fails the session still starts, with previous-performance display
// degraded to empty rather than the whole start action failing.
func (s *Store) Start(ctx context.Context, tpl models.Template) error {
	previous, err := s.client.FetchRecentHistory(ctx, tpl.TemplateID, historyLimit)
	if err != nil {
		s.log.Warn("history fetch failed, starting without previous workouts",
			"template", tpl.TemplateID, "error", err)
		previous = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = New(tpl, previous, s.identity.UserID, time.Now(), s.log)
	return nil
}

// UpdateSetValue applies one set edit to the active session.
func (s *Store) UpdateSetValue(exerciseIndex, setIndex int, field Field, rawValue string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return ErrNoActiveWorkout
	}
	return s.active.UpdateSetValue(exerciseIndex, setIndex, field, rawValue)
}

// CycleSetStatus advances one set's status marker in the active session.
func (s *Store) CycleSetStatus(exerciseIndex, setIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return ErrNoActiveWorkout
	}
	return s.active.CycleSetStatus(exerciseIndex, setIndex)
}

// Finish submits the active session as a workout record. On success the
// session is cleared, the record is prepended locally for immediate display,
// and the lists are re-fetched. On failure the session stays intact so the
// user can retry without re-entering anything.
func (s *Store) Finish(ctx context.Context) (*models.WorkoutRecord, error) {
	s.mu.Lock()
	if s.active == nil {
		s.mu.Unlock()
		return nil, ErrNoActiveWorkout
	}
	rec := s.active.Record(time.Now())
	s.mu.Unlock()

	created, err := s.client.SaveWorkout(ctx, rec)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.active = nil
	s.history = append([]models.WorkoutRecord{*created}, s.history...)
	s.mu.Unlock()

	if err := s.Refresh(ctx); err != nil {
		s.log.Warn("post-finish refresh failed", "error", err)
	}
	return created, nil
}

// Discard drops the active session without saving. No network call; the
// entered data is lost.
func (s *Store) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
}

// CreateTemplate persists a new template and adds it to the local list.
func (s *Store) CreateTemplate(ctx context.Context, tpl models.Template) (*models.Template, error) {
	tpl.UserID = s.identity.UserID
	created, err := s.client.CreateTemplate(ctx, tpl)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates = append(s.templates, *created)
	return created, nil
}

// DeleteTemplate removes a template remotely, then from the local list.
// A failed delete leaves the template in place.
func (s *Store) DeleteTemplate(ctx context.Context, templateID string) error {
	if err := s.client.DeleteTemplate(ctx, s.identity.UserID, templateID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.templates[:0]
	for _, tpl := range s.templates {
		if tpl.TemplateID != templateID {
			kept = append(kept, tpl)
		}
	}
	s.templates = kept
	return nil
}
