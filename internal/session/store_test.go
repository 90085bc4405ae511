package session

import (
	"context"
	"errors"
	"testing"

	"github.com/claude/setlog/internal/api"
	"github.com/claude/setlog/internal/auth"
	"github.com/claude/setlog/internal/models"
)

// fakeClient is an in-memory APIClient recording what the store asked for.
type fakeClient struct {
	data        api.WorkoutData
	recent      []models.WorkoutRecord
	recentErr   error
	saveErr     error
	deleteErr   error
	savedRecord *models.WorkoutRecord
	saveCalls   int
	fetchCalls  int
}

func (f *fakeClient) FetchWorkoutData(ctx context.Context) (*api.WorkoutData, error) {
	f.fetchCalls++
	d := f.data
	return &d, nil
}

func (f *fakeClient) FetchRecentHistory(ctx context.Context, templateID string, limit int) ([]models.WorkoutRecord, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	if limit < len(f.recent) {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeClient) SaveWorkout(ctx context.Context, rec models.WorkoutRecord) (*models.WorkoutRecord, error) {
	f.saveCalls++
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.savedRecord = &rec
	return &rec, nil
}

func (f *fakeClient) CreateTemplate(ctx context.Context, tpl models.Template) (*models.Template, error) {
	if tpl.TemplateID == "" {
		tpl.TemplateID = "t-created"
	}
	return &tpl, nil
}

func (f *fakeClient) DeleteTemplate(ctx context.Context, userID, workoutID string) error {
	return f.deleteErr
}

func newTestStore(client *fakeClient) *Store {
	return NewStore(client, auth.Identity{UserID: "u1", Email: "u1@example.com"}, testLogger())
}

// TestStoreStartAttachesHistory verifies a started session carries the
// fetched previous workouts, most recent first as returned.
func TestStoreStartAttachesHistory(t *testing.T) {
	client := &fakeClient{
		recent: []models.WorkoutRecord{
			{WorkoutID: "w-latest"},
			{WorkoutID: "w-older"},
		},
	}
	s := newTestStore(client)

	if err := s.Start(context.Background(), legDayTemplate(3)); err != nil {
		t.Fatal(err)
	}

	active := s.Active()
	if active == nil {
		t.Fatal("no active session after Start")
	}
	if active.UserID != "u1" || active.TemplateID != "t-legday" {
		t.Errorf("session identity: %+v", active)
	}
	if len(active.PreviousWorkouts) != 2 || active.PreviousWorkouts[0].WorkoutID != "w-latest" {
		t.Errorf("previousWorkouts = %+v", active.PreviousWorkouts)
	}
}

// TestStoreStartSurvivesHistoryFailure verifies the non-blocking start: a
// failed history fetch degrades to no previous workouts instead of failing
// the whole start action.
func TestStoreStartSurvivesHistoryFailure(t *testing.T) {
	client := &fakeClient{recentErr: errors.New("boom")}
	s := newTestStore(client)

	if err := s.Start(context.Background(), legDayTemplate(2)); err != nil {
		t.Fatalf("Start should not fail on history error: %v", err)
	}
	active := s.Active()
	if active == nil {
		t.Fatal("session did not start")
	}
	if len(active.PreviousWorkouts) != 0 {
		t.Errorf("previousWorkouts = %+v, want empty", active.PreviousWorkouts)
	}
}

// TestStoreFinishNoSession verifies Finish without a session is a no-op error
// with no network call.
func TestStoreFinishNoSession(t *testing.T) {
	client := &fakeClient{}
	s := newTestStore(client)

	if _, err := s.Finish(context.Background()); !errors.Is(err, ErrNoActiveWorkout) {
		t.Fatalf("err = %v, want ErrNoActiveWorkout", err)
	}
	if client.saveCalls != 0 {
		t.Errorf("save was called %d times, want 0", client.saveCalls)
	}
}

// TestStoreFinishClearsAndRefreshes verifies the happy path: session cleared,
// record prepended locally, lists re-fetched.
func TestStoreFinishClearsAndRefreshes(t *testing.T) {
	client := &fakeClient{}
	s := newTestStore(client)

	if err := s.Start(context.Background(), legDayTemplate(1)); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateSetValue(0, 0, FieldWeight, "100"); err != nil {
		t.Fatal(err)
	}

	created, err := s.Finish(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s.Active() != nil {
		t.Error("session not cleared after finish")
	}
	if client.savedRecord == nil || client.savedRecord.WorkoutID != created.WorkoutID {
		t.Errorf("saved record mismatch: %+v", client.savedRecord)
	}
	if client.fetchCalls != 1 {
		t.Errorf("refresh calls = %d, want 1", client.fetchCalls)
	}
}

// TestStoreFinishFailureKeepsSession verifies a failed save leaves the
// session intact so the user can retry without re-entering data.
func TestStoreFinishFailureKeepsSession(t *testing.T) {
	client := &fakeClient{saveErr: &api.Error{Status: 500, Message: "persistence exploded"}}
	s := newTestStore(client)

	if err := s.Start(context.Background(), legDayTemplate(2)); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateSetValue(0, 0, FieldReps, "8"); err != nil {
		t.Fatal(err)
	}

	_, err := s.Finish(context.Background())
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Message != "persistence exploded" {
		t.Fatalf("err = %v, want server message surfaced", err)
	}

	active := s.Active()
	if active == nil {
		t.Fatal("session was cleared on failed save")
	}
	if got := active.ExerciseList[0].Sets[0].Values.Reps; got == nil || *got != 8 {
		t.Errorf("entered data lost: reps = %v", got)
	}
}

// TestStoreDiscard verifies Discard drops the session without any call.
func TestStoreDiscard(t *testing.T) {
	client := &fakeClient{}
	s := newTestStore(client)

	if err := s.Start(context.Background(), legDayTemplate(1)); err != nil {
		t.Fatal(err)
	}
	s.Discard()
	if s.Active() != nil {
		t.Error("session survived discard")
	}
	if client.saveCalls != 0 {
		t.Error("discard issued a network call")
	}
}

// TestStoreEditsRequireSession verifies edits against no session fail with
// ErrNoActiveWorkout.
func TestStoreEditsRequireSession(t *testing.T) {
	s := newTestStore(&fakeClient{})

	if err := s.UpdateSetValue(0, 0, FieldReps, "8"); !errors.Is(err, ErrNoActiveWorkout) {
		t.Errorf("UpdateSetValue err = %v", err)
	}
	if err := s.CycleSetStatus(0, 0); !errors.Is(err, ErrNoActiveWorkout) {
		t.Errorf("CycleSetStatus err = %v", err)
	}
}

// TestStoreActiveIsSnapshot verifies mutating the returned snapshot does not
// reach the store's session.
func TestStoreActiveIsSnapshot(t *testing.T) {
	s := newTestStore(&fakeClient{})
	if err := s.Start(context.Background(), legDayTemplate(1)); err != nil {
		t.Fatal(err)
	}

	snap := s.Active()
	snap.ExerciseList[0].Sets[0].Values.Weight = models.Float(999)

	if got := s.Active().ExerciseList[0].Sets[0].Values.Weight; got != nil {
		t.Errorf("snapshot mutation leaked into store: %v", *got)
	}
}

// TestStoreDeleteTemplate verifies local removal on success and retention on
// failure.
func TestStoreDeleteTemplate(t *testing.T) {
	client := &fakeClient{}
	s := newTestStore(client)
	s.templates = []models.Template{{TemplateID: "t1"}, {TemplateID: "t2"}}

	if err := s.DeleteTemplate(context.Background(), "t1"); err != nil {
		t.Fatal(err)
	}
	if got := s.Templates(); len(got) != 1 || got[0].TemplateID != "t2" {
		t.Errorf("templates = %+v, want only t2", got)
	}

	client.deleteErr = errors.New("denied")
	if err := s.DeleteTemplate(context.Background(), "t2"); err == nil {
		t.Fatal("delete error not surfaced")
	}
	if got := s.Templates(); len(got) != 1 {
		t.Errorf("failed delete removed the template locally: %+v", got)
	}
}
