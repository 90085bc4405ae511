package session

import (
	"testing"
	"time"

	"github.com/claude/setlog/internal/models"
)

// TestRecordRoundTrip verifies a normalized session transforms into the
// persistence schema: entered numbers survive, empty stays null, and — the
// preserved quirk — an entered zero collapses to null too.
func TestRecordRoundTrip(t *testing.T) {
	w := startWorkout(t, legDayTemplate(3))

	if err := w.UpdateSetValue(0, 0, FieldWeight, "100"); err != nil {
		t.Fatal(err)
	}
	if err := w.UpdateSetValue(0, 1, FieldReps, "0"); err != nil {
		t.Fatal(err)
	}

	completed := time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC)
	rec := w.Record(completed)

	if rec.UserID != "u1" || rec.WorkoutID != w.WorkoutID || rec.TemplateID != "t-legday" {
		t.Errorf("record identity mismatch: %+v", rec)
	}
	if rec.IsTemplate {
		t.Error("finished workout marked as template")
	}
	if !rec.CreatedAt.Equal(w.CreatedAt) {
		t.Errorf("createdAt = %v, want carried over %v", rec.CreatedAt, w.CreatedAt)
	}
	if !rec.CompletedAt.Equal(completed) {
		t.Errorf("completedAt = %v, want %v", rec.CompletedAt, completed)
	}

	sets := rec.ExerciseList[0].Sets
	if got := sets[0].Values.Weight; got == nil || *got != 100 {
		t.Errorf("set 0 weight = %v, want 100", got)
	}
	// The weight autofill wrote 105/110 into sets 1 and 2.
	if got := sets[1].Values.Weight; got == nil || *got != 105 {
		t.Errorf("set 1 weight = %v, want 105", got)
	}
	// Entered 0 reps is indistinguishable from not entered: saved as null.
	if sets[1].Values.Reps != nil {
		t.Errorf("set 1 reps = %v, want null for entered zero", *sets[1].Values.Reps)
	}
	if sets[2].Values.Reps != nil {
		t.Errorf("set 2 reps = %v, want null", *sets[2].Values.Reps)
	}
}

// TestRecordTimePassThrough verifies time strings pass through unchanged and
// empty strings collapse to null.
func TestRecordTimePassThrough(t *testing.T) {
	tpl := models.Template{
		TemplateID: "t-core",
		Exercises: []models.ExerciseTemplate{
			{Name: "Plank", ExerciseID: "ex_plank", MeasurementType: models.MeasurementTimed, Sets: models.CountSets(2)},
		},
	}
	w := startWorkout(t, tpl)
	if err := w.UpdateSetValue(0, 0, FieldTime, "01:30"); err != nil {
		t.Fatal(err)
	}
	w.ExerciseList[0].Sets[1].Values.Time = models.String("")

	rec := w.Record(time.Now())
	sets := rec.ExerciseList[0].Sets
	if got := sets[0].Values.Time; got == nil || *got != "01:30" {
		t.Errorf("set 0 time = %v, want 01:30", got)
	}
	if sets[1].Values.Time != nil {
		t.Errorf("set 1 time = %q, want null for empty string", *sets[1].Values.Time)
	}
}

// TestRecordDefaultsMissingStatus verifies an absent status is persisted as
// pending.
func TestRecordDefaultsMissingStatus(t *testing.T) {
	w := startWorkout(t, legDayTemplate(1))
	w.ExerciseList[0].Sets[0].Status = ""

	rec := w.Record(time.Now())
	if got := rec.ExerciseList[0].Sets[0].Status; got != models.StatusPending {
		t.Errorf("status = %q, want pending", got)
	}
}

// TestRecordDoesNotAliasSession verifies the record holds copies, so later
// session edits cannot reach into an already-built record.
func TestRecordDoesNotAliasSession(t *testing.T) {
	w := startWorkout(t, legDayTemplate(1))
	if err := w.UpdateSetValue(0, 0, FieldWeight, "100"); err != nil {
		t.Fatal(err)
	}

	rec := w.Record(time.Now())
	if err := w.UpdateSetValue(0, 0, FieldWeight, "200"); err != nil {
		t.Fatal(err)
	}

	if got := rec.ExerciseList[0].Sets[0].Values.Weight; got == nil || *got != 100 {
		t.Errorf("record weight = %v, want 100 after session edit", got)
	}
}
