// Package session holds the active-workout state model: building a session
// from a template plus fetched history, applying set edits and autofill,
// and transforming the finished session back into the persistence schema.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/claude/setlog/internal/models"
)

// Field names a set value being edited.
type Field string

const (
	FieldWeight   Field = "weight"
	FieldReps     Field = "reps"
	FieldDistance Field = "distance"
	FieldTime     Field = "time"
)

// weightIncrement is the fixed per-set weight step the autofill applies to
// sets after the first: set i gets firstWeight + weightIncrement*i.
const weightIncrement = 5

// ErrInvalidValue rejects non-empty input on a numeric field that does not
// parse as a finite number. The targeted set is left unchanged.
var ErrInvalidValue = errors.New("value is not a number")

// Workout is an in-progress session. It exists only in memory between start
// and finish/discard; there is no offline persistence.
type Workout struct {
	UserID           string
	WorkoutID        string
	TemplateID       string
	CreatedAt        time.Time
	ExerciseList     []models.WorkoutExercise
	PreviousWorkouts []models.WorkoutRecord
}

// New builds a session from a template and previously fetched history.
// The session's exercise list is fixed at this moment — templates edited
// afterward do not retroactively change it.
func New(tpl models.Template, previous []models.WorkoutRecord, userID string, now time.Time, log *slog.Logger) *Workout {
	prev := make([]models.WorkoutRecord, len(previous))
	copy(prev, previous)
	for i := range prev {
		if prev[i].ExerciseList == nil {
			prev[i].ExerciseList = []models.WorkoutExercise{}
		}
	}

	return &Workout{
		UserID:           userID,
		WorkoutID:        models.NewWorkoutID(),
		TemplateID:       tpl.TemplateID,
		CreatedAt:        now,
		ExerciseList:     BuildExerciseList(tpl, log),
		PreviousWorkouts: prev,
	}
}

// UpdateSetValue applies one edit to a set field. Empty input clears the
// field to null. Time is stored as its raw string with no numeric coercion;
// all other fields parse as numbers, with non-numeric input rejected rather
// than stored. NaN and infinities are rejected too: a stored non-finite value
// would fail JSON encoding at save time.
//
// Editing the first set of a weights exercise also runs the autofill:
// reps fill forward into later sets that are still empty, while weight
// unconditionally rewrites every later set to first + 5 per set (or clears
// them all when the first weight is cleared). The reps/weight asymmetry is
// long-standing entry behavior that users rely on; keep both rules as they
// are.
func (w *Workout) UpdateSetValue(exerciseIndex, setIndex int, field Field, rawValue string) error {
	set, err := w.set(exerciseIndex, setIndex)
	if err != nil {
		return err
	}

	if field == FieldTime {
		if rawValue == "" {
			set.Values.Time = nil
		} else {
			set.Values.Time = models.String(rawValue)
		}
		return nil
	}

	var value *float64
	if rawValue != "" {
		n, err := strconv.ParseFloat(rawValue, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return fmt.Errorf("%w: %q", ErrInvalidValue, rawValue)
		}
		value = &n
	}

	exercise := &w.ExerciseList[exerciseIndex]
	switch field {
	case FieldWeight:
		set.Values.Weight = value
	case FieldReps:
		set.Values.Reps = value
	case FieldDistance:
		set.Values.Distance = value
	default:
		return fmt.Errorf("unknown set field %q", field)
	}

	if setIndex == 0 && exercise.MeasurementType == models.MeasurementWeights {
		switch field {
		case FieldReps:
			autofillReps(exercise.Sets, value)
		case FieldWeight:
			autofillWeight(exercise.Sets, value)
		}
	}
	return nil
}

// autofillReps fills the first set's reps forward into later sets that have
// no reps entered yet. Sets with a value already are left untouched.
func autofillReps(sets []models.SetRecord, reps *float64) {
	for i := 1; i < len(sets); i++ {
		if sets[i].Values.Reps == nil {
			sets[i].Values.Reps = cloneFloat(reps)
		}
	}
}

// autofillWeight rewrites every later set's weight from the first set's:
// base + 5 per set when entered, cleared everywhere when the base is cleared.
// Unlike reps this overwrites unconditionally.
func autofillWeight(sets []models.SetRecord, base *float64) {
	for i := 1; i < len(sets); i++ {
		if base == nil {
			sets[i].Values.Weight = nil
		} else {
			sets[i].Values.Weight = models.Float(*base + weightIncrement*float64(i))
		}
	}
}

// CycleSetStatus advances a set's status marker: good, medium, bad, back to
// good. A pending set enters the cycle at good. Pure UI toggle, no validation.
func (w *Workout) CycleSetStatus(exerciseIndex, setIndex int) error {
	set, err := w.set(exerciseIndex, setIndex)
	if err != nil {
		return err
	}

	switch set.Status {
	case models.StatusGood:
		set.Status = models.StatusMedium
	case models.StatusMedium:
		set.Status = models.StatusBad
	default:
		set.Status = models.StatusGood
	}
	return nil
}

func (w *Workout) set(exerciseIndex, setIndex int) (*models.SetRecord, error) {
	if exerciseIndex < 0 || exerciseIndex >= len(w.ExerciseList) {
		return nil, fmt.Errorf("exercise index %d out of range", exerciseIndex)
	}
	sets := w.ExerciseList[exerciseIndex].Sets
	if setIndex < 0 || setIndex >= len(sets) {
		return nil, fmt.Errorf("set index %d out of range", setIndex)
	}
	return &sets[setIndex], nil
}

// clone returns a snapshot of the session for display. Callers edit sessions
// only through the store, never through a snapshot.
func (w *Workout) clone() *Workout {
	if w == nil {
		return nil
	}
	out := *w
	out.ExerciseList = make([]models.WorkoutExercise, len(w.ExerciseList))
	for i, ex := range w.ExerciseList {
		sets := make([]models.SetRecord, len(ex.Sets))
		copy(sets, ex.Sets)
		ex.Sets = sets
		out.ExerciseList[i] = ex
	}
	out.PreviousWorkouts = make([]models.WorkoutRecord, len(w.PreviousWorkouts))
	copy(out.PreviousWorkouts, w.PreviousWorkouts)
	return &out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
