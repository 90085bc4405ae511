package models

import (
	"encoding/json"
	"time"
)

// MeasurementType is the kind of quantity tracked for an exercise.
type MeasurementType string

const (
	MeasurementWeights    MeasurementType = "weights"
	MeasurementBodyweight MeasurementType = "bodyweight"
	MeasurementTimed      MeasurementType = "timed"
	MeasurementCardio     MeasurementType = "cardio"
)

// SetStatus is the qualitative marker on a recorded set.
type SetStatus string

const (
	StatusPending SetStatus = "pending"
	StatusGood    SetStatus = "good"
	StatusMedium  SetStatus = "medium"
	StatusBad     SetStatus = "bad"
)

// SetValues holds the measured values for one set. All four keys are always
// present on the wire regardless of measurement type — unused fields stay
// null so downstream code never branches on shape. Time is the only field
// stored as a formatted string (MM:SS).
type SetValues struct {
	Weight   *float64 `json:"weight"`
	Reps     *float64 `json:"reps"`
	Distance *float64 `json:"distance"`
	Time     *string  `json:"time"`
}

// SetRecord is one attempt at an exercise within a session or stored workout.
type SetRecord struct {
	Values SetValues `json:"values"`
	Status SetStatus `json:"status"`
}

// BlankSet returns a freshly initialized set: all values null, status pending.
func BlankSet() SetRecord {
	return SetRecord{Status: StatusPending}
}

// ExerciseTemplate is one exercise entry in a workout template. Sets may be
// a requested count or a prebuilt set array; see RawSets.
type ExerciseTemplate struct {
	Name            string          `json:"name"`
	ExerciseID      string          `json:"exerciseID"`
	MeasurementType MeasurementType `json:"measurementType"`
	Sets            RawSets         `json:"sets"`
}

// Template is a reusable named list of exercises owned by one user.
type Template struct {
	TemplateID string             `json:"templateID"`
	Name       string             `json:"name"`
	UserID     string             `json:"userID"`
	Exercises  []ExerciseTemplate `json:"exercises"`
}

// WorkoutExercise is an exercise with its concrete sets, as it appears in a
// persisted workout record or an active session.
type WorkoutExercise struct {
	Name            string          `json:"name"`
	ExerciseID      string          `json:"exerciseID"`
	MeasurementType MeasurementType `json:"measurementType"`
	Sets            []SetRecord     `json:"sets"`
}

// WorkoutRecord is a completed workout in the persistence schema. Records are
// append-only from the client's perspective: created once at finish time and
// never mutated afterward.
type WorkoutRecord struct {
	UserID       string            `json:"userID"`
	WorkoutID    string            `json:"workoutID"`
	TemplateID   string            `json:"templateID,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	CompletedAt  time.Time         `json:"completedAt"`
	IsTemplate   bool              `json:"isTemplate"`
	ExerciseList []WorkoutExercise `json:"exerciseList"`
}

// UnmarshalJSON accepts both the current "exerciseList" key and the legacy
// "exercises" key some stored records still use, preferring "exerciseList".
func (r *WorkoutRecord) UnmarshalJSON(data []byte) error {
	type plain WorkoutRecord
	aux := struct {
		*plain
		LegacyExercises []WorkoutExercise `json:"exercises"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if r.ExerciseList == nil && aux.LegacyExercises != nil {
		r.ExerciseList = aux.LegacyExercises
	}
	return nil
}

// Float returns a pointer to v, for building set values in literals.
func Float(v float64) *float64 { return &v }

// String returns a pointer to s.
func String(s string) *string { return &s }
