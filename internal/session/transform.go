package session

import (
	"time"

	"github.com/claude/setlog/internal/models"
)

// Record converts the session into the persistence schema for the one create
// call made at finish time. completedAt is stamped by the caller at submit
// time; createdAt carries over from session start.
//
// Numeric values go through the historical truthiness coercion: an entered
// zero collapses to null exactly like an empty field, so a saved record
// cannot distinguish "0 reps" from "not entered". Every stored record ever
// written has this shape; changing it here would fork the persistence
// semantics, so it stays until the backend migrates.
func (w *Workout) Record(completedAt time.Time) models.WorkoutRecord {
	exercises := make([]models.WorkoutExercise, len(w.ExerciseList))
	for i, ex := range w.ExerciseList {
		sets := make([]models.SetRecord, len(ex.Sets))
		for j, set := range ex.Sets {
			status := set.Status
			if status == "" {
				status = models.StatusPending
			}
			sets[j] = models.SetRecord{
				Values: models.SetValues{
					Weight:   truthyNumber(set.Values.Weight),
					Reps:     truthyNumber(set.Values.Reps),
					Distance: truthyNumber(set.Values.Distance),
					Time:     truthyString(set.Values.Time),
				},
				Status: status,
			}
		}
		exercises[i] = models.WorkoutExercise{
			Name:            ex.Name,
			ExerciseID:      ex.ExerciseID,
			MeasurementType: ex.MeasurementType,
			Sets:            sets,
		}
	}

	return models.WorkoutRecord{
		UserID:       w.UserID,
		WorkoutID:    w.WorkoutID,
		TemplateID:   w.TemplateID,
		CreatedAt:    w.CreatedAt,
		CompletedAt:  completedAt,
		IsTemplate:   false,
		ExerciseList: exercises,
	}
}

// truthyNumber collapses nil and zero to null.
func truthyNumber(v *float64) *float64 {
	if v == nil || *v == 0 {
		return nil
	}
	c := *v
	return &c
}

// truthyString collapses nil and the empty string to null.
func truthyString(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	c := *s
	return &c
}
