package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewWorkoutID generates a client-side workout identifier at session start.
func NewWorkoutID() string {
	return fmt.Sprintf("workout_%d", time.Now().UnixMilli())
}

// NewTemplateID generates a template identifier, assigned server-side when a
// created template arrives without one.
func NewTemplateID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("template_%d_%s", time.Now().UnixMilli(), suffix)
}

// NewExerciseID generates an exercise identifier: a time-based prefix plus a
// random suffix. Assigned once at template creation and stable thereafter.
// Uniqueness is not cryptographically guaranteed but collisions are
// negligible for this workload.
func NewExerciseID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("ex_%d_%s", time.Now().UnixMilli(), suffix)
}
