package session

import (
	"log/slog"

	"github.com/claude/setlog/internal/models"
)

// BuildExerciseList converts a template's exercises into session-ready
// exercises where every entry carries a concrete set array. A requested count
// expands to that many blank sets; a prebuilt array is copied over value for
// value; anything else logs a warning and yields no sets so a malformed
// template never blocks a session from starting.
func BuildExerciseList(tpl models.Template, log *slog.Logger) []models.WorkoutExercise {
	exercises := make([]models.WorkoutExercise, 0, len(tpl.Exercises))

	for _, entry := range tpl.Exercises {
		var sets []models.SetRecord
		switch entry.Sets.Kind() {
		case models.SetsCount:
			sets = make([]models.SetRecord, entry.Sets.Count())
			for i := range sets {
				sets[i] = models.BlankSet()
			}
		case models.SetsPrebuilt:
			// Copied so session edits never write through into the template.
			sets = append([]models.SetRecord(nil), entry.Sets.Prebuilt()...)
		default:
			log.Warn("template exercise has invalid sets, defaulting to none",
				"template", tpl.TemplateID,
				"exercise", entry.Name,
			)
			sets = []models.SetRecord{}
		}

		exercises = append(exercises, models.WorkoutExercise{
			Name:            entry.Name,
			ExerciseID:      entry.ExerciseID,
			MeasurementType: entry.MeasurementType,
			Sets:            sets,
		})
	}

	return exercises
}
