package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/setlog/internal/models"
)

// defaultHistoryLimit matches the client's previous-performance fetch.
const defaultHistoryLimit = 2

func (s *Server) handleWorkoutData(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "not signed in"})
		return
	}

	templates, err := s.store.ListTemplates(r.Context(), identity.UserID)
	if err != nil {
		s.log.Error("listing templates", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}
	history, err := s.store.ListHistory(r.Context(), identity.UserID)
	if err != nil {
		s.log.Error("listing history", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"templates": templates,
		"history":   history,
	})
}

func (s *Server) handleRecentHistory(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "not signed in"})
		return
	}

	templateID := r.URL.Query().Get("templateID")
	if templateID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "templateID parameter required"})
		return
	}

	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	records, err := s.store.RecentHistory(r.Context(), identity.UserID, templateID, limit)
	if err != nil {
		s.log.Error("querying recent history", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "not signed in"})
		return
	}

	var rec models.WorkoutRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid JSON: " + err.Error()})
		return
	}
	if rec.WorkoutID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "workoutID is required"})
		return
	}

	// Records are owned by the caller, whatever the body claims.
	rec.UserID = identity.UserID
	if rec.CompletedAt.IsZero() {
		rec.CompletedAt = time.Now().UTC()
	}

	if err := s.store.InsertWorkout(r.Context(), rec); err != nil {
		s.log.Error("inserting workout", "workout", rec.WorkoutID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "not signed in"})
		return
	}

	var tpl models.Template
	if err := json.NewDecoder(r.Body).Decode(&tpl); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid JSON: " + err.Error()})
		return
	}
	if tpl.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "template name is required"})
		return
	}

	tpl.UserID = identity.UserID
	if tpl.TemplateID == "" {
		tpl.TemplateID = models.NewTemplateID()
	}
	// The client assigns exercise IDs; cover templates created elsewhere.
	for i := range tpl.Exercises {
		if tpl.Exercises[i].ExerciseID == "" {
			tpl.Exercises[i].ExerciseID = models.NewExerciseID()
		}
	}

	if err := s.store.InsertTemplate(r.Context(), tpl); err != nil {
		s.log.Error("inserting template", "template", tpl.TemplateID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "not signed in"})
		return
	}

	// The delete body names the template by its stored workoutID.
	var body struct {
		UserID    string `json:"userID"`
		WorkoutID string `json:"workoutID"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid JSON: " + err.Error()})
		return
	}
	if body.WorkoutID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "workoutID is required"})
		return
	}

	deleted, err := s.store.DeleteTemplate(r.Context(), identity.UserID, body.WorkoutID)
	if err != nil {
		s.log.Error("deleting template", "template", body.WorkoutID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "template not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
