package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/claude/setlog/internal/models"
)

// SQLiteStore is the single-binary store: a file database, no server process.
type SQLiteStore struct {
	db *sql.DB
}

func openSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) ListTemplates(ctx context.Context, userID string) ([]models.Template, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM templates WHERE user_id = ? ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	templates := []models.Template{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		var tpl models.Template
		if err := json.Unmarshal(doc, &tpl); err != nil {
			return nil, fmt.Errorf("decoding template doc: %w", err)
		}
		templates = append(templates, tpl)
	}
	return templates, rows.Err()
}

func (s *SQLiteStore) ListHistory(ctx context.Context, userID string) ([]models.WorkoutRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM workouts WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *SQLiteStore) RecentHistory(ctx context.Context, userID, templateID string, limit int) ([]models.WorkoutRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM workouts
		 WHERE user_id = ? AND template_id = ?
		 ORDER BY created_at DESC LIMIT ?`,
		userID, templateID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent history: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *SQLiteStore) InsertWorkout(ctx context.Context, rec models.WorkoutRecord) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding workout doc: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO workouts (workout_id, user_id, template_id, created_at, completed_at, doc)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (workout_id) DO NOTHING`,
		rec.WorkoutID, rec.UserID, rec.TemplateID,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		rec.CompletedAt.UTC().Format(time.RFC3339Nano),
		string(doc))
	if err != nil {
		return fmt.Errorf("inserting workout: %w", err)
	}
	return nil
}

func (s *SQLiteStore) InsertTemplate(ctx context.Context, tpl models.Template) error {
	doc, err := json.Marshal(tpl)
	if err != nil {
		return fmt.Errorf("encoding template doc: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO templates (template_id, user_id, name, created_at, doc)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (template_id) DO NOTHING`,
		tpl.TemplateID, tpl.UserID, tpl.Name,
		time.Now().UTC().Format(time.RFC3339Nano),
		string(doc))
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteTemplate(ctx context.Context, userID, templateID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM templates WHERE user_id = ? AND template_id = ?`,
		userID, templateID)
	if err != nil {
		return false, fmt.Errorf("deleting template: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanRecords(rows *sql.Rows) ([]models.WorkoutRecord, error) {
	records := []models.WorkoutRecord{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		var rec models.WorkoutRecord
		if err := json.Unmarshal(doc, &rec); err != nil {
			return nil, fmt.Errorf("decoding workout doc: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
