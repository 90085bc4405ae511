package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/claude/setlog/internal/models"
)

// PostgresStore backs multi-user deployments with a connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func openPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) ListTemplates(ctx context.Context, userID string) ([]models.Template, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT doc FROM templates WHERE user_id = $1 ORDER BY created_at ASC`, userID)
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

func (s *PostgresStore) ListHistory(ctx context.Context, userID string) ([]models.WorkoutRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT doc FROM workouts WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()
	return scanPgxRecords(rows)
}

func (s *PostgresStore) RecentHistory(ctx context.Context, userID, templateID string, limit int) ([]models.WorkoutRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT doc FROM workouts
		 WHERE user_id = $1 AND template_id = $2
		 ORDER BY created_at DESC LIMIT $3`,
		userID, templateID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent history: %w", err)
	}
	defer rows.Close()
	return scanPgxRecords(rows)
}

func (s *PostgresStore) InsertWorkout(ctx context.Context, rec models.WorkoutRecord) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding workout doc: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO workouts (workout_id, user_id, template_id, created_at, completed_at, doc)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (workout_id) DO NOTHING`,
		rec.WorkoutID, rec.UserID, rec.TemplateID, rec.CreatedAt, rec.CompletedAt, doc)
	if err != nil {
		return fmt.Errorf("inserting workout: %w", err)
	}
	return nil
}

func (s *PostgresStore) InsertTemplate(ctx context.Context, tpl models.Template) error {
	doc, err := json.Marshal(tpl)
	if err != nil {
		return fmt.Errorf("encoding template doc: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO templates (template_id, user_id, name, doc)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (template_id) DO NOTHING`,
		tpl.TemplateID, tpl.UserID, tpl.Name, doc)
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteTemplate(ctx context.Context, userID, templateID string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM templates WHERE user_id = $1 AND template_id = $2`,
		userID, templateID)
	if err != nil {
		return false, fmt.Errorf("deleting template: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanPgxRecords(rows pgx.Rows) ([]models.WorkoutRecord, error) {
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
