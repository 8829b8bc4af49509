// Package history keeps a PostgreSQL log of answered movie questions.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"movie-graph-workers/internal/common/database"

	"github.com/google/uuid"
)

var tableName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Entry is one answered question.
type Entry struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Intent    string    `json:"intent,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Matched   bool      `json:"matched"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"createdAt"`
}

// Recorder writes and reads question history rows.
type Recorder struct {
	pg    *database.PostgresClient
	table string
	now   func() time.Time
}

func NewRecorder(pg *database.PostgresClient, table string) (*Recorder, error) {
	if table == "" {
		table = "movie_question_history"
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid history table name %q", table)
	}
	return &Recorder{pg: pg, table: table, now: time.Now}, nil
}

// EnsureSchema creates the history table and its time index when missing.
func (r *Recorder) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id UUID PRIMARY KEY,
	question TEXT NOT NULL,
	intent TEXT NOT NULL DEFAULT '',
	subject TEXT NOT NULL DEFAULT '',
	matched BOOLEAN NOT NULL,
	answer TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`, r.table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_created_at_idx ON %[1]s (created_at DESC)`, r.table),
	}

	return r.pg.WithTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("create history schema: %w", err)
			}
		}
		return nil
	})
}

// Record inserts e and returns its id. A missing ID or timestamp is filled in.
func (r *Recorder) Record(ctx context.Context, e Entry) (string, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = r.now().UTC()
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (id, question, intent, subject, matched, answer, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.table,
	)
	if _, err := r.pg.DB.ExecContext(ctx, query, e.ID, e.Question, e.Intent, e.Subject, e.Matched, e.Answer, e.CreatedAt); err != nil {
		return "", fmt.Errorf("insert question history: %w", err)
	}
	return e.ID, nil
}

// Recent returns up to limit entries, newest first.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(
		`SELECT id, question, intent, subject, matched, answer, created_at FROM %s ORDER BY created_at DESC LIMIT $1`,
		r.table,
	)
	rows, err := r.pg.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query question history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Question, &e.Intent, &e.Subject, &e.Matched, &e.Answer, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan question history: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate question history: %w", err)
	}
	return entries, nil
}
