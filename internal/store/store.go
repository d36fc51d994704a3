// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists computed filter results in a local SQLite
// database so reports can be rendered later without recomputing scores.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/filter-engine/pkg/types"
)

const dbFile = "filter.db"

// Store manages the result database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the result database at dir/filter.db,
// creating the schema if it does not exist.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			task_id TEXT NOT NULL,
			task_kind TEXT NOT NULL,
			feature_count INTEGER NOT NULL,
			count_by_kind TEXT NOT NULL,
			methods TEXT NOT NULL,
			legacy INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS scores (
			result_id INTEGER NOT NULL REFERENCES results(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			feature TEXT NOT NULL,
			kind TEXT NOT NULL,
			method TEXT NOT NULL,
			score REAL,
			PRIMARY KEY (result_id, position, method)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scores_result ON scores(result_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save writes a filter result and returns its assigned id. Missing scores
// are stored as NULL.
func (s *Store) Save(ctx context.Context, res *types.FilterResult) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	countsJSON, err := json.Marshal(res.Task.CountByKind)
	if err != nil {
		return 0, fmt.Errorf("encoding kind counts: %w", err)
	}
	methodsJSON, err := json.Marshal(res.Methods)
	if err != nil {
		return 0, fmt.Errorf("encoding methods: %w", err)
	}

	row, err := tx.ExecContext(ctx,
		`INSERT INTO results (task_id, task_kind, feature_count, count_by_kind, methods, legacy, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.Task.ID, string(res.Task.Kind), res.Task.FeatureCount,
		string(countsJSON), string(methodsJSON), res.Legacy,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting result: %w", err)
	}
	id, err := row.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading result id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO scores (result_id, position, feature, kind, method, score)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing score insert: %w", err)
	}
	defer stmt.Close()

	for pos, r := range res.Rows {
		for col, method := range res.Methods {
			var score any
			if !types.IsMissing(r.Scores[col]) {
				score = r.Scores[col]
			}
			if _, err := stmt.ExecContext(ctx, id, pos, r.Name, string(r.Kind), method, score); err != nil {
				return 0, fmt.Errorf("inserting score for %s/%s: %w", r.Name, method, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing result: %w", err)
	}
	return id, nil
}

// Summary describes a stored result without its score table.
type Summary struct {
	ID           int64     `json:"id" yaml:"id"`
	TaskID       string    `json:"task_id" yaml:"task_id"`
	TaskKind     string    `json:"task_kind" yaml:"task_kind"`
	FeatureCount int       `json:"feature_count" yaml:"feature_count"`
	Methods      []string  `json:"methods" yaml:"methods"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

// List returns summaries of all stored results, newest first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, task_id, task_kind, feature_count, methods, created_at
		 FROM results ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing results: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum         Summary
			methodsJSON string
			created     string
		)
		if err := rows.Scan(&sum.ID, &sum.TaskID, &sum.TaskKind, &sum.FeatureCount, &methodsJSON, &created); err != nil {
			return nil, fmt.Errorf("scanning result row: %w", err)
		}
		if err := json.Unmarshal([]byte(methodsJSON), &sum.Methods); err != nil {
			return nil, fmt.Errorf("decoding methods for result %d: %w", sum.ID, err)
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			sum.CreatedAt = t
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Get reconstructs a stored filter result, restoring NULL scores to the
// missing sentinel.
func (s *Store) Get(ctx context.Context, id int64) (*types.FilterResult, error) {
	var (
		res         types.FilterResult
		kind        string
		countsJSON  string
		methodsJSON string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT task_id, task_kind, feature_count, count_by_kind, methods, legacy
		 FROM results WHERE id = ?`, id,
	).Scan(&res.Task.ID, &kind, &res.Task.FeatureCount, &countsJSON, &methodsJSON, &res.Legacy)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("result %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading result %d: %w", id, err)
	}
	res.Task.Kind = types.TaskKind(kind)
	if err := json.Unmarshal([]byte(countsJSON), &res.Task.CountByKind); err != nil {
		return nil, fmt.Errorf("decoding kind counts for result %d: %w", id, err)
	}
	if err := json.Unmarshal([]byte(methodsJSON), &res.Methods); err != nil {
		return nil, fmt.Errorf("decoding methods for result %d: %w", id, err)
	}

	colIdx := make(map[string]int, len(res.Methods))
	for i, m := range res.Methods {
		colIdx[m] = i
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT position, feature, kind, method, score
		 FROM scores WHERE result_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("reading scores for result %d: %w", id, err)
	}
	defer rows.Close()

	res.Rows = make([]types.FilterRow, res.Task.FeatureCount)
	for rows.Next() {
		var (
			pos      int
			feature  string
			featKind string
			method   string
			score    sql.NullFloat64
		)
		if err := rows.Scan(&pos, &feature, &featKind, &method, &score); err != nil {
			return nil, fmt.Errorf("scanning score row: %w", err)
		}
		if pos < 0 || pos >= len(res.Rows) {
			return nil, fmt.Errorf("result %d: score position %d out of range", id, pos)
		}
		if res.Rows[pos].Scores == nil {
			scores := make([]float64, len(res.Methods))
			for i := range scores {
				scores[i] = types.MissingScore()
			}
			res.Rows[pos] = types.FilterRow{Name: feature, Kind: types.FeatureKind(featKind), Scores: scores}
		}
		col, ok := colIdx[method]
		if !ok {
			return nil, fmt.Errorf("result %d: unknown method column %q", id, method)
		}
		if score.Valid {
			res.Rows[pos].Scores[col] = score.Float64
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &res, nil
}

// Delete removes a stored result and its scores.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM results WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting result %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting result %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("result %d not found", id)
	}
	return nil
}
