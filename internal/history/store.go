// Package history persists comparison results in a SQLite database so past
// runs can be listed, re-exported, and inspected.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/doccomp/internal/compare"
	"github.com/harrison/doccomp/internal/extract"
)

//go:embed schema.sql
var schemaSQL string

// Entry is one recorded comparison. The full result is stored as JSON so a
// past comparison can be re-rendered or re-exported without recomputation.
type Entry struct {
	ID          string
	CreatedAt   time.Time
	LeftName    string
	RightName   string
	LeftFormat  extract.Format
	RightFormat extract.Format
	Verdict     string
	Statistics  compare.Statistics
	Scores      map[string]float64
	Result      *compare.Result
}

// Store manages the SQLite comparison history database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if necessary) the history database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so subsequent pragmas wait on locks held by a
	// concurrent doccomp process.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save records a comparison and returns its generated id.
func (s *Store) Save(ctx context.Context, leftName, rightName string, leftFormat, rightFormat extract.Format, res *compare.Result) (string, error) {
	id := uuid.NewString()

	scores := make(map[string]float64, len(res.Scores))
	for _, sc := range res.Scores {
		scores[string(sc.Algorithm)] = sc.Value
	}
	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return "", fmt.Errorf("marshal scores: %w", err)
	}
	resultJSON, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}

	query := `INSERT INTO comparisons
		(id, left_name, right_name, left_format, right_format, verdict,
		 lines_added, lines_removed, lines_changed, lines_unchanged, scores, result)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, query,
		id, leftName, rightName, string(leftFormat), string(rightFormat), res.Verdict,
		res.Statistics.Added, res.Statistics.Removed, res.Statistics.Changed, res.Statistics.Unchanged,
		string(scoresJSON), string(resultJSON))
	if err != nil {
		return "", fmt.Errorf("insert comparison: %w", err)
	}
	return id, nil
}

// Get returns the entry with the given id, including the full result.
// Short id prefixes are accepted when unambiguous.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	query := `SELECT id, created_at, left_name, right_name, left_format, right_format,
		verdict, lines_added, lines_removed, lines_changed, lines_unchanged, scores, result
		FROM comparisons WHERE id = ? OR id LIKE ?`
	rows, err := s.db.QueryContext(ctx, query, id, id+"%")
	if err != nil {
		return nil, fmt.Errorf("query comparison: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows, true)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan comparisons: %w", err)
	}

	switch len(entries) {
	case 0:
		return nil, fmt.Errorf("comparison %q not found", id)
	case 1:
		return entries[0], nil
	default:
		return nil, fmt.Errorf("comparison id %q is ambiguous (%d matches)", id, len(entries))
	}
}

// List returns the most recent entries, newest first, without full results.
func (s *Store) List(ctx context.Context, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, created_at, left_name, right_name, left_format, right_format,
		verdict, lines_added, lines_removed, lines_changed, lines_unchanged, scores, '{}'
		FROM comparisons ORDER BY created_at DESC, id LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list comparisons: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows, false)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan comparisons: %w", err)
	}
	return entries, nil
}

// Clear deletes all recorded comparisons and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comparisons`)
	if err != nil {
		return 0, fmt.Errorf("clear comparisons: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count cleared comparisons: %w", err)
	}
	return n, nil
}

func scanEntry(rows *sql.Rows, withResult bool) (*Entry, error) {
	var e Entry
	var createdAt, leftFormat, rightFormat, scoresJSON, resultJSON string
	err := rows.Scan(&e.ID, &createdAt, &e.LeftName, &e.RightName, &leftFormat, &rightFormat,
		&e.Verdict, &e.Statistics.Added, &e.Statistics.Removed, &e.Statistics.Changed,
		&e.Statistics.Unchanged, &scoresJSON, &resultJSON)
	if err != nil {
		return nil, fmt.Errorf("scan comparison: %w", err)
	}

	e.LeftFormat = extract.Format(leftFormat)
	e.RightFormat = extract.Format(rightFormat)
	e.CreatedAt = parseTimestamp(createdAt)

	if err := json.Unmarshal([]byte(scoresJSON), &e.Scores); err != nil {
		return nil, fmt.Errorf("unmarshal scores: %w", err)
	}
	if withResult {
		var res compare.Result
		if err := json.Unmarshal([]byte(resultJSON), &res); err != nil {
			return nil, fmt.Errorf("unmarshal result: %w", err)
		}
		e.Result = &res
		e.Statistics = res.Statistics
	}
	return &e, nil
}

// parseTimestamp handles the formats sqlite may hand back for DATETIME.
func parseTimestamp(s string) time.Time {
	formats := []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		"2006-01-02T15:04:05Z",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, strings.TrimSuffix(s, "Z")); err == nil {
			return t
		}
	}
	return time.Time{}
}
