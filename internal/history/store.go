// Package history persists compile runs in SQLite so that past inputs,
// their outcome and their diagnostics can be listed and summarized later.
package history

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/etds/foundation/core/error"
	mdwlog "github.com/msto63/etds/foundation/core/log"
	"github.com/msto63/etds/foundation/etds"
	"github.com/msto63/etds/foundation/etds/ast"
)

// Run records one compile attempt
type Run struct {
	ID         string        `json:"id" yaml:"id"`
	Timestamp  time.Time     `json:"timestamp" yaml:"timestamp"`
	Source     string        `json:"source" yaml:"source"`
	Input      string        `json:"input" yaml:"input"`
	Success    bool          `json:"success" yaml:"success"`
	ErrorKind  string        `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	Diagnostic string        `json:"diagnostic,omitempty" yaml:"diagnostic,omitempty"`
	Nodes      int           `json:"nodes" yaml:"nodes"`
	Symbols    int           `json:"symbols" yaml:"symbols"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}

// NewRun builds a run from the outcome of etds.Engine.Compile. source names
// the surface that compiled the input, e.g. "cli", "repl" or "http".
func NewRun(source, input string, res *etds.Result, err error) *Run {
	run := &Run{Source: source, Input: input}
	if err != nil {
		run.ErrorKind = string(etds.KindOf(err))
		run.Diagnostic = etds.Diagnostic(err)
		return run
	}
	run.Success = true
	if res != nil {
		run.Nodes = ast.Count(res.Tree)
		run.Symbols = res.Symbols.Len()
		run.Duration = res.Duration
	}
	return run
}

// Filter restricts List
type Filter struct {
	OnlyFailed bool
	Since      time.Time
	Limit      int
	Offset     int
}

// Stats summarizes the stored runs
type Stats struct {
	Total       int64            `json:"total" yaml:"total"`
	Succeeded   int64            `json:"succeeded" yaml:"succeeded"`
	Failed      int64            `json:"failed" yaml:"failed"`
	ByKind      map[string]int64 `json:"by_kind" yaml:"by_kind"`
	AvgDuration time.Duration    `json:"avg_duration" yaml:"avg_duration"`
	First       time.Time        `json:"first,omitempty" yaml:"first,omitempty"`
	Last        time.Time        `json:"last,omitempty" yaml:"last,omitempty"`
}

// Config holds configuration for the SQLite store
type Config struct {
	Path   string
	Logger *mdwlog.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{Path: "./data/etds-history.db"}
}

// Store is a SQLite-backed run history, safe for concurrent use
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	logger *mdwlog.Logger
}

// Open creates the database file and its directory if needed
func Open(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		cfg.Path = DefaultConfig().Path
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, storageError(err, "failed to create history directory").WithDetail("path", cfg.Path)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, storageError(err, "failed to open history database").WithDetail("path", cfg.Path)
	}

	s := &Store{db: db, logger: cfg.Logger}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, storageError(err, "failed to initialize history schema").WithDetail("path", cfg.Path)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		source TEXT NOT NULL,
		input TEXT NOT NULL,
		success INTEGER NOT NULL,
		error_kind TEXT,
		diagnostic TEXT,
		nodes INTEGER NOT NULL DEFAULT 0,
		symbols INTEGER NOT NULL DEFAULT 0,
		duration_ns INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_success ON runs(success);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores run, assigning an ID and timestamp when they are unset
func (s *Store) Record(ctx context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, source, input, success, error_kind, diagnostic, nodes, symbols, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Timestamp.UnixNano(), run.Source, run.Input, run.Success,
		nullString(run.ErrorKind), nullString(run.Diagnostic), run.Nodes, run.Symbols, int64(run.Duration))
	if err != nil {
		return storageError(err, "failed to insert run").WithDetail("id", run.ID)
	}
	return nil
}

const selectRuns = `SELECT id, created_at, source, input, success, error_kind, diagnostic, nodes, symbols, duration_ns FROM runs`

// List returns runs newest first
func (s *Store) List(ctx context.Context, filter Filter) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := selectRuns + ` WHERE 1=1`
	var args []interface{}

	if filter.OnlyFailed {
		query += " AND success = 0"
	}
	if !filter.Since.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, filter.Since.UnixNano())
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError(err, "failed to query runs")
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, storageError(err, "failed to scan run")
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "failed to read runs")
	}
	return runs, nil
}

// Get returns the run with the given ID; a missing run yields CodeNotFound
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, err := scanRun(s.db.QueryRowContext(ctx, selectRuns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, mdwerror.Newf("run %s not found", id).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("history.get")
	}
	if err != nil {
		return nil, storageError(err, "failed to load run").WithDetail("id", id)
	}
	return run, nil
}

// Stats aggregates counts, failure kinds and the average compile time
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{ByKind: make(map[string]int64)}

	var succeeded, avg sql.NullFloat64
	var first, last sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), SUM(success), AVG(CASE WHEN success = 1 THEN duration_ns END),
		       MIN(created_at), MAX(created_at)
		FROM runs
	`).Scan(&stats.Total, &succeeded, &avg, &first, &last)
	if err != nil {
		return nil, storageError(err, "failed to aggregate runs")
	}
	stats.Succeeded = int64(succeeded.Float64)
	stats.Failed = stats.Total - stats.Succeeded
	stats.AvgDuration = time.Duration(avg.Float64)
	if first.Valid {
		stats.First = time.Unix(0, first.Int64)
		stats.Last = time.Unix(0, last.Int64)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT error_kind, COUNT(*) FROM runs WHERE success = 0 GROUP BY error_kind`)
	if err != nil {
		return nil, storageError(err, "failed to group failures")
	}
	defer rows.Close()
	for rows.Next() {
		var kind sql.NullString
		var count int64
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, storageError(err, "failed to scan failure count")
		}
		stats.ByKind[kind.String] += count
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "failed to read failure counts")
	}
	return stats, nil
}

// Prune deletes runs older than olderThan and returns how many were removed
func (s *Store) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	result, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE created_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, storageError(err, "failed to prune runs")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, storageError(err, "failed to count pruned runs")
	}
	if s.logger != nil {
		s.logger.Info("pruned history", mdwlog.Fields{
			"removed": n,
			"cutoff":  cutoff.Format(time.RFC3339),
		})
	}
	return n, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var createdAt, durationNS int64
	var errorKind, diagnostic sql.NullString
	if err := row.Scan(&run.ID, &createdAt, &run.Source, &run.Input, &run.Success,
		&errorKind, &diagnostic, &run.Nodes, &run.Symbols, &durationNS); err != nil {
		return nil, err
	}
	run.Timestamp = time.Unix(0, createdAt)
	run.ErrorKind = errorKind.String
	run.Diagnostic = diagnostic.String
	run.Duration = time.Duration(durationNS)
	return &run, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func storageError(err error, message string) *mdwerror.Error {
	return mdwerror.Wrap(err, message).WithCode(mdwerror.CodeStorageError)
}

// Ping verifies the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
