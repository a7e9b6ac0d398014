// Package store handles SQLite persistence.
package store

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/aprendemos/internal/logging"

	_ "modernc.org/sqlite" // SQLite driver.
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// Store wraps SQLite access for settings and game history.
type Store struct {
	db  *sql.DB
	log logrus.FieldLogger
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	store := &Store{db: db, log: logging.Discard()}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// SetLogger replaces the logger used for recoverable problems.
func (s *Store) SetLogger(log logrus.FieldLogger) {
	if log != nil {
		s.log = log
	}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS dictee_sessions (
			id TEXT PRIMARY KEY,
			lesson_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			pro_mode INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			correct INTEGER NOT NULL,
			total INTEGER NOT NULL,
			total_points INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS dictee_word_results (
			session_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			word TEXT NOT NULL,
			rule TEXT NOT NULL,
			completed INTEGER NOT NULL,
			wrong_count INTEGER NOT NULL,
			half_count INTEGER NOT NULL,
			used_flash INTEGER NOT NULL,
			meaning INTEGER,
			time_used INTEGER NOT NULL,
			points INTEGER NOT NULL,
			PRIMARY KEY (session_id, position)
		);`,
		`CREATE TABLE IF NOT EXISTS multiplica_runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			tables TEXT NOT NULL,
			total_seconds INTEGER NOT NULL,
			score INTEGER NOT NULL,
			answered INTEGER NOT NULL,
			cancelled INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS multiplica_answers (
			run_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			a INTEGER NOT NULL,
			b INTEGER NOT NULL,
			user_answer INTEGER NOT NULL,
			correct_answer INTEGER NOT NULL,
			is_correct INTEGER NOT NULL,
			PRIMARY KEY (run_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_dictee_sessions_ended_at ON dictee_sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_dictee_word_results_rule ON dictee_word_results(rule);`,
		`CREATE INDEX IF NOT EXISTS idx_multiplica_runs_ended_at ON multiplica_runs(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// Fixed-width so that stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
