package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/verte-zerg/aprendemos/internal/model"
)

// InsertDicteeSession stores a finished dictation session and its words. An
// empty ID is replaced by a fresh UUID, which is returned.
func (s *Store) InsertDicteeSession(ctx context.Context, session model.DicteeSession) (id string, err error) {
	id = session.ID
	if id == "" {
		id = uuid.NewString()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	query, args, err := sqlBuilder.Insert("dictee_sessions").
		Columns("id", "lesson_id", "level", "pro_mode", "started_at", "ended_at", "correct", "total", "total_points").
		Values(id, session.LessonID, session.Level, boolInt(session.ProMode),
			session.StartedAt.UTC().Format(timeLayout),
			session.EndedAt.UTC().Format(timeLayout),
			session.Correct, session.Total, session.TotalPoints).
		ToSql()
	if err != nil {
		return "", err
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("failed to insert dictee session: %w", err)
	}

	if len(session.Words) > 0 {
		insert := sqlBuilder.Insert("dictee_word_results").
			Columns("session_id", "position", "word", "rule", "completed", "wrong_count", "half_count", "used_flash", "meaning", "time_used", "points")
		for i, w := range session.Words {
			var meaning any
			if w.MeaningCorrect != nil {
				meaning = boolInt(*w.MeaningCorrect)
			}
			insert = insert.Values(id, i, w.Word, w.Rule, boolInt(w.Completed), w.WrongCount, w.HalfCount,
				boolInt(w.UsedFlash), meaning, w.TimeUsed, w.Points)
		}
		query, args, err = insert.ToSql()
		if err != nil {
			return "", err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return "", fmt.Errorf("failed to insert word results: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// InsertMultiplicaRun stores a finished multiplication run and its answers.
func (s *Store) InsertMultiplicaRun(ctx context.Context, run model.MultiplicaRun) (id string, err error) {
	id = run.ID
	if id == "" {
		id = uuid.NewString()
	}
	tables, err := json.Marshal(run.Tables)
	if err != nil {
		return "", fmt.Errorf("failed to encode tables: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	query, args, err := sqlBuilder.Insert("multiplica_runs").
		Columns("id", "started_at", "ended_at", "tables", "total_seconds", "score", "answered", "cancelled").
		Values(id, run.StartedAt.UTC().Format(timeLayout), run.EndedAt.UTC().Format(timeLayout),
			string(tables), run.TotalSeconds, run.Score, run.Answered, boolInt(run.Cancelled)).
		ToSql()
	if err != nil {
		return "", err
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("failed to insert multiplica run: %w", err)
	}

	if len(run.History) > 0 {
		insert := sqlBuilder.Insert("multiplica_answers").
			Columns("run_id", "position", "a", "b", "user_answer", "correct_answer", "is_correct")
		for i, q := range run.History {
			insert = insert.Values(id, i, q.A, q.B, q.UserAnswer, q.CorrectAnswer, boolInt(q.IsCorrect))
		}
		query, args, err = insert.ToSql()
		if err != nil {
			return "", err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return "", fmt.Errorf("failed to insert answers: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

func closeRows(rows *sql.Rows) {
	if cerr := rows.Close(); cerr != nil {
		// Best-effort rows close.
		_ = cerr
	}
}

// ListSessions returns dictation sessions filtered by cfg, oldest first.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error) {
	q := sqlBuilder.Select("id", "lesson_id", "level", "ended_at", "correct", "total", "total_points").
		From("dictee_sessions")
	if cfg.LessonID != "" {
		q = q.Where(squirrel.Eq{"lesson_id": cfg.LessonID})
	}
	if cfg.Since != nil {
		q = q.Where(squirrel.GtOrEq{"ended_at": cfg.Since.UTC().Format(timeLayout)})
	}
	q = q.OrderBy("ended_at DESC")
	if cfg.Last > 0 {
		q = q.Limit(uint64(cfg.Last))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var endedAt string
		if err := rows.Scan(&agg.SessionID, &agg.LessonID, &agg.Level, &endedAt, &agg.Correct, &agg.Total, &agg.TotalPoints); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	slices.Reverse(sessions)
	return sessions, nil
}

// ListWordResults returns the stored words of one session in play order.
func (s *Store) ListWordResults(ctx context.Context, sessionID string) ([]model.DicteeWordResult, error) {
	query, args, err := sqlBuilder.Select("position", "word", "rule", "completed", "wrong_count", "half_count", "used_flash", "meaning", "time_used", "points").
		From("dictee_word_results").
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var words []model.DicteeWordResult
	for rows.Next() {
		var w model.DicteeWordResult
		var completed, flash int
		var meaning sql.NullInt64
		if err := rows.Scan(&w.Position, &w.Word, &w.Rule, &completed, &w.WrongCount, &w.HalfCount, &flash, &meaning, &w.TimeUsed, &w.Points); err != nil {
			return nil, err
		}
		w.Completed = completed != 0
		w.UsedFlash = flash != 0
		if meaning.Valid {
			v := meaning.Int64 != 0
			w.MeaningCorrect = &v
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// ListRuleAggregates aggregates word outcomes per rule across sessions.
func (s *Store) ListRuleAggregates(ctx context.Context, sessionIDs []string) ([]model.RuleAggregate, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlBuilder.Select(
		"rule",
		"COUNT(*)",
		"SUM(completed)",
		"SUM(wrong_count)",
		"SUM(half_count)",
		"SUM(CASE WHEN meaning = 1 THEN 1 ELSE 0 END)",
	).
		From("dictee_word_results").
		Where(squirrel.Eq{"session_id": sessionIDs}).
		GroupBy("rule").
		OrderBy("rule ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var result []model.RuleAggregate
	for rows.Next() {
		var agg model.RuleAggregate
		if err := rows.Scan(&agg.Rule, &agg.Words, &agg.Completed, &agg.WrongCount, &agg.HalfCount, &agg.Meaning); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListRuns returns multiplication runs filtered by cfg, oldest first.
func (s *Store) ListRuns(ctx context.Context, cfg model.StatsConfig) ([]model.RunAggregate, error) {
	q := sqlBuilder.Select("id", "ended_at", "score", "answered", "cancelled").From("multiplica_runs")
	if cfg.Since != nil {
		q = q.Where(squirrel.GtOrEq{"ended_at": cfg.Since.UTC().Format(timeLayout)})
	}
	q = q.OrderBy("ended_at DESC")
	if cfg.Last > 0 {
		q = q.Limit(uint64(cfg.Last))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var runs []model.RunAggregate
	for rows.Next() {
		var agg model.RunAggregate
		var endedAt string
		var cancelled int
		if err := rows.Scan(&agg.RunID, &endedAt, &agg.Score, &agg.Answered, &cancelled); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		agg.Cancelled = cancelled != 0
		runs = append(runs, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	slices.Reverse(runs)
	return runs, nil
}

// ListFactAggregates aggregates answers per multiplication fact across runs.
// Facts are normalized so that A <= B.
func (s *Store) ListFactAggregates(ctx context.Context, runIDs []string) ([]model.FactAggregate, error) {
	if len(runIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlBuilder.Select("MIN(a, b) AS fa", "MAX(a, b) AS fb", "SUM(is_correct)", "COUNT(*)").
		From("multiplica_answers").
		Where(squirrel.Eq{"run_id": runIDs}).
		GroupBy("fa", "fb").
		OrderBy("fa ASC", "fb ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var result []model.FactAggregate
	for rows.Next() {
		var agg model.FactAggregate
		if err := rows.Scan(&agg.A, &agg.B, &agg.Correct, &agg.Total); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ClearHistory removes every stored session and run. Settings are kept.
func (s *Store) ClearHistory(ctx context.Context) error {
	tables := []string{"dictee_word_results", "dictee_sessions", "multiplica_answers", "multiplica_runs"}
	for _, table := range tables {
		query, args, err := sqlBuilder.Delete(table).ToSql()
		if err != nil {
			return err
		}
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}
