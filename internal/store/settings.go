package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/aprendemos/internal/model"
)

// GetRaw returns the stored value of key. ok is false when the key is unset.
func (s *Store) GetRaw(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := sqlBuilder.Select("value").From("settings").Where("key = ?", key).ToSql()
	if err != nil {
		return nil, false, err
	}
	var value string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// PutRaw stores value under key.
func (s *Store) PutRaw(ctx context.Context, key string, value []byte) error {
	query, args, err := sqlBuilder.Insert("settings").
		Columns("key", "value", "updated_at").
		Values(key, string(value), time.Now().UTC().Format(timeLayout)).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// DeleteRaw removes key.
func (s *Store) DeleteRaw(ctx context.Context, key string) error {
	query, args, err := sqlBuilder.Delete("settings").Where("key = ?", key).ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}

// loadJSON decodes key over target, which must already hold the defaults.
// It reports false when the value is missing, unreadable or malformed; target
// may then be partially written and callers fall back to fresh defaults.
func (s *Store) loadJSON(ctx context.Context, key string, target any) bool {
	raw, ok, err := s.GetRaw(ctx, key)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("settings unavailable, using defaults")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, target); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("malformed settings, using defaults")
		return false
	}
	return true
}

// mergeJSON writes the fields of value over the existing JSON object at key,
// keeping keys it does not know about.
func (s *Store) mergeJSON(ctx context.Context, key string, value any) error {
	merged := map[string]json.RawMessage{}
	if raw, ok, err := s.GetRaw(ctx, key); err == nil && ok {
		if uerr := json.Unmarshal(raw, &merged); uerr != nil {
			merged = map[string]json.RawMessage{}
		}
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}
	for k, v := range fields {
		merged[k] = v
	}
	out, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}
	return s.PutRaw(ctx, key, out)
}

func (s *Store) putJSON(ctx context.Context, key string, value any) error {
	out, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}
	return s.PutRaw(ctx, key, out)
}

// LoadPlatform returns the platform settings merged over defaults. A player
// name stored by older versions under the multiplication key is migrated.
func (s *Store) LoadPlatform(ctx context.Context) model.PlatformSettings {
	settings := model.DefaultPlatformSettings()
	if _, ok, err := s.GetRaw(ctx, model.PlatformKey); err == nil && !ok {
		if migrated, ok := s.migrateLegacyPlatform(ctx); ok {
			return migrated
		}
	}
	if !s.loadJSON(ctx, model.PlatformKey, &settings) {
		return model.DefaultPlatformSettings()
	}
	return settings
}

func (s *Store) migrateLegacyPlatform(ctx context.Context) (model.PlatformSettings, bool) {
	legacy := struct {
		PlayerName   *string `json:"playerName"`
		SoundEnabled *bool   `json:"soundEnabled"`
	}{}
	raw, ok, err := s.GetRaw(ctx, model.MultiplicaKey)
	if err != nil || !ok {
		return model.PlatformSettings{}, false
	}
	if err := json.Unmarshal(raw, &legacy); err != nil || legacy.PlayerName == nil || *legacy.PlayerName == "" {
		return model.PlatformSettings{}, false
	}
	migrated := model.DefaultPlatformSettings()
	migrated.PlayerName = *legacy.PlayerName
	if legacy.SoundEnabled != nil {
		migrated.SoundEnabled = *legacy.SoundEnabled
	}
	if err := s.putJSON(ctx, model.PlatformKey, migrated); err != nil {
		s.log.WithError(err).Warn("failed to migrate platform settings")
	} else {
		s.log.WithField("player", migrated.PlayerName).Info("migrated legacy platform settings")
	}
	return migrated, true
}

// SavePlatform stores the platform settings.
func (s *Store) SavePlatform(ctx context.Context, settings model.PlatformSettings) error {
	return s.putJSON(ctx, model.PlatformKey, settings)
}

// LoadDictee returns the dictation settings merged over defaults.
func (s *Store) LoadDictee(ctx context.Context) model.DicteeSettings {
	settings := model.DefaultDicteeSettings()
	if !s.loadJSON(ctx, model.DicteeKey, &settings) {
		return model.DefaultDicteeSettings()
	}
	if settings.LessonScores == nil {
		settings.LessonScores = map[string]model.LessonScore{}
	}
	if settings.Level < 1 || settings.Level > 3 {
		settings.Level = model.DefaultDicteeSettings().Level
	}
	return settings
}

// SaveDictee stores the dictation settings.
func (s *Store) SaveDictee(ctx context.Context, settings model.DicteeSettings) error {
	return s.putJSON(ctx, model.DicteeKey, settings)
}

// LoadMultiplica returns the multiplication settings merged over defaults.
func (s *Store) LoadMultiplica(ctx context.Context) model.MultiplicaSettings {
	defaults := model.DefaultMultiplicaSettings()
	settings := defaults
	if !s.loadJSON(ctx, model.MultiplicaKey, &settings) {
		return defaults
	}
	if settings.SelectedTables == nil {
		settings.SelectedTables = defaults.SelectedTables
	}
	if settings.SelectedTime <= 0 {
		settings.SelectedTime = defaults.SelectedTime
	}
	return settings
}

// SaveMultiplica merges the multiplication settings into their record.
func (s *Store) SaveMultiplica(ctx context.Context, settings model.MultiplicaSettings) error {
	return s.mergeJSON(ctx, model.MultiplicaKey, settings)
}

// UpdateHighScore raises the stored high score when score beats it. It
// reports whether the record changed.
func (s *Store) UpdateHighScore(ctx context.Context, score int) (bool, error) {
	settings := s.LoadMultiplica(ctx)
	if score <= settings.HighScore {
		return false, nil
	}
	settings.HighScore = score
	if err := s.SaveMultiplica(ctx, settings); err != nil {
		return false, err
	}
	return true, nil
}

// ResetMultiplica restores the multiplication defaults and keeps every other
// record.
func (s *Store) ResetMultiplica(ctx context.Context) error {
	return s.mergeJSON(ctx, model.MultiplicaKey, model.DefaultMultiplicaSettings())
}
