// Package store is the persisted store accessor: whole-collection JSON blobs
// for beaches, crews and stats kept in the kv_store table. Callers never see
// raw rows; an absent or undecodable blob reads as an empty collection.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const (
	KeyBeaches = "shorecrew_beaches"
	KeyCrews   = "shorecrew_crews"
	KeyStats   = "shorecrew_stats"
)

const getValueSQL = `SELECT value FROM kv_store WHERE key = ?`

const putValueSQL = `
INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

type Repository interface {
	Seed(ctx context.Context) error

	Beaches(ctx context.Context) ([]Beach, error)
	SetBeaches(ctx context.Context, beaches []Beach) error

	Crews(ctx context.Context) ([]Crew, error)
	SetCrews(ctx context.Context, crews []Crew) error

	Stats(ctx context.Context) (Stats, error)
	SetStats(ctx context.Context, stats Stats) error
}

type repositoryImpl struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

func NewRepository(db *sql.DB, logger *slog.Logger) Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &repositoryImpl{db: db, logger: logger, now: time.Now}
}

// Seed writes the default collection for every key that is missing or holds
// a blob that no longer decodes. Existing valid data is left alone.
func (r *repositoryImpl) Seed(ctx context.Context) error {
	if err := seedKey(ctx, r, KeyBeaches, defaultBeaches()); err != nil {
		return err
	}
	if err := seedKey(ctx, r, KeyCrews, defaultCrews()); err != nil {
		return err
	}
	return seedKey(ctx, r, KeyStats, defaultStats())
}

func seedKey[T any](ctx context.Context, r *repositoryImpl, key string, defaults T) error {
	raw, found, err := r.get(ctx, key)
	if err != nil {
		return err
	}
	if found {
		var probe T
		if err := json.Unmarshal(raw, &probe); err == nil {
			return nil
		}
		r.logger.Warn("persisted value malformed, re-seeding", "key", key)
	}
	if err := r.put(ctx, key, defaults); err != nil {
		return err
	}
	r.logger.Info("seeded persisted store", "key", key)
	return nil
}

func (r *repositoryImpl) Beaches(ctx context.Context) ([]Beach, error) {
	out, err := getJSON[[]Beach](ctx, r, KeyBeaches)
	if out == nil {
		out = []Beach{}
	}
	return out, err
}

func (r *repositoryImpl) SetBeaches(ctx context.Context, beaches []Beach) error {
	if beaches == nil {
		beaches = []Beach{}
	}
	return r.put(ctx, KeyBeaches, beaches)
}

func (r *repositoryImpl) Crews(ctx context.Context) ([]Crew, error) {
	out, err := getJSON[[]Crew](ctx, r, KeyCrews)
	if out == nil {
		out = []Crew{}
	}
	return out, err
}

func (r *repositoryImpl) SetCrews(ctx context.Context, crews []Crew) error {
	if crews == nil {
		crews = []Crew{}
	}
	return r.put(ctx, KeyCrews, crews)
}

func (r *repositoryImpl) Stats(ctx context.Context) (Stats, error) {
	return getJSON[Stats](ctx, r, KeyStats)
}

func (r *repositoryImpl) SetStats(ctx context.Context, stats Stats) error {
	return r.put(ctx, KeyStats, stats)
}

// getJSON decodes the blob under key. Absence and malformed JSON both yield
// the zero value with a nil error; only storage failures are returned.
func getJSON[T any](ctx context.Context, r *repositoryImpl, key string) (T, error) {
	var out T
	raw, found, err := r.get(ctx, key)
	if err != nil || !found {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		r.logger.Warn("persisted value malformed, treating as absent", "key", key, "error", err)
		var zero T
		return zero, nil
	}
	return out, nil
}

func (r *repositoryImpl) get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, getValueSQL, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (r *repositoryImpl) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	ts := r.now().UTC().Format(time.RFC3339Nano)
	if _, err := r.db.ExecContext(ctx, putValueSQL, key, string(data), ts); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
