// Package archive keeps encoded trajectory snapshots in a SQLite database.
//
// Each Put encodes a store with the snapshot codec and stores the bytes under a
// fresh UUID together with a few summary columns, so List can describe the
// archive without decoding anything:
//
//	a, err := archive.Open(ctx, "tracks.db")
//	id, err := a.Put(ctx, "vessel-42", store)
//	store, err = a.Get(ctx, id, registry)
//
// The schema is managed by golang-migrate with migrations embedded in the
// binary. Open applies pending migrations.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/arloliu/movekit/category"
	"github.com/arloliu/movekit/errs"
	"github.com/arloliu/movekit/format"
	"github.com/arloliu/movekit/internal/options"
	"github.com/arloliu/movekit/snapshot"
	"github.com/arloliu/movekit/trajectory"
)

// Entry describes one archived snapshot.
type Entry struct {
	ID        string
	Name      string
	Rows      int
	Fields    int
	Layout    format.Layout
	Size      int // encoded size in bytes
	CreatedAt time.Time
}

// Config holds archive settings.
type Config struct {
	encoderOpts []snapshot.EncoderOption
	busyTimeout time.Duration
	now         func() time.Time
}

// Option configures an Archive.
type Option = options.Option[*Config]

// WithEncoderOptions sets the snapshot encoder options used by Put.
func WithEncoderOptions(opts ...snapshot.EncoderOption) Option {
	return options.NoError(func(c *Config) {
		c.encoderOpts = append(c.encoderOpts, opts...)
	})
}

// WithBusyTimeout sets how long SQLite waits on a locked database.
func WithBusyTimeout(d time.Duration) Option {
	return options.New(func(c *Config) error {
		if d < 0 {
			return fmt.Errorf("busy timeout must not be negative: %s", d)
		}
		c.busyTimeout = d

		return nil
	})
}

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return options.NoError(func(c *Config) {
		if now != nil {
			c.now = now
		}
	})
}

// Archive is a SQLite-backed snapshot store. It is safe for concurrent use.
type Archive struct {
	db  *sql.DB
	enc *snapshot.Encoder
	now func() time.Time
}

// Open opens or creates the database at path and brings its schema up to date.
func Open(ctx context.Context, path string, opts ...Option) (*Archive, error) {
	cfg := &Config{busyTimeout: 5 * time.Second, now: time.Now}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	enc, err := snapshot.NewEncoder(cfg.encoderOpts...)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout = %d;", cfg.busyTimeout.Milliseconds())); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	a := &Archive{db: db, enc: enc, now: cfg.now}
	if err := a.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}

	return a, nil
}

// Close closes the database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Put encodes store and saves it under a new ID.
func (a *Archive) Put(ctx context.Context, name string, store trajectory.Store) (string, error) {
	data, err := a.enc.Encode(store)
	if err != nil {
		return "", fmt.Errorf("encode %q: %w", name, err)
	}

	id := uuid.NewString()
	_, err = a.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, name, rows, fields, layout, size, created_at, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, name, store.Len(), store.Schema().Len(), int(store.Layout()), len(data),
		a.now().UnixNano(), data,
	)
	if err != nil {
		return "", fmt.Errorf("insert %q: %w", name, err)
	}

	return id, nil
}

// Get loads and decodes the snapshot with the given ID. Categorical values are
// mapped through reg; a nil reg decodes into a fresh registry.
func (a *Archive) Get(ctx context.Context, id string, reg *category.Registry) (trajectory.Store, error) {
	var data []byte
	err := a.db.QueryRowContext(ctx, `SELECT data FROM snapshots WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: snapshot %s", errs.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", id, err)
	}

	store, err := snapshot.DecodeStore(data, reg)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", id, err)
	}

	return store, nil
}

// Stat returns the entry for id without decoding the snapshot.
func (a *Archive) Stat(ctx context.Context, id string) (Entry, error) {
	row := a.db.QueryRowContext(ctx, `
		SELECT id, name, rows, fields, layout, size, created_at
		FROM snapshots WHERE id = ?`, id)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: snapshot %s", errs.ErrNotFound, id)
	}

	return e, err
}

// List returns all entries, oldest first.
func (a *Archive) List(ctx context.Context) ([]Entry, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, name, rows, fields, layout, size, created_at
		FROM snapshots ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	return out, nil
}

// Delete removes the snapshot with the given ID.
func (a *Archive) Delete(ctx context.Context, id string) error {
	res, err := a.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: snapshot %s", errs.ErrNotFound, id)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var (
		e       Entry
		layout  int
		created int64
	)
	if err := s.Scan(&e.ID, &e.Name, &e.Rows, &e.Fields, &layout, &e.Size, &created); err != nil {
		return Entry{}, err
	}
	e.Layout = format.Layout(layout)
	e.CreatedAt = time.Unix(0, created)

	return e, nil
}
