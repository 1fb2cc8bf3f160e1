package objectstore

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

const objectsSchema = `
CREATE TABLE IF NOT EXISTS objects (
    location      TEXT PRIMARY KEY,
    last_modified INTEGER NOT NULL,
    size          INTEGER NOT NULL,
    e_tag         TEXT,
    version       TEXT
);
`

// SQLiteStore is a durable object-metadata catalog backed by SQLite. It
// implements Store with keyset-paginated listing in location order, so a
// scan observes each location at most once per listing pass.
//
// last_modified is stored as Unix milliseconds; size is stored in SQLite's
// signed 64-bit integer column and round-trips sizes up to 1<<63-1 bytes.
type SQLiteStore struct {
	db       *sql.DB
	pageSize int
	log      zerolog.Logger
}

// SQLiteOption configures a SQLiteStore.
type SQLiteOption func(*SQLiteStore)

// WithSQLitePageSize sets the listing page size. Values below 1 are ignored.
func WithSQLitePageSize(n int) SQLiteOption {
	return func(s *SQLiteStore) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithSQLiteLogger attaches a logger; the default discards all events.
func WithSQLiteLogger(log zerolog.Logger) SQLiteOption {
	return func(s *SQLiteStore) { s.log = log }
}

// NewSQLiteStore creates a SQLite-backed store on an existing database
// handle, ensuring the objects schema exists.
func NewSQLiteStore(db *sql.DB, opts ...SQLiteOption) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("objectstore: db is nil")
	}
	if _, err := db.Exec(objectsSchema); err != nil {
		return nil, fmt.Errorf("objectstore: ensure schema: %w", err)
	}
	s := &SQLiteStore{db: db, pageSize: defaultPageSize, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// OpenSQLiteStore opens a SQLite database with the modernc.org/sqlite driver
// and creates a store on it. For file-based databases pass a path like
// "./catalog.sqlite"; for in-memory databases pass ":memory:".
func OpenSQLiteStore(dsn string, opts ...SQLiteOption) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("objectstore: open %s: %w", dsn, err)
	}
	return NewSQLiteStore(db, opts...)
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Put inserts or replaces the descriptor for meta.Location.
func (s *SQLiteStore) Put(ctx context.Context, meta ObjectMeta) error {
	if meta.Location == "" {
		return fmt.Errorf("objectstore: Put called with empty location")
	}
	var eTag, version sql.NullString
	if meta.ETag != nil {
		eTag = sql.NullString{String: *meta.ETag, Valid: true}
	}
	if meta.Version != nil {
		version = sql.NullString{String: *meta.Version, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO objects(location, last_modified, size, e_tag, version)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(location) DO UPDATE SET
  last_modified = excluded.last_modified,
  size = excluded.size,
  e_tag = excluded.e_tag,
  version = excluded.version`,
		meta.Location, meta.LastModified.UnixMilli(), int64(meta.Size), eTag, version)
	if err != nil {
		return fmt.Errorf("objectstore: put %s: %w", meta.Location, err)
	}
	return nil
}

// Delete removes the descriptor for the given location, if present.
func (s *SQLiteStore) Delete(ctx context.Context, location string) error {
	if location == "" {
		return fmt.Errorf("objectstore: Delete called with empty location")
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM objects WHERE location = ?`, location)
	if err != nil {
		return fmt.Errorf("objectstore: delete %s: %w", location, err)
	}
	return nil
}

// List returns a lazy iterator over descriptors whose location starts with
// prefix, in location order, fetching one page per query.
func (s *SQLiteStore) List(ctx context.Context, prefix string) ListIterator {
	s.log.Debug().Str("prefix", prefix).Msg("objectstore: starting sqlite listing")
	return &sqliteIterator{store: s, prefix: prefix}
}

type sqliteIterator struct {
	store  *SQLiteStore
	prefix string

	page   []ObjectMeta
	pos    int
	cursor string
	done   bool
}

func (it *sqliteIterator) Next(ctx context.Context) (ObjectMeta, error) {
	if it.done {
		return ObjectMeta{}, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return ObjectMeta{}, err
	}
	if it.pos >= len(it.page) {
		if err := it.fetchPage(ctx); err != nil {
			it.done = true
			return ObjectMeta{}, err
		}
		if len(it.page) == 0 {
			it.done = true
			return ObjectMeta{}, io.EOF
		}
	}
	meta := it.page[it.pos]
	it.pos++
	it.cursor = meta.Location
	return meta, nil
}

func (it *sqliteIterator) fetchPage(ctx context.Context) error {
	s := it.store
	rows, err := s.db.QueryContext(ctx, `
SELECT location, last_modified, size, e_tag, version
FROM objects
WHERE location > ? AND substr(location, 1, length(?)) = ?
ORDER BY location
LIMIT ?`,
		it.cursor, it.prefix, it.prefix, s.pageSize)
	if err != nil {
		return fmt.Errorf("objectstore: list page after %q: %w", it.cursor, err)
	}
	defer rows.Close()

	page := make([]ObjectMeta, 0, s.pageSize)
	for rows.Next() {
		var (
			meta          ObjectMeta
			ms, size      int64
			eTag, version sql.NullString
		)
		if err := rows.Scan(&meta.Location, &ms, &size, &eTag, &version); err != nil {
			return fmt.Errorf("objectstore: scan listing row: %w", err)
		}
		meta.LastModified = timeFromMillis(ms)
		meta.Size = uint64(size)
		if eTag.Valid {
			v := eTag.String
			meta.ETag = &v
		}
		if version.Valid {
			v := version.String
			meta.Version = &v
		}
		page = append(page, meta)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("objectstore: list page after %q: %w", it.cursor, err)
	}
	it.page = page
	it.pos = 0
	return nil
}

func timeFromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func (it *sqliteIterator) Close() error {
	it.done = true
	it.page = nil
	return nil
}
