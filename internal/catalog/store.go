package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jisj/bookxmp/internal/logging"
	"github.com/jisj/bookxmp/internal/retry"
	"github.com/jisj/bookxmp/pkg/bookxmp"
)

// Pool configuration.
const (
	DefaultMaxConns        = 4
	DefaultMaxConnIdleTime = 5 * time.Minute
)

// Record is one catalogued book.
type Record struct {
	ID        uuid.UUID `db:"id"`
	Title     string    `db:"title"`
	Genres    []string  `db:"genres"`
	Authors   []string  `db:"authors"`
	WorkCount int       `db:"work_count"`
	Packet    string    `db:"packet"`
	Checksum  string    `db:"checksum"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Options configures Connect. Zero values select the defaults.
type Options struct {
	MaxConns       int32
	ConnectTimeout time.Duration
	Retry          bookxmp.BackoffStrategy
	Logger         bookxmp.Logger
}

// Store is a PostgreSQL book catalog.
//
// Safe for concurrent use (pgxpool.Pool is).
type Store struct {
	pool   *pgxpool.Pool
	logger bookxmp.Logger
}

// Connect opens a pool for dsn and pings it, retrying transient failures.
// An unparsable dsn fails with bookxmp.ErrInvalidConfig; an unreachable
// server with bookxmp.ErrCatalogUnavailable.
func Connect(ctx context.Context, dsn string, opts Options) (*Store, error) {
	if opts.Logger == nil {
		opts.Logger = logging.NewNullLogger()
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = bookxmp.DefaultCatalogConnectTimeout
	}
	if opts.MaxConns <= 0 {
		opts.MaxConns = DefaultMaxConns
	}
	if opts.Retry == nil {
		opts.Retry = retry.NewExponentialBackoff(bookxmp.DefaultRetryMaxAttempts)
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog connection string: %w", bookxmp.ErrInvalidConfig, err)
	}
	poolConfig.MaxConns = opts.MaxConns
	poolConfig.MinConns = 0
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	poolConfig.ConnConfig.ConnectTimeout = opts.ConnectTimeout

	executor := retry.NewExecutor(retry.NewPostgreSQLErrorClassifier(), opts.Retry).
		WithLogger(opts.Logger, "catalog connect")

	var pool *pgxpool.Pool
	err = executor.Execute(ctx, func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return err
		}
		pingCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
		defer cancel()
		if err := p.Ping(pingCtx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", bookxmp.ErrCatalogUnavailable, describeConnectError(err, poolConfig.ConnConfig))
	}

	opts.Logger.Verbose("Connected to catalog %s:%d/%s", poolConfig.ConnConfig.Host, poolConfig.ConnConfig.Port, poolConfig.ConnConfig.Database)
	return &Store{pool: pool, logger: opts.Logger}, nil
}

// describeConnectError adds a hint for the common connection failures.
func describeConnectError(err error, cfg *pgx.ConnConfig) error {
	msg := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	var hint string
	switch {
	case strings.Contains(msg, "connection refused"):
		hint = fmt.Sprintf("nothing is listening on %s (check: pg_isready -h %s -p %d)", addr, cfg.Host, cfg.Port)
	case strings.Contains(msg, "password authentication failed"):
		hint = fmt.Sprintf("check the catalog user and password for database %q", cfg.Database)
	case strings.Contains(msg, "does not exist"):
		hint = fmt.Sprintf("create the catalog database first: createdb %s", cfg.Database)
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		hint = fmt.Sprintf("connection to %s timed out", addr)
	default:
		return fmt.Errorf("connect to %s: %w", addr, err)
	}
	return fmt.Errorf("connect to %s: %s: %w", addr, hint, err)
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS books (
    id          uuid PRIMARY KEY,
    title       text NOT NULL DEFAULT '',
    genres      text[] NOT NULL DEFAULT '{}',
    authors     text[] NOT NULL DEFAULT '{}',
    work_count  integer NOT NULL DEFAULT 0,
    packet      text NOT NULL,
    checksum    text NOT NULL,
    updated_at  timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS books_title_idx ON books (title);
`

// EnsureSchema creates the catalog table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to create catalog schema: %w", err)
	}
	return nil
}

// Upsert inserts r or updates the stored record when its checksum changed.
// It reports whether a row was written.
func (s *Store) Upsert(ctx context.Context, r Record) (bool, error) {
	const q = `
INSERT INTO books (id, title, genres, authors, work_count, packet, checksum, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title,
    genres = EXCLUDED.genres,
    authors = EXCLUDED.authors,
    work_count = EXCLUDED.work_count,
    packet = EXCLUDED.packet,
    checksum = EXCLUDED.checksum,
    updated_at = now()
WHERE books.checksum <> EXCLUDED.checksum
RETURNING updated_at`

	if r.ID == uuid.Nil {
		return false, fmt.Errorf("upsert: %w", bookxmp.ErrNilIdentifier)
	}

	var updated time.Time
	err := s.pool.QueryRow(ctx, q,
		r.ID, r.Title, nonNil(r.Genres), nonNil(r.Authors), r.WorkCount, r.Packet, r.Checksum,
	).Scan(&updated)
	if errors.Is(err, pgx.ErrNoRows) {
		s.logger.Verbose("Catalog record %s unchanged", r.ID)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("upsert book %s: %w", r.ID, err)
	}
	s.logger.Verbose("Catalog record %s written", r.ID)
	return true, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

const selectColumns = `SELECT id, title, genres, authors, work_count, packet, checksum, updated_at FROM books`

// Get returns the record for id, or an error matching bookxmp.ErrNotFound.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	rows, err := s.pool.Query(ctx, selectColumns+` WHERE id = $1`, id)
	if err != nil {
		return Record{}, fmt.Errorf("get book %s: %w", id, err)
	}
	r, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Record])
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, fmt.Errorf("book %s: %w", id, bookxmp.ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get book %s: %w", id, err)
	}
	return r, nil
}

// List returns every record ordered by title.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.pool.Query(ctx, selectColumns+` ORDER BY title, id`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[Record])
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return records, nil
}

// Delete removes the record for id, or fails matching bookxmp.ErrNotFound.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("book %s: %w", id, bookxmp.ErrNotFound)
	}
	return nil
}
