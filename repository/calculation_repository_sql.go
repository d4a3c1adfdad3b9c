package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"haus-finance/domain"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS calculations (
		id         TEXT      PRIMARY KEY,
		kind       TEXT      NOT NULL,
		input      TEXT      NOT NULL,
		result     TEXT      NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_calculations_kind_created ON calculations(kind, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_calculations_created ON calculations(created_at)`,
}

// SQLCalculationRepository persists calculation history in PostgreSQL or
// SQLite. Queries are written with ? placeholders and rebound per driver.
type SQLCalculationRepository struct {
	db     *sql.DB
	driver string
}

// NewPostgresCalculationRepository connects to PostgreSQL, waiting for the
// server to accept connections, and creates the schema.
func NewPostgresCalculationRepository(ctx context.Context, dsn string) (*SQLCalculationRepository, error) {
	db, err := sql.Open(DriverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		select {
		case <-ctx.Done():
			_ = db.Close()
			return nil, fmt.Errorf("postgres: ping: %w", ctx.Err())
		case <-time.After(2 * time.Second):
		}
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	return newSQLCalculationRepository(ctx, db, DriverPostgres)
}

// NewSQLiteCalculationRepository opens (or creates) the SQLite database at
// path. ":memory:" gives a private in-memory database.
func NewSQLiteCalculationRepository(ctx context.Context, path string) (*SQLCalculationRepository, error) {
	db, err := sql.Open(DriverSQLite, path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	return newSQLCalculationRepository(ctx, db, DriverSQLite)
}

func newSQLCalculationRepository(ctx context.Context, db *sql.DB, driver string) (*SQLCalculationRepository, error) {
	r := &SQLCalculationRepository{db: db, driver: driver}
	if err := r.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: migrate: %w", driver, err)
	}
	return r, nil
}

func (r *SQLCalculationRepository) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (r *SQLCalculationRepository) rebind(query string) string {
	if r.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func (r *SQLCalculationRepository) Save(ctx context.Context, record domain.CalculationRecord) error {
	_, err := r.db.ExecContext(ctx, r.rebind(`
		INSERT INTO calculations (id, kind, input, result, created_at)
		VALUES (?, ?, ?, ?, ?)
	`), record.ID.String(), string(record.Kind), string(record.Input), string(record.Result), record.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("%s: save calculation: %w", r.driver, err)
	}
	return nil
}

func (r *SQLCalculationRepository) Get(ctx context.Context, id uuid.UUID) (domain.CalculationRecord, error) {
	row := r.db.QueryRowContext(ctx, r.rebind(`
		SELECT id, kind, input, result, created_at
		FROM calculations
		WHERE id = ?
	`), id.String())

	rec, err := scanCalculation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CalculationRecord{}, ErrNotFound
	}
	if err != nil {
		return domain.CalculationRecord{}, fmt.Errorf("%s: get calculation: %w", r.driver, err)
	}
	return rec, nil
}

func (r *SQLCalculationRepository) List(ctx context.Context, opts ListOptions) ([]domain.CalculationRecord, error) {
	query := `SELECT id, kind, input, result, created_at FROM calculations`
	args := []any{}
	if opts.Kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(opts.Kind))
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, opts.limit())

	rows, err := r.db.QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: list calculations: %w", r.driver, err)
	}
	defer rows.Close()

	out := []domain.CalculationRecord{}
	for rows.Next() {
		rec, err := scanCalculation(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan calculation: %w", r.driver, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLCalculationRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLCalculationRepository) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCalculation(s rowScanner) (domain.CalculationRecord, error) {
	var (
		id, kind, input, result string
		createdAt               time.Time
	)
	if err := s.Scan(&id, &kind, &input, &result, &createdAt); err != nil {
		return domain.CalculationRecord{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return domain.CalculationRecord{}, fmt.Errorf("parse id %q: %w", id, err)
	}
	return domain.CalculationRecord{
		ID:        parsed,
		Kind:      domain.CalculationKind(kind),
		Input:     json.RawMessage(input),
		Result:    json.RawMessage(result),
		CreatedAt: createdAt.UTC(),
	}, nil
}
