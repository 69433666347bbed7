// Package postgres is the PostgreSQL store driver. It goes through
// database/sql using the pgx stdlib adapter, so scopes are stored as native
// text[] columns.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/store"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
}

// typeMaps pools pgtype maps, which cache scan plans and are not safe for
// concurrent use.
var typeMaps = sync.Pool{New: func() any { return pgtype.NewMap() }}

// scanRow scans row with a pooled type map available to build array scanners.
func scanRow(row rowScanner, build func(m *pgtype.Map) []any) error {
	m := typeMaps.Get().(*pgtype.Map)
	defer typeMaps.Put(m)
	return row.Scan(build(m)...)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// NewStore opens a connection pool for dsn, a postgres:// URL or key=value
// connection string, and checks it is reachable.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &txStore{tx: tx}, nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Clients() store.Clients { return &clientsRepo{db: s.db} }
func (s *Store) Users() store.Users     { return &usersRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return errors.Join(store.ErrAlreadyExists, err)
	}
	return err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// scopeArray is always non-nil so NOT NULL text[] columns get '{}' rather
// than NULL.
func scopeArray(scopes []scope.Scope) []string {
	if len(scopes) == 0 {
		return []string{}
	}
	return scope.Strings(scopes)
}

func fromScopeArray(raw []string) []scope.Scope {
	out := scope.FromStrings(raw)
	if out == nil {
		return []scope.Scope{}
	}
	return out
}
