// Package sqlrows turns database/sql query results into iterators.
//
// It works with any database/sql driver.
// The MySQL/MariaDB and the PostgreSQL (lib/pq) drivers are registered by the package,
// and Connect opens a pool for them with sensible limits.
package sqlrows

import (
	"context"
	"database/sql"
	"io"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"go.llib.dev/iterateur/pkg/errorkit"
	"go.llib.dev/iterateur/pkg/iterateur"
	"go.llib.dev/iterateur/pkg/result"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

const ErrClose errorkit.Error = "sqlrows: unable to close rows"

// Rows is the part of *sql.Rows the iterator needs.
type Rows interface {
	io.Closer
	Next() bool
	Err() error
	Scan(dest ...any) error
}

type Scanner interface {
	Scan(dest ...any) error
}

// MapperFunc scans the current row into a value.
type MapperFunc[T any] func(Scanner) (T, error)

// Queryer is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Connect opens a connection pool.
func Connect(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	// connections must be closed by the driver before the server or a middleware drops them
	db.SetConnMaxLifetime(3 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	return db, nil
}

// Iterate maps every row of rows with mapper.
// A failed mapping yields an error result, and the iteration may continue past it.
// The error reported by rows.Err, or by closing the rows, becomes the last element.
func Iterate[T any](rows Rows, mapper MapperFunc[T]) *iterateur.Iterateur[result.Result[T, error]] {
	var done bool
	return iterateur.FromPull(func() (result.Result[T, error], bool) {
		if done {
			return result.Result[T, error]{}, false
		}
		if !rows.Next() {
			done = true
			err := rows.Err()
			if cErr := rows.Close(); cErr != nil {
				err = errorkit.Merge(err, ErrClose.Wrap(cErr))
			}
			if err != nil {
				return result.Err[T](err), true
			}
			return result.Result[T, error]{}, false
		}
		return result.Of(mapper(rows)), true
	}, func() {
		if !done {
			done = true
			_ = rows.Close()
		}
	})
}

// Query runs the query on the first pull, and iterates over its rows.
// When the query fails, its error is the only element.
func Query[T any](ctx context.Context, q Queryer, query string, mapper MapperFunc[T], args ...any) *iterateur.Iterateur[result.Result[T, error]] {
	var rows *iterateur.Iterateur[result.Result[T, error]]
	return iterateur.FromPull(func() (result.Result[T, error], bool) {
		if rows == nil {
			rs, err := q.QueryContext(ctx, query, args...)
			if err != nil {
				rows = iterateur.Empty[result.Result[T, error]]()
				return result.Err[T](err), true
			}
			rows = Iterate[T](rs, mapper)
		}
		return rows.Next()
	}, func() { rows.Stop() })
}

// ScanOne is a MapperFunc for single column rows.
func ScanOne[T any](s Scanner) (T, error) {
	var v T
	err := s.Scan(&v)
	return v, err
}
