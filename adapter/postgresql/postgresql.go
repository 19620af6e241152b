// Package postgresql turns pgx query results into iterators.
//
// Rows are pulled from the connection one at a time,
// and the rows are closed once the iterator is exhausted or stopped.
// Scan and query failures are carried in-band as error results.
package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"go.llib.dev/iterateur/pkg/iterateur"
	"go.llib.dev/iterateur/pkg/result"
)

// Queryable is satisfied by *pgx.Conn, *pgxpool.Pool and pgx.Tx.
type Queryable interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Rows iterates over the result rows, scanning each with scan.
// A failed row scan yields an error result, and the iteration may continue past it.
// The error reported by rows.Err after the last row becomes the last element.
func Rows[T any](rows pgx.Rows, scan pgx.RowToFunc[T]) *iterateur.Iterateur[result.Result[T, error]] {
	var done bool
	return iterateur.FromPull(func() (result.Result[T, error], bool) {
		if done {
			return result.Result[T, error]{}, false
		}
		if !rows.Next() {
			done = true
			rows.Close()
			if err := rows.Err(); err != nil {
				return result.Err[T](err), true
			}
			return result.Result[T, error]{}, false
		}
		return result.Of(scan(rows)), true
	}, rows.Close)
}

// Query runs the query on the first pull, and iterates over its rows.
// When the query fails, its error is the only element.
//
//	names, err := iterateur.TryCollect(postgresql.Query(ctx, conn,
//		`SELECT name FROM users WHERE active`, pgx.RowTo[string]))
func Query[T any](ctx context.Context, q Queryable, sql string, scan pgx.RowToFunc[T], args ...any) *iterateur.Iterateur[result.Result[T, error]] {
	var rows *iterateur.Iterateur[result.Result[T, error]]
	return iterateur.FromPull(func() (result.Result[T, error], bool) {
		if rows == nil {
			rs, err := q.Query(ctx, sql, args...)
			if err != nil {
				rows = iterateur.Empty[result.Result[T, error]]()
				return result.Err[T](err), true
			}
			rows = Rows(rs, scan)
		}
		return rows.Next()
	}, func() { rows.Stop() })
}
