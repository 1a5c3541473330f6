/*
© 2021–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package psql

import (
	"context"
	"database/sql"

	"github.com/surister/conecta/perrors"
)

// Preparer is satisfied by *sql.DB and *sql.Conn.
type Preparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

func QueryString(label string, ctx context.Context, preparer Preparer,
	query string, args ...any) (value string, err error) {

	// prepare the sql statement
	var sqlStmt *sql.Stmt
	if sqlStmt, err = preparer.PrepareContext(ctx, query); err != nil {
		err = perrors.Errorf("prepare %s: %w", label, err)
		return
	}
	defer func() {
		if e := sqlStmt.Close(); e != nil {
			err = perrors.AppendError(err, perrors.Errorf("close %s: %w", label, e))
		}
	}()

	// execute
	if value, err = ScanToString(sqlStmt.QueryRowContext(ctx, args...), nil); err != nil {
		err = perrors.Errorf("exec %s: %w", label, err)
		return
	}

	return
}
