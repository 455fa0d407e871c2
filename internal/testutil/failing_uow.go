package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/cattimer/internal/db"
)

// FailingWriteUoW runs callbacks in a real transaction but fails every
// write with Err. Reads go through, so a read-modify-write reaches the
// write step before failing and the transaction rolls back.
type FailingWriteUoW struct {
	DB  *sql.DB
	Err error
}

func (u *FailingWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, failingWrites{DBTX: tx, err: u.Err})
	})
}

type failingWrites struct {
	db.DBTX
	err error
}

func (f failingWrites) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, f.err
}
