package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/billing_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
)

// sqliteUnitOfWork runs TxFuncs in transactions opened with BEGIN IMMEDIATE
// (see database.SQLiteDSN), so the write lock is held from the first statement.
type sqliteUnitOfWork struct {
	db *sql.DB
}

var _ portsrepo.UnitOfWork = (*sqliteUnitOfWork)(nil)

func (u *sqliteUnitOfWork) WithinTx(ctx context.Context, fn portsrepo.TxFunc) (err error) {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()

	if err = fn(ctx, newRepositorySet(tx)); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return translateError(err, "commit transaction")
	}
	return nil
}
