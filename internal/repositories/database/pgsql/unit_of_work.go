package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/billing_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxUnitOfWork runs TxFuncs in read-committed transactions. Balance rows are
// additionally locked with SELECT ... FOR UPDATE by the payment method repository.
type pgxUnitOfWork struct {
	pool *pgxpool.Pool
}

var _ portsrepo.UnitOfWork = (*pgxUnitOfWork)(nil)

func (u *pgxUnitOfWork) WithinTx(ctx context.Context, fn portsrepo.TxFunc) (err error) {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()

	if err = fn(ctx, newRepositorySet(tx)); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return translateError(err, "commit transaction")
	}
	return nil
}
