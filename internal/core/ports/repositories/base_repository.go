package repositories

import "context"

// TxFunc is the body of a unit of work. It must use the repositories it is handed,
// never ones captured from outside, so every read and write joins the same transaction.
type TxFunc func(ctx context.Context, repos RepositorySet) error

// UnitOfWork runs a function inside one database transaction. The transaction commits
// when fn returns nil and rolls back on any error, panic or context cancellation.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}
