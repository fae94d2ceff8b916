package pgsql

import (
	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgx repositories and unit of work around dbPool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RepositorySet: newRepositorySet(dbPool),
		UnitOfWork:    &pgxUnitOfWork{pool: dbPool},
	}
}

func newRepositorySet(db DBTX) portsrepo.RepositorySet {
	return portsrepo.RepositorySet{
		Clients:        newPgxClientRepository(db),
		Documents:      newPgxDocumentRepository(db),
		Journal:        newPgxJournalRepository(db),
		PaymentMethods: newPgxPaymentMethodRepository(db),
		Receipts:       newPgxReceiptRepository(db),
	}
}
