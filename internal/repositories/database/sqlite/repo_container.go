package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the SQLite repositories and unit of work around db.
// db is expected to come from database.NewSQLiteDB.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RepositorySet: newRepositorySet(db),
		UnitOfWork:    &sqliteUnitOfWork{db: db},
	}
}

func newRepositorySet(db DBTX) portsrepo.RepositorySet {
	return portsrepo.RepositorySet{
		Clients:        &ClientRepository{BaseRepository{db: db}},
		Documents:      &DocumentRepository{BaseRepository{db: db}},
		Journal:        &JournalRepository{BaseRepository{db: db}},
		PaymentMethods: &PaymentMethodRepository{BaseRepository{db: db}},
		Receipts:       &ReceiptRepository{BaseRepository{db: db}},
	}
}
