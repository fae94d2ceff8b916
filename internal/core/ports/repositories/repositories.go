package repositories

// RepositorySet groups the repositories of every billing aggregate.
// Inside a unit of work all of them share the same transaction.
type RepositorySet struct {
	Clients        ClientRepositoryFacade
	Documents      DocumentRepositoryFacade
	Journal        JournalRepositoryFacade
	PaymentMethods PaymentMethodRepositoryFacade
	Receipts       ReceiptRepositoryFacade
}

// RepositoryProvider holds pool-backed repositories for plain reads and the unit of work
// used for anything that mutates more than one row.
type RepositoryProvider struct {
	RepositorySet
	UnitOfWork UnitOfWork
}
