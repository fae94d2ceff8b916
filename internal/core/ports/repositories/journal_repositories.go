package repositories

import (
	"context"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
)

// JournalReader defines read operations for client journal entries
type JournalReader interface {
	// FindEntryByReference returns the entry of type entryType created for referenceID.
	FindEntryByReference(ctx context.Context, entryType domain.JournalEntryType, referenceID string) (*domain.JournalEntry, error)

	// ListEntriesByClient returns every entry of the client ordered by date, then insertion order.
	ListEntriesByClient(ctx context.Context, clientID string) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for client journal entries
type JournalWriter interface {
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntry rewrites client, date, particular, amount and notes of an existing entry.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error

	DeleteEntry(ctx context.Context, entryID string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
