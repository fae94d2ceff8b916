package services

import (
	"context"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	"github.com/SscSPs/billing_ledger/internal/dto"
)

// LedgerReaderSvc reads client journals with derived running balances.
type LedgerReaderSvc interface {
	// ListClientJournal returns one page of the client's journal. Balances are folded
	// over the whole journal, so they do not depend on the page or filters.
	ListClientJournal(ctx context.Context, clientID string, params dto.ListJournalParams) (*domain.LedgerPage, error)

	GetClientJournalSummary(ctx context.Context, clientID string) (*domain.JournalSummary, error)

	// ExportClientStatement renders the filtered journal as an xlsx workbook.
	ExportClientStatement(ctx context.Context, clientID string, params dto.ListJournalParams) ([]byte, error)
}

// LedgerWriterSvc appends journal entries that are not driven by a bill or receipt.
type LedgerWriterSvc interface {
	AppendEntry(ctx context.Context, req dto.AppendEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
