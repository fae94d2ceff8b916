package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/billing_ledger/internal/apperrors"
	"github.com/SscSPs/billing_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/billing_ledger/internal/core/ports/services"
	"github.com/SscSPs/billing_ledger/internal/dto"
	"github.com/SscSPs/billing_ledger/internal/export"
	"github.com/SscSPs/billing_ledger/internal/utils/accounting"
	"github.com/SscSPs/billing_ledger/internal/utils/pagination"
	"github.com/SscSPs/billing_ledger/internal/utils/validation"
	"github.com/google/uuid"
)

// ErrLedgerOutOfSync marks a receipt or bill whose journal entry is missing.
var ErrLedgerOutOfSync = fmt.Errorf("%w: journal entry missing for referenced document", apperrors.ErrInternal)

// ErrReferenceInUse is returned when a manual entry names a reference owned by a bill, receipt or other entry.
var ErrReferenceInUse = fmt.Errorf("%w: reference already in use", apperrors.ErrConflict)

// ledgerService reads client journals and derives running balances at read time.
type ledgerService struct {
	BaseService
	repos portsrepo.RepositorySet
	uow   portsrepo.UnitOfWork
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// NewLedgerService creates the ledger service.
func NewLedgerService(repos portsrepo.RepositorySet, uow portsrepo.UnitOfWork, base BaseService) portssvc.LedgerSvcFacade {
	return &ledgerService{BaseService: base, repos: repos, uow: uow}
}

// appendJournalEntry stores entry after checking its client exists. Callers run it
// inside their own unit of work.
func appendJournalEntry(ctx context.Context, repos portsrepo.RepositorySet, entry domain.JournalEntry) error {
	if _, err := repos.Clients.FindClientByID(ctx, entry.ClientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("client %s: %w", entry.ClientID, apperrors.ErrNotFound)
		}
		return err
	}
	return repos.Journal.SaveEntry(ctx, entry)
}

// ensureReferenceFree rejects a manual reference that a bill, a receipt or an
// existing entry already owns, so reference lookups stay unambiguous.
func ensureReferenceFree(ctx context.Context, repos portsrepo.RepositorySet, referenceID string) error {
	if referenceID == "" {
		return nil
	}
	for _, t := range []domain.JournalEntryType{domain.EntryBill, domain.EntryReceipt} {
		_, err := repos.Journal.FindEntryByReference(ctx, t, referenceID)
		if err := referenceTaken(referenceID, err); err != nil {
			return err
		}
	}
	_, err := repos.Documents.FindDocumentByID(ctx, referenceID)
	if err := referenceTaken(referenceID, err); err != nil {
		return err
	}
	_, err = repos.Receipts.FindReceiptByID(ctx, referenceID)
	return referenceTaken(referenceID, err)
}

// referenceTaken maps the result of a lookup by referenceID: a hit is a conflict, a miss is fine.
func referenceTaken(referenceID string, lookupErr error) error {
	switch {
	case lookupErr == nil:
		return fmt.Errorf("reference %s: %w", referenceID, ErrReferenceInUse)
	case errors.Is(lookupErr, apperrors.ErrNotFound):
		return nil
	default:
		return lookupErr
	}
}

func (s *ledgerService) AppendEntry(ctx context.Context, req dto.AppendEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		ClientID:    req.ClientID,
		Date:        dateOnly(req.Date),
		Particular:  req.Particular,
		Type:        req.Type,
		Amount:      req.Amount,
		ReferenceID: req.ReferenceID,
		Notes:       req.Notes,
		AuditFields: newAudit(creatorUserID, s.now()),
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositorySet) error {
		if err := ensureReferenceFree(ctx, repos, entry.ReferenceID); err != nil {
			return err
		}
		return appendJournalEntry(ctx, repos, entry)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to append journal entry", slog.String("client_id", req.ClientID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry appended",
		slog.String("entry_id", entry.EntryID), slog.String("client_id", entry.ClientID), slog.String("type", string(entry.Type)))
	return &entry, nil
}

// ledger folds the client's whole journal from its opening balance.
func (s *ledgerService) ledger(ctx context.Context, clientID string) (*domain.Client, []domain.LedgerRow, error) {
	client, err := s.repos.Clients.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.repos.Journal.ListEntriesByClient(ctx, clientID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return client, accounting.RunningBalance(client.OpeningBalance, entries), nil
}

func filterRows(rows []domain.LedgerRow, filter domain.JournalFilter) []domain.LedgerRow {
	out := make([]domain.LedgerRow, 0, len(rows))
	for _, r := range rows {
		if filter.Matches(r.JournalEntry) {
			out = append(out, r)
		}
	}
	return out
}

func (s *ledgerService) ListClientJournal(ctx context.Context, clientID string, params dto.ListJournalParams) (*domain.LedgerPage, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}
	filter, err := params.ToFilter()
	if err != nil {
		return nil, err
	}

	client, rows, err := s.ledger(ctx, clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load client journal", slog.String("client_id", clientID))
		return nil, err
	}

	rows = filterRows(rows, filter)
	start, end, meta := pagination.Window(len(rows), params.Page, params.Limit)

	return &domain.LedgerPage{
		ClientID:       client.ClientID,
		OpeningBalance: client.OpeningBalance,
		Entries:        rows[start:end],
		Pagination:     meta,
	}, nil
}

func (s *ledgerService) GetClientJournalSummary(ctx context.Context, clientID string) (*domain.JournalSummary, error) {
	client, rows, err := s.ledger(ctx, clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize client journal", slog.String("client_id", clientID))
		return nil, err
	}
	summary := accounting.Summarize(client.ClientID, client.OpeningBalance, rows)
	return &summary, nil
}

func (s *ledgerService) ExportClientStatement(ctx context.Context, clientID string, params dto.ListJournalParams) ([]byte, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}
	filter, err := params.ToFilter()
	if err != nil {
		return nil, err
	}

	client, rows, err := s.ledger(ctx, clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal for export", slog.String("client_id", clientID))
		return nil, err
	}
	summary := accounting.Summarize(client.ClientID, client.OpeningBalance, rows)

	data, err := export.ClientStatement(*client, filterRows(rows, filter), summary)
	if err != nil {
		s.LogError(ctx, err, "Failed to render client statement", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to render statement: %w", err)
	}

	s.LogInfo(ctx, "Client statement exported", slog.String("client_id", clientID), slog.Int("bytes", len(data)))
	return data, nil
}
