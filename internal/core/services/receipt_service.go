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
	"github.com/SscSPs/billing_ledger/internal/platform/metrics"
	"github.com/SscSPs/billing_ledger/internal/utils/pagination"
	"github.com/SscSPs/billing_ledger/internal/utils/validation"
	"github.com/google/uuid"
)

// ErrPaymentMethodsNotFound is returned when a transaction references an unknown payment method.
var ErrPaymentMethodsNotFound = fmt.Errorf("one or more payment methods not found: %w", apperrors.ErrNotFound)

// receiptService keeps a receipt, its journal entry and the balances of the
// payment methods it touches in step. Every mutation is one unit of work.
type receiptService struct {
	BaseService
	repos portsrepo.RepositorySet
	uow   portsrepo.UnitOfWork
}

var _ portssvc.ReceiptSvcFacade = (*receiptService)(nil)

// NewReceiptService creates the receipt transaction processor.
func NewReceiptService(repos portsrepo.RepositorySet, uow portsrepo.UnitOfWork, base BaseService) portssvc.ReceiptSvcFacade {
	return &receiptService{BaseService: base, repos: repos, uow: uow}
}

// validateReceiptRequest rejects malformed input before any transaction starts.
func validateReceiptRequest(req dto.ReceiptRequest) error {
	verr := &apperrors.ValidationError{}
	validation.Collect(verr, req)
	for i, t := range req.Transactions {
		field := fmt.Sprintf("transactions[%d]", i)
		if t.PaymentType.RequiresAccount() && t.PaymentMethodID == "" {
			verr.Add(field+".paymentMethodId", "is required for "+string(t.PaymentType))
		}
		if t.PaymentType == domain.PaymentCheque && t.ChequeDetails == nil {
			verr.Add(field+".chequeDetails", "is required for cheque")
		}
	}
	return verr.OrNil()
}

// resolvePaymentMethods checks every referenced method exists and matches its line's type.
func resolvePaymentMethods(ctx context.Context, repo portsrepo.PaymentMethodReader, txns []domain.Transaction) error {
	ids := make([]string, 0, len(txns))
	seen := make(map[string]struct{}, len(txns))
	for _, t := range txns {
		if !t.AffectsBalance() {
			continue
		}
		if _, ok := seen[t.PaymentMethodID]; ok {
			continue
		}
		seen[t.PaymentMethodID] = struct{}{}
		ids = append(ids, t.PaymentMethodID)
	}
	if len(ids) == 0 {
		return nil
	}

	methods, err := repo.FindPaymentMethodsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load payment methods: %w", err)
	}
	if len(methods) != len(ids) {
		return ErrPaymentMethodsNotFound
	}

	verr := &apperrors.ValidationError{}
	for i, t := range txns {
		if !t.AffectsBalance() {
			continue
		}
		if pm := methods[t.PaymentMethodID]; pm.Type != t.PaymentType {
			verr.Add(fmt.Sprintf("transactions[%d].paymentMethodId", i),
				fmt.Sprintf("is a %s method, transaction is %s", pm.Type, t.PaymentType))
		}
	}
	return verr.OrNil()
}

func (s *receiptService) buildTransactions(receiptID string, reqs []dto.TransactionRequest) []domain.Transaction {
	txns := dto.ToTransactions(reqs)
	for i := range txns {
		txns[i].TransactionID = uuid.NewString()
		txns[i].ReceiptID = receiptID
		if txns[i].PaymentType != domain.PaymentCheque {
			txns[i].ChequeDetails = nil
		} else if txns[i].ChequeDetails != nil {
			txns[i].ChequeDetails.IssueDate = dateOnly(txns[i].ChequeDetails.IssueDate)
		}
	}
	return txns
}

func findClient(ctx context.Context, repo portsrepo.ClientReader, clientID string) (*domain.Client, error) {
	client, err := repo.FindClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("client %s: %w", clientID, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return client, nil
}

func receiptParticular(clientName string) string {
	return "Receipt from " + clientName
}

// applyBalances adjusts the balance of every linked method by sign*amount.
func (s *receiptService) applyBalances(ctx context.Context, repos portsrepo.RepositorySet, txns []domain.Transaction, sign int64, userID string) error {
	for _, t := range txns {
		if !t.AffectsBalance() {
			continue
		}
		delta := t.Amount
		if sign < 0 {
			delta = delta.Neg()
		}
		if _, err := adjustBalance(ctx, repos.PaymentMethods, t.PaymentMethodID, delta, userID, s.now()); err != nil {
			return err
		}
	}
	return nil
}

func (s *receiptService) CreateReceipt(ctx context.Context, req dto.ReceiptRequest, creatorUserID string) (receipt *domain.Receipt, err error) {
	defer func() { metrics.ReceiptOperation("create", err) }()

	if err := validateReceiptRequest(req); err != nil {
		return nil, err
	}

	r := domain.Receipt{
		ReceiptID:   uuid.NewString(),
		Date:        dateOnly(req.Date),
		ClientID:    req.ClientID,
		Notes:       req.Notes,
		AuditFields: newAudit(creatorUserID, s.now()),
	}
	r.Transactions = s.buildTransactions(r.ReceiptID, req.Transactions)

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositorySet) error {
		client, err := findClient(ctx, repos.Clients, r.ClientID)
		if err != nil {
			return err
		}
		if err := resolvePaymentMethods(ctx, repos.PaymentMethods, r.Transactions); err != nil {
			return err
		}
		if err := repos.Receipts.SaveReceipt(ctx, r); err != nil {
			return err
		}
		entry := domain.JournalEntry{
			EntryID:     uuid.NewString(),
			ClientID:    r.ClientID,
			Date:        r.Date,
			Particular:  receiptParticular(client.Name),
			Type:        domain.EntryReceipt,
			Amount:      r.Total(),
			ReferenceID: r.ReceiptID,
			Notes:       r.Notes,
			AuditFields: r.AuditFields,
		}
		if err := repos.Journal.SaveEntry(ctx, entry); err != nil {
			return err
		}
		return s.applyBalances(ctx, repos, r.Transactions, 1, creatorUserID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create receipt", slog.String("client_id", req.ClientID))
		return nil, err
	}

	s.LogInfo(ctx, "Receipt created",
		slog.String("receipt_id", r.ReceiptID),
		slog.String("client_id", r.ClientID),
		slog.String("total", r.Total().String()))
	return &r, nil
}

func (s *receiptService) UpdateReceipt(ctx context.Context, receiptID string, req dto.ReceiptRequest, userID string) (receipt *domain.Receipt, err error) {
	defer func() { metrics.ReceiptOperation("update", err) }()

	if err := validateReceiptRequest(req); err != nil {
		return nil, err
	}
	newTxns := s.buildTransactions(receiptID, req.Transactions)

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositorySet) error {
		existing, err := repos.Receipts.LockReceipt(ctx, receiptID)
		if err != nil {
			return err
		}
		client, err := findClient(ctx, repos.Clients, req.ClientID)
		if err != nil {
			return err
		}
		if err := resolvePaymentMethods(ctx, repos.PaymentMethods, newTxns); err != nil {
			return err
		}

		updated := *existing
		updated.Date = dateOnly(req.Date)
		updated.ClientID = req.ClientID
		updated.Notes = req.Notes
		updated.Transactions = newTxns
		updated.AuditFields = touch(existing.AuditFields, userID, s.now())

		if err := repos.Receipts.UpdateReceipt(ctx, updated); err != nil {
			return err
		}
		if err := repos.Receipts.ReplaceTransactions(ctx, receiptID, newTxns); err != nil {
			return err
		}

		entry, err := repos.Journal.FindEntryByReference(ctx, domain.EntryReceipt, receiptID)
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("receipt %s: %w", receiptID, ErrLedgerOutOfSync)
		}
		if err != nil {
			return err
		}
		entry.ClientID = updated.ClientID
		entry.Date = updated.Date
		entry.Particular = receiptParticular(client.Name)
		entry.Amount = updated.Total()
		entry.Notes = updated.Notes
		entry.AuditFields = touch(entry.AuditFields, userID, updated.LastUpdatedAt)
		if err := repos.Journal.UpdateEntry(ctx, *entry); err != nil {
			return err
		}

		// Old effects are reverted before new ones are applied.
		if err := s.applyBalances(ctx, repos, existing.Transactions, -1, userID); err != nil {
			return err
		}
		if err := s.applyBalances(ctx, repos, newTxns, 1, userID); err != nil {
			return err
		}

		receipt, err = repos.Receipts.FindReceiptByID(ctx, receiptID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update receipt", slog.String("receipt_id", receiptID))
		return nil, err
	}

	s.LogInfo(ctx, "Receipt updated", slog.String("receipt_id", receiptID), slog.String("total", receipt.Total().String()))
	return receipt, nil
}

func (s *receiptService) DeleteReceipt(ctx context.Context, receiptID string, userID string) (err error) {
	defer func() { metrics.ReceiptOperation("delete", err) }()

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositorySet) error {
		existing, err := repos.Receipts.LockReceipt(ctx, receiptID)
		if err != nil {
			return err
		}
		if err := s.applyBalances(ctx, repos, existing.Transactions, -1, userID); err != nil {
			return err
		}

		entry, err := repos.Journal.FindEntryByReference(ctx, domain.EntryReceipt, receiptID)
		switch {
		case err == nil:
			if err := repos.Journal.DeleteEntry(ctx, entry.EntryID); err != nil {
				return err
			}
		case errors.Is(err, apperrors.ErrNotFound):
			s.GetLogger(ctx).Warn("Receipt has no journal entry", slog.String("receipt_id", receiptID))
		default:
			return err
		}

		return repos.Receipts.DeleteReceipt(ctx, receiptID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete receipt", slog.String("receipt_id", receiptID))
		return err
	}

	s.LogInfo(ctx, "Receipt deleted", slog.String("receipt_id", receiptID), slog.String("user_id", userID))
	return nil
}

func (s *receiptService) GetReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	receipt, err := s.repos.Receipts.FindReceiptByID(ctx, receiptID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find receipt", slog.String("receipt_id", receiptID))
		return nil, err
	}
	return receipt, nil
}

func (s *receiptService) ListReceipts(ctx context.Context, params dto.ListReceiptsParams) ([]domain.Receipt, error) {
	_, limit := pagination.Normalize(1, params.Limit)
	receipts, err := s.repos.Receipts.ListReceipts(ctx, portsrepo.ReceiptFilter{
		ClientID: params.ClientID,
		Limit:    limit,
		Offset:   max(params.Offset, 0),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list receipts", slog.String("client_id", params.ClientID))
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	return receipts, nil
}
