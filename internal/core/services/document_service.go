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
	"github.com/SscSPs/billing_ledger/internal/utils/accounting"
	"github.com/SscSPs/billing_ledger/internal/utils/pagination"
	"github.com/SscSPs/billing_ledger/internal/utils/validation"
	"github.com/google/uuid"
)

// ErrBillImmutable is returned when a bill update is attempted.
var ErrBillImmutable = fmt.Errorf("%w: bills cannot be updated", apperrors.ErrConflict)

type documentService struct {
	BaseService
	repos     portsrepo.RepositorySet
	uow       portsrepo.UnitOfWork
	numbering portssvc.NumberingSvc
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// NewDocumentService creates the bill and estimate service.
func NewDocumentService(repos portsrepo.RepositorySet, uow portsrepo.UnitOfWork, numbering portssvc.NumberingSvc, base BaseService) portssvc.DocumentSvcFacade {
	return &documentService{BaseService: base, repos: repos, uow: uow, numbering: numbering}
}

func discountTypeOrDefault(t domain.DiscountType) domain.DiscountType {
	if t == "" {
		return domain.DiscountAmount
	}
	return t
}

func billEntry(doc domain.Document) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     uuid.NewString(),
		ClientID:    doc.ClientID,
		Date:        doc.Date,
		Particular:  "Bill " + doc.Number,
		Type:        domain.EntryBill,
		Amount:      doc.Total,
		ReferenceID: doc.DocumentID,
		AuditFields: doc.AuditFields,
	}
}

func (s *documentService) CreateDocument(ctx context.Context, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	items := dto.ToLineItems(req.Items)
	discountType := discountTypeOrDefault(req.DiscountType)
	doc := domain.Document{
		DocumentID:    uuid.NewString(),
		Kind:          req.Kind,
		Date:          dateOnly(req.Date),
		ClientID:      req.ClientID,
		Items:         items,
		DiscountType:  discountType,
		DiscountValue: req.DiscountValue,
		Totals:        accounting.CalculateTotals(items, discountType, req.DiscountValue),
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	_, err := s.numbering.Issue(ctx, doc.Kind, func(ctx context.Context, repos portsrepo.RepositorySet, number string) error {
		if _, err := repos.Clients.FindClientByID(ctx, doc.ClientID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("client %s: %w", doc.ClientID, apperrors.ErrNotFound)
			}
			return err
		}
		issued := doc
		issued.Number = number
		issued.AuditFields = newAudit(creatorUserID, s.now())
		if err := repos.Documents.SaveDocument(ctx, issued); err != nil {
			return err
		}
		if issued.Kind == domain.KindBill {
			if err := appendJournalEntry(ctx, repos, billEntry(issued)); err != nil {
				return err
			}
		}
		doc = issued
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create document",
			slog.String("kind", string(doc.Kind)), slog.String("client_id", doc.ClientID))
		return nil, err
	}

	s.LogInfo(ctx, "Document created",
		slog.String("document_id", doc.DocumentID),
		slog.String("number", doc.Number),
		slog.String("total", doc.Total.String()))
	return &doc, nil
}

func (s *documentService) GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.repos.Documents.FindDocumentByID(ctx, documentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find document", slog.String("document_id", documentID))
		return nil, err
	}
	return doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, params dto.ListDocumentsParams) ([]domain.Document, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}
	_, limit := pagination.Normalize(1, params.Limit)
	filter := portsrepo.DocumentFilter{
		Kind:     params.Kind,
		ClientID: params.ClientID,
		Limit:    limit,
		Offset:   max(params.Offset, 0),
	}
	docs, err := s.repos.Documents.ListDocuments(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list documents", slog.String("kind", string(params.Kind)))
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

func (s *documentService) UpdateEstimate(ctx context.Context, documentID string, req dto.UpdateEstimateRequest, userID string) (*domain.Document, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	items := dto.ToLineItems(req.Items)
	discountType := discountTypeOrDefault(req.DiscountType)

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	var updated domain.Document
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositorySet) error {
		doc, err := repos.Documents.FindDocumentByID(ctx, documentID)
		if err != nil {
			return err
		}
		if doc.Kind != domain.KindEstimate {
			return ErrBillImmutable
		}
		if doc.ClientID != req.ClientID {
			if _, err := repos.Clients.FindClientByID(ctx, req.ClientID); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return fmt.Errorf("client %s: %w", req.ClientID, apperrors.ErrNotFound)
				}
				return err
			}
		}

		doc.Date = dateOnly(req.Date)
		doc.ClientID = req.ClientID
		doc.Items = items
		doc.DiscountType = discountType
		doc.DiscountValue = req.DiscountValue
		doc.Totals = accounting.CalculateTotals(items, discountType, req.DiscountValue)
		doc.AuditFields = touch(doc.AuditFields, userID, s.now())

		if err := repos.Documents.UpdateDocument(ctx, *doc); err != nil {
			return err
		}
		updated = *doc
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update estimate", slog.String("document_id", documentID))
		return nil, err
	}

	s.LogInfo(ctx, "Estimate updated", slog.String("document_id", documentID), slog.String("total", updated.Total.String()))
	return &updated, nil
}

func (s *documentService) DeleteDocument(ctx context.Context, documentID string, userID string) error {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositorySet) error {
		doc, err := repos.Documents.FindDocumentByID(ctx, documentID)
		if err != nil {
			return err
		}
		if doc.Kind == domain.KindBill {
			entry, err := repos.Journal.FindEntryByReference(ctx, domain.EntryBill, doc.DocumentID)
			switch {
			case err == nil:
				if err := repos.Journal.DeleteEntry(ctx, entry.EntryID); err != nil {
					return err
				}
			case errors.Is(err, apperrors.ErrNotFound):
				s.GetLogger(ctx).Warn("Bill has no journal entry", slog.String("document_id", documentID))
			default:
				return err
			}
		}
		return repos.Documents.DeleteDocument(ctx, documentID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete document", slog.String("document_id", documentID))
		return err
	}

	s.LogInfo(ctx, "Document deleted", slog.String("document_id", documentID), slog.String("user_id", userID))
	return nil
}
