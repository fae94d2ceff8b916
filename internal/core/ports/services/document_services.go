package services

import (
	"context"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/billing_ledger/internal/dto"
)

// IssueFunc persists a document under a freshly generated number. It runs inside
// the numbering unit of work and must only use repos.
type IssueFunc func(ctx context.Context, repos portsrepo.RepositorySet, number string) error

// NumberingSvc hands out document numbers of the form PREFIX-YEAR-SEQ.
type NumberingSvc interface {
	// NextNumber returns the number the next document of kind would get right now.
	// It reserves nothing; use Issue to persist under a number.
	NextNumber(ctx context.Context, kind domain.DocumentKind) (string, error)

	// Issue generates a candidate number and calls persist with it in one transaction,
	// retrying with a fresh candidate when the number is already taken.
	Issue(ctx context.Context, kind domain.DocumentKind, persist IssueFunc) (string, error)
}

// DocumentReaderSvc defines read operations for bills and estimates
type DocumentReaderSvc interface {
	GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)
	ListDocuments(ctx context.Context, params dto.ListDocumentsParams) ([]domain.Document, error)
}

// DocumentWriterSvc defines write operations for bills and estimates
type DocumentWriterSvc interface {
	// CreateDocument numbers and stores a bill or estimate. Bills also post a debit to the client's journal.
	CreateDocument(ctx context.Context, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, error)

	// UpdateEstimate recomputes an estimate's totals from new content. Bills cannot be updated.
	UpdateEstimate(ctx context.Context, documentID string, req dto.UpdateEstimateRequest, userID string) (*domain.Document, error)

	// DeleteDocument removes a document; a bill's journal entry goes with it.
	DeleteDocument(ctx context.Context, documentID string, userID string) error
}

// DocumentSvcFacade combines all document-related service interfaces
type DocumentSvcFacade interface {
	DocumentReaderSvc
	DocumentWriterSvc
}
