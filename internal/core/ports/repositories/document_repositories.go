package repositories

import (
	"context"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
)

// DocumentFilter narrows document listings.
type DocumentFilter struct {
	Kind     domain.DocumentKind
	ClientID string
	Limit    int
	Offset   int
}

// DocumentReader defines read operations for bills and estimates
type DocumentReader interface {
	// FindDocumentByID loads a document with its line items.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// FindLatestDocument returns the last inserted document of kind in insertion
	// order, or apperrors.ErrNotFound when none exists. Line items are not loaded.
	FindLatestDocument(ctx context.Context, kind domain.DocumentKind) (*domain.Document, error)

	// ListDocuments returns documents newest first, without line items.
	ListDocuments(ctx context.Context, filter DocumentFilter) ([]domain.Document, error)
}

// DocumentWriter defines write operations for bills and estimates
type DocumentWriter interface {
	// SaveDocument inserts the document and its items. A taken number yields apperrors.ErrNumberTaken;
	// other uniqueness failures yield apperrors.ErrDuplicate.
	SaveDocument(ctx context.Context, doc domain.Document) error

	// UpdateDocument rewrites the document's mutable fields and replaces its items. Number is untouched.
	UpdateDocument(ctx context.Context, doc domain.Document) error

	// DeleteDocument removes the document and its items.
	DeleteDocument(ctx context.Context, documentID string) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
