package repositories

import (
	"context"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID returns apperrors.ErrNotFound when the client does not exist.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClients returns clients ordered by name.
	ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	SaveClient(ctx context.Context, client domain.Client) error
	UpdateClient(ctx context.Context, client domain.Client) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
