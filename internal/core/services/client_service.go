package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/billing_ledger/internal/core/ports/services"
	"github.com/SscSPs/billing_ledger/internal/dto"
	"github.com/SscSPs/billing_ledger/internal/utils/pagination"
	"github.com/SscSPs/billing_ledger/internal/utils/validation"
	"github.com/google/uuid"
)

type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

// NewClientService creates the client service.
func NewClientService(repo portsrepo.ClientRepositoryFacade, base BaseService) portssvc.ClientSvcFacade {
	return &clientService{BaseService: base, clientRepo: repo}
}

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	client := domain.Client{
		ClientID:       uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		OpeningBalance: req.OpeningBalance,
		AuditFields:    newAudit(creatorUserID, s.now()),
	}
	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "Failed to save client", slog.String("client_id", client.ClientID))
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.LogInfo(ctx, "Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find client", slog.String("client_id", clientID))
		return nil, err
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context, params dto.ListParams) ([]domain.Client, error) {
	_, limit := pagination.Normalize(1, params.Limit)
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	clients, err := s.clientRepo.ListClients(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (s *clientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, userID string) (*domain.Client, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find client for update", slog.String("client_id", clientID))
		return nil, err
	}

	client.Name = req.Name
	client.Email = req.Email
	client.Phone = req.Phone
	client.Address = req.Address
	client.OpeningBalance = req.OpeningBalance
	client.AuditFields = touch(client.AuditFields, userID, s.now())

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		s.LogError(ctx, err, "Failed to update client", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	s.LogInfo(ctx, "Client updated", slog.String("client_id", clientID))
	return client, nil
}
