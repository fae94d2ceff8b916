package dto

import (
	"time"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateClientRequest defines the data needed to create a client.
type CreateClientRequest struct {
	Name           string          `json:"name" validate:"required"`
	Email          string          `json:"email" validate:"omitempty,email"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// UpdateClientRequest replaces a client's details.
type UpdateClientRequest CreateClientRequest

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID       string          `json:"clientId"`
	Name           string          `json:"name"`
	Email          string          `json:"email,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Address        string          `json:"address,omitempty"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ListClientsResponse wraps a page of clients.
type ListClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
}

func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:       c.ClientID,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		OpeningBalance: c.OpeningBalance,
		CreatedAt:      c.CreatedAt,
		LastUpdatedAt:  c.LastUpdatedAt,
	}
}

func ToListClientsResponse(clients []domain.Client) ListClientsResponse {
	out := ListClientsResponse{Clients: make([]ClientResponse, len(clients))}
	for i := range clients {
		out.Clients[i] = ToClientResponse(&clients[i])
	}
	return out
}
