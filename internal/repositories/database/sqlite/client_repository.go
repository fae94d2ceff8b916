package sqlite

import (
	"context"
	"fmt"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/billing_ledger/internal/models"
	"github.com/SscSPs/billing_ledger/internal/utils/mapping"
)

type ClientRepository struct {
	BaseRepository
}

var _ portsrepo.ClientRepositoryFacade = (*ClientRepository)(nil)

const clientColumns = `client_id, name, email, phone, address, opening_balance, created_at, created_by, last_updated_at, last_updated_by`

func scanClient(row scanner) (models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID, &m.Name, &m.Email, &m.Phone, &m.Address, &m.OpeningBalance,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *ClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (`+clientColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		m.ClientID, m.Name, m.Email, m.Phone, m.Address, m.OpeningBalance,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, fmt.Sprintf("save client %s", m.ClientID))
}

func (r *ClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	m, err := scanClient(r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE client_id = ?;`, clientID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("find client %s", clientID))
	}
	c := mapping.ToDomainClient(m)
	return &c, nil
}

func (r *ClientRepository) ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY name, client_id LIMIT ? OFFSET ?;`, limit, offset)
	if err != nil {
		return nil, translateError(err, "list clients")
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	for rows.Next() {
		m, err := scanClient(rows)
		if err != nil {
			return nil, translateError(err, "scan client")
		}
		clients = append(clients, mapping.ToDomainClient(m))
	}
	return clients, translateError(rows.Err(), "iterate clients")
}

func (r *ClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	res, err := r.db.ExecContext(ctx, `
		UPDATE clients
		SET name = ?, email = ?, phone = ?, address = ?, opening_balance = ?, last_updated_at = ?, last_updated_by = ?
		WHERE client_id = ?;`,
		m.Name, m.Email, m.Phone, m.Address, m.OpeningBalance, m.LastUpdatedAt, m.LastUpdatedBy, m.ClientID,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("update client %s", m.ClientID))
	}
	return affectedOne(res)
}
