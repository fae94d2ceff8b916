package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/billing_ledger/internal/models"
	"github.com/SscSPs/billing_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(db DBTX) *PgxClientRepository {
	return &PgxClientRepository{BaseRepository: BaseRepository{db: db}}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientColumns = `client_id, name, email, phone, address, opening_balance, created_at, created_by, last_updated_at, last_updated_by`

func scanClient(row pgx.Row) (models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID, &m.Name, &m.Email, &m.Phone, &m.Address, &m.OpeningBalance,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveClient inserts a new client.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `INSERT INTO clients (` + clientColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	_, err := r.db.Exec(ctx, query,
		m.ClientID, m.Name, m.Email, m.Phone, m.Address, m.OpeningBalance,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, fmt.Sprintf("save client %s", m.ClientID))
}

// FindClientByID retrieves a client by its ID.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1;`
	m, err := scanClient(r.db.QueryRow(ctx, query, clientID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("find client %s", clientID))
	}
	c := mapping.ToDomainClient(m)
	return &c, nil
}

// ListClients retrieves a page of clients ordered by name.
func (r *PgxClientRepository) ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY name, client_id LIMIT $1 OFFSET $2;`
	rows, err := r.db.Query(ctx, query, limit, offset)
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
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "iterate clients")
	}
	return clients, nil
}

// UpdateClient rewrites a client's details.
func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
		UPDATE clients
		SET name = $2, email = $3, phone = $4, address = $5, opening_balance = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE client_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.ClientID, m.Name, m.Email, m.Phone, m.Address, m.OpeningBalance, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("update client %s", m.ClientID))
	}
	return affectedOne(tag)
}
