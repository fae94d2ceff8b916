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

type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(db DBTX) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{db: db}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `entry_seq, entry_id, client_id, entry_date, particular, entry_type, amount, reference_id, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntrySeq, &m.EntryID, &m.ClientID, &m.EntryDate, &m.Particular, &m.EntryType, &m.Amount,
		&m.ReferenceID, &m.Notes, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveEntry appends an entry. entry_seq is assigned by the database.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (entry_id, client_id, entry_date, particular, entry_type, amount, reference_id, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, query,
		m.EntryID, m.ClientID, m.EntryDate, m.Particular, m.EntryType, m.Amount, m.ReferenceID, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, fmt.Sprintf("save journal entry %s", m.EntryID))
}

// FindEntryByReference retrieves the entry created for a bill or receipt.
func (r *PgxJournalRepository) FindEntryByReference(ctx context.Context, entryType domain.JournalEntryType, referenceID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE entry_type = $1 AND reference_id = $2 ORDER BY entry_seq LIMIT 1;`
	m, err := scanJournalEntry(r.db.QueryRow(ctx, query, string(entryType), referenceID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("find %s journal entry for %s", entryType, referenceID))
	}
	e := mapping.ToDomainJournalEntry(m)
	return &e, nil
}

// ListEntriesByClient returns all entries of a client in ledger order.
func (r *PgxJournalRepository) ListEntriesByClient(ctx context.Context, clientID string) ([]domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE client_id = $1 ORDER BY entry_date, entry_seq;`
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, translateError(err, "list journal entries")
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0)
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, translateError(err, "scan journal entry")
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	return entries, translateError(rows.Err(), "iterate journal entries")
}

// UpdateEntry keeps an entry in sync with the document it references.
func (r *PgxJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET client_id = $2, entry_date = $3, particular = $4, amount = $5, notes = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE entry_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.EntryID, m.ClientID, m.EntryDate, m.Particular, m.Amount, m.Notes, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("update journal entry %s", m.EntryID))
	}
	return affectedOne(tag)
}

// DeleteEntry removes an entry.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return translateError(err, fmt.Sprintf("delete journal entry %s", entryID))
	}
	return affectedOne(tag)
}
