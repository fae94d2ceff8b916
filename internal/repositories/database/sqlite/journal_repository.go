package sqlite

import (
	"context"
	"fmt"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/billing_ledger/internal/models"
	"github.com/SscSPs/billing_ledger/internal/utils/mapping"
)

type JournalRepository struct {
	BaseRepository
}

var _ portsrepo.JournalRepositoryFacade = (*JournalRepository)(nil)

const journalColumns = `entry_seq, entry_id, client_id, entry_date, particular, entry_type, amount, reference_id, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanJournalEntry(row scanner) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntrySeq, &m.EntryID, &m.ClientID, &m.EntryDate, &m.Particular, &m.EntryType, &m.Amount,
		&m.ReferenceID, &m.Notes, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *JournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO journal_entries (entry_id, client_id, entry_date, particular, entry_type, amount, reference_id, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		m.EntryID, m.ClientID, m.EntryDate, m.Particular, m.EntryType, m.Amount, m.ReferenceID, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, fmt.Sprintf("save journal entry %s", m.EntryID))
}

func (r *JournalRepository) FindEntryByReference(ctx context.Context, entryType domain.JournalEntryType, referenceID string) (*domain.JournalEntry, error) {
	m, err := scanJournalEntry(r.db.QueryRowContext(ctx,
		`SELECT `+journalColumns+` FROM journal_entries WHERE entry_type = ? AND reference_id = ? ORDER BY entry_seq LIMIT 1;`,
		string(entryType), referenceID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("find %s journal entry for %s", entryType, referenceID))
	}
	e := mapping.ToDomainJournalEntry(m)
	return &e, nil
}

func (r *JournalRepository) ListEntriesByClient(ctx context.Context, clientID string) ([]domain.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+journalColumns+` FROM journal_entries WHERE client_id = ? ORDER BY entry_date, entry_seq;`, clientID)
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

func (r *JournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	res, err := r.db.ExecContext(ctx, `
		UPDATE journal_entries
		SET client_id = ?, entry_date = ?, particular = ?, amount = ?, notes = ?, last_updated_at = ?, last_updated_by = ?
		WHERE entry_id = ?;`,
		m.ClientID, m.EntryDate, m.Particular, m.Amount, m.Notes, m.LastUpdatedAt, m.LastUpdatedBy, m.EntryID,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("update journal entry %s", m.EntryID))
	}
	return affectedOne(res)
}

func (r *JournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE entry_id = ?;`, entryID)
	if err != nil {
		return translateError(err, fmt.Sprintf("delete journal entry %s", entryID))
	}
	return affectedOne(res)
}
