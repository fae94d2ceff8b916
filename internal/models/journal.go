package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the row shape of the journal_entries table.
type JournalEntry struct {
	EntrySeq    int64           `db:"entry_seq"`
	EntryID     string          `db:"entry_id"`
	ClientID    string          `db:"client_id"`
	EntryDate   time.Time       `db:"entry_date"`
	Particular  string          `db:"particular"`
	EntryType   string          `db:"entry_type"`
	Amount      decimal.Decimal `db:"amount"`
	ReferenceID sql.NullString  `db:"reference_id"`
	Notes       string          `db:"notes"`
	AuditFields
}
