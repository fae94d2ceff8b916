package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryType discriminates debits from credits in a client journal.
type JournalEntryType string

const (
	EntryBill    JournalEntryType = "bill"    // debit
	EntryReceipt JournalEntryType = "receipt" // credit
)

// JournalEntry is a dated financial event on a client's account.
// Entries are never edited by users; they follow the bill or receipt they reference.
type JournalEntry struct {
	EntryID     string           `json:"entryID"`
	ClientID    string           `json:"clientID"`
	Date        time.Time        `json:"date"`
	Particular  string           `json:"particular"`
	Type        JournalEntryType `json:"type"`
	Amount      decimal.Decimal  `json:"amount"`
	ReferenceID string           `json:"referenceID"`
	Notes       string           `json:"notes"`
	// Seq is the insertion order, used to break ties between entries on the same date.
	Seq int64 `json:"-"`
	AuditFields
}

// LedgerRow is a journal entry annotated with its debit, credit and the running balance after it.
type LedgerRow struct {
	JournalEntry
	Dr      decimal.Decimal `json:"dr"`
	Cr      decimal.Decimal `json:"cr"`
	Balance decimal.Decimal `json:"balance"`
}

// JournalFilter narrows which ledger rows are returned. Balances are unaffected by it.
type JournalFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Type     *JournalEntryType
}

// Matches reports whether the entry passes the filter.
func (f JournalFilter) Matches(e JournalEntry) bool {
	if f.DateFrom != nil && e.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && e.Date.After(*f.DateTo) {
		return false
	}
	if f.Type != nil && e.Type != *f.Type {
		return false
	}
	return true
}

// Pagination describes a page window over a result set.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// LedgerPage is one page of a client's journal.
type LedgerPage struct {
	ClientID       string          `json:"clientID"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Entries        []LedgerRow     `json:"entries"`
	Pagination     Pagination      `json:"pagination"`
}

// JournalSummary totals a client's whole journal.
type JournalSummary struct {
	ClientID       string          `json:"clientID"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}
