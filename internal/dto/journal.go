package dto

import (
	"time"

	"github.com/SscSPs/billing_ledger/internal/apperrors"
	"github.com/SscSPs/billing_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ListJournalParams holds paging and filters for a client's journal.
// Dates are inclusive and formatted YYYY-MM-DD.
type ListJournalParams struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
	Type     string `form:"type" validate:"omitempty,oneof=bill receipt"`
}

// ToFilter parses the filter part of the params.
func (p ListJournalParams) ToFilter() (domain.JournalFilter, error) {
	var f domain.JournalFilter
	verr := &apperrors.ValidationError{}
	if p.DateFrom != "" {
		t, err := time.Parse(dateLayout, p.DateFrom)
		if err != nil {
			verr.Add("dateFrom", "must be a date formatted YYYY-MM-DD")
		} else {
			f.DateFrom = &t
		}
	}
	if p.DateTo != "" {
		t, err := time.Parse(dateLayout, p.DateTo)
		if err != nil {
			verr.Add("dateTo", "must be a date formatted YYYY-MM-DD")
		} else {
			f.DateTo = &t
		}
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		verr.Add("dateTo", "must not be before dateFrom")
	}
	if p.Type != "" {
		t := domain.JournalEntryType(p.Type)
		f.Type = &t
	}
	return f, verr.OrNil()
}

// AppendEntryRequest records a journal entry directly. Entries created by bills
// and receipts never go through this request.
type AppendEntryRequest struct {
	ClientID    string                  `json:"clientId" validate:"required"`
	Date        time.Time               `json:"date" validate:"required"`
	Type        domain.JournalEntryType `json:"type" validate:"required,oneof=bill receipt"`
	Amount      decimal.Decimal         `json:"amount" validate:"gte=0"`
	Particular  string                  `json:"particular" validate:"required"`
	ReferenceID string                  `json:"referenceId"`
	Notes       string                  `json:"notes"`
}

type LedgerRowResponse struct {
	EntryID     string          `json:"entryId"`
	Date        time.Time       `json:"date"`
	Particular  string          `json:"particular"`
	Type        string          `json:"type"`
	ReferenceID string          `json:"referenceId,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	Dr          decimal.Decimal `json:"dr"`
	Cr          decimal.Decimal `json:"cr"`
	Balance     decimal.Decimal `json:"balance"`
}

// ClientJournalResponse is one page of a client's journal with running balances.
type ClientJournalResponse struct {
	ClientID       string              `json:"clientId"`
	OpeningBalance decimal.Decimal     `json:"openingBalance"`
	Entries        []LedgerRowResponse `json:"entries"`
	Pagination     PaginationResponse  `json:"pagination"`
}

type JournalSummaryResponse struct {
	ClientID       string          `json:"clientId"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

func ToLedgerRowResponse(r domain.LedgerRow) LedgerRowResponse {
	return LedgerRowResponse{
		EntryID:     r.EntryID,
		Date:        r.Date,
		Particular:  r.Particular,
		Type:        string(r.Type),
		ReferenceID: r.ReferenceID,
		Notes:       r.Notes,
		Dr:          r.Dr,
		Cr:          r.Cr,
		Balance:     r.Balance,
	}
}

func ToClientJournalResponse(p *domain.LedgerPage) ClientJournalResponse {
	resp := ClientJournalResponse{
		ClientID:       p.ClientID,
		OpeningBalance: p.OpeningBalance,
		Entries:        make([]LedgerRowResponse, len(p.Entries)),
		Pagination:     ToPaginationResponse(p.Pagination),
	}
	for i, r := range p.Entries {
		resp.Entries[i] = ToLedgerRowResponse(r)
	}
	return resp
}

func ToJournalSummaryResponse(s *domain.JournalSummary) JournalSummaryResponse {
	return JournalSummaryResponse{
		ClientID:       s.ClientID,
		OpeningBalance: s.OpeningBalance,
		TotalDebit:     s.TotalDebit,
		TotalCredit:    s.TotalCredit,
		ClosingBalance: s.ClosingBalance,
	}
}

// JournalEntryResponse is a stored journal entry without balance annotations.
type JournalEntryResponse struct {
	EntryID     string          `json:"entryId"`
	ClientID    string          `json:"clientId"`
	Date        time.Time       `json:"date"`
	Particular  string          `json:"particular"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	ReferenceID string          `json:"referenceId,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:     e.EntryID,
		ClientID:    e.ClientID,
		Date:        e.Date,
		Particular:  e.Particular,
		Type:        string(e.Type),
		Amount:      e.Amount,
		ReferenceID: e.ReferenceID,
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
	}
}
