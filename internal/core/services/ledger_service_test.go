package services_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/SscSPs/billing_ledger/internal/apperrors"
	"github.com/SscSPs/billing_ledger/internal/core/domain"
	"github.com/SscSPs/billing_ledger/internal/core/services"
	"github.com/SscSPs/billing_ledger/internal/dto"
	"github.com/SscSPs/billing_ledger/internal/export"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

type LedgerServiceTestSuite struct {
	ledgerSuite
	client *domain.Client
}

func TestLedgerServiceSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.ledgerSuite.SetupTest()
	s.client = s.createClient("Acme", "100")

	// Appended out of date order; reads fold by (date, insertion).
	entries := []dto.AppendEntryRequest{
		{Date: day(2024, 1, 10), Type: domain.EntryBill, Amount: dec("50"), Particular: "Bill A"},
		{Date: day(2024, 1, 5), Type: domain.EntryReceipt, Amount: dec("30"), Particular: "Receipt A"},
		{Date: day(2024, 1, 10), Type: domain.EntryReceipt, Amount: dec("20"), Particular: "Receipt B"},
		{Date: day(2024, 2, 1), Type: domain.EntryBill, Amount: dec("75.5"), Particular: "Bill B"},
		{Date: day(2024, 2, 3), Type: domain.EntryReceipt, Amount: dec("10"), Particular: "Receipt C"},
	}
	for _, e := range entries {
		e.ClientID = s.client.ClientID
		_, err := s.svc.Ledger.AppendEntry(s.ctx, e, testUserID)
		s.Require().NoError(err)
	}
}

func (s *LedgerServiceTestSuite) TestRunningBalanceFold() {
	page := s.journal(s.client.ClientID)
	s.Require().Len(page.Entries, 5)
	requireDecimal(s.T(), "100", page.OpeningBalance)

	wantOrder := []string{"Receipt A", "Bill A", "Receipt B", "Bill B", "Receipt C"}
	wantBalance := []string{"70", "120", "100", "175.5", "165.5"}
	for i, row := range page.Entries {
		s.Equal(wantOrder[i], row.Particular)
		requireDecimal(s.T(), wantBalance[i], row.Balance)
	}
	requireDecimal(s.T(), "50", page.Entries[1].Dr)
	requireDecimal(s.T(), "0", page.Entries[1].Cr)
	requireDecimal(s.T(), "30", page.Entries[0].Cr)
}

func (s *LedgerServiceTestSuite) TestBalancesIndependentOfPagination() {
	full := s.journal(s.client.ClientID)

	var paged []domain.LedgerRow
	for p := 1; p <= 3; p++ {
		page, err := s.svc.Ledger.ListClientJournal(s.ctx, s.client.ClientID, dto.ListJournalParams{Page: p, Limit: 2})
		s.Require().NoError(err)
		s.Equal(5, page.Pagination.Total)
		s.Equal(3, page.Pagination.TotalPages)
		paged = append(paged, page.Entries...)
	}

	s.Require().Len(paged, len(full.Entries))
	for i := range paged {
		s.Equal(full.Entries[i].EntryID, paged[i].EntryID)
		requireDecimal(s.T(), full.Entries[i].Balance.String(), paged[i].Balance)
	}

	past, err := s.svc.Ledger.ListClientJournal(s.ctx, s.client.ClientID, dto.ListJournalParams{Page: 9, Limit: 2})
	s.Require().NoError(err)
	s.Empty(past.Entries)
}

func (s *LedgerServiceTestSuite) TestHugePageIsEmpty() {
	page, err := s.svc.Ledger.ListClientJournal(s.ctx, s.client.ClientID, dto.ListJournalParams{Page: math.MaxInt/10 + 2, Limit: 20})
	s.Require().NoError(err)
	s.Empty(page.Entries)
	s.Equal(5, page.Pagination.Total)

	page, err = s.svc.Ledger.ListClientJournal(s.ctx, s.client.ClientID, dto.ListJournalParams{Page: math.MaxInt, Limit: 100})
	s.Require().NoError(err)
	s.Empty(page.Entries)
}

func (s *LedgerServiceTestSuite) TestFiltersKeepTrueBalances() {
	page, err := s.svc.Ledger.ListClientJournal(s.ctx, s.client.ClientID, dto.ListJournalParams{Type: "bill"})
	s.Require().NoError(err)
	s.Require().Len(page.Entries, 2)
	requireDecimal(s.T(), "120", page.Entries[0].Balance)
	requireDecimal(s.T(), "175.5", page.Entries[1].Balance)

	page, err = s.svc.Ledger.ListClientJournal(s.ctx, s.client.ClientID, dto.ListJournalParams{DateFrom: "2024-01-10", DateTo: "2024-01-31"})
	s.Require().NoError(err)
	s.Require().Len(page.Entries, 2)
	s.Equal("Bill A", page.Entries[0].Particular)
	requireDecimal(s.T(), "100", page.Entries[1].Balance)
	s.Equal(2, page.Pagination.Total)
}

func (s *LedgerServiceTestSuite) TestInvalidFilters() {
	_, err := s.svc.Ledger.ListClientJournal(s.ctx, s.client.ClientID, dto.ListJournalParams{DateFrom: "10/01/2024"})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Ledger.ListClientJournal(s.ctx, s.client.ClientID, dto.ListJournalParams{Type: "refund"})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Ledger.ListClientJournal(s.ctx, s.client.ClientID, dto.ListJournalParams{DateFrom: "2024-02-01", DateTo: "2024-01-01"})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerServiceTestSuite) TestUnknownClient() {
	_, err := s.svc.Ledger.ListClientJournal(s.ctx, "missing", dto.ListJournalParams{})
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.Ledger.AppendEntry(s.ctx, dto.AppendEntryRequest{
		ClientID:   "missing",
		Date:       day(2024, 1, 1),
		Type:       domain.EntryBill,
		Amount:     dec("1"),
		Particular: "x",
	}, testUserID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerServiceTestSuite) TestSummary() {
	summary, err := s.svc.Ledger.GetClientJournalSummary(s.ctx, s.client.ClientID)
	s.Require().NoError(err)
	requireDecimal(s.T(), "100", summary.OpeningBalance)
	requireDecimal(s.T(), "125.5", summary.TotalDebit)
	requireDecimal(s.T(), "60", summary.TotalCredit)
	requireDecimal(s.T(), "165.5", summary.ClosingBalance)
}

func (s *LedgerServiceTestSuite) TestExportStatement() {
	data, err := s.svc.Ledger.ExportClientStatement(s.ctx, s.client.ClientID, dto.ListJournalParams{Type: "receipt"})
	s.Require().NoError(err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	s.Require().NoError(err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetName)
	s.Require().NoError(err)
	// client, opening, blank, headings, three receipts, totals
	s.Len(rows, 8)
	s.Equal("Receipt A", rows[4][1])
	s.Equal("Total", rows[7][1])
}

func (s *LedgerServiceTestSuite) TestAppendEntry_RejectsOwnedReference() {
	bank := s.createMethod(domain.PaymentBank, "0")
	receipt, err := s.svc.Receipt.CreateReceipt(s.ctx, dto.ReceiptRequest{
		Date:         day(2024, 2, 5),
		ClientID:     s.client.ClientID,
		Transactions: []dto.TransactionRequest{{Amount: dec("40"), PaymentType: domain.PaymentBank, PaymentMethodID: bank.PaymentMethodID}},
	}, testUserID)
	s.Require().NoError(err)
	bill := s.createBill(s.client.ClientID, "25")

	manual := func(t domain.JournalEntryType, ref string) error {
		_, err := s.svc.Ledger.AppendEntry(s.ctx, dto.AppendEntryRequest{
			ClientID:    s.client.ClientID,
			Date:        day(2024, 2, 6),
			Type:        t,
			Amount:      dec("5"),
			Particular:  "Adjustment",
			ReferenceID: ref,
		}, testUserID)
		return err
	}

	err = manual(domain.EntryReceipt, receipt.ReceiptID)
	s.ErrorIs(err, services.ErrReferenceInUse)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.ErrorIs(manual(domain.EntryBill, bill.DocumentID), services.ErrReferenceInUse)

	s.Require().NoError(manual(domain.EntryBill, "ext-77"))
	s.ErrorIs(manual(domain.EntryReceipt, "ext-77"), services.ErrReferenceInUse)
	s.Len(s.journal(s.client.ClientID).Entries, 8)

	// The receipt still resolves to its own entry.
	s.Require().NoError(s.svc.Receipt.DeleteReceipt(s.ctx, receipt.ReceiptID, testUserID))
	requireDecimal(s.T(), "0", s.balanceOf(bank.PaymentMethodID))
	s.Len(s.journal(s.client.ClientID).Entries, 7)
}
