package services_test

import (
	"testing"
	"time"

	"github.com/SscSPs/billing_ledger/internal/apperrors"
	"github.com/SscSPs/billing_ledger/internal/core/domain"
	"github.com/SscSPs/billing_ledger/internal/core/services"
	"github.com/SscSPs/billing_ledger/internal/dto"
	"github.com/stretchr/testify/suite"
)

type DocumentServiceTestSuite struct {
	ledgerSuite
}

func TestDocumentServiceSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}

func (s *DocumentServiceTestSuite) TestCreateBill_ComputesTotalsAndPostsDebit() {
	client := s.createClient("Acme", "0")

	doc, err := s.svc.Document.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Kind:     domain.KindBill,
		Date:     day(2024, 3, 1),
		ClientID: client.ClientID,
		Items: []dto.LineItemRequest{
			{Item: "Design", Quantity: dec("2"), Rate: dec("50")},
			{Item: "Hosting", Quantity: dec("3"), Rate: dec("33.333"), Total: dec("100.00")},
		},
		DiscountType:  domain.DiscountRate,
		DiscountValue: dec("10"),
	}, testUserID)
	s.Require().NoError(err)

	requireDecimal(s.T(), "200", doc.SubTotal)
	requireDecimal(s.T(), "20", doc.DiscountAmount)
	requireDecimal(s.T(), "180", doc.Total)
	s.Equal("BILL-2024-0001", doc.Number)

	stored, err := s.svc.Document.GetDocumentByID(s.ctx, doc.DocumentID)
	s.Require().NoError(err)
	s.Len(stored.Items, 2)
	requireDecimal(s.T(), "100", stored.Items[1].Total)
	requireDecimal(s.T(), "180", stored.Total)

	page := s.journal(client.ClientID)
	s.Require().Len(page.Entries, 1)
	row := page.Entries[0]
	s.Equal(domain.EntryBill, row.Type)
	s.Equal("Bill BILL-2024-0001", row.Particular)
	s.Equal(doc.DocumentID, row.ReferenceID)
	requireDecimal(s.T(), "180", row.Dr)
	requireDecimal(s.T(), "180", row.Balance)
}

func (s *DocumentServiceTestSuite) TestCreateEstimate_DoesNotTouchJournal() {
	client := s.createClient("Acme", "0")

	doc, err := s.svc.Document.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Kind:          domain.KindEstimate,
		Date:          day(2024, 3, 1),
		ClientID:      client.ClientID,
		Items:         []dto.LineItemRequest{{Item: "Draft", Quantity: dec("1"), Rate: dec("40")}},
		DiscountValue: dec("100"),
	}, testUserID)
	s.Require().NoError(err)

	s.Equal(domain.DiscountAmount, doc.DiscountType)
	requireDecimal(s.T(), "40", doc.DiscountAmount)
	requireDecimal(s.T(), "0", doc.Total)
	s.Empty(s.journal(client.ClientID).Entries)
}

func (s *DocumentServiceTestSuite) TestCreateDocument_UnknownClient() {
	_, err := s.svc.Document.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Kind:     domain.KindBill,
		Date:     day(2024, 3, 1),
		ClientID: "missing",
		Items:    []dto.LineItemRequest{{Item: "x", Quantity: dec("1"), Rate: dec("1")}},
	}, testUserID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	docs, err := s.svc.Document.ListDocuments(s.ctx, dto.ListDocumentsParams{})
	s.Require().NoError(err)
	s.Empty(docs)
}

func (s *DocumentServiceTestSuite) TestCreateDocument_Validation() {
	client := s.createClient("Acme", "0")

	_, err := s.svc.Document.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Kind:     domain.KindBill,
		Date:     day(2024, 3, 1),
		ClientID: client.ClientID,
	}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Document.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Kind:     "invoice",
		Date:     day(2024, 3, 1),
		ClientID: client.ClientID,
		Items:    []dto.LineItemRequest{{Item: "x", Quantity: dec("1"), Rate: dec("1")}},
	}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *DocumentServiceTestSuite) TestUpdateEstimate_RecomputesAndKeepsNumber() {
	client := s.createClient("Acme", "0")
	est, err := s.svc.Document.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Kind:     domain.KindEstimate,
		Date:     day(2024, 3, 1),
		ClientID: client.ClientID,
		Items:    []dto.LineItemRequest{{Item: "Draft", Quantity: dec("1"), Rate: dec("40")}},
	}, testUserID)
	s.Require().NoError(err)

	updated, err := s.svc.Document.UpdateEstimate(s.ctx, est.DocumentID, dto.UpdateEstimateRequest{
		Date:          day(2024, 3, 2),
		ClientID:      client.ClientID,
		Items:         []dto.LineItemRequest{{Item: "Final", Quantity: dec("4"), Rate: dec("25")}},
		DiscountType:  domain.DiscountAmount,
		DiscountValue: dec("15"),
	}, "user-2")
	s.Require().NoError(err)

	s.Equal(est.Number, updated.Number)
	requireDecimal(s.T(), "100", updated.SubTotal)
	requireDecimal(s.T(), "85", updated.Total)
	s.Equal("user-2", updated.LastUpdatedBy)

	stored, err := s.svc.Document.GetDocumentByID(s.ctx, est.DocumentID)
	s.Require().NoError(err)
	s.Require().Len(stored.Items, 1)
	s.Equal("Final", stored.Items[0].Item)
	requireDecimal(s.T(), "85", stored.Total)
}

func (s *DocumentServiceTestSuite) TestUpdateBill_IsRejected() {
	client := s.createClient("Acme", "0")
	bill := s.createBill(client.ClientID, "200")

	_, err := s.svc.Document.UpdateEstimate(s.ctx, bill.DocumentID, dto.UpdateEstimateRequest{
		Date:     day(2024, 3, 2),
		ClientID: client.ClientID,
		Items:    []dto.LineItemRequest{{Item: "x", Quantity: dec("1"), Rate: dec("1")}},
	}, testUserID)
	s.ErrorIs(err, services.ErrBillImmutable)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *DocumentServiceTestSuite) TestDeleteBill_RemovesJournalEntry() {
	client := s.createClient("Acme", "0")
	bill := s.createBill(client.ClientID, "200")
	s.Len(s.journal(client.ClientID).Entries, 1)

	s.Require().NoError(s.svc.Document.DeleteDocument(s.ctx, bill.DocumentID, testUserID))

	_, err := s.svc.Document.GetDocumentByID(s.ctx, bill.DocumentID)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Empty(s.journal(client.ClientID).Entries)

	err = s.svc.Document.DeleteDocument(s.ctx, bill.DocumentID, testUserID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *DocumentServiceTestSuite) TestListDocuments_FiltersByKindAndClient() {
	acme := s.createClient("Acme", "0")
	globex := s.createClient("Globex", "0")
	s.createBill(acme.ClientID, "10")
	s.createBill(globex.ClientID, "20")
	_, err := s.svc.Document.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Kind:     domain.KindEstimate,
		Date:     day(2024, 3, 1),
		ClientID: acme.ClientID,
		Items:    []dto.LineItemRequest{{Item: "x", Quantity: dec("1"), Rate: dec("1")}},
	}, testUserID)
	s.Require().NoError(err)

	bills, err := s.svc.Document.ListDocuments(s.ctx, dto.ListDocumentsParams{Kind: domain.KindBill})
	s.Require().NoError(err)
	s.Len(bills, 2)

	acmeDocs, err := s.svc.Document.ListDocuments(s.ctx, dto.ListDocumentsParams{ClientID: acme.ClientID})
	s.Require().NoError(err)
	s.Len(acmeDocs, 2)
}

func (s *DocumentServiceTestSuite) TestCreateBill_NumbersFollowInsertionWhenClockGoesBackwards() {
	now := fixedNow
	s.svc = services.NewServiceContainer(testConfig(), s.repos, services.WithClock(func() time.Time {
		now = now.Add(-time.Minute)
		return now
	}))
	client := s.createClient("Acme", "0")

	numbers := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		numbers = append(numbers, s.createBill(client.ClientID, "10").Number)
	}
	s.Equal([]string{"BILL-2024-0001", "BILL-2024-0002", "BILL-2024-0003"}, numbers)

	next, err := s.svc.Numbering.NextNumber(s.ctx, domain.KindBill)
	s.Require().NoError(err)
	s.Equal("BILL-2024-0004", next)
}
