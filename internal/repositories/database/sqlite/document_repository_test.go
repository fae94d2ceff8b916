package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/billing_ledger/internal/apperrors"
	"github.com/SscSPs/billing_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/billing_ledger/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type DocumentRepositoryTestSuite struct {
	suite.Suite
	ctx   context.Context
	repos portsrepo.RepositoryProvider
}

func TestDocumentRepositorySuite(t *testing.T) {
	suite.Run(t, new(DocumentRepositoryTestSuite))
}

func (s *DocumentRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repos = testutil.NewSQLiteProvider(s.T())
	s.Require().NoError(s.repos.Clients.SaveClient(s.ctx, domain.Client{
		ClientID:       "client-1",
		Name:           "Acme",
		OpeningBalance: decimal.Zero,
		AuditFields:    domain.AuditFields{CreatedAt: time.Now().UTC(), LastUpdatedAt: time.Now().UTC()},
	}))
}

func (s *DocumentRepositoryTestSuite) bill(id, number string, createdAt time.Time) domain.Document {
	return domain.Document{
		DocumentID:   id,
		Kind:         domain.KindBill,
		Number:       number,
		Date:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		ClientID:     "client-1",
		Items:        []domain.LineItem{{Item: "Work", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(10), Total: decimal.NewFromInt(10)}},
		DiscountType: domain.DiscountAmount,
		Totals:       domain.Totals{SubTotal: decimal.NewFromInt(10), Total: decimal.NewFromInt(10)},
		AuditFields:  domain.AuditFields{CreatedAt: createdAt, LastUpdatedAt: createdAt},
	}
}

func (s *DocumentRepositoryTestSuite) TestSaveDocument_TakenNumber() {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	s.Require().NoError(s.repos.Documents.SaveDocument(s.ctx, s.bill("doc-1", "BILL-2024-0001", now)))

	err := s.repos.Documents.SaveDocument(s.ctx, s.bill("doc-2", "BILL-2024-0001", now))
	s.ErrorIs(err, apperrors.ErrNumberTaken)
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *DocumentRepositoryTestSuite) TestSaveDocument_DuplicateIDIsNotANumberClash() {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	s.Require().NoError(s.repos.Documents.SaveDocument(s.ctx, s.bill("doc-1", "BILL-2024-0001", now)))

	err := s.repos.Documents.SaveDocument(s.ctx, s.bill("doc-1", "BILL-2024-0002", now))
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.NotErrorIs(err, apperrors.ErrNumberTaken)
}

func (s *DocumentRepositoryTestSuite) TestFindLatestDocument_UsesInsertionOrder() {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	s.Require().NoError(s.repos.Documents.SaveDocument(s.ctx, s.bill("doc-1", "BILL-2024-0001", now)))
	s.Require().NoError(s.repos.Documents.SaveDocument(s.ctx, s.bill("doc-2", "BILL-2024-0002", now.Add(-time.Hour))))

	latest, err := s.repos.Documents.FindLatestDocument(s.ctx, domain.KindBill)
	s.Require().NoError(err)
	s.Equal("BILL-2024-0002", latest.Number)

	_, err = s.repos.Documents.FindLatestDocument(s.ctx, domain.KindEstimate)
	s.ErrorIs(err, apperrors.ErrNotFound)
}
