package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/billing_ledger/internal/core/ports/services"
	"github.com/SscSPs/billing_ledger/internal/core/services"
	"github.com/SscSPs/billing_ledger/internal/dto"
	"github.com/SscSPs/billing_ledger/internal/platform/config"
	"github.com/SscSPs/billing_ledger/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testUserID = "user-1"

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:            "test-secret",
		JWTIssuer:            "billing-ledger-test",
		JWTExpiryDuration:    time.Hour,
		OperationTimeout:     5 * time.Second,
		NumberingMaxAttempts: 3,
		NumberingBackoff:     time.Millisecond,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ledgerSuite runs services against a freshly migrated SQLite database per test.
type ledgerSuite struct {
	suite.Suite
	ctx   context.Context
	repos portsrepo.RepositoryProvider
	svc   *portssvc.ServiceContainer
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.repos = testutil.NewSQLiteProvider(s.T())
	s.svc = services.NewServiceContainer(testConfig(), s.repos, services.WithClock(func() time.Time { return fixedNow }))
}

func (s *ledgerSuite) createClient(name string, opening string) *domain.Client {
	c, err := s.svc.Client.CreateClient(s.ctx, dto.CreateClientRequest{Name: name, OpeningBalance: dec(opening)}, testUserID)
	s.Require().NoError(err)
	return c
}

func (s *ledgerSuite) createMethod(t domain.PaymentType, balance string) *domain.PaymentMethod {
	pm, err := s.svc.PaymentMethod.CreatePaymentMethod(s.ctx, dto.CreatePaymentMethodRequest{
		Type:          t,
		Name:          string(t) + " account",
		AccountName:   "Shop",
		AccountNumber: "000123",
		Balance:       dec(balance),
	}, testUserID)
	s.Require().NoError(err)
	return pm
}

func (s *ledgerSuite) balanceOf(paymentMethodID string) decimal.Decimal {
	pm, err := s.repos.PaymentMethods.FindPaymentMethodByID(s.ctx, paymentMethodID)
	s.Require().NoError(err)
	return pm.Balance
}

func (s *ledgerSuite) createBill(clientID string, total string) *domain.Document {
	doc, err := s.svc.Document.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Kind:     domain.KindBill,
		Date:     day(2024, 3, 1),
		ClientID: clientID,
		Items:    []dto.LineItemRequest{{Item: "Service", Quantity: dec("1"), Rate: dec(total)}},
	}, testUserID)
	s.Require().NoError(err)
	return doc
}

func (s *ledgerSuite) journal(clientID string) *domain.LedgerPage {
	page, err := s.svc.Ledger.ListClientJournal(s.ctx, clientID, dto.ListJournalParams{Limit: 100})
	s.Require().NoError(err)
	return page
}

func requireDecimal(t testing.TB, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}
