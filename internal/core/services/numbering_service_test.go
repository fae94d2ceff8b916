package services_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/billing_ledger/internal/apperrors"
	"github.com/SscSPs/billing_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/billing_ledger/internal/core/services"
	"github.com/SscSPs/billing_ledger/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock DocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindLatestDocument(ctx context.Context, kind domain.DocumentKind) (*domain.Document, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListDocuments(ctx context.Context, filter portsrepo.DocumentFilter) ([]domain.Document, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockDocumentRepository) UpdateDocument(ctx context.Context, doc domain.Document) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockDocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	return m.Called(ctx, documentID).Error(0)
}

// passthroughUoW runs fn directly against repos without a real transaction.
type passthroughUoW struct {
	repos portsrepo.RepositorySet
}

func (u passthroughUoW) WithinTx(ctx context.Context, fn portsrepo.TxFunc) error {
	return fn(ctx, u.repos)
}

// --- Retry behaviour ---

func TestNumbering_RetriesOnDuplicate(t *testing.T) {
	docs := new(MockDocumentRepository)
	docs.On("FindLatestDocument", mock.Anything, domain.KindBill).
		Return(&domain.Document{Number: "BILL-2024-0007"}, nil).Once()
	docs.On("FindLatestDocument", mock.Anything, domain.KindBill).
		Return(&domain.Document{Number: "BILL-2024-0008"}, nil).Once()

	svc := services.NewNumberingService(passthroughUoW{repos: portsrepo.RepositorySet{Documents: docs}}, docs, nil, 3, time.Millisecond,
		services.BaseService{Clock: func() time.Time { return fixedNow }})

	var tried []string
	number, err := svc.Issue(context.Background(), domain.KindBill, func(_ context.Context, _ portsrepo.RepositorySet, number string) error {
		tried = append(tried, number)
		if len(tried) == 1 {
			return fmt.Errorf("save document: %w", apperrors.ErrNumberTaken)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "BILL-2024-0009", number)
	assert.Equal(t, []string{"BILL-2024-0008", "BILL-2024-0009"}, tried)
	docs.AssertExpectations(t)
}

func TestNumbering_ExhaustsAfterMaxAttempts(t *testing.T) {
	docs := new(MockDocumentRepository)
	docs.On("FindLatestDocument", mock.Anything, domain.KindEstimate).Return(nil, apperrors.ErrNotFound)

	svc := services.NewNumberingService(passthroughUoW{repos: portsrepo.RepositorySet{Documents: docs}}, docs, nil, 3, time.Millisecond,
		services.BaseService{Clock: func() time.Time { return fixedNow }})

	calls := 0
	_, err := svc.Issue(context.Background(), domain.KindEstimate, func(_ context.Context, _ portsrepo.RepositorySet, number string) error {
		calls++
		assert.Equal(t, "EST-2024-0001", number)
		return apperrors.ErrNumberTaken
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrNumberGenerationExhausted)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, 3, calls)
}

func TestNumbering_OtherErrorsAreNotRetried(t *testing.T) {
	docs := new(MockDocumentRepository)
	docs.On("FindLatestDocument", mock.Anything, domain.KindBill).Return(nil, apperrors.ErrNotFound)

	svc := services.NewNumberingService(passthroughUoW{repos: portsrepo.RepositorySet{Documents: docs}}, docs, nil, 3, time.Millisecond,
		services.BaseService{Clock: func() time.Time { return fixedNow }})

	boom := errors.New("disk full")
	calls := 0
	_, err := svc.Issue(context.Background(), domain.KindBill, func(context.Context, portsrepo.RepositorySet, string) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestNumbering_OtherDuplicatesAreNotRetried(t *testing.T) {
	docs := new(MockDocumentRepository)
	docs.On("FindLatestDocument", mock.Anything, domain.KindBill).Return(nil, apperrors.ErrNotFound)

	svc := services.NewNumberingService(passthroughUoW{repos: portsrepo.RepositorySet{Documents: docs}}, docs, nil, 3, time.Millisecond,
		services.BaseService{Clock: func() time.Time { return fixedNow }})

	calls := 0
	_, err := svc.Issue(context.Background(), domain.KindBill, func(context.Context, portsrepo.RepositorySet, string) error {
		calls++
		return fmt.Errorf("save journal entry: %w", apperrors.ErrDuplicate)
	})

	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.NotErrorIs(t, err, services.ErrNumberGenerationExhausted)
	assert.Equal(t, 1, calls)
}

func TestNumbering_UsesLocker(t *testing.T) {
	docs := new(MockDocumentRepository)
	docs.On("FindLatestDocument", mock.Anything, domain.KindBill).Return(nil, apperrors.ErrNotFound)
	locker := &recordingLocker{}

	svc := services.NewNumberingService(passthroughUoW{repos: portsrepo.RepositorySet{Documents: docs}}, docs, locker, 3, time.Millisecond,
		services.BaseService{Clock: func() time.Time { return fixedNow }})

	_, err := svc.Issue(context.Background(), domain.KindBill, func(context.Context, portsrepo.RepositorySet, string) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, []string{"numbering:bill"}, locker.acquired)
	assert.Equal(t, 1, locker.released)
}

func TestNumbering_NextNumberRejectsUnknownKind(t *testing.T) {
	docs := new(MockDocumentRepository)
	svc := services.NewNumberingService(passthroughUoW{}, docs, nil, 3, time.Millisecond, services.BaseService{})

	_, err := svc.NextNumber(context.Background(), domain.DocumentKind("invoice"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	docs.AssertNotCalled(t, "FindLatestDocument", mock.Anything, mock.Anything)
}

type recordingLocker struct {
	mu       sync.Mutex
	acquired []string
	released int
}

func (l *recordingLocker) Acquire(_ context.Context, key string) (func(context.Context), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.acquired = append(l.acquired, key)
	return func(context.Context) {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.released++
	}, nil
}

// --- Against SQLite ---

type NumberingServiceTestSuite struct {
	ledgerSuite
}

func TestNumberingServiceSuite(t *testing.T) {
	suite.Run(t, new(NumberingServiceTestSuite))
}

func (s *NumberingServiceTestSuite) estimateRequest(clientID string) dto.CreateDocumentRequest {
	return dto.CreateDocumentRequest{
		Kind:     domain.KindEstimate,
		Date:     day(2024, 3, 1),
		ClientID: clientID,
		Items:    []dto.LineItemRequest{{Item: "Work", Quantity: dec("1"), Rate: dec("10")}},
	}
}

func (s *NumberingServiceTestSuite) TestSequentialNumbersPerKind() {
	client := s.createClient("Acme", "0")

	next, err := s.svc.Numbering.NextNumber(s.ctx, domain.KindBill)
	s.Require().NoError(err)
	s.Equal("BILL-2024-0001", next)

	b1 := s.createBill(client.ClientID, "100")
	b2 := s.createBill(client.ClientID, "100")
	est, err := s.svc.Document.CreateDocument(s.ctx, s.estimateRequest(client.ClientID), testUserID)
	s.Require().NoError(err)

	s.Equal("BILL-2024-0001", b1.Number)
	s.Equal("BILL-2024-0002", b2.Number)
	s.Equal("EST-2024-0001", est.Number)

	next, err = s.svc.Numbering.NextNumber(s.ctx, domain.KindBill)
	s.Require().NoError(err)
	s.Equal("BILL-2024-0003", next)
}

func (s *NumberingServiceTestSuite) TestYearBoundaryResetsSequence() {
	client := s.createClient("Acme", "0")
	s.createBill(client.ClientID, "100")
	s.createBill(client.ClientID, "100")

	nextYear := services.NewServiceContainer(testConfig(), s.repos,
		services.WithClock(func() time.Time { return time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC) }))

	doc, err := nextYear.Document.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Kind:     domain.KindBill,
		Date:     day(2025, 1, 1),
		ClientID: client.ClientID,
		Items:    []dto.LineItemRequest{{Item: "Work", Quantity: dec("1"), Rate: dec("10")}},
	}, testUserID)
	s.Require().NoError(err)
	s.Equal("BILL-2025-0001", doc.Number)
}

func (s *NumberingServiceTestSuite) TestConcurrentIssueIsUniqueAndGapless() {
	client := s.createClient("Acme", "0")
	const n = 12

	var wg sync.WaitGroup
	numbers := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc, err := s.svc.Document.CreateDocument(s.ctx, s.estimateRequest(client.ClientID), testUserID)
			errs[i] = err
			if err == nil {
				numbers[i] = doc.Number
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		s.Require().NoError(err)
	}
	sort.Strings(numbers)
	for i, number := range numbers {
		s.Equal(fmt.Sprintf("EST-2024-%04d", i+1), number)
	}
}
