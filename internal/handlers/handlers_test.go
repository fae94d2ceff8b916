package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/billing_ledger/internal/apperrors"
	"github.com/SscSPs/billing_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/billing_ledger/internal/core/ports/services"
	"github.com/SscSPs/billing_ledger/internal/dto"
	"github.com/SscSPs/billing_ledger/internal/export"
	"github.com/SscSPs/billing_ledger/internal/handlers"
	"github.com/SscSPs/billing_ledger/internal/platform/config"
	"github.com/SscSPs/billing_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "billing-ledger-test"
	testUserID = "operator"
)

type HandlerTestSuite struct {
	suite.Suite
	router *gin.Engine

	clients   *MockClientService
	documents *MockDocumentService
	numbering *MockNumberingService
	receipts  *MockReceiptService
	methods   *MockPaymentMethodService
	ledger    *MockLedgerService
	auth      *MockAuthService
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.clients = new(MockClientService)
	suite.documents = new(MockDocumentService)
	suite.numbering = new(MockNumberingService)
	suite.receipts = new(MockReceiptService)
	suite.methods = new(MockPaymentMethodService)
	suite.ledger = new(MockLedgerService)
	suite.auth = new(MockAuthService)

	cfg := &config.Config{JWTSecret: testSecret, JWTIssuer: testIssuer, IsProduction: true}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Auth:          suite.auth,
		Client:        suite.clients,
		Document:      suite.documents,
		Ledger:        suite.ledger,
		Numbering:     suite.numbering,
		PaymentMethod: suite.methods,
		Receipt:       suite.receipts,
	})
}

func (suite *HandlerTestSuite) generateTestToken() string {
	token, _, err := utils.IssueAccessToken(testUserID, testSecret, testIssuer, time.Hour, time.Now())
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *HandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken())
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decodeError(w *httptest.ResponseRecorder) handlers.ErrorResponse {
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (suite *HandlerTestSuite) TestHealth() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestRequiresToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.clients.AssertNotCalled(suite.T(), "ListClients", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateClient_Success() {
	client := &domain.Client{ClientID: "c1", Name: "Acme", OpeningBalance: decimal.NewFromInt(100)}
	suite.clients.On("CreateClient", mock.Anything,
		mock.MatchedBy(func(r dto.CreateClientRequest) bool { return r.Name == "Acme" }),
		testUserID,
	).Return(client, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/clients", `{"name":"Acme","openingBalance":100}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ClientResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("c1", resp.ClientID)
	suite.True(resp.OpeningBalance.Equal(decimal.NewFromInt(100)))
	suite.clients.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetClient_NotFound() {
	suite.clients.On("GetClientByID", mock.Anything, "missing").
		Return(nil, apperrors.NewNotFoundError("client")).Once()

	w := suite.do(http.MethodGet, "/api/v1/clients/missing", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestCreateDocument_MalformedBody() {
	w := suite.do(http.MethodPost, "/api/v1/documents", `{"kind":`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.documents.AssertNotCalled(suite.T(), "CreateDocument", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateDocument_ValidationFields() {
	verr := apperrors.NewValidationError("items", "must have at least 1 entries")
	suite.documents.On("CreateDocument", mock.Anything, mock.Anything, testUserID).Return(nil, verr).Once()

	w := suite.do(http.MethodPost, "/api/v1/documents", `{"kind":"bill","clientId":"c1","date":"2024-03-15T00:00:00Z"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	resp := suite.decodeError(w)
	suite.Equal(apperrors.ErrValidation.Error(), resp.Error)
	suite.Equal("must have at least 1 entries", resp.Fields["items"])
}

func (suite *HandlerTestSuite) TestCreateDocument_Success() {
	doc := &domain.Document{
		DocumentID: "d1",
		Kind:       domain.KindBill,
		Number:     "BILL-2024-0001",
		ClientID:   "c1",
		Totals:     domain.Totals{SubTotal: decimal.NewFromInt(200), DiscountAmount: decimal.NewFromInt(20), Total: decimal.NewFromInt(180)},
	}
	suite.documents.On("CreateDocument", mock.Anything,
		mock.MatchedBy(func(r dto.CreateDocumentRequest) bool {
			return r.Kind == domain.KindBill && len(r.Items) == 1 && r.Items[0].Rate.Equal(decimal.NewFromInt(100))
		}),
		testUserID,
	).Return(doc, nil).Once()

	body := `{"kind":"bill","clientId":"c1","date":"2024-03-15T00:00:00Z",
		"items":[{"item":"Widget","quantity":2,"rate":100}],"discountType":"rate","discountValue":10}`
	w := suite.do(http.MethodPost, "/api/v1/documents", body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.DocumentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("BILL-2024-0001", resp.Number)
	suite.True(resp.Total.Equal(decimal.NewFromInt(180)))
}

func (suite *HandlerTestSuite) TestNextNumber() {
	suite.numbering.On("NextNumber", mock.Anything, domain.KindEstimate).Return("EST-2024-0004", nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/documents/next-number?kind=estimate", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp handlers.NextNumberResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("EST-2024-0004", resp.Number)
}

func (suite *HandlerTestSuite) TestUpdateBill_Conflict() {
	immutable := fmt.Errorf("%w: bills cannot be updated", apperrors.ErrConflict)
	suite.documents.On("UpdateEstimate", mock.Anything, "d1", mock.Anything, testUserID).Return(nil, immutable).Once()

	body := `{"clientId":"c1","date":"2024-03-15T00:00:00Z","items":[{"item":"x","quantity":1,"rate":1}]}`
	w := suite.do(http.MethodPut, "/api/v1/documents/d1", body)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteDocument() {
	suite.documents.On("DeleteDocument", mock.Anything, "d1", testUserID).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/documents/d1", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.documents.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateReceipt_Success() {
	receipt := &domain.Receipt{
		ReceiptID: "r1",
		ClientID:  "c1",
		Transactions: []domain.Transaction{
			{TransactionID: "t1", Amount: decimal.NewFromInt(120), PaymentType: domain.PaymentBank, PaymentMethodID: "pm1"},
			{TransactionID: "t2", Amount: decimal.NewFromInt(80), PaymentType: domain.PaymentCash},
		},
	}
	suite.receipts.On("CreateReceipt", mock.Anything,
		mock.MatchedBy(func(r dto.ReceiptRequest) bool { return len(r.Transactions) == 2 }),
		testUserID,
	).Return(receipt, nil).Once()

	body := `{"clientId":"c1","date":"2024-03-15T00:00:00Z","transactions":[
		{"amount":120,"paymentType":"bank","paymentMethodId":"pm1"},
		{"amount":80,"paymentType":"cash"}]}`
	w := suite.do(http.MethodPost, "/api/v1/receipts", body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ReceiptResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Total.Equal(decimal.NewFromInt(200)))
	suite.Len(resp.Transactions, 2)
}

func (suite *HandlerTestSuite) TestUpdateReceipt_InsufficientBalance() {
	overdraw := fmt.Errorf("payment method pm1: %w", apperrors.ErrInsufficientBalance)
	suite.receipts.On("UpdateReceipt", mock.Anything, "r1", mock.Anything, testUserID).Return(nil, overdraw).Once()

	body := `{"clientId":"c1","date":"2024-03-15T00:00:00Z","transactions":[{"amount":10,"paymentType":"cash"}]}`
	w := suite.do(http.MethodPut, "/api/v1/receipts/r1", body)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteReceipt_InternalErrorIsHidden() {
	suite.receipts.On("DeleteReceipt", mock.Anything, "r1", testUserID).
		Return(errors.New("pq: connection reset")).Once()

	w := suite.do(http.MethodDelete, "/api/v1/receipts/r1", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to delete receipt", suite.decodeError(w).Error)
}

func (suite *HandlerTestSuite) TestAdjustBalance() {
	pm := &domain.PaymentMethod{PaymentMethodID: "pm1", Type: domain.PaymentBank, Balance: decimal.NewFromInt(75)}
	suite.methods.On("AdjustBalance", mock.Anything, "pm1",
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(-25)) }),
		testUserID,
	).Return(pm, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/payment-methods/pm1/adjust-balance", `{"amount":-25}`)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PaymentMethodResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Balance.Equal(decimal.NewFromInt(75)))
}

func (suite *HandlerTestSuite) TestListPaymentMethods_ByType() {
	suite.methods.On("ListPaymentMethods", mock.Anything, dto.ListPaymentMethodsParams{Type: domain.PaymentWallet}).
		Return([]domain.PaymentMethod{{PaymentMethodID: "w1", Type: domain.PaymentWallet}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/payment-methods?type=wallet", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListPaymentMethodsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.PaymentMethods, 1)
}

func (suite *HandlerTestSuite) TestListClientJournal() {
	page := &domain.LedgerPage{
		ClientID:       "c1",
		OpeningBalance: decimal.NewFromInt(100),
		Entries: []domain.LedgerRow{{
			JournalEntry: domain.JournalEntry{EntryID: "e1", Type: domain.EntryBill, Amount: decimal.NewFromInt(50)},
			Dr:           decimal.NewFromInt(50),
			Cr:           decimal.Zero,
			Balance:      decimal.NewFromInt(150),
		}},
		Pagination: domain.Pagination{Page: 2, Limit: 1, Total: 3, TotalPages: 3},
	}
	suite.ledger.On("ListClientJournal", mock.Anything, "c1",
		dto.ListJournalParams{Page: 2, Limit: 1, Type: "bill"},
	).Return(page, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/clients/c1/journal?page=2&limit=1&type=bill", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ClientJournalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Entries, 1)
	suite.True(resp.Entries[0].Balance.Equal(decimal.NewFromInt(150)))
	suite.Equal(3, resp.Pagination.TotalPages)
}

func (suite *HandlerTestSuite) TestJournalSummary() {
	summary := &domain.JournalSummary{ClientID: "c1", TotalDebit: decimal.NewFromInt(200), ClosingBalance: decimal.NewFromInt(200)}
	suite.ledger.On("GetClientJournalSummary", mock.Anything, "c1").Return(summary, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/clients/c1/journal/summary", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.JournalSummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.ClosingBalance.Equal(decimal.NewFromInt(200)))
}

func (suite *HandlerTestSuite) TestExportStatement() {
	workbook := []byte("PK\x03\x04")
	suite.ledger.On("ExportClientStatement", mock.Anything, "c1", dto.ListJournalParams{}).Return(workbook, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/clients/c1/journal/export", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(export.ContentType, w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), "statement-c1.xlsx")
	suite.Equal(workbook, w.Body.Bytes())
}

func (suite *HandlerTestSuite) TestAppendEntry() {
	entry := &domain.JournalEntry{EntryID: "e9", ClientID: "c1", Type: domain.EntryReceipt, Amount: decimal.NewFromInt(30)}
	suite.ledger.On("AppendEntry", mock.Anything,
		mock.MatchedBy(func(r dto.AppendEntryRequest) bool { return r.Type == domain.EntryReceipt }),
		testUserID,
	).Return(entry, nil).Once()

	body := `{"clientId":"c1","date":"2024-03-15T00:00:00Z","type":"receipt","amount":30,"particular":"Adjustment"}`
	w := suite.do(http.MethodPost, "/api/v1/journal/entries", body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("e9", resp.EntryID)
}

func (suite *HandlerTestSuite) TestLogin() {
	expires := time.Date(2024, 3, 15, 13, 0, 0, 0, time.UTC)
	suite.auth.On("Login", mock.Anything, "admin", "secret").Return("signed", expires, nil).Once()
	suite.auth.On("Login", mock.Anything, "admin", "wrong").
		Return("", time.Time{}, fmt.Errorf("invalid username or password: %w", apperrors.ErrUnauthorized)).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", `{"username":"admin","password":"secret"}`)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("signed", resp.Token)
	suite.True(resp.ExpiresAt.Equal(expires))

	w = suite.do(http.MethodPost, "/api/v1/auth/login", `{"username":"admin","password":"wrong"}`)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestLogin_RateLimited() {
	suite.auth.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return("", time.Time{}, apperrors.ErrUnauthorized)

	for i := 0; i < 5; i++ {
		w := suite.do(http.MethodPost, "/api/v1/auth/login", `{"username":"a","password":"b"}`)
		suite.Equal(http.StatusUnauthorized, w.Code)
	}
	w := suite.do(http.MethodPost, "/api/v1/auth/login", `{"username":"a","password":"b"}`)
	suite.Equal(http.StatusTooManyRequests, w.Code)
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
