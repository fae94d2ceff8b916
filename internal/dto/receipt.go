package dto

import (
	"time"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

type ChequeDetailsRequest struct {
	BankName     string    `json:"bankName" validate:"required"`
	ChequeNumber string    `json:"chequeNumber" validate:"required"`
	BranchName   string    `json:"branchName" validate:"required"`
	IssueDate    time.Time `json:"issueDate" validate:"required"`
}

// TransactionRequest is one funding line of a receipt.
type TransactionRequest struct {
	Amount          decimal.Decimal       `json:"amount" validate:"gt=0"`
	PaymentType     domain.PaymentType    `json:"paymentType" validate:"required,oneof=cash bank wallet cheque"`
	PaymentMethodID string                `json:"paymentMethodId"`
	ChequeDetails   *ChequeDetailsRequest `json:"chequeDetails"`
}

// ReceiptRequest is used both to create a receipt and to replace one on update.
type ReceiptRequest struct {
	Date         time.Time            `json:"date" validate:"required"`
	ClientID     string               `json:"clientId" validate:"required"`
	Notes        string               `json:"notes"`
	Transactions []TransactionRequest `json:"transactions" validate:"min=1,dive"`
}

// ListReceiptsParams filters receipt listings.
type ListReceiptsParams struct {
	ClientID string `form:"clientId"`
	ListParams
}

type ChequeDetailsResponse struct {
	BankName     string    `json:"bankName"`
	ChequeNumber string    `json:"chequeNumber"`
	BranchName   string    `json:"branchName"`
	IssueDate    time.Time `json:"issueDate"`
}

type TransactionResponse struct {
	TransactionID   string                 `json:"transactionId"`
	Amount          decimal.Decimal        `json:"amount"`
	PaymentType     string                 `json:"paymentType"`
	PaymentMethodID string                 `json:"paymentMethodId,omitempty"`
	ChequeDetails   *ChequeDetailsResponse `json:"chequeDetails,omitempty"`
}

// ReceiptResponse defines the data returned for a receipt.
type ReceiptResponse struct {
	ReceiptID     string                `json:"receiptId"`
	Date          time.Time             `json:"date"`
	ClientID      string                `json:"clientId"`
	Notes         string                `json:"notes,omitempty"`
	Total         decimal.Decimal       `json:"total"`
	Transactions  []TransactionResponse `json:"transactions"`
	CreatedAt     time.Time             `json:"createdAt"`
	LastUpdatedAt time.Time             `json:"lastUpdatedAt"`
}

type ListReceiptsResponse struct {
	Receipts []ReceiptResponse `json:"receipts"`
}

// ToTransactions converts request lines to domain transactions. IDs are assigned by the service.
func ToTransactions(reqs []TransactionRequest) []domain.Transaction {
	txns := make([]domain.Transaction, len(reqs))
	for i, r := range reqs {
		txns[i] = domain.Transaction{
			Amount:          r.Amount,
			PaymentType:     r.PaymentType,
			PaymentMethodID: r.PaymentMethodID,
		}
		if r.ChequeDetails != nil {
			txns[i].ChequeDetails = &domain.ChequeDetails{
				BankName:     r.ChequeDetails.BankName,
				ChequeNumber: r.ChequeDetails.ChequeNumber,
				BranchName:   r.ChequeDetails.BranchName,
				IssueDate:    r.ChequeDetails.IssueDate,
			}
		}
	}
	return txns
}

func ToReceiptResponse(r *domain.Receipt) ReceiptResponse {
	resp := ReceiptResponse{
		ReceiptID:     r.ReceiptID,
		Date:          r.Date,
		ClientID:      r.ClientID,
		Notes:         r.Notes,
		Total:         r.Total(),
		Transactions:  make([]TransactionResponse, len(r.Transactions)),
		CreatedAt:     r.CreatedAt,
		LastUpdatedAt: r.LastUpdatedAt,
	}
	for i, t := range r.Transactions {
		tr := TransactionResponse{
			TransactionID:   t.TransactionID,
			Amount:          t.Amount,
			PaymentType:     string(t.PaymentType),
			PaymentMethodID: t.PaymentMethodID,
		}
		if t.ChequeDetails != nil {
			tr.ChequeDetails = &ChequeDetailsResponse{
				BankName:     t.ChequeDetails.BankName,
				ChequeNumber: t.ChequeDetails.ChequeNumber,
				BranchName:   t.ChequeDetails.BranchName,
				IssueDate:    t.ChequeDetails.IssueDate,
			}
		}
		resp.Transactions[i] = tr
	}
	return resp
}

func ToListReceiptsResponse(receipts []domain.Receipt) ListReceiptsResponse {
	out := ListReceiptsResponse{Receipts: make([]ReceiptResponse, len(receipts))}
	for i := range receipts {
		out.Receipts[i] = ToReceiptResponse(&receipts[i])
	}
	return out
}
