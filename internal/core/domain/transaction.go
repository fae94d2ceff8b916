package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChequeDetails is required on cheque transactions.
type ChequeDetails struct {
	BankName     string    `json:"bankName"`
	ChequeNumber string    `json:"chequeNumber"`
	BranchName   string    `json:"branchName"`
	IssueDate    time.Time `json:"issueDate"`
}

// Transaction is one funding line of a receipt.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	ReceiptID       string          `json:"receiptID"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentType     PaymentType     `json:"paymentType"`
	PaymentMethodID string          `json:"paymentMethodID,omitempty"` // empty when not linked
	ChequeDetails   *ChequeDetails  `json:"chequeDetails,omitempty"`
}

// AffectsBalance reports whether the transaction moves a payment method balance.
func (t Transaction) AffectsBalance() bool {
	return t.PaymentMethodID != ""
}
