package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the row shape of the receipts table.
type Receipt struct {
	ReceiptID   string    `db:"receipt_id"`
	ReceiptDate time.Time `db:"receipt_date"`
	ClientID    string    `db:"client_id"`
	Notes       string    `db:"notes"`
	AuditFields
}

// ReceiptTransaction is the row shape of the receipt_transactions table.
// Cheque columns are only set on cheque transactions.
type ReceiptTransaction struct {
	TransactionID    string          `db:"transaction_id"`
	ReceiptID        string          `db:"receipt_id"`
	Position         int             `db:"position"`
	Amount           decimal.Decimal `db:"amount"`
	PaymentType      string          `db:"payment_type"`
	PaymentMethodID  sql.NullString  `db:"payment_method_id"`
	ChequeBankName   sql.NullString  `db:"cheque_bank_name"`
	ChequeNumber     sql.NullString  `db:"cheque_number"`
	ChequeBranchName sql.NullString  `db:"cheque_branch_name"`
	ChequeIssueDate  sql.NullTime    `db:"cheque_issue_date"`
}
