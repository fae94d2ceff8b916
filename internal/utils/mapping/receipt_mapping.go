package mapping

import (
	"database/sql"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	"github.com/SscSPs/billing_ledger/internal/models"
)

// NullString maps "" to NULL.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ToModelReceipt converts a domain Receipt to its row and transaction rows.
func ToModelReceipt(d domain.Receipt) (models.Receipt, []models.ReceiptTransaction) {
	r := models.Receipt{
		ReceiptID:   d.ReceiptID,
		ReceiptDate: d.Date,
		ClientID:    d.ClientID,
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	return r, ToModelTransactions(d.ReceiptID, d.Transactions)
}

// ToModelTransactions converts receipt transactions to rows, keeping their order.
func ToModelTransactions(receiptID string, txns []domain.Transaction) []models.ReceiptTransaction {
	rows := make([]models.ReceiptTransaction, len(txns))
	for i, t := range txns {
		row := models.ReceiptTransaction{
			TransactionID:   t.TransactionID,
			ReceiptID:       receiptID,
			Position:        i,
			Amount:          t.Amount,
			PaymentType:     string(t.PaymentType),
			PaymentMethodID: NullString(t.PaymentMethodID),
		}
		if t.ChequeDetails != nil {
			row.ChequeBankName = NullString(t.ChequeDetails.BankName)
			row.ChequeNumber = NullString(t.ChequeDetails.ChequeNumber)
			row.ChequeBranchName = NullString(t.ChequeDetails.BranchName)
			row.ChequeIssueDate = sql.NullTime{Time: t.ChequeDetails.IssueDate, Valid: !t.ChequeDetails.IssueDate.IsZero()}
		}
		rows[i] = row
	}
	return rows
}

// ToDomainReceipt converts a receipt row and its transaction rows to a domain Receipt.
func ToDomainReceipt(m models.Receipt, txns []models.ReceiptTransaction) domain.Receipt {
	r := domain.Receipt{
		ReceiptID:    m.ReceiptID,
		Date:         m.ReceiptDate,
		ClientID:     m.ClientID,
		Notes:        m.Notes,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		Transactions: make([]domain.Transaction, len(txns)),
	}
	for i, row := range txns {
		t := domain.Transaction{
			TransactionID:   row.TransactionID,
			ReceiptID:       row.ReceiptID,
			Amount:          row.Amount,
			PaymentType:     domain.PaymentType(row.PaymentType),
			PaymentMethodID: row.PaymentMethodID.String,
		}
		if row.ChequeNumber.Valid || row.ChequeBankName.Valid {
			t.ChequeDetails = &domain.ChequeDetails{
				BankName:     row.ChequeBankName.String,
				ChequeNumber: row.ChequeNumber.String,
				BranchName:   row.ChequeBranchName.String,
				IssueDate:    row.ChequeIssueDate.Time,
			}
		}
		r.Transactions[i] = t
	}
	return r
}
