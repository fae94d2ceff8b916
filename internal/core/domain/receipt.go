package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt records money received from a client through one or more transactions.
type Receipt struct {
	ReceiptID    string        `json:"receiptID"`
	Date         time.Time     `json:"date"`
	ClientID     string        `json:"clientID"`
	Notes        string        `json:"notes"`
	Transactions []Transaction `json:"transactions"`
	AuditFields
}

// Total is the sum of the receipt's transaction amounts. It is never stored.
func (r Receipt) Total() decimal.Decimal {
	total := decimal.Zero
	for _, t := range r.Transactions {
		total = total.Add(t.Amount)
	}
	return total
}
