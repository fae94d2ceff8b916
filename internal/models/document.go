package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document is the row shape of the documents table. Bills and estimates share it.
type Document struct {
	DocumentID     string          `db:"document_id"`
	Kind           string          `db:"kind"`
	Number         string          `db:"number"`
	DocumentDate   time.Time       `db:"document_date"`
	ClientID       string          `db:"client_id"`
	SubTotal       decimal.Decimal `db:"sub_total"`
	DiscountType   string          `db:"discount_type"`
	DiscountValue  decimal.Decimal `db:"discount_value"`
	DiscountAmount decimal.Decimal `db:"discount_amount"`
	Total          decimal.Decimal `db:"total"`
	AuditFields
}

// LineItem is the row shape of the document_items table.
type LineItem struct {
	DocumentID string          `db:"document_id"`
	Position   int             `db:"position"`
	Item       string          `db:"item"`
	Quantity   decimal.Decimal `db:"quantity"`
	Rate       decimal.Decimal `db:"rate"`
	Total      decimal.Decimal `db:"total"`
}
