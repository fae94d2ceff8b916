package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind distinguishes bills from estimates. Both share one numbering space per kind.
type DocumentKind string

const (
	KindBill     DocumentKind = "bill"
	KindEstimate DocumentKind = "estimate"
)

// Prefix returns the number prefix used for the kind.
func (k DocumentKind) Prefix() string {
	switch k {
	case KindBill:
		return "BILL"
	case KindEstimate:
		return "EST"
	default:
		return ""
	}
}

// IsValid reports whether k is a known kind.
func (k DocumentKind) IsValid() bool {
	return k == KindBill || k == KindEstimate
}

// DiscountType selects how DiscountValue is interpreted.
type DiscountType string

const (
	DiscountRate   DiscountType = "rate"
	DiscountAmount DiscountType = "amount"
)

// LineItem is a single priced line of a document.
type LineItem struct {
	Item     string          `json:"item"`
	Quantity decimal.Decimal `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Total    decimal.Decimal `json:"total"`
}

// Totals is the output of the money calculator.
type Totals struct {
	SubTotal       decimal.Decimal `json:"subTotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Total          decimal.Decimal `json:"total"`
}

// Document is a bill or an estimate. Number is assigned once at creation and never changes.
type Document struct {
	DocumentID    string          `json:"documentID"`
	Kind          DocumentKind    `json:"kind"`
	Number        string          `json:"number"`
	Date          time.Time       `json:"date"`
	ClientID      string          `json:"clientID"`
	Items         []LineItem      `json:"items"`
	DiscountType  DiscountType    `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	Totals
	AuditFields
}
