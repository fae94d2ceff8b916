package domain

import "github.com/shopspring/decimal"

// PaymentType enumerates funding sources.
type PaymentType string

const (
	PaymentCash   PaymentType = "cash"
	PaymentBank   PaymentType = "bank"
	PaymentWallet PaymentType = "wallet"
	PaymentCheque PaymentType = "cheque"
)

// IsValid reports whether t is a known payment type.
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentCash, PaymentBank, PaymentWallet, PaymentCheque:
		return true
	}
	return false
}

// RequiresAccount reports whether methods of this type must carry account details,
// and whether receipt transactions of this type must reference a method.
func (t PaymentType) RequiresAccount() bool {
	return t == PaymentBank || t == PaymentWallet
}

// PaymentMethod is a named funding source with a non-negative balance.
type PaymentMethod struct {
	PaymentMethodID string          `json:"paymentMethodID"`
	Type            PaymentType     `json:"type"`
	Name            string          `json:"name"`
	AccountName     string          `json:"accountName"`
	AccountNumber   string          `json:"accountNumber"`
	Balance         decimal.Decimal `json:"balance"`
	IsDefault       bool            `json:"isDefault"`
	AuditFields
}

// IsProtected reports whether the method is a default cash or cheque row,
// which can be neither modified nor deleted.
func (p PaymentMethod) IsProtected() bool {
	return p.IsDefault && (p.Type == PaymentCash || p.Type == PaymentCheque)
}
