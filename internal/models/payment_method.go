package models

import "github.com/shopspring/decimal"

// PaymentMethod is the row shape of the payment_methods table.
type PaymentMethod struct {
	PaymentMethodID string          `db:"payment_method_id"`
	MethodType      string          `db:"method_type"`
	Name            string          `db:"name"`
	AccountName     string          `db:"account_name"`
	AccountNumber   string          `db:"account_number"`
	Balance         decimal.Decimal `db:"balance"`
	IsDefault       bool            `db:"is_default"`
	AuditFields
}
