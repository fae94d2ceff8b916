package dto

import (
	"time"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentMethodRequest defines the data needed to register a funding source.
// Name, AccountName and AccountNumber are required for bank and wallet.
type CreatePaymentMethodRequest struct {
	Type          domain.PaymentType `json:"type" validate:"required,oneof=cash bank wallet cheque"`
	Name          string             `json:"name"`
	AccountName   string             `json:"accountName"`
	AccountNumber string             `json:"accountNumber"`
	Balance       decimal.Decimal    `json:"balance" validate:"gte=0"`
	IsDefault     bool               `json:"isDefault"`
}

// UpdatePaymentMethodRequest replaces descriptive fields. The balance is only
// changed through balance adjustments.
type UpdatePaymentMethodRequest struct {
	Type          domain.PaymentType `json:"type" validate:"required,oneof=cash bank wallet cheque"`
	Name          string             `json:"name"`
	AccountName   string             `json:"accountName"`
	AccountNumber string             `json:"accountNumber"`
	IsDefault     bool               `json:"isDefault"`
}

// AdjustBalanceRequest carries a signed delta.
type AdjustBalanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type ListPaymentMethodsParams struct {
	Type domain.PaymentType `form:"type" validate:"omitempty,oneof=cash bank wallet cheque"`
}

type PaymentMethodResponse struct {
	PaymentMethodID string          `json:"paymentMethodId"`
	Type            string          `json:"type"`
	Name            string          `json:"name"`
	AccountName     string          `json:"accountName,omitempty"`
	AccountNumber   string          `json:"accountNumber,omitempty"`
	Balance         decimal.Decimal `json:"balance"`
	IsDefault       bool            `json:"isDefault"`
	LastUpdatedAt   time.Time       `json:"lastUpdatedAt"`
}

type ListPaymentMethodsResponse struct {
	PaymentMethods []PaymentMethodResponse `json:"paymentMethods"`
}

func ToPaymentMethodResponse(pm *domain.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		PaymentMethodID: pm.PaymentMethodID,
		Type:            string(pm.Type),
		Name:            pm.Name,
		AccountName:     pm.AccountName,
		AccountNumber:   pm.AccountNumber,
		Balance:         pm.Balance,
		IsDefault:       pm.IsDefault,
		LastUpdatedAt:   pm.LastUpdatedAt,
	}
}

func ToListPaymentMethodsResponse(methods []domain.PaymentMethod) ListPaymentMethodsResponse {
	out := ListPaymentMethodsResponse{PaymentMethods: make([]PaymentMethodResponse, len(methods))}
	for i := range methods {
		out.PaymentMethods[i] = ToPaymentMethodResponse(&methods[i])
	}
	return out
}
