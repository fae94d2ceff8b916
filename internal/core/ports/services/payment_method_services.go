package services

import (
	"context"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	"github.com/SscSPs/billing_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// PaymentMethodReaderSvc defines read operations for payment methods
type PaymentMethodReaderSvc interface {
	GetPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, params dto.ListPaymentMethodsParams) ([]domain.PaymentMethod, error)
}

// PaymentMethodWriterSvc defines write operations for payment methods
type PaymentMethodWriterSvc interface {
	CreatePaymentMethod(ctx context.Context, req dto.CreatePaymentMethodRequest, creatorUserID string) (*domain.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, paymentMethodID string, req dto.UpdatePaymentMethodRequest, userID string) (*domain.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, paymentMethodID string, userID string) error

	// AdjustBalance adds delta to the balance, failing with apperrors.ErrInsufficientBalance
	// when the result would be negative.
	AdjustBalance(ctx context.Context, paymentMethodID string, delta decimal.Decimal, userID string) (*domain.PaymentMethod, error)
}

// PaymentMethodSvcFacade combines all payment-method service interfaces
type PaymentMethodSvcFacade interface {
	PaymentMethodReaderSvc
	PaymentMethodWriterSvc
}
