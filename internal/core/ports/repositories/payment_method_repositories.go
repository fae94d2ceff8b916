package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentMethodReader defines read operations for payment methods
type PaymentMethodReader interface {
	FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error)

	// FindPaymentMethodsByIDs returns the methods that exist; missing IDs are simply absent from the map.
	FindPaymentMethodsByIDs(ctx context.Context, paymentMethodIDs []string) (map[string]domain.PaymentMethod, error)

	// FindDefaultPaymentMethod returns the default method of a type, or apperrors.ErrNotFound.
	FindDefaultPaymentMethod(ctx context.Context, paymentType domain.PaymentType) (*domain.PaymentMethod, error)

	// PaymentMethodInUse reports whether any receipt transaction references the method.
	PaymentMethodInUse(ctx context.Context, paymentMethodID string) (bool, error)

	// ListPaymentMethods lists methods, optionally restricted to one type.
	ListPaymentMethods(ctx context.Context, paymentType *domain.PaymentType) ([]domain.PaymentMethod, error)
}

// PaymentMethodWriter defines write operations for payment methods
type PaymentMethodWriter interface {
	SavePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error

	// UpdatePaymentMethod rewrites descriptive fields and the default flag, never the balance.
	UpdatePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error

	// DeletePaymentMethod returns apperrors.ErrConflict when transactions still reference the method.
	DeletePaymentMethod(ctx context.Context, paymentMethodID string) error

	// LockPaymentMethod reads the method and holds a row lock on it until the transaction ends.
	LockPaymentMethod(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error)

	// UpdatePaymentMethodBalance persists a new balance.
	UpdatePaymentMethodBalance(ctx context.Context, paymentMethodID string, balance decimal.Decimal, updatedBy string, updatedAt time.Time) error
}

// PaymentMethodRepositoryFacade combines all payment-method repository interfaces
type PaymentMethodRepositoryFacade interface {
	PaymentMethodReader
	PaymentMethodWriter
}
