package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/billing_ledger/internal/apperrors"
	"github.com/SscSPs/billing_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/billing_ledger/internal/core/ports/services"
	"github.com/SscSPs/billing_ledger/internal/dto"
	"github.com/SscSPs/billing_ledger/internal/platform/metrics"
	"github.com/SscSPs/billing_ledger/internal/utils/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrProtectedPaymentMethod = fmt.Errorf("%w: cannot modify or delete the default cash or cheque method", apperrors.ErrConflict)
	ErrDefaultExists          = fmt.Errorf("%w: a default payment method of this type already exists", apperrors.ErrConflict)
	ErrPaymentMethodInUse     = fmt.Errorf("%w: payment method is referenced by receipt transactions", apperrors.ErrConflict)
)

type paymentMethodService struct {
	BaseService
	repo portsrepo.PaymentMethodRepositoryFacade
	uow  portsrepo.UnitOfWork
}

var _ portssvc.PaymentMethodSvcFacade = (*paymentMethodService)(nil)

// NewPaymentMethodService creates the payment method registry.
func NewPaymentMethodService(repo portsrepo.PaymentMethodRepositoryFacade, uow portsrepo.UnitOfWork, base BaseService) portssvc.PaymentMethodSvcFacade {
	return &paymentMethodService{BaseService: base, repo: repo, uow: uow}
}

// validatePaymentMethodFields checks the type-specific required fields.
func validatePaymentMethodFields(verr *apperrors.ValidationError, t domain.PaymentType, name, accountName, accountNumber string) {
	if !t.RequiresAccount() {
		return
	}
	if name == "" {
		verr.Add("name", "is required for "+string(t))
	}
	if accountName == "" {
		verr.Add("accountName", "is required for "+string(t))
	}
	if accountNumber == "" {
		verr.Add("accountNumber", "is required for "+string(t))
	}
}

// ensureSingleDefault fails with ErrDefaultExists when another method of t is already default.
func ensureSingleDefault(ctx context.Context, repo portsrepo.PaymentMethodReader, t domain.PaymentType, selfID string) error {
	existing, err := repo.FindDefaultPaymentMethod(ctx, t)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up default %s method: %w", t, err)
	}
	if existing.PaymentMethodID != selfID {
		return ErrDefaultExists
	}
	return nil
}

func (s *paymentMethodService) CreatePaymentMethod(ctx context.Context, req dto.CreatePaymentMethodRequest, creatorUserID string) (*domain.PaymentMethod, error) {
	verr := &apperrors.ValidationError{}
	validation.Collect(verr, req)
	validatePaymentMethodFields(verr, req.Type, req.Name, req.AccountName, req.AccountNumber)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	pm := domain.PaymentMethod{
		PaymentMethodID: uuid.NewString(),
		Type:            req.Type,
		Name:            req.Name,
		AccountName:     req.AccountName,
		AccountNumber:   req.AccountNumber,
		Balance:         req.Balance,
		IsDefault:       req.IsDefault,
		AuditFields:     newAudit(creatorUserID, s.now()),
	}
	if pm.Name == "" {
		pm.Name = string(pm.Type)
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositorySet) error {
		if pm.IsDefault {
			if err := ensureSingleDefault(ctx, repos.PaymentMethods, pm.Type, pm.PaymentMethodID); err != nil {
				return err
			}
		}
		err := repos.PaymentMethods.SavePaymentMethod(ctx, pm)
		if pm.IsDefault && errors.Is(err, apperrors.ErrDuplicate) {
			return ErrDefaultExists
		}
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create payment method", slog.String("type", string(pm.Type)))
		return nil, err
	}

	s.LogInfo(ctx, "Payment method created",
		slog.String("payment_method_id", pm.PaymentMethodID), slog.String("type", string(pm.Type)))
	return &pm, nil
}

func (s *paymentMethodService) GetPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	pm, err := s.repo.FindPaymentMethodByID(ctx, paymentMethodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find payment method", slog.String("payment_method_id", paymentMethodID))
		return nil, err
	}
	return pm, nil
}

func (s *paymentMethodService) ListPaymentMethods(ctx context.Context, params dto.ListPaymentMethodsParams) ([]domain.PaymentMethod, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}
	var t *domain.PaymentType
	if params.Type != "" {
		t = &params.Type
	}
	methods, err := s.repo.ListPaymentMethods(ctx, t)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payment methods")
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return methods, nil
}

func (s *paymentMethodService) UpdatePaymentMethod(ctx context.Context, paymentMethodID string, req dto.UpdatePaymentMethodRequest, userID string) (*domain.PaymentMethod, error) {
	verr := &apperrors.ValidationError{}
	validation.Collect(verr, req)
	validatePaymentMethodFields(verr, req.Type, req.Name, req.AccountName, req.AccountNumber)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	var updated domain.PaymentMethod
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositorySet) error {
		pm, err := repos.PaymentMethods.LockPaymentMethod(ctx, paymentMethodID)
		if err != nil {
			return err
		}
		if pm.IsProtected() {
			return ErrProtectedPaymentMethod
		}
		if req.Type != pm.Type {
			inUse, err := repos.PaymentMethods.PaymentMethodInUse(ctx, pm.PaymentMethodID)
			if err != nil {
				return err
			}
			if inUse {
				return ErrPaymentMethodInUse
			}
		}
		if req.IsDefault {
			if err := ensureSingleDefault(ctx, repos.PaymentMethods, req.Type, pm.PaymentMethodID); err != nil {
				return err
			}
		}

		pm.Type = req.Type
		pm.Name = req.Name
		if pm.Name == "" {
			pm.Name = string(pm.Type)
		}
		pm.AccountName = req.AccountName
		pm.AccountNumber = req.AccountNumber
		pm.IsDefault = req.IsDefault
		pm.AuditFields = touch(pm.AuditFields, userID, s.now())

		err = repos.PaymentMethods.UpdatePaymentMethod(ctx, *pm)
		if pm.IsDefault && errors.Is(err, apperrors.ErrDuplicate) {
			return ErrDefaultExists
		}
		if err != nil {
			return err
		}
		updated = *pm
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update payment method", slog.String("payment_method_id", paymentMethodID))
		return nil, err
	}

	s.LogInfo(ctx, "Payment method updated", slog.String("payment_method_id", paymentMethodID))
	return &updated, nil
}

func (s *paymentMethodService) DeletePaymentMethod(ctx context.Context, paymentMethodID string, userID string) error {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositorySet) error {
		pm, err := repos.PaymentMethods.LockPaymentMethod(ctx, paymentMethodID)
		if err != nil {
			return err
		}
		if pm.IsProtected() {
			return ErrProtectedPaymentMethod
		}
		return repos.PaymentMethods.DeletePaymentMethod(ctx, paymentMethodID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete payment method", slog.String("payment_method_id", paymentMethodID))
		return err
	}

	s.LogInfo(ctx, "Payment method deleted",
		slog.String("payment_method_id", paymentMethodID), slog.String("user_id", userID))
	return nil
}

func (s *paymentMethodService) AdjustBalance(ctx context.Context, paymentMethodID string, delta decimal.Decimal, userID string) (*domain.PaymentMethod, error) {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	var adjusted *domain.PaymentMethod
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositorySet) error {
		var err error
		adjusted, err = adjustBalance(ctx, repos.PaymentMethods, paymentMethodID, delta, userID, s.now())
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to adjust balance",
			slog.String("payment_method_id", paymentMethodID), slog.String("delta", delta.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Balance adjusted",
		slog.String("payment_method_id", paymentMethodID),
		slog.String("delta", delta.String()),
		slog.String("balance", adjusted.Balance.String()))
	return adjusted, nil
}

// adjustBalance is the only place a payment method balance changes. It must run
// inside a unit of work; the row stays locked until that transaction ends.
func adjustBalance(ctx context.Context, repo portsrepo.PaymentMethodWriter, paymentMethodID string, delta decimal.Decimal, userID string, at time.Time) (*domain.PaymentMethod, error) {
	pm, err := repo.LockPaymentMethod(ctx, paymentMethodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("payment method %s: %w", paymentMethodID, apperrors.ErrNotFound)
		}
		return nil, err
	}

	newBalance := pm.Balance.Add(delta)
	if newBalance.IsNegative() {
		metrics.BalanceAdjusted("rejected")
		return nil, fmt.Errorf("%w: payment method %s has %s, cannot apply %s",
			apperrors.ErrInsufficientBalance, paymentMethodID, pm.Balance.String(), delta.String())
	}

	if err := repo.UpdatePaymentMethodBalance(ctx, paymentMethodID, newBalance, userID, at); err != nil {
		return nil, err
	}
	metrics.BalanceAdjusted("applied")

	pm.Balance = newBalance
	pm.AuditFields = touch(pm.AuditFields, userID, at)
	return pm, nil
}
