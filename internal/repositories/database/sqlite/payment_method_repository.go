package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/billing_ledger/internal/models"
	"github.com/SscSPs/billing_ledger/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PaymentMethodRepository struct {
	BaseRepository
}

var _ portsrepo.PaymentMethodRepositoryFacade = (*PaymentMethodRepository)(nil)

const paymentMethodColumns = `payment_method_id, method_type, name, account_name, account_number, balance, is_default, created_at, created_by, last_updated_at, last_updated_by`

func scanPaymentMethod(row scanner) (models.PaymentMethod, error) {
	var m models.PaymentMethod
	err := row.Scan(
		&m.PaymentMethodID, &m.MethodType, &m.Name, &m.AccountName, &m.AccountNumber, &m.Balance, &m.IsDefault,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PaymentMethodRepository) queryPaymentMethods(ctx context.Context, query string, args ...any) ([]domain.PaymentMethod, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "query payment methods")
	}
	defer rows.Close()

	methods := make([]domain.PaymentMethod, 0)
	for rows.Next() {
		m, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, translateError(err, "scan payment method")
		}
		methods = append(methods, mapping.ToDomainPaymentMethod(m))
	}
	return methods, translateError(rows.Err(), "iterate payment methods")
}

func (r *PaymentMethodRepository) findOne(ctx context.Context, action, where string, args ...any) (*domain.PaymentMethod, error) {
	m, err := scanPaymentMethod(r.db.QueryRowContext(ctx, `SELECT `+paymentMethodColumns+` FROM payment_methods WHERE `+where, args...))
	if err != nil {
		return nil, translateError(err, action)
	}
	pm := mapping.ToDomainPaymentMethod(m)
	return &pm, nil
}

func (r *PaymentMethodRepository) SavePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error {
	m := mapping.ToModelPaymentMethod(pm)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payment_methods (`+paymentMethodColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		m.PaymentMethodID, m.MethodType, m.Name, m.AccountName, m.AccountNumber, m.Balance, m.IsDefault,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, fmt.Sprintf("save payment method %s", m.PaymentMethodID))
}

func (r *PaymentMethodRepository) FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	return r.findOne(ctx, fmt.Sprintf("find payment method %s", paymentMethodID), `payment_method_id = ?;`, paymentMethodID)
}

func (r *PaymentMethodRepository) FindPaymentMethodsByIDs(ctx context.Context, paymentMethodIDs []string) (map[string]domain.PaymentMethod, error) {
	found := make(map[string]domain.PaymentMethod, len(paymentMethodIDs))
	if len(paymentMethodIDs) == 0 {
		return found, nil
	}
	in, args := inClause(paymentMethodIDs)
	methods, err := r.queryPaymentMethods(ctx,
		`SELECT `+paymentMethodColumns+` FROM payment_methods WHERE payment_method_id IN `+in+`;`, args...)
	if err != nil {
		return nil, err
	}
	for _, pm := range methods {
		found[pm.PaymentMethodID] = pm
	}
	return found, nil
}

func (r *PaymentMethodRepository) FindDefaultPaymentMethod(ctx context.Context, paymentType domain.PaymentType) (*domain.PaymentMethod, error) {
	return r.findOne(ctx, fmt.Sprintf("find default %s payment method", paymentType),
		`method_type = ? AND is_default = 1 LIMIT 1;`, string(paymentType))
}

func (r *PaymentMethodRepository) PaymentMethodInUse(ctx context.Context, paymentMethodID string) (bool, error) {
	var inUse bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM receipt_transactions WHERE payment_method_id = ?);`, paymentMethodID,
	).Scan(&inUse)
	if err != nil {
		return false, translateError(err, fmt.Sprintf("check usage of payment method %s", paymentMethodID))
	}
	return inUse, nil
}

func (r *PaymentMethodRepository) ListPaymentMethods(ctx context.Context, paymentType *domain.PaymentType) ([]domain.PaymentMethod, error) {
	t := ""
	if paymentType != nil {
		t = string(*paymentType)
	}
	return r.queryPaymentMethods(ctx, `
		SELECT `+paymentMethodColumns+`
		FROM payment_methods
		WHERE (?1 = '' OR method_type = ?1)
		ORDER BY method_type, is_default DESC, name;`, t)
}

func (r *PaymentMethodRepository) UpdatePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error {
	m := mapping.ToModelPaymentMethod(pm)
	res, err := r.db.ExecContext(ctx, `
		UPDATE payment_methods
		SET method_type = ?, name = ?, account_name = ?, account_number = ?, is_default = ?, last_updated_at = ?, last_updated_by = ?
		WHERE payment_method_id = ?;`,
		m.MethodType, m.Name, m.AccountName, m.AccountNumber, m.IsDefault, m.LastUpdatedAt, m.LastUpdatedBy, m.PaymentMethodID,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("update payment method %s", m.PaymentMethodID))
	}
	return affectedOne(res)
}

func (r *PaymentMethodRepository) DeletePaymentMethod(ctx context.Context, paymentMethodID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payment_methods WHERE payment_method_id = ?;`, paymentMethodID)
	if err != nil {
		return translateError(err, fmt.Sprintf("delete payment method %s", paymentMethodID))
	}
	return affectedOne(res)
}

// LockPaymentMethod is a plain read: the surrounding BEGIN IMMEDIATE transaction
// already holds the database write lock.
func (r *PaymentMethodRepository) LockPaymentMethod(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	return r.findOne(ctx, fmt.Sprintf("lock payment method %s", paymentMethodID), `payment_method_id = ?;`, paymentMethodID)
}

func (r *PaymentMethodRepository) UpdatePaymentMethodBalance(ctx context.Context, paymentMethodID string, balance decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE payment_methods SET balance = ?, last_updated_at = ?, last_updated_by = ? WHERE payment_method_id = ?;`,
		balance, updatedAt, updatedBy, paymentMethodID,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("update balance of payment method %s", paymentMethodID))
	}
	return affectedOne(res)
}
