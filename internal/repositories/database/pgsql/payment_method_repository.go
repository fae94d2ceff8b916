package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/billing_ledger/internal/models"
	"github.com/SscSPs/billing_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PgxPaymentMethodRepository struct {
	BaseRepository
}

func newPgxPaymentMethodRepository(db DBTX) *PgxPaymentMethodRepository {
	return &PgxPaymentMethodRepository{BaseRepository: BaseRepository{db: db}}
}

var _ portsrepo.PaymentMethodRepositoryFacade = (*PgxPaymentMethodRepository)(nil)

const paymentMethodColumns = `payment_method_id, method_type, name, account_name, account_number, balance, is_default, created_at, created_by, last_updated_at, last_updated_by`

func scanPaymentMethod(row pgx.Row) (models.PaymentMethod, error) {
	var m models.PaymentMethod
	err := row.Scan(
		&m.PaymentMethodID, &m.MethodType, &m.Name, &m.AccountName, &m.AccountNumber, &m.Balance, &m.IsDefault,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPaymentMethodRepository) queryPaymentMethods(ctx context.Context, query string, args ...any) ([]domain.PaymentMethod, error) {
	rows, err := r.db.Query(ctx, query, args...)
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

// SavePaymentMethod inserts a new payment method.
func (r *PgxPaymentMethodRepository) SavePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error {
	m := mapping.ToModelPaymentMethod(pm)
	query := `INSERT INTO payment_methods (` + paymentMethodColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
	_, err := r.db.Exec(ctx, query,
		m.PaymentMethodID, m.MethodType, m.Name, m.AccountName, m.AccountNumber, m.Balance, m.IsDefault,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, fmt.Sprintf("save payment method %s", m.PaymentMethodID))
}

// FindPaymentMethodByID retrieves a payment method by its ID.
func (r *PgxPaymentMethodRepository) FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods WHERE payment_method_id = $1;`
	m, err := scanPaymentMethod(r.db.QueryRow(ctx, query, paymentMethodID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("find payment method %s", paymentMethodID))
	}
	pm := mapping.ToDomainPaymentMethod(m)
	return &pm, nil
}

// FindPaymentMethodsByIDs retrieves the payment methods that exist among paymentMethodIDs.
func (r *PgxPaymentMethodRepository) FindPaymentMethodsByIDs(ctx context.Context, paymentMethodIDs []string) (map[string]domain.PaymentMethod, error) {
	found := make(map[string]domain.PaymentMethod, len(paymentMethodIDs))
	if len(paymentMethodIDs) == 0 {
		return found, nil
	}
	methods, err := r.queryPaymentMethods(ctx,
		`SELECT `+paymentMethodColumns+` FROM payment_methods WHERE payment_method_id = ANY($1);`, paymentMethodIDs)
	if err != nil {
		return nil, err
	}
	for _, pm := range methods {
		found[pm.PaymentMethodID] = pm
	}
	return found, nil
}

// FindDefaultPaymentMethod retrieves the default method of a type.
func (r *PgxPaymentMethodRepository) FindDefaultPaymentMethod(ctx context.Context, paymentType domain.PaymentType) (*domain.PaymentMethod, error) {
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods WHERE method_type = $1 AND is_default LIMIT 1;`
	m, err := scanPaymentMethod(r.db.QueryRow(ctx, query, string(paymentType)))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("find default %s payment method", paymentType))
	}
	pm := mapping.ToDomainPaymentMethod(m)
	return &pm, nil
}

// PaymentMethodInUse reports whether receipt transactions reference the method.
func (r *PgxPaymentMethodRepository) PaymentMethodInUse(ctx context.Context, paymentMethodID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM receipt_transactions WHERE payment_method_id = $1);`
	var inUse bool
	if err := r.db.QueryRow(ctx, query, paymentMethodID).Scan(&inUse); err != nil {
		return false, translateError(err, fmt.Sprintf("check usage of payment method %s", paymentMethodID))
	}
	return inUse, nil
}

// ListPaymentMethods lists payment methods, optionally of one type.
func (r *PgxPaymentMethodRepository) ListPaymentMethods(ctx context.Context, paymentType *domain.PaymentType) ([]domain.PaymentMethod, error) {
	t := ""
	if paymentType != nil {
		t = string(*paymentType)
	}
	return r.queryPaymentMethods(ctx, `
		SELECT `+paymentMethodColumns+`
		FROM payment_methods
		WHERE ($1::text = '' OR method_type = $1)
		ORDER BY method_type, is_default DESC, name;`, t)
}

// UpdatePaymentMethod rewrites descriptive fields and the default flag.
func (r *PgxPaymentMethodRepository) UpdatePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error {
	m := mapping.ToModelPaymentMethod(pm)
	query := `
		UPDATE payment_methods
		SET method_type = $2, name = $3, account_name = $4, account_number = $5, is_default = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE payment_method_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.PaymentMethodID, m.MethodType, m.Name, m.AccountName, m.AccountNumber, m.IsDefault, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("update payment method %s", m.PaymentMethodID))
	}
	return affectedOne(tag)
}

// DeletePaymentMethod removes a payment method that no transaction references.
func (r *PgxPaymentMethodRepository) DeletePaymentMethod(ctx context.Context, paymentMethodID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payment_methods WHERE payment_method_id = $1;`, paymentMethodID)
	if err != nil {
		return translateError(err, fmt.Sprintf("delete payment method %s", paymentMethodID))
	}
	return affectedOne(tag)
}

// LockPaymentMethod reads a payment method with FOR UPDATE. Only meaningful inside a transaction.
func (r *PgxPaymentMethodRepository) LockPaymentMethod(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods WHERE payment_method_id = $1 FOR UPDATE;`
	m, err := scanPaymentMethod(r.db.QueryRow(ctx, query, paymentMethodID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("lock payment method %s", paymentMethodID))
	}
	pm := mapping.ToDomainPaymentMethod(m)
	return &pm, nil
}

// UpdatePaymentMethodBalance persists a new balance.
func (r *PgxPaymentMethodRepository) UpdatePaymentMethodBalance(ctx context.Context, paymentMethodID string, balance decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	query := `UPDATE payment_methods SET balance = $2, last_updated_at = $3, last_updated_by = $4 WHERE payment_method_id = $1;`
	tag, err := r.db.Exec(ctx, query, paymentMethodID, balance, updatedAt, updatedBy)
	if err != nil {
		return translateError(err, fmt.Sprintf("update balance of payment method %s", paymentMethodID))
	}
	return affectedOne(tag)
}
