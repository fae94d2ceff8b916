package sqlite

import (
	"context"
	"fmt"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/billing_ledger/internal/models"
	"github.com/SscSPs/billing_ledger/internal/utils/mapping"
)

type ReceiptRepository struct {
	BaseRepository
}

var _ portsrepo.ReceiptRepositoryFacade = (*ReceiptRepository)(nil)

const (
	receiptColumns     = `receipt_id, receipt_date, client_id, notes, created_at, created_by, last_updated_at, last_updated_by`
	transactionColumns = `transaction_id, receipt_id, position, amount, payment_type, payment_method_id, cheque_bank_name, cheque_number, cheque_branch_name, cheque_issue_date`
)

func scanReceipt(row scanner) (models.Receipt, error) {
	var m models.Receipt
	err := row.Scan(
		&m.ReceiptID, &m.ReceiptDate, &m.ClientID, &m.Notes,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func scanTransaction(row scanner) (models.ReceiptTransaction, error) {
	var t models.ReceiptTransaction
	err := row.Scan(
		&t.TransactionID, &t.ReceiptID, &t.Position, &t.Amount, &t.PaymentType, &t.PaymentMethodID,
		&t.ChequeBankName, &t.ChequeNumber, &t.ChequeBranchName, &t.ChequeIssueDate,
	)
	return t, err
}

func (r *ReceiptRepository) insertTransactions(ctx context.Context, txns []models.ReceiptTransaction) error {
	for _, t := range txns {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO receipt_transactions (`+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
			t.TransactionID, t.ReceiptID, t.Position, t.Amount, t.PaymentType, t.PaymentMethodID,
			t.ChequeBankName, t.ChequeNumber, t.ChequeBranchName, t.ChequeIssueDate,
		)
		if err != nil {
			return translateError(err, fmt.Sprintf("save transaction %d of receipt %s", t.Position, t.ReceiptID))
		}
	}
	return nil
}

// transactionsFor loads the transactions of every receipt in receiptIDs, grouped by receipt.
func (r *ReceiptRepository) transactionsFor(ctx context.Context, receiptIDs []string) (map[string][]models.ReceiptTransaction, error) {
	grouped := make(map[string][]models.ReceiptTransaction, len(receiptIDs))
	if len(receiptIDs) == 0 {
		return grouped, nil
	}
	in, args := inClause(receiptIDs)
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM receipt_transactions
		WHERE receipt_id IN `+in+`
		ORDER BY receipt_id, position;`, args...)
	if err != nil {
		return nil, translateError(err, "query receipt transactions")
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, translateError(err, "scan receipt transaction")
		}
		grouped[t.ReceiptID] = append(grouped[t.ReceiptID], t)
	}
	return grouped, translateError(rows.Err(), "iterate receipt transactions")
}

func (r *ReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt) error {
	m, txns := mapping.ToModelReceipt(receipt)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO receipts (`+receiptColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		m.ReceiptID, m.ReceiptDate, m.ClientID, m.Notes, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("save receipt %s", m.ReceiptID))
	}
	return r.insertTransactions(ctx, txns)
}

func (r *ReceiptRepository) FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	m, err := scanReceipt(r.db.QueryRowContext(ctx, `SELECT `+receiptColumns+` FROM receipts WHERE receipt_id = ?;`, receiptID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("find receipt %s", receiptID))
	}
	txns, err := r.transactionsFor(ctx, []string{receiptID})
	if err != nil {
		return nil, err
	}
	receipt := mapping.ToDomainReceipt(m, txns[receiptID])
	return &receipt, nil
}

// LockReceipt is a plain read: the surrounding BEGIN IMMEDIATE transaction
// already holds the database write lock.
func (r *ReceiptRepository) LockReceipt(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	return r.FindReceiptByID(ctx, receiptID)
}

// ListReceipts reads the receipt page fully before loading transactions; with a
// single connection an open cursor would block the second query.
func (r *ReceiptRepository) ListReceipts(ctx context.Context, filter portsrepo.ReceiptFilter) ([]domain.Receipt, error) {
	heads, err := r.listHeads(ctx, filter)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(heads))
	for i, h := range heads {
		ids[i] = h.ReceiptID
	}
	txns, err := r.transactionsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	receipts := make([]domain.Receipt, len(heads))
	for i, h := range heads {
		receipts[i] = mapping.ToDomainReceipt(h, txns[h.ReceiptID])
	}
	return receipts, nil
}

func (r *ReceiptRepository) listHeads(ctx context.Context, filter portsrepo.ReceiptFilter) ([]models.Receipt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+receiptColumns+`
		FROM receipts
		WHERE (?1 = '' OR client_id = ?1)
		ORDER BY receipt_date DESC, seq DESC
		LIMIT ?2 OFFSET ?3;`, filter.ClientID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, translateError(err, "list receipts")
	}
	defer rows.Close()

	heads := make([]models.Receipt, 0)
	for rows.Next() {
		m, err := scanReceipt(rows)
		if err != nil {
			return nil, translateError(err, "scan receipt")
		}
		heads = append(heads, m)
	}
	return heads, translateError(rows.Err(), "iterate receipts")
}

func (r *ReceiptRepository) UpdateReceipt(ctx context.Context, receipt domain.Receipt) error {
	m, _ := mapping.ToModelReceipt(receipt)
	res, err := r.db.ExecContext(ctx, `
		UPDATE receipts
		SET receipt_date = ?, client_id = ?, notes = ?, last_updated_at = ?, last_updated_by = ?
		WHERE receipt_id = ?;`,
		m.ReceiptDate, m.ClientID, m.Notes, m.LastUpdatedAt, m.LastUpdatedBy, m.ReceiptID,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("update receipt %s", m.ReceiptID))
	}
	return affectedOne(res)
}

func (r *ReceiptRepository) ReplaceTransactions(ctx context.Context, receiptID string, txns []domain.Transaction) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM receipt_transactions WHERE receipt_id = ?;`, receiptID); err != nil {
		return translateError(err, fmt.Sprintf("clear transactions of receipt %s", receiptID))
	}
	return r.insertTransactions(ctx, mapping.ToModelTransactions(receiptID, txns))
}

func (r *ReceiptRepository) DeleteReceipt(ctx context.Context, receiptID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM receipts WHERE receipt_id = ?;`, receiptID)
	if err != nil {
		return translateError(err, fmt.Sprintf("delete receipt %s", receiptID))
	}
	return affectedOne(res)
}
