package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/billing_ledger/internal/models"
	"github.com/SscSPs/billing_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxReceiptRepository struct {
	BaseRepository
}

func newPgxReceiptRepository(db DBTX) *PgxReceiptRepository {
	return &PgxReceiptRepository{BaseRepository: BaseRepository{db: db}}
}

var _ portsrepo.ReceiptRepositoryFacade = (*PgxReceiptRepository)(nil)

const (
	receiptColumns     = `receipt_id, receipt_date, client_id, notes, created_at, created_by, last_updated_at, last_updated_by`
	transactionColumns = `transaction_id, receipt_id, position, amount, payment_type, payment_method_id, cheque_bank_name, cheque_number, cheque_branch_name, cheque_issue_date`
)

func scanReceipt(row pgx.Row) (models.Receipt, error) {
	var m models.Receipt
	err := row.Scan(
		&m.ReceiptID, &m.ReceiptDate, &m.ClientID, &m.Notes,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func scanTransaction(row pgx.Row) (models.ReceiptTransaction, error) {
	var t models.ReceiptTransaction
	err := row.Scan(
		&t.TransactionID, &t.ReceiptID, &t.Position, &t.Amount, &t.PaymentType, &t.PaymentMethodID,
		&t.ChequeBankName, &t.ChequeNumber, &t.ChequeBranchName, &t.ChequeIssueDate,
	)
	return t, err
}

func queueTransactionInserts(batch *pgx.Batch, txns []models.ReceiptTransaction) {
	for _, t := range txns {
		batch.Queue(`INSERT INTO receipt_transactions (`+transactionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
			t.TransactionID, t.ReceiptID, t.Position, t.Amount, t.PaymentType, t.PaymentMethodID,
			t.ChequeBankName, t.ChequeNumber, t.ChequeBranchName, t.ChequeIssueDate,
		)
	}
}

// transactionsFor loads the transactions of every receipt in receiptIDs, grouped by receipt.
func (r *PgxReceiptRepository) transactionsFor(ctx context.Context, receiptIDs []string) (map[string][]models.ReceiptTransaction, error) {
	grouped := make(map[string][]models.ReceiptTransaction, len(receiptIDs))
	if len(receiptIDs) == 0 {
		return grouped, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM receipt_transactions
		WHERE receipt_id = ANY($1)
		ORDER BY receipt_id, position;`, receiptIDs)
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

// SaveReceipt inserts the receipt row and its transactions.
func (r *PgxReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt) error {
	m, txns := mapping.ToModelReceipt(receipt)
	query := `INSERT INTO receipts (` + receiptColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := r.db.Exec(ctx, query,
		m.ReceiptID, m.ReceiptDate, m.ClientID, m.Notes, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("save receipt %s", m.ReceiptID))
	}

	batch := &pgx.Batch{}
	queueTransactionInserts(batch, txns)
	return execBatch(ctx, r.db, batch, fmt.Sprintf("save transactions of receipt %s", m.ReceiptID))
}

// FindReceiptByID retrieves a receipt with its transactions.
func (r *PgxReceiptRepository) FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	m, err := scanReceipt(r.db.QueryRow(ctx, `SELECT `+receiptColumns+` FROM receipts WHERE receipt_id = $1;`, receiptID))
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

// LockReceipt reads a receipt with FOR UPDATE. Only meaningful inside a transaction.
func (r *PgxReceiptRepository) LockReceipt(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE receipt_id = $1 FOR UPDATE;`
	m, err := scanReceipt(r.db.QueryRow(ctx, query, receiptID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("lock receipt %s", receiptID))
	}
	txns, err := r.transactionsFor(ctx, []string{receiptID})
	if err != nil {
		return nil, err
	}
	receipt := mapping.ToDomainReceipt(m, txns[receiptID])
	return &receipt, nil
}

// ListReceipts lists receipts newest first, with their transactions.
func (r *PgxReceiptRepository) ListReceipts(ctx context.Context, filter portsrepo.ReceiptFilter) ([]domain.Receipt, error) {
	query := `
		SELECT ` + receiptColumns + `
		FROM receipts
		WHERE ($1::text = '' OR client_id = $1)
		ORDER BY receipt_date DESC, seq DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, filter.ClientID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, translateError(err, "list receipts")
	}
	heads := make([]models.Receipt, 0)
	for rows.Next() {
		m, err := scanReceipt(rows)
		if err != nil {
			rows.Close()
			return nil, translateError(err, "scan receipt")
		}
		heads = append(heads, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "iterate receipts")
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

// UpdateReceipt rewrites the receipt's own fields.
func (r *PgxReceiptRepository) UpdateReceipt(ctx context.Context, receipt domain.Receipt) error {
	m, _ := mapping.ToModelReceipt(receipt)
	query := `
		UPDATE receipts
		SET receipt_date = $2, client_id = $3, notes = $4, last_updated_at = $5, last_updated_by = $6
		WHERE receipt_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, m.ReceiptID, m.ReceiptDate, m.ClientID, m.Notes, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return translateError(err, fmt.Sprintf("update receipt %s", m.ReceiptID))
	}
	return affectedOne(tag)
}

// ReplaceTransactions swaps the full transaction set of a receipt.
func (r *PgxReceiptRepository) ReplaceTransactions(ctx context.Context, receiptID string, txns []domain.Transaction) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM receipt_transactions WHERE receipt_id = $1;`, receiptID)
	queueTransactionInserts(batch, mapping.ToModelTransactions(receiptID, txns))
	return execBatch(ctx, r.db, batch, fmt.Sprintf("replace transactions of receipt %s", receiptID))
}

// DeleteReceipt removes a receipt; transactions cascade.
func (r *PgxReceiptRepository) DeleteReceipt(ctx context.Context, receiptID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM receipts WHERE receipt_id = $1;`, receiptID)
	if err != nil {
		return translateError(err, fmt.Sprintf("delete receipt %s", receiptID))
	}
	return affectedOne(tag)
}
