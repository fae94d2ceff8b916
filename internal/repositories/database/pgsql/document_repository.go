package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/billing_ledger/internal/apperrors"
	"github.com/SscSPs/billing_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/billing_ledger/internal/models"
	"github.com/SscSPs/billing_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const documentNumberConstraint = "documents_number_key"

type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(db DBTX) *PgxDocumentRepository {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{db: db}}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

const documentColumns = `document_id, kind, number, document_date, client_id, sub_total, discount_type, discount_value, discount_amount, total, created_at, created_by, last_updated_at, last_updated_by`

func scanDocument(row pgx.Row) (models.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID, &m.Kind, &m.Number, &m.DocumentDate, &m.ClientID,
		&m.SubTotal, &m.DiscountType, &m.DiscountValue, &m.DiscountAmount, &m.Total,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func queueItemInserts(batch *pgx.Batch, items []models.LineItem) {
	for _, it := range items {
		batch.Queue(`
			INSERT INTO document_items (document_id, position, item, quantity, rate, total)
			VALUES ($1, $2, $3, $4, $5, $6);`,
			it.DocumentID, it.Position, it.Item, it.Quantity, it.Rate, it.Total,
		)
	}
}

// SaveDocument inserts the document row and its items.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	m, items := mapping.ToModelDocument(doc)
	query := `INSERT INTO documents (` + documentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`
	_, err := r.db.Exec(ctx, query,
		m.DocumentID, m.Kind, m.Number, m.DocumentDate, m.ClientID,
		m.SubTotal, m.DiscountType, m.DiscountValue, m.DiscountAmount, m.Total,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == documentNumberConstraint {
			return fmt.Errorf("%w: %s", apperrors.ErrNumberTaken, m.Number)
		}
		return translateError(err, fmt.Sprintf("save document %s", m.Number))
	}

	batch := &pgx.Batch{}
	queueItemInserts(batch, items)
	return execBatch(ctx, r.db, batch, fmt.Sprintf("save items of document %s", m.Number))
}

func (r *PgxDocumentRepository) findItems(ctx context.Context, documentID string) ([]models.LineItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT document_id, position, item, quantity, rate, total
		FROM document_items WHERE document_id = $1 ORDER BY position;`, documentID)
	if err != nil {
		return nil, translateError(err, "query document items")
	}
	defer rows.Close()

	items := make([]models.LineItem, 0)
	for rows.Next() {
		var it models.LineItem
		if err := rows.Scan(&it.DocumentID, &it.Position, &it.Item, &it.Quantity, &it.Rate, &it.Total); err != nil {
			return nil, translateError(err, "scan document item")
		}
		items = append(items, it)
	}
	return items, translateError(rows.Err(), "iterate document items")
}

// FindDocumentByID retrieves a document with its items.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	m, err := scanDocument(r.db.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE document_id = $1;`, documentID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("find document %s", documentID))
	}
	items, err := r.findItems(ctx, documentID)
	if err != nil {
		return nil, err
	}
	doc := mapping.ToDomainDocument(m, items)
	return &doc, nil
}

// FindLatestDocument returns the last inserted document of a kind.
func (r *PgxDocumentRepository) FindLatestDocument(ctx context.Context, kind domain.DocumentKind) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE kind = $1 ORDER BY seq DESC LIMIT 1;`
	m, err := scanDocument(r.db.QueryRow(ctx, query, string(kind)))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("find latest %s", kind))
	}
	doc := mapping.ToDomainDocument(m, nil)
	return &doc, nil
}

// ListDocuments lists documents newest first.
func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, filter portsrepo.DocumentFilter) ([]domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE ($1::text = '' OR kind = $1) AND ($2::text = '' OR client_id = $2)
		ORDER BY document_date DESC, seq DESC
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.db.Query(ctx, query, string(filter.Kind), filter.ClientID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, translateError(err, "list documents")
	}
	defer rows.Close()

	docs := make([]domain.Document, 0)
	for rows.Next() {
		m, err := scanDocument(rows)
		if err != nil {
			return nil, translateError(err, "scan document")
		}
		docs = append(docs, mapping.ToDomainDocument(m, nil))
	}
	return docs, translateError(rows.Err(), "iterate documents")
}

// UpdateDocument rewrites the document's mutable fields and replaces its items.
func (r *PgxDocumentRepository) UpdateDocument(ctx context.Context, doc domain.Document) error {
	m, items := mapping.ToModelDocument(doc)
	query := `
		UPDATE documents
		SET document_date = $2, client_id = $3, sub_total = $4, discount_type = $5, discount_value = $6,
		    discount_amount = $7, total = $8, last_updated_at = $9, last_updated_by = $10
		WHERE document_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.DocumentID, m.DocumentDate, m.ClientID, m.SubTotal, m.DiscountType, m.DiscountValue,
		m.DiscountAmount, m.Total, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("update document %s", m.DocumentID))
	}
	if err := affectedOne(tag); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM document_items WHERE document_id = $1;`, m.DocumentID)
	queueItemInserts(batch, items)
	return execBatch(ctx, r.db, batch, fmt.Sprintf("replace items of document %s", m.DocumentID))
}

// DeleteDocument removes a document; items cascade.
func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE document_id = $1;`, documentID)
	if err != nil {
		return translateError(err, fmt.Sprintf("delete document %s", documentID))
	}
	return affectedOne(tag)
}
