package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/billing_ledger/internal/apperrors"
	"github.com/SscSPs/billing_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/billing_ledger/internal/models"
	"github.com/SscSPs/billing_ledger/internal/utils/mapping"
	"github.com/mattn/go-sqlite3"
)

type DocumentRepository struct {
	BaseRepository
}

var _ portsrepo.DocumentRepositoryFacade = (*DocumentRepository)(nil)

const documentColumns = `document_id, kind, number, document_date, client_id, sub_total, discount_type, discount_value, discount_amount, total, created_at, created_by, last_updated_at, last_updated_by`

func scanDocument(row scanner) (models.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID, &m.Kind, &m.Number, &m.DocumentDate, &m.ClientID,
		&m.SubTotal, &m.DiscountType, &m.DiscountValue, &m.DiscountAmount, &m.Total,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *DocumentRepository) insertItems(ctx context.Context, items []models.LineItem) error {
	for _, it := range items {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO document_items (document_id, position, item, quantity, rate, total)
			VALUES (?, ?, ?, ?, ?, ?);`,
			it.DocumentID, it.Position, it.Item, it.Quantity, it.Rate, it.Total,
		)
		if err != nil {
			return translateError(err, fmt.Sprintf("save item %d of document %s", it.Position, it.DocumentID))
		}
	}
	return nil
}

func (r *DocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	m, items := mapping.ToModelDocument(doc)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (`+documentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		m.DocumentID, m.Kind, m.Number, m.DocumentDate, m.ClientID,
		m.SubTotal, m.DiscountType, m.DiscountValue, m.DiscountAmount, m.Total,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateSaveError(err, m.Number)
	}
	return r.insertItems(ctx, items)
}

// translateSaveError singles out the number constraint from other uniqueness failures.
func translateSaveError(err error, number string) error {
	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) && sqErr.ExtendedCode == sqlite3.ErrConstraintUnique &&
		strings.Contains(sqErr.Error(), "documents.number") {
		return fmt.Errorf("%w: %s", apperrors.ErrNumberTaken, number)
	}
	return translateError(err, fmt.Sprintf("save document %s", number))
}

func (r *DocumentRepository) findItems(ctx context.Context, documentID string) ([]models.LineItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT document_id, position, item, quantity, rate, total
		FROM document_items WHERE document_id = ? ORDER BY position;`, documentID)
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

func (r *DocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	m, err := scanDocument(r.db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE document_id = ?;`, documentID))
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

func (r *DocumentRepository) FindLatestDocument(ctx context.Context, kind domain.DocumentKind) (*domain.Document, error) {
	m, err := scanDocument(r.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE kind = ? ORDER BY seq DESC LIMIT 1;`, string(kind)))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("find latest %s", kind))
	}
	doc := mapping.ToDomainDocument(m, nil)
	return &doc, nil
}

func (r *DocumentRepository) ListDocuments(ctx context.Context, filter portsrepo.DocumentFilter) ([]domain.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE (?1 = '' OR kind = ?1) AND (?2 = '' OR client_id = ?2)
		ORDER BY document_date DESC, seq DESC
		LIMIT ?3 OFFSET ?4;`,
		string(filter.Kind), filter.ClientID, filter.Limit, filter.Offset,
	)
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

func (r *DocumentRepository) UpdateDocument(ctx context.Context, doc domain.Document) error {
	m, items := mapping.ToModelDocument(doc)
	res, err := r.db.ExecContext(ctx, `
		UPDATE documents
		SET document_date = ?, client_id = ?, sub_total = ?, discount_type = ?, discount_value = ?,
		    discount_amount = ?, total = ?, last_updated_at = ?, last_updated_by = ?
		WHERE document_id = ?;`,
		m.DocumentDate, m.ClientID, m.SubTotal, m.DiscountType, m.DiscountValue,
		m.DiscountAmount, m.Total, m.LastUpdatedAt, m.LastUpdatedBy, m.DocumentID,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("update document %s", m.DocumentID))
	}
	if err := affectedOne(res); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM document_items WHERE document_id = ?;`, m.DocumentID); err != nil {
		return translateError(err, fmt.Sprintf("clear items of document %s", m.DocumentID))
	}
	return r.insertItems(ctx, items)
}

func (r *DocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE document_id = ?;`, documentID)
	if err != nil {
		return translateError(err, fmt.Sprintf("delete document %s", documentID))
	}
	return affectedOne(res)
}
