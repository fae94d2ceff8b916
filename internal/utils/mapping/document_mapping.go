package mapping

import (
	"github.com/SscSPs/billing_ledger/internal/core/domain"
	"github.com/SscSPs/billing_ledger/internal/models"
)

// ToModelDocument converts a domain Document to its row and item rows.
func ToModelDocument(d domain.Document) (models.Document, []models.LineItem) {
	doc := models.Document{
		DocumentID:     d.DocumentID,
		Kind:           string(d.Kind),
		Number:         d.Number,
		DocumentDate:   d.Date,
		ClientID:       d.ClientID,
		SubTotal:       d.SubTotal,
		DiscountType:   string(d.DiscountType),
		DiscountValue:  d.DiscountValue,
		DiscountAmount: d.DiscountAmount,
		Total:          d.Total,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	items := make([]models.LineItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = models.LineItem{
			DocumentID: d.DocumentID,
			Position:   i,
			Item:       it.Item,
			Quantity:   it.Quantity,
			Rate:       it.Rate,
			Total:      it.Total,
		}
	}
	return doc, items
}

// ToDomainDocument converts a document row and its item rows to a domain Document.
func ToDomainDocument(m models.Document, items []models.LineItem) domain.Document {
	doc := domain.Document{
		DocumentID:    m.DocumentID,
		Kind:          domain.DocumentKind(m.Kind),
		Number:        m.Number,
		Date:          m.DocumentDate,
		ClientID:      m.ClientID,
		DiscountType:  domain.DiscountType(m.DiscountType),
		DiscountValue: m.DiscountValue,
		Totals: domain.Totals{
			SubTotal:       m.SubTotal,
			DiscountAmount: m.DiscountAmount,
			Total:          m.Total,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
		Items:       make([]domain.LineItem, len(items)),
	}
	for i, it := range items {
		doc.Items[i] = domain.LineItem{Item: it.Item, Quantity: it.Quantity, Rate: it.Rate, Total: it.Total}
	}
	return doc
}
