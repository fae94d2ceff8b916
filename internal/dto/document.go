package dto

import (
	"time"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one line of a bill or estimate. Total may be supplied
// pre-rounded by the caller; when zero it is computed as quantity*rate.
type LineItemRequest struct {
	Item     string          `json:"item" validate:"required"`
	Quantity decimal.Decimal `json:"quantity" validate:"gt=0"`
	Rate     decimal.Decimal `json:"rate" validate:"gt=0"`
	Total    decimal.Decimal `json:"total" validate:"gte=0"`
}

// CreateDocumentRequest defines the data needed to create a bill or an estimate.
type CreateDocumentRequest struct {
	Kind          domain.DocumentKind `json:"kind" validate:"required,oneof=bill estimate"`
	Date          time.Time           `json:"date" validate:"required"`
	ClientID      string              `json:"clientId" validate:"required"`
	Items         []LineItemRequest   `json:"items" validate:"min=1,dive"`
	DiscountType  domain.DiscountType `json:"discountType" validate:"omitempty,oneof=rate amount"`
	DiscountValue decimal.Decimal     `json:"discountValue" validate:"gte=0"`
}

// UpdateEstimateRequest replaces the editable content of an estimate. The number never changes.
type UpdateEstimateRequest struct {
	Date          time.Time           `json:"date" validate:"required"`
	ClientID      string              `json:"clientId" validate:"required"`
	Items         []LineItemRequest   `json:"items" validate:"min=1,dive"`
	DiscountType  domain.DiscountType `json:"discountType" validate:"omitempty,oneof=rate amount"`
	DiscountValue decimal.Decimal     `json:"discountValue" validate:"gte=0"`
}

// ListDocumentsParams filters document listings.
type ListDocumentsParams struct {
	Kind     domain.DocumentKind `form:"kind" validate:"omitempty,oneof=bill estimate"`
	ClientID string              `form:"clientId"`
	ListParams
}

type LineItemResponse struct {
	Item     string          `json:"item"`
	Quantity decimal.Decimal `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Total    decimal.Decimal `json:"total"`
}

// DocumentResponse defines the data returned for a bill or estimate.
type DocumentResponse struct {
	DocumentID     string             `json:"documentId"`
	Kind           string             `json:"kind"`
	Number         string             `json:"number"`
	Date           time.Time          `json:"date"`
	ClientID       string             `json:"clientId"`
	Items          []LineItemResponse `json:"items,omitempty"`
	SubTotal       decimal.Decimal    `json:"subTotal"`
	DiscountType   string             `json:"discountType"`
	DiscountValue  decimal.Decimal    `json:"discountValue"`
	DiscountAmount decimal.Decimal    `json:"discountAmount"`
	Total          decimal.Decimal    `json:"total"`
	CreatedAt      time.Time          `json:"createdAt"`
	LastUpdatedAt  time.Time          `json:"lastUpdatedAt"`
}

type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// ToLineItems converts request lines to domain lines, filling missing totals.
func ToLineItems(reqs []LineItemRequest) []domain.LineItem {
	items := make([]domain.LineItem, len(reqs))
	for i, r := range reqs {
		total := r.Total
		if total.IsZero() {
			total = r.Quantity.Mul(r.Rate)
		}
		items[i] = domain.LineItem{Item: r.Item, Quantity: r.Quantity, Rate: r.Rate, Total: total}
	}
	return items
}

func ToDocumentResponse(d *domain.Document) DocumentResponse {
	resp := DocumentResponse{
		DocumentID:     d.DocumentID,
		Kind:           string(d.Kind),
		Number:         d.Number,
		Date:           d.Date,
		ClientID:       d.ClientID,
		SubTotal:       d.SubTotal,
		DiscountType:   string(d.DiscountType),
		DiscountValue:  d.DiscountValue,
		DiscountAmount: d.DiscountAmount,
		Total:          d.Total,
		CreatedAt:      d.CreatedAt,
		LastUpdatedAt:  d.LastUpdatedAt,
	}
	if len(d.Items) > 0 {
		resp.Items = make([]LineItemResponse, len(d.Items))
		for i, it := range d.Items {
			resp.Items[i] = LineItemResponse{Item: it.Item, Quantity: it.Quantity, Rate: it.Rate, Total: it.Total}
		}
	}
	return resp
}

func ToListDocumentsResponse(docs []domain.Document) ListDocumentsResponse {
	out := ListDocumentsResponse{Documents: make([]DocumentResponse, len(docs))}
	for i := range docs {
		out.Documents[i] = ToDocumentResponse(&docs[i])
	}
	return out
}
