package dto

import "github.com/SscSPs/billing_ledger/internal/core/domain"

// PaginationResponse describes the page returned by a paged listing.
type PaginationResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ListParams carries limit/offset paging for plain listings.
type ListParams struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func ToPaginationResponse(p domain.Pagination) PaginationResponse {
	return PaginationResponse{Page: p.Page, Limit: p.Limit, Total: p.Total, TotalPages: p.TotalPages}
}
