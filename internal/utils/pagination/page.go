package pagination

import (
	"math"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Normalize clamps page and limit into their valid ranges.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Window returns the half-open [start, end) bounds of page within total items,
// along with the page metadata. Pages past the end yield an empty window.
func Window(total, page, limit int) (start, end int, meta domain.Pagination) {
	page, limit = Normalize(page, limit)
	totalPages := (total + limit - 1) / limit

	// Compare by division so huge page numbers cannot overflow.
	if page-1 >= (total+limit-1)/limit {
		start = total
	} else {
		start = (page - 1) * limit
	}
	end = start + limit
	if end > total {
		end = total
	}

	return start, end, domain.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Offset converts a page/limit pair into a SQL offset, saturating at math.MaxInt.
func Offset(page, limit int) int {
	page, limit = Normalize(page, limit)
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}
