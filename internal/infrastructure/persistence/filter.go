package persistence

import (
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared"
	"gorm.io/gorm"
)

// applyFilter applies pagination and ordering to a query. The sort column
// is checked against the model's allowed set; anything else falls back to
// defaultOrder.
func applyFilter(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultOrder string) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if field := ValidateSortField(filter.OrderBy, allowed, ""); field != "" {
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else if defaultOrder != "" {
		query = query.Order(defaultOrder)
	}

	return query
}
