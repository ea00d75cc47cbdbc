package persistence

import "strings"

// ValidateSortOrder normalizes a caller-supplied sort direction. Anything
// other than "desc" sorts ascending.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "desc") {
		return "DESC"
	}
	return "ASC"
}

// ValidateSortField validates the sort column against a whitelist of allowed
// columns. Returns defaultField when the input is empty or not in the
// whitelist, so caller-supplied text never reaches the ORDER BY clause.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// Allowed sort columns per listing surface.
var (
	BranchSortFields = map[string]bool{
		"id":         true,
		"code":       true,
		"name":       true,
		"tax_rate":   true,
		"created_at": true,
		"updated_at": true,
	}

	BranchFundSortFields = map[string]bool{
		"created_at": true,
		"amount":     true,
		"entry_type": true,
		"currency":   true,
	}

	TransactionSortFields = map[string]bool{
		"date":                  true,
		"created_at":            true,
		"amount":                true,
		"status":                true,
		"branch_id":             true,
		"destination_branch_id": true,
	}

	BranchProfitSortFields = map[string]bool{
		"date":        true,
		"created_at":  true,
		"amount":      true,
		"source_type": true,
	}
)
