package dto

import "net/http"

// Error codes surfaced by the API. Domain errors carry these codes directly;
// the HTTP layer only maps them to status codes and never rewrites messages.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	// Validation failures -> 400 Bad Request
	"INVALID_INPUT":       http.StatusBadRequest,
	"INVALID_AMOUNT":      http.StatusBadRequest,
	"INVALID_CURRENCY":    http.StatusBadRequest,
	"INVALID_SENDER":      http.StatusBadRequest,
	"INVALID_BRANCH_CODE": http.StatusBadRequest,
	"INVALID_BRANCH_NAME": http.StatusBadRequest,
	"INVALID_TAX_RATE":    http.StatusBadRequest,
	"INVALID_ENTRY_TYPE":  http.StatusBadRequest,
	"INVALID_STATUS":      http.StatusBadRequest,

	// Missing resources -> 404 Not Found
	ErrCodeNotFound:         http.StatusNotFound,
	"BRANCH_NOT_FOUND":      http.StatusNotFound,
	"TRANSACTION_NOT_FOUND": http.StatusNotFound,

	// Uniqueness collisions -> 409 Conflict
	"ALREADY_EXISTS":     http.StatusConflict,
	"INTEGRITY_CONFLICT": http.StatusConflict,

	// Business rule violations -> 422 Unprocessable Entity
	"INSUFFICIENT_FUNDS": http.StatusUnprocessableEntity,
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"ALREADY_RECEIVED":   http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
