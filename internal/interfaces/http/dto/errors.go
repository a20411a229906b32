package dto

import (
	"net/http"
	"strings"
)

// General error codes used by the HTTP layer itself
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes. Codes
// starting with INVALID_ that are not listed fall back to 400.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,

	"ALREADY_EXISTS": http.StatusConflict,
	"HAS_DEPENDENTS": http.StatusConflict,

	// Business rule violations
	"INVALID_STATE":   http.StatusUnprocessableEntity,
	"DOCUMENT_LOCKED": http.StatusUnprocessableEntity,

	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,

	// A missing Cash or Expense account head is a provisioning defect,
	// not a client error.
	"CONFIG_MISSING": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
