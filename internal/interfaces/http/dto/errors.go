package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the access token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the access token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeDuplicateRequest is used when an idempotency key was already processed
	ErrCodeDuplicateRequest = "ERR_DUPLICATE_REQUEST"
)

// Statement editing error codes
const (
	// ErrCodePathNotFound is used when a line item ID does not exist in the statement
	ErrCodePathNotFound = "ERR_PATH_NOT_FOUND"
	// ErrCodeInvalidPath is used when a line item reference is malformed
	ErrCodeInvalidPath = "ERR_INVALID_PATH"
	// ErrCodeMaxChildren is used when a parent already holds its maximum sub-items
	ErrCodeMaxChildren = "ERR_MAX_CHILDREN"
	// ErrCodePinnedItem is used when a pinned line item is mutated or moved
	ErrCodePinnedItem = "ERR_PINNED_ITEM"
	// ErrCodeSubtotalReadOnly is used when amounts are edited on a subtotal parent
	ErrCodeSubtotalReadOnly = "ERR_SUBTOTAL_READ_ONLY"
	// ErrCodeInvalidCloneCount is used when a clone count is out of range
	ErrCodeInvalidCloneCount = "ERR_INVALID_CLONE_COUNT"
	// ErrCodeUnknownField is used when an amount edit names an unknown field
	ErrCodeUnknownField = "ERR_UNKNOWN_FIELD"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodePlanLimitExceeded is used when the tenant's plan quota is exhausted
	ErrCodePlanLimitExceeded = "ERR_PLAN_LIMIT_EXCEEDED"
	// ErrCodeUploadNotFound is used when a confirmed attachment is absent from storage
	ErrCodeUploadNotFound = "ERR_UPLOAD_NOT_FOUND"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// Availability error codes
const (
	// ErrCodePrintingDisabled is used when PDF rendering is not enabled on this server
	ErrCodePrintingDisabled = "ERR_PRINTING_DISABLED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation: http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeAlreadyExists:    http.StatusConflict,
	ErrCodeConflict:         http.StatusConflict,
	ErrCodeDuplicateRequest: http.StatusConflict,

	// Statement editing errors
	ErrCodePathNotFound:      http.StatusNotFound,
	ErrCodeInvalidPath:       http.StatusBadRequest,
	ErrCodeMaxChildren:       http.StatusUnprocessableEntity,
	ErrCodePinnedItem:        http.StatusUnprocessableEntity,
	ErrCodeSubtotalReadOnly:  http.StatusUnprocessableEntity,
	ErrCodeInvalidCloneCount: http.StatusBadRequest,
	ErrCodeUnknownField:      http.StatusBadRequest,

	// Business rule errors
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodePlanLimitExceeded: http.StatusForbidden,
	ErrCodeUploadNotFound:    http.StatusConflict,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,

	// Availability -> 503 Service Unavailable
	ErrCodePrintingDisabled: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to wire-level codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":           ErrCodeNotFound,
	"ALREADY_EXISTS":      ErrCodeAlreadyExists,
	"INVALID_INPUT":       ErrCodeInvalidInput,
	"INVALID_STATE":       ErrCodeInvalidState,
	"UNAUTHORIZED":        ErrCodeUnauthorized,
	"FORBIDDEN":           ErrCodeForbidden,
	"PLAN_LIMIT_EXCEEDED": ErrCodePlanLimitExceeded,
	"PATH_NOT_FOUND":      ErrCodePathNotFound,
	"INVALID_PATH":        ErrCodeInvalidPath,
	"MAX_CHILDREN":        ErrCodeMaxChildren,
	"PINNED_ITEM":         ErrCodePinnedItem,
	"SUBTOTAL_READ_ONLY":  ErrCodeSubtotalReadOnly,
	"INVALID_CLONE_COUNT": ErrCodeInvalidCloneCount,
	"UNKNOWN_FIELD":       ErrCodeUnknownField,
	"UPLOAD_NOT_FOUND":    ErrCodeUploadNotFound,
	"PRINTING_DISABLED":   ErrCodePrintingDisabled,
	"INTERNAL_ERROR":      ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the wire-level format
// If the code is already in the wire format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if wireCode, ok := DomainErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}
