package dto

import (
	"net/http"
	"strings"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeServiceUnavailable is used when a backing integration is switched off
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	// ErrCodeTokenRevoked is used when the auth token was logged out
	ErrCodeTokenRevoked = "ERR_TOKEN_REVOKED"
	// ErrCodeInvalidCredentials is used for a failed login
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	// ErrCodeAccountLocked is used after too many failed logins
	ErrCodeAccountLocked = "ERR_ACCOUNT_LOCKED"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	// ErrCodeEmailTaken is used when signing up with a registered e-mail
	ErrCodeEmailTaken = "ERR_EMAIL_TAKEN"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeInsufficientTokens is used when a property or holding has too few tokens
	ErrCodeInsufficientTokens = "ERR_INSUFFICIENT_TOKENS"
	// ErrCodeNoFeeTiers is used when no fee schedule is configured
	ErrCodeNoFeeTiers = "ERR_NO_FEE_TIERS"
	// ErrCodeAccreditationRequired is used when an unaccredited investor buys tokens
	ErrCodeAccreditationRequired = "ERR_ACCREDITATION_REQUIRED"
	// ErrCodeMarketClosed is used when staking on a closed market
	ErrCodeMarketClosed = "ERR_MARKET_CLOSED"
	// ErrCodeSelfReferral is used when inviting oneself
	ErrCodeSelfReferral = "ERR_SELF_REFERRAL"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:            http.StatusInternalServerError,
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeAccountLocked:      http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeEmailTaken:          http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:          http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:          http.StatusUnprocessableEntity,
	ErrCodeInsufficientTokens:    http.StatusUnprocessableEntity,
	ErrCodeNoFeeTiers:            http.StatusUnprocessableEntity,
	ErrCodeAccreditationRequired: http.StatusForbidden,
	ErrCodeMarketClosed:          http.StatusUnprocessableEntity,
	ErrCodeSelfReferral:          http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Codes missing from ErrorCodeHTTPStatus fall back on their shape:
// ERR_INVALID_* is 400, ERR_*_NOT_FOUND is 404, ERR_ALREADY_* is 409,
// anything else is 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasPrefix(code, "ERR_INVALID_"), strings.HasPrefix(code, "ERR_TOO_MANY_"):
		return http.StatusBadRequest
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasPrefix(code, "ERR_ALREADY_"):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes whose wire code differs
// from the plain ERR_ prefixed form
var DomainErrorCodeMapping = map[string]string{
	"INTERNAL_ERROR":      ErrCodeInternal,
	"VALIDATION_ERROR":    ErrCodeValidation,
	"TOKEN_INVALID":       ErrCodeTokenInvalid,
	"ACCOUNT_INACTIVE":    ErrCodeForbidden,
	"ACCOUNT_DEACTIVATED": ErrCodeForbidden,
	"ALREADY_REGISTERED":  ErrCodeAlreadyExists,
	"CODE_EXHAUSTED":      ErrCodeInternal,
	"PASSWORD_HASH_ERROR": ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the wire format.
// Codes already carrying the ERR_ prefix are returned unchanged.
func NormalizeErrorCode(code string) string {
	if code == "" {
		return ErrCodeUnknown
	}
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	if strings.HasPrefix(code, "ERR_") {
		return code
	}
	return "ERR_" + code
}
