package apperrors

import (
	"net/http"
)

// Factories and predefined variables for domain errors shared across
// services. Repository-level sentinel errors get wrapped into these at
// the service boundary.

// ErrNotFound wraps a repository "not found" error (404).
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists wraps a repository duplicate error (409).
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the generic conflict factory (409).
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation is the factory for operations the current state
// does not permit (400).
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Auth ---

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

// --- Credits ---

// ErrInsufficientCredits is returned when the available balance cannot
// cover the cost of a billable action.
var ErrInsufficientCredits = New(
	CodeInsufficientCredits,
	"credits",
	"Insufficient credits",
	http.StatusForbidden,
)

// ErrInvalidCreditAmount rejects purchases outside the allowed range.
var ErrInvalidCreditAmount = New(
	CodeValidationFailed,
	"credits",
	"Credit amount must be between 1 and 10000",
	http.StatusBadRequest,
)

// --- Subscriptions & services ---

// ErrServiceNotAvailable is returned when the active plan does not
// include the requested service.
var ErrServiceNotAvailable = New(
	CodeForbidden,
	"subscription",
	"This service is not available in your current subscription plan",
	http.StatusForbidden,
)

// ErrUsageLimitReached is returned when the per-period usage allowance
// of the active plan is exhausted.
var ErrUsageLimitReached = New(
	CodeUsageLimitReached,
	"subscription",
	"Usage limit for this service has been reached for the current period",
	http.StatusForbidden,
)

var ErrNoActiveSubscription = New(
	CodeNotFound,
	"subscription",
	"No active subscription found",
	http.StatusNotFound,
)

// --- Payments ---

// ErrInvalidWebhookSignature rejects webhooks that fail provider
// signature verification. Nothing is written when this fires.
var ErrInvalidWebhookSignature = New(
	CodeInvalidSignature,
	"payment",
	"Invalid webhook signature",
	http.StatusForbidden,
)

// ErrPaddleError covers failures talking to the payment provider API.
var ErrPaddleError = New(
	CodeExternalServiceError,
	"payment",
	"Payment provider error",
	http.StatusServiceUnavailable,
)

// --- Scheduler ---

var ErrScheduleInPast = New(
	CodeValidationFailed,
	"scheduler",
	"Scheduled time must be in the future",
	http.StatusBadRequest,
)

var ErrContentNotEditable = New(
	CodeInvalidOperation,
	"scheduler",
	"Only scheduled content can be modified",
	http.StatusConflict,
)
