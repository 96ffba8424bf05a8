package apperrors

// ErrorCode identifies an error category in API responses.
type ErrorCode string

const (
	// System errors
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Generic business-logic errors
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeLimitExceeded    ErrorCode = "LIMIT_EXCEEDED"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Authentication / authorization
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Billing
	CodeInsufficientCredits ErrorCode = "INSUFFICIENT_CREDITS"
	CodeUsageLimitReached   ErrorCode = "USAGE_LIMIT_REACHED"
	CodeInvalidSignature    ErrorCode = "INVALID_SIGNATURE"
)
