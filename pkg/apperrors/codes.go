package apperrors

// ErrorCode is a machine-readable error identifier returned to clients.
type ErrorCode string

const (
	// System
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
	CodeTransactionAborted   ErrorCode = "TRANSACTION_ABORTED"

	// Business logic
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeAlreadyExists       ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
	CodeConstraintViolation ErrorCode = "CONSTRAINT_VIOLATION"
	CodeConflict            ErrorCode = "CONFLICT"
	CodeInvalidStatus       ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation    ErrorCode = "INVALID_OPERATION"
	CodeRedirect            ErrorCode = "REDIRECT"

	// Auth
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
)
