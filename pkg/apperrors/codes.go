package apperrors

// ErrorCode identifies an error class on the wire.
type ErrorCode string

const (
	// System and unknown failures.
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
	CodeUnknownError         ErrorCode = "UNKNOWN_ERROR"

	// Generic business-logic codes used by the factories.
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeLimitExceeded    ErrorCode = "LIMIT_EXCEEDED"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Authentication and authorization.
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	// Credits and generation.
	CodeInsufficientCredits ErrorCode = "INSUFFICIENT_CREDITS"
	CodeGenerationFailed    ErrorCode = "GENERATION_FAILED"
	CodeMalformedResponse   ErrorCode = "MALFORMED_MODEL_RESPONSE"
	CodePersistenceIncident ErrorCode = "PERSISTENCE_INCIDENT"
	CodeRateLimited         ErrorCode = "RATE_LIMITED"
)
