package apperrors

import (
	"net/http"
)

// Factories for wrapping lower-layer errors.

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound)
// into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Credits ---

// ErrInsufficientCredits carries the declared cost and the balance observed
// at rejection time so clients can prompt a top-up.
func ErrInsufficientCredits(required, balance int) *AppError {
	return New(
		CodeInsufficientCredits,
		"credits",
		"Insufficient credits for this operation",
		http.StatusPaymentRequired,
	).WithDetails(map[string]int{"required": required, "balance": balance})
}

var ErrDuplicateReference = New(
	CodeConflict,
	"credits",
	"A transaction with this reference has already been recorded",
	http.StatusConflict,
)

// --- Generation ---

// ErrGenerationFailed covers provider refusals, timeouts and exhausted
// retries. No credits are charged when this is returned.
func ErrGenerationFailed(err error) *AppError {
	return Wrap(err, CodeGenerationFailed, "generation", "Generation request failed", http.StatusBadGateway)
}

// ErrMalformedResponse covers provider output that failed JSON or schema
// checks. No credits are charged when this is returned.
func ErrMalformedResponse(err error) *AppError {
	return Wrap(err, CodeMalformedResponse, "generation", "Model returned a malformed response", http.StatusBadGateway)
}

// ErrPersistenceIncident covers a generated artifact that could not be
// stored. The user is not charged; operations are alerted.
func ErrPersistenceIncident(err error) *AppError {
	return Wrap(err, CodePersistenceIncident, "generation", "Generated content could not be saved", http.StatusInternalServerError)
}

var ErrRateLimited = New(
	CodeRateLimited,
	"ratelimit",
	"Too many requests, slow down",
	http.StatusTooManyRequests,
)

// --- Auth & user status ---

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

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
	"Invalid token",
	http.StatusUnauthorized,
)

var ErrTokenExpired = New(
	CodeTokenExpired,
	"auth",
	"Token has expired",
	http.StatusUnauthorized,
)

var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

// --- Billing ---

var ErrInvalidWebhookSignature = New(
	CodeForbidden,
	"billing",
	"Invalid webhook signature",
	http.StatusForbidden,
)

var ErrInvalidPaymentAmount = New(
	CodeConflict,
	"billing",
	"Invalid payment amount",
	http.StatusConflict,
)
