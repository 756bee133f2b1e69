package apperrors

import (
	"net/http"
)

/*
Predefined domain errors. WithDetails and WithError return copies, so these
values can be decorated per request.
*/

// ErrNotFound wraps a repository miss into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrConflict is a generic 409.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation is a generic 400 for a rule the request breaks.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Auth ---

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
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

var ErrUserNotVerified = New(
	CodeForbidden,
	"auth",
	"Please verify your email address",
	http.StatusForbidden,
)

// --- Users & profiles ---

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

var ErrJobSeekerNotFound = New(
	CodeNotFound,
	"job_seeker",
	"Job seeker profile not found",
	http.StatusNotFound,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"user",
	"An account with that email already exists",
	http.StatusConflict,
)

var ErrInvitationPending = New(
	CodeAlreadyExists,
	"user",
	"An invitation is pending for that email, accept it instead",
	http.StatusConflict,
)

// --- Onboarding ---

var ErrOnboardingIncomplete = New(
	CodeInvalidStatus,
	"onboarding",
	"All onboarding sections must be complete",
	http.StatusConflict,
)

// --- Moderation ---

var ErrCandidateNotEligible = New(
	CodeInvalidOperation,
	"moderation",
	"Only verified and onboarded job seekers can be assigned",
	http.StatusBadRequest,
)

var ErrModeratorNotEligible = New(
	CodeInvalidOperation,
	"moderation",
	"Assignee must be a verified moderator",
	http.StatusBadRequest,
)

var ErrNotAssignedModerator = New(
	CodeForbidden,
	"moderation",
	"Only the assigned moderator or an admin can review this candidate",
	http.StatusForbidden,
)

var ErrAssignmentNotFound = New(
	CodeNotFound,
	"moderation",
	"Assignment not found",
	http.StatusNotFound,
)

var ErrAssignmentNotActive = New(
	CodeInvalidStatus,
	"moderation",
	"Assignment is not active",
	http.StatusConflict,
)

var ErrReviewNotFound = New(
	CodeNotFound,
	"moderation",
	"Review comment not found",
	http.StatusNotFound,
)

// --- Invitations ---

var ErrInvitationNotFound = New(
	CodeNotFound,
	"invitation",
	"User invitation not found",
	http.StatusNotFound,
)

var ErrInvitationNotPending = New(
	CodeInvalidStatus,
	"invitation",
	"Invitation is no longer pending",
	http.StatusConflict,
)

var ErrInvalidVerificationCode = New(
	CodeInvalidToken,
	"verification",
	"Invalid or expired verification code",
	http.StatusBadRequest,
)

// --- Billing ---

var ErrAccessAlreadyGranted = New(
	CodeConflict,
	"billing",
	"Payment has already been received",
	http.StatusConflict,
)

var ErrPaymentsNotConfigured = New(
	CodeExternalServiceError,
	"billing",
	"Payments are not available",
	http.StatusServiceUnavailable,
)

var ErrWebhookTooLarge = New(
	CodeValidationFailed,
	"billing",
	"Webhook payload too large",
	http.StatusRequestEntityTooLarge,
)
