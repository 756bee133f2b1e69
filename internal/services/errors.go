package services

import (
	"errors"
	"net/http"

	"nautikos_backend/internal/repositories"
	"nautikos_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// withTx runs fn as one transaction (a savepoint when db is already in one)
// and maps whatever aborted it onto the error taxonomy.
func withTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if err := db.Transaction(fn); err != nil {
		return txError(err)
	}
	return nil
}

func txError(err error) error {
	if appErr := knownError(err); appErr != nil {
		return appErr
	}
	return apperrors.TransactionAborted(err)
}

// readError maps a failure outside a transaction.
func readError(err error) error {
	if err == nil {
		return nil
	}
	if appErr := knownError(err); appErr != nil {
		return appErr
	}
	return apperrors.Wrap(err, apperrors.CodeDatabaseError, "database", "Database error", http.StatusInternalServerError)
}

func knownError(err error) *apperrors.AppError {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrJobSeekerNotFound):
		return apperrors.ErrJobSeekerNotFound
	case errors.Is(err, repositories.ErrAssignmentNotFound):
		return apperrors.ErrAssignmentNotFound
	case errors.Is(err, repositories.ErrReviewNotFound):
		return apperrors.ErrReviewNotFound
	case errors.Is(err, repositories.ErrInvitationNotFound):
		return apperrors.ErrInvitationNotFound
	case errors.Is(err, repositories.ErrVerificationNotFound):
		return apperrors.ErrInvalidVerificationCode
	}

	return repositories.TranslateError(err)
}
