package services

import (
	"nautikos_backend/internal/auth"
	"nautikos_backend/internal/models"
	"nautikos_backend/pkg/apperrors"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID string
	Role   models.UserRole
}

func (a Actor) Is(role models.UserRole) bool {
	return a.Role == role
}

func (a Actor) Can(permission string) bool {
	return auth.HasPermission(a.Role, permission)
}

func (a Actor) require(permission string) error {
	if a.UserID == "" {
		return apperrors.NewUnauthorizedError("User not authenticated")
	}
	if !a.Can(permission) {
		return apperrors.ErrInsufficientPermissions
	}
	return nil
}
