package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"nautikos_backend/internal/auth"
	"nautikos_backend/internal/logger"
	"nautikos_backend/internal/models"
	"nautikos_backend/internal/repositories"
	"nautikos_backend/internal/services/dto"
	"nautikos_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type InvitationService interface {
	// InviteUser creates (or re-sends) an invitation with a fresh code.
	InviteUser(ctx context.Context, db *gorm.DB, actor Actor, req *dto.InviteUserRequest) (*models.UserInvitation, *dto.Notification, error)
	RevokeInvitation(ctx context.Context, db *gorm.DB, actor Actor, invitationID string) (*models.UserInvitation, error)
	ListInvitations(ctx context.Context, db *gorm.DB, actor Actor, status models.InvitationStatus) ([]models.UserInvitation, error)

	// AcceptInvitation turns a pending invitation into a verified account.
	AcceptInvitation(ctx context.Context, db *gorm.DB, req *dto.AcceptInvitationRequest) (*models.User, error)
}

type invitationService struct {
	userRepo       repositories.UserRepository
	invitationRepo repositories.InvitationRepository
	codes          codeStore
	appURL         string
	now            func() time.Time
}

func NewInvitationService(
	userRepo repositories.UserRepository,
	invitationRepo repositories.InvitationRepository,
	codes *auth.CodeIssuer,
	appURL string,
) InvitationService {
	return &invitationService{
		userRepo:       userRepo,
		invitationRepo: invitationRepo,
		codes:          codeStore{repo: invitationRepo, codes: codes},
		appURL:         strings.TrimRight(appURL, "/"),
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func newProfile(firstName, lastName *string) *models.UserProfile {
	profile := &models.UserProfile{}
	if firstName != nil {
		profile.FirstName = strings.TrimSpace(*firstName)
	}
	if lastName != nil {
		profile.LastName = strings.TrimSpace(*lastName)
	}
	return profile
}

func (s *invitationService) InviteUser(ctx context.Context, db *gorm.DB, actor Actor, req *dto.InviteUserRequest) (*models.UserInvitation, *dto.Notification, error) {
	if err := actor.require(auth.PermInvitationsManage); err != nil {
		return nil, nil, err
	}

	email := normalizeEmail(req.Email)
	if _, err := s.userRepo.FindByEmail(db.WithContext(ctx), email); err == nil {
		return nil, nil, apperrors.ValidationError(map[string]string{"email": "An account with that email already exists"})
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, nil, readError(err)
	}

	var (
		invitation *models.UserInvitation
		code       string
	)
	err := withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		var verification *models.Verification
		var err error
		verification, code, err = s.codes.issue(tx, email, models.VerificationTypeOnboarding, s.now())
		if err != nil {
			return err
		}

		invitation, err = s.invitationRepo.UpsertInvitation(tx, &models.UserInvitation{
			Email:            email,
			Role:             req.Role,
			OrganizationName: req.OrganizationName,
			SenderID:         actor.UserID,
			VerificationID:   &verification.ID,
			Status:           models.InvitationStatusPending,
		})
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	notice := &dto.Notification{
		Recipient: email,
		Event:     dto.EventUserInvited,
		Data: map[string]string{
			"RoleLabel": req.Role.Label(),
			"Code":      code,
			"ExpiresIn": s.codes.expiresIn(),
			"AcceptURL": verifyURL(s.appURL, email, models.VerificationTypeOnboarding, code),
		},
	}

	logger.CtxInfo(ctx, "Invitation sent", "invitation_id", invitation.ID, "role", invitation.Role)
	return invitation, notice, nil
}

func (s *invitationService) RevokeInvitation(ctx context.Context, db *gorm.DB, actor Actor, invitationID string) (*models.UserInvitation, error) {
	if err := actor.require(auth.PermInvitationsManage); err != nil {
		return nil, err
	}

	var invitation *models.UserInvitation
	err := withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		inv, err := s.invitationRepo.FindByID(tx, invitationID)
		if err != nil {
			return err
		}
		if inv.Status != models.InvitationStatusPending {
			return apperrors.ErrInvitationNotPending
		}
		if inv.VerificationID != nil {
			if err := s.invitationRepo.DeleteVerification(tx, *inv.VerificationID); err != nil {
				return err
			}
		}
		if err := s.invitationRepo.UpdateStatus(tx, inv.ID, models.InvitationStatusRevoked); err != nil {
			return err
		}
		invitation, err = s.invitationRepo.FindByID(tx, inv.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Invitation revoked", "invitation_id", invitation.ID)
	return invitation, nil
}

func (s *invitationService) ListInvitations(ctx context.Context, db *gorm.DB, actor Actor, status models.InvitationStatus) ([]models.UserInvitation, error) {
	if err := actor.require(auth.PermInvitationsManage); err != nil {
		return nil, err
	}
	list, err := s.invitationRepo.List(db.WithContext(ctx), status)
	return list, readError(err)
}

func (s *invitationService) AcceptInvitation(ctx context.Context, db *gorm.DB, req *dto.AcceptInvitationRequest) (*models.User, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"password": err.Error()})
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	email := normalizeEmail(req.Email)
	now := s.now()

	var user *models.User
	err = withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		inv, err := s.invitationRepo.FindByEmail(tx, email)
		if err != nil {
			return err
		}
		if inv.Status != models.InvitationStatusPending {
			return apperrors.ErrInvitationNotPending
		}

		if err := s.codes.redeem(tx, email, models.VerificationTypeOnboarding, req.Code, now); err != nil {
			return err
		}

		if _, err := s.userRepo.FindByEmail(tx, email); err == nil {
			return apperrors.ErrEmailAlreadyExists
		} else if !errors.Is(err, repositories.ErrUserNotFound) {
			return err
		}

		user = &models.User{
			Email:        email,
			PasswordHash: hash,
			Role:         inv.Role,
			IsVerified:   true,
			Profile:      newProfile(req.FirstName, req.LastName),
		}
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}

		return s.invitationRepo.UpdateStatus(tx, inv.ID, models.InvitationStatusAccepted)
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Invitation accepted", "user_id", user.ID, "role", user.Role)
	return user, nil
}
