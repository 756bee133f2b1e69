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

type AuthService interface {
	// Register creates an unverified job seeker and issues an onboarding
	// code. Registering again before verification replaces the password
	// and the code.
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.VerificationResponse, *dto.Notification, error)
	// VerifyEmail redeems the onboarding code and signs the user in.
	VerifyEmail(ctx context.Context, db *gorm.DB, req *dto.VerifyEmailRequest) (*dto.AuthResponse, error)
	// RequestPasswordReset returns no notification for an unknown email.
	RequestPasswordReset(ctx context.Context, db *gorm.DB, req *dto.PasswordResetRequest) (*dto.Notification, error)
	ResetPassword(ctx context.Context, db *gorm.DB, req *dto.ResetPasswordRequest) error

	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, db *gorm.DB, actor Actor) (*dto.UserResponse, error)
}

type authService struct {
	userRepo       repositories.UserRepository
	invitationRepo repositories.InvitationRepository
	tokens         *auth.TokenManager
	codes          codeStore
	appURL         string
	now            func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	invitationRepo repositories.InvitationRepository,
	tokens *auth.TokenManager,
	codes *auth.CodeIssuer,
	appURL string,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		invitationRepo: invitationRepo,
		tokens:         tokens,
		codes:          codeStore{repo: invitationRepo, codes: codes},
		appURL:         strings.TrimRight(appURL, "/"),
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *authService) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.VerificationResponse, *dto.Notification, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, nil, apperrors.ValidationError(map[string]string{"password": err.Error()})
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}

	email := normalizeEmail(req.Email)
	now := s.now()

	var (
		verification *models.Verification
		code         string
		userID       string
	)
	err = withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		existing, err := s.userRepo.FindByEmail(tx, email)
		switch {
		case err == nil && existing.IsVerified:
			return apperrors.ErrEmailAlreadyExists
		case err == nil:
			if err := s.userRepo.UpdatePassword(tx, existing.ID, hash); err != nil {
				return err
			}
			userID = existing.ID
		case errors.Is(err, repositories.ErrUserNotFound):
			inv, err := s.invitationRepo.FindByEmail(tx, email)
			if err == nil && inv.Status == models.InvitationStatusPending {
				return apperrors.ErrInvitationPending
			}
			if err != nil && !errors.Is(err, repositories.ErrInvitationNotFound) {
				return err
			}

			user := &models.User{
				Email:        email,
				PasswordHash: hash,
				Role:         models.UserRoleJobSeeker,
				Profile:      newProfile(req.FirstName, req.LastName),
			}
			if err := s.userRepo.Create(tx, user); err != nil {
				return err
			}
			userID = user.ID
		default:
			return err
		}

		verification, code, err = s.codes.issue(tx, email, models.VerificationTypeOnboarding, now)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	notice := &dto.Notification{
		Recipient: email,
		Event:     dto.EventVerifyEmail,
		Data: map[string]string{
			"Code":      code,
			"ExpiresIn": s.codes.expiresIn(),
			"VerifyURL": verifyURL(s.appURL, email, models.VerificationTypeOnboarding, code),
		},
	}

	logger.CtxInfo(ctx, "User registered", "user_id", userID)
	return &dto.VerificationResponse{Email: email, ExpiresAt: *verification.ExpiresAt}, notice, nil
}

func (s *authService) VerifyEmail(ctx context.Context, db *gorm.DB, req *dto.VerifyEmailRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	now := s.now()

	var user *models.User
	err := withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		var err error
		user, err = s.userRepo.FindByEmail(tx, email)
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidVerificationCode
		}
		if err != nil {
			return err
		}
		if user.IsVerified {
			return apperrors.ErrInvalidVerificationCode
		}

		if err := s.codes.redeem(tx, email, models.VerificationTypeOnboarding, req.Code, now); err != nil {
			return err
		}
		if err := s.userRepo.MarkVerified(tx, user.ID); err != nil {
			return err
		}
		user.IsVerified = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Email verified", "user_id", user.ID)
	return s.signIn(user)
}

func (s *authService) RequestPasswordReset(ctx context.Context, db *gorm.DB, req *dto.PasswordResetRequest) (*dto.Notification, error) {
	email := normalizeEmail(req.Email)

	var code string
	err := withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		if _, err := s.userRepo.FindByEmail(tx, email); err != nil {
			return err
		}
		var err error
		_, code, err = s.codes.issue(tx, email, models.VerificationTypeResetPassword, s.now())
		return err
	})
	if errors.Is(err, apperrors.ErrUserNotFound) {
		logger.CtxInfo(ctx, "Password reset requested for unknown email")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Password reset requested")
	return &dto.Notification{
		Recipient: email,
		Event:     dto.EventPasswordReset,
		Data: map[string]string{
			"Code":      code,
			"ExpiresIn": s.codes.expiresIn(),
			"ResetURL":  verifyURL(s.appURL, email, models.VerificationTypeResetPassword, code),
		},
	}, nil
}

func (s *authService) ResetPassword(ctx context.Context, db *gorm.DB, req *dto.ResetPasswordRequest) error {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.ValidationError(map[string]string{"password": err.Error()})
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	email := normalizeEmail(req.Email)
	now := s.now()

	var userID string
	err = withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		user, err := s.userRepo.FindByEmail(tx, email)
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidVerificationCode
		}
		if err != nil {
			return err
		}
		if err := s.codes.redeem(tx, email, models.VerificationTypeResetPassword, req.Code, now); err != nil {
			return err
		}
		userID = user.ID
		return s.userRepo.UpdatePassword(tx, user.ID, hash)
	})
	if err != nil {
		return err
	}

	logger.CtxInfo(ctx, "Password reset", "user_id", userID)
	return nil
}

func (s *authService) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db.WithContext(ctx), req.Email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, readError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.CtxWarn(ctx, "Login failed", "user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, apperrors.ErrUserNotVerified
	}

	logger.CtxInfo(ctx, "User logged in", "user_id", user.ID, "role", user.Role)
	return s.signIn(user)
}

func (s *authService) signIn(user *models.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        newUserResponse(user),
	}, nil
}

func (s *authService) Me(ctx context.Context, db *gorm.DB, actor Actor) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db.WithContext(ctx), actor.UserID)
	if err != nil {
		return nil, readError(err)
	}
	resp := newUserResponse(user)
	return &resp, nil
}

func newUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Role:        string(u.Role),
		Name:        u.FullName(),
		IsVerified:  u.IsVerified,
		IsOnboarded: u.IsOnboarded,
		HasAccess:   u.HasAccess,
	}
}
