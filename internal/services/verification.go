package services

import (
	"fmt"
	"net/url"
	"time"

	"nautikos_backend/internal/auth"
	"nautikos_backend/internal/models"
	"nautikos_backend/internal/repositories"
	"nautikos_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// codeStore issues and redeems one-time codes kept in the verifications
// table, one row per (target, type).
type codeStore struct {
	repo  repositories.InvitationRepository
	codes *auth.CodeIssuer
}

// issue replaces any earlier code for target and vType.
func (c codeStore) issue(tx *gorm.DB, target string, vType models.VerificationType, now time.Time) (*models.Verification, string, error) {
	secret, code, err := c.codes.Generate(target, now)
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}
	expiresAt := now.Add(c.codes.Period())

	v, err := c.repo.UpsertVerification(tx, &models.Verification{
		Type:      vType,
		Target:    target,
		Secret:    secret.Secret,
		Algorithm: secret.Algorithm,
		Digits:    secret.Digits,
		Period:    secret.Period,
		ExpiresAt: &expiresAt,
	})
	if err != nil {
		return nil, "", err
	}
	return v, code, nil
}

// redeem checks code and deletes the verification on success. Missing,
// expired and wrong codes all fail with ErrInvalidVerificationCode.
func (c codeStore) redeem(tx *gorm.DB, target string, vType models.VerificationType, code string, now time.Time) error {
	v, err := c.repo.FindVerification(tx, target, vType)
	if err != nil {
		return err
	}
	if v.Expired(now) {
		return apperrors.ErrInvalidVerificationCode
	}
	valid, err := c.codes.Validate(auth.CodeSecret{
		Secret:    v.Secret,
		Algorithm: v.Algorithm,
		Digits:    v.Digits,
		Period:    v.Period,
	}, code, now)
	if err != nil || !valid {
		return apperrors.ErrInvalidVerificationCode
	}
	return c.repo.DeleteVerification(tx, v.ID)
}

func (c codeStore) expiresIn() string {
	d := c.codes.Period()
	if d >= time.Hour && d%time.Hour == 0 {
		return fmt.Sprintf("%d hours", int(d.Hours()))
	}
	return fmt.Sprintf("%d minutes", int(d.Minutes()))
}

// verifyURL links to the app page that submits a code.
func verifyURL(appURL, target string, vType models.VerificationType, code string) string {
	q := url.Values{}
	q.Set("target", target)
	q.Set("type", string(vType))
	q.Set("code", code)
	return appURL + "/verify?" + q.Encode()
}
