package repositories

import (
	"strings"
	"time"

	"nautikos_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvitationRepository interface {
	// Verifications
	UpsertVerification(db *gorm.DB, v *models.Verification) (*models.Verification, error)
	FindVerification(db *gorm.DB, target string, vType models.VerificationType) (*models.Verification, error)
	DeleteVerification(db *gorm.DB, id string) error
	DeleteExpiredVerifications(db *gorm.DB, now time.Time) (int64, error)

	// Invitations
	UpsertInvitation(db *gorm.DB, inv *models.UserInvitation) (*models.UserInvitation, error)
	FindByID(db *gorm.DB, id string) (*models.UserInvitation, error)
	FindByEmail(db *gorm.DB, email string) (*models.UserInvitation, error)
	UpdateStatus(db *gorm.DB, id string, status models.InvitationStatus) error
	List(db *gorm.DB, status models.InvitationStatus) ([]models.UserInvitation, error)
}

type InvitationRepositoryImpl struct{}

func NewInvitationRepository() InvitationRepository {
	return &InvitationRepositoryImpl{}
}

func (r *InvitationRepositoryImpl) UpsertVerification(db *gorm.DB, v *models.Verification) (*models.Verification, error) {
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "target"}, {Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{"secret", "algorithm", "digits", "period", "expires_at", "updated_at"}),
	}).Create(v).Error
	if err != nil {
		return nil, err
	}
	return r.FindVerification(db, v.Target, v.Type)
}

func (r *InvitationRepositoryImpl) FindVerification(db *gorm.DB, target string, vType models.VerificationType) (*models.Verification, error) {
	var v models.Verification
	err := db.Where("target = ? AND type = ?", strings.ToLower(target), vType).First(&v).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *InvitationRepositoryImpl) DeleteVerification(db *gorm.DB, id string) error {
	return db.Delete(&models.Verification{}, "id = ?", id).Error
}

// DeleteExpiredVerifications removes verifications past expires_at and
// returns how many were removed.
func (r *InvitationRepositoryImpl) DeleteExpiredVerifications(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Where("expires_at IS NOT NULL AND expires_at < ?", now).Delete(&models.Verification{})
	return result.RowsAffected, result.Error
}

func (r *InvitationRepositoryImpl) UpsertInvitation(db *gorm.DB, inv *models.UserInvitation) (*models.UserInvitation, error) {
	inv.Email = strings.ToLower(strings.TrimSpace(inv.Email))
	err := db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"role", "organization_name", "sender_id", "verification_id", "status", "updated_at",
		}),
	}).Create(inv).Error
	if err != nil {
		return nil, err
	}
	return r.FindByEmail(db, inv.Email)
}

func (r *InvitationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.UserInvitation, error) {
	var inv models.UserInvitation
	if err := db.First(&inv, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *InvitationRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.UserInvitation, error) {
	var inv models.UserInvitation
	err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&inv).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *InvitationRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.InvitationStatus) error {
	result := db.Model(&models.UserInvitation{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvitationNotFound
	}
	return nil
}

func (r *InvitationRepositoryImpl) List(db *gorm.DB, status models.InvitationStatus) ([]models.UserInvitation, error) {
	var list []models.UserInvitation
	query := db.Model(&models.UserInvitation{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&list).Error
	return list, err
}
