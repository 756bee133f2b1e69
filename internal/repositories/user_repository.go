package repositories

import (
	"strings"

	"nautikos_backend/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error

	// MarkOnboarded sets is_onboarded and reports whether this call changed
	// it. There is no reverse operation.
	MarkOnboarded(db *gorm.DB, userID string) (bool, error)
	UpdatePassword(db *gorm.DB, userID, passwordHash string) error
	MarkVerified(db *gorm.DB, userID string) error
	GrantAccess(db *gorm.DB, userID string, customerID, priceID *string) error

	FindByRole(db *gorm.DB, role models.UserRole, verifiedOnly bool) ([]models.User, error)
	CountByRole(db *gorm.DB, role models.UserRole) (int64, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.Preload("Profile").First(&user, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Preload("Profile").
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return db.Create(user).Error
}

func (r *UserRepositoryImpl) MarkOnboarded(db *gorm.DB, userID string) (bool, error) {
	result := db.Model(&models.User{}).
		Where("id = ? AND is_onboarded = ?", userID, false).
		Update("is_onboarded", true)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	var n int64
	if err := db.Model(&models.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
		return false, err
	}
	if n == 0 {
		return false, ErrUserNotFound
	}
	return false, nil
}

func (r *UserRepositoryImpl) MarkVerified(db *gorm.DB, userID string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Update("is_verified", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdatePassword(db *gorm.DB, userID, passwordHash string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) GrantAccess(db *gorm.DB, userID string, customerID, priceID *string) error {
	updates := map[string]interface{}{"has_access": true}
	if customerID != nil {
		updates["stripe_customer_id"] = *customerID
	}
	if priceID != nil {
		updates["stripe_price_id"] = *priceID
	}

	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindByRole(db *gorm.DB, role models.UserRole, verifiedOnly bool) ([]models.User, error) {
	var users []models.User
	query := db.Preload("Profile").Where("role = ?", role)
	if verifiedOnly {
		query = query.Where("is_verified = ?", true)
	}
	err := query.Order("email ASC").Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) CountByRole(db *gorm.DB, role models.UserRole) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
