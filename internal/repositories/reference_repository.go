package repositories

import (
	"strings"

	"nautikos_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReferenceRepository interface {
	SearchCompanies(db *gorm.DB, query string, limit int) ([]models.Company, error)
	FindCompaniesByIDs(db *gorm.DB, ids []string) ([]models.Company, error)
	// EnsureCompany returns the company with that name, creating it when absent.
	EnsureCompany(db *gorm.DB, name string, verified bool) (*models.Company, error)
	ListCountries(db *gorm.DB) ([]models.Country, error)
	ListMembershipBodies(db *gorm.DB) ([]models.MembershipBody, error)
}

type ReferenceRepositoryImpl struct{}

func NewReferenceRepository() ReferenceRepository {
	return &ReferenceRepositoryImpl{}
}

func (r *ReferenceRepositoryImpl) SearchCompanies(db *gorm.DB, query string, limit int) ([]models.Company, error) {
	var companies []models.Company
	q := db.Model(&models.Company{})
	if query = strings.TrimSpace(query); query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Order("name ASC").Find(&companies).Error
	return companies, err
}

func (r *ReferenceRepositoryImpl) FindCompaniesByIDs(db *gorm.DB, ids []string) ([]models.Company, error) {
	var companies []models.Company
	if len(ids) == 0 {
		return companies, nil
	}
	err := db.Where("id IN ?", ids).Find(&companies).Error
	return companies, err
}

func (r *ReferenceRepositoryImpl) EnsureCompany(db *gorm.DB, name string, verified bool) (*models.Company, error) {
	company := &models.Company{Name: strings.TrimSpace(name), IsVerified: verified}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(company).Error
	if err != nil {
		return nil, err
	}

	var saved models.Company
	if err := db.Where("name = ?", company.Name).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ReferenceRepositoryImpl) ListCountries(db *gorm.DB) ([]models.Country, error) {
	var countries []models.Country
	err := db.Order("name ASC").Find(&countries).Error
	return countries, err
}

func (r *ReferenceRepositoryImpl) ListMembershipBodies(db *gorm.DB) ([]models.MembershipBody, error) {
	var bodies []models.MembershipBody
	err := db.Order("name ASC").Find(&bodies).Error
	return bodies, err
}
