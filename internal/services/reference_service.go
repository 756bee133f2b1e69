package services

import (
	"context"
	"strings"

	"nautikos_backend/internal/auth"
	"nautikos_backend/internal/models"
	"nautikos_backend/internal/repositories"

	"gorm.io/gorm"
)

const defaultCompanySearchLimit = 20

type ReferenceService interface {
	SearchCompanies(ctx context.Context, db *gorm.DB, query string, limit int) ([]models.Company, error)
	ListCountries(ctx context.Context, db *gorm.DB) ([]models.Country, error)
	ListMembershipBodies(ctx context.Context, db *gorm.DB) ([]models.MembershipBody, error)
	EnsureCompany(ctx context.Context, db *gorm.DB, actor Actor, name string) (*models.Company, error)
}

type referenceService struct {
	referenceRepo repositories.ReferenceRepository
}

func NewReferenceService(referenceRepo repositories.ReferenceRepository) ReferenceService {
	return &referenceService{referenceRepo: referenceRepo}
}

func (s *referenceService) SearchCompanies(ctx context.Context, db *gorm.DB, query string, limit int) ([]models.Company, error) {
	if limit <= 0 {
		limit = defaultCompanySearchLimit
	}
	list, err := s.referenceRepo.SearchCompanies(db.WithContext(ctx), strings.TrimSpace(query), limit)
	return list, readError(err)
}

func (s *referenceService) ListCountries(ctx context.Context, db *gorm.DB) ([]models.Country, error) {
	list, err := s.referenceRepo.ListCountries(db.WithContext(ctx))
	return list, readError(err)
}

func (s *referenceService) ListMembershipBodies(ctx context.Context, db *gorm.DB) ([]models.MembershipBody, error) {
	list, err := s.referenceRepo.ListMembershipBodies(db.WithContext(ctx))
	return list, readError(err)
}

// EnsureCompany adds a verified company, or returns the existing one.
func (s *referenceService) EnsureCompany(ctx context.Context, db *gorm.DB, actor Actor, name string) (*models.Company, error) {
	if err := actor.require(auth.PermReferenceWrite); err != nil {
		return nil, err
	}
	company, err := s.referenceRepo.EnsureCompany(db.WithContext(ctx), strings.TrimSpace(name), true)
	if err != nil {
		return nil, readError(err)
	}
	return company, nil
}
