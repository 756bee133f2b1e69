package repositories

import (
	"time"

	"nautikos_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewRepository stores section comments and moderator evaluations.
type ReviewRepository interface {
	// Section comments
	UpsertReview(db *gorm.DB, review *models.ModeratorReview) (*models.ModeratorReview, error)
	FindReview(db *gorm.DB, jobSeekerID string, section models.ReviewSection) (*models.ModeratorReview, error)
	ResolveReview(db *gorm.DB, jobSeekerID string, section models.ReviewSection, reviewedByID string, at time.Time) error
	ListReviews(db *gorm.DB, jobSeekerID string) ([]models.ModeratorReview, error)

	// Evaluations
	UpsertEvaluation(db *gorm.DB, evaluation *models.ModeratorEvaluation) (*models.ModeratorEvaluation, error)
	ListEvaluations(db *gorm.DB, jobSeekerID string) ([]models.ModeratorEvaluation, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) UpsertReview(db *gorm.DB, review *models.ModeratorReview) (*models.ModeratorReview, error) {
	err := db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "job_seeker_id"}, {Name: "section"}},
		DoUpdates: clause.AssignmentColumns([]string{"comment", "status", "reviewed_by_id", "reviewed_at", "updated_at"}),
	}).Create(review).Error
	if err != nil {
		return nil, err
	}
	return r.FindReview(db, review.JobSeekerID, review.Section)
}

func (r *ReviewRepositoryImpl) FindReview(db *gorm.DB, jobSeekerID string, section models.ReviewSection) (*models.ModeratorReview, error) {
	var review models.ModeratorReview
	err := db.Where("job_seeker_id = ? AND section = ?", jobSeekerID, section).First(&review).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) ResolveReview(db *gorm.DB, jobSeekerID string, section models.ReviewSection, reviewedByID string, at time.Time) error {
	result := db.Model(&models.ModeratorReview{}).
		Where("job_seeker_id = ? AND section = ?", jobSeekerID, section).
		Updates(map[string]interface{}{
			"status":         models.ReviewStatusResolved,
			"reviewed_by_id": reviewedByID,
			"reviewed_at":    at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepositoryImpl) ListReviews(db *gorm.DB, jobSeekerID string) ([]models.ModeratorReview, error) {
	var reviews []models.ModeratorReview
	err := db.Where("job_seeker_id = ?", jobSeekerID).Order("section ASC").Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) UpsertEvaluation(db *gorm.DB, evaluation *models.ModeratorEvaluation) (*models.ModeratorEvaluation, error) {
	err := db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "job_seeker_id"}, {Name: "moderator_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"communication", "presentation", "industry_knowledge", "areas_of_placement", "general_comments", "updated_at",
		}),
	}).Create(evaluation).Error
	if err != nil {
		return nil, err
	}

	var saved models.ModeratorEvaluation
	err = db.Where("job_seeker_id = ? AND moderator_id = ?", evaluation.JobSeekerID, evaluation.ModeratorID).
		First(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ReviewRepositoryImpl) ListEvaluations(db *gorm.DB, jobSeekerID string) ([]models.ModeratorEvaluation, error) {
	var list []models.ModeratorEvaluation
	err := db.Where("job_seeker_id = ?", jobSeekerID).Order("created_at ASC").Find(&list).Error
	return list, err
}
