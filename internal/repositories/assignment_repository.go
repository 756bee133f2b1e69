package repositories

import (
	"time"

	"nautikos_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssignmentRepository interface {
	// Upsert inserts the assignment or, when the job seeker already has one,
	// rewrites it in place so the row id survives reassignment.
	Upsert(db *gorm.DB, assignment *models.ModeratorAssignment) (*models.ModeratorAssignment, error)
	FindByID(db *gorm.DB, id string) (*models.ModeratorAssignment, error)
	FindByJobSeeker(db *gorm.DB, jobSeekerID string) (*models.ModeratorAssignment, error)
	Complete(db *gorm.DB, id string, endedAt time.Time) error
	List(db *gorm.DB, filter AssignmentFilter) ([]models.ModeratorAssignment, error)
}

type AssignmentFilter struct {
	ModeratorID string
	Status      models.AssignmentStatus
}

type AssignmentRepositoryImpl struct{}

func NewAssignmentRepository() AssignmentRepository {
	return &AssignmentRepositoryImpl{}
}

func (r *AssignmentRepositoryImpl) Upsert(db *gorm.DB, assignment *models.ModeratorAssignment) (*models.ModeratorAssignment, error) {
	err := db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "job_seeker_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"moderator_id", "assigned_by_id", "status", "assigned_at", "ended_at", "notes", "updated_at",
		}),
	}).Create(assignment).Error
	if err != nil {
		return nil, err
	}
	return r.FindByJobSeeker(db, assignment.JobSeekerID)
}

func (r *AssignmentRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.ModeratorAssignment, error) {
	var a models.ModeratorAssignment
	if err := db.Preload("Moderator.Profile").First(&a, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepositoryImpl) FindByJobSeeker(db *gorm.DB, jobSeekerID string) (*models.ModeratorAssignment, error) {
	var a models.ModeratorAssignment
	if err := db.Preload("Moderator.Profile").First(&a, "job_seeker_id = ?", jobSeekerID).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepositoryImpl) Complete(db *gorm.DB, id string, endedAt time.Time) error {
	result := db.Model(&models.ModeratorAssignment{}).
		Where("id = ? AND status = ?", id, models.AssignmentStatusActive).
		Updates(map[string]interface{}{
			"status":   models.AssignmentStatusCompleted,
			"ended_at": endedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

func (r *AssignmentRepositoryImpl) List(db *gorm.DB, filter AssignmentFilter) ([]models.ModeratorAssignment, error) {
	var list []models.ModeratorAssignment
	query := db.Preload("Moderator.Profile").Preload("JobSeeker.User.Profile")
	if filter.ModeratorID != "" {
		query = query.Where("moderator_id = ?", filter.ModeratorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	err := query.Order("assigned_at DESC").Find(&list).Error
	return list, err
}
