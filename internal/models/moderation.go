package models

import (
	"time"

	"gorm.io/datatypes"
)

// ReviewCommentMaxLength bounds review comments and evaluation comments.
const ReviewCommentMaxLength = 400

// ModeratorAssignment links a job seeker to the moderator reviewing them.
// At most one row per job seeker; reassignment updates the row in place.
type ModeratorAssignment struct {
	BaseModel
	JobSeekerID  string           `gorm:"type:varchar(36);not null;uniqueIndex" json:"jobSeekerId"`
	ModeratorID  string           `gorm:"type:varchar(36);not null;index" json:"moderatorId"`
	AssignedByID string           `gorm:"type:varchar(36);not null" json:"assignedById"`
	Status       AssignmentStatus `gorm:"type:varchar(20);not null;default:'active';check:chk_assignment_status,status IN ('active','completed')" json:"status"`
	AssignedAt   time.Time        `gorm:"not null;check:chk_assignment_ended_after_assigned,ended_at IS NULL OR ended_at >= assigned_at" json:"assignedAt"`
	EndedAt      *time.Time       `gorm:"check:chk_assignment_ended_at,(status = 'active' AND ended_at IS NULL) OR (status <> 'active' AND ended_at IS NOT NULL)" json:"endedAt,omitempty"`
	Notes        *string          `gorm:"type:text" json:"notes,omitempty"`

	JobSeeker  *JobSeeker `gorm:"foreignKey:JobSeekerID;constraint:OnDelete:CASCADE" json:"jobSeeker,omitempty"`
	Moderator  *User      `gorm:"foreignKey:ModeratorID;constraint:OnDelete:CASCADE" json:"moderator,omitempty"`
	AssignedBy *User      `gorm:"foreignKey:AssignedByID;constraint:OnDelete:CASCADE" json:"-"`
}

// ModeratorEvaluation is one moderator's holistic verdict on a candidate.
type ModeratorEvaluation struct {
	BaseModel
	JobSeekerID       string                             `gorm:"type:varchar(36);not null;uniqueIndex:uq_evaluation_job_seeker_moderator" json:"jobSeekerId"`
	ModeratorID       string                             `gorm:"type:varchar(36);not null;uniqueIndex:uq_evaluation_job_seeker_moderator" json:"moderatorId"`
	Communication     Rating                             `gorm:"type:varchar(20);not null" json:"communication"`
	Presentation      Rating                             `gorm:"type:varchar(20);not null" json:"presentation"`
	IndustryKnowledge Rating                             `gorm:"type:varchar(20);not null" json:"industryKnowledge"`
	AreasOfPlacement  datatypes.JSONSlice[PlacementArea] `gorm:"column:areas_of_placement;not null" json:"areasOfPlacement"`
	GeneralComments   string                             `gorm:"type:varchar(400);not null;default:''" json:"generalComments"`

	JobSeeker *JobSeeker `gorm:"foreignKey:JobSeekerID;constraint:OnDelete:CASCADE" json:"-"`
	Moderator *User      `gorm:"foreignKey:ModeratorID;constraint:OnDelete:CASCADE" json:"-"`
}

// ModeratorReview is the comment on one profile section.
type ModeratorReview struct {
	BaseModel
	JobSeekerID  string        `gorm:"type:varchar(36);not null;uniqueIndex:uq_review_job_seeker_section" json:"jobSeekerId"`
	Section      ReviewSection `gorm:"type:varchar(40);not null;uniqueIndex:uq_review_job_seeker_section" json:"section"`
	Comment      string        `gorm:"type:varchar(400);not null" json:"comment"`
	Status       ReviewStatus  `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	ReviewedByID string        `gorm:"type:varchar(36);not null" json:"reviewedById"`
	ReviewedAt   time.Time     `gorm:"not null" json:"reviewedAt"`

	JobSeeker  *JobSeeker `gorm:"foreignKey:JobSeekerID;constraint:OnDelete:CASCADE" json:"-"`
	ReviewedBy *User      `gorm:"foreignKey:ReviewedByID;constraint:OnDelete:CASCADE" json:"-"`
}
