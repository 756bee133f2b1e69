package dto

import (
	"time"

	"nautikos_backend/internal/models"
)

type CreateAssignmentRequest struct {
	JobSeekerID string  `json:"jobSeekerId" validate:"required"`
	ModeratorID string  `json:"moderatorId" validate:"required"`
	Notes       *string `json:"notes" validate:"omitempty,max=2000"`
}

type ListAssignmentsQuery struct {
	ModeratorID string `form:"moderatorId"`
	Status      string `form:"status" validate:"omitempty,oneof=active completed"`
}

type ReviewCommentRequest struct {
	Comment string `json:"comment" validate:"required,max=400"`
}

type EvaluationRequest struct {
	Communication     models.Rating          `json:"communication" validate:"required,is-rating"`
	Presentation      models.Rating          `json:"presentation" validate:"required,is-rating"`
	IndustryKnowledge models.Rating          `json:"industryKnowledge" validate:"required,is-rating"`
	AreasOfPlacement  []models.PlacementArea `json:"areasOfPlacement" validate:"required,min=1,dive,is-placement-area"`
	GeneralComments   string                 `json:"generalComments" validate:"max=400"`
}

type EligibleCandidate struct {
	JobSeekerID         string  `json:"jobSeekerId"`
	UserID              string  `json:"userId"`
	CandidateNumber     int64   `json:"candidateNumber"`
	Name                string  `json:"name"`
	Email               string  `json:"email"`
	AssignedModeratorID *string `json:"assignedModeratorId,omitempty"`
	AssignmentStatus    *string `json:"assignmentStatus,omitempty"`
}

type ModeratorSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type AssignmentResponse struct {
	ID           string     `json:"id"`
	JobSeekerID  string     `json:"jobSeekerId"`
	ModeratorID  string     `json:"moderatorId"`
	AssignedByID string     `json:"assignedById"`
	Status       string     `json:"status"`
	AssignedAt   time.Time  `json:"assignedAt"`
	EndedAt      *time.Time `json:"endedAt,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

// CandidateDetail is what a reviewer sees for one candidate.
type CandidateDetail struct {
	JobSeeker   *models.JobSeeker            `json:"jobSeeker"`
	Name        string                       `json:"name"`
	Email       string                       `json:"email"`
	Assignment  *AssignmentResponse          `json:"assignment,omitempty"`
	Reviews     []models.ModeratorReview     `json:"reviews"`
	Evaluations []models.ModeratorEvaluation `json:"evaluations"`
}

func NewAssignmentResponse(a *models.ModeratorAssignment) *AssignmentResponse {
	if a == nil {
		return nil
	}
	return &AssignmentResponse{
		ID:           a.ID,
		JobSeekerID:  a.JobSeekerID,
		ModeratorID:  a.ModeratorID,
		AssignedByID: a.AssignedByID,
		Status:       string(a.Status),
		AssignedAt:   a.AssignedAt,
		EndedAt:      a.EndedAt,
		Notes:        a.Notes,
	}
}
