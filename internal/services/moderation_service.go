package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
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

type ModerationService interface {
	// Assignments
	CreateOrReplaceAssignment(ctx context.Context, db *gorm.DB, actor Actor, req *dto.CreateAssignmentRequest) (*models.ModeratorAssignment, *dto.Notification, error)
	CompleteAssignment(ctx context.Context, db *gorm.DB, actor Actor, assignmentID string) (*models.ModeratorAssignment, error)
	ListAssignments(ctx context.Context, db *gorm.DB, actor Actor, query *dto.ListAssignmentsQuery) ([]models.ModeratorAssignment, error)
	ListEligibleCandidates(ctx context.Context, db *gorm.DB, actor Actor) ([]dto.EligibleCandidate, error)
	ListModerators(ctx context.Context, db *gorm.DB, actor Actor) ([]dto.ModeratorSummary, error)

	// Reviews
	SetReviewComment(ctx context.Context, db *gorm.DB, actor Actor, jobSeekerID string, section models.ReviewSection, comment string) (*models.ModeratorReview, error)
	ResolveReviewComment(ctx context.Context, db *gorm.DB, actor Actor, jobSeekerID string, section models.ReviewSection) (*models.ModeratorReview, error)
	SubmitEvaluation(ctx context.Context, db *gorm.DB, actor Actor, jobSeekerID string, req *dto.EvaluationRequest) (*models.ModeratorEvaluation, error)
	GetCandidate(ctx context.Context, db *gorm.DB, actor Actor, jobSeekerID string) (*dto.CandidateDetail, error)
}

type moderationService struct {
	userRepo       repositories.UserRepository
	jobSeekerRepo  repositories.JobSeekerRepository
	assignmentRepo repositories.AssignmentRepository
	reviewRepo     repositories.ReviewRepository
	appURL         string
}

// NewModerationService builds the service. appURL prefixes candidate links
// in assignment notifications.
func NewModerationService(
	userRepo repositories.UserRepository,
	jobSeekerRepo repositories.JobSeekerRepository,
	assignmentRepo repositories.AssignmentRepository,
	reviewRepo repositories.ReviewRepository,
	appURL string,
) ModerationService {
	return &moderationService{
		userRepo:       userRepo,
		jobSeekerRepo:  jobSeekerRepo,
		assignmentRepo: assignmentRepo,
		reviewRepo:     reviewRepo,
		appURL:         strings.TrimRight(appURL, "/"),
	}
}

// ---------------- Assignments ----------------

func (s *moderationService) CreateOrReplaceAssignment(ctx context.Context, db *gorm.DB, actor Actor, req *dto.CreateAssignmentRequest) (*models.ModeratorAssignment, *dto.Notification, error) {
	if err := actor.require(auth.PermModerationAssign); err != nil {
		return nil, nil, err
	}

	var (
		assignment *models.ModeratorAssignment
		notice     *dto.Notification
	)

	err := withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		js, err := s.jobSeekerRepo.FindByID(tx, req.JobSeekerID)
		if err != nil {
			return err
		}
		candidate, err := s.userRepo.FindByID(tx, js.UserID)
		if err != nil {
			return err
		}
		if !candidate.IsVerified || !candidate.IsOnboarded {
			return apperrors.ErrCandidateNotEligible
		}

		moderator, err := s.userRepo.FindByID(tx, req.ModeratorID)
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrModeratorNotEligible
		}
		if err != nil {
			return err
		}
		if moderator.Role != models.UserRoleModerator || !moderator.IsVerified {
			return apperrors.ErrModeratorNotEligible
		}

		assignment, err = s.assignmentRepo.Upsert(tx, &models.ModeratorAssignment{
			JobSeekerID:  js.ID,
			ModeratorID:  moderator.ID,
			AssignedByID: actor.UserID,
			Status:       models.AssignmentStatusActive,
			AssignedAt:   time.Now().UTC(),
			Notes:        req.Notes,
		})
		if err != nil {
			return err
		}

		notice = &dto.Notification{
			Recipient: moderator.Email,
			Event:     dto.EventModeratorAssigned,
			Data: map[string]string{
				"ModeratorName":   moderator.FullName(),
				"CandidateNumber": strconv.FormatInt(js.CandidateNumber, 10),
				"CandidateName":   candidate.FullName(),
				"CandidateURL":    fmt.Sprintf("%s/dashboard/candidates/%s", s.appURL, js.ID),
			},
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	logger.CtxInfo(ctx, "Moderator assigned",
		"assignment_id", assignment.ID,
		"job_seeker_id", assignment.JobSeekerID,
		"moderator_id", assignment.ModeratorID,
	)
	return assignment, notice, nil
}

func (s *moderationService) CompleteAssignment(ctx context.Context, db *gorm.DB, actor Actor, assignmentID string) (*models.ModeratorAssignment, error) {
	if err := actor.require(auth.PermModerationAssign); err != nil {
		return nil, err
	}

	var assignment *models.ModeratorAssignment
	err := withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		current, err := s.assignmentRepo.FindByID(tx, assignmentID)
		if err != nil {
			return err
		}
		if current.Status != models.AssignmentStatusActive {
			return apperrors.ErrAssignmentNotActive
		}
		if err := s.assignmentRepo.Complete(tx, current.ID, time.Now().UTC()); err != nil {
			return err
		}
		assignment, err = s.assignmentRepo.FindByID(tx, current.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Assignment completed", "assignment_id", assignment.ID, "job_seeker_id", assignment.JobSeekerID)
	return assignment, nil
}

func (s *moderationService) ListAssignments(ctx context.Context, db *gorm.DB, actor Actor, query *dto.ListAssignmentsQuery) ([]models.ModeratorAssignment, error) {
	if err := actor.require(auth.PermModerationAssign); err != nil {
		return nil, err
	}
	filter := repositories.AssignmentFilter{}
	if query != nil {
		filter.ModeratorID = query.ModeratorID
		filter.Status = models.AssignmentStatus(query.Status)
	}
	list, err := s.assignmentRepo.List(db.WithContext(ctx), filter)
	return list, readError(err)
}

func (s *moderationService) ListEligibleCandidates(ctx context.Context, db *gorm.DB, actor Actor) ([]dto.EligibleCandidate, error) {
	if err := actor.require(auth.PermModerationAssign); err != nil {
		return nil, err
	}

	jobSeekers, err := s.jobSeekerRepo.ListEligibleForReview(db.WithContext(ctx))
	if err != nil {
		return nil, readError(err)
	}
	assignments, err := s.assignmentRepo.List(db.WithContext(ctx), repositories.AssignmentFilter{})
	if err != nil {
		return nil, readError(err)
	}

	byJobSeeker := make(map[string]models.ModeratorAssignment, len(assignments))
	for _, a := range assignments {
		byJobSeeker[a.JobSeekerID] = a
	}

	out := make([]dto.EligibleCandidate, 0, len(jobSeekers))
	for _, js := range jobSeekers {
		c := dto.EligibleCandidate{
			JobSeekerID:     js.ID,
			UserID:          js.UserID,
			CandidateNumber: js.CandidateNumber,
		}
		if js.User != nil {
			c.Name = js.User.FullName()
			c.Email = js.User.Email
		}
		if a, ok := byJobSeeker[js.ID]; ok {
			moderatorID := a.ModeratorID
			status := string(a.Status)
			c.AssignedModeratorID = &moderatorID
			c.AssignmentStatus = &status
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *moderationService) ListModerators(ctx context.Context, db *gorm.DB, actor Actor) ([]dto.ModeratorSummary, error) {
	if err := actor.require(auth.PermModerationAssign); err != nil {
		return nil, err
	}

	moderators, err := s.userRepo.FindByRole(db.WithContext(ctx), models.UserRoleModerator, true)
	if err != nil {
		return nil, readError(err)
	}

	out := make([]dto.ModeratorSummary, 0, len(moderators))
	for i := range moderators {
		out = append(out, dto.ModeratorSummary{
			ID:    moderators[i].ID,
			Email: moderators[i].Email,
			Name:  moderators[i].FullName(),
		})
	}
	return out, nil
}

// ---------------- Reviews ----------------

// canReview allows admins, and the moderator holding the candidate's
// active assignment.
func (s *moderationService) canReview(tx *gorm.DB, actor Actor, jobSeekerID string) error {
	if err := actor.require(auth.PermModerationReview); err != nil {
		return err
	}
	if actor.Is(models.UserRoleAdmin) {
		return nil
	}

	assignment, err := s.assignmentRepo.FindByJobSeeker(tx, jobSeekerID)
	if errors.Is(err, repositories.ErrAssignmentNotFound) {
		return apperrors.ErrNotAssignedModerator
	}
	if err != nil {
		return err
	}
	if assignment.ModeratorID != actor.UserID || assignment.Status != models.AssignmentStatusActive {
		return apperrors.ErrNotAssignedModerator
	}
	return nil
}

func checkSection(section models.ReviewSection) error {
	for _, s := range models.ReviewSections {
		if s == section {
			return nil
		}
	}
	return apperrors.ValidationError(map[string]string{"section": "Not an allowed value"})
}

func (s *moderationService) SetReviewComment(ctx context.Context, db *gorm.DB, actor Actor, jobSeekerID string, section models.ReviewSection, comment string) (*models.ModeratorReview, error) {
	if err := checkSection(section); err != nil {
		return nil, err
	}
	if len([]rune(comment)) > models.ReviewCommentMaxLength {
		return nil, apperrors.ValidationError(map[string]string{
			"comment": fmt.Sprintf("Must be at most %d characters", models.ReviewCommentMaxLength),
		})
	}

	var review *models.ModeratorReview
	err := withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		if _, err := s.jobSeekerRepo.FindByID(tx, jobSeekerID); err != nil {
			return err
		}
		if err := s.canReview(tx, actor, jobSeekerID); err != nil {
			return err
		}

		var err error
		review, err = s.reviewRepo.UpsertReview(tx, &models.ModeratorReview{
			JobSeekerID:  jobSeekerID,
			Section:      section,
			Comment:      comment,
			Status:       models.ReviewStatusPending,
			ReviewedByID: actor.UserID,
			ReviewedAt:   time.Now().UTC(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Review comment saved", "job_seeker_id", jobSeekerID, "section", section)
	return review, nil
}

func (s *moderationService) ResolveReviewComment(ctx context.Context, db *gorm.DB, actor Actor, jobSeekerID string, section models.ReviewSection) (*models.ModeratorReview, error) {
	if err := checkSection(section); err != nil {
		return nil, err
	}

	var review *models.ModeratorReview
	err := withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := s.canReview(tx, actor, jobSeekerID); err != nil {
			return err
		}
		if err := s.reviewRepo.ResolveReview(tx, jobSeekerID, section, actor.UserID, time.Now().UTC()); err != nil {
			return err
		}
		var err error
		review, err = s.reviewRepo.FindReview(tx, jobSeekerID, section)
		return err
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (s *moderationService) SubmitEvaluation(ctx context.Context, db *gorm.DB, actor Actor, jobSeekerID string, req *dto.EvaluationRequest) (*models.ModeratorEvaluation, error) {
	if err := actor.require(auth.PermModerationEvaluate); err != nil {
		return nil, err
	}

	areas := dedupePlacementAreas(req.AreasOfPlacement)
	if len(areas) == 0 {
		return nil, apperrors.ValidationError(map[string]string{"areasOfPlacement": "Select at least one area"})
	}

	var evaluation *models.ModeratorEvaluation
	err := withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		if _, err := s.jobSeekerRepo.FindByID(tx, jobSeekerID); err != nil {
			return err
		}
		var err error
		evaluation, err = s.reviewRepo.UpsertEvaluation(tx, &models.ModeratorEvaluation{
			JobSeekerID:       jobSeekerID,
			ModeratorID:       actor.UserID,
			Communication:     req.Communication,
			Presentation:      req.Presentation,
			IndustryKnowledge: req.IndustryKnowledge,
			AreasOfPlacement:  areas,
			GeneralComments:   req.GeneralComments,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Evaluation submitted", "job_seeker_id", jobSeekerID, "moderator_id", actor.UserID)
	return evaluation, nil
}

// dedupePlacementAreas keeps the first occurrence of each area.
func dedupePlacementAreas(in []models.PlacementArea) []models.PlacementArea {
	seen := make(map[models.PlacementArea]struct{}, len(in))
	out := make([]models.PlacementArea, 0, len(in))
	for _, a := range in {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

func (s *moderationService) GetCandidate(ctx context.Context, db *gorm.DB, actor Actor, jobSeekerID string) (*dto.CandidateDetail, error) {
	if err := actor.require(auth.PermCandidatesRead); err != nil {
		return nil, err
	}

	tx := db.WithContext(ctx)
	js, err := s.jobSeekerRepo.FindWithChildren(tx, jobSeekerID)
	if err != nil {
		return nil, readError(err)
	}

	detail := &dto.CandidateDetail{JobSeeker: js}
	if js.User != nil {
		detail.Name = js.User.FullName()
		detail.Email = js.User.Email
	}

	assignment, err := s.assignmentRepo.FindByJobSeeker(tx, jobSeekerID)
	switch {
	case err == nil:
		detail.Assignment = dto.NewAssignmentResponse(assignment)
	case !errors.Is(err, repositories.ErrAssignmentNotFound):
		return nil, readError(err)
	}

	if detail.Reviews, err = s.reviewRepo.ListReviews(tx, jobSeekerID); err != nil {
		return nil, readError(err)
	}
	if detail.Evaluations, err = s.reviewRepo.ListEvaluations(tx, jobSeekerID); err != nil {
		return nil, readError(err)
	}
	return detail, nil
}
