package services

import (
	"context"
	"errors"

	"nautikos_backend/internal/logger"
	"nautikos_backend/internal/models"
	"nautikos_backend/internal/repositories"
	"nautikos_backend/internal/services/dto"
	"nautikos_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// Onboarding stages in display order. The first six are section checks;
// payment and review are not checked here.
const (
	StageAcademy     = "academy"
	StageExperience  = "experience"
	StageCulture     = "culture"
	StageMedia       = "cv-and-publications"
	StageVideoResume = "video-resume"
	StageScreening   = "screening"
	StagePayment     = "payment"
	StageReview      = "review"
)

var Stages = []string{
	StageAcademy,
	StageExperience,
	StageCulture,
	StageMedia,
	StageVideoResume,
	StageScreening,
	StagePayment,
	StageReview,
}

// DashboardPath is where users outside the onboarding flow are sent.
const DashboardPath = "/dashboard"

type OnboardingService interface {
	// GetStatus returns a redirect decision for users outside the flow,
	// otherwise the per-stage status of the caller's profile.
	GetStatus(ctx context.Context, db *gorm.DB, actor Actor) (*dto.OnboardingStatus, error)

	// CompleteOnboarding flips users.is_onboarded once all six sections are
	// complete. Payment is not re-checked.
	CompleteOnboarding(ctx context.Context, db *gorm.DB, actor Actor) (*dto.CompleteOnboardingResponse, error)

	// LoadOnboarding returns the caller's profile with every child collection.
	// A user without a profile gets nil.
	LoadOnboarding(ctx context.Context, db *gorm.DB, actor Actor) (*models.JobSeeker, error)
}

type onboardingService struct {
	userRepo          repositories.UserRepository
	jobSeekerRepo     repositories.JobSeekerRepository
	completionService CompletionService
}

func NewOnboardingService(
	userRepo repositories.UserRepository,
	jobSeekerRepo repositories.JobSeekerRepository,
	completionService CompletionService,
) OnboardingService {
	return &onboardingService{
		userRepo:          userRepo,
		jobSeekerRepo:     jobSeekerRepo,
		completionService: completionService,
	}
}

// guard loads the caller and reports whether they belong in the flow.
func (s *onboardingService) guard(ctx context.Context, db *gorm.DB, actor Actor) (*models.User, bool, error) {
	user, err := s.userRepo.FindByID(db.WithContext(ctx), actor.UserID)
	if err != nil {
		return nil, false, readError(err)
	}
	inFlow := user.Role == models.UserRoleJobSeeker && !user.IsOnboarded
	return user, inFlow, nil
}

func (s *onboardingService) findProfile(ctx context.Context, db *gorm.DB, userID string) (*models.JobSeeker, error) {
	js, err := s.jobSeekerRepo.FindByUserID(db.WithContext(ctx), userID)
	if errors.Is(err, repositories.ErrJobSeekerNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, readError(err)
	}
	return js, nil
}

func (s *onboardingService) GetStatus(ctx context.Context, db *gorm.DB, actor Actor) (*dto.OnboardingStatus, error) {
	user, inFlow, err := s.guard(ctx, db, actor)
	if err != nil {
		return nil, err
	}
	if !inFlow {
		return &dto.OnboardingStatus{RedirectTo: DashboardPath, HasAccess: user.HasAccess}, nil
	}

	status := &dto.OnboardingStatus{HasAccess: user.HasAccess}

	js, err := s.findProfile(ctx, db, user.ID)
	if err != nil {
		return nil, err
	}

	var sections *dto.SectionCompletion
	if js != nil {
		status.JobSeekerID = js.ID
		if sections, err = s.completionService.CheckAll(ctx, db, js.ID); err != nil {
			return nil, err
		}
	}

	status.Sections = sections
	status.Stages = stageStatuses(sections, user.HasAccess)
	status.CanComplete = sections != nil && sections.AllComplete()
	for _, st := range status.Stages {
		if !st.IsComplete {
			status.NextStage = st.Stage
			break
		}
	}
	return status, nil
}

func stageStatuses(sections *dto.SectionCompletion, hasAccess bool) []dto.StageStatus {
	var done map[string]bool
	if sections != nil {
		done = map[string]bool{
			StageAcademy:     sections.Academy.IsComplete,
			StageExperience:  sections.Experience.IsComplete,
			StageCulture:     sections.Culture.IsComplete,
			StageMedia:       sections.Publications.IsComplete,
			StageVideoResume: sections.Video.IsComplete,
			StageScreening:   sections.Availability.IsComplete,
		}
	}

	out := make([]dto.StageStatus, 0, len(Stages))
	for _, stage := range Stages {
		var complete bool
		switch stage {
		case StagePayment:
			complete = hasAccess
		case StageReview:
			complete = false
		default:
			complete = done[stage]
		}
		out = append(out, dto.StageStatus{Stage: stage, IsComplete: complete})
	}
	return out
}

func (s *onboardingService) CompleteOnboarding(ctx context.Context, db *gorm.DB, actor Actor) (*dto.CompleteOnboardingResponse, error) {
	user, inFlow, err := s.guard(ctx, db, actor)
	if err != nil {
		return nil, err
	}
	if !inFlow {
		return &dto.CompleteOnboardingResponse{IsOnboarded: user.IsOnboarded, RedirectTo: DashboardPath}, nil
	}

	// The profile row lock makes section saves wait until the flag is set,
	// so the checks below hold at commit time.
	var (
		js      *models.JobSeeker
		changed bool
	)
	err = withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		var err error
		js, err = s.jobSeekerRepo.LockByUserID(tx, user.ID)
		if errors.Is(err, repositories.ErrJobSeekerNotFound) {
			return apperrors.ErrOnboardingIncomplete
		}
		if err != nil {
			return err
		}

		sections, err := s.completionService.CheckAll(ctx, tx, js.ID)
		if err != nil {
			return err
		}
		if !sections.AllComplete() {
			return apperrors.ErrOnboardingIncomplete.WithDetails(sections)
		}

		changed, err = s.userRepo.MarkOnboarded(tx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		logger.CtxInfo(ctx, "Onboarding already completed", "user_id", user.ID)
		return &dto.CompleteOnboardingResponse{IsOnboarded: true, RedirectTo: DashboardPath}, nil
	}

	logger.CtxInfo(ctx, "Onboarding completed", "user_id", user.ID, "job_seeker_id", js.ID, "has_access", user.HasAccess)
	return &dto.CompleteOnboardingResponse{IsOnboarded: true, RedirectTo: DashboardPath}, nil
}

func (s *onboardingService) LoadOnboarding(ctx context.Context, db *gorm.DB, actor Actor) (*models.JobSeeker, error) {
	js, err := s.findProfile(ctx, db, actor.UserID)
	if err != nil || js == nil {
		return nil, err
	}
	full, err := s.jobSeekerRepo.FindWithChildren(db.WithContext(ctx), js.ID)
	if err != nil {
		return nil, readError(err)
	}
	return full, nil
}
