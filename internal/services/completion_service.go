package services

import (
	"context"

	"nautikos_backend/internal/models"
	"nautikos_backend/internal/repositories"
	"nautikos_backend/internal/services/dto"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// RequiredAvailabilitySlots is the exact number of screening slots a
// complete profile holds.
const RequiredAvailabilitySlots = 3

// minSkills is exclusive: a complete experience section has more than two skills.
const minSkills = 2

// CompletionService computes per-section completeness. Every check is a
// read with no shared state.
type CompletionService interface {
	CheckAcademy(ctx context.Context, db *gorm.DB, jobSeekerID string) (dto.AcademyCompletion, error)
	CheckExperience(ctx context.Context, db *gorm.DB, jobSeekerID string) (dto.ExperienceCompletion, error)
	CheckCulture(ctx context.Context, db *gorm.DB, jobSeekerID string) (dto.CultureCompletion, error)
	CheckPublications(ctx context.Context, db *gorm.DB, jobSeekerID string) (dto.PublicationsCompletion, error)
	CheckVideo(ctx context.Context, db *gorm.DB, jobSeekerID string) (dto.VideoCompletion, error)
	CheckAvailability(ctx context.Context, db *gorm.DB, jobSeekerID string) (dto.AvailabilityCompletion, error)

	// CheckAll runs the six checks in parallel on a pool handle. Given a
	// transaction it runs them one at a time, since a transaction owns a
	// single connection.
	CheckAll(ctx context.Context, db *gorm.DB, jobSeekerID string) (*dto.SectionCompletion, error)
}

type completionService struct {
	jobSeekerRepo repositories.JobSeekerRepository
}

func NewCompletionService(jobSeekerRepo repositories.JobSeekerRepository) CompletionService {
	return &completionService{jobSeekerRepo: jobSeekerRepo}
}

func (s *completionService) profile(ctx context.Context, db *gorm.DB, jobSeekerID string) (*models.JobSeeker, error) {
	js, err := s.jobSeekerRepo.FindByID(db.WithContext(ctx), jobSeekerID)
	if err != nil {
		return nil, readError(err)
	}
	return js, nil
}

func (s *completionService) count(ctx context.Context, db *gorm.DB, model interface{}, jobSeekerID string) (int64, error) {
	n, err := s.jobSeekerRepo.CountChildren(db.WithContext(ctx), model, jobSeekerID)
	if err != nil {
		return 0, readError(err)
	}
	return n, nil
}

func (s *completionService) CheckAcademy(ctx context.Context, db *gorm.DB, jobSeekerID string) (dto.AcademyCompletion, error) {
	var out dto.AcademyCompletion
	var err error

	if out.EducationCount, err = s.count(ctx, db, &models.Education{}, jobSeekerID); err != nil {
		return out, err
	}
	if out.CertificationCount, err = s.count(ctx, db, &models.ProfessionalCertification{}, jobSeekerID); err != nil {
		return out, err
	}
	if out.MembershipCount, err = s.count(ctx, db, &models.Membership{}, jobSeekerID); err != nil {
		return out, err
	}

	out.IsComplete = out.EducationCount > 0
	return out, nil
}

// CheckExperience does not gate on the work experience count; it is
// reported in WorkExperienceStatus only.
func (s *completionService) CheckExperience(ctx context.Context, db *gorm.DB, jobSeekerID string) (dto.ExperienceCompletion, error) {
	var out dto.ExperienceCompletion

	js, err := s.profile(ctx, db, jobSeekerID)
	if err != nil {
		return out, err
	}
	if out.SkillCount, err = s.count(ctx, db, &models.JobSeekerSkill{}, jobSeekerID); err != nil {
		return out, err
	}
	if out.WorkExperienceCount, err = s.count(ctx, db, &models.WorkExperience{}, jobSeekerID); err != nil {
		return out, err
	}
	seagoing, err := s.count(ctx, db, &models.SeagoingExperience{}, jobSeekerID)
	if err != nil {
		return out, err
	}

	out.LocalMarketAnswered = js.ArabicSpeaking != nil &&
		js.DubaiTradePortal != nil &&
		js.UAECustoms != nil &&
		js.FreeZoneProcess != nil
	out.TotalYearsSet = js.TotalYearsExperience != nil
	out.PeopleManagementSet = js.PeopleManagementExperience != nil
	out.WorkExperienceStatus = out.WorkExperienceCount > 0
	out.SeagoingExperienceSet = seagoing > 0

	out.IsComplete = out.LocalMarketAnswered &&
		out.TotalYearsSet &&
		out.PeopleManagementSet &&
		out.SkillCount > minSkills
	return out, nil
}

func (s *completionService) CheckCulture(ctx context.Context, db *gorm.DB, jobSeekerID string) (dto.CultureCompletion, error) {
	var out dto.CultureCompletion

	js, err := s.profile(ctx, db, jobSeekerID)
	if err != nil {
		return out, err
	}
	questions, err := s.count(ctx, db, &models.JobSeekerQuestions{}, jobSeekerID)
	if err != nil {
		return out, err
	}
	if out.TargetCompanyCount, err = s.count(ctx, db, &models.TargetCompany{}, jobSeekerID); err != nil {
		return out, err
	}

	out.HasQuestions = questions > 0
	out.AvailableFromSet = js.AvailableFrom != nil
	out.EmiratesSet = len(js.EmiratesPreference) > 0

	out.IsComplete = out.HasQuestions &&
		out.AvailableFromSet &&
		out.EmiratesSet &&
		out.TargetCompanyCount > 0
	return out, nil
}

func (s *completionService) CheckPublications(ctx context.Context, db *gorm.DB, jobSeekerID string) (dto.PublicationsCompletion, error) {
	var out dto.PublicationsCompletion

	js, err := s.profile(ctx, db, jobSeekerID)
	if err != nil {
		return out, err
	}
	if out.PublicationCount, err = s.count(ctx, db, &models.Publication{}, jobSeekerID); err != nil {
		return out, err
	}

	out.CVUploaded = nonEmpty(js.CVFileS3Key)
	out.WebsiteSet = nonEmpty(js.PersonalWebsiteURL)
	out.IsComplete = out.CVUploaded && out.WebsiteSet
	return out, nil
}

func (s *completionService) CheckVideo(ctx context.Context, db *gorm.DB, jobSeekerID string) (dto.VideoCompletion, error) {
	js, err := s.profile(ctx, db, jobSeekerID)
	if err != nil {
		return dto.VideoCompletion{}, err
	}
	return dto.VideoCompletion{IsComplete: nonEmpty(js.VideoCVURL)}, nil
}

func (s *completionService) CheckAvailability(ctx context.Context, db *gorm.DB, jobSeekerID string) (dto.AvailabilityCompletion, error) {
	n, err := s.count(ctx, db, &models.AvailabilitySlot{}, jobSeekerID)
	if err != nil {
		return dto.AvailabilityCompletion{}, err
	}
	return dto.AvailabilityCompletion{
		IsComplete: n == RequiredAvailabilitySlots,
		SlotCount:  n,
	}, nil
}

func (s *completionService) CheckAll(ctx context.Context, db *gorm.DB, jobSeekerID string) (*dto.SectionCompletion, error) {
	var out dto.SectionCompletion
	g, gctx := errgroup.WithContext(ctx)
	if inTransaction(db) {
		g.SetLimit(1)
	}

	// Each goroutine writes a distinct field of out.
	g.Go(func() (err error) {
		out.Academy, err = s.CheckAcademy(gctx, db, jobSeekerID)
		return err
	})
	g.Go(func() (err error) {
		out.Experience, err = s.CheckExperience(gctx, db, jobSeekerID)
		return err
	})
	g.Go(func() (err error) {
		out.Culture, err = s.CheckCulture(gctx, db, jobSeekerID)
		return err
	})
	g.Go(func() (err error) {
		out.Publications, err = s.CheckPublications(gctx, db, jobSeekerID)
		return err
	})
	g.Go(func() (err error) {
		out.Video, err = s.CheckVideo(gctx, db, jobSeekerID)
		return err
	})
	g.Go(func() (err error) {
		out.Availability, err = s.CheckAvailability(gctx, db, jobSeekerID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// inTransaction reports whether db is bound to an open transaction.
func inTransaction(db *gorm.DB) bool {
	if db == nil || db.Statement == nil {
		return false
	}
	_, ok := db.Statement.ConnPool.(gorm.TxCommitter)
	return ok
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}
