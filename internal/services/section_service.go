package services

import (
	"context"
	"time"

	"nautikos_backend/internal/logger"
	"nautikos_backend/internal/models"
	"nautikos_backend/internal/repositories"
	"nautikos_backend/internal/services/dto"
	"nautikos_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// SectionService saves one onboarding section per call. Each call is a
// single transaction: the profile is upserted on user_id with only the
// section's columns, then every child collection the section owns is
// replaced wholesale.
type SectionService interface {
	UpsertAcademy(ctx context.Context, db *gorm.DB, userID string, req *dto.AcademyRequest) (*models.JobSeeker, error)
	UpsertExperience(ctx context.Context, db *gorm.DB, userID string, req *dto.ExperienceRequest) (*models.JobSeeker, error)
	UpsertCulture(ctx context.Context, db *gorm.DB, userID string, req *dto.CultureRequest) (*models.JobSeeker, error)
	UpsertMedia(ctx context.Context, db *gorm.DB, userID string, req *dto.MediaRequest) (*models.JobSeeker, error)
	UpsertVideoResume(ctx context.Context, db *gorm.DB, userID string, req *dto.VideoResumeRequest) (*models.JobSeeker, error)
	UpsertScreening(ctx context.Context, db *gorm.DB, userID string, req *dto.ScreeningRequest) (*models.JobSeeker, error)
	AttachCV(ctx context.Context, db *gorm.DB, userID, key, fileName string) (*models.JobSeeker, error)

	// EnsureProfile creates an empty profile for the user if none exists.
	EnsureProfile(ctx context.Context, db *gorm.DB, userID string) (*models.JobSeeker, error)
}

type sectionService struct {
	userRepo      repositories.UserRepository
	jobSeekerRepo repositories.JobSeekerRepository
	referenceRepo repositories.ReferenceRepository
}

func NewSectionService(
	userRepo repositories.UserRepository,
	jobSeekerRepo repositories.JobSeekerRepository,
	referenceRepo repositories.ReferenceRepository,
) SectionService {
	return &sectionService{
		userRepo:      userRepo,
		jobSeekerRepo: jobSeekerRepo,
		referenceRepo: referenceRepo,
	}
}

type childWriter func(tx *gorm.DB, js *models.JobSeeker) error

func (s *sectionService) upsert(ctx context.Context, db *gorm.DB, section, userID string, fields repositories.JobSeekerFields, writeChildren childWriter) (*models.JobSeeker, error) {
	var result *models.JobSeeker

	err := withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		if _, err := s.userRepo.FindByID(tx, userID); err != nil {
			return err
		}

		js, err := s.jobSeekerRepo.UpsertByUserID(tx, userID, fields)
		if err != nil {
			return err
		}

		if writeChildren != nil {
			if err := writeChildren(tx, js); err != nil {
				return err
			}
		}

		result = js
		return nil
	})
	if err != nil {
		logger.CtxWarn(ctx, "Onboarding section not saved", "section", section, "user_id", userID, "error", err)
		return nil, err
	}

	logger.CtxInfo(ctx, "Onboarding section saved", "section", section, "job_seeker_id", result.ID)
	return result, nil
}

func (s *sectionService) EnsureProfile(ctx context.Context, db *gorm.DB, userID string) (*models.JobSeeker, error) {
	return s.upsert(ctx, db, "profile", userID, repositories.JobSeekerFields{}, nil)
}

// ---------------- Academy ----------------

func (s *sectionService) UpsertAcademy(ctx context.Context, db *gorm.DB, userID string, req *dto.AcademyRequest) (*models.JobSeeker, error) {
	educations := make([]models.Education, 0, len(req.Educations))
	for _, e := range req.Educations {
		educations = append(educations, models.Education{
			EducationLevel: e.EducationLevel,
			Institution:    e.Institution,
			DegreeName:     e.DegreeName,
			FieldOfStudy:   e.FieldOfStudy,
			StartYear:      e.StartYear,
			EndYear:        e.EndYear,
			IsOngoing:      e.IsOngoing,
		})
	}

	certifications := make([]models.ProfessionalCertification, 0, len(req.Certifications))
	for _, c := range req.Certifications {
		certifications = append(certifications, models.ProfessionalCertification{
			Institute:         c.Institute,
			CertificationName: c.CertificationName,
		})
	}

	memberships := make([]models.Membership, 0, len(req.Memberships))
	for _, m := range req.Memberships {
		memberships = append(memberships, models.Membership{
			MembershipBodyName:    m.MembershipBodyName,
			MembershipJoiningYear: m.MembershipJoiningYear,
			MembershipCertificate: m.MembershipCertificate,
		})
	}

	return s.upsert(ctx, db, "academy", userID, repositories.JobSeekerFields{}, func(tx *gorm.DB, js *models.JobSeeker) error {
		var err error
		if js.Educations, err = s.jobSeekerRepo.ReplaceEducations(tx, js.ID, educations); err != nil {
			return err
		}
		if js.ProfessionalCertifications, err = s.jobSeekerRepo.ReplaceCertifications(tx, js.ID, certifications); err != nil {
			return err
		}
		if js.Memberships, err = s.jobSeekerRepo.ReplaceMemberships(tx, js.ID, memberships); err != nil {
			return err
		}
		return nil
	})
}

// ---------------- Experience ----------------

func (s *sectionService) UpsertExperience(ctx context.Context, db *gorm.DB, userID string, req *dto.ExperienceRequest) (*models.JobSeeker, error) {
	f := req.JobSeekerFieldSet
	fields := repositories.JobSeekerFields{
		TotalYearsExperience:       f.TotalYearsExperience,
		PeopleManagementExperience: f.PeopleManagementExperience,
		ArabicSpeaking:             f.ArabicSpeaking,
		DubaiTradePortal:           f.DubaiTradePortal,
		UAECustoms:                 f.UAECustoms,
		FreeZoneProcess:            f.FreeZoneProcess,
	}

	skills := make([]models.JobSeekerSkill, 0, len(req.Skills))
	for _, skill := range req.Skills {
		skills = append(skills, models.JobSeekerSkill{Skill: skill})
	}

	works := make([]models.WorkExperience, 0, len(req.WorkExperiences))
	for _, w := range req.WorkExperiences {
		works = append(works, models.WorkExperience{
			Company:                w.Company,
			CountryID:              w.CountryID,
			State:                  w.State,
			Role:                   w.Role,
			JobType:                w.JobType,
			MeasurableAchievements: w.MeasurableAchievements,
			StartYear:              w.StartYear,
			StartMonth:             w.StartMonth,
			EndYear:                w.EndYear,
			EndMonth:               w.EndMonth,
			IsOngoing:              w.IsOngoing,
		})
	}

	return s.upsert(ctx, db, "experience", userID, fields, func(tx *gorm.DB, js *models.JobSeeker) error {
		if req.Seagoing.Complete() {
			seagoing := &models.SeagoingExperience{
				JobSeekerID:                  js.ID,
				SeaRank:                      *req.Seagoing.SeaRank,
				TotalYearsSeaGoingExperience: *req.Seagoing.TotalYearsSeaGoingExperience,
			}
			if err := s.jobSeekerRepo.UpsertSeagoingExperience(tx, seagoing); err != nil {
				return err
			}
			js.SeagoingExperience = seagoing
		}

		var err error
		if js.WorkExperiences, err = s.jobSeekerRepo.ReplaceWorkExperiences(tx, js.ID, works); err != nil {
			return err
		}
		if js.Skills, err = s.jobSeekerRepo.ReplaceSkills(tx, js.ID, skills); err != nil {
			return err
		}
		return nil
	})
}

// ---------------- Culture ----------------

func (s *sectionService) UpsertCulture(ctx context.Context, db *gorm.DB, userID string, req *dto.CultureRequest) (*models.JobSeeker, error) {
	availableFrom, err := time.Parse("2006-01-02", req.JobSeekerFieldSet.AvailableFrom)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{
			"jobSeekerFieldSet.availableFrom": "Must be a date in YYYY-MM-DD format",
		})
	}

	emirates := make([]string, 0, len(req.JobSeekerFieldSet.EmiratesPreference))
	for _, e := range req.JobSeekerFieldSet.EmiratesPreference {
		emirates = append(emirates, string(e))
	}

	fields := repositories.JobSeekerFields{
		AvailableFrom:      &availableFrom,
		EmiratesPreference: emirates,
	}

	targets := make([]models.TargetCompany, 0, len(req.TargetCompanyIDs))
	for _, companyID := range req.TargetCompanyIDs {
		targets = append(targets, models.TargetCompany{CompanyID: companyID})
	}

	q := req.Questions
	return s.upsert(ctx, db, "culture", userID, fields, func(tx *gorm.DB, js *models.JobSeeker) error {
		if err := s.checkCompanies(tx, req.TargetCompanyIDs); err != nil {
			return err
		}

		questions := &models.JobSeekerQuestions{
			JobSeekerID:        js.ID,
			NextJobSeek:        q.NextJobSeek,
			Motivation:         q.Motivation,
			WorkEnvironment:    q.WorkEnvironment,
			TopValuesInNextJob: q.TopValuesInNextJob,
		}
		if err := s.jobSeekerRepo.UpsertQuestions(tx, questions); err != nil {
			return err
		}
		js.Questions = questions

		var err error
		js.TargetCompanies, err = s.jobSeekerRepo.ReplaceTargetCompanies(tx, js.ID, targets)
		return err
	})
}

func (s *sectionService) checkCompanies(tx *gorm.DB, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.referenceRepo.FindCompaniesByIDs(tx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return apperrors.ValidationError(map[string]string{
			"targetCompaniesList": "Unknown company",
		})
	}
	return nil
}

// ---------------- Media ----------------

func (s *sectionService) UpsertMedia(ctx context.Context, db *gorm.DB, userID string, req *dto.MediaRequest) (*models.JobSeeker, error) {
	website := req.JobSeekerFieldSet.PersonalWebsiteURL
	fields := repositories.JobSeekerFields{PersonalWebsiteURL: &website}

	publications := make([]models.Publication, 0, len(req.Publications))
	for _, p := range req.Publications {
		publications = append(publications, models.Publication{PublicationLink: p.PublicationLink})
	}

	return s.upsert(ctx, db, "media", userID, fields, func(tx *gorm.DB, js *models.JobSeeker) error {
		var err error
		js.Publications, err = s.jobSeekerRepo.ReplacePublications(tx, js.ID, publications)
		return err
	})
}

func (s *sectionService) AttachCV(ctx context.Context, db *gorm.DB, userID, key, fileName string) (*models.JobSeeker, error) {
	now := time.Now().UTC()
	fields := repositories.JobSeekerFields{
		CVFileS3Key:  &key,
		CVFileName:   &fileName,
		CVUploadedAt: &now,
	}
	return s.upsert(ctx, db, "cv", userID, fields, nil)
}

// ---------------- Video resume ----------------

func (s *sectionService) UpsertVideoResume(ctx context.Context, db *gorm.DB, userID string, req *dto.VideoResumeRequest) (*models.JobSeeker, error) {
	url := req.VideoCVURL
	return s.upsert(ctx, db, "video_resume", userID, repositories.JobSeekerFields{VideoCVURL: &url}, nil)
}

// ---------------- Screening ----------------

func (s *sectionService) UpsertScreening(ctx context.Context, db *gorm.DB, userID string, req *dto.ScreeningRequest) (*models.JobSeeker, error) {
	slots := make([]models.AvailabilitySlot, 0, len(req.AvailabilitySlots))
	for _, slot := range req.AvailabilitySlots {
		slots = append(slots, models.AvailabilitySlot{
			Day:       slot.Day,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}

	return s.upsert(ctx, db, "screening", userID, repositories.JobSeekerFields{}, func(tx *gorm.DB, js *models.JobSeeker) error {
		var err error
		js.AvailabilitySlots, err = s.jobSeekerRepo.ReplaceAvailabilitySlots(tx, js.ID, slots)
		return err
	})
}
