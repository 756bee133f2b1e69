package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"nautikos_backend/internal/auth"
	"nautikos_backend/internal/email"
	"nautikos_backend/internal/models"
	"nautikos_backend/internal/services/dto"
	"nautikos_backend/internal/storage"
	"nautikos_backend/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	ctx      context.Context
	db       *gorm.DB
	svc      *ServiceContainer
	mail     *email.LogProvider
	filesDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	filesDir := t.TempDir()
	store, err := storage.NewLocalStorage(storage.Config{BasePath: filesDir, BaseURL: "http://files.nautikos.test"})
	require.NoError(t, err)

	templates, err := email.NewDefaultTemplateManager()
	require.NoError(t, err)
	mail := email.NewLogProvider(templates)

	svc := NewServiceContainer(Dependencies{
		Storage:       store,
		EmailProvider: mail,
		Tokens:        auth.NewTokenManager("test-secret", time.Hour, "nautikos-test"),
		Codes:         auth.NewCodeIssuer("Nautikos", 7200),
		AppName:       "Nautikos",
		AppURL:        "https://app.nautikos.test/",
	})

	return &fixture{
		ctx:      context.Background(),
		db:       testutil.NewDB(t),
		svc:      svc,
		mail:     mail,
		filesDir: filesDir,
	}
}

func actorOf(u *models.User) Actor {
	return Actor{UserID: u.ID, Role: u.Role}
}

// putFile stores an object under key in the local storage directory.
func (f *fixture) putFile(t *testing.T, key string) {
	t.Helper()
	path := filepath.Join(f.filesDir, filepath.FromSlash(key))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))
}

func academyRequest() *dto.AcademyRequest {
	return &dto.AcademyRequest{
		Educations: []dto.EducationInput{{
			EducationLevel: models.EducationGraduate,
			Institution:    "Abu Dhabi Maritime Academy",
			DegreeName:     "BSc",
			FieldOfStudy:   "Maritime Logistics",
			StartYear:      2012,
			EndYear:        testutil.Ptr(2016),
		}},
		Certifications: []dto.CertificationInput{{Institute: "ICS", CertificationName: "Shipbroking"}},
		Memberships:    []dto.MembershipInput{},
	}
}

func experienceRequest(skills ...models.Skill) *dto.ExperienceRequest {
	if len(skills) == 0 {
		skills = []models.Skill{"Chartering", "Crewing", "Bunkering"}
	}
	return &dto.ExperienceRequest{
		JobSeekerFieldSet: dto.ExperienceFields{
			TotalYearsExperience:       testutil.Ptr(8),
			PeopleManagementExperience: testutil.Ptr(models.PeopleManagementOneToFive),
			ArabicSpeaking:             testutil.Ptr(false),
			DubaiTradePortal:           testutil.Ptr(true),
			UAECustoms:                 testutil.Ptr(true),
			FreeZoneProcess:            testutil.Ptr(false),
		},
		Skills: skills,
		WorkExperiences: []dto.WorkExperienceInput{{
			Company:                "Gulf Line Agencies",
			CountryID:              "ae",
			Role:                   "Operations Executive",
			JobType:                models.JobTypeFullTime,
			MeasurableAchievements: "Cut port turnaround by 12%",
			StartYear:              2018,
			StartMonth:             3,
			IsOngoing:              true,
		}},
	}
}

func cultureRequest(companyIDs ...string) *dto.CultureRequest {
	return &dto.CultureRequest{
		JobSeekerFieldSet: dto.CultureFields{
			AvailableFrom:      "2026-11-01",
			EmiratesPreference: []models.Emirate{"Dubai", "Sharjah"},
		},
		TargetCompanyIDs: companyIDs,
		Questions: dto.QuestionsInput{
			NextJobSeek:        "A commercial chartering role",
			Motivation:         "Growth in the Gulf market",
			WorkEnvironment:    models.WorkEnvironmentOptions[0],
			TopValuesInNextJob: []string{models.JobValueOptions[1]},
		},
	}
}

func mediaRequest() *dto.MediaRequest {
	return &dto.MediaRequest{
		JobSeekerFieldSet: dto.MediaFields{PersonalWebsiteURL: "https://jane.example.com"},
		Publications:      []dto.PublicationInput{{PublicationLink: "https://blog.example.com/post"}},
	}
}

func screeningRequest(n int) *dto.ScreeningRequest {
	req := &dto.ScreeningRequest{}
	for i := 0; i < n; i++ {
		req.AvailabilitySlots = append(req.AvailabilitySlots, dto.AvailabilitySlotInput{
			Day:       models.Days[i%len(models.Days)],
			StartTime: "09:00",
			EndTime:   "11:30",
		})
	}
	return req
}

// completeProfile saves every section for user and returns the profile.
func (f *fixture) completeProfile(t *testing.T, user *models.User) *models.JobSeeker {
	t.Helper()

	company := testutil.CreateCompany(t, f.db, "Company for "+user.Email)
	sections := f.svc.SectionService

	_, err := sections.UpsertAcademy(f.ctx, f.db, user.ID, academyRequest())
	require.NoError(t, err)
	_, err = sections.UpsertExperience(f.ctx, f.db, user.ID, experienceRequest())
	require.NoError(t, err)
	_, err = sections.UpsertCulture(f.ctx, f.db, user.ID, cultureRequest(company.ID))
	require.NoError(t, err)
	_, err = sections.UpsertMedia(f.ctx, f.db, user.ID, mediaRequest())
	require.NoError(t, err)
	_, err = sections.UpsertVideoResume(f.ctx, f.db, user.ID, &dto.VideoResumeRequest{VideoCVURL: "https://videos.example.com/jane"})
	require.NoError(t, err)
	_, err = sections.UpsertScreening(f.ctx, f.db, user.ID, screeningRequest(RequiredAvailabilitySlots))
	require.NoError(t, err)

	js, err := sections.EnsureProfile(f.ctx, f.db, user.ID)
	require.NoError(t, err)
	_, err = sections.AttachCV(f.ctx, f.db, user.ID, CVKey(js.ID), "cv.pdf")
	require.NoError(t, err)
	return js
}
