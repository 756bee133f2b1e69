package services

import (
	"testing"

	"nautikos_backend/internal/models"
	"nautikos_backend/internal/repositories"
	"nautikos_backend/internal/services/dto"
	"nautikos_backend/internal/testutil"
	"nautikos_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertAcademy_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateJobSeekerUser(t, f.db)

	first, err := f.svc.SectionService.UpsertAcademy(f.ctx, f.db, user.ID, academyRequest())
	require.NoError(t, err)
	second, err := f.svc.SectionService.UpsertAcademy(f.ctx, f.db, user.ID, academyRequest())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CandidateNumber, second.CandidateNumber)

	academy, err := f.svc.CompletionService.CheckAcademy(f.ctx, f.db, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), academy.EducationCount)
	assert.Equal(t, int64(1), academy.CertificationCount)
	assert.Zero(t, academy.MembershipCount)
	assert.True(t, academy.IsComplete)
}

func TestUpsertAcademy_EmptyCollectionsClearRows(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateJobSeekerUser(t, f.db)

	js, err := f.svc.SectionService.UpsertAcademy(f.ctx, f.db, user.ID, academyRequest())
	require.NoError(t, err)

	req := academyRequest()
	req.Certifications = nil
	_, err = f.svc.SectionService.UpsertAcademy(f.ctx, f.db, user.ID, req)
	require.NoError(t, err)

	academy, err := f.svc.CompletionService.CheckAcademy(f.ctx, f.db, js.ID)
	require.NoError(t, err)
	assert.Zero(t, academy.CertificationCount)
}

func TestUpsertSection_UnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SectionService.UpsertAcademy(f.ctx, f.db, models.NewID(), academyRequest())
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUpsertExperience_DuplicateSkillRollsBackWholeSection(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateJobSeekerUser(t, f.db)

	js, err := f.svc.SectionService.UpsertExperience(f.ctx, f.db, user.ID, experienceRequest())
	require.NoError(t, err)

	req := experienceRequest("Chartering", "Chartering", "Crewing")
	req.JobSeekerFieldSet.TotalYearsExperience = testutil.Ptr(20)
	_, err = f.svc.SectionService.UpsertExperience(f.ctx, f.db, user.ID, req)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConstraintViolation))

	saved, err := repositories.NewJobSeekerRepository().FindByID(f.db, js.ID)
	require.NoError(t, err)
	require.NotNil(t, saved.TotalYearsExperience)
	assert.Equal(t, 8, *saved.TotalYearsExperience)

	experience, err := f.svc.CompletionService.CheckExperience(f.ctx, f.db, js.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), experience.SkillCount)
	assert.Equal(t, int64(1), experience.WorkExperienceCount)
}

func TestUpsertExperience_SeagoingNeedsBothFields(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateJobSeekerUser(t, f.db)

	req := experienceRequest()
	req.Seagoing = &dto.SeagoingInput{SeaRank: testutil.Ptr(models.SeaRank("Cadet"))}
	js, err := f.svc.SectionService.UpsertExperience(f.ctx, f.db, user.ID, req)
	require.NoError(t, err)

	experience, err := f.svc.CompletionService.CheckExperience(f.ctx, f.db, js.ID)
	require.NoError(t, err)
	assert.False(t, experience.SeagoingExperienceSet)

	req.Seagoing.TotalYearsSeaGoingExperience = testutil.Ptr(4)
	_, err = f.svc.SectionService.UpsertExperience(f.ctx, f.db, user.ID, req)
	require.NoError(t, err)

	experience, err = f.svc.CompletionService.CheckExperience(f.ctx, f.db, js.ID)
	require.NoError(t, err)
	assert.True(t, experience.SeagoingExperienceSet)
}

func TestUpsertCulture(t *testing.T) {
	t.Run("unknown company rejects the section", func(t *testing.T) {
		f := newFixture(t)
		user := testutil.CreateJobSeekerUser(t, f.db)

		_, err := f.svc.SectionService.UpsertCulture(f.ctx, f.db, user.ID, cultureRequest(models.NewID()))
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))

		_, err = repositories.NewJobSeekerRepository().FindByUserID(f.db, user.ID)
		assert.ErrorIs(t, err, repositories.ErrJobSeekerNotFound)
	})

	t.Run("malformed date", func(t *testing.T) {
		f := newFixture(t)
		user := testutil.CreateJobSeekerUser(t, f.db)
		company := testutil.CreateCompany(t, f.db, "Maersk")

		req := cultureRequest(company.ID)
		req.JobSeekerFieldSet.AvailableFrom = "01/11/2026"
		_, err := f.svc.SectionService.UpsertCulture(f.ctx, f.db, user.ID, req)
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, map[string]string{"jobSeekerFieldSet.availableFrom": "Must be a date in YYYY-MM-DD format"}, appErr.Details)
	})

	t.Run("saves questions and targets", func(t *testing.T) {
		f := newFixture(t)
		user := testutil.CreateJobSeekerUser(t, f.db)
		a := testutil.CreateCompany(t, f.db, "DP World")
		b := testutil.CreateCompany(t, f.db, "ADNOC L&S")

		js, err := f.svc.SectionService.UpsertCulture(f.ctx, f.db, user.ID, cultureRequest(a.ID, b.ID))
		require.NoError(t, err)
		require.NotNil(t, js.Questions)
		assert.Len(t, js.TargetCompanies, 2)

		// Resubmitting with one target replaces the pair.
		js, err = f.svc.SectionService.UpsertCulture(f.ctx, f.db, user.ID, cultureRequest(b.ID))
		require.NoError(t, err)

		culture, err := f.svc.CompletionService.CheckCulture(f.ctx, f.db, js.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), culture.TargetCompanyCount)
		assert.True(t, culture.IsComplete)
	})
}
