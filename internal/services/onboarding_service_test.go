package services

import (
	"testing"

	"nautikos_backend/internal/models"
	"nautikos_backend/internal/repositories"
	"nautikos_backend/internal/testutil"
	"nautikos_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatus_RedirectsUsersOutsideTheFlow(t *testing.T) {
	f := newFixture(t)

	users := map[string]*models.User{
		"moderator":            testutil.CreateModerator(t, f.db),
		"admin":                testutil.CreateAdmin(t, f.db),
		"onboarded job seeker": testutil.CreateUser(t, f.db, &models.User{Role: models.UserRoleJobSeeker, IsVerified: true, IsOnboarded: true}),
	}
	for name, user := range users {
		t.Run(name, func(t *testing.T) {
			status, err := f.svc.OnboardingService.GetStatus(f.ctx, f.db, actorOf(user))
			require.NoError(t, err)
			assert.Equal(t, DashboardPath, status.RedirectTo)
			assert.Empty(t, status.Stages)
		})
	}
}

func TestGetStatus_WithoutProfile(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, &models.User{Role: models.UserRoleJobSeeker, IsVerified: true, HasAccess: true})

	status, err := f.svc.OnboardingService.GetStatus(f.ctx, f.db, actorOf(user))
	require.NoError(t, err)

	assert.Empty(t, status.RedirectTo)
	assert.Empty(t, status.JobSeekerID)
	assert.Nil(t, status.Sections)
	assert.False(t, status.CanComplete)
	assert.Equal(t, StageAcademy, status.NextStage)

	require.Len(t, status.Stages, len(Stages))
	for _, st := range status.Stages {
		assert.Equal(t, st.Stage == StagePayment, st.IsComplete, st.Stage)
	}

	// Reading the status never creates a profile.
	_, err = repositories.NewJobSeekerRepository().FindByUserID(f.db, user.ID)
	assert.ErrorIs(t, err, repositories.ErrJobSeekerNotFound)
}

func TestGetStatus_PartialProfile(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateJobSeekerUser(t, f.db)

	js, err := f.svc.SectionService.UpsertAcademy(f.ctx, f.db, user.ID, academyRequest())
	require.NoError(t, err)

	status, err := f.svc.OnboardingService.GetStatus(f.ctx, f.db, actorOf(user))
	require.NoError(t, err)
	assert.Equal(t, js.ID, status.JobSeekerID)
	assert.Equal(t, StageExperience, status.NextStage)
	assert.True(t, status.Stages[0].IsComplete)
	assert.False(t, status.Stages[len(status.Stages)-1].IsComplete)
	assert.False(t, status.CanComplete)
}

func TestCompleteOnboarding(t *testing.T) {
	f := newFixture(t)

	t.Run("without profile", func(t *testing.T) {
		user := testutil.CreateJobSeekerUser(t, f.db)
		_, err := f.svc.OnboardingService.CompleteOnboarding(f.ctx, f.db, actorOf(user))
		assert.ErrorIs(t, err, apperrors.ErrOnboardingIncomplete)
	})

	t.Run("incomplete sections", func(t *testing.T) {
		user := testutil.CreateJobSeekerUser(t, f.db)
		_, err := f.svc.SectionService.UpsertAcademy(f.ctx, f.db, user.ID, academyRequest())
		require.NoError(t, err)

		_, err = f.svc.OnboardingService.CompleteOnboarding(f.ctx, f.db, actorOf(user))
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
		assert.NotNil(t, appErr.Details)
		assert.Nil(t, apperrors.ErrOnboardingIncomplete.Details)

		reloaded, err := repositories.NewUserRepository().FindByID(f.db, user.ID)
		require.NoError(t, err)
		assert.False(t, reloaded.IsOnboarded)
	})

	t.Run("complete profile without payment", func(t *testing.T) {
		user := testutil.CreateJobSeekerUser(t, f.db)
		f.completeProfile(t, user)

		resp, err := f.svc.OnboardingService.CompleteOnboarding(f.ctx, f.db, actorOf(user))
		require.NoError(t, err)
		assert.True(t, resp.IsOnboarded)
		assert.Equal(t, DashboardPath, resp.RedirectTo)

		reloaded, err := repositories.NewUserRepository().FindByID(f.db, user.ID)
		require.NoError(t, err)
		assert.True(t, reloaded.IsOnboarded)

		status, err := f.svc.OnboardingService.GetStatus(f.ctx, f.db, actorOf(user))
		require.NoError(t, err)
		assert.Equal(t, DashboardPath, status.RedirectTo)
	})

	t.Run("flag set by a concurrent completion", func(t *testing.T) {
		user := testutil.CreateJobSeekerUser(t, f.db)
		f.completeProfile(t, user)

		changed, err := repositories.NewUserRepository().MarkOnboarded(f.db, user.ID)
		require.NoError(t, err)
		require.True(t, changed)

		changed, err = repositories.NewUserRepository().MarkOnboarded(f.db, user.ID)
		require.NoError(t, err)
		assert.False(t, changed)

		_, err = repositories.NewUserRepository().MarkOnboarded(f.db, models.NewID())
		assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	})

	t.Run("already onboarded", func(t *testing.T) {
		user := testutil.CreateUser(t, f.db, &models.User{Role: models.UserRoleJobSeeker, IsVerified: true, IsOnboarded: true})
		resp, err := f.svc.OnboardingService.CompleteOnboarding(f.ctx, f.db, actorOf(user))
		require.NoError(t, err)
		assert.True(t, resp.IsOnboarded)
		assert.Equal(t, DashboardPath, resp.RedirectTo)
	})
}

func TestLoadOnboarding(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateJobSeekerUser(t, f.db)

	js, err := f.svc.OnboardingService.LoadOnboarding(f.ctx, f.db, actorOf(user))
	require.NoError(t, err)
	assert.Nil(t, js)

	f.completeProfile(t, user)
	js, err = f.svc.OnboardingService.LoadOnboarding(f.ctx, f.db, actorOf(user))
	require.NoError(t, err)
	require.NotNil(t, js)
	assert.Len(t, js.Educations, 1)
	assert.Len(t, js.Skills, 3)
	assert.Len(t, js.AvailabilitySlots, RequiredAvailabilitySlots)
	require.Len(t, js.TargetCompanies, 1)
	assert.NotNil(t, js.TargetCompanies[0].Company)
	assert.NotNil(t, js.Questions)
}
