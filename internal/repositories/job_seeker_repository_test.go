package repositories_test

import (
	"testing"

	"nautikos_backend/internal/models"
	"nautikos_backend/internal/repositories"
	"nautikos_backend/internal/testutil"
	"nautikos_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUpsertByUserID_AssignsCandidateNumbersOnce(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewJobSeekerRepository()

	first := testutil.CreateJobSeekerUser(t, db)
	second := testutil.CreateJobSeekerUser(t, db)

	a, err := repo.UpsertByUserID(db, first.ID, repositories.JobSeekerFields{})
	require.NoError(t, err)
	b, err := repo.UpsertByUserID(db, second.ID, repositories.JobSeekerFields{})
	require.NoError(t, err)

	assert.Equal(t, int64(models.CandidateNumberStart), a.CandidateNumber)
	assert.Equal(t, int64(models.CandidateNumberStart+1), b.CandidateNumber)

	again, err := repo.UpsertByUserID(db, first.ID, repositories.JobSeekerFields{})
	require.NoError(t, err)
	assert.Equal(t, a.ID, again.ID)
	assert.Equal(t, a.CandidateNumber, again.CandidateNumber)
}

func TestUpsertByUserID_LeavesOmittedColumnsUntouched(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewJobSeekerRepository()
	user := testutil.CreateJobSeekerUser(t, db)

	_, err := repo.UpsertByUserID(db, user.ID, repositories.JobSeekerFields{
		TotalYearsExperience: testutil.Ptr(7),
		ArabicSpeaking:       testutil.Ptr(false),
	})
	require.NoError(t, err)

	js, err := repo.UpsertByUserID(db, user.ID, repositories.JobSeekerFields{
		VideoCVURL: testutil.Ptr("https://videos.example.com/cv"),
	})
	require.NoError(t, err)

	require.NotNil(t, js.TotalYearsExperience)
	assert.Equal(t, 7, *js.TotalYearsExperience)
	require.NotNil(t, js.ArabicSpeaking)
	assert.False(t, *js.ArabicSpeaking)
	require.NotNil(t, js.VideoCVURL)
	assert.Equal(t, "https://videos.example.com/cv", *js.VideoCVURL)
	assert.Nil(t, js.AvailableFrom)
}

func TestReplaceChildren(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewJobSeekerRepository()
	user := testutil.CreateJobSeekerUser(t, db)
	js := testutil.CreateJobSeeker(t, db, user.ID)

	t.Run("replaces the whole collection", func(t *testing.T) {
		_, err := repo.ReplacePublications(db, js.ID, []models.Publication{
			{PublicationLink: "https://a.example.com"},
			{PublicationLink: "https://b.example.com"},
		})
		require.NoError(t, err)

		rows, err := repo.ReplacePublications(db, js.ID, []models.Publication{
			{PublicationLink: "https://c.example.com"},
		})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, js.ID, rows[0].JobSeekerID)

		n, err := repo.CountChildren(db, &models.Publication{}, js.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("empty input clears the collection", func(t *testing.T) {
		rows, err := repo.ReplacePublications(db, js.ID, nil)
		require.NoError(t, err)
		assert.Empty(t, rows)

		n, err := repo.CountChildren(db, &models.Publication{}, js.ID)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("duplicate skill is a constraint violation", func(t *testing.T) {
		_, err := repo.ReplaceSkills(db, js.ID, []models.JobSeekerSkill{
			{Skill: "Chartering"},
			{Skill: "Chartering"},
		})
		require.Error(t, err)

		appErr := repositories.TranslateError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.CodeConstraintViolation, appErr.Code)
		assert.Equal(t, map[string]string{"skills": "Each skill can only be selected once"}, appErr.Details)
	})
}

func TestListEligibleForReview(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewJobSeekerRepository()

	_, eligible := testutil.CreateCandidate(t, db)
	pending := testutil.CreateJobSeekerUser(t, db)
	testutil.CreateJobSeeker(t, db, pending.ID)

	list, err := repo.ListEligibleForReview(db)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, eligible.ID, list[0].ID)
	require.NotNil(t, list[0].User)
	assert.NotNil(t, list[0].User.Profile)
}

func TestLockByUserID(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewJobSeekerRepository()
	user := testutil.CreateJobSeekerUser(t, db)

	_, err := repo.LockByUserID(db, user.ID)
	assert.ErrorIs(t, err, repositories.ErrJobSeekerNotFound)

	created, err := repo.UpsertByUserID(db, user.ID, repositories.JobSeekerFields{})
	require.NoError(t, err)

	err = db.Transaction(func(tx *gorm.DB) error {
		locked, err := repo.LockByUserID(tx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, locked.ID)
		return nil
	})
	require.NoError(t, err)
}
