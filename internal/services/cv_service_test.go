package services

import (
	"strings"
	"testing"

	"nautikos_backend/internal/services/dto"
	"nautikos_backend/internal/testutil"
	"nautikos_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresignAndAttachCV(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateJobSeekerUser(t, f.db)
	actor := actorOf(user)

	presigned, err := f.svc.CVService.PresignUpload(f.ctx, f.db, actor, &dto.PresignCVRequest{FileName: "cv.pdf", ContentType: CVContentType})
	require.NoError(t, err)

	js, err := f.svc.SectionService.EnsureProfile(f.ctx, f.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, CVKey(js.ID), presigned.Key)
	assert.True(t, strings.HasPrefix(presigned.UploadURL, "http://files.nautikos.test/job-seekers/"+js.ID+"/cv/file.pdf"))
	assert.NotEmpty(t, presigned.ViewURL)
	assert.Equal(t, 3600, presigned.ExpiresIn)

	_, err = f.svc.CVService.Attach(f.ctx, f.db, actor, &dto.AttachCVRequest{Key: presigned.Key, FileName: "cv.pdf"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed), "nothing uploaded yet")

	f.putFile(t, presigned.Key)
	saved, err := f.svc.CVService.Attach(f.ctx, f.db, actor, &dto.AttachCVRequest{Key: presigned.Key, FileName: "cv.pdf"})
	require.NoError(t, err)
	require.NotNil(t, saved.CVFileS3Key)
	assert.Equal(t, presigned.Key, *saved.CVFileS3Key)
	require.NotNil(t, saved.CVFileName)
	assert.Equal(t, "cv.pdf", *saved.CVFileName)
	assert.NotNil(t, saved.CVUploadedAt)
}

func TestAttachCV_RejectsForeignKey(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateJobSeekerUser(t, f.db)
	other := testutil.CreateJobSeekerUser(t, f.db)

	ownerProfile, err := f.svc.SectionService.EnsureProfile(f.ctx, f.db, owner.ID)
	require.NoError(t, err)
	f.putFile(t, CVKey(ownerProfile.ID))

	_, err = f.svc.CVService.Attach(f.ctx, f.db, actorOf(other), &dto.AttachCVRequest{Key: CVKey(ownerProfile.ID), FileName: "cv.pdf"})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"key": "Key does not belong to this profile"}, appErr.Details)
}

func TestPresignUpload_Rejections(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateJobSeekerUser(t, f.db)
	moderator := testutil.CreateModerator(t, f.db)

	_, err := f.svc.CVService.PresignUpload(f.ctx, f.db, actorOf(user), &dto.PresignCVRequest{FileName: "cv.docx", ContentType: "application/msword"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))

	_, err = f.svc.CVService.PresignUpload(f.ctx, f.db, actorOf(moderator), &dto.PresignCVRequest{FileName: "cv.pdf", ContentType: CVContentType})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}
