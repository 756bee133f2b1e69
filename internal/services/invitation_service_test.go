package services

import (
	"testing"
	"time"

	"nautikos_backend/internal/models"
	"nautikos_backend/internal/repositories"
	"nautikos_backend/internal/services/dto"
	"nautikos_backend/internal/testutil"
	"nautikos_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acceptRequest(email, code string) *dto.AcceptInvitationRequest {
	return &dto.AcceptInvitationRequest{
		Email:     email,
		Code:      code,
		Password:  "a-long-enough-password",
		FirstName: testutil.Ptr("Layla"),
		LastName:  testutil.Ptr("Haddad"),
	}
}

// wrongCode returns a six digit code different from code.
func wrongCode(code string) string {
	last := code[len(code)-1]
	if last == '9' {
		return code[:len(code)-1] + "0"
	}
	return code[:len(code)-1] + string(last+1)
}

func TestInviteAndAccept(t *testing.T) {
	f := newFixture(t)
	admin := testutil.CreateAdmin(t, f.db)

	invitation, notice, err := f.svc.InvitationService.InviteUser(f.ctx, f.db, actorOf(admin), &dto.InviteUserRequest{
		Email: "  Layla@Example.com ",
		Role:  models.UserRoleModerator,
	})
	require.NoError(t, err)
	assert.Equal(t, "layla@example.com", invitation.Email)
	assert.Equal(t, models.InvitationStatusPending, invitation.Status)
	require.NotNil(t, invitation.VerificationID)

	require.NotNil(t, notice)
	assert.Equal(t, dto.EventUserInvited, notice.Event)
	assert.Equal(t, "layla@example.com", notice.Recipient)
	assert.Equal(t, "Content Moderator", notice.Data["RoleLabel"])
	assert.Equal(t, "2 hours", notice.Data["ExpiresIn"])
	code := notice.Data["Code"]
	require.Len(t, code, 6)
	assert.Contains(t, notice.Data["AcceptURL"], "https://app.nautikos.test/verify?")
	assert.Contains(t, notice.Data["AcceptURL"], "code="+code)

	_, err = f.svc.InvitationService.AcceptInvitation(f.ctx, f.db, acceptRequest("layla@example.com", wrongCode(code)))
	assert.ErrorIs(t, err, apperrors.ErrInvalidVerificationCode)

	user, err := f.svc.InvitationService.AcceptInvitation(f.ctx, f.db, acceptRequest("LAYLA@example.com", code))
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleModerator, user.Role)
	assert.True(t, user.IsVerified)
	assert.Equal(t, "Layla Haddad", user.FullName())

	inv, err := repositories.NewInvitationRepository().FindByEmail(f.db, "layla@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.InvitationStatusAccepted, inv.Status)

	_, err = repositories.NewInvitationRepository().FindVerification(f.db, "layla@example.com", models.VerificationTypeOnboarding)
	assert.ErrorIs(t, err, repositories.ErrVerificationNotFound)

	_, err = f.svc.InvitationService.AcceptInvitation(f.ctx, f.db, acceptRequest("layla@example.com", code))
	assert.ErrorIs(t, err, apperrors.ErrInvitationNotPending)

	// The new account can now log in.
	resp, err := f.svc.AuthService.Login(f.ctx, f.db, &dto.LoginRequest{Email: "layla@example.com", Password: "a-long-enough-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestAcceptInvitation_ExpiredCode(t *testing.T) {
	f := newFixture(t)
	admin := testutil.CreateAdmin(t, f.db)

	_, notice, err := f.svc.InvitationService.InviteUser(f.ctx, f.db, actorOf(admin), &dto.InviteUserRequest{
		Email: "late@example.com",
		Role:  models.UserRoleJobSeeker,
	})
	require.NoError(t, err)

	svc := f.svc.InvitationService.(*invitationService)
	svc.now = func() time.Time { return time.Now().UTC().Add(3 * time.Hour) }

	_, err = svc.AcceptInvitation(f.ctx, f.db, acceptRequest("late@example.com", notice.Data["Code"]))
	assert.ErrorIs(t, err, apperrors.ErrInvalidVerificationCode)
}

func TestInviteUser_Rejections(t *testing.T) {
	f := newFixture(t)
	admin := testutil.CreateAdmin(t, f.db)
	moderator := testutil.CreateModerator(t, f.db)

	_, _, err := f.svc.InvitationService.InviteUser(f.ctx, f.db, actorOf(moderator), &dto.InviteUserRequest{
		Email: "someone@example.com",
		Role:  models.UserRoleJobSeeker,
	})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	_, _, err = f.svc.InvitationService.InviteUser(f.ctx, f.db, actorOf(admin), &dto.InviteUserRequest{
		Email: moderator.Email,
		Role:  models.UserRoleJobSeeker,
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	assert.Contains(t, appErr.Details, "email")
}

func TestReinviteReplacesCode(t *testing.T) {
	f := newFixture(t)
	admin := testutil.CreateAdmin(t, f.db)
	req := &dto.InviteUserRequest{Email: "again@example.com", Role: models.UserRoleOrgMember, OrganizationName: testutil.Ptr("Gulf Agency")}

	first, _, err := f.svc.InvitationService.InviteUser(f.ctx, f.db, actorOf(admin), req)
	require.NoError(t, err)
	second, _, err := f.svc.InvitationService.InviteUser(f.ctx, f.db, actorOf(admin), req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, f.db.Model(&models.Verification{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRevokeInvitation(t *testing.T) {
	f := newFixture(t)
	admin := testutil.CreateAdmin(t, f.db)

	invitation, notice, err := f.svc.InvitationService.InviteUser(f.ctx, f.db, actorOf(admin), &dto.InviteUserRequest{
		Email: "revoked@example.com",
		Role:  models.UserRoleJobSeeker,
	})
	require.NoError(t, err)

	revoked, err := f.svc.InvitationService.RevokeInvitation(f.ctx, f.db, actorOf(admin), invitation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationStatusRevoked, revoked.Status)

	_, err = f.svc.InvitationService.RevokeInvitation(f.ctx, f.db, actorOf(admin), invitation.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvitationNotPending)

	_, err = f.svc.InvitationService.AcceptInvitation(f.ctx, f.db, acceptRequest("revoked@example.com", notice.Data["Code"]))
	assert.ErrorIs(t, err, apperrors.ErrInvitationNotPending)

	pending, err := f.svc.InvitationService.ListInvitations(f.ctx, f.db, actorOf(admin), models.InvitationStatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	all, err := f.svc.InvitationService.ListInvitations(f.ctx, f.db, actorOf(admin), "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
