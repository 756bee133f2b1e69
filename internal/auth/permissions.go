package auth

import "nautikos_backend/internal/models"

const (
	PermOnboardingWrite    = "onboarding:write"
	PermModerationAssign   = "moderation:assign"
	PermModerationReview   = "moderation:review"
	PermModerationEvaluate = "moderation:evaluate"
	PermCandidatesRead     = "candidates:read"
	PermInvitationsManage  = "invitations:manage"
	PermReferenceWrite     = "reference:write"
)

// Permissions maps each role to what it may do.
var Permissions = map[models.UserRole][]string{
	models.UserRoleAdmin: {
		PermModerationAssign,
		PermModerationReview,
		PermCandidatesRead,
		PermInvitationsManage,
		PermReferenceWrite,
	},
	models.UserRoleModerator: {
		PermModerationReview,
		PermModerationEvaluate,
		PermCandidatesRead,
	},
	models.UserRoleJobSeeker: {
		PermOnboardingWrite,
	},
	models.UserRoleOrgMember: {},
}

// HasPermission reports whether role grants permission.
func HasPermission(role models.UserRole, permission string) bool {
	for _, p := range Permissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
