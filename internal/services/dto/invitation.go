package dto

import (
	"strings"
	"time"

	"nautikos_backend/internal/models"
)

type InviteUserRequest struct {
	Email            string          `json:"email" validate:"required,email,max=255"`
	Role             models.UserRole `json:"role" validate:"required,is-user-role"`
	OrganizationName *string         `json:"organizationName" validate:"omitempty,max=255"`
}

func (r *InviteUserRequest) Validate() map[string]string {
	errs := map[string]string{}
	if r.Role == models.UserRoleOrgMember && (r.OrganizationName == nil || strings.TrimSpace(*r.OrganizationName) == "") {
		errs["organizationName"] = "Organization name is required for organization members"
	}
	return errs
}

type AcceptInvitationRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Code      string  `json:"code" validate:"required,numeric,len=6"`
	Password  string  `json:"password" validate:"required,min=8,max=72"`
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
}

type InvitationResponse struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	OrganizationName *string   `json:"organizationName,omitempty"`
	Status           string    `json:"status"`
	SenderID         string    `json:"senderId"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func NewInvitationResponse(inv *models.UserInvitation) *InvitationResponse {
	return &InvitationResponse{
		ID:               inv.ID,
		Email:            inv.Email,
		Role:             string(inv.Role),
		OrganizationName: inv.OrganizationName,
		Status:           string(inv.Status),
		SenderID:         inv.SenderID,
		CreatedAt:        inv.CreatedAt,
		UpdatedAt:        inv.UpdatedAt,
	}
}
