package handlers

import (
	"net/http"

	"nautikos_backend/internal/middleware"
	"nautikos_backend/internal/models"
	"nautikos_backend/internal/services"
	"nautikos_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type InvitationHandler struct {
	*BaseHandler
	invitationService services.InvitationService
	emailService      *services.EmailService
}

func NewInvitationHandler(base *BaseHandler, invitationService services.InvitationService, emailService *services.EmailService) *InvitationHandler {
	return &InvitationHandler{
		BaseHandler:       base,
		invitationService: invitationService,
		emailService:      emailService,
	}
}

func (h *InvitationHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	r.POST("/invitations/accept", h.AcceptInvitation)

	admin := r.Group("/invitations")
	admin.Use(authMW, middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("", h.ListInvitations)
		admin.POST("", h.InviteUser)
		admin.DELETE("/:invitationId", h.RevokeInvitation)
	}
}

func (h *InvitationHandler) InviteUser(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	var req dto.InviteUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	invitation, notice, err := h.invitationService.InviteUser(ctx, h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.emailService.Notify(ctx, notice)

	c.JSON(http.StatusCreated, dto.NewInvitationResponse(invitation))
}

func (h *InvitationHandler) RevokeInvitation(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	invitationID, ok := RequireParam(c, "invitationId")
	if !ok {
		return
	}

	invitation, err := h.invitationService.RevokeInvitation(c.Request.Context(), h.GetDB(c), actor, invitationID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewInvitationResponse(invitation))
}

func (h *InvitationHandler) ListInvitations(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	status := models.InvitationStatus(c.Query("status"))
	list, err := h.invitationService.ListInvitations(c.Request.Context(), h.GetDB(c), actor, status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	out := make([]*dto.InvitationResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.NewInvitationResponse(&list[i]))
	}
	c.JSON(http.StatusOK, gin.H{"invitations": out, "total": len(out)})
}

// AcceptInvitation godoc
// @Summary Accept an invitation
// @Description Creates a verified account from a pending invitation and its emailed code.
// @Tags invitations
// @Accept json
// @Produce json
// @Param body body dto.AcceptInvitationRequest true "Code and credentials"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/v1/invitations/accept [post]
func (h *InvitationHandler) AcceptInvitation(c *gin.Context) {
	var req dto.AcceptInvitationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.invitationService.AcceptInvitation(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Role:        string(user.Role),
		Name:        user.FullName(),
		IsVerified:  user.IsVerified,
		IsOnboarded: user.IsOnboarded,
		HasAccess:   user.HasAccess,
	})
}
