package handlers

import (
	"net/http"

	"nautikos_backend/internal/middleware"
	"nautikos_backend/internal/models"
	"nautikos_backend/internal/services"
	"nautikos_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	*BaseHandler
	moderationService services.ModerationService
	emailService      *services.EmailService
}

func NewModerationHandler(base *BaseHandler, moderationService services.ModerationService, emailService *services.EmailService) *ModerationHandler {
	return &ModerationHandler{
		BaseHandler:       base,
		moderationService: moderationService,
		emailService:      emailService,
	}
}

func (h *ModerationHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	moderation := r.Group("/moderation")
	moderation.Use(authMW)

	admin := moderation.Group("")
	admin.Use(middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/candidates/eligible", h.ListEligibleCandidates)
		admin.GET("/moderators", h.ListModerators)
		admin.GET("/assignments", h.ListAssignments)
		admin.POST("/assignments", h.CreateAssignment)
		admin.POST("/assignments/:assignmentId/complete", h.CompleteAssignment)
	}

	reviewers := moderation.Group("/candidates/:jobSeekerId")
	reviewers.Use(middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleModerator))
	{
		reviewers.GET("", h.GetCandidate)
		reviewers.PUT("/reviews/:section", h.SetReviewComment)
		reviewers.POST("/reviews/:section/resolve", h.ResolveReviewComment)
	}

	moderators := moderation.Group("/candidates/:jobSeekerId")
	moderators.Use(middleware.RequireRoles(models.UserRoleModerator))
	{
		moderators.PUT("/evaluation", h.SubmitEvaluation)
	}
}

// --- Assignments ---

// CreateAssignment godoc
// @Summary Assign a moderator to a candidate
// @Description Creates the candidate's assignment or replaces the moderator on the existing one.
// @Tags moderation
// @Accept json
// @Produce json
// @Param body body dto.CreateAssignmentRequest true "Assignment"
// @Success 200 {object} dto.AssignmentResponse
// @Router /api/v1/moderation/assignments [post]
func (h *ModerationHandler) CreateAssignment(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	var req dto.CreateAssignmentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	assignment, notice, err := h.moderationService.CreateOrReplaceAssignment(ctx, h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.emailService.Notify(ctx, notice)

	c.JSON(http.StatusOK, dto.NewAssignmentResponse(assignment))
}

func (h *ModerationHandler) CompleteAssignment(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	assignmentID, ok := RequireParam(c, "assignmentId")
	if !ok {
		return
	}

	assignment, err := h.moderationService.CompleteAssignment(c.Request.Context(), h.GetDB(c), actor, assignmentID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAssignmentResponse(assignment))
}

func (h *ModerationHandler) ListAssignments(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	var query dto.ListAssignmentsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	list, err := h.moderationService.ListAssignments(c.Request.Context(), h.GetDB(c), actor, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	out := make([]*dto.AssignmentResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.NewAssignmentResponse(&list[i]))
	}
	c.JSON(http.StatusOK, gin.H{"assignments": out, "total": len(out)})
}

func (h *ModerationHandler) ListEligibleCandidates(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	list, err := h.moderationService.ListEligibleCandidates(c.Request.Context(), h.GetDB(c), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidates": list, "total": len(list)})
}

func (h *ModerationHandler) ListModerators(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	list, err := h.moderationService.ListModerators(c.Request.Context(), h.GetDB(c), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"moderators": list, "total": len(list)})
}

// --- Candidate review ---

func (h *ModerationHandler) GetCandidate(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	jobSeekerID, ok := RequireParam(c, "jobSeekerId")
	if !ok {
		return
	}

	detail, err := h.moderationService.GetCandidate(c.Request.Context(), h.GetDB(c), actor, jobSeekerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *ModerationHandler) SetReviewComment(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	jobSeekerID, ok := RequireParam(c, "jobSeekerId")
	if !ok {
		return
	}
	var req dto.ReviewCommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	section := models.ReviewSection(c.Param("section"))
	review, err := h.moderationService.SetReviewComment(c.Request.Context(), h.GetDB(c), actor, jobSeekerID, section, req.Comment)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ModerationHandler) ResolveReviewComment(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	jobSeekerID, ok := RequireParam(c, "jobSeekerId")
	if !ok {
		return
	}

	section := models.ReviewSection(c.Param("section"))
	review, err := h.moderationService.ResolveReviewComment(c.Request.Context(), h.GetDB(c), actor, jobSeekerID, section)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ModerationHandler) SubmitEvaluation(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	jobSeekerID, ok := RequireParam(c, "jobSeekerId")
	if !ok {
		return
	}
	var req dto.EvaluationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	evaluation, err := h.moderationService.SubmitEvaluation(c.Request.Context(), h.GetDB(c), actor, jobSeekerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, evaluation)
}
