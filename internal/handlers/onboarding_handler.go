package handlers

import (
	"net/http"

	"nautikos_backend/internal/middleware"
	"nautikos_backend/internal/models"
	"nautikos_backend/internal/services"
	"nautikos_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	*BaseHandler
	sectionService    services.SectionService
	onboardingService services.OnboardingService
	cvService         services.CVService
}

func NewOnboardingHandler(
	base *BaseHandler,
	sectionService services.SectionService,
	onboardingService services.OnboardingService,
	cvService services.CVService,
) *OnboardingHandler {
	return &OnboardingHandler{
		BaseHandler:       base,
		sectionService:    sectionService,
		onboardingService: onboardingService,
		cvService:         cvService,
	}
}

func (h *OnboardingHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	onboarding := r.Group("/onboarding")
	onboarding.Use(authMW, middleware.RequireRoles(models.UserRoleJobSeeker))
	{
		onboarding.GET("", h.Load)
		onboarding.GET("/status", h.GetStatus)

		onboarding.PUT("/academy", h.UpsertAcademy)
		onboarding.PUT("/experience", h.UpsertExperience)
		onboarding.PUT("/culture", h.UpsertCulture)
		onboarding.PUT("/media", h.UpsertMedia)
		onboarding.PUT("/video-resume", h.UpsertVideoResume)
		onboarding.PUT("/screening", h.UpsertScreening)

		onboarding.POST("/cv/presign", h.PresignCV)
		onboarding.PUT("/cv", h.AttachCV)

		onboarding.POST("/complete", h.Complete)
	}
}

// --- Reads ---

func (h *OnboardingHandler) Load(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	js, err := h.onboardingService.LoadOnboarding(c.Request.Context(), h.GetDB(c), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobSeeker": js})
}

// GetStatus godoc
// @Summary Onboarding checklist
// @Description Per-stage completion for the caller. Users outside the flow get redirectTo.
// @Tags onboarding
// @Produce json
// @Success 200 {object} dto.OnboardingStatus
// @Router /api/v1/onboarding/status [get]
func (h *OnboardingHandler) GetStatus(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	status, err := h.onboardingService.GetStatus(c.Request.Context(), h.GetDB(c), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// --- Sections ---

func (h *OnboardingHandler) UpsertAcademy(c *gin.Context) {
	var req dto.AcademyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	h.saveSection(c, func(actor services.Actor) (*models.JobSeeker, error) {
		return h.sectionService.UpsertAcademy(c.Request.Context(), h.GetDB(c), actor.UserID, &req)
	})
}

func (h *OnboardingHandler) UpsertExperience(c *gin.Context) {
	var req dto.ExperienceRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	h.saveSection(c, func(actor services.Actor) (*models.JobSeeker, error) {
		return h.sectionService.UpsertExperience(c.Request.Context(), h.GetDB(c), actor.UserID, &req)
	})
}

func (h *OnboardingHandler) UpsertCulture(c *gin.Context) {
	var req dto.CultureRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	h.saveSection(c, func(actor services.Actor) (*models.JobSeeker, error) {
		return h.sectionService.UpsertCulture(c.Request.Context(), h.GetDB(c), actor.UserID, &req)
	})
}

func (h *OnboardingHandler) UpsertMedia(c *gin.Context) {
	var req dto.MediaRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	h.saveSection(c, func(actor services.Actor) (*models.JobSeeker, error) {
		return h.sectionService.UpsertMedia(c.Request.Context(), h.GetDB(c), actor.UserID, &req)
	})
}

func (h *OnboardingHandler) UpsertVideoResume(c *gin.Context) {
	var req dto.VideoResumeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	h.saveSection(c, func(actor services.Actor) (*models.JobSeeker, error) {
		return h.sectionService.UpsertVideoResume(c.Request.Context(), h.GetDB(c), actor.UserID, &req)
	})
}

func (h *OnboardingHandler) UpsertScreening(c *gin.Context) {
	var req dto.ScreeningRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	h.saveSection(c, func(actor services.Actor) (*models.JobSeeker, error) {
		return h.sectionService.UpsertScreening(c.Request.Context(), h.GetDB(c), actor.UserID, &req)
	})
}

func (h *OnboardingHandler) saveSection(c *gin.Context, save func(actor services.Actor) (*models.JobSeeker, error)) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	js, err := save(actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobSeeker": js})
}

// --- CV ---

func (h *OnboardingHandler) PresignCV(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	var req dto.PresignCVRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.cvService.PresignUpload(c.Request.Context(), h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *OnboardingHandler) AttachCV(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	var req dto.AttachCVRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	js, err := h.cvService.Attach(c.Request.Context(), h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobSeeker": js})
}

// --- Completion ---

// Complete godoc
// @Summary Complete onboarding
// @Description Marks the caller onboarded once all six sections are complete.
// @Tags onboarding
// @Produce json
// @Success 200 {object} dto.CompleteOnboardingResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /api/v1/onboarding/complete [post]
func (h *OnboardingHandler) Complete(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	resp, err := h.onboardingService.CompleteOnboarding(c.Request.Context(), h.GetDB(c), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
