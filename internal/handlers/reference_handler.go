package handlers

import (
	"net/http"

	"nautikos_backend/internal/middleware"
	"nautikos_backend/internal/models"
	"nautikos_backend/internal/services"
	"nautikos_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReferenceHandler struct {
	*BaseHandler
	referenceService services.ReferenceService
}

func NewReferenceHandler(base *BaseHandler, referenceService services.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{
		BaseHandler:      base,
		referenceService: referenceService,
	}
}

func (h *ReferenceHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	ref := r.Group("/reference")
	ref.Use(authMW)
	{
		ref.GET("/companies", h.SearchCompanies)
		ref.GET("/countries", h.ListCountries)
		ref.GET("/membership-bodies", h.ListMembershipBodies)
		ref.POST("/companies", middleware.RequireRoles(models.UserRoleAdmin), h.CreateCompany)
	}
}

func (h *ReferenceHandler) SearchCompanies(c *gin.Context) {
	var query dto.SearchCompaniesQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	companies, err := h.referenceService.SearchCompanies(c.Request.Context(), h.GetDB(c), query.Q, query.Limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

func (h *ReferenceHandler) ListCountries(c *gin.Context) {
	countries, err := h.referenceService.ListCountries(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"countries": countries})
}

func (h *ReferenceHandler) ListMembershipBodies(c *gin.Context) {
	bodies, err := h.referenceService.ListMembershipBodies(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"membershipBodies": bodies})
}

func (h *ReferenceHandler) CreateCompany(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	var req dto.CreateCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	company, err := h.referenceService.EnsureCompany(c.Request.Context(), h.GetDB(c), actor, req.Name)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}
