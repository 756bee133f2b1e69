package handlers

import (
	"errors"
	"io"
	"net/http"

	"nautikos_backend/internal/logger"
	"nautikos_backend/internal/middleware"
	"nautikos_backend/internal/models"
	"nautikos_backend/internal/services"
	"nautikos_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79/webhook"
)

const (
	SignatureHeader = "Stripe-Signature"

	maxWebhookBody = 64 << 10
)

type BillingHandler struct {
	*BaseHandler
	billingService services.BillingService
	secret         string
}

func NewBillingHandler(base *BaseHandler, billingService services.BillingService, webhookSecret string) *BillingHandler {
	return &BillingHandler{
		BaseHandler:    base,
		billingService: billingService,
		secret:         webhookSecret,
	}
}

func (h *BillingHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	r.POST("/webhooks/billing", h.HandleWebhook)
	r.POST("/billing/checkout", authMW, middleware.RequireRoles(models.UserRoleJobSeeker), h.CreateCheckout)
}

func (h *BillingHandler) CreateCheckout(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	resp, err := h.billingService.CreateCheckout(c.Request.Context(), h.GetDB(c), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *BillingHandler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.CtxWarn(ctx, "Rejected billing webhook", "error", err, "limit", tooLarge.Limit)
			apperrors.HandleError(c, apperrors.ErrWebhookTooLarge)
			return
		}
		apperrors.HandleError(c, apperrors.NewBadRequestError("Could not read request body"))
		return
	}

	if h.secret == "" {
		logger.CtxWarn(ctx, "Rejected billing webhook", "error", "webhook secret not configured")
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid webhook signature"))
		return
	}

	event, err := webhook.ConstructEventWithOptions(body, c.GetHeader(SignatureHeader), h.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		if isSignatureError(err) {
			logger.CtxWarn(ctx, "Rejected billing webhook", "error", err)
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid webhook signature"))
			return
		}
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid event payload"))
		return
	}

	applied, err := h.billingService.HandleEvent(ctx, h.GetDB(c), event)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true, "applied": applied})
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrTooOld)
}
