package services

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"nautikos_backend/internal/logger"
	"nautikos_backend/internal/models"
	"nautikos_backend/internal/repositories"
	"nautikos_backend/internal/services/dto"
	"nautikos_backend/pkg/apperrors"

	"github.com/stripe/stripe-go/v79"
	"gorm.io/gorm"
)

// Paths the hosted checkout page returns to.
const (
	CheckoutSuccessPath = "/onboarding/review"
	CheckoutCancelPath  = "/onboarding/payment"
)

// CheckoutSessions creates hosted checkout sessions. *session.Client
// from stripe-go satisfies it.
type CheckoutSessions interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type BillingService interface {
	// CreateCheckout starts a one-off payment for the actor's onboarding.
	CreateCheckout(ctx context.Context, db *gorm.DB, actor Actor) (*dto.CheckoutResponse, error)
	// HandleEvent applies a verified webhook event. It reports whether the
	// event changed anything.
	HandleEvent(ctx context.Context, db *gorm.DB, event stripe.Event) (bool, error)
	GrantAccess(ctx context.Context, db *gorm.DB, userID, customerID string, priceID *string) error
}

type billingService struct {
	userRepo repositories.UserRepository
	sessions CheckoutSessions
	priceID  string
	appURL   string
}

// NewBillingService accepts a nil sessions client; checkout then fails
// with ErrPaymentsNotConfigured while webhooks still apply.
func NewBillingService(userRepo repositories.UserRepository, sessions CheckoutSessions, priceID, appURL string) BillingService {
	return &billingService{
		userRepo: userRepo,
		sessions: sessions,
		priceID:  priceID,
		appURL:   strings.TrimRight(appURL, "/"),
	}
}

func (s *billingService) CreateCheckout(ctx context.Context, db *gorm.DB, actor Actor) (*dto.CheckoutResponse, error) {
	if actor.Role != models.UserRoleJobSeeker {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if s.sessions == nil || s.priceID == "" {
		return nil, apperrors.ErrPaymentsNotConfigured
	}

	user, err := s.userRepo.FindByID(db.WithContext(ctx), actor.UserID)
	if err != nil {
		return nil, readError(err)
	}
	if user.HasAccess {
		return nil, apperrors.ErrAccessAlreadyGranted
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(s.appURL + CheckoutSuccessPath),
		CancelURL:         stripe.String(s.appURL + CheckoutCancelPath),
		CustomerEmail:     stripe.String(user.Email),
		ClientReferenceID: stripe.String(user.ID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(s.priceID),
			Quantity: stripe.Int64(1),
		}},
	}
	params.Context = ctx
	params.AddMetadata("userId", user.ID)
	params.AddMetadata("priceId", s.priceID)

	sess, err := s.sessions.New(params)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "billing", "Could not start checkout", http.StatusBadGateway)
	}

	logger.CtxInfo(ctx, "Checkout session created", "user_id", user.ID, "session_id", sess.ID)
	return &dto.CheckoutResponse{SessionID: sess.ID, URL: sess.URL}, nil
}

func (s *billingService) HandleEvent(ctx context.Context, db *gorm.DB, event stripe.Event) (bool, error) {
	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		logger.CtxInfo(ctx, "Billing event ignored", "event_id", event.ID, "type", event.Type)
		return false, nil
	}
	if event.Data == nil {
		return false, apperrors.ValidationError(map[string]string{"data.object": "Missing checkout session"})
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return false, apperrors.ValidationError(map[string]string{"data.object": "Invalid checkout session"})
	}

	userID := session.ClientReferenceID
	if userID == "" {
		userID = session.Metadata["userId"]
	}
	if userID == "" {
		return false, apperrors.ValidationError(map[string]string{"data.object.client_reference_id": "Missing user reference"})
	}

	var customerID string
	if session.Customer != nil {
		customerID = session.Customer.ID
	}
	var priceID *string
	if p := session.Metadata["priceId"]; p != "" {
		priceID = &p
	}

	if err := s.GrantAccess(ctx, db, userID, customerID, priceID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *billingService) GrantAccess(ctx context.Context, db *gorm.DB, userID, customerID string, priceID *string) error {
	var customer *string
	if customerID != "" {
		customer = &customerID
	}
	if err := s.userRepo.GrantAccess(db.WithContext(ctx), userID, customer, priceID); err != nil {
		return readError(err)
	}
	logger.CtxInfo(ctx, "Access granted", "user_id", userID)
	return nil
}
